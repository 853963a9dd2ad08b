// CLAUDE:SUMMARY Storage types and Store constructor for the docquiz persistence layer.
// Package storage provides the SQLite data access layer for documents,
// sections, quizzes, and analysis runs.
//
// The store receives an already-opened *sql.DB (see dbopen) and assumes the
// schema has been applied. Children lists are never persisted; they are
// rebuilt from parent_id on read.
package storage

import "database/sql"

// Document is one analyzed document.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Source    string `json:"source"` // original filename or "inline"
	Format    string `json:"format"`
	PageCount int    `json:"page_count,omitempty"`
	CreatedAt int64  `json:"created_at"` // unix milliseconds
}

// Quiz is one generated quiz for a section.
type Quiz struct {
	ID            string `json:"id"`
	SectionID     string `json:"section_id"`
	QuestionsJSON string `json:"-"`
	Model         string `json:"model"`
	CreatedAt     int64  `json:"created_at"`
}

// Run is one analysis-run log entry.
type Run struct {
	ID           string `json:"id"`
	DocumentID   string `json:"document_id"`
	Strategy     string `json:"strategy"` // "llm" or "heuristic"
	SectionCount int    `json:"section_count"`
	Fallback     bool   `json:"fallback"`
	DurationMS   int64  `json:"duration_ms"`
	CreatedAt    int64  `json:"created_at"`
}

// SearchResult is one FTS hit on section content.
type SearchResult struct {
	SectionID  string  `json:"section_id"`
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Rank       float64 `json:"rank"`
}

// Store wraps the docquiz database.
type Store struct {
	DB *sql.DB
}

// NewStore creates a Store from an already-opened database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}
