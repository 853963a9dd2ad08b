// CLAUDE:SUMMARY Document and section persistence — transactional save, reads with child-list rebuild.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hazyhaar/docquiz/dbopen"
	"github.com/hazyhaar/docquiz/outline"
)

// SaveDocument stores a document and its sections in one transaction.
// Section order is the analysis reading order; the FTS index is kept in
// sync by the schema triggers.
func (s *Store) SaveDocument(ctx context.Context, doc *Document, sections []outline.Section) error {
	return dbopen.RunTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (document_id, title, source, format, page_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			doc.ID, doc.Title, doc.Source, doc.Format, doc.PageCount, doc.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}

		for i, sec := range sections {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sections (section_id, document_id, position, title, content, level, parent_id, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				sec.ID, doc.ID, i, sec.Title, sec.Content, sec.Level, sec.Parent, doc.CreatedAt,
			); err != nil {
				return fmt.Errorf("insert section %d: %w", i, err)
			}
		}
		return nil
	})
}

// GetDocument retrieves a document by id. Returns nil when not found.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT document_id, title, source, format, page_count, created_at
		FROM documents WHERE document_id = ?`, id)

	var d Document
	err := row.Scan(&d.ID, &d.Title, &d.Source, &d.Format, &d.PageCount, &d.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// ListDocuments returns documents, newest first.
func (s *Store) ListDocuments(ctx context.Context, limit int) ([]*Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT document_id, title, source, format, page_count, created_at
		FROM documents ORDER BY created_at DESC, document_id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Source, &d.Format, &d.PageCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		result = append(result, &d)
	}
	return result, rows.Err()
}

// GetSections returns a document's sections in reading order. Children lists
// are rebuilt from parent_id, so referential symmetry holds by construction.
func (s *Store) GetSections(ctx context.Context, documentID string) ([]outline.Section, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT section_id, title, content, level, parent_id
		FROM sections WHERE document_id = ? ORDER BY position`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []outline.Section
	index := make(map[string]int)
	for rows.Next() {
		var sec outline.Section
		if err := rows.Scan(&sec.ID, &sec.Title, &sec.Content, &sec.Level, &sec.Parent); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		index[sec.ID] = len(sections)
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sections {
		if p := sections[i].Parent; p != "" {
			if j, ok := index[p]; ok {
				sections[j].Children = append(sections[j].Children, sections[i].ID)
			}
		}
	}
	return sections, nil
}

// GetSection retrieves one section by id. Returns nil when not found.
func (s *Store) GetSection(ctx context.Context, sectionID string) (*outline.Section, string, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT section_id, document_id, title, content, level, parent_id
		FROM sections WHERE section_id = ?`, sectionID)

	var sec outline.Section
	var documentID string
	err := row.Scan(&sec.ID, &documentID, &sec.Title, &sec.Content, &sec.Level, &sec.Parent)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("scan section: %w", err)
	}
	return &sec, documentID, nil
}
