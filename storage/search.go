// CLAUDE:SUMMARY FTS5 full-text search over section titles and content with snippets.
package storage

import (
	"context"
	"fmt"
)

// SearchSections performs an FTS5 search over one document's sections.
// An empty documentID searches every document.
func (s *Store) SearchSections(ctx context.Context, documentID, query string, limit int) ([]*SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}

	q := `SELECT sec.section_id, sec.document_id, sec.title,
		snippet(sections_fts, 1, '[', ']', '…', 12), rank
		FROM sections_fts f
		JOIN sections sec ON sec.rowid = f.rowid
		WHERE sections_fts MATCH ?`
	args := []any{query}
	if documentID != "" {
		q += ` AND sec.document_id = ?`
		args = append(args, documentID)
	}
	q += ` ORDER BY rank LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var results []*SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.SectionID, &r.DocumentID, &r.Title, &r.Snippet, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan search result: %w", err)
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}
