// CLAUDE:SUMMARY Analysis run log — one row per analysis for observability.
package storage

import (
	"context"
	"fmt"
)

// RecordRun logs one analysis run.
func (s *Store) RecordRun(ctx context.Context, r *Run) error {
	fallback := 0
	if r.Fallback {
		fallback = 1
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO analysis_runs (run_id, document_id, strategy, section_count, fallback, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.DocumentID, r.Strategy, r.SectionCount, fallback, r.DurationMS, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns analysis runs for a document, newest first.
func (s *Store) ListRuns(ctx context.Context, documentID string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT run_id, document_id, strategy, section_count, fallback, duration_ms, created_at
		FROM analysis_runs WHERE document_id = ?
		ORDER BY created_at DESC, run_id DESC LIMIT ?`, documentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Run
	for rows.Next() {
		var r Run
		var fallback int
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.Strategy, &r.SectionCount, &fallback, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Fallback = fallback != 0
		result = append(result, &r)
	}
	return result, rows.Err()
}
