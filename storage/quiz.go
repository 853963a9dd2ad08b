// CLAUDE:SUMMARY Quiz persistence — save and latest-per-section lookup.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveQuiz stores a generated quiz.
func (s *Store) SaveQuiz(ctx context.Context, q *Quiz) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO quizzes (quiz_id, section_id, questions_json, model, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.SectionID, q.QuestionsJSON, q.Model, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

// GetQuiz returns the newest quiz for a section. Returns nil when none exists.
func (s *Store) GetQuiz(ctx context.Context, sectionID string) (*Quiz, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT quiz_id, section_id, questions_json, model, created_at
		FROM quizzes WHERE section_id = ?
		ORDER BY created_at DESC, quiz_id DESC LIMIT 1`, sectionID)

	var q Quiz
	err := row.Scan(&q.ID, &q.SectionID, &q.QuestionsJSON, &q.Model, &q.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	return &q, nil
}
