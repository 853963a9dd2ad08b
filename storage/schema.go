// CLAUDE:SUMMARY Applies the docquiz SQL schema including the FTS5 section index and sync triggers.
package storage

import "database/sql"

// Schema is the complete docquiz schema.
const Schema = `
-- Analyzed documents
CREATE TABLE IF NOT EXISTS documents (
    document_id  TEXT PRIMARY KEY,
    title        TEXT NOT NULL DEFAULT '',
    source       TEXT NOT NULL DEFAULT '',
    format       TEXT NOT NULL DEFAULT '',
    page_count   INTEGER NOT NULL DEFAULT 0,
    created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_time ON documents(created_at DESC);

-- Sections in reading order; children are derived from parent_id on read
CREATE TABLE IF NOT EXISTS sections (
    section_id   TEXT PRIMARY KEY,
    document_id  TEXT NOT NULL REFERENCES documents(document_id) ON DELETE CASCADE,
    position     INTEGER NOT NULL,
    title        TEXT NOT NULL,
    content      TEXT NOT NULL DEFAULT '',
    level        INTEGER NOT NULL DEFAULT 1,
    parent_id    TEXT NOT NULL DEFAULT '',
    created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document_id, position);

-- FTS5 on sections (title + content)
CREATE VIRTUAL TABLE IF NOT EXISTS sections_fts USING fts5(
    title, content, content='sections', content_rowid='rowid',
    tokenize='porter unicode61'
);

-- Triggers to keep FTS5 in sync
CREATE TRIGGER IF NOT EXISTS sections_ai AFTER INSERT ON sections BEGIN
    INSERT INTO sections_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
END;
CREATE TRIGGER IF NOT EXISTS sections_ad AFTER DELETE ON sections BEGIN
    INSERT INTO sections_fts(sections_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
END;
CREATE TRIGGER IF NOT EXISTS sections_au AFTER UPDATE ON sections BEGIN
    INSERT INTO sections_fts(sections_fts, rowid, title, content) VALUES('delete', old.rowid, old.title, old.content);
    INSERT INTO sections_fts(rowid, title, content) VALUES (new.rowid, new.title, new.content);
END;

-- Generated quizzes, newest wins per section
CREATE TABLE IF NOT EXISTS quizzes (
    quiz_id        TEXT PRIMARY KEY,
    section_id     TEXT NOT NULL REFERENCES sections(section_id) ON DELETE CASCADE,
    questions_json TEXT NOT NULL,
    model          TEXT NOT NULL DEFAULT '',
    created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quizzes_section ON quizzes(section_id, created_at DESC);

-- Analysis run log (observability)
CREATE TABLE IF NOT EXISTS analysis_runs (
    run_id        TEXT PRIMARY KEY,
    document_id   TEXT NOT NULL,
    strategy      TEXT NOT NULL,
    section_count INTEGER NOT NULL DEFAULT 0,
    fallback      INTEGER NOT NULL DEFAULT 0,
    duration_ms   INTEGER NOT NULL DEFAULT 0,
    created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_doc ON analysis_runs(document_id, created_at DESC);
`

// ApplySchema creates all tables, indexes, and triggers on the given database.
func ApplySchema(db *sql.DB) error {
	_, err := db.Exec(Schema)
	return err
}
