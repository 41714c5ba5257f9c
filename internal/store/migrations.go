package store

import (
	"database/sql"
	"fmt"
)

// migrate creates all tables if they don't exist. Every step is idempotent
// so the same binary can open old and new databases.
func (s *SQLiteStore) migrate() error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			interview_type TEXT NOT NULL DEFAULT '',
			experience_level TEXT NOT NULL DEFAULT '',
			strategy_used TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL DEFAULT 0,
			question_count INTEGER NOT NULL DEFAULT 0,
			payload TEXT NOT NULL DEFAULT '',
			input_hash TEXT NOT NULL DEFAULT '',
			input_snippet TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_strategy ON sessions(strategy_used)`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("bootstrap DDL: %w", err)
		}
	}

	// Schema evolution: model/technique provenance for generate sessions.
	// ALTER TABLE can't live inside CREATE TABLE IF NOT EXISTS, so check
	// column existence first to stay idempotent.
	for _, col := range []string{"model", "technique"} {
		exists, err := s.columnExists("sessions", col)
		if err != nil {
			return fmt.Errorf("checking %s column: %w", col, err)
		}
		if exists {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE sessions ADD COLUMN %s TEXT NOT NULL DEFAULT ''", col)
		if _, err := s.db.Exec(alter); err != nil {
			return fmt.Errorf("adding %s column: %w", col, err)
		}
	}
	return nil
}

func (s *SQLiteStore) columnExists(table, column string) (bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
