package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SaveSession inserts a session and returns its id. CreatedAt defaults to
// now; InputHash and InputSnippet are expected to be precomputed by the
// caller (see HashInput and Snippet).
func (s *SQLiteStore) SaveSession(ctx context.Context, sess *Session) (int64, error) {
	if sess == nil {
		return 0, fmt.Errorf("nil session")
	}
	if sess.Kind == "" {
		return 0, fmt.Errorf("session kind is required")
	}
	createdAt := sess.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (kind, interview_type, experience_level, strategy_used,
			success, question_count, model, technique, payload, input_hash,
			input_snippet, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.Kind, sess.InterviewType, sess.ExperienceLevel, sess.StrategyUsed,
		boolToInt(sess.Success), sess.QuestionCount, sess.Model, sess.Technique,
		sess.Payload, sess.InputHash, sess.InputSnippet,
		createdAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting session id: %w", err)
	}
	sess.ID = id
	sess.CreatedAt = createdAt
	return id, nil
}

// GetSession fetches one session by id. Returns sql.ErrNoRows when absent.
func (s *SQLiteStore) GetSession(ctx context.Context, id int64) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, interview_type, experience_level, strategy_used,
			success, question_count, model, technique, payload, input_hash,
			input_snippet, created_at
		FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessions returns sessions newest-first.
func (s *SQLiteStore) ListSessions(ctx context.Context, opts ListOpts) ([]*Session, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, kind, interview_type, experience_level, strategy_used,
			success, question_count, model, technique, payload, input_hash,
			input_snippet, created_at
		FROM sessions`
	args := []any{}
	if opts.Kind != "" {
		query += " WHERE kind = ?"
		args = append(args, opts.Kind)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Stats aggregates the session log.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{StrategyCounts: make(map[string]int64)}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(success), 0),
			COALESCE(AVG(CASE WHEN success = 1 THEN question_count END), 0)
		FROM sessions`).Scan(&st.SessionCount, &st.SuccessCount, &st.AvgQuestions)
	if err != nil {
		return nil, fmt.Errorf("aggregating sessions: %w", err)
	}
	if st.SessionCount > 0 {
		st.SuccessRate = float64(st.SuccessCount) / float64(st.SessionCount)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT strategy_used, COUNT(*) FROM sessions
		WHERE strategy_used != '' GROUP BY strategy_used`)
	if err != nil {
		return nil, fmt.Errorf("counting strategies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var strategy string
		var count int64
		if err := rows.Scan(&strategy, &count); err != nil {
			return nil, err
		}
		st.StrategyCounts[strategy] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if s.dbPath != ":memory:" {
		var pageCount, pageSize int64
		if err := s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
			if err := s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize); err == nil {
				st.DBSizeBytes = pageCount * pageSize
			}
		}
	}
	return st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var sess Session
	var success int
	var createdAt string
	err := row.Scan(&sess.ID, &sess.Kind, &sess.InterviewType, &sess.ExperienceLevel,
		&sess.StrategyUsed, &success, &sess.QuestionCount, &sess.Model,
		&sess.Technique, &sess.Payload, &sess.InputHash, &sess.InputSnippet,
		&createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	sess.Success = success == 1
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sess.CreatedAt = t
	}
	return &sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
