// Package store provides the SQLite session log.
//
// Every parse or generate call can be recorded as a Session: what was asked
// for, which extraction strategy won, and the full result payload. The log
// backs the history and stats commands and the MCP resources.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DefaultDBPath is the default database location.
const DefaultDBPath = "~/.prepdeck/prepdeck.db"

// snippetLen caps how much of the raw input is stored alongside its hash.
const snippetLen = 200

// Session kinds.
const (
	KindParse    = "parse"
	KindGenerate = "generate"
)

// Session is one recorded parse or generate call.
type Session struct {
	ID              int64
	Kind            string // "parse" or "generate"
	InterviewType   string
	ExperienceLevel string
	StrategyUsed    string
	Success         bool
	QuestionCount   int
	Model           string // generate sessions only
	Technique       string // generate sessions only
	Payload         string // full result as JSON
	InputHash       string
	InputSnippet    string
	CreatedAt       time.Time
}

// Stats summarizes the session log.
type Stats struct {
	SessionCount   int64
	SuccessCount   int64
	SuccessRate    float64
	StrategyCounts map[string]int64
	// AvgQuestions is the mean question count across successful sessions.
	AvgQuestions float64
	DBSizeBytes  int64
}

// ListOpts controls pagination for ListSessions.
type ListOpts struct {
	Limit  int
	Offset int
	Kind   string // filter by session kind, empty = all
}

// Store defines the session log interface.
type Store interface {
	SaveSession(ctx context.Context, s *Session) (int64, error)
	GetSession(ctx context.Context, id int64) (*Session, error)
	ListSessions(ctx context.Context, opts ListOpts) ([]*Session, error)
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// Config holds configuration for NewStore.
type Config struct {
	DBPath string
}

// NewStore creates a new SQLite-backed Store.
// Pass ":memory:" for in-memory databases (testing).
func NewStore(cfg Config) (Store, error) {
	if cfg.DBPath == "" {
		cfg.DBPath = ExpandPath(DefaultDBPath)
	}

	if cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: cfg.DBPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// HashInput computes the SHA-256 hash stored with each session, so repeated
// inputs can be spotted without keeping the full text around.
func HashInput(text string) string {
	h := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%x", h)
}

// Snippet returns the leading slice of text stored for display purposes.
func Snippet(text string) string {
	if len(text) <= snippetLen {
		return text
	}
	return text[:snippetLen]
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
