package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	input := "1. What is a goroutine?\n2. Explain channels."
	sess := &Session{
		Kind:            KindParse,
		InterviewType:   "technical",
		ExperienceLevel: "mid",
		StrategyUsed:    "text_numbered",
		Success:         true,
		QuestionCount:   2,
		Payload:         `{"questions":[]}`,
		InputHash:       HashInput(input),
		InputSnippet:    Snippet(input),
	}

	id, err := s.SaveSession(ctx, sess)
	if err != nil {
		t.Fatalf("saving session: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := s.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("getting session: %v", err)
	}
	if got.StrategyUsed != "text_numbered" || !got.Success || got.QuestionCount != 2 {
		t.Errorf("session fields lost: %+v", got)
	}
	if got.InputHash != HashInput(input) {
		t.Errorf("hash mismatch: %q", got.InputHash)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not round-tripped")
	}
}

func TestSaveSession_RequiresKind(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveSession(context.Background(), &Session{}); err == nil {
		t.Fatal("expected error for missing kind")
	}
}

func TestGetSession_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSession(context.Background(), 9999)
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestListSessions_OrderAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		kind := KindParse
		if i == 1 {
			kind = KindGenerate
		}
		_, err := s.SaveSession(ctx, &Session{
			Kind:          kind,
			StrategyUsed:  "json_simple",
			Success:       true,
			QuestionCount: i + 1,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("saving session %d: %v", i, err)
		}
	}

	all, err := s.ListSessions(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("listing sessions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}
	if all[0].QuestionCount != 3 {
		t.Errorf("not newest-first: first has %d questions", all[0].QuestionCount)
	}

	gen, err := s.ListSessions(ctx, ListOpts{Kind: KindGenerate})
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(gen) != 1 || gen[0].Kind != KindGenerate {
		t.Errorf("kind filter broken: %+v", gen)
	}

	limited, err := s.ListSessions(ctx, ListOpts{Limit: 2})
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d", len(limited))
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sessions := []*Session{
		{Kind: KindParse, StrategyUsed: "json_simple", Success: true, QuestionCount: 4},
		{Kind: KindParse, StrategyUsed: "text_numbered", Success: true, QuestionCount: 6},
		{Kind: KindParse, StrategyUsed: "default", Success: false, QuestionCount: 5},
	}
	for i, sess := range sessions {
		if _, err := s.SaveSession(ctx, sess); err != nil {
			t.Fatalf("saving session %d: %v", i, err)
		}
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.SessionCount != 3 || st.SuccessCount != 2 {
		t.Errorf("counts: %+v", st)
	}
	if st.SuccessRate < 0.66 || st.SuccessRate > 0.67 {
		t.Errorf("success rate = %f", st.SuccessRate)
	}
	if st.AvgQuestions != 5 {
		t.Errorf("avg questions over successes = %f, want 5", st.AvgQuestions)
	}
	if st.StrategyCounts["json_simple"] != 1 || st.StrategyCounts["default"] != 1 {
		t.Errorf("strategy counts: %v", st.StrategyCounts)
	}
}

func TestStats_Empty(t *testing.T) {
	s := newTestStore(t)
	st, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats on empty store: %v", err)
	}
	if st.SessionCount != 0 || st.SuccessRate != 0 {
		t.Errorf("empty stats: %+v", st)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.db")

	s1, err := NewStore(Config{DBPath: path})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.SaveSession(context.Background(), &Session{Kind: KindParse}); err != nil {
		t.Fatalf("saving: %v", err)
	}
	s1.Close()

	s2, err := NewStore(Config{DBPath: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	sessions, err := s2.ListSessions(context.Background(), ListOpts{})
	if err != nil {
		t.Fatalf("listing after reopen: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("data lost across reopen: %d sessions", len(sessions))
	}
}
