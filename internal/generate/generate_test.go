package generate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prepdeck/prepdeck/internal/llm"
	"github.com/prepdeck/prepdeck/internal/parse"
	"github.com/prepdeck/prepdeck/internal/prompt"
)

// mockProvider returns a fixed completion or error.
type mockProvider struct {
	response string
	err      error
	gotOpts  llm.CompletionOpts
	gotUser  string
}

func (m *mockProvider) Complete(_ context.Context, p string, opts llm.CompletionOpts) (string, error) {
	m.gotUser = p
	m.gotOpts = opts
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string { return "mock/test-model" }

func TestGenerate_HappyPath(t *testing.T) {
	mock := &mockProvider{
		response: `{"questions": ["How would you design a rate limiter for a public API?"], "recommendations": ["Review the team's stack"]}`,
	}
	g := New(mock, parse.NewParser())

	res, err := g.Generate(context.Background(), Request{
		JobDescription:  "Backend Go engineer",
		InterviewType:   parse.InterviewTechnical,
		ExperienceLevel: parse.ExperienceSenior,
		Technique:       prompt.TechniqueStructuredOutput,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Parse.Success {
		t.Fatalf("parse should succeed: %s", res.Parse.ErrorMessage)
	}
	if res.Parse.StrategyUsed != parse.StrategySimple {
		t.Errorf("strategy = %q", res.Parse.StrategyUsed)
	}
	if res.Model != "mock/test-model" {
		t.Errorf("model = %q", res.Model)
	}
	if res.Parse.Questions[0].Difficulty != parse.DifficultyHard {
		t.Errorf("enrichment not applied: %q", res.Parse.Questions[0].Difficulty)
	}
	if !mock.gotOpts.JSONMode {
		t.Error("structured technique should request json mode")
	}
	if !strings.Contains(mock.gotUser, "Backend Go engineer") {
		t.Error("job description not forwarded to provider")
	}
}

func TestGenerate_ProviderErrorSurfaces(t *testing.T) {
	wantErr := errors.New("rate limited")
	g := New(&mockProvider{err: wantErr}, parse.NewParser())

	_, err := g.Generate(context.Background(), Request{Technique: prompt.TechniqueZeroShot})
	if !errors.Is(err, wantErr) {
		t.Fatalf("provider error not surfaced: %v", err)
	}
}

func TestGenerate_GarbageOutputFallsBackToDefaults(t *testing.T) {
	g := New(&mockProvider{response: "#!@\n$%"}, parse.NewParser())

	res, err := g.Generate(context.Background(), Request{
		InterviewType: parse.InterviewBehavioral,
		Technique:     prompt.TechniqueZeroShot,
	})
	if err != nil {
		t.Fatalf("parse degradation must not error: %v", err)
	}
	if res.Parse.Success {
		t.Fatal("garbage output should be flagged unsuccessful")
	}
	if res.Parse.StrategyUsed != parse.StrategyDefault {
		t.Errorf("strategy = %q, want default", res.Parse.StrategyUsed)
	}
	if len(res.Parse.Questions) == 0 {
		t.Fatal("default result must be non-empty")
	}
}

func TestGenerate_BadTechnique(t *testing.T) {
	g := New(&mockProvider{response: "ok"}, parse.NewParser())
	if _, err := g.Generate(context.Background(), Request{Technique: "telepathy"}); err == nil {
		t.Fatal("expected prompt build error")
	}
}
