package main

import (
	"strings"
	"testing"

	"github.com/prepdeck/prepdeck/internal/parse"
)

func TestFormatResult_Success(t *testing.T) {
	r := parse.Result{
		StrategyUsed: parse.StrategyNumbered,
		Success:      true,
	}
	r.Questions = []parse.Question{
		{Text: "What is a goroutine?", Difficulty: parse.DifficultyEasy, Category: parse.CategoryConceptual, TimeEstimate: 10},
		{Text: "Design a job queue.", Hints: []string{"think about retries"}},
	}
	r.Recommendations = []string{"Review the company's stack"}

	out := formatResult(r)
	if !strings.Contains(out, "2 question(s) via text_numbered") {
		t.Errorf("header missing: %q", out)
	}
	if !strings.Contains(out, "[easy, conceptual, 10m]") {
		t.Errorf("tags missing: %q", out)
	}
	if !strings.Contains(out, "hint: think about retries") {
		t.Errorf("hint missing: %q", out)
	}
	if !strings.Contains(out, "- Review the company's stack") {
		t.Errorf("recommendations missing: %q", out)
	}
}

func TestFormatResult_Fallback(t *testing.T) {
	p := parse.NewParser()
	r := p.Parse("", parse.Context{InterviewType: parse.InterviewTechnical})

	out := formatResult(r)
	if !strings.Contains(out, "default question set") {
		t.Errorf("fallback banner missing: %q", out)
	}
	if !strings.Contains(out, "empty input") {
		t.Errorf("error detail missing: %q", out)
	}
}

func TestCommonFlags_Take(t *testing.T) {
	var c commonFlags
	args := []string{"--db", "/tmp/x.db", "--config=/tmp/c.yaml", "--json", "file.txt"}

	consumed := 0
	for i := 0; i < len(args); i++ {
		if next, ok := c.take(args, i); ok {
			i = next
			consumed++
		}
	}
	if consumed != 3 {
		t.Fatalf("consumed %d flags, want 3", consumed)
	}
	if c.dbPath != "/tmp/x.db" || c.configPath != "/tmp/c.yaml" || !c.asJSON {
		t.Errorf("flags not captured: %+v", c)
	}
}
