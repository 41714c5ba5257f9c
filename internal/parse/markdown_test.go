package parse

import (
	"strings"
	"testing"
)

func TestMarkdownBlocks_MultipleBlocks(t *testing.T) {
	input := strings.Join([]string{
		"1. **Question 1: Caching strategy**",
		"   - *Scenario:* Your API latency spiked after a cache flush.",
		"   - *Question:* Explain how you would redesign the cache warm-up.",
		"2. **Question 2: Data modeling**",
		"   - *Scenario:* A report query joins eleven tables.",
		"   - *Question:* Describe how you would restructure the schema.",
	}, "\n")

	p := NewParser()
	result, err := p.parseMarkdownBlocks(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d: %v", len(result.Questions), result.RawQuestions)
	}
	if !strings.Contains(result.Questions[0].Text, "cache warm-up") {
		t.Errorf("first block truncated: %q", result.Questions[0].Text)
	}
	if !strings.Contains(result.Questions[1].Text, "eleven tables") {
		t.Errorf("second block truncated: %q", result.Questions[1].Text)
	}
	if strings.Contains(result.Questions[0].Text, "*") {
		t.Errorf("emphasis markers not stripped: %q", result.Questions[0].Text)
	}
}

func TestMarkdownBlocks_MetaLineEndsAccumulation(t *testing.T) {
	input := strings.Join([]string{
		"**Question 1: Observability**",
		"Explain how you would add tracing to a legacy monolith.",
		"- **Assessment:** looks for concrete tooling knowledge",
		"this trailing note must not leak into the question",
		"**Question 2: Reliability**",
		"Describe your approach to setting error budgets.",
	}, "\n")

	p := NewParser()
	result, err := p.parseMarkdownBlocks(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(result.Questions))
	}
	if strings.Contains(result.Questions[0].Text, "trailing note") {
		t.Errorf("content after a metadata line leaked in: %q", result.Questions[0].Text)
	}
	if !strings.Contains(result.Questions[1].Text, "error budgets") {
		t.Errorf("second block lost: %q", result.Questions[1].Text)
	}
}

func TestMarkdownBlocks_QuotedHeaderForm(t *testing.T) {
	input := "**Question:** \"Explain the difference between buffered and unbuffered channels.\""

	p := NewParser()
	result, err := p.parseMarkdownBlocks(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(result.Questions))
	}
	if !strings.Contains(result.Questions[0].Text, "unbuffered channels") {
		t.Errorf("quoted header text lost: %q", result.Questions[0].Text)
	}
}

func TestMarkdownBlocks_NumberedFallbackWhenBlocksThin(t *testing.T) {
	// One header whose block is too short to emit, alongside plain numbered
	// lines: the internal numbered sweep should rescue them.
	input := strings.Join([]string{
		"1. **Question 1: Go**",
		"   - **Focus:** runtime internals",
		"2. Explain how goroutine scheduling works in the Go runtime.",
		"3. Describe the memory model guarantees around channel operations.",
	}, "\n")

	p := NewParser()
	result, err := p.parseMarkdownBlocks(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Questions) != 2 {
		t.Fatalf("expected the 2 swept numbered lines, got %d: %v", len(result.Questions), result.RawQuestions)
	}
	for _, raw := range result.RawQuestions {
		if strings.Contains(raw, "Question 1") {
			t.Errorf("header line leaked into swept questions: %q", raw)
		}
	}
}

func TestMarkdownBlocks_RejectsHeaderlessText(t *testing.T) {
	p := NewParser()
	if _, err := p.parseMarkdownBlocks("1. What is polymorphism?\n2. Explain REST APIs."); err == nil {
		t.Fatal("plain numbered text must fall through to the numbered strategy")
	}
}
