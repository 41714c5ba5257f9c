// Package generate is the front door for producing fresh interview
// questions: it builds a prompt, calls the configured LLM provider, and
// runs the raw completion through the extraction engine.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/prepdeck/prepdeck/internal/llm"
	"github.com/prepdeck/prepdeck/internal/parse"
	"github.com/prepdeck/prepdeck/internal/prompt"
)

// Request describes one generation call.
type Request struct {
	JobDescription  string
	InterviewType   parse.InterviewType
	ExperienceLevel parse.ExperienceLevel
	Technique       prompt.Technique
	QuestionCount   int     // 0 = catalog default
	MaxTokens       int     // 0 = provider default
	Temperature     float64 // 0 = deterministic
}

// Result is a parse result plus generation provenance.
type Result struct {
	Parse     parse.Result
	RawOutput string
	Model     string
	Technique prompt.Technique
	Latency   time.Duration
}

// Generator wires a provider to the one extraction engine.
type Generator struct {
	provider llm.Provider
	parser   *parse.Parser
}

// New builds a Generator. Both arguments are required.
func New(provider llm.Provider, parser *parse.Parser) *Generator {
	return &Generator{provider: provider, parser: parser}
}

// Generate runs one prompt -> completion -> parse round trip. Provider and
// prompt errors are returned; parse degradation is not an error, since the
// engine always yields a usable Result, falling back to canned defaults.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	built, err := prompt.Build(prompt.Request{
		Technique:       req.Technique,
		InterviewType:   req.InterviewType,
		ExperienceLevel: req.ExperienceLevel,
		JobDescription:  req.JobDescription,
		QuestionCount:   req.QuestionCount,
	})
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	start := time.Now()
	raw, err := g.provider.Complete(ctx, built.User, llm.CompletionOpts{
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		JSONMode:    built.Format == "json",
		System:      built.System,
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	result := g.parser.Parse(raw, parse.Context{
		InterviewType:   req.InterviewType,
		ExperienceLevel: req.ExperienceLevel,
	})

	return &Result{
		Parse:     result,
		RawOutput: raw,
		Model:     g.provider.Name(),
		Technique: req.Technique,
		Latency:   time.Since(start),
	}, nil
}
