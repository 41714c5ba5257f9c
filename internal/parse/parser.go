// Package parse turns free-form language-model output into structured
// interview questions and preparation recommendations.
//
// Upstream generations arrive in unpredictable shapes: clean JSON, JSON
// buried in markdown fences or prose, numbered or bulleted lists, multi-line
// "header + scenario + question" blocks, or plain paragraphs. The parser
// runs an ordered cascade of independent strategies over the text, gates
// each candidate through a validator, enriches the first accepted candidate
// with caller context, and falls back to a canned default result when
// nothing matches. Parse is total: it never returns an error and never
// returns an empty question list.
package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// strategyFunc attempts one extraction algorithm. It returns a candidate
// Result or an error when the text does not fit the strategy's shape.
// Errors are normal cascade behavior, not failures to report.
type strategyFunc func(text string) (*Result, error)

type strategyEntry struct {
	tag Strategy
	run strategyFunc
}

// Parser is the strategy dispatcher. It is stateless across calls; a single
// Parser is safe for concurrent use.
type Parser struct {
	pats       *Patterns
	strategies []strategyEntry
}

// NewParser builds a Parser with the default pattern library.
func NewParser() *Parser {
	return NewParserWithPatterns(DefaultPatterns())
}

// NewParserWithPatterns builds a Parser around an existing pattern library.
// The Parser keeps the reference; pats must not be mutated afterwards.
func NewParserWithPatterns(pats *Patterns) *Parser {
	p := &Parser{pats: pats}
	p.strategies = []strategyEntry{
		{StrategyStructured, p.parseJSONStructured},
		{StrategySimple, p.parseJSONSimple},
		{StrategyMarkdown, p.parseMarkdownBlocks},
		{StrategyNumbered, p.parseNumbered},
		{StrategyBulleted, p.parseBulleted},
		{StrategyParagraph, p.parseParagraph},
		{StrategyBasic, p.parseFallbackBasic},
	}
	return p
}

// Parse extracts questions and recommendations from text. Strategies are
// tried in priority order; the first candidate accepted by the validator is
// enriched with pctx and returned. When text is empty or every strategy is
// rejected, the canned default result is returned with Success=false.
func (p *Parser) Parse(text string, pctx Context) Result {
	if strings.TrimSpace(text) == "" {
		return p.defaultResult(pctx, "empty input")
	}

	var lastErr error
	for _, s := range p.strategies {
		candidate, err := s.run(text)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", s.tag, err)
			continue
		}
		if err := p.validate(candidate); err != nil {
			lastErr = fmt.Errorf("%s: %w", s.tag, err)
			continue
		}
		candidate.StrategyUsed = s.tag
		candidate.Success = true
		p.enrich(candidate, pctx)
		return *candidate
	}

	detail := "no strategy produced a usable result"
	if lastErr != nil {
		detail = lastErr.Error()
	}
	return p.defaultResult(pctx, detail)
}

// validate is the acceptance gate: a candidate needs at least one question,
// every question text within the configured length bounds, and the raw list
// parallel to the structured one.
func (p *Parser) validate(r *Result) error {
	if r == nil || len(r.Questions) == 0 {
		return fmt.Errorf("no questions extracted")
	}
	if len(r.RawQuestions) != len(r.Questions) {
		return fmt.Errorf("raw question list out of sync: %d vs %d", len(r.RawQuestions), len(r.Questions))
	}
	for i, q := range r.Questions {
		if n := utf8.RuneCountInString(q.Text); n < p.pats.MinQuestionLength || n > p.pats.MaxQuestionLength {
			return fmt.Errorf("question %d length %d outside [%d,%d]",
				i+1, n, p.pats.MinQuestionLength, p.pats.MaxQuestionLength)
		}
	}
	return nil
}
