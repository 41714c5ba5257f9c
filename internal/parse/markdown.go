package parse

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var numberedLineSweepRE = regexp.MustCompile(`(?m)^\d+[.)]\s*(.+)$`)

// parseMarkdownBlocks reassembles multi-line "header + scenario + question"
// blocks into single logical questions.
//
// Upstream models frequently emit one short bold header per question
// ("1. **Question 1: Topic**") followed by several indented lines of
// scenario and question prose. A naive numbered-line parser reads only the
// header and silently discards the substance, so this strategy runs before
// the plain line extractors.
//
// Per-line state machine: a header match finalizes any open accumulator and
// seeds a new one with the header's captured title. Content lines are
// stripped of list markers and bold/italic labels and appended. Metadata
// lines (assessment notes, skill lists) close the accumulator without
// starting a new block. EOF finalizes the last accumulator.
func (p *Parser) parseMarkdownBlocks(text string) (*Result, error) {
	result := &Result{}

	var current []string
	collecting := false
	headersSeen := 0

	finalize := func() {
		if len(current) == 0 {
			return
		}
		joined := stripEmphasis(strings.Join(current, " "))
		if utf8.RuneCountInString(joined) >= p.pats.MinQuestionLength {
			result.appendQuestion(Question{Text: joined})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if title, ok := p.matchBlockHeader(line); ok {
			finalize()
			current = []string{title}
			collecting = true
			headersSeen++
			continue
		}

		if !collecting {
			continue
		}

		if p.isBlockMetaLine(line) {
			// Assessment/skills annotations end the block's content; the
			// next header starts the next block.
			collecting = false
			continue
		}

		if cleaned := p.stripBlockLabels(line); cleaned != "" {
			current = append(current, cleaned)
		}
	}
	finalize()

	if headersSeen == 0 {
		return nil, fmt.Errorf("no question block headers")
	}

	// Headers were present but blocks assembled poorly: one more pass with
	// the plain numbered pattern before giving up. Header lines themselves
	// are already represented by their blocks and are skipped.
	if len(result.Questions) < 2 {
		for _, m := range numberedLineSweepRE.FindAllStringSubmatch(text, -1) {
			if _, ok := p.matchBlockHeader(strings.TrimSpace(m[0])); ok {
				continue
			}
			content := stripEmphasis(m[1])
			if utf8.RuneCountInString(content) >= p.pats.MinQuestionLength {
				result.appendQuestion(Question{Text: content})
			}
		}
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("no usable question blocks")
	}
	return result, nil
}

func (p *Parser) matchBlockHeader(line string) (string, bool) {
	for _, re := range p.pats.blockHeaderREs {
		if m := re.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

func (p *Parser) isBlockMetaLine(line string) bool {
	lower := strings.ToLower(line)
	for _, prefix := range p.pats.blockMetaPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// stripBlockLabels removes the leading list marker and any bold/italic label
// ("- *Scenario:* you are paged at 3am" -> "you are paged at 3am").
func (p *Parser) stripBlockLabels(line string) string {
	for _, re := range p.pats.blockLabelREs {
		line = re.ReplaceAllString(line, "")
	}
	return strings.TrimSpace(line)
}
