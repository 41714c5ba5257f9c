package parse

import (
	"fmt"
	"regexp"
	"strings"
)

var bulletLineSweepRE = regexp.MustCompile(`(?m)^[•\-*]\s+(.+)$`)

// lineMarker distinguishes which list marker introduced a scanned line.
type lineMarker int

const (
	markerNumbered lineMarker = iota
	markerBullet
)

type scannedLine struct {
	content string
	marker  lineMarker
}

// parseNumbered extracts questions from numbered lists ("1." / "1)").
// Recommendation lines are accepted with either marker; the strategy fails
// unless at least one question came from a numbered line.
func (p *Parser) parseNumbered(text string) (*Result, error) {
	return p.parseLinePatterns(text, markerNumbered, numberedLineSweepRE)
}

// parseBulleted extracts questions from bulleted lists ("•" / "-" / "*").
func (p *Parser) parseBulleted(text string) (*Result, error) {
	return p.parseLinePatterns(text, markerBullet, bulletLineSweepRE)
}

// parseLinePatterns is the shared per-line scan. Section headers toggle the
// current section between questions and recommendations; list lines are
// routed accordingly. The primary marker decides which lines may become
// questions; recommendation content is taken from either marker so advice
// sections formatted the other way aren't lost.
func (p *Parser) parseLinePatterns(text string, primary lineMarker, sweepRE *regexp.Regexp) (*Result, error) {
	result := &Result{}
	section := ""
	headersSeen := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		item, ok := p.matchListLine(line)
		if !ok {
			// A list line is never a section header, even when short and
			// keyword-bearing ("- Review OOP basics" is content, not a header).
			if sec, header := p.sectionFor(line); header {
				headersSeen = true
				if sec != "" {
					section = sec
				}
			}
			continue
		}

		if section == "recommendations" || p.pats.isRecommendation(item.content) {
			result.Recommendations = append(result.Recommendations, item.content)
			continue
		}
		if item.marker == primary {
			result.appendQuestion(Question{Text: item.content})
		}
	}

	// No headers and nothing matched: one generic sweep over the whole text
	// with the primary pattern, no section awareness.
	if len(result.Questions) == 0 && len(result.Recommendations) == 0 && !headersSeen {
		for _, m := range sweepRE.FindAllStringSubmatch(text, -1) {
			content := stripEmphasis(m[1])
			if content != "" {
				result.appendQuestion(Question{Text: content})
			}
		}
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("no list questions found")
	}
	return result, nil
}

// sectionFor reports whether line is a section header and, if so, which
// section it opens ("questions", "recommendations", or "" when the header
// names neither domain).
func (p *Parser) sectionFor(line string) (string, bool) {
	lower := strings.ToLower(line)
	isHeader := len(line) < p.pats.MaxHeaderLength &&
		(strings.HasSuffix(line, ":") ||
			containsAny(lower, p.pats.questionKeywords) ||
			containsAny(lower, p.pats.recommendationKeywords))
	if !isHeader {
		return "", false
	}
	switch {
	case containsAny(lower, p.pats.questionKeywords):
		return "questions", true
	case containsAny(lower, p.pats.recommendationKeywords):
		return "recommendations", true
	default:
		return "", true
	}
}

// matchListLine matches line against the numbered then bulleted pattern and
// returns the marker-stripped, emphasis-stripped content.
func (p *Parser) matchListLine(line string) (scannedLine, bool) {
	if m := p.pats.numberedRE.FindStringSubmatch(line); m != nil {
		return scannedLine{content: stripEmphasis(m[1]), marker: markerNumbered}, true
	}
	if m := p.pats.bulletRE.FindStringSubmatch(line); m != nil {
		return scannedLine{content: stripEmphasis(m[1]), marker: markerBullet}, true
	}
	return scannedLine{}, false
}
