package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// parseParagraph splits prose on sentence terminators and classifies each
// sentence as question-like or recommendation-like. Sentences matching
// neither are discarded.
func (p *Parser) parseParagraph(text string) (*Result, error) {
	result := &Result{}

	for _, sentence := range p.pats.sentenceSplitRE.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		switch {
		case p.pats.looksLikeQuestion(sentence):
			result.appendQuestion(Question{Text: ensureQuestionMark(sentence)})
		case p.pats.isRecommendation(sentence):
			result.Recommendations = append(result.Recommendations, sentence)
		}
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("no question-like sentences")
	}
	return result, nil
}

// parseFallbackBasic is the last-resort strategy: any substantial line can
// become a question. Lines containing a question mark or starting with an
// interrogative phrase are preferred; beyond that, lines are accepted as-is
// until the fallback cap is reached.
func (p *Parser) parseFallbackBasic(text string) (*Result, error) {
	result := &Result{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || utf8.RuneCountInString(line) < p.pats.MinQuestionLength {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "===") || strings.HasPrefix(line, "---") {
			continue
		}

		switch {
		case strings.Contains(line, "?") || p.pats.looksLikeQuestion(line):
			result.appendQuestion(Question{Text: ensureQuestionMark(line)})
		case p.pats.isRecommendation(line):
			result.Recommendations = append(result.Recommendations, line)
		case len(result.Questions) < p.pats.MaxFallbackQuestions:
			result.appendQuestion(Question{Text: line})
		}
	}

	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("no usable lines")
	}
	return result, nil
}

func ensureQuestionMark(s string) string {
	if strings.HasSuffix(s, "?") {
		return s
	}
	return s + "?"
}
