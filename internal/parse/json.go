package parse

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON locates a JSON payload embedded in surrounding text. It tries,
// in order: a ```json fenced block, any fenced block whose content starts
// with '{' or '[', and finally a balanced brace/bracket scan from the first
// opening symbol. The scan tracks string and escape state so braces inside
// quoted values don't unbalance it.
func extractJSON(text string) (string, error) {
	if fenced, ok := extractFencedJSON(text); ok {
		return fenced, nil
	}
	if candidate, ok := scanBalancedJSON(text); ok {
		return candidate, nil
	}
	return "", fmt.Errorf("no JSON payload found")
}

// extractFencedJSON pulls JSON out of a markdown code fence. A fence tagged
// "json" wins; an untagged fence counts only when its content starts with a
// JSON opening symbol.
func extractFencedJSON(text string) (string, bool) {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		start := idx + len("```json")
		if end := strings.Index(text[start:], "```"); end > 0 {
			return strings.TrimSpace(text[start : start+end]), true
		}
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		start := idx + 3
		if end := strings.Index(text[start:], "```"); end > 0 {
			candidate := strings.TrimSpace(text[start : start+end])
			if strings.HasPrefix(candidate, "{") || strings.HasPrefix(candidate, "[") {
				return candidate, true
			}
		}
	}
	return "", false
}

// scanBalancedJSON finds the first '{' or '[' and scans forward counting
// nested open/close symbols until the matching close, ignoring symbols
// inside string literals.
func scanBalancedJSON(text string) (string, bool) {
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", false
	}

	stack := make([]byte, 0, 8)
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			top := stack[len(stack)-1]
			if (top == '{' && c == '}') || (top == '[' && c == ']') {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					return text[start : i+1], true
				}
			} else {
				return "", false
			}
		}
	}
	return "", false
}

// structuredPayload is the full documented response shape. Question entries
// stay raw so each can resolve to either an object or a plain string.
type structuredPayload struct {
	Questions       []json.RawMessage `json:"questions"`
	Recommendations json.RawMessage   `json:"recommendations"`
	Metadata        map[string]any    `json:"metadata"`
}

// structuredQuestion is the object variant of a question entry. Aliases
// cover the field spellings observed across upstream models.
type structuredQuestion struct {
	Question             string         `json:"question"`
	Difficulty           string         `json:"difficulty"`
	Category             string         `json:"category"`
	TimeEstimate         *int           `json:"time_estimate"`
	EstimatedTimeMinutes *int           `json:"estimated_time_minutes"`
	Hints                []string       `json:"hints"`
	FollowUps            []string       `json:"follow_ups"`
	FollowUpQuestions    []string       `json:"follow_up_questions"`
	Metadata             map[string]any `json:"metadata"`
}

// parseJSONStructured decodes the full metadata-bearing JSON shape. At least
// one question entry must be an object; an all-strings array is left for the
// simple strategy so the result is tagged with the right strategy.
func (p *Parser) parseJSONStructured(text string) (*Result, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	result := &Result{
		Recommendations: decodeStringList(payload.Recommendations),
		Metadata:        payload.Metadata,
	}

	objects := 0
	for _, entry := range payload.Questions {
		var plain string
		if err := json.Unmarshal(entry, &plain); err == nil {
			if qt := strings.TrimSpace(plain); qt != "" {
				result.appendQuestion(Question{Text: qt})
			}
			continue
		}

		var sq structuredQuestion
		if err := json.Unmarshal(entry, &sq); err != nil {
			return nil, fmt.Errorf("decoding question entry: %w", err)
		}
		objects++

		qt := strings.TrimSpace(sq.Question)
		if qt == "" {
			continue
		}

		q := Question{
			Text:         qt,
			Difficulty:   ParseDifficulty(sq.Difficulty),
			Category:     ParseCategory(sq.Category),
			TimeEstimate: p.pats.DefaultTimeEstimate,
			Hints:        sq.Hints,
			FollowUps:    sq.FollowUps,
			Metadata:     sq.Metadata,
		}
		switch {
		case sq.TimeEstimate != nil:
			q.TimeEstimate = *sq.TimeEstimate
		case sq.EstimatedTimeMinutes != nil:
			q.TimeEstimate = *sq.EstimatedTimeMinutes
		}
		if len(q.FollowUps) == 0 {
			q.FollowUps = sq.FollowUpQuestions
		}
		result.appendQuestion(q)
	}

	if objects == 0 {
		return nil, fmt.Errorf("no structured question entries")
	}
	return result, nil
}

// simplePayload is the reduced shape: plain string arrays only.
type simplePayload struct {
	Questions       []string        `json:"questions"`
	Recommendations json.RawMessage `json:"recommendations"`
}

// parseJSONSimple decodes the reduced JSON shape.
func (p *Parser) parseJSONSimple(text string) (*Result, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var payload simplePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	result := &Result{
		Recommendations: decodeStringList(payload.Recommendations),
	}
	for _, qt := range payload.Questions {
		if qt = strings.TrimSpace(qt); qt != "" {
			result.appendQuestion(Question{Text: qt})
		}
	}
	return result, nil
}

// decodeStringList tolerantly decodes a JSON value expected to be a string
// array. Anything else (missing, wrong type) yields nil rather than an
// error, matching the "treat malformed optional fields as absent" rule.
func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
