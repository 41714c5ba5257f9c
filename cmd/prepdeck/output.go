package main

import (
	"fmt"
	"strings"

	"github.com/prepdeck/prepdeck/internal/parse"
)

// printResult renders a parse result for the terminal.
func printResult(r parse.Result) {
	fmt.Print(formatResult(r))
}

func formatResult(r parse.Result) string {
	var sb strings.Builder

	if r.Success {
		fmt.Fprintf(&sb, "Parsed %d question(s) via %s\n\n", len(r.Questions), r.StrategyUsed)
	} else {
		fmt.Fprintf(&sb, "Could not parse input (%s); showing default question set\n\n", r.ErrorMessage)
	}

	for i, q := range r.Questions {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, q.Text)
		if tags := questionTags(q); tags != "" {
			fmt.Fprintf(&sb, "    [%s]\n", tags)
		}
		for _, hint := range q.Hints {
			fmt.Fprintf(&sb, "    hint: %s\n", hint)
		}
		for _, fu := range q.FollowUps {
			fmt.Fprintf(&sb, "    follow-up: %s\n", fu)
		}
	}

	if len(r.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", rec)
		}
	}
	return sb.String()
}

func questionTags(q parse.Question) string {
	var tags []string
	if q.Difficulty != parse.DifficultyUnset {
		tags = append(tags, string(q.Difficulty))
	}
	if q.Category != parse.CategoryUnset {
		tags = append(tags, string(q.Category))
	}
	if q.TimeEstimate > 0 {
		tags = append(tags, fmt.Sprintf("%dm", q.TimeEstimate))
	}
	return strings.Join(tags, ", ")
}
