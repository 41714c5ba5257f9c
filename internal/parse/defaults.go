package parse

// defaultResult synthesizes the canned fallback output, used for empty input
// and when every strategy was rejected. The question set matches the
// supplied interview type; without one, a mixed technical + behavioral set
// is used. Output is always non-empty and flagged unsuccessful, with detail
// carrying either "empty input" or the last strategy failure.
func (p *Parser) defaultResult(pctx Context, detail string) Result {
	texts, ok := p.pats.defaultQuestions[pctx.InterviewType]
	if !ok {
		technical := p.pats.defaultQuestions[InterviewTechnical]
		behavioral := p.pats.defaultQuestions[InterviewBehavioral]
		texts = append(append([]string{}, technical[:3]...), behavioral[:2]...)
	}

	difficulty := difficultyFor(pctx.ExperienceLevel)
	if difficulty == DifficultyUnset {
		difficulty = DifficultyMedium
	}

	result := Result{
		StrategyUsed: StrategyDefault,
		Success:      false,
		ErrorMessage: detail,
		Metadata: map[string]any{
			"is_default": true,
			"reason":     "parsing_failed",
		},
	}
	for _, text := range texts {
		result.appendQuestion(Question{
			Text:         text,
			Difficulty:   difficulty,
			TimeEstimate: p.pats.DefaultTimeEstimate,
		})
	}
	result.Recommendations = append([]string{}, p.pats.defaultRecommendations...)

	if pctx.InterviewType != InterviewUnset {
		result.Metadata["interview_type"] = string(pctx.InterviewType)
	}
	if pctx.ExperienceLevel != ExperienceUnset {
		result.Metadata["experience_level"] = string(pctx.ExperienceLevel)
	}
	return result
}
