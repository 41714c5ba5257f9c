package parse

import "strings"

// Keyword groups used to refine the category of technical questions.
var (
	algorithmKeywords    = []string{"algorithm", "complexity", "sort", "search"}
	systemDesignKeywords = []string{"design", "architecture", "scale", "system"}
	codingKeywords       = []string{"code", "implement", "write", "function"}
)

// enrich fills missing difficulty and category fields on an accepted result
// using the caller-supplied context, and records the context tags in the
// result metadata. Fields already set by a strategy are left alone.
func (p *Parser) enrich(r *Result, pctx Context) {
	if pctx.InterviewType == InterviewUnset && pctx.ExperienceLevel == ExperienceUnset {
		return
	}

	if r.Metadata == nil {
		r.Metadata = make(map[string]any, 2)
	}
	if pctx.InterviewType != InterviewUnset {
		r.Metadata["interview_type"] = string(pctx.InterviewType)
	}
	if pctx.ExperienceLevel != ExperienceUnset {
		r.Metadata["experience_level"] = string(pctx.ExperienceLevel)
	}

	for i := range r.Questions {
		q := &r.Questions[i]
		if q.Difficulty == DifficultyUnset {
			q.Difficulty = difficultyFor(pctx.ExperienceLevel)
		}
		if q.Category == CategoryUnset {
			q.Category = categoryFor(pctx.InterviewType, q.Text)
		}
	}
}

// difficultyFor maps an experience level to a question difficulty.
// Returns DifficultyUnset when no level was supplied.
func difficultyFor(level ExperienceLevel) Difficulty {
	switch level {
	case ExperienceJunior:
		return DifficultyEasy
	case ExperienceMid:
		return DifficultyMedium
	case ExperienceSenior, ExperienceLead:
		return DifficultyHard
	default:
		return DifficultyUnset
	}
}

// categoryFor maps an interview type to a question category. Technical
// questions are refined by scanning the question text for domain keywords;
// the other types map to a fixed category.
func categoryFor(it InterviewType, questionText string) Category {
	switch it {
	case InterviewTechnical:
		lower := strings.ToLower(questionText)
		switch {
		case containsAny(lower, algorithmKeywords):
			return CategoryAlgorithms
		case containsAny(lower, systemDesignKeywords):
			return CategorySystemDesign
		case containsAny(lower, codingKeywords):
			return CategoryCoding
		default:
			return CategoryConceptual
		}
	case InterviewBehavioral:
		return CategoryBehavioral
	case InterviewCaseStudy:
		return CategoryCaseStudy
	case InterviewReverse:
		return CategoryConceptual
	default:
		return CategoryUnset
	}
}
