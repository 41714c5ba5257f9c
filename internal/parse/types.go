package parse

import "strings"

// Strategy identifies which extraction strategy produced a Result.
type Strategy string

const (
	StrategyStructured Strategy = "json_structured"
	StrategySimple     Strategy = "json_simple"
	StrategyMarkdown   Strategy = "markdown_blocks"
	StrategyNumbered   Strategy = "text_numbered"
	StrategyBulleted   Strategy = "text_bulleted"
	StrategyParagraph  Strategy = "text_paragraph"
	StrategyBasic      Strategy = "fallback_basic"
	StrategyDefault    Strategy = "default"
)

// Difficulty is the closed question difficulty enum. The zero value means
// "not set"; unknown inputs parse to the zero value instead of erroring so
// enrichment can fill only genuinely missing fields.
type Difficulty string

const (
	DifficultyUnset  Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty matches s against the closed enum, case-insensitively.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyUnset
	}
}

// Category is the closed question category enum. Zero value means "not set".
type Category string

const (
	CategoryUnset        Category = ""
	CategoryAlgorithms   Category = "algorithms"
	CategorySystemDesign Category = "system_design"
	CategoryCoding       Category = "coding"
	CategoryConceptual   Category = "conceptual"
	CategoryBehavioral   Category = "behavioral"
	CategoryCaseStudy    Category = "case_study"
)

// ParseCategory matches s against the closed enum, case-insensitively.
// Both "system_design" and "system-design" spellings are accepted.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "algorithms":
		return CategoryAlgorithms
	case "system_design":
		return CategorySystemDesign
	case "coding":
		return CategoryCoding
	case "conceptual":
		return CategoryConceptual
	case "behavioral":
		return CategoryBehavioral
	case "case_study":
		return CategoryCaseStudy
	default:
		return CategoryUnset
	}
}

// InterviewType is the kind of interview the caller is preparing for.
type InterviewType string

const (
	InterviewUnset      InterviewType = ""
	InterviewTechnical  InterviewType = "technical"
	InterviewBehavioral InterviewType = "behavioral"
	InterviewCaseStudy  InterviewType = "case_study"
	// InterviewReverse is "questions for the employer" preparation.
	InterviewReverse InterviewType = "reverse"
)

// ParseInterviewType matches s against the closed enum, case-insensitively.
func ParseInterviewType(s string) InterviewType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "technical":
		return InterviewTechnical
	case "behavioral":
		return InterviewBehavioral
	case "case_study":
		return InterviewCaseStudy
	case "reverse":
		return InterviewReverse
	default:
		return InterviewUnset
	}
}

// ExperienceLevel is the candidate's experience bracket.
type ExperienceLevel string

const (
	ExperienceUnset  ExperienceLevel = ""
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

// ParseExperienceLevel matches s against the closed enum, case-insensitively.
func ParseExperienceLevel(s string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return ExperienceJunior
	case "mid", "mid-level", "midlevel":
		return ExperienceMid
	case "senior":
		return ExperienceSenior
	case "lead", "principal":
		return ExperienceLead
	default:
		return ExperienceUnset
	}
}

// Context carries optional caller-supplied hints used by the enricher and
// the default synthesizer. The zero value means "no context".
type Context struct {
	InterviewType   InterviewType
	ExperienceLevel ExperienceLevel
}

// Question is a single parsed interview question with optional metadata.
type Question struct {
	Text         string         `json:"question"`
	Difficulty   Difficulty     `json:"difficulty,omitempty"`
	Category     Category       `json:"category,omitempty"`
	TimeEstimate int            `json:"time_estimate,omitempty"` // minutes
	Hints        []string       `json:"hints,omitempty"`
	FollowUps    []string       `json:"follow_ups,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Result is the complete output of one Parse call.
//
// Invariants: Questions is non-empty whenever Success is true;
// len(RawQuestions) == len(Questions); StrategyUsed is always set;
// ErrorMessage is set iff Success is false. The caller owns the Result;
// the parser keeps no reference to it.
type Result struct {
	Questions       []Question     `json:"questions"`
	Recommendations []string       `json:"recommendations"`
	RawQuestions    []string       `json:"raw_questions"`
	StrategyUsed    Strategy       `json:"strategy_used"`
	Success         bool           `json:"success"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// appendQuestion adds q to both Questions and the parallel RawQuestions list.
func (r *Result) appendQuestion(q Question) {
	r.Questions = append(r.Questions, q)
	r.RawQuestions = append(r.RawQuestions, q.Text)
}
