package parse

import (
	"regexp"
	"strings"
)

// Patterns is the read-only pattern library shared by every strategy.
// Build it once with DefaultPatterns and pass it by reference; it is never
// mutated after construction, so concurrent Parse calls need no locking.
type Patterns struct {
	// Length bounds for an acceptable question, in characters (runes).
	MinQuestionLength int
	MaxQuestionLength int

	// DefaultTimeEstimate is assigned when structured input omits one, in minutes.
	DefaultTimeEstimate int

	// MaxHeaderLength is the cutoff below which a line can be a section header.
	MaxHeaderLength int

	// MaxFallbackQuestions caps how many non-question lines the basic
	// fallback promotes to questions.
	MaxFallbackQuestions int

	numberedRE *regexp.Regexp // "1. text" or "1) text"
	bulletRE   *regexp.Regexp // "• text", "- text", "* text"

	// Markdown question-block header forms, tried in order.
	blockHeaderREs []*regexp.Regexp

	// Prefixes marking a metadata line inside a markdown question block.
	blockMetaPrefixes []string

	// Label forms stripped from the front of accumulated block lines.
	blockLabelREs []*regexp.Regexp

	sentenceSplitRE *regexp.Regexp

	questionKeywords       []string
	recommendationKeywords []string
	questionStarters       []string

	defaultQuestions       map[InterviewType][]string
	defaultRecommendations []string
}

// DefaultPatterns builds the standard pattern library.
func DefaultPatterns() *Patterns {
	return &Patterns{
		MinQuestionLength:    10,
		MaxQuestionLength:    500,
		DefaultTimeEstimate:  10,
		MaxHeaderLength:      30,
		MaxFallbackQuestions: 5,

		numberedRE: regexp.MustCompile(`^\d+[.)]\s*(.+)$`),
		bulletRE:   regexp.MustCompile(`^[•\-*]\s+(.+)$`),

		blockHeaderREs: []*regexp.Regexp{
			regexp.MustCompile(`^\d+[.)]\s*\*\*Question\s*\d*:?\s*([^*]+)\*\*`), // 1. **Question 1: Title**
			regexp.MustCompile(`^\*\*Question\s*\d*:?\s*([^*]+)\*\*`),           // **Question 1: Title**
			regexp.MustCompile(`^\*\*Question:\*\*\s*"([^"]+)"`),                // **Question:** "Text"
			regexp.MustCompile(`^\d+[.)]\s*\*\*([^*]+)\*\*\s*$`),                // 1. **Title**
		},

		blockMetaPrefixes: []string{
			"- **",
			"**assessment",
			"**what it tests",
			"*rationale",
			"*skills required",
			"*tests:",
			"*focus:",
		},

		blockLabelREs: []*regexp.Regexp{
			regexp.MustCompile(`^-\s+`),
			regexp.MustCompile(`^\*\*[^*]+\*\*:?\s*`),
			regexp.MustCompile(`^\*[^*]+:\*\s*`),
		},

		sentenceSplitRE: regexp.MustCompile(`[.!?]+`),

		questionKeywords: []string{
			"question", "interview", "ask", "queries", "topics",
		},
		recommendationKeywords: []string{
			"recommend", "suggest", "tip", "advice", "prepare",
			"practice", "review", "study", "focus", "consider",
		},
		questionStarters: []string{
			"what", "how", "why", "when", "where", "who", "which",
			"can you", "could you", "would you", "have you", "do you",
			"is there", "are there", "describe", "explain", "tell me",
		},

		defaultQuestions: map[InterviewType][]string{
			InterviewTechnical: {
				"Can you describe your experience with the technologies mentioned in the job description?",
				"How do you approach debugging complex issues in production?",
				"What's your experience with system design and architecture?",
				"Can you walk me through a challenging technical problem you solved?",
				"How do you stay updated with new technologies and best practices?",
			},
			InterviewBehavioral: {
				"Tell me about yourself and your background",
				"Why are you interested in this position?",
				"Describe a time when you had to work with a difficult team member",
				"How do you handle tight deadlines and pressure?",
				"What are your greatest strengths and areas for improvement?",
			},
			InterviewCaseStudy: {
				"How would you approach analyzing this business problem?",
				"What key metrics would you use to measure success?",
				"What are the main risks and how would you mitigate them?",
				"How would you prioritize different solutions?",
				"What would be your implementation timeline?",
			},
			InterviewReverse: {
				"What are the biggest challenges facing the team right now?",
				"How would you describe the team culture?",
				"What are the opportunities for growth and learning?",
				"What does success look like in this role?",
				"What's the typical career progression for this position?",
			},
		},
		defaultRecommendations: []string{
			"Review the job description and align your responses with key requirements",
			"Prepare specific examples from your past experience",
			"Research the company's recent news and initiatives",
			"Practice your responses out loud to improve delivery",
			"Prepare thoughtful questions to ask the interviewer",
		},
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// isRecommendation reports whether text reads like preparation advice
// rather than a question to be asked.
func (p *Patterns) isRecommendation(text string) bool {
	return containsAny(strings.ToLower(text), p.recommendationKeywords)
}

// looksLikeQuestion reports whether text starts with an interrogative lead
// phrase ("what", "can you", "describe", ...).
func (p *Patterns) looksLikeQuestion(text string) bool {
	lower := strings.ToLower(text)
	for _, starter := range p.questionStarters {
		if strings.HasPrefix(lower, starter) {
			return true
		}
	}
	return false
}

// stripEmphasis removes inline markdown bold/italic markers.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}
