// Package prompt builds the generation prompts sent to an LLM provider.
// The catalog covers five prompting techniques across the four interview
// types; it produces text only and never talks to a provider itself.
package prompt

import (
	"fmt"
	"strings"

	"github.com/prepdeck/prepdeck/internal/parse"
)

// Technique selects the prompting style used for a generation request.
type Technique string

const (
	TechniqueZeroShot         Technique = "zero_shot"
	TechniqueFewShot          Technique = "few_shot"
	TechniqueChainOfThought   Technique = "chain_of_thought"
	TechniqueRoleBased        Technique = "role_based"
	TechniqueStructuredOutput Technique = "structured_output"
)

// ParseTechnique matches s against the known techniques, case-insensitively.
// Both "chain_of_thought" and "chain-of-thought" spellings are accepted.
func ParseTechnique(s string) (Technique, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "", "structured_output", "structured":
		return TechniqueStructuredOutput, nil
	case "zero_shot":
		return TechniqueZeroShot, nil
	case "few_shot":
		return TechniqueFewShot, nil
	case "chain_of_thought", "cot":
		return TechniqueChainOfThought, nil
	case "role_based", "role":
		return TechniqueRoleBased, nil
	default:
		return "", fmt.Errorf("unknown prompt technique: %q", s)
	}
}

// Request describes one prompt to build.
type Request struct {
	Technique       Technique
	InterviewType   parse.InterviewType
	ExperienceLevel parse.ExperienceLevel
	JobDescription  string
	QuestionCount   int // 0 = default (5)
}

// Prompt is the built provider input. Format is "json" when the prompt asks
// for machine-readable output and the provider should request JSON mode.
type Prompt struct {
	System string
	User   string
	Format string
}

const defaultQuestionCount = 5

const structuredSystemPrompt = `You are an interview preparation assistant. You generate interview questions as machine-readable JSON.

RULES:
1. Return ONLY a JSON object, no prose before or after
2. Ground every question in the supplied job description
3. Match difficulty to the candidate's experience level
4. Include 3-5 preparation recommendations

JSON SCHEMA:
{
  "questions": [
    {
      "question": "the full question text",
      "difficulty": "easy | medium | hard",
      "category": "algorithms | system_design | coding | conceptual | behavioral | case_study",
      "time_estimate": 10,
      "hints": ["optional hint"],
      "follow_ups": ["optional follow-up question"]
    }
  ],
  "recommendations": ["preparation advice"]
}`

const roleBasedSystemPrompt = `You are a senior %s conducting a %s interview. You have interviewed hundreds of candidates and know which questions separate strong candidates from weak ones at the %s level. Stay fully in character: ask the questions you would actually ask in the room.`

const chainOfThoughtLead = `Before writing any questions, reason step by step:
1. Identify the core skills the job description demands.
2. Decide which of those skills a %s interview can actually probe.
3. Calibrate difficulty for a %s candidate.
4. Only then write the questions.

Show the questions as a numbered list after your reasoning, under a "Questions:" heading.`

// Build assembles the prompt for req. Unknown techniques are an error;
// unset interview type defaults to technical framing.
func Build(req Request) (Prompt, error) {
	count := req.QuestionCount
	if count <= 0 {
		count = defaultQuestionCount
	}
	it := req.InterviewType
	if it == parse.InterviewUnset {
		it = parse.InterviewTechnical
	}
	level := levelPhrase(req.ExperienceLevel)
	focus := typeFocus(it)

	jd := strings.TrimSpace(req.JobDescription)
	if jd == "" {
		jd = "(no job description provided)"
	}

	switch req.Technique {
	case TechniqueStructuredOutput:
		return Prompt{
			System: structuredSystemPrompt,
			User: fmt.Sprintf("Generate %d %s interview questions for a %s candidate.\n\nJob Description:\n%s\n\n%s",
				count, it, level, jd, focus),
			Format: "json",
		}, nil

	case TechniqueZeroShot:
		return Prompt{
			User: fmt.Sprintf("Generate %d %s interview questions for a %s candidate.\n\nJob Description:\n%s\n\n%s\n\nQuestions:",
				count, it, level, jd, focus),
		}, nil

	case TechniqueFewShot:
		return Prompt{
			User: fmt.Sprintf("Here is an example of the output style:\n\n%s\nNow generate %d %s interview questions for a %s candidate in the same numbered style.\n\nJob Description:\n%s\n\n%s",
				fewShotExample(it), count, it, level, jd, focus),
		}, nil

	case TechniqueChainOfThought:
		return Prompt{
			User: fmt.Sprintf("%s\n\nGenerate %d %s interview questions for a %s candidate.\n\nJob Description:\n%s",
				fmt.Sprintf(chainOfThoughtLead, it, level), count, it, level, jd),
		}, nil

	case TechniqueRoleBased:
		return Prompt{
			System: fmt.Sprintf(roleBasedSystemPrompt, interviewerRole(it), it, level),
			User: fmt.Sprintf("Ask me your %d best %s interview questions for this role, as a numbered list.\n\nJob Description:\n%s",
				count, it, jd),
		}, nil

	default:
		return Prompt{}, fmt.Errorf("unknown prompt technique: %q", req.Technique)
	}
}

func levelPhrase(level parse.ExperienceLevel) string {
	switch level {
	case parse.ExperienceJunior:
		return "junior (1-2 years of experience)"
	case parse.ExperienceMid:
		return "mid-level (3-5 years of experience)"
	case parse.ExperienceSenior:
		return "senior (6+ years of experience)"
	case parse.ExperienceLead:
		return "lead/principal"
	default:
		return "mid-level"
	}
}

func typeFocus(it parse.InterviewType) string {
	switch it {
	case parse.InterviewBehavioral:
		return "Focus on past behavior, collaboration, conflict, and ownership. Favor STAR-answerable questions."
	case parse.InterviewCaseStudy:
		return "Frame each question around a realistic business or engineering scenario the candidate must work through."
	case parse.InterviewReverse:
		return "These are questions the CANDIDATE should ask the employer to evaluate the team, the role, and growth."
	default:
		return "Test practical knowledge of the technologies in the job description, problem solving, and design judgment."
	}
}

func interviewerRole(it parse.InterviewType) string {
	switch it {
	case parse.InterviewBehavioral:
		return "engineering manager"
	case parse.InterviewCaseStudy:
		return "management consultant"
	case parse.InterviewReverse:
		return "career coach"
	default:
		return "staff engineer"
	}
}

func fewShotExample(it parse.InterviewType) string {
	switch it {
	case parse.InterviewBehavioral:
		return "1. Tell me about a time you disagreed with a teammate's technical decision. What did you do?\n2. Describe a project that slipped. What would you change in hindsight?\n"
	case parse.InterviewCaseStudy:
		return "1. Our checkout conversion dropped 15% after a redesign. How would you investigate?\n2. You must cut infrastructure spend 30% without hurting latency. Walk me through your plan.\n"
	case parse.InterviewReverse:
		return "1. What does the on-call load actually look like for this team?\n2. How are technical disagreements resolved here?\n"
	default:
		return "1. How would you design a rate limiter for a public API?\n2. Explain how you would debug a memory leak in production.\n"
	}
}
