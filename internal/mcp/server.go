// Package mcp provides the Model Context Protocol server for prepdeck.
//
// It exposes parsing and generation as MCP tools (prepdeck_parse,
// prepdeck_generate, prepdeck_history) and the session log as MCP resources
// (prepdeck://stats, prepdeck://sessions/recent). Stdio transport only.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prepdeck/prepdeck/internal/generate"
	"github.com/prepdeck/prepdeck/internal/parse"
	"github.com/prepdeck/prepdeck/internal/prompt"
	"github.com/prepdeck/prepdeck/internal/store"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Parser    *parse.Parser
	Store     store.Store         // optional; tools degrade without it
	Generator *generate.Generator // optional; nil when no provider is configured
	Version   string
}

// dbMu serializes tool calls that touch the database. The mcp-go library
// dispatches handlers concurrently via goroutines and SQLite supports only
// one writer at a time.
var dbMu sync.Mutex

// NewServer creates a configured MCP server with all prepdeck tools and
// resources.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}
	parser := cfg.Parser
	if parser == nil {
		parser = parse.NewParser()
	}

	s := server.NewMCPServer(
		"PrepDeck",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	registerParseTool(s, parser, cfg.Store)
	registerGenerateTool(s, cfg.Generator, cfg.Store)
	registerHistoryTool(s, cfg.Store)

	registerStatsResource(s, cfg.Store)
	registerRecentResource(s, cfg.Store)

	return s
}

// --- Tools ---

func registerParseTool(s *server.MCPServer, parser *parse.Parser, st store.Store) {
	tool := mcp.NewTool("prepdeck_parse",
		mcp.WithDescription("Parse raw LLM output into structured interview questions and recommendations. Always returns a usable result; unparseable input falls back to a canned default set with success=false."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The raw model output to parse"),
		),
		mcp.WithString("interview_type",
			mcp.Description("Interview type for enrichment and defaults"),
			mcp.Enum("technical", "behavioral", "case_study", "reverse"),
		),
		mcp.WithString("experience_level",
			mcp.Description("Candidate experience level for difficulty enrichment"),
			mcp.Enum("junior", "mid", "senior", "lead"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError("text is required"), nil
		}

		pctx := parse.Context{}
		if it, err := req.RequireString("interview_type"); err == nil {
			pctx.InterviewType = parse.ParseInterviewType(it)
		}
		if lvl, err := req.RequireString("experience_level"); err == nil {
			pctx.ExperienceLevel = parse.ParseExperienceLevel(lvl)
		}

		result := parser.Parse(text, pctx)
		recordParseSession(ctx, st, store.KindParse, pctx, result, text, "", "")

		data, _ := json.MarshalIndent(result, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerGenerateTool(s *server.MCPServer, gen *generate.Generator, st store.Store) {
	tool := mcp.NewTool("prepdeck_generate",
		mcp.WithDescription("Generate interview questions for a job description using the configured LLM provider, then parse them into structured form."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("job_description",
			mcp.Required(),
			mcp.Description("The job description to generate questions for"),
		),
		mcp.WithString("interview_type",
			mcp.Description("Interview type (default: technical)"),
			mcp.Enum("technical", "behavioral", "case_study", "reverse"),
		),
		mcp.WithString("experience_level",
			mcp.Description("Candidate experience level"),
			mcp.Enum("junior", "mid", "senior", "lead"),
		),
		mcp.WithString("technique",
			mcp.Description("Prompting technique (default: structured_output)"),
			mcp.Enum("zero_shot", "few_shot", "chain_of_thought", "role_based", "structured_output"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of questions to request (default: 5, max: 20)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if gen == nil {
			return mcp.NewToolResultError("generation is not configured: no LLM provider API key available"), nil
		}

		jd, err := req.RequireString("job_description")
		if err != nil || strings.TrimSpace(jd) == "" {
			return mcp.NewToolResultError("job_description is required"), nil
		}

		genReq := generate.Request{
			JobDescription: jd,
			Technique:      prompt.TechniqueStructuredOutput,
		}
		if it, err := req.RequireString("interview_type"); err == nil {
			genReq.InterviewType = parse.ParseInterviewType(it)
		}
		if lvl, err := req.RequireString("experience_level"); err == nil {
			genReq.ExperienceLevel = parse.ParseExperienceLevel(lvl)
		}
		if tech, err := req.RequireString("technique"); err == nil && tech != "" {
			parsed, err := prompt.ParseTechnique(tech)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid technique: %v", err)), nil
			}
			genReq.Technique = parsed
		}
		if countVal, err := req.RequireFloat("count"); err == nil {
			count := int(countVal)
			if count > 20 {
				count = 20
			}
			if count > 0 {
				genReq.QuestionCount = count
			}
		}

		res, err := gen.Generate(ctx, genReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generation error: %v", err)), nil
		}

		pctx := parse.Context{InterviewType: genReq.InterviewType, ExperienceLevel: genReq.ExperienceLevel}
		recordParseSession(ctx, st, store.KindGenerate, pctx, res.Parse, res.RawOutput, res.Model, string(res.Technique))

		payload := map[string]any{
			"result":     res.Parse,
			"model":      res.Model,
			"technique":  res.Technique,
			"latency_ms": res.Latency.Milliseconds(),
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerHistoryTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("prepdeck_history",
		mcp.WithDescription("List recent parse and generate sessions from the session log, newest first."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of sessions (default: 10, max: 50)"),
		),
		mcp.WithString("kind",
			mcp.Description("Filter by session kind"),
			mcp.Enum("parse", "generate"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if st == nil {
			return mcp.NewToolResultError("session log is not configured"), nil
		}

		dbMu.Lock()
		defer dbMu.Unlock()

		opts := store.ListOpts{Limit: 10}
		if limitVal, err := req.RequireFloat("limit"); err == nil {
			limit := int(limitVal)
			if limit > 50 {
				limit = 50
			}
			if limit > 0 {
				opts.Limit = limit
			}
		}
		if kind, err := req.RequireString("kind"); err == nil && kind != "" {
			opts.Kind = kind
		}

		sessions, err := st.ListSessions(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(sessionSummaries(sessions), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// recordParseSession best-effort logs one tool call. A nil store or a save
// failure never fails the tool.
func recordParseSession(ctx context.Context, st store.Store, kind string, pctx parse.Context, result parse.Result, input, model, technique string) {
	if st == nil {
		return
	}
	dbMu.Lock()
	defer dbMu.Unlock()

	payload, _ := json.Marshal(result)
	_, _ = st.SaveSession(ctx, &store.Session{
		Kind:            kind,
		InterviewType:   string(pctx.InterviewType),
		ExperienceLevel: string(pctx.ExperienceLevel),
		StrategyUsed:    string(result.StrategyUsed),
		Success:         result.Success,
		QuestionCount:   len(result.Questions),
		Model:           model,
		Technique:       technique,
		Payload:         string(payload),
		InputHash:       store.HashInput(input),
		InputSnippet:    store.Snippet(input),
	})
}

// sessionSummary is the compact session view returned by history surfaces;
// the full payload stays in the database.
type sessionSummary struct {
	ID              int64  `json:"id"`
	Kind            string `json:"kind"`
	InterviewType   string `json:"interview_type,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
	StrategyUsed    string `json:"strategy_used"`
	Success         bool   `json:"success"`
	QuestionCount   int    `json:"question_count"`
	Model           string `json:"model,omitempty"`
	Technique       string `json:"technique,omitempty"`
	InputSnippet    string `json:"input_snippet,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func sessionSummaries(sessions []*store.Session) []sessionSummary {
	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionSummary{
			ID:              s.ID,
			Kind:            s.Kind,
			InterviewType:   s.InterviewType,
			ExperienceLevel: s.ExperienceLevel,
			StrategyUsed:    s.StrategyUsed,
			Success:         s.Success,
			QuestionCount:   s.QuestionCount,
			Model:           s.Model,
			Technique:       s.Technique,
			InputSnippet:    s.InputSnippet,
			CreatedAt:       s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out
}
