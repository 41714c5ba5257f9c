package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prepdeck/prepdeck/internal/config"
	"github.com/prepdeck/prepdeck/internal/generate"
	"github.com/prepdeck/prepdeck/internal/llm"
	"github.com/prepdeck/prepdeck/internal/mcp"
	"github.com/prepdeck/prepdeck/internal/parse"
	"github.com/prepdeck/prepdeck/internal/prompt"
	"github.com/prepdeck/prepdeck/internal/store"
)

// commonFlags are the flags shared by every subcommand.
type commonFlags struct {
	configPath string
	dbPath     string
	asJSON     bool
}

// take consumes a shared flag at args[i]. Returns the new index and whether
// the flag was recognized.
func (c *commonFlags) take(args []string, i int) (int, bool) {
	switch {
	case args[i] == "--config" && i+1 < len(args):
		c.configPath = args[i+1]
		return i + 1, true
	case strings.HasPrefix(args[i], "--config="):
		c.configPath = strings.TrimPrefix(args[i], "--config=")
		return i, true
	case args[i] == "--db" && i+1 < len(args):
		c.dbPath = args[i+1]
		return i + 1, true
	case strings.HasPrefix(args[i], "--db="):
		c.dbPath = strings.TrimPrefix(args[i], "--db=")
		return i, true
	case args[i] == "--json":
		c.asJSON = true
		return i, true
	}
	return i, false
}

func runParse(args []string) error {
	var common commonFlags
	var typeStr, levelStr, inputPath string
	noSave := false

	for i := 0; i < len(args); i++ {
		if next, ok := common.take(args, i); ok {
			i = next
			continue
		}
		switch {
		case args[i] == "--type" && i+1 < len(args):
			i++
			typeStr = args[i]
		case strings.HasPrefix(args[i], "--type="):
			typeStr = strings.TrimPrefix(args[i], "--type=")
		case args[i] == "--level" && i+1 < len(args):
			i++
			levelStr = args[i]
		case strings.HasPrefix(args[i], "--level="):
			levelStr = strings.TrimPrefix(args[i], "--level=")
		case args[i] == "--no-save":
			noSave = true
		case args[i] == "-":
			inputPath = "-"
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			inputPath = args[i]
		}
	}

	text, err := readInput(inputPath)
	if err != nil {
		return err
	}

	pctx := parse.Context{
		InterviewType:   parse.ParseInterviewType(typeStr),
		ExperienceLevel: parse.ParseExperienceLevel(levelStr),
	}
	result := parse.NewParser().Parse(text, pctx)

	if !noSave {
		saveSession(common, store.KindParse, pctx, result, text, "", "")
	}

	if common.asJSON {
		return printJSON(result)
	}
	printResult(result)
	return nil
}

func runGenerate(args []string) error {
	var common commonFlags
	var typeStr, levelStr, techniqueStr, modelStr, countStr, jdPath string

	for i := 0; i < len(args); i++ {
		if next, ok := common.take(args, i); ok {
			i = next
			continue
		}
		switch {
		case args[i] == "--jd" && i+1 < len(args):
			i++
			jdPath = args[i]
		case strings.HasPrefix(args[i], "--jd="):
			jdPath = strings.TrimPrefix(args[i], "--jd=")
		case args[i] == "--type" && i+1 < len(args):
			i++
			typeStr = args[i]
		case strings.HasPrefix(args[i], "--type="):
			typeStr = strings.TrimPrefix(args[i], "--type=")
		case args[i] == "--level" && i+1 < len(args):
			i++
			levelStr = args[i]
		case strings.HasPrefix(args[i], "--level="):
			levelStr = strings.TrimPrefix(args[i], "--level=")
		case args[i] == "--technique" && i+1 < len(args):
			i++
			techniqueStr = args[i]
		case strings.HasPrefix(args[i], "--technique="):
			techniqueStr = strings.TrimPrefix(args[i], "--technique=")
		case args[i] == "--model" && i+1 < len(args):
			i++
			modelStr = args[i]
		case strings.HasPrefix(args[i], "--model="):
			modelStr = strings.TrimPrefix(args[i], "--model=")
		case args[i] == "--count" && i+1 < len(args):
			i++
			countStr = args[i]
		case strings.HasPrefix(args[i], "--count="):
			countStr = strings.TrimPrefix(args[i], "--count=")
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	cfg, err := config.ResolveConfig(config.ResolveOptions{
		ConfigPath:   common.configPath,
		CLIModel:     modelStr,
		CLIDBPath:    common.dbPath,
		CLITechnique: techniqueStr,
		CLICount:     countStr,
	})
	if err != nil {
		return err
	}

	jd, err := readInput(jdPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(jd) == "" {
		return fmt.Errorf("job description is empty (pass --jd <file> or pipe it on stdin)")
	}

	technique, err := prompt.ParseTechnique(cfg.Technique.Value)
	if err != nil {
		return err
	}

	llmCfg, err := llm.ParseModelFlag(cfg.Model.Value)
	if err != nil {
		return err
	}
	if key := cfg.APIKeyForProvider(llmCfg.Provider); key.Value != "" {
		llmCfg.APIKey = key.Value
	}
	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		return err
	}

	gen := generate.New(provider, parse.NewParser())
	res, err := gen.Generate(context.Background(), generate.Request{
		JobDescription:  jd,
		InterviewType:   parse.ParseInterviewType(typeStr),
		ExperienceLevel: parse.ParseExperienceLevel(levelStr),
		Technique:       technique,
		QuestionCount:   cfg.EffectiveQuestionCount(0),
	})
	if err != nil {
		return err
	}

	pctx := parse.Context{
		InterviewType:   parse.ParseInterviewType(typeStr),
		ExperienceLevel: parse.ParseExperienceLevel(levelStr),
	}
	saveSession(common, store.KindGenerate, pctx, res.Parse, res.RawOutput, res.Model, string(res.Technique))

	if common.asJSON {
		return printJSON(map[string]any{
			"result":     res.Parse,
			"model":      res.Model,
			"technique":  res.Technique,
			"latency_ms": res.Latency.Milliseconds(),
		})
	}

	fmt.Printf("Model: %s  (%s, %dms)\n\n", res.Model, res.Technique, res.Latency.Milliseconds())
	printResult(res.Parse)
	return nil
}

func runHistory(args []string) error {
	var common commonFlags
	var kind string
	limit := 10

	for i := 0; i < len(args); i++ {
		if next, ok := common.take(args, i); ok {
			i = next
			continue
		}
		switch {
		case args[i] == "--limit" && i+1 < len(args):
			i++
			fmt.Sscanf(args[i], "%d", &limit)
		case strings.HasPrefix(args[i], "--limit="):
			fmt.Sscanf(strings.TrimPrefix(args[i], "--limit="), "%d", &limit)
		case args[i] == "--kind" && i+1 < len(args):
			i++
			kind = args[i]
		case strings.HasPrefix(args[i], "--kind="):
			kind = strings.TrimPrefix(args[i], "--kind=")
		case strings.HasPrefix(args[i], "-"):
			return fmt.Errorf("unknown flag: %s", args[i])
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	s, err := openStore(common)
	if err != nil {
		return err
	}
	defer s.Close()

	sessions, err := s.ListSessions(context.Background(), store.ListOpts{Limit: limit, Kind: kind})
	if err != nil {
		return err
	}

	if common.asJSON {
		return printJSON(sessions)
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		return nil
	}
	for _, sess := range sessions {
		status := "ok"
		if !sess.Success {
			status = "fallback"
		}
		fmt.Printf("#%-4d %s  %-8s %-15s %-8s %2d questions  %s\n",
			sess.ID,
			sess.CreatedAt.Format("2006-01-02 15:04"),
			sess.Kind,
			sess.StrategyUsed,
			status,
			sess.QuestionCount,
			sess.InputSnippet)
	}
	return nil
}

func runStats(args []string) error {
	var common commonFlags
	for i := 0; i < len(args); i++ {
		if next, ok := common.take(args, i); ok {
			i = next
			continue
		}
		return fmt.Errorf("unexpected argument: %s", args[i])
	}

	s, err := openStore(common)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Stats(context.Background())
	if err != nil {
		return err
	}

	if common.asJSON {
		return printJSON(stats)
	}

	fmt.Printf("Sessions:       %d\n", stats.SessionCount)
	fmt.Printf("Successful:     %d (%.0f%%)\n", stats.SuccessCount, stats.SuccessRate*100)
	fmt.Printf("Avg questions:  %.1f per successful session\n", stats.AvgQuestions)
	if stats.DBSizeBytes > 0 {
		fmt.Printf("DB size:        %d bytes\n", stats.DBSizeBytes)
	}
	if len(stats.StrategyCounts) > 0 {
		fmt.Println("Strategies:")
		for strategy, count := range stats.StrategyCounts {
			fmt.Printf("  %-16s %d\n", strategy, count)
		}
	}
	return nil
}

func runMCP(args []string) error {
	var common commonFlags
	var modelStr string
	for i := 0; i < len(args); i++ {
		if next, ok := common.take(args, i); ok {
			i = next
			continue
		}
		switch {
		case args[i] == "--model" && i+1 < len(args):
			i++
			modelStr = args[i]
		case strings.HasPrefix(args[i], "--model="):
			modelStr = strings.TrimPrefix(args[i], "--model=")
		default:
			return fmt.Errorf("unexpected argument: %s", args[i])
		}
	}

	cfg, err := config.ResolveConfig(config.ResolveOptions{
		ConfigPath: common.configPath,
		CLIModel:   modelStr,
		CLIDBPath:  common.dbPath,
	})
	if err != nil {
		return err
	}

	s, err := store.NewStore(store.Config{DBPath: cfg.DBPath.Value})
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer s.Close()

	// Generation is optional: without a key the generate tool reports
	// itself unconfigured instead of failing the whole server.
	var gen *generate.Generator
	if llmCfg, err := llm.ParseModelFlag(cfg.Model.Value); err == nil {
		if key := cfg.APIKeyForProvider(llmCfg.Provider); key.Value != "" {
			llmCfg.APIKey = key.Value
		}
		if provider, err := llm.NewProvider(llmCfg); err == nil {
			gen = generate.New(provider, parse.NewParser())
		} else {
			fmt.Fprintf(os.Stderr, "Warning: generation disabled: %v\n", err)
		}
	}

	srv := mcp.NewServer(mcp.ServerConfig{
		Parser:    parse.NewParser(),
		Store:     s,
		Generator: gen,
		Version:   version,
	})
	return server.ServeStdio(srv)
}

// --- helpers ---

// readInput reads from a file, or stdin when path is "-" or empty.
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

func openStore(common commonFlags) (store.Store, error) {
	cfg, err := config.ResolveConfig(config.ResolveOptions{
		ConfigPath: common.configPath,
		CLIDBPath:  common.dbPath,
	})
	if err != nil {
		return nil, err
	}
	return store.NewStore(store.Config{DBPath: cfg.DBPath.Value})
}

// saveSession best-effort records a CLI call; failures only warn.
func saveSession(common commonFlags, kind string, pctx parse.Context, result parse.Result, input, model, technique string) {
	s, err := openStore(common)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: not recording session: %v\n", err)
		return
	}
	defer s.Close()

	payload, _ := json.Marshal(result)
	_, err = s.SaveSession(context.Background(), &store.Session{
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
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: not recording session: %v\n", err)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
