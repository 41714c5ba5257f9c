package main

import (
	"fmt"
	"os"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "parse":
		if err := runParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := runGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := runHistory(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "stats":
		if err := runStats(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := runMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("prepdeck %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`prepdeck %s - interview question extraction and generation

Usage:
  prepdeck <command> [arguments]

Commands:
  parse [file|-]      Parse raw model output into structured questions
  generate            Generate questions for a job description via an LLM
  history             List recent sessions from the session log
  stats               Show session log statistics
  mcp                 Run the MCP server on stdio
  version             Print version

Parse Flags:
  --type <t>          Interview type: technical|behavioral|case_study|reverse
  --level <l>         Experience level: junior|mid|senior|lead
  --json              Emit the full result as JSON
  --no-save           Skip recording the session

Generate Flags:
  --jd <file|->       Job description source (default: stdin)
  --type, --level     As above
  --technique <t>     zero_shot|few_shot|chain_of_thought|role_based|structured_output
  --count <n>         Number of questions to request
  --model <p/m>       Provider/model, e.g. google/gemini-2.5-flash
  --json              Emit the full result as JSON

Common Flags:
  --db <path>         Session database path (default: %s)
  --config <path>     Config file path (default: ~/.prepdeck/config.yaml)
  -h, --help          Show this help message
  -v, --version       Print version
`, version, "~/.prepdeck/prepdeck.db")
}
