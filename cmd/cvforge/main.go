package main

import (
	"fmt"
	"log"
	"os"

	"cvforge/internal/config"
	"cvforge/internal/cv"
	"cvforge/internal/db"
	"cvforge/internal/mcp"
	"cvforge/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"show": true, "export": true, "import": true,
	"match": true, "set-jd": true, "reset": true,
	"history": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ______   ______
  / ____| | |  ___|
 | |    \ \ / / |_ ___  _ __ __ _  ___
 | |     \ V /|  _/ _ \| '__/ _' |/ _ \
 | |____  | | | || (_) | | | (_| |  __/
  \_____| |_| |_| \___/|_|  \__, |\___|
                             |___/
  Local CV editor and job-description matcher

  Usage: cvforge <command> [options]
         cvforge --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	baseDir, err := config.DefaultBaseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Seed the store from the persisted slot, falling back to the sample
	// document, and write every applied change back through.
	saved, err := db.LoadState(database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load document: %v\n", err)
		os.Exit(1)
	}
	initial := cv.InitialState()
	if saved != nil {
		initial = *saved
	}
	st := store.New(initial)
	st.OnChange(func(state cv.BuilderState) {
		if err := db.SaveState(database, state, cfg.HistoryLimit); err != nil {
			log.Printf("failed to persist document: %v", err)
		}
	})

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(st, database, cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'cvforge --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(st, database, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
