package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"cvforge/internal/config"
	"cvforge/internal/cv"
	"cvforge/internal/db"
	"cvforge/internal/errors"
	"cvforge/internal/jd"
	"cvforge/internal/store"
	"cvforge/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, database *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "cvforge",
		Usage:   "Local CV editor and job-description matcher",
		Version: Version,
		Commands: []*cli.Command{
			showCmd(st),
			exportCmd(st),
			importCmd(st),
			matchCmd(st),
			setJDCmd(st),
			resetCmd(st),
			historyCmd(st, database),
			serveCmd(st, database, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// showCmd creates the show command.
func showCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current CV document as JSON",
		Action: func(c *cli.Context) error {
			return outputJSON(st.Snapshot())
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the CV document to a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: cv.ExportFilename, Usage: "Output path, or - for stdout"},
		},
		Action: func(c *cli.Context) error {
			body, err := st.Snapshot().Encode()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			path := c.String("output")
			if path == "-" {
				fmt.Println(string(body))
				return nil
			}
			if err := os.WriteFile(path, body, 0o644); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]string{"path": path})
		},
	}
}

// importCmd creates the import command.
func importCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Replace the CV document with JSON from a file or stdin",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Input path (defaults to stdin)"},
		},
		Action: func(c *cli.Context) error {
			var body []byte
			var err error
			if path := c.String("path"); path != "" {
				body, err = os.ReadFile(path)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
			} else {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("document JSON must be piped via stdin or given with --path"))
				}
				body, err = io.ReadAll(os.Stdin)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			state, err := cv.Decode(body)
			if err != nil {
				return outputError(errors.NewParse(err))
			}

			st.Reset(&state)
			return outputJSON(st.Snapshot())
		},
	}
}

// matchCmd creates the match command.
func matchCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Score the job description's keyword overlap against the CV",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "jd", Usage: "Job description text (defaults to the stored one, or stdin if piped)"},
		},
		Action: func(c *cli.Context) error {
			snapshot := st.Snapshot()
			jdText := snapshot.JDText

			if c.IsSet("jd") {
				jdText = c.String("jd")
			} else if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				jdText = text
			}

			return outputJSON(jd.Match(jdText, snapshot.Data))
		},
	}
}

// setJDCmd creates the set-jd command.
func setJDCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "set-jd",
		Usage: "Store a job description (reads text from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("job description text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			st.SetJDText(text)
			return outputJSON(map[string]int{"length": len(text)})
		},
	}
}

// resetCmd creates the reset command.
func resetCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Replace the CV document with the built-in sample",
		Action: func(c *cli.Context) error {
			st.Reset(nil)
			return outputJSON(st.Snapshot())
		},
	}
}

// historyCmd creates the history command.
func historyCmd(st *store.Store, database *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List saved revisions, or restore one",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "restore", Usage: "Revision id to restore"},
		},
		Action: func(c *cli.Context) error {
			if id := c.String("restore"); id != "" {
				state, err := db.GetRevision(database, id)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if state == nil {
					return outputError(errors.NewNotFound(id))
				}
				st.Reset(state)
				return outputJSON(st.Snapshot())
			}

			revisions, err := db.ListRevisions(database)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(revisions)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(st *store.Store, database *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the editor HTTP API and print preview",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "Port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			serveCfg := *cfg
			if bind := c.String("bind"); bind != "" {
				serveCfg.Bind = bind
			}
			if port := c.Int("port"); port != 0 {
				serveCfg.Port = port
			}

			srv := web.NewServer(st, database, &serveCfg, Version)
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if appErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
