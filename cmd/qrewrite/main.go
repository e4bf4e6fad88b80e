// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/poiesic/qrewrite"
	"github.com/poiesic/qrewrite/query"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := loadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadEnvFile loads path into the environment if it exists.
// Variables already set are not overridden.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qrewrite",
		Usage: "Rewrite search query trees with multilingual expansion and stem filters",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"QREWRITE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "translator-host",
				Usage:   "Translation service host URL (overrides the config file)",
				EnvVars: []string{"QREWRITE_TRANSLATOR_HOST"},
			},
			&cli.StringFlag{
				Name:    "translator-model",
				Usage:   "Translation model name (overrides the config file)",
				EnvVars: []string{"QREWRITE_TRANSLATOR_MODEL"},
			},
			&cli.StringFlag{
				Name:    "translator-token",
				Usage:   "Translation service API token (overrides the config file)",
				EnvVars: []string{"QREWRITE_TRANSLATOR_TOKEN"},
			},
			&cli.BoolFlag{
				Name:  "no-multilang",
				Usage: "Disable multilingual expansion",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "rewrite",
				Usage:     "Rewrite a single query and print the resulting tree",
				ArgsUsage: "[text]",
				Action:    rewriteCommand,
				Flags: append(queryFlags(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (json, text)",
						Value: "json",
					},
				),
			},
			{
				Name:   "batch",
				Usage:  "Rewrite JSON lines of {\"tree\": ..., \"properties\": ...} concurrently",
				Action: batchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Input file (default: stdin)",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of queries rewritten at once (default: from config)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress on stderr every N queries (0 disables)",
						Value: 0,
					},
				},
			},
			{
				Name:      "explain",
				Usage:     "Show every rewrite step for a single query",
				ArgsUsage: "[text]",
				Action:    explainCommand,
				Flags:     queryFlags(),
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "tree",
			Aliases: []string{"t"},
			Usage:   "Query tree as JSON (instead of text)",
		},
		&cli.StringFlag{
			Name:  "field",
			Usage: "Index name for text queries",
			Value: "default",
		},
		&cli.StringFlag{
			Name:  "language",
			Usage: "Add a language filter to text queries",
		},
		&cli.StringFlag{
			Name:    "stem-filter",
			Aliases: []string{"s"},
			Usage:   `Stem filters as JSON, e.g. [{"language":"en","stems":["or"]}]`,
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if c.Bool("no-color") {
		color.NoColor = true
	}
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(c *cli.Context) (*qrewrite.Config, error) {
	cfg := qrewrite.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = qrewrite.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if host := c.String("translator-host"); host != "" {
		cfg.Translator.Host = host
	}
	if model := c.String("translator-model"); model != "" {
		cfg.Translator.Model = model
	}
	if token := c.String("translator-token"); token != "" {
		cfg.Translator.Token = token
	}
	if c.Bool("no-multilang") {
		off := false
		cfg.Multilang.Enabled = &off
	}
	if c.IsSet("pool-size") {
		cfg.PoolSize = c.Int("pool-size")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRequest creates a request from --tree, or from the text arguments.
func buildRequest(c *cli.Context) (*query.Request, error) {
	var root query.Node
	if tree := c.String("tree"); tree != "" {
		var err error
		root, err = query.Unmarshal([]byte(tree))
		if err != nil {
			return nil, fmt.Errorf("invalid query tree: %w", err)
		}
	} else {
		text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		if text == "" {
			return nil, errors.New("either --tree or query text is required")
		}
		root = query.NewTerm(c.String("field"), text)
		if lang := c.String("language"); lang != "" {
			root = query.And(root, query.NewRegex("language", lang))
		}
	}

	props := map[string]string{}
	if filters := c.String("stem-filter"); filters != "" {
		props["stemFilter"] = filters
	}
	return query.NewRequest(root, props), nil
}

func rewriteCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	req, err := buildRequest(c)
	if err != nil {
		return err
	}

	chain, err := qrewrite.New(cfg)
	if err != nil {
		return err
	}
	defer chain.Release()

	root, err := chain.Rewrite(c.Context, req)
	if err != nil {
		return err
	}

	switch c.String("format") {
	case "text":
		fmt.Fprintln(c.App.Writer, root.String())
	case "json":
		data, err := query.Marshal(root)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, string(data))
	default:
		return fmt.Errorf("invalid format %q: must be json or text", c.String("format"))
	}
	return nil
}

type batchLine struct {
	Tree       json.RawMessage   `json:"tree"`
	Properties map[string]string `json:"properties,omitempty"`
}

type batchOutput struct {
	Line  int             `json:"line"`
	ID    uint64          `json:"id,omitempty"`
	Tree  json.RawMessage `json:"tree,omitempty"`
	Error string          `json:"error,omitempty"`
}

func batchCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	input := c.App.Reader
	if path := c.String("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	reqs, lines, err := readBatch(input)
	if err != nil {
		return err
	}

	tracker := newProgress(c.App.ErrWriter, len(reqs), c.Int("report-interval"))
	chain, err := qrewrite.New(cfg, qrewrite.WithBatchCallback(func(r qrewrite.Result) {
		tracker.record(r.Err != nil)
	}))
	if err != nil {
		return err
	}
	defer chain.Release()

	results, err := chain.RewriteBatch(c.Context, reqs)
	if err != nil {
		return err
	}
	if c.Int("report-interval") > 0 {
		tracker.finish()
	}

	enc := json.NewEncoder(c.App.Writer)
	failed := 0
	for i, r := range results {
		out := batchOutput{Line: lines[i], ID: uint64(r.Request.ID)}
		if r.Err != nil {
			failed++
			out.Error = r.Err.Error()
		} else if out.Tree, err = query.Marshal(r.Root); err != nil {
			return err
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}

	slog.Info("batch complete", "requests", len(results), "failed", failed)
	return nil
}

// readBatch parses one request per non-empty line and returns the
// line number of each.
func readBatch(r io.Reader) ([]*query.Request, []int, error) {
	var (
		reqs  []*query.Request
		lines []int
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var line batchLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", n, err)
		}
		root, err := query.Unmarshal(line.Tree)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", n, err)
		}
		reqs = append(reqs, query.NewRequest(root, line.Properties))
		lines = append(lines, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return reqs, lines, nil
}

func explainCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	req, err := buildRequest(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	monitor := newExplainMonitor(w)
	chain, err := qrewrite.New(cfg, qrewrite.WithMonitor(monitor))
	if err != nil {
		return err
	}
	defer chain.Release()

	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintln(w, "Input")
	fmt.Fprintf(w, "  %s\n", req.Root)
	fmt.Fprintf(w, "  stages: %s\n", strings.Join(chain.Stages(), " -> "))

	root, rewriteErr := chain.Rewrite(c.Context, req)

	heading.Fprintln(w, "Trace")
	for _, trace := range req.Context.Traces() {
		fmt.Fprintf(w, "  %s\n", trace)
	}
	if keys := req.Context.Keys(); len(keys) > 0 {
		heading.Fprintln(w, "Metadata")
		for _, key := range keys {
			value, _ := req.Context.Get(key)
			fmt.Fprintf(w, "  %s = %s\n", key, value)
		}
	}

	if rewriteErr != nil {
		color.New(color.FgRed).Fprintf(w, "Rewrite failed: %v\n", rewriteErr)
		return rewriteErr
	}
	heading.Fprintln(w, "Output")
	fmt.Fprintf(w, "  %s\n", root)
	return nil
}
