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
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/poiesic/slidesearch"
	"github.com/poiesic/slidesearch/config"
	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/ingestion"
	"github.com/poiesic/slidesearch/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "slidesearch",
		Usage: "Search slide design tables for strategies, layouts, copy, and charts",
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
				Usage:   "Path to YAML config file",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Read tables from CSV files in this directory",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Read tables from the BadgerDB database in this directory",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search one domain, detected from the query unless given",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "domain",
						Aliases: []string{"d"},
						Usage:   "Domain to search (strategy, layout, copy, chart)",
					},
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum results to return (default from config)",
						Value:   -1,
					},
					jsonFlag(),
				},
			},
			{
				Name:      "all",
				Usage:     "Search every domain",
				ArgsUsage: "QUERY",
				Action:    allCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum results per domain (default from config)",
						Value:   -1,
					},
					jsonFlag(),
				},
			},
			{
				Name:      "context",
				Usage:     "Recommend layout, typography, color, and animation for one slide",
				ArgsUsage: "QUERY",
				Action:    contextCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "position",
						Usage: "Slide position in deck, 1-based (default from config)",
					},
					&cli.IntFlag{
						Name:  "total",
						Usage: "Total slides in deck (default from config)",
					},
					&cli.StringFlag{
						Name:  "prev-emotion",
						Usage: "Emotion of the previous slide",
					},
					jsonFlag(),
				},
			},
			{
				Name:      "plan",
				Usage:     "Recommend every slide of a deck, one query per slide",
				ArgsUsage: "QUERY...",
				Action:    planCommand,
				Flags:     []cli.Flag{jsonFlag()},
			},
			{
				Name:   "import",
				Usage:  "Copy tables into a BadgerDB database",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "Path to the destination BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Read CSV files from this directory instead of the embedded tables",
					},
					&cli.StringSliceFlag{
						Name:    "table",
						Aliases: []string{"t"},
						Usage:   "Table to import (repeatable, default all)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rewrite tables whose fingerprint is unchanged",
					},
				},
			},
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output as JSON",
	}
}

func searchCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	var domain core.Domain
	if name := c.String("domain"); name != "" {
		if domain, err = core.ParseDomain(name); err != nil {
			return err
		}
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	resp, err := engine.Search(c.Context, query, domain, c.Int("max-results"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, resp)
	}
	formatSearch(c.App.Writer, resp)
	return nil
}

func allCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	results, err := engine.SearchAll(c.Context, query, c.Int("max-results"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, results)
	}
	formatAll(c.App.Writer, query, results)
	return nil
}

func contextCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	deck := engine.Config().Deck
	position, total := deck.Position, deck.TotalSlides
	if c.IsSet("position") {
		position = c.Int("position")
	}
	if c.IsSet("total") {
		total = c.Int("total")
	}

	resp, err := engine.SearchWithContext(c.Context, query, position, total, c.String("prev-emotion"))
	if err != nil {
		return fmt.Errorf("context search failed: %w", err)
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, resp)
	}
	formatContextResponse(c.App.Writer, resp)
	return nil
}

func planCommand(c *cli.Context) error {
	queries := c.Args().Slice()
	if len(queries) == 0 {
		return fmt.Errorf("at least one query is required")
	}
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	deck, err := engine.PlanDeck(c.Context, queries)
	if err != nil {
		return fmt.Errorf("deck planning failed: %w", err)
	}
	if c.Bool("json") {
		return writeJSON(c.App.Writer, deck)
	}
	for _, resp := range deck {
		fmt.Fprintf(c.App.Writer, "\n##### %s #####\n", resp.Query)
		formatContext(c.App.Writer, resp.Context)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	// --db names the destination here, so the source is chosen from the
	// directory flags alone.
	cfg.Data.Backend = config.BackendEmbedded
	cfg.Data.Watch = false
	dir := c.String("dir")
	if dir == "" {
		dir = c.String("data-dir")
	}
	if dir != "" {
		cfg.Data.Backend = config.BackendCSV
		cfg.Data.Dir = dir
	}

	engine, err := slidesearch.NewEngine(cfg, slidesearch.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open source tables: %w", err)
	}
	defer engine.Close()

	store, err := badger.Open(c.String("db"), badger.WithLogger(slog.Default()))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	imp, err := engine.NewImporter(store, ingestion.WithForce(c.Bool("force")))
	if err != nil {
		return fmt.Errorf("failed to create importer: %w", err)
	}
	defer imp.Release()

	var tables []core.TableName
	for _, name := range c.StringSlice("table") {
		tables = append(tables, core.TableName(name))
	}

	report, err := imp.Import(c.Context, tables...)
	if report != nil {
		for _, res := range report.Results {
			fmt.Fprintf(c.App.Writer, "%-12s %-10s rows=%d\n", res.Table, res.Outcome, res.Rows)
		}
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}

func queryArg(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	return query, nil
}

// loadConfig reads --config, if any, and applies the global data overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
		if !c.IsSet("log-level") {
			installLogger(c.App.ErrWriter, cfg.SlogLevel())
		}
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.Data.Backend = config.BackendCSV
		cfg.Data.Dir = dir
	}
	if db := c.String("db"); db != "" {
		cfg.Data.Backend = config.BackendBadger
		cfg.Data.BadgerPath = db
		cfg.Data.Watch = false
	}
	return cfg, nil
}

func openEngine(c *cli.Context) (*slidesearch.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	engine, err := slidesearch.NewEngine(cfg, slidesearch.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	var w io.Writer = os.Stderr
	if c.App != nil && c.App.ErrWriter != nil {
		w = c.App.ErrWriter
	}
	installLogger(w, level)
	return nil
}

func installLogger(w io.Writer, level slog.Level) {
	if w == nil {
		w = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))
}
