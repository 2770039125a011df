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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/omnisearch/config"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/storage/badger"
	"github.com/poiesic/omnisearch/translate"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// parserFlags are shared by the parse and format commands.
func parserFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "keyword",
			Aliases: []string{"k"},
			Usage:   "Recognize `NAME:value` as a keyword filter (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "range",
			Aliases: []string{"r"},
			Usage:   "Recognize `NAME:from-to` as a range filter (repeatable)",
		},
		&cli.BoolFlag{
			Name:  "tokenize",
			Usage: "Keep free-text terms as separate tokens",
		},
		&cli.BoolFlag{
			Name:  "always-array",
			Usage: "Report keyword values as arrays even when single",
		},
		&cli.BoolFlag{
			Name:  "no-offsets",
			Usage: "Do not report token offsets",
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "omnisearch",
		Usage: "Parse, translate and remember search-aggregator queries",
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
				Usage:   "Path to YAML configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse a query and print it as JSON",
				ArgsUsage: "QUERY...",
				Action:    parseCommand,
				Flags: append(parserFlags(), &cli.BoolFlag{
					Name:  "compact",
					Usage: "Print JSON on a single line",
				}),
			},
			{
				Name:      "format",
				Usage:     "Parse a query and print its canonical form",
				ArgsUsage: "QUERY...",
				Action:    formatCommand,
				Flags:     parserFlags(),
			},
			{
				Name:      "translate",
				Usage:     "Translate a query into a service's native syntax",
				ArgsUsage: "QUERY...",
				Action:    translateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dialect",
						Aliases:  []string{"d"},
						Usage:    "Target dialect (" + strings.Join(translate.DefaultRegistry().Names(), ", ") + ")",
						Required: true,
					},
				},
			},
			{
				Name:   "dialects",
				Usage:  "List the available dialects and their vocabularies",
				Action: dialectsCommand,
			},
			{
				Name:  "history",
				Usage: "Inspect the search history",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "Print recent searches, newest first",
						Action: historyListCommand,
						Flags: []cli.Flag{
							dbFlag(),
							&cli.IntFlag{
								Name:    "limit",
								Aliases: []string{"n"},
								Usage:   "Maximum number of searches to print",
								Value:   20,
							},
						},
					},
					{
						Name:   "clear",
						Usage:  "Delete all recorded searches",
						Action: historyClearCommand,
						Flags:  []cli.Flag{dbFlag()},
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "db",
		Usage: "Path to history database directory (default: history_path from config)",
	}
}

func queryArg(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", cli.Exit("missing QUERY argument", 1)
	}
	return strings.Join(c.Args().Slice(), " "), nil
}

func parserFromFlags(c *cli.Context) *query.Parser {
	return query.NewParser(
		query.WithKeywords(c.StringSlice("keyword")...),
		query.WithRanges(c.StringSlice("range")...),
		query.WithTokenize(c.Bool("tokenize")),
		query.WithAlwaysArray(c.Bool("always-array")),
		query.WithOffsets(!c.Bool("no-offsets")),
	)
}

func parseCommand(c *cli.Context) error {
	input, err := queryArg(c)
	if err != nil {
		return err
	}
	q := parserFromFlags(c).Parse(input)

	var out []byte
	if c.Bool("compact") {
		out, err = json.Marshal(q)
	} else {
		out, err = json.MarshalIndent(q, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encoding parsed query: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

func formatCommand(c *cli.Context) error {
	input, err := queryArg(c)
	if err != nil {
		return err
	}
	p := parserFromFlags(c)
	fmt.Fprintln(c.App.Writer, p.Format(p.Parse(input)))
	return nil
}

func translateCommand(c *cli.Context) error {
	input, err := queryArg(c)
	if err != nil {
		return err
	}
	dialect, err := translate.DefaultRegistry().Lookup(c.String("dialect"))
	if err != nil {
		return err
	}
	q := dialect.Vocabulary().Parser(query.WithOffsets(false)).Parse(input)
	slog.Debug("translating query", "dialect", dialect.Name(), "input", input)
	fmt.Fprintln(c.App.Writer, dialect.Translate(q))
	return nil
}

func dialectsCommand(c *cli.Context) error {
	registry := translate.DefaultRegistry()
	for _, name := range registry.Names() {
		d, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		vocab := d.Vocabulary()
		fmt.Fprintf(c.App.Writer, "%s\tkeywords: %s\tranges: %s\n",
			name, strings.Join(vocab.Keywords, ","), strings.Join(vocab.Ranges, ","))
	}
	return nil
}

// historyPath returns --db, else the configured history path.
func historyPath(c *cli.Context) (string, error) {
	if db := c.String("db"); db != "" {
		return db, nil
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return "", err
	}
	return cfg.ResolvedHistoryPath()
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.DefaultConfig(), nil
}

func historyListCommand(c *cli.Context) error {
	path, err := historyPath(c)
	if err != nil {
		return err
	}
	repo, err := badger.NewHistoryRepository(path)
	if err != nil {
		return fmt.Errorf("opening history at %s: %w", path, err)
	}
	defer repo.Close()

	entries, err := repo.RecentSearches(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, e := range entries {
		printEntry(c, e)
	}
	return nil
}

func printEntry(c *cli.Context, e *core.HistoryEntry) {
	fmt.Fprintf(c.App.Writer, "%s\t%d results\t%s\t%s\n",
		e.SearchedAt.Local().Format(time.DateTime),
		e.ResultCount,
		strings.Join(e.Sources, ","),
		e.Query)
}

func historyClearCommand(c *cli.Context) error {
	path, err := historyPath(c)
	if err != nil {
		return err
	}
	repo, err := badger.NewHistoryRepository(path)
	if err != nil {
		return fmt.Errorf("opening history at %s: %w", path, err)
	}
	defer repo.Close()

	if err := repo.Clear(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Search history cleared")
	return nil
}

func setupLogger(c *cli.Context) error {
	level, err := config.ParseLogLevel(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
