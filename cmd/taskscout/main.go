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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/taskscout"
	"github.com/poiesic/taskscout/ai"
	"github.com/poiesic/taskscout/core"
	"github.com/poiesic/taskscout/ingest"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taskscout",
		Usage: "Search and ranking engine for task documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search a collection for matching task documents",
				ArgsUsage: "<description>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"c"},
						Usage:    "Collection to search",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "User identity for the conversation context",
						Value: "cli",
					},
					&cli.StringFlag{
						Name:  "when",
						Usage: "Target date expression (e.g. 'yesterday', '3 days ago', '2026-08-01')",
					},
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   core.DefaultMaxResults,
					},
					&cli.BoolFlag{
						Name:  "content",
						Usage: "Include document body text in the results",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "Print the processing trace after the results",
					},
					&cli.StringFlag{
						Name:  "llm-host",
						Usage: "Language model service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "llm-model",
						Usage: "Language model name",
						Value: "qwen2.5:3b",
					},
					&cli.StringFlag{
						Name:  "llm-token",
						Usage: "Language model API token",
					},
				},
			},
			{
				Name:      "seed",
				Usage:     "Load task documents from a JSON file into the store",
				ArgsUsage: "<file>",
				Action:    seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to write per batch",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent batch writers",
						Value: 2,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	description := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if description == "" && c.String("when") == "" {
		return fmt.Errorf("a search description or --when expression is required")
	}

	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	query := &core.Query{
		Description:    description,
		UserId:         c.String("user"),
		CollectionId:   c.String("collection"),
		MaxResults:     c.Int("max"),
		IncludeContent: c.Bool("content"),
	}

	if when := c.String("when"); when != "" {
		target, err := engine.ParseTargetDate(ctx, when)
		if err != nil {
			return fmt.Errorf("resolving --when: %w", err)
		}
		if target == nil {
			return fmt.Errorf("could not resolve %q to a date", when)
		}
		query.TargetDate = target
	}

	response, err := engine.FindTasks(ctx, query)
	if err != nil {
		return err
	}

	printResults(response)
	if c.Bool("trace") {
		fmt.Fprintln(os.Stderr)
		for _, line := range response.Trace {
			fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
	}
	return nil
}

func seedCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one seed file is required")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var specs []ingest.DocumentSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	loader, err := engine.NewLoader(
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithPoolSize(c.Int("workers")),
	)
	if err != nil {
		return err
	}
	defer loader.Release()

	stored, err := loader.Load(context.Background(), specs...)
	if err != nil {
		return err
	}

	fmt.Printf("Stored %d documents\n", stored)
	return nil
}

func openEngine(c *cli.Context) (*taskscout.Engine, error) {
	opts := []taskscout.EngineOption{}
	if c.IsSet("llm-host") || c.IsSet("llm-model") || c.IsSet("llm-token") {
		config := ai.NewConfig(
			ai.WithHost(c.String("llm-host")),
			ai.WithModel(c.String("llm-model")),
			ai.WithToken(c.String("llm-token")),
		)
		opts = append(opts, taskscout.WithAIConfig(config))
	}

	engine, err := taskscout.New(c.String("db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("opening engine at %q: %w", c.String("db"), err)
	}
	return engine, nil
}

func printResults(response *core.SearchResponse) {
	if len(response.Results) == 0 {
		fmt.Printf("No matches among %d candidates (%s)\n",
			response.TotalCandidateCount, response.Elapsed)
		return
	}

	fmt.Printf("%d of %d candidates (%s)\n\n",
		len(response.Results), response.TotalCandidateCount, response.Elapsed)

	for i, result := range response.Results {
		fmt.Printf("%2d. [%.3f] %s (%s)\n", i+1, result.CombinedScore,
			result.Document.Title, result.Document.Id)
		if result.Justification != "" {
			fmt.Printf("     %s\n", result.Justification)
		}
		if result.Document.BodyText != "" {
			fmt.Printf("     %s\n", indentBody(result.Document.BodyText))
		}
	}
}

func indentBody(body string) string {
	return strings.ReplaceAll(strings.TrimSpace(body), "\n", "\n     ")
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

	return nil
}
