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
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/docindex"
	"github.com/poiesic/docindex/ingestion"
	"github.com/urfave/cli/v2"
)

// ErrRunFailed is returned when a document could not be indexed.
var ErrRunFailed = errors.New("indexing failed")

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "docindex",
		Usage:     "Index a PDF or DOCX document into a vector store",
		ArgsUsage: "<path_to_file>",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.IntFlag{
				Name:  "chunk-size",
				Usage: "Window size in characters (overrides CHUNK_SIZE)",
			},
			&cli.IntFlag{
				Name:  "chunk-overlap",
				Usage: "Characters shared by consecutive windows (overrides CHUNK_OVERLAP)",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Report embedding progress on stderr",
			},
		},
		Before: setupLogger,
		Action: indexCommand,
	}
}

func indexCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowAppHelp(c)
	}
	path := c.Args().First()

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file %s does not exist", path)
	}

	cfg, err := docindex.LoadConfig()
	if err != nil {
		return err
	}
	if c.IsSet("chunk-size") {
		cfg.ChunkSize = c.Int("chunk-size")
	}
	if c.IsSet("chunk-overlap") {
		cfg.ChunkOverlap = c.Int("chunk-overlap")
	}

	return run(c.Context, c, cfg, path)
}

func run(ctx context.Context, c *cli.Context, cfg *docindex.Config, path string, opts ...docindex.IndexerOption) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if c.Bool("progress") {
		opts = append(opts, docindex.WithPipelineOptions(ingestion.WithProgress(c.App.ErrWriter, 10)))
	}

	indexer, err := docindex.NewIndexer(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer indexer.Close()

	report := indexer.Index(ctx, path)
	fmt.Fprintln(c.App.Writer, report.Summary())

	for _, f := range report.Failures {
		slog.Warn("chunk skipped", "index", f.Index, "err", f.Err)
	}

	if report.State != ingestion.StateDone || report.Err != nil {
		return fmt.Errorf("%w: %s", ErrRunFailed, report.Filename)
	}
	return nil
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

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
