package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/term-ranker/internal/count"
	dbactions "github.com/dtnitsch/term-ranker/internal/db"
	"github.com/dtnitsch/term-ranker/internal/extract"
	"github.com/dtnitsch/term-ranker/internal/setup"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	logFlags := []cli.Flag{
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug details"},
	}
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML config file (default: ./term-ranker.yaml, then the XDG config dir)",
	}
	extractFlags := []cli.Flag{
		&cli.StringFlag{Name: "ext", Usage: "comma-separated document extensions (default: .pdf)"},
		&cli.StringFlag{Name: "languages", Usage: "comma-separated detection languages, empty to disable (default: english,portuguese)"},
		&cli.IntFlag{Name: "max-compound", Usage: "longest compound term in words (default: 4)"},
		&cli.IntFlag{Name: "min-length", Usage: "shortest single-word term in characters (default: 3)"},
	}

	countFlags := []cli.Flag{
		&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "folder of documents to read (default: sample_pdfs)"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "report destination: .txt, .md, .yaml, .json, .db or - for stdout (default: output.txt)"},
		&cli.Float64Flag{Name: "top-fraction", Aliases: []string{"t"}, Usage: "fraction of unique terms to report, in (0, 1] (default: 0.10)"},
		&cli.BoolFlag{Name: "all", Usage: "report every unique term"},
		&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "documents read concurrently (default: 4)"},
		configFlag,
	}
	countFlags = append(countFlags, extractFlags...)
	countFlags = append(countFlags, logFlags...)

	dbFlag := &cli.StringFlag{Name: "db", Usage: "runs database (default: XDG data dir runs.db)"}

	return &cli.App{
		Name:  "term-ranker",
		Usage: "rank the most frequent useful terms across a folder of documents",
		Commands: []*cli.Command{
			{
				Name:   "count",
				Usage:  "extract terms from every document and write the ranked report",
				Flags:  countFlags,
				Action: count.CountAction,
			},
			{
				Name:      "extract",
				Usage:     "print the terms extracted from one document as YAML",
				ArgsUsage: "FILE",
				Flags:     append(append([]cli.Flag{configFlag}, extractFlags...), logFlags...),
				Action:    extract.ExtractAction,
			},
			{
				Name:  "init",
				Usage: "write a commented config file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "config file to create (default: ./term-ranker.yaml)"},
					&cli.BoolFlag{Name: "xdg", Usage: "write to the XDG config dir instead"},
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "overwrite an existing file"},
				},
				Action: setup.InitAction,
			},
			{
				Name:   "quickstart",
				Usage:  "print usage examples",
				Action: setup.QuickstartAction,
			},
			{
				Name:  "runs",
				Usage: "list runs stored by the SQLite report",
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 20, Usage: "maximum runs to list, 0 for all"},
				},
				Action: dbactions.RunsAction,
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "show the documents and ranked terms of a run (default: latest)",
						ArgsUsage: "[ID]",
						Flags:     []cli.Flag{dbFlag},
						Action:    dbactions.RunAction,
					},
				},
			},
		},
	}
}
