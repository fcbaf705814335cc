package count

import (
	"fmt"
	"os"

	"github.com/dtnitsch/term-ranker/internal/common"
	"github.com/dtnitsch/term-ranker/pkg/batch"
	"github.com/dtnitsch/term-ranker/pkg/documents"
	"github.com/dtnitsch/term-ranker/pkg/report"
	"github.com/dtnitsch/term-ranker/pkg/terms"
	"github.com/urfave/cli/v2"
)

func CountAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "folder", cfg.Folder, "output", cfg.Output,
		"top_fraction", cfg.TopFraction, "workers", cfg.Workers, "extensions", cfg.Extensions)

	opts := []batch.Option{
		batch.WithWorkers(cfg.Workers),
		batch.WithLogger(logger),
	}
	if len(cfg.Languages) > 0 {
		detector, err := terms.NewLanguageDetector(cfg.Languages)
		if err != nil {
			return fmt.Errorf("failed to build language detector: %w", err)
		}
		opts = append(opts, batch.WithLanguageDetector(detector))
	}

	runner := batch.NewRunner(
		documents.NewFolderSource(cfg.Extensions, logger),
		terms.NewTaggedExtractor(nil, cfg.MinTermLength, cfg.MaxCompoundWords),
		opts...,
	)

	result, err := runner.Run(c.Context, cfg.Folder, cfg.TopFraction)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	sink := report.ForDestination(cfg.Output)
	if err := sink.Write(result, cfg.Output); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("run complete",
		"documents", len(result.Documents),
		"failed", len(result.Failures()),
		"unique_terms", result.Report.TotalUniqueTerms(),
		"duration", result.Duration.String(),
	)

	// Interrupted runs keep their partial report but still exit non-zero.
	if err := c.Context.Err(); err != nil {
		return fmt.Errorf("run interrupted, partial report written to %s: %w", cfg.Output, err)
	}

	if cfg.Output != report.StdoutDestination {
		if s, ok := sink.(*report.SQLiteSink); ok {
			fmt.Fprintf(os.Stderr, "Run %d stored in %s\n", s.RunID, cfg.Output)
		} else {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", cfg.Output)
		}
	}
	return nil
}
