package db

import (
	"fmt"
	"strings"

	"github.com/dtnitsch/term-ranker/pkg/report"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := OpenFromFlag(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-6s %-7s %-8s %-9s %-30s\n",
		"ID", "Created", "Docs", "Failed", "Unique", "Fraction", "Folder")
	fmt.Println(strings.Repeat("-", 100))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-6d %-7d %-8d %-9.2f %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.DocumentCount,
			r.FailedCount,
			r.TotalUniqueTerms,
			r.TopFraction,
			r.Folder,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'term-ranker runs show <id>' to see the ranked terms\n")

	return nil
}

// RunAction shows the documents and ranked terms of one run.
func RunAction(c *cli.Context) error {
	database, err := OpenFromFlag(c)
	if err != nil {
		return err
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	docs, err := database.GetRunDocuments(runID)
	if err != nil {
		return fmt.Errorf("failed to get run documents: %w", err)
	}
	ranked, err := database.GetRankedTerms(runID)
	if err != nil {
		return fmt.Errorf("failed to get ranked terms: %w", err)
	}

	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Folder:      %s\n", run.Folder)
	fmt.Printf("Documents:   %d total (%d failed)\n", run.DocumentCount, run.FailedCount)
	fmt.Printf("Terms:       %d unique, %d total\n", run.TotalUniqueTerms, run.TotalTerms)
	fmt.Printf("Top:         %.2f fraction (%.2f%% of unique terms)\n", run.TopFraction, run.TopPercentage)
	fmt.Printf("Duration:    %s\n", run.Duration)

	fmt.Printf("\nDocuments (%d):\n", len(docs))
	fmt.Println(strings.Repeat("-", 60))
	for i, d := range docs {
		if d.Success {
			lang := d.Language
			if lang == "" {
				lang = "-"
			}
			fmt.Printf("%2d. [success] %s: %d useful terms (%s)\n", i+1, d.Name, d.TermCount, lang)
		} else {
			fmt.Printf("%2d. [failed] %s\n", i+1, d.Name)
			fmt.Printf("    Error: [%s] %s\n", d.ErrorType, d.Error)
		}
	}

	if len(ranked) == 0 {
		fmt.Printf("\n%s\n", report.EmptyCorpusMessage)
		return nil
	}

	fmt.Printf("\nTop %d terms:\n", len(ranked))
	fmt.Println(strings.Repeat("-", 60))
	for _, t := range ranked {
		fmt.Println(report.FormatEntry(report.Entry{
			Rank:   t.Rank,
			Term:   t.Term,
			Count:  t.Count,
			Weight: t.Weight,
		}))
	}

	return nil
}
