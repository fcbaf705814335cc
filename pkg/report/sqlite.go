package report

import (
	"fmt"

	"github.com/dtnitsch/term-ranker/pkg/batch"
	"github.com/dtnitsch/term-ranker/pkg/db"
)

// SQLiteSink appends the run to a SQLite database, creating it if needed.
type SQLiteSink struct {
	// RunID is set after a successful Write.
	RunID int64
}

func (s *SQLiteSink) Write(result batch.Result, destination string) error {
	database, err := db.Open(destination)
	if err != nil {
		return err
	}
	defer database.Close()

	run, terms, docs := ToRows(result)
	id, err := database.InsertRun(run, terms, docs)
	if err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}
	s.RunID = id
	return nil
}

// ToRows converts result into database rows.
func ToRows(result batch.Result) (db.Run, []db.RankedTerm, []db.Document) {
	r := result.Report
	run := db.Run{
		Folder:           result.Folder,
		TopFraction:      r.TopFraction(),
		TotalUniqueTerms: r.TotalUniqueTerms(),
		TotalTerms:       r.TotalTerms(),
		MaxFrequency:     r.MaxFrequency(),
		TopPercentage:    r.TopPercentage(),
		DocumentCount:    len(result.Documents),
		FailedCount:      len(result.Failures()),
		Duration:         result.Duration,
	}

	entries := Entries(result)
	terms := make([]db.RankedTerm, len(entries))
	for i, e := range entries {
		terms[i] = db.RankedTerm{
			Rank:       e.Rank,
			Term:       e.Term,
			IsCompound: e.IsCompound,
			Count:      e.Count,
			Weight:     e.Weight,
		}
	}

	docs := make([]db.Document, len(result.Documents))
	for i, d := range result.Documents {
		doc := db.Document{
			Path:    d.Doc.Path,
			Name:    d.Doc.Name,
			Success: d.OK(),
		}
		if d.OK() {
			doc.TermCount = d.TermCount()
			doc.Language = d.Language.Language
			doc.LanguageConfidence = d.Language.Confidence
		} else {
			doc.ErrorType = d.ErrorType
			doc.Error = d.Error.Error()
		}
		docs[i] = doc
	}
	return run, terms, docs
}
