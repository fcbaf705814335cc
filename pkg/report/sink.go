// Package report renders batch results to files, stdout or SQLite.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtnitsch/term-ranker/pkg/batch"
)

// Messages shown at the presentation boundary.
const (
	NoDocumentsMessage = "⚠️ No documents found in the folder."
	EmptyCorpusMessage = "⚠️ No useful terms found in the documents."
)

// StdoutDestination writes the text format to standard output.
const StdoutDestination = "-"

// Sink renders a run's result to destination.
type Sink interface {
	Write(result batch.Result, destination string) error
}

// ForDestination picks a sink by the destination's extension. Unknown
// extensions get the text format.
func ForDestination(destination string) Sink {
	if destination == StdoutDestination {
		return &TextSink{Out: os.Stdout}
	}

	switch strings.ToLower(filepath.Ext(destination)) {
	case ".md", ".markdown":
		return &MarkdownSink{}
	case ".yaml", ".yml":
		return &YAMLSink{}
	case ".json":
		return &JSONSink{}
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteSink{}
	default:
		return &TextSink{}
	}
}

// createFile opens destination for writing, creating missing directories.
func createFile(destination string) (*os.File, error) {
	if dir := filepath.Dir(destination); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(destination)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// writeTo creates destination and hands it to render, reporting the first
// error from rendering or closing.
func writeTo(destination string, render func(w io.Writer) error) error {
	f, err := createFile(destination)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close() // Render error takes precedence
		return fmt.Errorf("failed to write %s: %w", destination, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destination, err)
	}
	return nil
}

// Entry is one ranked term in serialized reports.
type Entry struct {
	Rank       int     `json:"rank" yaml:"rank"`
	Term       string  `json:"term" yaml:"term"`
	IsCompound bool    `json:"is_compound" yaml:"is_compound"`
	Count      int     `json:"count" yaml:"count"`
	Weight     float64 `json:"weight" yaml:"weight"`
}

// DocumentEntry summarizes one source document.
type DocumentEntry struct {
	Name       string  `json:"name" yaml:"name"`
	Path       string  `json:"path" yaml:"path"`
	Status     string  `json:"status" yaml:"status"`
	Terms      int     `json:"terms" yaml:"terms"`
	Language   string  `json:"language,omitempty" yaml:"language,omitempty"`
	Confidence float64 `json:"language_confidence,omitempty" yaml:"language_confidence,omitempty"`
	ErrorType  string  `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Snapshot is the serializable form of a batch.Result.
type Snapshot struct {
	Folder           string          `json:"folder" yaml:"folder"`
	GeneratedAt      time.Time       `json:"generated_at" yaml:"generated_at"`
	TopFraction      float64         `json:"top_fraction" yaml:"top_fraction"`
	TotalUniqueTerms int             `json:"total_unique_terms" yaml:"total_unique_terms"`
	TotalTerms       int             `json:"total_terms" yaml:"total_terms"`
	MaxFrequency     int             `json:"max_frequency" yaml:"max_frequency"`
	TopPercentage    float64         `json:"top_percentage" yaml:"top_percentage"`
	TopTerms         []Entry         `json:"top_terms" yaml:"top_terms"`
	Documents        []DocumentEntry `json:"documents" yaml:"documents"`
	Failures         []string        `json:"failures,omitempty" yaml:"failures,omitempty"`
	Message          string          `json:"message,omitempty" yaml:"message,omitempty"`
}

// NewSnapshot flattens result for serialization.
func NewSnapshot(result batch.Result) Snapshot {
	r := result.Report
	s := Snapshot{
		Folder:           result.Folder,
		GeneratedAt:      result.StartedAt,
		TopFraction:      r.TopFraction(),
		TotalUniqueTerms: r.TotalUniqueTerms(),
		TotalTerms:       r.TotalTerms(),
		MaxFrequency:     r.MaxFrequency(),
		TopPercentage:    r.TopPercentage(),
		TopTerms:         Entries(result),
		Documents:        make([]DocumentEntry, 0, len(result.Documents)),
		Failures:         result.Failures(),
		Message:          message(result),
	}

	for _, d := range result.Documents {
		entry := DocumentEntry{Name: d.Doc.Name, Path: d.Doc.Path}
		if d.OK() {
			entry.Status = "success"
			entry.Terms = d.TermCount()
			entry.Language = d.Language.Language
			entry.Confidence = d.Language.Confidence
		} else {
			entry.Status = "failed"
			entry.ErrorType = d.ErrorType
			entry.Error = d.Error.Error()
		}
		s.Documents = append(s.Documents, entry)
	}
	return s
}

// Entries returns the report's top terms with 1-based ranks.
func Entries(result batch.Result) []Entry {
	top := result.Report.TopTerms()
	entries := make([]Entry, len(top))
	for i, tf := range top {
		entries[i] = Entry{
			Rank:       i + 1,
			Term:       tf.Term().Text(),
			IsCompound: tf.Term().IsCompound(),
			Count:      tf.Count(),
			Weight:     tf.Weight(),
		}
	}
	return entries
}

func message(result batch.Result) string {
	switch {
	case result.NoDocuments():
		return NoDocumentsMessage
	case result.Report.IsEmpty():
		return EmptyCorpusMessage
	default:
		return ""
	}
}
