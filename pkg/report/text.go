package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/term-ranker/pkg/batch"
)

// TextSink writes the plain text report. With Out set, it writes there and
// ignores the destination.
type TextSink struct {
	Out io.Writer
}

func (s *TextSink) Write(result batch.Result, destination string) error {
	content := strings.Join(Lines(result), "\n")
	if s.Out != nil {
		_, err := fmt.Fprintln(s.Out, content)
		return err
	}
	return writeTo(destination, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
}

// Lines renders the text report one line at a time.
func Lines(result batch.Result) []string {
	if result.NoDocuments() {
		return []string{NoDocumentsMessage}
	}

	var lines []string
	for _, d := range result.Succeeded() {
		lines = append(lines, fmt.Sprintf("%s: %d useful terms", d.Doc.Name, d.TermCount()))
	}
	lines = append(lines, result.Failures()...)

	r := result.Report
	if r.IsEmpty() {
		return append(lines, EmptyCorpusMessage)
	}

	lines = append(lines,
		fmt.Sprintf("\n🔢 Unique useful terms: %d", r.TotalUniqueTerms()),
		fmt.Sprintf("\n🏆 Top %d most frequent terms (with weights):\n", len(r.TopTerms())),
	)
	for _, e := range Entries(result) {
		lines = append(lines, FormatEntry(e))
	}
	return lines
}

// FormatEntry renders one ranked line, e.g.
// "01. testing                   →    9x | weight: 1.00".
func FormatEntry(e Entry) string {
	return fmt.Sprintf("%02d. %-25s → %4dx | weight: %.2f", e.Rank, e.Term, e.Count, e.Weight)
}
