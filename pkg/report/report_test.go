package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/term-ranker/pkg/batch"
	"github.com/dtnitsch/term-ranker/pkg/db"
	"github.com/dtnitsch/term-ranker/pkg/documents"
	"github.com/dtnitsch/term-ranker/pkg/frequency"
	"github.com/dtnitsch/term-ranker/pkg/terms"
	"gopkg.in/yaml.v3"
)

func words(ws ...string) []frequency.Term {
	out := make([]frequency.Term, len(ws))
	for i, w := range ws {
		out[i] = frequency.NewTerm(w, strings.Contains(w, " "))
	}
	return out
}

func sampleResult(t *testing.T) batch.Result {
	t.Helper()

	a := words("data", "data", "api", "machine learning")
	b := words("data", "api")
	report, err := frequency.Aggregate(append(append([]frequency.Term{}, a...), b...), 1.0)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	failed := documents.NewDocumentRef("/docs/c.pdf")
	return batch.Result{
		Folder: "/docs",
		Documents: []batch.DocumentResult{
			{Doc: documents.NewDocumentRef("/docs/a.pdf"), Terms: a, Language: terms.Detection{Language: "english", Confidence: 0.9}},
			{Doc: documents.NewDocumentRef("/docs/b.pdf"), Terms: b},
			{Doc: failed, Error: &documents.ReadError{Doc: failed, Err: errors.New("boom")}, ErrorType: batch.ErrorTypeRead},
		},
		Report:    report,
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
	}
}

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{Rank: 1, Term: "data", Count: 3, Weight: 1}, "01. data" + strings.Repeat(" ", 21) + " →    3x | weight: 1.00"},
		{Entry{Rank: 12, Term: "ação", Count: 1234, Weight: 0.3333}, "12. ação" + strings.Repeat(" ", 21) + " → 1234x | weight: 0.33"},
	}

	for _, tt := range tests {
		if got := FormatEntry(tt.entry); got != tt.want {
			t.Errorf("FormatEntry(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	lines := Lines(sampleResult(t))

	want := []string{
		"a.pdf: 4 useful terms",
		"b.pdf: 2 useful terms",
		"error reading /docs/c.pdf: boom",
		"\n🔢 Unique useful terms: 3",
		"\n🏆 Top 3 most frequent terms (with weights):\n",
		FormatEntry(Entry{Rank: 1, Term: "data", Count: 3, Weight: 1}),
		FormatEntry(Entry{Rank: 2, Term: "api", Count: 2, Weight: 0.6667}),
		FormatEntry(Entry{Rank: 3, Term: "machine learning", Count: 1, Weight: 0.3333}),
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLines_NoDocuments(t *testing.T) {
	lines := Lines(batch.Result{Folder: "/empty"})
	if len(lines) != 1 || lines[0] != NoDocumentsMessage {
		t.Errorf("got %q, want only the no-documents message", lines)
	}
}

func TestLines_EmptyCorpus(t *testing.T) {
	report, err := frequency.Aggregate(nil, 0.1)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	result := batch.Result{
		Documents: []batch.DocumentResult{{Doc: documents.NewDocumentRef("/docs/blank.pdf")}},
		Report:    report,
	}

	lines := Lines(result)
	want := []string{"blank.pdf: 0 useful terms", EmptyCorpusMessage}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", lines, want)
	}
}

func TestForDestination(t *testing.T) {
	tests := []struct {
		dest string
		want string
	}{
		{"output.txt", "*report.TextSink"},
		{"output", "*report.TextSink"},
		{"out/report.MD", "*report.MarkdownSink"},
		{"report.yaml", "*report.YAMLSink"},
		{"report.yml", "*report.YAMLSink"},
		{"report.json", "*report.JSONSink"},
		{"runs.db", "*report.SQLiteSink"},
		{"runs.sqlite", "*report.SQLiteSink"},
	}

	for _, tt := range tests {
		got := typeName(ForDestination(tt.dest))
		if got != tt.want {
			t.Errorf("ForDestination(%q) = %s, want %s", tt.dest, got, tt.want)
		}
	}

	stdout, ok := ForDestination(StdoutDestination).(*TextSink)
	if !ok || stdout.Out != os.Stdout {
		t.Errorf("ForDestination(%q) should write text to stdout", StdoutDestination)
	}
}

func typeName(s Sink) string {
	switch s.(type) {
	case *TextSink:
		return "*report.TextSink"
	case *MarkdownSink:
		return "*report.MarkdownSink"
	case *YAMLSink:
		return "*report.YAMLSink"
	case *JSONSink:
		return "*report.JSONSink"
	case *SQLiteSink:
		return "*report.SQLiteSink"
	default:
		return "unknown"
	}
}

func TestTextSink_CreatesDirectories(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "dir", "output.txt")

	if err := ForDestination(dest).Write(sampleResult(t), dest); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if got, want := string(data), strings.Join(Lines(sampleResult(t)), "\n"); got != want {
		t.Errorf("file content mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTextSink_Writer(t *testing.T) {
	var buf bytes.Buffer
	sink := &TextSink{Out: &buf}

	if err := sink.Write(batch.Result{}, "ignored.txt"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := buf.String(); got != NoDocumentsMessage+"\n" {
		t.Errorf("got %q", got)
	}
}

func TestTextSink_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := (&TextSink{}).Write(sampleResult(t), filepath.Join(blocker, "output.txt"))
	if err == nil {
		t.Error("expected error when parent is a regular file")
	}
}

func TestYAMLSink(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "report.yaml")
	if err := (&YAMLSink{}).Write(sampleResult(t), dest); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	var got Snapshot
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}

	checkSnapshot(t, got)
}

func TestJSONSink(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "report.json")
	if err := (&JSONSink{}).Write(sampleResult(t), dest); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	var got Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	checkSnapshot(t, got)
}

func checkSnapshot(t *testing.T, got Snapshot) {
	t.Helper()

	if got.TotalUniqueTerms != 3 || got.TotalTerms != 6 || got.MaxFrequency != 3 {
		t.Errorf("totals = %d/%d/%d, want 3/6/3", got.TotalUniqueTerms, got.TotalTerms, got.MaxFrequency)
	}
	if got.TopPercentage != 100 {
		t.Errorf("TopPercentage = %v, want 100", got.TopPercentage)
	}
	if !got.GeneratedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("GeneratedAt = %v", got.GeneratedAt)
	}
	if len(got.TopTerms) != 3 {
		t.Fatalf("got %d top terms, want 3", len(got.TopTerms))
	}
	last := got.TopTerms[2]
	if last.Rank != 3 || last.Term != "machine learning" || !last.IsCompound || last.Weight != 0.3333 {
		t.Errorf("last entry = %+v", last)
	}
	if len(got.Documents) != 3 || got.Documents[2].Status != "failed" || got.Documents[2].ErrorType != batch.ErrorTypeRead {
		t.Errorf("documents = %+v", got.Documents)
	}
	if got.Documents[0].Language != "english" {
		t.Errorf("language = %q, want english", got.Documents[0].Language)
	}
	if len(got.Failures) != 1 || got.Message != "" {
		t.Errorf("failures = %q, message = %q", got.Failures, got.Message)
	}
}

func TestMarkdownSink(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, sampleResult(t)); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Term Frequency Report",
		"## Documents",
		"## Top 3 terms",
		"machine learning",
		"[!CAUTION]",
		"error reading /docs/c.pdf: boom",
		"```mermaid",
		"Top term occurrences",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestMarkdownSink_NoDocuments(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "sub", "report.md")
	if err := (&MarkdownSink{}).Write(batch.Result{}, dest); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), NoDocumentsMessage) {
		t.Errorf("missing no-documents warning:\n%s", data)
	}
	if strings.Contains(string(data), "mermaid") {
		t.Error("chart should be omitted without documents")
	}
}

func TestSQLiteSink(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "store", "runs.db")
	sink := &SQLiteSink{}
	if err := sink.Write(sampleResult(t), dest); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if sink.RunID == 0 {
		t.Fatal("RunID not set")
	}

	database, err := db.OpenExisting(dest)
	if err != nil {
		t.Fatalf("OpenExisting failed: %v", err)
	}
	defer database.Close()

	run, err := database.GetRun(sink.RunID)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.DocumentCount != 3 || run.FailedCount != 1 || run.TotalUniqueTerms != 3 {
		t.Errorf("run = %+v", run)
	}

	ranked, err := database.GetRankedTerms(sink.RunID)
	if err != nil {
		t.Fatalf("GetRankedTerms failed: %v", err)
	}
	if len(ranked) != 3 || ranked[0].Term != "data" || ranked[0].Weight != 1 {
		t.Errorf("ranked = %+v", ranked)
	}

	docs, err := database.GetRunDocuments(sink.RunID)
	if err != nil {
		t.Fatalf("GetRunDocuments failed: %v", err)
	}
	if len(docs) != 3 || docs[2].Success || docs[2].Error == "" {
		t.Errorf("docs = %+v", docs)
	}
}
