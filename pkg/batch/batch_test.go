package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/dtnitsch/term-ranker/pkg/documents"
	"github.com/dtnitsch/term-ranker/pkg/frequency"
)

// fakeSource serves canned text; a doc whose text starts with "!" fails.
type fakeSource struct {
	docs    []string
	texts   map[string]string
	listErr error
}

func (s *fakeSource) ListDocuments(ctx context.Context, folder string) ([]documents.DocumentRef, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	refs := make([]documents.DocumentRef, 0, len(s.docs))
	for _, name := range s.docs {
		refs = append(refs, documents.NewDocumentRef(folder+"/"+name))
	}
	return refs, nil
}

func (s *fakeSource) ExtractText(ctx context.Context, doc documents.DocumentRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &documents.ReadError{Doc: doc, Err: err}
	}
	text := s.texts[doc.Name]
	if strings.HasPrefix(text, "!") {
		return "", &documents.ReadError{Doc: doc, Err: errors.New(text[1:])}
	}
	return text, nil
}

// fieldsExtractor emits one single-word term per whitespace-separated field;
// a field starting with "?" fails the document.
type fieldsExtractor struct{}

func (fieldsExtractor) ExtractTerms(text string) ([]frequency.Term, error) {
	var out []frequency.Term
	for _, f := range strings.Fields(text) {
		if strings.HasPrefix(f, "?") {
			return nil, errors.New(f[1:])
		}
		out = append(out, frequency.NewTerm(f, false))
	}
	return out, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRunner(src *fakeSource) *Runner {
	return NewRunner(src, fieldsExtractor{}, WithWorkers(3), WithLogger(quietLogger()))
}

func TestRun_AggregatesAcrossDocuments(t *testing.T) {
	src := &fakeSource{
		docs: []string{"a.pdf", "b.pdf"},
		texts: map[string]string{
			"a.pdf": "test test code",
			"b.pdf": "Test review",
		},
	}

	result, err := newTestRunner(src).Run(context.Background(), "in", frequency.DefaultTopFraction)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Report.TotalTerms() != 5 {
		t.Errorf("TotalTerms() = %d, want 5", result.Report.TotalTerms())
	}
	if result.Report.TotalUniqueTerms() != 3 {
		t.Errorf("TotalUniqueTerms() = %d, want 3", result.Report.TotalUniqueTerms())
	}
	top := result.Report.TopTerms()
	if len(top) != 1 || top[0].Term().Text() != "test" || top[0].Count() != 3 {
		t.Errorf("TopTerms() = %v, want [test x3]", top)
	}
	if got := result.Documents[0].TermCount(); got != 3 {
		t.Errorf("a.pdf TermCount() = %d, want 3", got)
	}
}

func TestRun_FailedDocumentDoesNotAbortBatch(t *testing.T) {
	src := &fakeSource{
		docs: []string{"bad.pdf", "good.pdf", "worse.pdf"},
		texts: map[string]string{
			"bad.pdf":   "!corrupt xref table",
			"good.pdf":  "alpha beta alpha",
			"worse.pdf": "!unexpected EOF",
		},
	}

	result, err := newTestRunner(src).Run(context.Background(), "in", 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantFailures := []string{
		"error reading in/bad.pdf: corrupt xref table",
		"error reading in/worse.pdf: unexpected EOF",
	}
	if got := result.Failures(); !reflect.DeepEqual(got, wantFailures) {
		t.Errorf("Failures() = %v, want %v", got, wantFailures)
	}
	if got := len(result.Succeeded()); got != 1 {
		t.Errorf("len(Succeeded()) = %d, want 1", got)
	}
	if result.Documents[0].ErrorType != ErrorTypeRead {
		t.Errorf("ErrorType = %q, want %q", result.Documents[0].ErrorType, ErrorTypeRead)
	}
	if result.Report.TotalTerms() != 3 {
		t.Errorf("TotalTerms() = %d, want 3 (failed documents excluded)", result.Report.TotalTerms())
	}
}

func TestRun_PreservesListingOrder(t *testing.T) {
	src := &fakeSource{texts: map[string]string{}}
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("doc%02d.pdf", i)
		src.docs = append(src.docs, name)
		src.texts[name] = name
	}

	result, err := newTestRunner(src).Run(context.Background(), "in", frequency.DefaultTopFraction)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i, d := range result.Documents {
		if d.Doc.Name != src.docs[i] {
			t.Fatalf("Documents[%d] = %s, want %s", i, d.Doc.Name, src.docs[i])
		}
	}
}

func TestRun_NoDocuments(t *testing.T) {
	result, err := newTestRunner(&fakeSource{}).Run(context.Background(), "in", frequency.DefaultTopFraction)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.NoDocuments() {
		t.Error("NoDocuments() = false, want true")
	}
	if !result.Report.IsEmpty() {
		t.Error("Report.IsEmpty() = false, want true")
	}
}

func TestRun_EmptyCorpusIsNotAnError(t *testing.T) {
	src := &fakeSource{docs: []string{"blank.pdf"}, texts: map[string]string{"blank.pdf": ""}}
	result, err := newTestRunner(src).Run(context.Background(), "in", frequency.DefaultTopFraction)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.NoDocuments() || !result.Report.IsEmpty() {
		t.Errorf("NoDocuments() = %v, IsEmpty() = %v; want false, true", result.NoDocuments(), result.Report.IsEmpty())
	}
}

func TestRun_InvalidTopFraction(t *testing.T) {
	src := &fakeSource{listErr: errors.New("should not be listed")}
	_, err := newTestRunner(src).Run(context.Background(), "in", 1.5)
	if !errors.Is(err, frequency.ErrInvalidTopFraction) {
		t.Errorf("Run() error = %v, want ErrInvalidTopFraction", err)
	}
}

func TestRun_ListError(t *testing.T) {
	listErr := errors.New("permission denied")
	_, err := newTestRunner(&fakeSource{listErr: listErr}).Run(context.Background(), "in", frequency.DefaultTopFraction)
	if !errors.Is(err, listErr) {
		t.Errorf("Run() error = %v, want wrapped list error", err)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	src := &fakeSource{docs: []string{"a.pdf", "b.pdf"}, texts: map[string]string{"a.pdf": "x", "b.pdf": "y"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newTestRunner(src).Run(ctx, "in", frequency.DefaultTopFraction)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, d := range result.Documents {
		if d.ErrorType != ErrorTypeCancelled {
			t.Errorf("%s ErrorType = %q, want %q", d.Doc.Name, d.ErrorType, ErrorTypeCancelled)
		}
	}
}

func TestRun_ExtractErrorFailsDocument(t *testing.T) {
	src := &fakeSource{
		docs:  []string{"a.pdf", "b.pdf"},
		texts: map[string]string{"a.pdf": "alpha ?untaggable", "b.pdf": "beta"},
	}

	result, err := newTestRunner(src).Run(context.Background(), "in", 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	a := result.Documents[0]
	if a.OK() || a.ErrorType != ErrorTypeExtract {
		t.Errorf("a.pdf = %+v, want extract_error", a)
	}
	if !strings.Contains(a.Error.Error(), "untaggable") {
		t.Errorf("Error() = %q, want extractor message", a.Error.Error())
	}
	if result.Report.TotalTerms() != 1 {
		t.Errorf("TotalTerms() = %d, want 1", result.Report.TotalTerms())
	}
}

func TestRun_PDFFolder(t *testing.T) {
	runner := NewRunner(documents.NewFolderSource(nil, quietLogger()), fieldsExtractor{}, WithLogger(quietLogger()))

	result, err := runner.Run(context.Background(), "../documents/testdata", 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("len(Documents) = %d, want 1", len(result.Documents))
	}
	doc := result.Documents[0]
	if !doc.OK() {
		t.Fatalf("sample.pdf failed: %v", doc.Error)
	}
	if doc.TermCount() == 0 || result.Report.TotalUniqueTerms() == 0 {
		t.Errorf("TermCount() = %d, unique = %d, want both non-zero", doc.TermCount(), result.Report.TotalUniqueTerms())
	}
}
