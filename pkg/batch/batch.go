// Package batch extracts terms from a folder of documents concurrently and
// aggregates them into one frequency report.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/term-ranker/pkg/documents"
	"github.com/dtnitsch/term-ranker/pkg/frequency"
	"github.com/dtnitsch/term-ranker/pkg/terms"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of documents extracted at once.
const DefaultWorkers = 4

// Error types recorded on failed documents.
const (
	ErrorTypeRead        = "read_error"
	ErrorTypeUnsupported = "unsupported_format"
	ErrorTypeCancelled   = "cancelled"
	ErrorTypeExtract     = "extract_error"
)

// DocumentResult is the outcome of extracting one document: either its terms
// or the error that stopped it.
type DocumentResult struct {
	Doc       documents.DocumentRef
	Terms     []frequency.Term
	Language  terms.Detection
	Error     error
	ErrorType string
	Duration  time.Duration
}

// OK reports whether the document was extracted.
func (r DocumentResult) OK() bool { return r.Error == nil }

// TermCount is the number of terms extracted from the document.
func (r DocumentResult) TermCount() int { return len(r.Terms) }

// Result is the outcome of a whole run.
type Result struct {
	Folder    string
	Documents []DocumentResult
	Report    frequency.Report
	StartedAt time.Time
	Duration  time.Duration
}

// NoDocuments reports whether the folder held no matching documents.
func (r Result) NoDocuments() bool { return len(r.Documents) == 0 }

// Succeeded returns the documents whose terms were aggregated.
func (r Result) Succeeded() []DocumentResult {
	var out []DocumentResult
	for _, d := range r.Documents {
		if d.OK() {
			out = append(out, d)
		}
	}
	return out
}

// Failures returns one labeled message per failed document.
func (r Result) Failures() []string {
	var out []string
	for _, d := range r.Documents {
		if !d.OK() {
			out = append(out, d.Error.Error())
		}
	}
	return out
}

// Runner wires a document source and a term extractor together.
type Runner struct {
	source    documents.Source
	extractor terms.Extractor
	detector  *terms.LanguageDetector
	workers   int
	logger    *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets how many documents are extracted concurrently.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger used for per-document progress.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLanguageDetector enables per-document language detection.
func WithLanguageDetector(d *terms.LanguageDetector) Option {
	return func(r *Runner) {
		r.detector = d
	}
}

// NewRunner creates a Runner.
func NewRunner(source documents.Source, extractor terms.Extractor, opts ...Option) *Runner {
	r := &Runner{
		source:    source,
		extractor: extractor,
		workers:   DefaultWorkers,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run lists the documents in folder, extracts their terms and aggregates
// them. A failing document is recorded on its DocumentResult and does not
// stop the others. Run only returns an error for an invalid topFraction or
// when the folder cannot be listed.
func (r *Runner) Run(ctx context.Context, folder string, topFraction float64) (Result, error) {
	if err := frequency.ValidateTopFraction(topFraction); err != nil {
		return Result{}, err
	}

	result := Result{Folder: folder, StartedAt: time.Now()}

	docs, err := r.source.ListDocuments(ctx, folder)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list documents: %w", err)
	}
	r.logger.Info("Starting term extraction", "folder", folder, "documents", len(docs), "workers", r.workers)

	result.Documents = r.extractAll(ctx, docs)

	tallies := make([]frequency.Tally, 0, len(result.Documents))
	for _, d := range result.Documents {
		if d.OK() {
			tallies = append(tallies, frequency.Map(d.Terms))
		}
	}
	report, err := frequency.AggregateTally(frequency.Reduce(tallies...), topFraction)
	if err != nil {
		return Result{}, err
	}
	result.Report = report
	result.Duration = time.Since(result.StartedAt)

	r.logger.Info("Aggregation finished",
		"documents", len(result.Documents),
		"failed", len(result.Failures()),
		"unique_terms", report.TotalUniqueTerms(),
		"total_terms", report.TotalTerms(),
		"duration", result.Duration,
	)
	return result, nil
}

// extractAll runs one task per document. Results keep the listing order.
func (r *Runner) extractAll(ctx context.Context, docs []documents.DocumentRef) []DocumentResult {
	results := make([]DocumentResult, len(docs))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = r.extractOne(ctx, doc)
			return nil
		})
	}
	// Tasks never return errors; failures live on the results.
	_ = g.Wait()

	return results
}

func (r *Runner) extractOne(ctx context.Context, doc documents.DocumentRef) DocumentResult {
	start := time.Now()
	res := DocumentResult{Doc: doc, Language: terms.Detection{Language: terms.UnknownLanguage}}

	text, err := r.source.ExtractText(ctx, doc)
	if err != nil {
		var readErr *documents.ReadError
		if !errors.As(err, &readErr) {
			err = &documents.ReadError{Doc: doc, Err: err}
		}
		res.Error = err
		res.ErrorType = classify(err)
		res.Duration = time.Since(start)
		r.logger.Error("Failed to read document", "document", doc.Path, "error_type", res.ErrorType, "error", err)
		return res
	}

	if r.detector != nil {
		res.Language = r.detector.Detect(text)
	}
	extracted, err := r.extractor.ExtractTerms(text)
	if err != nil {
		res.Error = &documents.ReadError{Doc: doc, Err: err}
		res.ErrorType = ErrorTypeExtract
		res.Duration = time.Since(start)
		r.logger.Error("Failed to extract terms", "document", doc.Path, "error", err)
		return res
	}
	res.Terms = extracted
	res.Duration = time.Since(start)

	r.logger.Debug("Extracted document",
		"document", doc.Path,
		"terms", len(res.Terms),
		"language", res.Language.Language,
		"duration", res.Duration,
	)
	return res
}

func classify(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeCancelled
	case errors.Is(err, documents.ErrUnsupportedFormat):
		return ErrorTypeUnsupported
	default:
		return ErrorTypeRead
	}
}
