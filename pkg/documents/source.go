// Package documents lists source documents and extracts their text.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the document types listed when none are configured.
var DefaultExtensions = []string{".pdf"}

// ErrUnsupportedFormat is returned for documents without a text extractor.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DocumentRef identifies one source document.
type DocumentRef struct {
	Path string `json:"path" yaml:"path"`
	Name string `json:"name" yaml:"name"`
}

// Ext returns the lowercased file extension including the dot.
func (d DocumentRef) Ext() string {
	return strings.ToLower(filepath.Ext(d.Path))
}

// NewDocumentRef builds a ref for the file at path.
func NewDocumentRef(path string) DocumentRef {
	return DocumentRef{Path: path, Name: filepath.Base(path)}
}

// ReadError is a failure to open or decode a single document.
type ReadError struct {
	Doc DocumentRef
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.Doc.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Source lists documents and extracts their text.
type Source interface {
	// ListDocuments returns the documents in folder. A missing folder or one
	// without matching documents yields an empty slice and no error.
	ListDocuments(ctx context.Context, folder string) ([]DocumentRef, error)
	// ExtractText returns the document's text. Failures are *ReadError.
	ExtractText(ctx context.Context, doc DocumentRef) (string, error)
}

// TextExtractor reads the text of one file format.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// FolderSource reads documents from a flat directory, choosing a
// TextExtractor by file extension.
type FolderSource struct {
	extensions map[string]struct{}
	extractors map[string]TextExtractor
	logger     *slog.Logger
}

// NewFolderSource lists files with the given extensions (DefaultExtensions
// when empty). PDF, HTML, plain text and Markdown extractors are registered.
func NewFolderSource(extensions []string, logger *slog.Logger) *FolderSource {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &FolderSource{
		extensions: make(map[string]struct{}, len(extensions)),
		extractors: make(map[string]TextExtractor),
		logger:     logger,
	}
	for _, ext := range extensions {
		s.extensions[normalizeExt(ext)] = struct{}{}
	}

	html := &HTMLExtractor{}
	plain := &PlainExtractor{}
	s.Register(".pdf", &PDFExtractor{})
	s.Register(".html", html)
	s.Register(".htm", html)
	s.Register(".txt", plain)
	s.Register(".md", plain)
	return s
}

// Register sets the extractor used for ext, replacing any existing one.
func (s *FolderSource) Register(ext string, e TextExtractor) {
	s.extractors[normalizeExt(ext)] = e
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ListDocuments returns matching regular files directly inside folder,
// sorted by name. Subdirectories are not searched.
func (s *FolderSource) ListDocuments(ctx context.Context, folder string) ([]DocumentRef, error) {
	entries, err := os.ReadDir(folder)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("document folder does not exist", "folder", folder)
		return []DocumentRef{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list documents in %s: %w", folder, err)
	}

	docs := make([]DocumentRef, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		ref := NewDocumentRef(path)
		if _, ok := s.extensions[ref.Ext()]; !ok {
			continue
		}
		// Stat follows symlinks so linked documents are kept.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		docs = append(docs, ref)
	}

	s.logger.Debug("listed documents", "folder", folder, "count", len(docs))
	return docs, nil
}

// ExtractText reads doc with the extractor registered for its extension.
func (s *FolderSource) ExtractText(ctx context.Context, doc DocumentRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ReadError{Doc: doc, Err: err}
	}

	extractor, ok := s.extractors[doc.Ext()]
	if !ok {
		return "", &ReadError{Doc: doc, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Ext())}
	}

	text, err := extractor.Extract(doc.Path)
	if err != nil {
		return "", &ReadError{Doc: doc, Err: err}
	}
	return text, nil
}
