package documents

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// textBlocks are the elements whose text is kept from an HTML document.
const textBlocks = "h1,h2,h3,h4,h5,h6,p,li,td,th,pre,blockquote"

// HTMLExtractor keeps the main content of an HTML file. Readability picks the
// article; pages it cannot distill fall back to the whole body.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}

	content := string(raw)
	var title string
	parser := readability.NewParser()
	if article, err := parser.Parse(bytes.NewReader(raw), pageURL); err == nil && strings.TrimSpace(article.Content) != "" {
		content = article.Content
		title = normalizeText(article.Title)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var blocks []string
	if title != "" {
		blocks = append(blocks, title)
	}
	doc.Find(textBlocks).Each(func(i int, s *goquery.Selection) {
		// Nested blocks are read through their innermost element.
		if s.Find(textBlocks).Length() > 0 {
			return
		}
		if text := normalizeText(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		if text := normalizeText(doc.Find("body").Text()); text != "" {
			blocks = append(blocks, text)
		}
	}

	return strings.Join(blocks, "\n"), nil
}

// normalizeText collapses runs of whitespace, newlines included.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
