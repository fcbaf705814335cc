package extract

import (
	"fmt"
	"os"

	"github.com/dtnitsch/term-ranker/internal/common"
	"github.com/dtnitsch/term-ranker/pkg/documents"
	"github.com/dtnitsch/term-ranker/pkg/frequency"
	"github.com/dtnitsch/term-ranker/pkg/terms"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Output is what the extract command prints for one document.
type Output struct {
	Document  string           `yaml:"document"`
	Language  *terms.Detection `yaml:"language,omitempty"`
	TermCount int              `yaml:"term_count"`
	Unique    int              `yaml:"unique_terms"`
	Terms     []Term           `yaml:"terms"`
}

// Term is one extracted term with its count in the document.
type Term struct {
	Text     string `yaml:"text"`
	Compound bool   `yaml:"compound,omitempty"`
	Count    int    `yaml:"count"`
}

// ExtractAction prints the terms found in a single document as YAML.
func ExtractAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument, got %d", c.NArg())
	}
	logger := common.NewLogger(c)

	cfg, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	doc := documents.NewDocumentRef(c.Args().First())
	source := documents.NewFolderSource(cfg.Extensions, logger)
	text, err := source.ExtractText(c.Context, doc)
	if err != nil {
		return err
	}

	extractor := terms.NewTaggedExtractor(nil, cfg.MinTermLength, cfg.MaxCompoundWords)
	extracted, err := extractor.ExtractTerms(text)
	if err != nil {
		return fmt.Errorf("failed to extract terms from %s: %w", doc.Path, err)
	}
	out := BuildOutput(doc, extracted)

	if len(cfg.Languages) > 0 {
		detector, err := terms.NewLanguageDetector(cfg.Languages)
		if err != nil {
			return fmt.Errorf("failed to build language detector: %w", err)
		}
		detection := detector.Detect(text)
		out.Language = &detection
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode terms: %w", err)
	}
	return enc.Close()
}

// BuildOutput counts extracted terms, most frequent first.
func BuildOutput(doc documents.DocumentRef, extracted []frequency.Term) Output {
	tally := frequency.Map(extracted)
	ranked := frequency.Rank(tally)

	out := Output{
		Document:  doc.Path,
		TermCount: tally.Total(),
		Unique:    tally.Unique(),
		Terms:     make([]Term, len(ranked)),
	}
	for i, tf := range ranked {
		out.Terms[i] = Term{
			Text:     tf.Term().Text(),
			Compound: tf.Term().IsCompound(),
			Count:    tf.Count(),
		}
	}
	return out
}
