// Package terms turns raw document text into frequency.Terms.
package terms

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/term-ranker/pkg/frequency"
	prose "github.com/jdkato/prose/v2"
)

// Extractor maps raw text to the terms it contains.
type Extractor interface {
	ExtractTerms(text string) ([]frequency.Term, error)
}

const (
	// DefaultMinLength keeps single words longer than two characters.
	DefaultMinLength = 3
	// DefaultMaxCompoundWords caps the width of a compound term.
	DefaultMaxCompoundWords = 4
)

var (
	wordRe     = regexp.MustCompile(`^[\p{L}\p{N}]+(?:['-][\p{L}\p{N}]+)*$`)
	apostrophe = strings.NewReplacer("\u2019", "'", "\u2018", "'")
)

// TaggedToken is a token with its Penn Treebank part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger splits text into tagged tokens.
type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

// ProseTagger tags English text with prose's averaged perceptron model.
type ProseTagger struct{}

func (ProseTagger) Tag(text string) ([]TaggedToken, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, err
	}
	toks := doc.Tokens()
	out := make([]TaggedToken, len(toks))
	for i, tok := range toks {
		out[i] = TaggedToken{Text: tok.Text, Tag: tok.Tag}
	}
	return out, nil
}

// TaggedExtractor keeps nouns, proper nouns and verbs as single terms and
// multi-word noun phrases (adjectives and nouns ending in a noun) as
// compounds.
type TaggedExtractor struct {
	Tagger           Tagger
	MinLength        int
	MaxCompoundWords int
}

// NewTaggedExtractor returns an extractor with the given limits; values
// below the allowed minimum fall back to the defaults and a nil tagger
// becomes ProseTagger.
func NewTaggedExtractor(tagger Tagger, minLength, maxCompoundWords int) *TaggedExtractor {
	if tagger == nil {
		tagger = ProseTagger{}
	}
	if minLength < 1 {
		minLength = DefaultMinLength
	}
	if maxCompoundWords < 2 {
		maxCompoundWords = DefaultMaxCompoundWords
	}
	return &TaggedExtractor{Tagger: tagger, MinLength: minLength, MaxCompoundWords: maxCompoundWords}
}

// ExtractTerms returns single-word terms in text order followed by compounds.
func (e *TaggedExtractor) ExtractTerms(text string) ([]frequency.Term, error) {
	tokens, err := e.Tagger.Tag(apostrophe.Replace(text))
	if err != nil {
		return nil, fmt.Errorf("failed to tag text: %w", err)
	}

	var singles, compounds []frequency.Term
	var phrase []TaggedToken
	flush := func() {
		if term, ok := e.nounPhrase(phrase); ok {
			compounds = append(compounds, term)
		}
		phrase = phrase[:0]
	}

	for _, tok := range tokens {
		word := isWord(tok.Text)

		switch {
		case !word || IsStopword(tok.Text):
			flush()
		case isNoun(tok.Tag):
			phrase = append(phrase, tok)
		case isAdjective(tok.Tag):
			// A modifier after a noun opens the next phrase.
			if n := len(phrase); n > 0 && isNoun(phrase[n-1].Tag) {
				flush()
			}
			phrase = append(phrase, tok)
		default:
			flush()
		}

		if word && (isNoun(tok.Tag) || isVerb(tok.Tag)) && e.keepSingle(tok.Text) {
			singles = append(singles, frequency.NewTerm(tok.Text, false))
		}
	}
	flush()

	return append(singles, compounds...), nil
}

// nounPhrase joins phrase up to its last noun. Phrases wider than
// MaxCompoundWords keep their rightmost words, where the head noun is.
func (e *TaggedExtractor) nounPhrase(phrase []TaggedToken) (frequency.Term, bool) {
	last := -1
	for i, tok := range phrase {
		if isNoun(tok.Tag) {
			last = i
		}
	}
	words := phrase[:last+1]
	if len(words) > e.MaxCompoundWords {
		words = words[len(words)-e.MaxCompoundWords:]
	}
	if len(words) < 2 {
		return frequency.Term{}, false
	}

	parts := make([]string, len(words))
	for i, tok := range words {
		parts[i] = tok.Text
	}
	return frequency.NewTerm(strings.Join(parts, " "), true), true
}

func (e *TaggedExtractor) keepSingle(word string) bool {
	return utf8.RuneCountInString(word) >= e.MinLength &&
		validToken(word) &&
		!IsStopword(word) &&
		!isNumeric(word)
}

func isWord(text string) bool {
	return wordRe.MatchString(text) && !isNumeric(text)
}

func isNoun(tag string) bool      { return strings.HasPrefix(tag, "NN") }
func isVerb(tag string) bool      { return strings.HasPrefix(tag, "VB") }
func isAdjective(tag string) bool { return strings.HasPrefix(tag, "JJ") }
