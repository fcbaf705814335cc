// Package frequency aggregates extracted terms into ranked frequency reports.
package frequency

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Term is a normalized single word or multi-word compound.
// The zero value is an empty, non-compound term.
type Term struct {
	text     string
	compound bool
}

// NewTerm normalizes raw and returns the resulting Term.
func NewTerm(raw string, compound bool) Term {
	return Term{text: Normalize(raw), compound: compound}
}

// Normalize lowercases s, composes it to NFC and trims surrounding whitespace.
// Internal whitespace is kept as-is. Normalize is idempotent.
func Normalize(s string) string {
	// Casers keep state, so one per call.
	lower := cases.Lower(language.Und).String(s)
	return strings.TrimSpace(norm.NFC.String(lower))
}

// Text returns the normalized text.
func (t Term) Text() string { return t.text }

// IsCompound reports whether the term spans multiple words.
func (t Term) IsCompound() bool { return t.compound }

// Len returns the length of the normalized text in runes.
func (t Term) Len() int { return utf8.RuneCountInString(t.text) }

func (t Term) String() string { return t.text }
