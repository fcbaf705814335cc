package terms

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// commonWords supplements the snowball English stopword list with modal
// and light verbs, indefinite pronouns and fillers that a tagger labels as
// nouns or verbs but that never carry vocabulary.
var commonWords = map[string]struct{}{
	// Modals and auxiliaries.
	"could": {}, "may": {}, "might": {}, "must": {}, "shall": {}, "would": {},
	"ca": {}, "wo": {},

	// Light verbs.
	"became": {}, "become": {}, "becomes": {}, "becoming": {},
	"done": {}, "get": {}, "gets": {}, "got": {}, "keep": {}, "let": {},
	"made": {}, "make": {}, "makes": {}, "put": {}, "see": {}, "seem": {},
	"seemed": {}, "seeming": {}, "seems": {}, "take": {}, "use": {},

	// Indefinite pronouns and quantifiers.
	"anyone": {}, "anything": {}, "everyone": {}, "everything": {},
	"nobody": {}, "none": {}, "noone": {}, "nothing": {}, "someone": {},
	"something": {}, "others": {}, "many": {}, "much": {}, "several": {},
	"another": {}, "either": {}, "neither": {}, "every": {}, "less": {},
	"least": {}, "last": {}, "next": {}, "former": {}, "latter": {},
	"one": {},

	// Adverbs and connectives often mistagged as nouns.
	"etc": {}, "per": {}, "via": {}, "thru": {}, "hence": {},
	"thus": {}, "therefore": {}, "however": {}, "meanwhile": {},
	"moreover": {}, "nevertheless": {}, "otherwise": {}, "rather": {},
	"yet": {}, "also": {}, "still": {}, "well": {},
}

// IsStopword reports whether word is a function word or common filler.
func IsStopword(word string) bool {
	w := strings.ToLower(word)
	if _, ok := commonWords[w]; ok {
		return true
	}
	return english.IsStopWord(w)
}

// maxTokenLength bounds a single word; longer tokens are words glued
// together by text extraction.
const maxTokenLength = 40

func validToken(word string) bool {
	return utf8.RuneCountInString(word) <= maxTokenLength
}

// isNumeric reports whether word has no letters.
func isNumeric(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
