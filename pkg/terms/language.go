package terms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// UnknownLanguage is reported when no language could be detected.
const UnknownLanguage = "unknown"

// detectSampleRunes bounds how much of a document is fed to the detector.
const detectSampleRunes = 4096

var ErrTooFewLanguages = errors.New("language detection needs at least two languages")

// Detection is the detected language of one document.
type Detection struct {
	Language   string  `json:"language" yaml:"language"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// LanguageDetector guesses the language of document text.
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector builds a detector restricted to the named languages,
// e.g. "english", "portuguese". Names are matched case-insensitively.
func NewLanguageDetector(names []string) (*LanguageDetector, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewLanguages, len(names))
	}

	langs := make([]lingua.Language, 0, len(names))
	for _, name := range names {
		lang, ok := lookupLanguage(name)
		if !ok {
			return nil, fmt.Errorf("unknown language %q", name)
		}
		langs = append(langs, lang)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	return &LanguageDetector{detector: detector}, nil
}

func lookupLanguage(name string) (lingua.Language, bool) {
	name = strings.TrimSpace(name)
	for _, lang := range lingua.AllLanguages() {
		if strings.EqualFold(lang.String(), name) {
			return lang, true
		}
	}
	return lingua.Unknown, false
}

// Detect returns the most likely language of text. Empty or ambiguous text
// yields UnknownLanguage with zero confidence.
func (d *LanguageDetector) Detect(text string) Detection {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return Detection{Language: UnknownLanguage}
	}
	if runes := []rune(sample); len(runes) > detectSampleRunes {
		sample = string(runes[:detectSampleRunes])
	}

	lang, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return Detection{Language: UnknownLanguage}
	}
	return Detection{
		Language:   strings.ToLower(lang.String()),
		Confidence: d.detector.ComputeLanguageConfidence(sample, lang),
	}
}
