package terms

import (
	"errors"
	"testing"
)

func TestNewLanguageDetector_Validation(t *testing.T) {
	if _, err := NewLanguageDetector([]string{"english"}); !errors.Is(err, ErrTooFewLanguages) {
		t.Errorf("NewLanguageDetector(one) error = %v, want ErrTooFewLanguages", err)
	}
	if _, err := NewLanguageDetector([]string{"english", "klingon"}); err == nil {
		t.Error("NewLanguageDetector(klingon) error = nil, want error")
	}
}

func TestLanguageDetector_Detect(t *testing.T) {
	d, err := NewLanguageDetector([]string{"English", "portuguese"})
	if err != nil {
		t.Fatalf("NewLanguageDetector() error = %v", err)
	}

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "english", text: "The quick brown fox jumps over the lazy dog while the developers write tests.", want: "english"},
		{name: "portuguese", text: "Os desenvolvedores escrevem testes automatizados para garantir a qualidade do software.", want: "portuguese"},
		{name: "blank", text: "   ", want: UnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text)
			if got.Language != tt.want {
				t.Errorf("Detect() language = %q, want %q", got.Language, tt.want)
			}
			if got.Confidence < 0 || got.Confidence > 1 {
				t.Errorf("Detect() confidence = %v, out of [0,1]", got.Confidence)
			}
		})
	}
}
