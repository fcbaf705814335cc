package frequency

import "testing"

func TestNewTerm_Normalizes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		compound bool
		want     string
	}{
		{name: "lowercase", raw: "Testing", want: "testing"},
		{name: "trim", raw: "  code \n", want: "code"},
		{name: "keeps internal spacing", raw: " Software  Testing ", compound: true, want: "software  testing"},
		{name: "accented upper", raw: "ÉCOLE", want: "école"},
		{name: "decomposed accent composes", raw: "cafe\u0301", want: "caf\u00e9"},
		{name: "blank", raw: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := NewTerm(tt.raw, tt.compound)
			if term.Text() != tt.want {
				t.Errorf("NewTerm(%q).Text() = %q, want %q", tt.raw, term.Text(), tt.want)
			}
			if term.IsCompound() != tt.compound {
				t.Errorf("NewTerm(%q).IsCompound() = %v, want %v", tt.raw, term.IsCompound(), tt.compound)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Test", "  MIXED Case  ", "software testing", "Ação", "cafe\u0301", "Straße", ""}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTerm_EqualRawInputsAreEqual(t *testing.T) {
	a := NewTerm("Code ", false)
	b := NewTerm(" CODE", false)
	if a != b {
		t.Errorf("terms from equal raw input differ: %#v vs %#v", a, b)
	}
}

func TestTerm_Len(t *testing.T) {
	if got := NewTerm("ação", false).Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
}
