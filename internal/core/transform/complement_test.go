package transform

import (
	"strings"
	"testing"
	"testing/quick"
)

func TestComplement(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase", "ATGC", "TACG"},
		{"lowercase is upper-cased", "atgc", "TACG"},
		{"mixed case", "aTgC", "TACG"},
		{"unknown characters dropped", "ATXGC", "TACG"},
		{"whitespace dropped", "AT GC\n", "TACG"},
		{"ambiguity codes dropped", "ANRTG", "TAC"},
		{"multi-byte runes dropped", "AéT", "TA"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Complement(tc.input); got != tc.expected {
				t.Errorf("Complement(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestComplementDropsInvalidLength(t *testing.T) {
	if got := Complement("ATXGC"); len(got) != 4 {
		t.Errorf("expected length 4 after dropping X, got %d (%q)", len(got), got)
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dna", "ATGC", "CGTA"},
		{"keeps non-nucleotides", "A1 b", "b 1A"},
		{"multi-byte runes stay intact", "aéz", "zéa"},
		{"single", "A", "A"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Reverse(tc.input); got != tc.expected {
				t.Errorf("Reverse(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestReverseIsInvolution(t *testing.T) {
	f := func(s string) bool {
		return Reverse(Reverse(s)) == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestReverseInvolutionOnSanitizedBytes(t *testing.T) {
	f := func(b []byte) bool {
		s := strings.ToValidUTF8(string(b), "\uFFFD")
		return Reverse(Reverse(s)) == s
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}

	// Stray bytes recombine into a valid rune once reversed.
	raw := "\x82\xac\xe2"
	if got := Reverse(raw); got != "\u2b02" {
		t.Errorf("Reverse(%q) = %q, want %q", raw, got, "\u2b02")
	}
	clean := strings.ToValidUTF8(raw, "\uFFFD")
	if got := Reverse(Reverse(clean)); got != clean {
		t.Errorf("Reverse(Reverse(%q)) = %q", clean, got)
	}
}

func TestReverseComplement(t *testing.T) {
	if got := ReverseComplement("ATGC"); got != "GCAT" {
		t.Errorf("ReverseComplement(ATGC) = %q, want GCAT", got)
	}
}
