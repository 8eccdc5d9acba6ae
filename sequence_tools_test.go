package sequencetools

import (
	"testing"
)

func TestTransformations(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string) string
		input    string
		expected string
	}{
		{"complement", Complement, "ATGC", "TACG"},
		{"complement lowercase", Complement, "atgc", "TACG"},
		{"complement drops invalid", Complement, "ATXGC", "TACG"},
		{"reverse", Reverse, "ATGC", "CGTA"},
		{"reverse complement", ReverseComplement, "ATGC", "GCAT"},
		{"remove digits", RemoveDigits, "A1T2G3C", "ATGC"},
		{"remove spaces", RemoveSpaces, "A T G C", "ATGC"},
		{"remove linebreaks", RemoveLinebreaks, "AT\nGC\r", "ATGC"},
		{"gc content", GCContent, "GGCA", "GC content: 75.00%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.input); got != tc.expected {
				t.Errorf("%s(%q) = %q, want %q", tc.name, tc.input, got, tc.expected)
			}
		})
	}
}

func TestReverseRoundTrip(t *testing.T) {
	for _, s := range []string{"", "A", "ATGCN", "gattaca\n12 ", "αβγ"} {
		if got := Reverse(Reverse(s)); got != s {
			t.Errorf("Reverse(Reverse(%q)) = %q", s, got)
		}
	}
}

func TestTranslate(t *testing.T) {
	got, err := Translate("ATGGCCTGA")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "MA*" {
		t.Errorf("Translate = %q, want MA*", got)
	}
}
