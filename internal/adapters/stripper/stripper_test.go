package stripper

import "testing"

func TestStrippers(t *testing.T) {
	factory := NewFactory()

	tests := []struct {
		name     string
		kind     Type
		input    string
		expected string
	}{
		{"digits removed", DigitType, "A1T2G3C", "ATGC"},
		{"digits only", DigitType, "0123456789", ""},
		{"non-ASCII digits removed", DigitType, "AT٣GC", "ATGC"},
		{"digits keep whitespace", DigitType, "1 ATG\n2 CCA", " ATG\n CCA"},
		{"spaces removed", SpaceType, "A T G C", "ATGC"},
		{"spaces keep tabs", SpaceType, "A\tT G", "A\tTG"},
		{"spaces keep newlines", SpaceType, "AT \nGC", "AT\nGC"},
		{"linebreaks removed", LinebreakType, "AT\nGC\r", "ATGC"},
		{"linebreaks keep spaces", LinebreakType, "AT \r\nGC", "AT GC"},
		{"empty input", LinebreakType, "", ""},
		{"unicode passthrough", SpaceType, "é ü", "éü"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := factory.Create(tc.kind)
			if err != nil {
				t.Fatalf("Create(%d): %v", tc.kind, err)
			}
			if got := s.Normalize(tc.input); got != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	for _, kind := range []Type{Type(-1), LinebreakType + 1} {
		if s, err := NewFactory().Create(kind); err == nil {
			t.Errorf("Create(%d) = %T, want error", kind, s)
		}
	}
}

func TestStripperReuse(t *testing.T) {
	s := NewDigitStripper()
	first := s.Normalize("A1C2")
	second := s.Normalize("G3")
	if first != "AC" || second != "G" {
		t.Errorf("pooled buffer leaked between calls: %q, %q", first, second)
	}
}
