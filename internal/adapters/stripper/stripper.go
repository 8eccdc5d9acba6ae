// Package stripper provides single-pass character removal filters used by the
// sequence cleanup actions.
package stripper

import (
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_sequence_tools/internal/pool"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// RuneStripper removes every rune matched by its predicate and keeps all
// other runes in order.
type RuneStripper struct {
	// Pre-computed drop decisions for ASCII characters (0-127)
	asciiTable [128]bool
	drop       func(r rune) bool

	bytePool *pool.BufferPool
}

// NewRuneStripper builds a stripper from a drop predicate.
func NewRuneStripper(drop func(r rune) bool) *RuneStripper {
	s := &RuneStripper{
		drop:     drop,
		bytePool: pool.NewBufferPool(8192),
	}
	for i := 0; i < 128; i++ {
		s.asciiTable[i] = drop(rune(i))
	}
	return s
}

// NewDigitStripper removes every decimal digit, including non-ASCII digits.
func NewDigitStripper() ports.Normalizer {
	return NewRuneStripper(unicode.IsDigit)
}

// NewSpaceStripper removes ASCII spaces only; tabs and other whitespace are kept.
func NewSpaceStripper() ports.Normalizer {
	return NewRuneStripper(func(r rune) bool { return r == ' ' })
}

// NewLinebreakStripper removes carriage returns and line feeds.
func NewLinebreakStripper() ports.Normalizer {
	return NewRuneStripper(func(r rune) bool { return r == '\r' || r == '\n' })
}

// Normalize returns text with every dropped rune removed.
func (s *RuneStripper) Normalize(text string) string {
	if len(text) == 0 {
		return ""
	}

	buffer := s.bytePool.Get()
	defer s.bytePool.Put(buffer)

	if cap(*buffer) < len(text) {
		*buffer = make([]byte, 0, len(text))
	}
	*buffer = (*buffer)[:0]

	for i := 0; i < len(text); {
		b := text[i]
		if b < utf8.RuneSelf {
			if !s.asciiTable[b] {
				*buffer = append(*buffer, b)
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError || !s.drop(r) {
			// Invalid bytes are copied through untouched.
			*buffer = append(*buffer, text[i:i+size]...)
		}
		i += size
	}

	return string(*buffer)
}
