// Package sequencetools provides single-pass transformations of DNA sequence
// text: complement, reverse, reverse complement, translation, GC content and
// removal of digits, spaces or linebreaks.
//
// Input is never validated. Complement drops every character outside ACGT
// (case-insensitive) and always emits uppercase; the cleanup functions keep
// everything they do not remove. Only Translate can fail.
//
// For configurable use, including logging and warm-up, see pkg/sequence. For
// remote BLAST lookups, see pkg/alignment.
package sequencetools

import (
	"fmt"

	"github.com/baditaflorin/go_sequence_tools/internal/adapters/stripper"
	"github.com/baditaflorin/go_sequence_tools/internal/adapters/translator"
	"github.com/baditaflorin/go_sequence_tools/internal/core/composition"
	"github.com/baditaflorin/go_sequence_tools/internal/core/transform"
)

var (
	digits     = stripper.NewDigitStripper()
	spaces     = stripper.NewSpaceStripper()
	linebreaks = stripper.NewLinebreakStripper()
	standard   = translator.NewStandardTranslator()
)

// Complement returns the uppercase Watson-Crick complement of seq, dropping
// characters outside ACGT.
func Complement(seq string) string {
	return transform.Complement(seq)
}

// Reverse returns seq with its characters in reverse order.
func Reverse(seq string) string {
	return transform.Reverse(seq)
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	return transform.ReverseComplement(seq)
}

// Translate translates seq with the standard genetic code, '*' marking stop
// codons. A trailing partial codon is ignored.
func Translate(seq string) (string, error) {
	return standard.Translate(seq)
}

// RemoveDigits deletes every decimal digit from seq.
func RemoveDigits(seq string) string {
	return digits.Normalize(seq)
}

// RemoveSpaces deletes ASCII spaces from seq. Tabs and other whitespace are kept.
func RemoveSpaces(seq string) string {
	return spaces.Normalize(seq)
}

// RemoveLinebreaks deletes carriage returns and line feeds from seq.
func RemoveLinebreaks(seq string) string {
	return linebreaks.Normalize(seq)
}

// GCContent reports the GC percentage of seq, e.g. "GC content: 50.00%".
func GCContent(seq string) string {
	return fmt.Sprintf("GC content: %.2f%%", composition.GCFraction(seq)*100)
}
