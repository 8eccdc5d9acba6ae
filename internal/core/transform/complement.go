// Package transform implements the single-pass sequence transformations.
package transform

import (
	"unicode/utf8"

	"github.com/TimothyStiles/poly/transform"

	"github.com/baditaflorin/go_sequence_tools/internal/pool"
)

var complementTable [256]byte

func init() {
	complementTable['A'] = 'T'
	complementTable['T'] = 'A'
	complementTable['G'] = 'C'
	complementTable['C'] = 'G'
	complementTable['a'] = 'T'
	complementTable['t'] = 'A'
	complementTable['g'] = 'C'
	complementTable['c'] = 'G'
}

var bytePool = pool.NewBufferPool(8192)

// Complement replaces each nucleotide with its Watson-Crick partner (A<->T,
// G<->C). Input case is ignored and output is always uppercase. Characters
// outside ACGT are dropped, so the output can be shorter than the input.
func Complement(seq string) string {
	if len(seq) == 0 {
		return ""
	}

	buffer := bytePool.Get()
	defer bytePool.Put(buffer)

	for i := 0; i < len(seq); i++ {
		if c := complementTable[seq[i]]; c != 0 {
			*buffer = append(*buffer, c)
		}
	}
	return string(*buffer)
}

// Reverse inverts the rune order of seq. Invalid UTF-8 bytes are moved as
// single units, so Reverse(Reverse(seq)) == seq only holds for valid UTF-8;
// callers taking raw input should pass it through strings.ToValidUTF8 first.
func Reverse(seq string) string {
	if len(seq) == 0 {
		return ""
	}

	buffer := bytePool.Get()
	defer bytePool.Put(buffer)

	for end := len(seq); end > 0; {
		_, size := utf8.DecodeLastRuneInString(seq[:end])
		*buffer = append(*buffer, seq[end-size:end]...)
		end -= size
	}
	return string(*buffer)
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	return transform.ReverseComplement(seq)
}
