// Package translator adapts the poly codon library to ports.Translator.
package translator

import (
	"fmt"
	"strings"

	"github.com/TimothyStiles/poly/transform/codon"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// StandardTable is the NCBI index of the standard genetic code.
const StandardTable = 1

// PolyTranslator translates DNA with one of the NCBI genetic code tables.
type PolyTranslator struct {
	tableIndex int
	table      codon.Table
}

// NewPolyTranslator creates a translator for the given NCBI table index.
func NewPolyTranslator(tableIndex int) ports.Translator {
	return &PolyTranslator{
		tableIndex: tableIndex,
		table:      codon.GetCodonTable(tableIndex),
	}
}

// NewStandardTranslator creates a translator using the standard genetic code.
func NewStandardTranslator() ports.Translator {
	return NewPolyTranslator(StandardTable)
}

// Translate maps each complete codon to its amino-acid symbol, '*' for stop.
// A trailing partial codon is ignored.
func (t *PolyTranslator) Translate(seq string) (string, error) {
	if seq == "" {
		return "", nil
	}
	protein, err := codon.Translate(strings.ToUpper(seq), t.table)
	if err != nil {
		return "", fmt.Errorf("%w: table %d: %v", domain.ErrTranslation, t.tableIndex, err)
	}
	return protein, nil
}
