package ports

import (
	"context"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

// Transformer applies a sequence action to input text.
type Transformer interface {
	Apply(ctx context.Context, action domain.Action, seq string) (string, error)
}

// Translator maps nucleotide codons to amino-acid symbols.
type Translator interface {
	Translate(seq string) (string, error)
}
