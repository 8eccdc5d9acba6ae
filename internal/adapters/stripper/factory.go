package stripper

import (
	"fmt"

	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// Type selects which characters a stripper removes.
type Type int

const (
	DigitType Type = iota
	SpaceType
	LinebreakType
)

// Factory creates strippers by type.
type Factory struct{}

// NewFactory creates a new stripper factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the stripper for the given type.
func (f *Factory) Create(t Type) (ports.Normalizer, error) {
	switch t {
	case DigitType:
		return NewDigitStripper(), nil
	case SpaceType:
		return NewSpaceStripper(), nil
	case LinebreakType:
		return NewLinebreakStripper(), nil
	default:
		return nil, fmt.Errorf("unknown stripper type %d", int(t))
	}
}
