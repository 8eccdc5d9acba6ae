package transform

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/go_sequence_tools/internal/core/composition"
	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// Config holds the collaborators of the dispatcher.
type Config struct {
	Translator ports.Translator
	Digits     ports.Normalizer
	Spaces     ports.Normalizer
	Linebreaks ports.Normalizer
}

// Validate checks that every collaborator is set.
func (c Config) Validate() error {
	if c.Translator == nil {
		return errors.New("translator is required")
	}
	if c.Digits == nil || c.Spaces == nil || c.Linebreaks == nil {
		return errors.New("digit, space and linebreak strippers are required")
	}
	return nil
}

// Dispatcher binds each domain.Action to its transformation.
type Dispatcher struct {
	config Config
	logger ports.Logger
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(config Config, logger ports.Logger) (*Dispatcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Dispatcher{config: config, logger: logger}, nil
}

// Apply runs action over seq. ActionNone returns seq unchanged. Only
// ActionTranslate can fail on input.
func (d *Dispatcher) Apply(ctx context.Context, action domain.Action, seq string) (string, error) {
	select {
	case <-ctx.Done():
		d.logger.Error("Transformation cancelled", "action", action.String(), "error", ctx.Err())
		return "", ctx.Err()
	default:
	}

	d.logger.Debug("Applying sequence action",
		"action", action.String(),
		"input_length", len(seq),
	)

	var (
		out string
		err error
	)
	switch action {
	case domain.ActionComplement:
		out = Complement(seq)
	case domain.ActionReverse:
		out = Reverse(seq)
	case domain.ActionTranslate:
		out, err = d.config.Translator.Translate(seq)
	case domain.ActionRemoveNumbers:
		out = d.config.Digits.Normalize(seq)
	case domain.ActionRemoveSpaces:
		out = d.config.Spaces.Normalize(seq)
	case domain.ActionRemoveLinebreaks:
		out = d.config.Linebreaks.Normalize(seq)
	case domain.ActionReverseComplement:
		out = ReverseComplement(seq)
	case domain.ActionGCContent:
		out = fmt.Sprintf("GC content: %.2f%%", composition.GCFraction(seq)*100)
	default:
		out = seq
	}

	if err != nil {
		d.logger.Error("Sequence action failed", "action", action.String(), "error", err)
		return "", err
	}

	d.logger.Debug("Sequence action completed",
		"action", action.String(),
		"output_length", len(out),
	)
	return out, nil
}
