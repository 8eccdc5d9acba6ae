// Package sequence exposes the sequence transformations and composition
// reports behind a configurable facade.
package sequence

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_sequence_tools/internal/adapters/chart"
	"github.com/baditaflorin/go_sequence_tools/internal/adapters/logger"
	"github.com/baditaflorin/go_sequence_tools/internal/adapters/stripper"
	"github.com/baditaflorin/go_sequence_tools/internal/adapters/translator"
	"github.com/baditaflorin/go_sequence_tools/internal/core/composition"
	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/core/transform"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
	"github.com/baditaflorin/go_sequence_tools/internal/warmup"
	"github.com/baditaflorin/l"
)

// Transformer applies sequence actions and builds composition reports.
type Transformer struct {
	dispatcher *transform.Dispatcher
	strippers  []ports.Normalizer
	logger     ports.Logger
	warmOnce   sync.Once
}

// Option defines a functional option for configuring Transformer.
type Option func(*config)

type config struct {
	Logger       ports.Logger
	Translator   ports.Translator
	CodonTable   int
	WarmUp       bool
	WarmUpConfig warmup.WarmupConfig
}

// WithLogger sets a custom logger.
func WithLogger(l l.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = logger.FromExisting(l)
	}
}

// WithPortsLogger sets a logger that already satisfies the internal port.
func WithPortsLogger(lg ports.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = lg
	}
}

// WithTranslator replaces the codon translation backend.
func WithTranslator(t ports.Translator) Option {
	return func(cfg *config) {
		cfg.Translator = t
	}
}

// WithCodonTable selects an NCBI genetic code table for the default translator.
func WithCodonTable(index int) Option {
	return func(cfg *config) {
		cfg.CodonTable = index
	}
}

// WithWarmUp enables system warm-up on initialization.
func WithWarmUp(enable bool) Option {
	return func(cfg *config) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(wc warmup.WarmupConfig) Option {
	return func(cfg *config) {
		cfg.WarmUpConfig = wc
		cfg.WarmUp = true
	}
}

// New creates a new Transformer.
func New(opts ...Option) (*Transformer, error) {
	cfg := &config{
		CodonTable:   translator.StandardTable,
		WarmUpConfig: warmup.DefaultWarmupConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		var err error
		cfg.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Translator == nil {
		cfg.Translator = translator.NewPolyTranslator(cfg.CodonTable)
	}

	factory := stripper.NewFactory()
	kinds := []stripper.Type{stripper.DigitType, stripper.SpaceType, stripper.LinebreakType}
	strippers := make([]ports.Normalizer, len(kinds))
	for i, kind := range kinds {
		s, err := factory.Create(kind)
		if err != nil {
			return nil, err
		}
		strippers[i] = s
	}

	coreConfig := transform.Config{
		Translator: cfg.Translator,
		Digits:     strippers[0],
		Spaces:     strippers[1],
		Linebreaks: strippers[2],
	}
	dispatcher, err := transform.NewDispatcher(coreConfig, cfg.Logger)
	if err != nil {
		return nil, err
	}

	t := &Transformer{
		dispatcher: dispatcher,
		strippers:  strippers,
		logger:     cfg.Logger,
	}

	if cfg.WarmUp {
		t.WarmUp(context.Background(), cfg.WarmUpConfig)
	}
	return t, nil
}

// Apply runs action over seq.
func (t *Transformer) Apply(ctx context.Context, action domain.Action, seq string) (string, error) {
	return t.dispatcher.Apply(ctx, action, seq)
}

// ApplyLabel parses a form label and runs the matching action. Unknown labels
// return seq unchanged.
func (t *Transformer) ApplyLabel(ctx context.Context, label, seq string) (string, error) {
	return t.dispatcher.Apply(ctx, domain.ParseAction(label), seq)
}

// Analyze returns base counts and windowed GC statistics for seq.
func (t *Transformer) Analyze(seq string, window int) domain.Composition {
	return composition.Analyze(seq, window)
}

// GCWindowSVG renders the windowed GC content of seq as an SVG chart.
func (t *Transformer) GCWindowSVG(seq string, window int) ([]byte, error) {
	return chart.GCWindowSVG(composition.Analyze(seq, window))
}

// WarmUp performs system warm-up to optimize performance. Only the first
// call does any work; it is safe to call concurrently.
func (t *Transformer) WarmUp(ctx context.Context, wc warmup.WarmupConfig) {
	ran := false
	t.warmOnce.Do(func() {
		ran = true
		warmupMgr := warmup.NewManager(t.logger, wc)
		warmupMgr.RegisterTransformer(t.dispatcher)
		for _, s := range t.strippers {
			warmupMgr.RegisterNormalizer(s)
		}
		warmupMgr.WarmUp(ctx)
	})
	if !ran {
		t.logger.Debug("System already warmed up, skipping")
	}
}
