// Package alignment looks up the best remote BLAST hit for a sequence.
package alignment

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_sequence_tools/internal/adapters/logger"
	"github.com/baditaflorin/go_sequence_tools/internal/adapters/ncbi"
	core "github.com/baditaflorin/go_sequence_tools/internal/core/alignment"
	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
	"github.com/baditaflorin/l"
)

// Lookup finds the best alignment hit for a query sequence.
type Lookup struct {
	service *core.Service
	timeout time.Duration
	logger  ports.Logger
}

// Option defines a functional option for configuring Lookup.
type Option func(*config)

type config struct {
	Logger     ports.Logger
	Searcher   ports.AlignmentSearcher
	NCBI       ncbi.Config
	HTTPClient *fasthttp.Client
	Timeout    time.Duration
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

// WithSearcher replaces the remote search backend.
func WithSearcher(s ports.AlignmentSearcher) Option {
	return func(cfg *config) {
		cfg.Searcher = s
	}
}

// WithNCBIConfig sets the configuration of the default NCBI searcher.
func WithNCBIConfig(c ncbi.Config) Option {
	return func(cfg *config) {
		cfg.NCBI = c
	}
}

// WithHTTPClient sets the fasthttp client used by the default NCBI searcher.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(cfg *config) {
		cfg.HTTPClient = c
	}
}

// WithTimeout bounds each lookup. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.Timeout = d
	}
}

// New creates a new Lookup.
func New(opts ...Option) (*Lookup, error) {
	cfg := &config{NCBI: ncbi.DefaultConfig()}
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
	if cfg.Searcher == nil {
		client, err := ncbi.NewClient(cfg.NCBI, cfg.HTTPClient, cfg.Logger)
		if err != nil {
			return nil, err
		}
		cfg.Searcher = client
	}

	return &Lookup{
		service: core.NewService(cfg.Searcher, cfg.Logger),
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}, nil
}

// Lookup searches for seq and classifies the outcome.
func (lk *Lookup) Lookup(ctx context.Context, seq string) domain.LookupResult {
	if lk.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lk.timeout)
		defer cancel()
	}
	return lk.service.Lookup(ctx, seq)
}
