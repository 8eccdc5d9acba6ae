// Package server serves the sequence tools over HTTP with fasthttp.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// Default configuration
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means fasthttp's default
	DefaultWindow         = 100
	TransformTimeout      = 30 * time.Second
)

// Config holds the HTTP server settings.
type Config struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int
	Concurrency    int
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxRequestSize: DefaultMaxRequestSize,
		Concurrency:    DefaultConcurrency,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.MaxRequestSize <= 0 {
		return errors.New("max request size must be greater than 0")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// Sequencer runs sequence actions and composition reports.
type Sequencer interface {
	Apply(ctx context.Context, action domain.Action, seq string) (string, error)
	Analyze(seq string, window int) domain.Composition
	GCWindowSVG(seq string, window int) ([]byte, error)
}

// AlignmentLookup finds the best remote alignment of a sequence.
type AlignmentLookup interface {
	Lookup(ctx context.Context, seq string) domain.LookupResult
}

// Server routes HTTP requests to the sequence and alignment services.
type Server struct {
	config    Config
	sequencer Sequencer
	lookup    AlignmentLookup
	logger    ports.Logger
	pages     *template.Template
}

// New creates a server. All collaborators are required.
func New(config Config, sequencer Sequencer, lookup AlignmentLookup, logger ports.Logger) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sequencer == nil || lookup == nil || logger == nil {
		return nil, errors.New("sequencer, lookup and logger are required")
	}
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		config:    config,
		sequencer: sequencer,
		lookup:    lookup,
		logger:    logger,
		pages:     pages,
	}, nil
}

func (s *Server) httpServer(base context.Context) *fasthttp.Server {
	return &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			s.route(base, ctx)
		},
		Name:                  "SequenceToolsServer",
		ReadTimeout:           s.config.ReadTimeout,
		WriteTimeout:          s.config.WriteTimeout,
		MaxRequestBodySize:    s.config.MaxRequestSize,
		Concurrency:           s.config.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}
}

// ListenAndServe listens on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. Requests inherit ctx, so a cancelled server aborts pending
// BLAST lookups instead of waiting for them.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.httpServer(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Server listening", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			s.logger.Error("Error during server shutdown", "error", err)
			return err
		}
		err := <-errCh
		s.logger.Info("Server stopped")
		return err
	}
}
