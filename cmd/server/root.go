package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/baditaflorin/go_sequence_tools/internal/adapters/logger"
	"github.com/baditaflorin/go_sequence_tools/internal/server"
	"github.com/baditaflorin/go_sequence_tools/pkg/alignment"
	"github.com/baditaflorin/go_sequence_tools/pkg/sequence"
)

func newRootCommand() *cobra.Command {
	return newRootCommandWith(viper.New())
}

func newRootCommandWith(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seqtools-server",
		Short: "Serve DNA sequence transformations and BLAST lookups over HTTP",
		Example: "  seqtools-server --port 8080\n" +
			"  SEQTOOLS_BLAST_TIMEOUT=10m seqtools-server --log-json=false",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	if err := bindFlags(cmd, v); err != nil {
		panic(err)
	}
	return cmd
}

func run(ctx context.Context, cfg appConfig) error {
	output, err := logOutput(cfg.LogFile)
	if err != nil {
		return err
	}
	log, err := logger.NewCustomStdLogger(logger.DefaultConfig(output, cfg.LogJSON))
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting sequence tools HTTP server",
		"address", cfg.Server.Address(),
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxRequestSize,
		"blast_url", cfg.NCBI.BaseURL,
		"blast_timeout", cfg.BlastTimeout,
	)

	seq, err := sequence.New(
		sequence.WithPortsLogger(log),
		sequence.WithWarmUp(cfg.WarmUp),
	)
	if err != nil {
		log.Error("Failed to initialize sequence transformer", "error", err)
		return err
	}

	lookup, err := alignment.New(
		alignment.WithPortsLogger(log),
		alignment.WithNCBIConfig(cfg.NCBI),
		alignment.WithTimeout(cfg.BlastTimeout),
	)
	if err != nil {
		log.Error("Failed to initialize alignment lookup", "error", err)
		return err
	}

	log.Info("Services initialized successfully",
		"warm_up", cfg.WarmUp,
		"cpus", runtime.NumCPU(),
	)

	srv, err := server.New(cfg.Server, seq, lookup, log)
	if err != nil {
		return err
	}
	if err := srv.ListenAndServe(ctx); err != nil {
		log.Error("Server error", "error", err)
		return err
	}
	return nil
}
