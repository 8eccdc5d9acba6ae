package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/baditaflorin/go_sequence_tools/internal/adapters/ncbi"
	"github.com/baditaflorin/go_sequence_tools/internal/server"
)

// envPrefix is prepended to every environment variable override.
const envPrefix = "SEQTOOLS"

// appConfig is the fully resolved process configuration.
type appConfig struct {
	Server       server.Config
	NCBI         ncbi.Config
	BlastTimeout time.Duration
	LogFile      string
	LogJSON      bool
	WarmUp       bool
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	defaults := server.DefaultConfig()
	blast := ncbi.DefaultConfig()

	flags.String("config", "", "Path to a config file (yaml, json or toml)")
	flags.String("host", defaults.Host, "HTTP listen host")
	flags.Int("port", defaults.Port, "HTTP server port")
	flags.Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	flags.Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	flags.Int("max-request-size", defaults.MaxRequestSize, "Maximum request size in bytes")
	flags.Int("concurrency", defaults.Concurrency, "Maximum number of concurrent connections (0 = fasthttp default)")
	flags.String("log-file", "", "Log file path (empty = stdout)")
	flags.Bool("log-json", true, "Write logs as JSON")
	flags.Bool("warm-up", true, "Perform system warm-up on startup")

	flags.String("blast-url", blast.BaseURL, "BLAST URL API endpoint")
	flags.String("blast-program", blast.Program, "BLAST program")
	flags.String("blast-database", blast.Database, "BLAST database")
	flags.Duration("blast-poll-interval", blast.PollInterval, "Shortest wait between BLAST status checks")
	flags.Duration("blast-max-poll-interval", blast.MaxPollInterval, "Longest wait between BLAST status checks")
	flags.Duration("blast-request-timeout", blast.RequestTimeout, "Timeout of a single BLAST HTTP request")
	flags.Duration("blast-timeout", 0, "Overall BLAST lookup timeout (0 = none)")
	flags.String("blast-email", "", "Contact e-mail sent to NCBI with each query")

	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

// loadConfig resolves flags, environment, .env and an optional config file
// into an appConfig. Precedence follows viper: flag > env > file > default.
func loadConfig(v *viper.Viper) (appConfig, error) {
	// A missing .env file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return appConfig{}, fmt.Errorf("loading .env: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return appConfig{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := appConfig{
		Server: server.Config{
			Host:           v.GetString("host"),
			Port:           v.GetInt("port"),
			ReadTimeout:    v.GetDuration("read-timeout"),
			WriteTimeout:   v.GetDuration("write-timeout"),
			MaxRequestSize: v.GetInt("max-request-size"),
			Concurrency:    v.GetInt("concurrency"),
		},
		NCBI: ncbi.Config{
			BaseURL:         v.GetString("blast-url"),
			Program:         v.GetString("blast-program"),
			Database:        v.GetString("blast-database"),
			HitlistSize:     ncbi.DefaultHitlistSize,
			PollInterval:    v.GetDuration("blast-poll-interval"),
			MaxPollInterval: v.GetDuration("blast-max-poll-interval"),
			RTOEUnit:        time.Second,
			RequestTimeout:  v.GetDuration("blast-request-timeout"),
			Tool:            ncbi.DefaultTool,
			Email:           v.GetString("blast-email"),
		},
		BlastTimeout: v.GetDuration("blast-timeout"),
		LogFile:      v.GetString("log-file"),
		LogJSON:      v.GetBool("log-json"),
		WarmUp:       v.GetBool("warm-up"),
	}

	if err := cfg.Server.Validate(); err != nil {
		return appConfig{}, err
	}
	if err := cfg.NCBI.Validate(); err != nil {
		return appConfig{}, fmt.Errorf("blast: %w", err)
	}
	if cfg.BlastTimeout < 0 {
		return appConfig{}, errors.New("blast timeout must not be negative")
	}
	return cfg, nil
}

// logOutput opens the configured log destination.
func logOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
