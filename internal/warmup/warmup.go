package warmup

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample sequence size for warmup
	SampleSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		SampleSize:  1000,
		Duration:    2 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger       ports.Logger
	transformers []ports.Transformer
	normalizers  []ports.Normalizer
	config       WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterTransformer adds a transformer to be warmed up
func (wm *Manager) RegisterTransformer(t ports.Transformer) {
	wm.transformers = append(wm.transformers, t)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs every registered component over a sample sequence and returns
// the number of completed operations.
func (wm *Manager) WarmUp(ctx context.Context) int64 {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.transformers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	var warmupCtx context.Context
	var cancel context.CancelFunc
	if wm.config.Duration > 0 {
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	} else {
		warmupCtx = ctx
	}

	sample := GenerateSampleSequence(wm.config.SampleSize)
	// Translation only sees complete codons.
	coding := sample[:len(sample)-len(sample)%3]

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ops int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local int64
			defer func() {
				mu.Lock()
				ops += local
				mu.Unlock()
			}()

			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-warmupCtx.Done():
					return
				default:
				}

				for _, n := range wm.normalizers {
					_ = n.Normalize(sample)
					local++
				}
				for _, t := range wm.transformers {
					for _, action := range domain.Actions() {
						input := sample
						if action == domain.ActionTranslate {
							input = coding
						}
						_, _ = t.Apply(warmupCtx, action, input)
						local++
					}
				}
			}
		}()
	}
	wg.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"operations", ops,
		"duration", time.Since(startTime),
	)
	return ops
}

// GenerateSampleSequence creates a mixed-case DNA sample of the given size,
// sprinkled with the digits, spaces and linebreaks the cleanup actions remove.
func GenerateSampleSequence(size int) string {
	const unit = "ATGGCCATTGTAATGGGCCGCTGAAAGGGTGCCCGATAG 10\n"

	if size <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(size + len(unit))
	for i := 0; sb.Len() < size; i++ {
		if i%2 == 1 {
			sb.WriteString(strings.ToLower(unit))
		} else {
			sb.WriteString(unit)
		}
	}
	return sb.String()[:size]
}
