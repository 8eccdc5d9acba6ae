// Package alignment projects the best hit of a remote alignment search.
package alignment

import (
	"context"
	"fmt"
	"strings"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
	"github.com/baditaflorin/go_sequence_tools/internal/ports"
)

// Service performs one blocking search per lookup and classifies the outcome.
type Service struct {
	searcher ports.AlignmentSearcher
	logger   ports.Logger
}

// NewService creates a lookup service over searcher.
func NewService(searcher ports.AlignmentSearcher, logger ports.Logger) *Service {
	return &Service{searcher: searcher, logger: logger}
}

// Lookup searches for seq and returns the best hit, a no-match result, or a
// failure. It never panics on searcher errors.
func (s *Service) Lookup(ctx context.Context, seq string) (result domain.LookupResult) {
	if strings.TrimSpace(seq) == "" {
		return domain.Failed(domain.ErrEmptySequence)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Alignment search panicked", "panic", r)
			result = domain.Failed(fmt.Errorf("%w: %v", domain.ErrSearchFailed, r))
		}
	}()

	s.logger.Debug("Starting alignment search", "query_length", len(seq))

	hits, err := s.searcher.Search(ctx, seq)
	if err != nil {
		s.logger.Error("Alignment search failed", "error", err)
		return domain.Failed(fmt.Errorf("%w: %v", domain.ErrSearchFailed, err))
	}

	if len(hits) == 0 {
		s.logger.Debug("Alignment search returned no hits")
		return domain.NoMatch()
	}

	best := hits[0]
	s.logger.Debug("Alignment search completed",
		"hits", len(hits),
		"title", best.Title,
		"e_value", best.EValue,
		"score", best.Score,
	)
	return domain.Found(best)
}
