package ports

import (
	"context"

	"github.com/baditaflorin/go_sequence_tools/internal/core/domain"
)

// AlignmentSearcher submits a sequence to a remote alignment service and
// returns its hits ordered best first.
type AlignmentSearcher interface {
	Search(ctx context.Context, seq string) ([]domain.AlignmentHit, error)
}
