//go:build windows || no_cgo

package calibref

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// nloptSolver mimics the type in the cgo compiled code.
type nloptSolver struct{}

func newBoundedSolver(logger golog.Logger) boundedSolver {
	return &nloptSolver{}
}

// solve refuses to solve problems without cgo.
func (s *nloptSolver) solve(ctx context.Context, prob *nlpProblem) ([]float64, float64, error) {
	return nil, 0, errors.New("nlopt is not supported on this build")
}
