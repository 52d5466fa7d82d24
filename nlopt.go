//go:build !windows && !no_cgo

package calibref

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/go-nlopt/nlopt"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// nloptSolver minimizes over the box with nlopt's SLSQP, feeding it
// finite-difference gradients. SLSQP never evaluates the objective
// outside the bounds and is deterministic for a fixed starting point.
type nloptSolver struct {
	logger golog.Logger
}

func newBoundedSolver(logger golog.Logger) boundedSolver {
	return &nloptSolver{logger: logger}
}

type optimizeReturn struct {
	solution []float64
	score    float64
	err      error
}

func (s *nloptSolver) solve(ctx context.Context, prob *nlpProblem) ([]float64, float64, error) {
	dim := len(prob.seed)
	opt, err := nlopt.NewNLopt(nlopt.LD_SLSQP, uint(dim))
	if err != nil {
		return nil, 0, errors.Wrap(err, "nlopt creation error")
	}
	defer opt.Destroy()

	prob.clampToBounds()

	// x is the candidate parameter vector. The gradient slice is backed
	// by C memory and is meant to be filled in place; gradients are
	// forward differences, flipped at a component's upper bound so the
	// probe never leaves the box.
	minFunc := func(x, gradient []float64) float64 {
		dist := prob.objective(x)
		if len(gradient) > 0 {
			probe := make([]float64, dim)
			copy(probe, x)
			for i := range gradient {
				flip := false
				probe[i] += defaultJump
				if probe[i] >= prob.upper[i] {
					flip = true
					probe[i] -= 2 * defaultJump
				}
				dist2 := prob.objective(probe)
				gradient[i] = (dist2 - dist) / defaultJump
				if flip {
					gradient[i] *= -1
					probe[i] += defaultJump
				} else {
					probe[i] -= defaultJump
				}
			}
		}
		return dist
	}

	err = multierr.Combine(
		opt.SetLowerBounds(prob.lower),
		opt.SetUpperBounds(prob.upper),
		opt.SetFtolRel(defaultFtol),
		opt.SetFtolAbs(defaultFtol),
		opt.SetXtolRel(defaultXtol),
		opt.SetXtolAbs1(defaultXtol),
		opt.SetMinObjective(minFunc),
		opt.SetMaxEval(defaultMaxEvals),
	)
	if err != nil {
		return nil, 0, errors.Wrap(err, "nlopt setup error")
	}

	solveChan := make(chan *optimizeReturn, 1)
	goutils.PanicCapturingGo(func() {
		solution, score, optErr := opt.Optimize(prob.seed)
		solveChan <- &optimizeReturn{solution, score, optErr}
	})

	select {
	case <-ctx.Done():
		err = opt.ForceStop()
		<-solveChan
		return nil, 0, multierr.Combine(err, ctx.Err())
	case result := <-solveChan:
		if result.err != nil {
			s.logger.Debugw("nlopt terminated without convergence", "error", result.err)
			return nil, 0, multierr.Combine(result.err, ErrNoConvergence)
		}
		return result.solution, result.score, nil
	}
}
