package calibref

import "context"

const (
	// defaultMaxEvals caps objective evaluations per calibration run so
	// no solve can loop forever.
	defaultMaxEvals = 5000
	// defaultFtol stops the backend once the objective stops improving
	// by more than this, relatively or absolutely.
	defaultFtol = 1e-12
	// defaultXtol stops the backend once the parameters stop moving.
	defaultXtol = 1e-10
	// defaultJump is the finite-difference step for gradients.
	defaultJump = 1e-8
)

// nlpProblem is a box-constrained nonlinear minimization: find the x
// within [lower, upper] that minimizes objective, starting from seed.
// All three slices share one length. The objective must be
// deterministic and is never evaluated outside the box.
type nlpProblem struct {
	lower     []float64
	upper     []float64
	seed      []float64
	objective func(x []float64) float64
}

// boundedSolver is the narrow seam to the NLP backend: problem in,
// best point plus objective value out. Implementations must respect
// the box exactly, be deterministic, and release all transient state
// before returning.
type boundedSolver interface {
	solve(ctx context.Context, prob *nlpProblem) ([]float64, float64, error)
}

// clampToBounds pulls each seed component into its [lower, upper]
// interval. Backends require a feasible starting point.
func (p *nlpProblem) clampToBounds() {
	for i, v := range p.seed {
		if v < p.lower[i] {
			p.seed[i] = p.lower[i]
		} else if v > p.upper[i] {
			p.seed[i] = p.upper[i]
		}
	}
}
