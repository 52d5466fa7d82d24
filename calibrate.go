package calibref

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/calibref/spatialmath"
)

// minCalibrationPoints is the fewest matched pairs that keep a 6 to 9
// DOF fit well posed.
const minCalibrationPoints = 3

var (
	// ErrDimension means a supplied vector did not have the required
	// number of components.
	ErrDimension = errors.New("vector has wrong number of components")
	// ErrBounds means a bound box was inverted (min > max) or an
	// initial guess could not be decomposed.
	ErrBounds = errors.New("invalid bounds")
	// ErrInsufficientPoints means fewer than 3 point pairs were stored
	// at calibration time.
	ErrInsufficientPoints = errors.New("calibration requires at least 3 matched point pairs")
	// ErrNoConvergence means the backend terminated without a usable
	// solution.
	ErrNoConvergence = errors.New("solver did not converge to a solution")
)

// Calibrator determines the roto-translation (and optionally scaling)
// between two reference frames from matched 3D point pairs. It is not
// safe for concurrent use; callers wanting parallel calibrations should
// use independent instances.
type Calibrator struct {
	points pointPairs
	params parameterSpace
	solver boundedSolver
	logger golog.Logger
}

// NewCalibrator returns a calibrator with the default search box:
// translations within one meter, any rotation, scale factors between
// 0.1 and 10.
func NewCalibrator(logger golog.Logger) *Calibrator {
	return &Calibrator{
		params: defaultParameterSpace(),
		solver: newBoundedSolver(logger),
		logger: logger,
	}
}

// Calibrate finds the rigid transform H best mapping the stored p0
// points onto their matched p1 points, and returns it along with the
// RMS residual at the solution.
func (c *Calibrator) Calibrate(ctx context.Context) (*spatialmath.Transform, float64, error) {
	res, err := c.calibrate(ctx, scaleNone)
	if err != nil {
		return nil, 0, err
	}
	return res.transform, res.rms, nil
}

// CalibrateWithScale additionally frees one scaling factor per axis,
// solving for H and S = diag(s) such that p1 ~ S*H*p0.
func (c *Calibrator) CalibrateWithScale(ctx context.Context) (*spatialmath.Transform, r3.Vector, float64, error) {
	res, err := c.calibrate(ctx, scaleVector)
	if err != nil {
		return nil, r3.Vector{}, 0, err
	}
	return res.transform, res.scale.vec, res.rms, nil
}

// CalibrateWithScalarScale additionally frees a single uniform scaling
// factor applied to all axes.
func (c *Calibrator) CalibrateWithScalarScale(ctx context.Context) (*spatialmath.Transform, float64, float64, error) {
	res, err := c.calibrate(ctx, scaleScalar)
	if err != nil {
		return nil, 0, 0, err
	}
	return res.transform, res.scale.s, res.rms, nil
}

type calibrationResult struct {
	transform *spatialmath.Transform
	scale     scaling
	rms       float64
}

// calibrate is the single optimization driver behind all three public
// variants; mode selects which scale parameters join the rigid six.
func (c *Calibrator) calibrate(ctx context.Context, mode scaleMode) (*calibrationResult, error) {
	if c.NumPoints() < minCalibrationPoints {
		return nil, ErrInsufficientPoints
	}

	eval := &residualEvaluator{p0: c.points.p0, p1: c.points.p1}
	prob := c.assembleProblem(eval, mode)

	x, score, err := c.solver.solve(ctx, prob)
	if err != nil {
		return nil, err
	}

	tf := decodeTransform(x[:transformDOF])
	s := decodeScaling(x, mode)
	res := &calibrationResult{
		transform: tf,
		scale:     s,
		rms:       eval.rms(tf, s),
	}
	c.logger.Debugw("calibration converged",
		"points", c.NumPoints(),
		"objective", score,
		"rms", res.rms,
	)
	return res, nil
}

// assembleProblem packs bounds, seed, and objective for the requested
// scale mode into one box-constrained problem.
func (c *Calibrator) assembleProblem(eval *residualEvaluator, mode scaleMode) *nlpProblem {
	dim := transformDOF + mode.dof()
	lower := make([]float64, 0, dim)
	upper := make([]float64, 0, dim)
	seed := make([]float64, 0, dim)

	lower = append(lower, c.params.min[:]...)
	upper = append(upper, c.params.max[:]...)
	seed = append(seed, c.params.x0[:]...)

	switch mode {
	case scaleVector:
		lower = append(lower, c.params.scaleMin.X, c.params.scaleMin.Y, c.params.scaleMin.Z)
		upper = append(upper, c.params.scaleMax.X, c.params.scaleMax.Y, c.params.scaleMax.Z)
		seed = append(seed, c.params.s0.X, c.params.s0.Y, c.params.s0.Z)
	case scaleScalar:
		lower = append(lower, c.params.scaleMinScalar)
		upper = append(upper, c.params.scaleMaxScalar)
		seed = append(seed, c.params.s0Scalar)
	}

	return &nlpProblem{
		lower: lower,
		upper: upper,
		seed:  seed,
		objective: func(x []float64) float64 {
			return eval.meanSquared(decodeTransform(x[:transformDOF]), decodeScaling(x, mode))
		},
	}
}

// decodeScaling extracts the scale parameters following the rigid six
// in the parameter vector.
func decodeScaling(x []float64, mode scaleMode) scaling {
	switch mode {
	case scaleVector:
		return scaling{
			mode: scaleVector,
			vec:  r3.Vector{X: x[transformDOF], Y: x[transformDOF+1], Z: x[transformDOF+2]},
		}
	case scaleScalar:
		return scaling{mode: scaleScalar, s: x[transformDOF]}
	default:
		return identityScaling()
	}
}
