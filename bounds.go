package calibref

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/viam-labs/calibref/spatialmath"
)

// transformDOF is the size of the rigid parameter vector: x, y, z
// translation followed by roll, pitch, yaw.
const transformDOF = 6

// parameterSpace holds the search box and the starting point for the
// optimization: bounds and seed for the rigid transform, plus bounds
// and seeds for the per-axis and scalar scaling variants. Invalid
// updates are rejected and leave previous values untouched.
type parameterSpace struct {
	min [transformDOF]float64
	max [transformDOF]float64
	x0  [transformDOF]float64

	scaleMin r3.Vector
	scaleMax r3.Vector
	s0       r3.Vector

	scaleMinScalar float64
	scaleMaxScalar float64
	s0Scalar       float64
}

func defaultParameterSpace() parameterSpace {
	return parameterSpace{
		min:            [transformDOF]float64{-1, -1, -1, -math.Pi, -math.Pi, -math.Pi},
		max:            [transformDOF]float64{1, 1, 1, math.Pi, math.Pi, math.Pi},
		scaleMin:       r3.Vector{X: 0.1, Y: 0.1, Z: 0.1},
		scaleMax:       r3.Vector{X: 10, Y: 10, Z: 10},
		s0:             r3.Vector{X: 1, Y: 1, Z: 1},
		scaleMinScalar: 0.1,
		scaleMaxScalar: 10,
		s0Scalar:       1,
	}
}

// SetBounds sets the search box for the rigid transform. min and max
// must each have 6 components: translation bounds in meters first,
// then Euler angle bounds in radians. min[i] > max[i] on any component
// is rejected with ErrBounds and the previous box is kept.
func (c *Calibrator) SetBounds(min, max []float64) error {
	if len(min) != transformDOF || len(max) != transformDOF {
		return ErrDimension
	}
	for i := range min {
		if min[i] > max[i] {
			return errors.Wrapf(ErrBounds, "component %d", i)
		}
	}
	copy(c.params.min[:], min)
	copy(c.params.max[:], max)
	return nil
}

// SetScalingBounds sets per-axis bounds for the anisotropic scaling
// factors. min and max must each have 3 components with min <= max.
func (c *Calibrator) SetScalingBounds(min, max []float64) error {
	if len(min) != 3 || len(max) != 3 {
		return ErrDimension
	}
	for i := range min {
		if min[i] > max[i] {
			return errors.Wrapf(ErrBounds, "component %d", i)
		}
	}
	c.params.scaleMin = r3.Vector{X: min[0], Y: min[1], Z: min[2]}
	c.params.scaleMax = r3.Vector{X: max[0], Y: max[1], Z: max[2]}
	return nil
}

// SetScalarScalingBounds sets the bounds for the uniform scaling factor.
func (c *Calibrator) SetScalarScalingBounds(min, max float64) error {
	if min > max {
		return ErrBounds
	}
	c.params.scaleMinScalar = min
	c.params.scaleMaxScalar = max
	return nil
}

// SetInitialGuess seeds the optimization with the given transform. The
// transform's rotation block must be a proper rotation; Transform
// construction already guarantees that, so only a nil check remains.
func (c *Calibrator) SetInitialGuess(h *spatialmath.Transform) error {
	if h == nil {
		return errors.New("initial guess transform is nil")
	}
	if !h.Rotation().IsOrthonormal(1e-6) {
		return errors.Wrap(ErrBounds, "initial guess rotation is not orthonormal")
	}
	tr := h.Translation()
	ea := h.EulerAngles()
	c.params.x0 = [transformDOF]float64{tr.X, tr.Y, tr.Z, ea.Roll, ea.Pitch, ea.Yaw}
	return nil
}

// InitialGuess reconstructs the currently stored transform seed.
func (c *Calibrator) InitialGuess() *spatialmath.Transform {
	x0 := c.params.x0
	return decodeTransform(x0[:])
}

// SetScalingInitialGuess seeds the anisotropic scaling factors.
func (c *Calibrator) SetScalingInitialGuess(s []float64) error {
	if len(s) != 3 {
		return ErrDimension
	}
	c.params.s0 = r3.Vector{X: s[0], Y: s[1], Z: s[2]}
	return nil
}

// SetScalarScalingInitialGuess seeds the uniform scaling factor.
func (c *Calibrator) SetScalarScalingInitialGuess(s float64) error {
	c.params.s0Scalar = s
	return nil
}

// decodeTransform maps a parameter vector [tx ty tz roll pitch yaw]
// back to a rigid transform.
func decodeTransform(x []float64) *spatialmath.Transform {
	ea := &spatialmath.EulerAngles{Roll: x[3], Pitch: x[4], Yaw: x[5]}
	return spatialmath.NewTransformFromEulerAngles(ea, r3.Vector{X: x[0], Y: x[1], Z: x[2]})
}
