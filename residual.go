package calibref

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/viam-labs/calibref/spatialmath"
)

// scaleMode selects which scaling factors are free during calibration.
type scaleMode int

const (
	scaleNone scaleMode = iota
	scaleVector
	scaleScalar
)

// dof returns how many scale parameters the mode adds to the rigid six.
func (m scaleMode) dof() int {
	switch m {
	case scaleVector:
		return 3
	case scaleScalar:
		return 1
	default:
		return 0
	}
}

// scaling is the diagonal scaling S applied after the rigid transform.
type scaling struct {
	mode scaleMode
	vec  r3.Vector
	s    float64
}

func identityScaling() scaling {
	return scaling{mode: scaleNone}
}

func (s scaling) apply(p r3.Vector) r3.Vector {
	switch s.mode {
	case scaleVector:
		return r3.Vector{X: s.vec.X * p.X, Y: s.vec.Y * p.Y, Z: s.vec.Z * p.Z}
	case scaleScalar:
		return p.Mul(s.s)
	default:
		return p
	}
}

// residualEvaluator computes fit quality for a candidate transform and
// scaling against a fixed set of matched point pairs. It has no side
// effects; the optimizer calls it repeatedly.
type residualEvaluator struct {
	p0 []r3.Vector
	p1 []r3.Vector
}

// meanSquared returns (1/N) * sum_i ||p1_i - S*(R*p0_i + t)||^2. This
// is the quantity the backend minimizes; unlike the RMS it stays
// smooth at a perfect fit.
func (e *residualEvaluator) meanSquared(tf *spatialmath.Transform, s scaling) float64 {
	sum := 0.0
	for i, p := range e.p0 {
		d := e.p1[i].Sub(s.apply(tf.TransformPoint(p)))
		sum += d.Norm2()
	}
	return sum / float64(len(e.p0))
}

// rms returns the root mean square residual, the error figure reported
// to callers.
func (e *residualEvaluator) rms(tf *spatialmath.Transform, s scaling) float64 {
	return math.Sqrt(e.meanSquared(tf, s))
}
