package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	errNotRotation    = errors.New("rotation block is not orthonormal with determinant +1")
	errNotHomogeneous = errors.New("matrix is not a 4x4 homogeneous transform")
)

// Transform is a rigid transform in 3D space: a rotation followed by a
// translation. Translations are in meters.
type Transform struct {
	rotation    *RotationMatrix
	translation r3.Vector
}

// NewZeroTransform returns the identity transform.
func NewZeroTransform() *Transform {
	return &Transform{rotation: NewZeroRotation()}
}

// NewTransform creates a transform from a rotation matrix and a
// translation, rejecting rotation blocks that are not proper rotations.
func NewTransform(rotation *RotationMatrix, translation r3.Vector) (*Transform, error) {
	if !rotation.IsOrthonormal(defaultOrthonormalTol) {
		return nil, errNotRotation
	}
	return &Transform{rotation: rotation, translation: translation}, nil
}

// NewTransformFromEulerAngles creates a transform from ZYX Euler angles
// and a translation. The rotation is proper by construction.
func NewTransformFromEulerAngles(ea *EulerAngles, translation r3.Vector) *Transform {
	return &Transform{rotation: ea.RotationMatrix(), translation: translation}
}

// NewTransformFromMatrix creates a transform from a 4x4 homogeneous
// matrix, validating its shape, its bottom row, and its rotation block.
func NewTransformFromMatrix(m *mat.Dense) (*Transform, error) {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return nil, errNotHomogeneous
	}
	for col := 0; col < 4; col++ {
		want := 0.0
		if col == 3 {
			want = 1.0
		}
		if math.Abs(m.At(3, col)-want) > defaultOrthonormalTol {
			return nil, errNotHomogeneous
		}
	}
	rot := NewRotationMatrix([9]float64{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2),
	})
	return NewTransform(rot, r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)})
}

// Rotation returns the rotation block.
func (t *Transform) Rotation() *RotationMatrix {
	return t.rotation
}

// Translation returns the translation column.
func (t *Transform) Translation() r3.Vector {
	return t.translation
}

// EulerAngles returns the rotation block decomposed into ZYX Euler angles.
func (t *Transform) EulerAngles() *EulerAngles {
	return EulerAnglesFromRotationMatrix(t.rotation)
}

// TransformPoint applies the transform to a point: R*p + t.
func (t *Transform) TransformPoint(p r3.Vector) r3.Vector {
	return t.rotation.Mul(p).Add(t.translation)
}

// Matrix returns the transform as a 4x4 homogeneous matrix.
func (t *Transform) Matrix() *mat.Dense {
	rm := t.rotation
	return mat.NewDense(4, 4, []float64{
		rm.At(0, 0), rm.At(0, 1), rm.At(0, 2), t.translation.X,
		rm.At(1, 0), rm.At(1, 1), rm.At(1, 2), t.translation.Y,
		rm.At(2, 0), rm.At(2, 1), rm.At(2, 2), t.translation.Z,
		0, 0, 0, 1,
	})
}

// AlmostEqual reports whether two transforms agree within tol in every
// rotation entry and translation component.
func (t *Transform) AlmostEqual(other *Transform, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(t.rotation.At(i, j)-other.rotation.At(i, j)) > tol {
				return false
			}
		}
	}
	d := t.translation.Sub(other.translation)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}
