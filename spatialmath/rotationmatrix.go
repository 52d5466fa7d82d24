// Package spatialmath contains the fixed-size 3D math used by the
// calibration core: 3x3 rotation matrices, ZYX Euler angles, and rigid
// transforms with 4x4 homogeneous interop.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// defaultOrthonormalTol bounds how far a rotation block may drift from
// R^T R = I (and det(R) = 1) before it is rejected.
const defaultOrthonormalTol = 1e-6

// RotationMatrix is a 3x3 rotation matrix stored row-major.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates the rotation matrix from the given row-major values.
func NewRotationMatrix(m [9]float64) *RotationMatrix {
	return &RotationMatrix{m}
}

// NewZeroRotation returns the identity rotation.
func NewZeroRotation() *RotationMatrix {
	return &RotationMatrix{[9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// At returns the value stored at the given row and column.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[3*row+col]
}

// Row returns a vector representing a particular row.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{
		X: rm.mat[3*row],
		Y: rm.mat[3*row+1],
		Z: rm.mat[3*row+2],
	}
}

// Mul returns the product of the rotation matrix with an r3 vector.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: rm.mat[0]*v.X + rm.mat[1]*v.Y + rm.mat[2]*v.Z,
		Y: rm.mat[3]*v.X + rm.mat[4]*v.Y + rm.mat[5]*v.Z,
		Z: rm.mat[6]*v.X + rm.mat[7]*v.Y + rm.mat[8]*v.Z,
	}
}

// Transpose returns the transpose, which for a proper rotation matrix
// is also its inverse.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	m := rm.mat
	return &RotationMatrix{[9]float64{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}}
}

// Det returns the determinant.
func (rm *RotationMatrix) Det() float64 {
	m := rm.mat
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// IsOrthonormal reports whether the matrix is a proper rotation within
// the given tolerance: rows orthonormal and determinant +1.
func (rm *RotationMatrix) IsOrthonormal(tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(rm.Row(i).Dot(rm.Row(j))-want) > tol {
				return false
			}
		}
	}
	return math.Abs(rm.Det()-1) <= tol
}
