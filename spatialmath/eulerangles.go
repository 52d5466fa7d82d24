package spatialmath

import "math"

// EulerAngles are three angles (in radians) used to represent the
// rotation of an object in 3D Euclidean space. The Tait-Bryan ZYX
// convention is used: yaw about z, then pitch about y, then roll
// about x.
type EulerAngles struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{Roll: 0, Pitch: 0, Yaw: 0}
}

// RotationMatrix returns the 3x3 rotation matrix Rz(yaw)Ry(pitch)Rx(roll).
func (ea *EulerAngles) RotationMatrix() *RotationMatrix {
	sr, cr := math.Sincos(ea.Roll)
	sp, cp := math.Sincos(ea.Pitch)
	sy, cy := math.Sincos(ea.Yaw)
	return &RotationMatrix{[9]float64{
		cy * cp, cy*sp*sr - sy*cr, cy*sp*cr + sy*sr,
		sy * cp, sy*sp*sr + cy*cr, sy*sp*cr - cy*sr,
		-sp, cp * sr, cp * cr,
	}}
}

// EulerAnglesFromRotationMatrix decomposes a rotation matrix back into
// ZYX Euler angles. At the gimbal-lock singularity (|pitch| = pi/2) the
// roll/yaw split is not unique; roll is fixed to zero there.
func EulerAnglesFromRotationMatrix(rm *RotationMatrix) *EulerAngles {
	sp := -rm.At(2, 0)
	if sp > 1 {
		sp = 1
	} else if sp < -1 {
		sp = -1
	}
	pitch := math.Asin(sp)
	if math.Abs(sp) > 1-1e-10 {
		return &EulerAngles{
			Roll:  0,
			Pitch: pitch,
			Yaw:   math.Atan2(-rm.At(0, 1), rm.At(1, 1)),
		}
	}
	return &EulerAngles{
		Roll:  math.Atan2(rm.At(2, 1), rm.At(2, 2)),
		Pitch: pitch,
		Yaw:   math.Atan2(rm.At(1, 0), rm.At(0, 0)),
	}
}
