package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

// represent a 45 degree rotation around the x axis
var ea45x = &EulerAngles{Roll: math.Pi / 4., Pitch: 0, Yaw: 0}

func TestZeroRotation(t *testing.T) {
	rm := NewEulerAngles().RotationMatrix()
	test.That(t, rm, test.ShouldResemble, NewZeroRotation())
	test.That(t, rm.Det(), test.ShouldAlmostEqual, 1)
	test.That(t, rm.IsOrthonormal(1e-9), test.ShouldBeTrue)
}

func TestRotationMatrix45x(t *testing.T) {
	rm := ea45x.RotationMatrix()
	s := math.Sqrt(2) / 2.
	test.That(t, rm.At(0, 0), test.ShouldAlmostEqual, 1)
	test.That(t, rm.At(1, 1), test.ShouldAlmostEqual, s)
	test.That(t, rm.At(1, 2), test.ShouldAlmostEqual, -s)
	test.That(t, rm.At(2, 1), test.ShouldAlmostEqual, s)
	test.That(t, rm.At(2, 2), test.ShouldAlmostEqual, s)

	v := rm.Mul(r3.Vector{X: 0, Y: 1, Z: 0})
	test.That(t, v.X, test.ShouldAlmostEqual, 0)
	test.That(t, v.Y, test.ShouldAlmostEqual, s)
	test.That(t, v.Z, test.ShouldAlmostEqual, s)
}

func TestEulerRoundTrip(t *testing.T) {
	angles := []*EulerAngles{
		ea45x,
		{Roll: 0.1, Pitch: -0.7, Yaw: 2.9},
		{Roll: -3.0, Pitch: 1.2, Yaw: -0.4},
		{Roll: 0, Pitch: 0, Yaw: math.Pi / 2.},
	}
	for _, ea := range angles {
		back := EulerAnglesFromRotationMatrix(ea.RotationMatrix())
		test.That(t, back.Roll, test.ShouldAlmostEqual, ea.Roll, 1e-9)
		test.That(t, back.Pitch, test.ShouldAlmostEqual, ea.Pitch, 1e-9)
		test.That(t, back.Yaw, test.ShouldAlmostEqual, ea.Yaw, 1e-9)
	}
}

func TestEulerGimbalLock(t *testing.T) {
	ea := &EulerAngles{Roll: 0.3, Pitch: math.Pi / 2., Yaw: 1.1}
	back := EulerAnglesFromRotationMatrix(ea.RotationMatrix())
	// roll/yaw are not individually recoverable at the singularity, but
	// the rotation they produce must match.
	rm1 := ea.RotationMatrix()
	rm2 := back.RotationMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			test.That(t, rm2.At(i, j), test.ShouldAlmostEqual, rm1.At(i, j), 1e-9)
		}
	}
}

func TestTransposeIsInverse(t *testing.T) {
	ea := &EulerAngles{Roll: 0.5, Pitch: 0.4, Yaw: -1.3}
	rm := ea.RotationMatrix()
	rt := rm.Transpose()
	p := r3.Vector{X: 1.5, Y: -2, Z: 0.25}
	back := rt.Mul(rm.Mul(p))
	test.That(t, back.X, test.ShouldAlmostEqual, p.X)
	test.That(t, back.Y, test.ShouldAlmostEqual, p.Y)
	test.That(t, back.Z, test.ShouldAlmostEqual, p.Z)
}
