package calibref

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/viam-labs/calibref/spatialmath"
)

func TestResidualIdentity(t *testing.T) {
	pts := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 2, Z: 3}}
	eval := &residualEvaluator{p0: pts, p1: pts}
	test.That(t, eval.rms(spatialmath.NewZeroTransform(), identityScaling()), test.ShouldAlmostEqual, 0)
}

func TestResidualKnownValue(t *testing.T) {
	// shifting every target by one meter in x gives an RMS of exactly 1
	p0 := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	p1 := make([]r3.Vector, len(p0))
	for i, p := range p0 {
		p1[i] = p.Add(r3.Vector{X: 1})
	}
	eval := &residualEvaluator{p0: p0, p1: p1}
	test.That(t, eval.rms(spatialmath.NewZeroTransform(), identityScaling()), test.ShouldAlmostEqual, 1)

	// and a transform that applies the same shift cancels it
	tf := spatialmath.NewTransformFromEulerAngles(spatialmath.NewEulerAngles(), r3.Vector{X: 1})
	test.That(t, eval.rms(tf, identityScaling()), test.ShouldAlmostEqual, 0)
}

func TestResidualScaleModes(t *testing.T) {
	p0 := []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}
	p1 := []r3.Vector{{X: 2}, {Y: 2}, {Z: 2}}
	eval := &residualEvaluator{p0: p0, p1: p1}

	id := spatialmath.NewZeroTransform()
	test.That(t, eval.rms(id, scaling{mode: scaleScalar, s: 2}), test.ShouldAlmostEqual, 0)
	test.That(t, eval.rms(id, scaling{mode: scaleVector, vec: r3.Vector{X: 2, Y: 2, Z: 2}}), test.ShouldAlmostEqual, 0)
	test.That(t, eval.rms(id, identityScaling()), test.ShouldAlmostEqual, 1)
}

func TestResidualPermutationInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	var p0, p1 []r3.Vector
	for i := 0; i < 20; i++ {
		p0 = append(p0, r3.Vector{X: rnd.Float64(), Y: rnd.Float64(), Z: rnd.Float64()})
		p1 = append(p1, r3.Vector{X: rnd.Float64(), Y: rnd.Float64(), Z: rnd.Float64()})
	}
	tf := spatialmath.NewTransformFromEulerAngles(
		&spatialmath.EulerAngles{Roll: 0.3, Pitch: 0.1, Yaw: -0.6},
		r3.Vector{X: 0.2, Y: -0.4, Z: 0.1},
	)

	eval := &residualEvaluator{p0: p0, p1: p1}
	want := eval.rms(tf, identityScaling())

	// permute both sequences identically: pairing preserved, RMS unchanged
	perm := rnd.Perm(len(p0))
	q0 := make([]r3.Vector, len(p0))
	q1 := make([]r3.Vector, len(p1))
	for i, j := range perm {
		q0[i] = p0[j]
		q1[i] = p1[j]
	}
	permuted := &residualEvaluator{p0: q0, p1: q1}
	test.That(t, permuted.rms(tf, identityScaling()), test.ShouldAlmostEqual, want)
}

func TestScaleModeDOF(t *testing.T) {
	test.That(t, scaleNone.dof(), test.ShouldEqual, 0)
	test.That(t, scaleVector.dof(), test.ShouldEqual, 3)
	test.That(t, scaleScalar.dof(), test.ShouldEqual, 1)
}

func TestResidualDeterministic(t *testing.T) {
	p0 := []r3.Vector{{X: 1, Y: 0.5}, {Y: 1, Z: 0.1}, {Z: 1}, {X: -0.3, Y: 0.2, Z: 0.7}}
	p1 := []r3.Vector{{X: 0.9}, {Y: 1.1}, {Z: 1.2}, {X: -0.2, Y: 0.3, Z: 0.6}}
	eval := &residualEvaluator{p0: p0, p1: p1}
	tf := spatialmath.NewTransformFromEulerAngles(
		&spatialmath.EulerAngles{Roll: 0.1, Pitch: 0.2, Yaw: 0.3},
		r3.Vector{X: 0.01, Y: 0.02, Z: 0.03},
	)
	a := eval.rms(tf, scaling{mode: scaleScalar, s: 1.05})
	b := eval.rms(tf, scaling{mode: scaleScalar, s: 1.05})
	test.That(t, b, test.ShouldEqual, a)
	test.That(t, math.IsNaN(a), test.ShouldBeFalse)
}
