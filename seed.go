package calibref

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/viam-labs/calibref/spatialmath"
)

// EstimateTransform computes the closed-form least-squares rigid
// transform mapping p0 onto p1 (Kabsch algorithm): centroids are
// subtracted, the cross-covariance is decomposed by SVD, and the
// reflection case is corrected so the result is a proper rotation.
// It needs at least 3 pairs and non-coincident points.
func EstimateTransform(p0, p1 []r3.Vector) (*spatialmath.Transform, error) {
	tf, _, err := estimate(p0, p1, false)
	return tf, err
}

// EstimateSimilarity computes the closed-form least-squares similarity
// transform (Umeyama's method): the rigid fit of EstimateTransform
// plus a single uniform scaling factor.
func EstimateSimilarity(p0, p1 []r3.Vector) (*spatialmath.Transform, float64, error) {
	return estimate(p0, p1, true)
}

// SeedFromPoints replaces the stored initial guess with the closed-form
// rigid fit of the currently stored point pairs. A good seed keeps the
// iterative solve short and away from distant local minima.
func (c *Calibrator) SeedFromPoints() error {
	if c.NumPoints() < minCalibrationPoints {
		return ErrInsufficientPoints
	}
	tf, err := EstimateTransform(c.points.p0, c.points.p1)
	if err != nil {
		return err
	}
	return c.SetInitialGuess(tf)
}

func estimate(p0, p1 []r3.Vector, withScale bool) (*spatialmath.Transform, float64, error) {
	if len(p0) != len(p1) {
		return nil, 0, ErrDimension
	}
	if len(p0) < minCalibrationPoints {
		return nil, 0, ErrInsufficientPoints
	}
	n := float64(len(p0))

	var c0, c1 r3.Vector
	for i := range p0 {
		c0 = c0.Add(p0[i])
		c1 = c1.Add(p1[i])
	}
	c0 = c0.Mul(1 / n)
	c1 = c1.Mul(1 / n)

	// cross-covariance of the demeaned target against the demeaned
	// source, and the source variance for the scale estimate
	cov := mat.NewDense(3, 3, nil)
	var variance float64
	for i := range p0 {
		d0 := p0[i].Sub(c0)
		d1 := p1[i].Sub(c1)
		variance += d0.Norm2()
		a := []float64{d1.X, d1.Y, d1.Z}
		b := []float64{d0.X, d0.Y, d0.Z}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov.Set(r, c, cov.At(r, c)+a[r]*b[c]/n)
			}
		}
	}
	variance /= n
	if variance == 0 {
		return nil, 0, errors.New("point set is degenerate: all source points coincide")
	}

	var svd mat.SVD
	if !svd.Factorize(cov, mat.SVDFull) {
		return nil, 0, errors.New("SVD of cross-covariance failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	vals := svd.Values(nil)

	// flip the smallest singular direction if U*V^T would be a reflection
	d := 1.0
	if mat.Det(&u)*mat.Det(&v) < 0 {
		d = -1.0
	}

	var rot mat.Dense
	s3 := mat.NewDiagDense(3, []float64{1, 1, d})
	rot.Product(&u, s3, v.T())

	scale := 1.0
	if withScale {
		scale = (vals[0] + vals[1] + d*vals[2]) / variance
	}

	rm := spatialmath.NewRotationMatrix([9]float64{
		rot.At(0, 0), rot.At(0, 1), rot.At(0, 2),
		rot.At(1, 0), rot.At(1, 1), rot.At(1, 2),
		rot.At(2, 0), rot.At(2, 1), rot.At(2, 2),
	})
	t := c1.Sub(rm.Mul(c0).Mul(scale))
	tf, err := spatialmath.NewTransform(rm, t)
	if err != nil {
		return nil, 0, errors.Wrap(err, "closed-form fit produced a degenerate rotation")
	}
	return tf, scale, nil
}
