package calibref

import "github.com/golang/geo/r3"

// pointPairs is the internal database of matched 3D points. The two
// slices are kept parallel: p1[i] is the expected image of p0[i].
type pointPairs struct {
	p0 []r3.Vector
	p1 []r3.Vector
}

// AddPoint appends the matched pair (p0, p1) to the internal database.
// Both vectors must have exactly 3 components; otherwise ErrDimension
// is returned and nothing is stored.
func (c *Calibrator) AddPoint(p0, p1 []float64) error {
	if len(p0) != 3 || len(p1) != 3 {
		return ErrDimension
	}
	c.points.p0 = append(c.points.p0, r3.Vector{X: p0[0], Y: p0[1], Z: p0[2]})
	c.points.p1 = append(c.points.p1, r3.Vector{X: p1[0], Y: p1[1], Z: p1[2]})
	return nil
}

// NumPoints returns the number of stored point pairs.
func (c *Calibrator) NumPoints() int {
	return len(c.points.p0)
}

// Points returns copies of the stored point pairs in insertion order.
func (c *Calibrator) Points() (p0, p1 []r3.Vector) {
	p0 = append([]r3.Vector(nil), c.points.p0...)
	p1 = append([]r3.Vector(nil), c.points.p1...)
	return p0, p1
}

// ClearPoints empties the internal database of point pairs.
func (c *Calibrator) ClearPoints() {
	c.points.p0 = nil
	c.points.p1 = nil
}
