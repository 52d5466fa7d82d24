package calibref

import (
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"
)

func TestAddPoint(t *testing.T) {
	c := NewCalibrator(golog.NewTestLogger(t))
	test.That(t, c.NumPoints(), test.ShouldEqual, 0)

	test.That(t, c.AddPoint([]float64{1, 2, 3}, []float64{4, 5, 6}), test.ShouldBeNil)
	test.That(t, c.NumPoints(), test.ShouldEqual, 1)

	// duplicates are permitted
	test.That(t, c.AddPoint([]float64{1, 2, 3}, []float64{4, 5, 6}), test.ShouldBeNil)
	test.That(t, c.NumPoints(), test.ShouldEqual, 2)
}

func TestAddPointRejectsWrongDimension(t *testing.T) {
	c := NewCalibrator(golog.NewTestLogger(t))

	err := c.AddPoint([]float64{1, 2}, []float64{4, 5, 6})
	test.That(t, err, test.ShouldBeError, ErrDimension)
	test.That(t, c.NumPoints(), test.ShouldEqual, 0)

	err = c.AddPoint([]float64{1, 2, 3}, []float64{4, 5, 6, 7})
	test.That(t, err, test.ShouldBeError, ErrDimension)
	test.That(t, c.NumPoints(), test.ShouldEqual, 0)
}

func TestPointsReturnsCopies(t *testing.T) {
	c := NewCalibrator(golog.NewTestLogger(t))
	test.That(t, c.AddPoint([]float64{1, 2, 3}, []float64{4, 5, 6}), test.ShouldBeNil)
	test.That(t, c.AddPoint([]float64{7, 8, 9}, []float64{10, 11, 12}), test.ShouldBeNil)

	p0, p1 := c.Points()
	test.That(t, p0, test.ShouldHaveLength, 2)
	test.That(t, p1, test.ShouldHaveLength, 2)
	test.That(t, p0[1].X, test.ShouldEqual, 7)
	test.That(t, p1[0].Z, test.ShouldEqual, 6)

	// mutating the returned slices must not touch the store
	p0[0].X = 99
	q0, _ := c.Points()
	test.That(t, q0[0].X, test.ShouldEqual, 1)
}

func TestClearPoints(t *testing.T) {
	c := NewCalibrator(golog.NewTestLogger(t))
	test.That(t, c.AddPoint([]float64{1, 2, 3}, []float64{4, 5, 6}), test.ShouldBeNil)
	c.ClearPoints()
	test.That(t, c.NumPoints(), test.ShouldEqual, 0)
	p0, p1 := c.Points()
	test.That(t, p0, test.ShouldHaveLength, 0)
	test.That(t, p1, test.ShouldHaveLength, 0)
}
