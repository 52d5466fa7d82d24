// Package calibref solves the 3D reference-frame calibration problem:
// given two sets of matched 3D points p0 and p1, find the rigid
// transform H (and optionally per-axis or uniform scaling factors S)
// minimizing the mean squared residual
//
//	(1/N) * sum_i || p1_i - S*H*p0_i ||^2
//
// over a box-constrained region of SE(3) (translation in meters, ZYX
// Euler angles in radians) and the scale factors. The minimization is
// performed by a gradient-based bound-constrained NLP backend; the
// reported error is the root mean square residual at the solution.
//
// Point correspondence is assumed known: p1_i is the point p0_i is
// expected to map onto. No outlier rejection is performed.
package calibref
