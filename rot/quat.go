// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rot

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Quaternions follow the Hamilton convention and are stored in estimate
// vectors as [qx qy qz qw]; quat.Number keeps the scalar part in Real.

// QuatFromSlice returns the quaternion stored as [qx qy qz qw]
func QuatFromSlice(q []float64) quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

// QuatToSlice stores q into dst as [qx qy qz qw]
func QuatToSlice(q quat.Number, dst []float64) {
	dst[0] = q.Imag
	dst[1] = q.Jmag
	dst[2] = q.Kmag
	dst[3] = q.Real
}

// QuatMul returns the Hamilton product a ⊗ b
func QuatMul(a, b quat.Number) quat.Number {
	return quat.Mul(a, b)
}

// QuatInv returns the inverse of a unit quaternion (its conjugate)
func QuatInv(q quat.Number) quat.Number {
	return quat.Conj(q)
}

// QuatNorm returns ‖q‖
func QuatNorm(q quat.Number) float64 {
	return quat.Abs(q)
}

// QuatNormalize returns q divided by its norm
func QuatNormalize(q quat.Number) quat.Number {
	return quat.Scale(1.0/quat.Abs(q), q)
}

// R3 converts a unit quaternion to its 3x3 rotation matrix
func R3(q quat.Number) [][]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [][]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - z*w), 2 * (x*z + y*w)},
		{2 * (x*y + z*w), 1 - 2*(x*x+z*z), 2 * (y*z - x*w)},
		{2 * (x*z - y*w), 2 * (y*z + x*w), 1 - 2*(x*x+y*y)},
	}
}

// QuatExp returns the unit quaternion of a small rotation vector ω. For
// ‖ω‖ → 0 a Taylor expansion of sin(θ/2)/θ avoids the division by zero
func QuatExp(ω []float64) quat.Number {
	θ := math.Sqrt(ω[0]*ω[0] + ω[1]*ω[1] + ω[2]*ω[2])
	var s float64 // sin(θ/2)/θ
	if θ < 1e-8 {
		s = 0.5 - θ*θ/48.0
	} else {
		s = math.Sin(θ/2.0) / θ
	}
	return quat.Number{
		Real: math.Cos(θ / 2.0),
		Imag: s * ω[0],
		Jmag: s * ω[1],
		Kmag: s * ω[2],
	}
}

// QuatLeftMat returns the 4x4 matrix L(q) such that L(q)·p equals q ⊗ p,
// with 4-vectors ordered as [x y z w]
func QuatLeftMat(q quat.Number) [][]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [][]float64{
		{w, -z, y, x},
		{z, w, -x, y},
		{-y, x, w, z},
		{-x, -y, -z, w},
	}
}

// QuatRightMat returns the 4x4 matrix R(q) such that R(q)·p equals p ⊗ q,
// with 4-vectors ordered as [x y z w]
func QuatRightMat(q quat.Number) [][]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [][]float64{
		{w, z, -y, x},
		{-z, w, x, y},
		{y, -x, w, z},
		{-x, -y, -z, w},
	}
}
