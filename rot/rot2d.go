// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rot implements the rotation primitives used by the graph optimizer:
// planar rotation matrices, unit quaternions and the small-angle exponential map
package rot

import "math"

// R2 returns the 2x2 rotation matrix of angle θ
func R2(θ float64) [][]float64 {
	c, s := math.Cos(θ), math.Sin(θ)
	return [][]float64{
		{c, -s},
		{s, c},
	}
}

// DR2 returns the derivative of R2(-φ) with respect to φ
func DR2(φ float64) [][]float64 {
	c, s := math.Cos(φ), math.Sin(φ)
	return [][]float64{
		{-s, c},
		{-c, -s},
	}
}

// Wrap normalises an angle into (-π, π]
func Wrap(a float64) float64 {
	r := a - 2.0*math.Pi*math.Round(a/(2.0*math.Pi))
	if r <= -math.Pi {
		r += 2.0 * math.Pi
	}
	return r
}

// Skew returns the skew-symmetric (cross-product) matrix of a 3-vector
func Skew(v []float64) [][]float64 {
	return [][]float64{
		{0, -v[2], v[1]},
		{v[2], 0, -v[0]},
		{-v[1], v[0], 0},
	}
}
