// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gosl/la"
)

// scatter adds the contributions of one factor to the triplet and right-hand
// side. e is the error vector, omega the information matrix, Js the Jacobian
// blocks of the free endpoints and starts their first equation indices.
// Fixed endpoints must be omitted from Js/starts by the caller:
//
//	Kb[rᵢ, rⱼ] += Jᵢᵀ·Ω·Jⱼ     fb[rᵢ] -= Jᵢᵀ·Ω·e
func scatter(Kb *la.Triplet, fb []float64, omega [][]float64, e []float64, Js [][][]float64, starts []int) {
	m := len(e)

	// Ωe and Ω·Jⱼ
	oe := make([]float64, m)
	for i := 0; i < m; i++ {
		for k := 0; k < m; k++ {
			oe[i] += omega[i][k] * e[k]
		}
	}
	oJs := make([][][]float64, len(Js))
	for j, J := range Js {
		n := len(J[0])
		oJ := la.MatAlloc(m, n)
		for r := 0; r < m; r++ {
			for c := 0; c < n; c++ {
				for k := 0; k < m; k++ {
					oJ[r][c] += omega[r][k] * J[k][c]
				}
			}
		}
		oJs[j] = oJ
	}

	// scatter blocks
	for i, Ji := range Js {
		ni := len(Ji[0])
		for r := 0; r < ni; r++ {
			sum := 0.0
			for k := 0; k < m; k++ {
				sum += Ji[k][r] * oe[k]
			}
			fb[starts[i]+r] -= sum
		}
		for j := range Js {
			nj := len(Js[j][0])
			for r := 0; r < ni; r++ {
				for c := 0; c < nj; c++ {
					sum := 0.0
					for k := 0; k < m; k++ {
						sum += Ji[k][r] * oJs[j][k][c]
					}
					Kb.Put(starts[i]+r, starts[j]+c, sum)
				}
			}
		}
	}
}

// quadForm returns eᵀ·Ω·e
func quadForm(omega [][]float64, e []float64) (res float64) {
	for i := 0; i < len(e); i++ {
		for j := 0; j < len(e); j++ {
			res += e[i] * omega[i][j] * e[j]
		}
	}
	return
}

// matMul returns a·b for small dense matrices
func matMul(a, b [][]float64) (c [][]float64) {
	m, n, p := len(a), len(b[0]), len(b)
	c = la.MatAlloc(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < p; k++ {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

// matTr returns the transpose of a small dense matrix
func matTr(a [][]float64) (c [][]float64) {
	m, n := len(a[0]), len(a)
	c = la.MatAlloc(m, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			c[i][j] = a[j][i]
		}
	}
	return
}

// matVec returns a·v for a small dense matrix
func matVec(a [][]float64, v []float64) (res []float64) {
	res = make([]float64, len(a))
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(v); j++ {
			res[i] += a[i][j] * v[j]
		}
	}
	return
}

// upper3 returns the upper-left 3x3 block of a 4x4 matrix scaled by s
func upper3(a [][]float64, s float64) (c [][]float64) {
	c = la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			c[i][j] = s * a[i][j]
		}
	}
	return
}
