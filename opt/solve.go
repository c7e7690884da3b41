// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/mat"
)

// solve computes Dx from H·Δx = Fb. The default path is a dense Cholesky
// factorisation with an LU fallback; the sparse path reuses the symbolic
// factorisation across iterations since the triplet structure is constant
func (o *GaussNewton) solve() (err error) {
	n := len(o.Fb)
	if n == 0 {
		return
	}
	if o.Sparse {
		return o.solveSparse()
	}

	// dense matrix from triplet (duplicates are summed)
	D := o.Kb.ToMatrix(nil).ToDense()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = D[i][j]
		}
	}
	b := mat.NewVecDense(n, o.Fb)
	x := mat.NewVecDense(n, nil)

	// Cholesky with LU fallback
	var chol mat.Cholesky
	if chol.Factorize(mat.NewSymDense(n, data)) {
		err = chol.SolveVecTo(x, b)
	} else {
		var lu mat.LU
		lu.Factorize(mat.NewDense(n, n, data))
		err = lu.SolveVecTo(x, false, b)
	}
	if err != nil {
		return chk.Err("singular system: linear solve failed:\n%v", err)
	}
	copy(o.Dx, x.RawVector().Data)
	return
}

// solveSparse solves through the gosl sparse solver (e.g. umfpack)
func (o *GaussNewton) solveSparse() (err error) {
	if o.lis == nil {
		o.lis = la.GetSolver(o.SolverName)
	}
	if o.initLSol {
		err = o.lis.InitR(o.Kb, true, false, false)
		if err != nil {
			return chk.Err("cannot initialise sparse solver:\n%v", err)
		}
		o.initLSol = false
	}
	err = o.lis.Fact()
	if err != nil {
		return chk.Err("singular system: factorisation failed:\n%v", err)
	}
	err = o.lis.SolveR(o.Dx, o.Fb, false)
	if err != nil {
		return chk.Err("singular system: sparse solve failed:\n%v", err)
	}
	return
}
