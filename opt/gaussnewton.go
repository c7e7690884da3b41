// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// GaussNewton holds the workspace for optimizing one factor graph: the
// handlers, the sparse normal matrix and the right-hand side. The graph is
// logically owned by the optimizer for the duration of Run
type GaussNewton struct {

	// input
	Gra *graph.Graph // the graph being optimized

	// options
	Verbose    bool   // print χ² after each iteration
	Sparse     bool   // solve with the sparse solver instead of dense Cholesky
	SolverName string // sparse solver name; e.g. "umfpack"

	// workspace
	Handlers []Handler   // one handler per factor, in insertion order
	Kb       *la.Triplet // normal matrix H
	Fb       []float64   // right-hand side == -ΣJᵀΩe
	Dx       []float64   // solution of H·Δx = Fb

	// sparse linear solver
	lis      la.LinSol
	initLSol bool
}

// NewGaussNewton allocates the workspace for graph g
func NewGaussNewton(g *graph.Graph) (o *GaussNewton, err error) {
	o = new(GaussNewton)
	o.Gra = g
	o.SolverName = "umfpack"
	o.Handlers = make([]Handler, len(g.Facs))
	for i, f := range g.Facs {
		o.Handlers[i], err = NewHandler(f, g)
		if err != nil {
			return nil, err
		}
	}
	n := g.TotalFreeDim()
	o.Kb = new(la.Triplet)
	if n > 0 {
		o.Kb.Init(n, n, g.NnzEstimate())
	}
	o.Fb = make([]float64, n)
	o.Dx = make([]float64, n)
	o.initLSol = true
	return
}

// Free frees the sparse linear solver, if any
func (o *GaussNewton) Free() {
	if o.lis != nil {
		o.lis.Free()
		o.lis = nil
	}
	o.initLSol = true
}

// assemble builds Kb and Fb from all factors at the current estimates
func (o *GaussNewton) assemble() (err error) {
	o.Kb.Start()
	la.VecFill(o.Fb, 0)
	for _, h := range o.Handlers {
		err = h.AddToSystem(o.Kb, o.Fb)
		if err != nil {
			return
		}
	}
	return
}

// Chi2 returns the total objective Σ eᵀΩe at the current estimates
func (o *GaussNewton) Chi2() (res float64) {
	for _, h := range o.Handlers {
		res += h.Chi2()
	}
	return
}

// Run performs niter Gauss-Newton iterations: assemble, solve, update. There
// is no step control and no convergence test; niter ≤ 0 is a no-op. If an
// iteration fails, the updates of previous iterations remain in place
func (o *GaussNewton) Run(niter int) (err error) {
	for it := 0; it < niter; it++ {
		err = o.assemble()
		if err != nil {
			return chk.Err("assembly failed at iteration %d:\n%v", it, err)
		}
		err = o.solve()
		if err != nil {
			return chk.Err("iteration %d failed:\n%v", it, err)
		}
		o.update()
		if o.Verbose {
			io.Pf("> it=%2d  chi2=%.8e\n", it+1, o.Chi2())
		}
	}
	return
}

// Optimize runs niter Gauss-Newton iterations on graph g
func Optimize(g *graph.Graph, niter int) (err error) {
	gn, err := NewGaussNewton(g)
	if err != nil {
		return
	}
	defer gn.Free()
	return gn.Run(niter)
}
