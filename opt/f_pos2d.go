// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/rot"

	"github.com/cpmech/gosl/la"
)

// Pos2d handles a prior factor on a 2D vehicle pose. The position residual
// is expressed in the measurement frame; the Jacobian does not depend on the
// current estimate
type Pos2d struct {
	fac *graph.Factor
	vee *graph.Variable

	// scratchpad
	e []float64
	J [][]float64
}

// register handler
func init() {
	allocators[graph.Position2D] = func(f *graph.Factor, g *graph.Graph) Handler {
		var o Pos2d
		o.fac = f
		o.vee = g.Var(f.Src)
		o.e = make([]float64, 3)
		o.J = la.MatAlloc(3, 3)
		return &o
	}
}

// resid evaluates the error vector at the current estimate
func (o *Pos2d) resid() {
	p, z := o.vee.Est, o.fac.Z
	R := rot.R2(-z[2])
	dx, dy := p[0]-z[0], p[1]-z[1]
	o.e[0] = R[0][0]*dx + R[0][1]*dy
	o.e[1] = R[1][0]*dx + R[1][1]*dy
	o.e[2] = rot.Wrap(p[2] - z[2])
}

// AddToSystem scatters the prior's contribution into Kb and fb
func (o *Pos2d) AddToSystem(Kb *la.Triplet, fb []float64) (err error) {
	if o.vee.Fixed {
		return
	}
	o.resid()

	// J = [[R2(-φm), 0], [0, 1]]
	R := rot.R2(-o.fac.Z[2])
	o.J[0][0], o.J[0][1] = R[0][0], R[0][1]
	o.J[1][0], o.J[1][1] = R[1][0], R[1][1]
	o.J[2][2] = 1

	scatter(Kb, fb, o.fac.Omega, o.e, [][][]float64{o.J}, []int{o.vee.Start})
	return
}

// Chi2 returns eᵀΩe
func (o *Pos2d) Chi2() float64 {
	o.resid()
	return quadForm(o.fac.Omega, o.e)
}
