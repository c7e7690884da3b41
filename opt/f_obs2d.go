// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/rot"

	"github.com/cpmech/gosl/la"
)

// Obs2d handles a landmark observation from a 2D vehicle: the landmark
// position measured in the vehicle's frame
type Obs2d struct {
	fac *graph.Factor
	vee *graph.Variable // observing vehicle
	lmk *graph.Variable // observed landmark

	// scratchpad
	e  []float64
	Jv [][]float64
	Jl [][]float64
}

// register handler
func init() {
	allocators[graph.Observation2D] = func(f *graph.Factor, g *graph.Graph) Handler {
		var o Obs2d
		o.fac = f
		o.vee = g.Var(f.Src)
		o.lmk = g.Var(f.Tgt)
		o.e = make([]float64, 2)
		o.Jv = la.MatAlloc(2, 3)
		o.Jl = la.MatAlloc(2, 2)
		return &o
	}
}

// resid evaluates the error vector at the current estimates
func (o *Obs2d) resid() {
	v, l, z := o.vee.Est, o.lmk.Est, o.fac.Z
	R := rot.R2(-v[2])
	dx, dy := l[0]-v[0], l[1]-v[1]
	o.e[0] = R[0][0]*dx + R[0][1]*dy - z[0]
	o.e[1] = R[1][0]*dx + R[1][1]*dy - z[1]
}

// AddToSystem scatters the observation contribution into Kb and fb
func (o *Obs2d) AddToSystem(Kb *la.Triplet, fb []float64) (err error) {
	if o.vee.Fixed && o.lmk.Fixed {
		return
	}
	o.resid()

	v, l := o.vee.Est, o.lmk.Est
	R := rot.R2(-v[2])
	dpos := matVec(rot.DR2(v[2]), []float64{l[0] - v[0], l[1] - v[1]})

	var Js [][][]float64
	var starts []int
	if !o.vee.Fixed {
		o.Jv[0][0], o.Jv[0][1], o.Jv[0][2] = -R[0][0], -R[0][1], dpos[0]
		o.Jv[1][0], o.Jv[1][1], o.Jv[1][2] = -R[1][0], -R[1][1], dpos[1]
		Js = append(Js, o.Jv)
		starts = append(starts, o.vee.Start)
	}
	if !o.lmk.Fixed {
		o.Jl[0][0], o.Jl[0][1] = R[0][0], R[0][1]
		o.Jl[1][0], o.Jl[1][1] = R[1][0], R[1][1]
		Js = append(Js, o.Jl)
		starts = append(starts, o.lmk.Start)
	}

	scatter(Kb, fb, o.fac.Omega, o.e, Js, starts)
	return
}

// Chi2 returns eᵀΩe
func (o *Obs2d) Chi2() float64 {
	o.resid()
	return quadForm(o.fac.Omega, o.e)
}
