// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/rot"

	"github.com/cpmech/gosl/la"
)

// Obs3d handles a landmark observation from a 3D vehicle: the landmark
// position measured in the vehicle's frame
type Obs3d struct {
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
	allocators[graph.Observation3D] = func(f *graph.Factor, g *graph.Graph) Handler {
		var o Obs3d
		o.fac = f
		o.vee = g.Var(f.Src)
		o.lmk = g.Var(f.Tgt)
		o.e = make([]float64, 3)
		o.Jv = la.MatAlloc(3, 6)
		o.Jl = la.MatAlloc(3, 3)
		return &o
	}
}

// resid evaluates the error vector and returns the landmark position in the
// vehicle's frame
func (o *Obs3d) resid() (local []float64) {
	v, l, z := o.vee.Est, o.lmk.Est, o.fac.Z
	Rv := rot.R3(rot.QuatFromSlice(v[3:7]))
	d := []float64{l[0] - v[0], l[1] - v[1], l[2] - v[2]}
	local = make([]float64, 3)
	for i := 0; i < 3; i++ {
		local[i] = Rv[0][i]*d[0] + Rv[1][i]*d[1] + Rv[2][i]*d[2] // Rvᵀ·d
		o.e[i] = local[i] - z[i]
	}
	return
}

// AddToSystem scatters the observation contribution into Kb and fb
func (o *Obs3d) AddToSystem(Kb *la.Triplet, fb []float64) (err error) {
	if o.vee.Fixed && o.lmk.Fixed {
		return
	}
	local := o.resid()

	RvT := matTr(rot.R3(rot.QuatFromSlice(o.vee.Est[3:7])))

	var Js [][][]float64
	var starts []int
	if !o.vee.Fixed {
		S := rot.Skew(local)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.Jv[i][j] = -RvT[i][j]
				o.Jv[i][3+j] = S[i][j]
			}
		}
		Js = append(Js, o.Jv)
		starts = append(starts, o.vee.Start)
	}
	if !o.lmk.Fixed {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.Jl[i][j] = RvT[i][j]
			}
		}
		Js = append(Js, o.Jl)
		starts = append(starts, o.lmk.Start)
	}

	scatter(Kb, fb, o.fac.Omega, o.e, Js, starts)
	return
}

// Chi2 returns eᵀΩe
func (o *Obs3d) Chi2() float64 {
	o.resid()
	return quadForm(o.fac.Omega, o.e)
}
