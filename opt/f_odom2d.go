// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/rot"

	"github.com/cpmech/gosl/la"
)

// Odom2d handles a relative pose factor between two 2D vehicles. The
// predicted relative pose is formed in the source frame and the residual is
// rotated into the measurement frame
type Odom2d struct {
	fac *graph.Factor
	va  *graph.Variable // source vehicle
	vb  *graph.Variable // target vehicle

	// scratchpad
	e  []float64
	Ja [][]float64
	Jb [][]float64
}

// register handler
func init() {
	allocators[graph.Odometry2D] = func(f *graph.Factor, g *graph.Graph) Handler {
		var o Odom2d
		o.fac = f
		o.va = g.Var(f.Src)
		o.vb = g.Var(f.Tgt)
		o.e = make([]float64, 3)
		o.Ja = la.MatAlloc(3, 3)
		o.Jb = la.MatAlloc(3, 3)
		return &o
	}
}

// resid evaluates the error vector at the current estimates
func (o *Odom2d) resid() {
	a, b, z := o.va.Est, o.vb.Est, o.fac.Z
	Ra := rot.R2(-a[2])
	Rm := rot.R2(-z[2])
	dx, dy := b[0]-a[0], b[1]-a[1]

	// predicted relative pose in the source frame
	zx := Ra[0][0]*dx + Ra[0][1]*dy
	zy := Ra[1][0]*dx + Ra[1][1]*dy

	o.e[0] = Rm[0][0]*(zx-z[0]) + Rm[0][1]*(zy-z[1])
	o.e[1] = Rm[1][0]*(zx-z[0]) + Rm[1][1]*(zy-z[1])
	o.e[2] = rot.Wrap(rot.Wrap(b[2]-a[2]) - z[2])
}

// AddToSystem scatters the odometry contribution into Kb and fb
func (o *Odom2d) AddToSystem(Kb *la.Triplet, fb []float64) (err error) {
	if o.va.Fixed && o.vb.Fixed {
		return
	}
	o.resid()

	a, b, z := o.va.Est, o.vb.Est, o.fac.Z
	Rm := rot.R2(-z[2])
	RmRa := matMul(Rm, rot.R2(-a[2]))

	// derivative of the position residual w.r.t. φa
	dpos := matVec(matMul(Rm, rot.DR2(a[2])), []float64{b[0] - a[0], b[1] - a[1]})

	var Js [][][]float64
	var starts []int
	if !o.va.Fixed {
		o.Ja[0][0], o.Ja[0][1], o.Ja[0][2] = -RmRa[0][0], -RmRa[0][1], dpos[0]
		o.Ja[1][0], o.Ja[1][1], o.Ja[1][2] = -RmRa[1][0], -RmRa[1][1], dpos[1]
		o.Ja[2][2] = -1
		Js = append(Js, o.Ja)
		starts = append(starts, o.va.Start)
	}
	if !o.vb.Fixed {
		o.Jb[0][0], o.Jb[0][1] = RmRa[0][0], RmRa[0][1]
		o.Jb[1][0], o.Jb[1][1] = RmRa[1][0], RmRa[1][1]
		o.Jb[2][2] = 1
		Js = append(Js, o.Jb)
		starts = append(starts, o.vb.Start)
	}

	scatter(Kb, fb, o.fac.Omega, o.e, Js, starts)
	return
}

// Chi2 returns eᵀΩe
func (o *Odom2d) Chi2() float64 {
	o.resid()
	return quadForm(o.fac.Omega, o.e)
}
