// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/rot"

	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/num/quat"
)

// Pos3d handles a prior factor on a 3D vehicle pose. The translation
// residual is expressed in the measurement frame; the rotation residual is
// the vector part of the delta quaternion q_m⁻¹·q_v.
//
// Rotation increments are right-multiplicative, q ← q·exp(δ), so the
// rotation block of the Jacobian is ½·L(q_err) restricted to vector parts;
// near convergence it approaches ½·I
type Pos3d struct {
	fac *graph.Factor
	vee *graph.Variable

	// scratchpad
	e []float64
	J [][]float64
}

// register handler
func init() {
	allocators[graph.Position3D] = func(f *graph.Factor, g *graph.Graph) Handler {
		var o Pos3d
		o.fac = f
		o.vee = g.Var(f.Src)
		o.e = make([]float64, 6)
		o.J = la.MatAlloc(6, 6)
		return &o
	}
}

// resid evaluates the error vector and returns the delta quaternion
func (o *Pos3d) resid() (qe quat.Number) {
	p, z := o.vee.Est, o.fac.Z
	qm := rot.QuatFromSlice(z[3:7])
	Rm := rot.R3(qm)
	d := []float64{p[0] - z[0], p[1] - z[1], p[2] - z[2]}
	for i := 0; i < 3; i++ {
		o.e[i] = Rm[0][i]*d[0] + Rm[1][i]*d[1] + Rm[2][i]*d[2] // Rmᵀ·d
	}
	qe = rot.QuatMul(rot.QuatInv(qm), rot.QuatFromSlice(p[3:7]))
	o.e[3], o.e[4], o.e[5] = qe.Imag, qe.Jmag, qe.Kmag
	return
}

// AddToSystem scatters the prior's contribution into Kb and fb
func (o *Pos3d) AddToSystem(Kb *la.Triplet, fb []float64) (err error) {
	if o.vee.Fixed {
		return
	}
	qe := o.resid()

	Rm := rot.R3(rot.QuatFromSlice(o.fac.Z[3:7]))
	Jr := upper3(rot.QuatLeftMat(qe), 0.5)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o.J[i][j] = Rm[j][i] // Rmᵀ
			o.J[3+i][3+j] = Jr[i][j]
		}
	}

	scatter(Kb, fb, o.fac.Omega, o.e, [][][]float64{o.J}, []int{o.vee.Start})
	return
}

// Chi2 returns eᵀΩe
func (o *Pos3d) Chi2() float64 {
	o.resid()
	return quadForm(o.fac.Omega, o.e)
}
