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

// Odom3d handles a relative pose factor between two 3D vehicles. The
// predicted relative pose is formed in the source frame; the translation
// residual is rotated into the measurement frame and the rotation residual
// is the vector part of q_m⁻¹·q_a⁻¹·q_b.
//
// The rotation blocks are evaluated exactly for right-multiplicative
// increments via the quaternion multiplication matrices: perturbing b gives
// vec(q_err·exp(δ)) with derivative ½·L(q_err); perturbing a gives
// vec(q_m⁻¹·exp(-δ)·q_a⁻¹·q_b) with derivative -½·L(q_m⁻¹)·R(q_a⁻¹·q_b)
type Odom3d struct {
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
	allocators[graph.Odometry3D] = func(f *graph.Factor, g *graph.Graph) Handler {
		var o Odom3d
		o.fac = f
		o.va = g.Var(f.Src)
		o.vb = g.Var(f.Tgt)
		o.e = make([]float64, 6)
		o.Ja = la.MatAlloc(6, 6)
		o.Jb = la.MatAlloc(6, 6)
		return &o
	}
}

// resid evaluates the error vector at the current estimates
func (o *Odom3d) resid() (that []float64, qab, qe quat.Number) {
	a, b, z := o.va.Est, o.vb.Est, o.fac.Z
	qa := rot.QuatFromSlice(a[3:7])
	qm := rot.QuatFromSlice(z[3:7])
	Ra := rot.R3(qa)
	Rm := rot.R3(qm)

	// predicted relative translation in the source frame: Raᵀ·(t_b - t_a)
	d := []float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	that = make([]float64, 3)
	for i := 0; i < 3; i++ {
		that[i] = Ra[0][i]*d[0] + Ra[1][i]*d[1] + Ra[2][i]*d[2]
	}
	for i := 0; i < 3; i++ {
		o.e[i] = Rm[0][i]*(that[0]-z[0]) + Rm[1][i]*(that[1]-z[1]) + Rm[2][i]*(that[2]-z[2])
	}

	qab = rot.QuatMul(rot.QuatInv(qa), rot.QuatFromSlice(b[3:7]))
	qe = rot.QuatMul(rot.QuatInv(qm), qab)
	o.e[3], o.e[4], o.e[5] = qe.Imag, qe.Jmag, qe.Kmag
	return
}

// AddToSystem scatters the odometry contribution into Kb and fb
func (o *Odom3d) AddToSystem(Kb *la.Triplet, fb []float64) (err error) {
	if o.va.Fixed && o.vb.Fixed {
		return
	}
	that, qab, qe := o.resid()

	qm := rot.QuatFromSlice(o.fac.Z[3:7])
	RmT := matTr(rot.R3(qm))
	RaT := matTr(rot.R3(rot.QuatFromSlice(o.va.Est[3:7])))
	A := matMul(RmT, RaT)

	var Js [][][]float64
	var starts []int
	if !o.va.Fixed {
		T := matMul(RmT, rot.Skew(that))
		Jr := upper3(matMul(rot.QuatLeftMat(rot.QuatInv(qm)), rot.QuatRightMat(qab)), -0.5)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.Ja[i][j] = -A[i][j]
				o.Ja[i][3+j] = T[i][j]
				o.Ja[3+i][3+j] = Jr[i][j]
			}
		}
		Js = append(Js, o.Ja)
		starts = append(starts, o.va.Start)
	}
	if !o.vb.Fixed {
		Jr := upper3(rot.QuatLeftMat(qe), 0.5)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				o.Jb[i][j] = A[i][j]
				o.Jb[3+i][3+j] = Jr[i][j]
			}
		}
		Js = append(Js, o.Jb)
		starts = append(starts, o.vb.Start)
	}

	scatter(Kb, fb, o.fac.Omega, o.e, Js, starts)
	return
}

// Chi2 returns eᵀΩe
func (o *Odom3d) Chi2() float64 {
	o.resid()
	return quadForm(o.fac.Omega, o.e)
}
