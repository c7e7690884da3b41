// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Graph composes the variable and factor stores. The structure is immutable
// once construction is finished; only estimates change afterwards.
//
// Free variables receive consecutive equation ranges in insertion order, so
// the ranges of all free variables form an exact partition of
// [0, TotalFreeDim())
type Graph struct {
	Vars []*Variable // all variables, in insertion order
	Facs []*Factor   // all factors, in insertion order

	vid   map[int]*Variable // id => variable
	nfree int               // total number of free degrees
	nnz   int               // estimate of nonzeros in the assembled system
}

// New returns an empty graph
func New() *Graph {
	return &Graph{vid: make(map[int]*Variable)}
}

// AddVariable appends a new variable. When fixed is false the variable is
// assigned the next free equation range of its kind's local width.
// The estimate is copied
func (o *Graph) AddVariable(kind VarKind, id int, est []float64, fixed bool) (v *Variable, err error) {
	if _, ok := o.vid[id]; ok {
		return nil, chk.Err("malformed graph: duplicate variable id %d", id)
	}
	if len(est) != kind.StorageDim() {
		return nil, chk.Err("dimension mismatch: %v estimate must have %d values. %d != %d", kind, kind.StorageDim(), len(est), kind.StorageDim())
	}
	if kind == Vehicle3D {
		nrm := math.Sqrt(est[3]*est[3] + est[4]*est[4] + est[5]*est[5] + est[6]*est[6])
		if math.Abs(nrm-1.0) > QuatTol {
			return nil, chk.Err("non-unit quaternion: variable %d has ‖q‖ = %g", id, nrm)
		}
	}
	v = &Variable{Id: id, Kind: kind, Est: make([]float64, len(est)), Fixed: fixed, Start: -1}
	copy(v.Est, est)
	if !fixed {
		v.Start = o.nfree
		o.nfree += kind.FreeDim()
	}
	o.Vars = append(o.Vars, v)
	o.vid[id] = v
	return
}

// AddFactor appends a new factor. The information matrix must be given in
// its full symmetric form. tgt is ignored for unary factor kinds.
// Constraint and information matrix are copied
func (o *Graph) AddFactor(kind FacKind, z []float64, omega [][]float64, src, tgt int) (f *Factor, err error) {
	if len(z) != kind.ConstraintDim() {
		return nil, chk.Err("dimension mismatch: %v constraint must have %d values. %d != %d", kind, kind.ConstraintDim(), len(z), kind.ConstraintDim())
	}
	dim := kind.ErrorDim()
	if len(omega) != dim {
		return nil, chk.Err("dimension mismatch: %v information matrix must be %dx%d", kind, dim, dim)
	}
	for _, row := range omega {
		if len(row) != dim {
			return nil, chk.Err("dimension mismatch: %v information matrix must be %dx%d", kind, dim, dim)
		}
	}
	s, ok := o.vid[src]
	if !ok {
		return nil, chk.Err("malformed graph: %v factor refers to unknown variable %d", kind, src)
	}
	if s.Kind != kind.SrcKind() {
		return nil, chk.Err("malformed graph: %v factor needs a %v source; variable %d is a %v", kind, kind.SrcKind(), src, s.Kind)
	}
	w := 0
	if !s.Fixed {
		w += s.Kind.FreeDim()
	}
	if kind.Unary() {
		tgt = -1
	} else {
		t, ok := o.vid[tgt]
		if !ok {
			return nil, chk.Err("malformed graph: %v factor refers to unknown variable %d", kind, tgt)
		}
		if t.Kind != kind.TgtKind() {
			return nil, chk.Err("malformed graph: %v factor needs a %v target; variable %d is a %v", kind, kind.TgtKind(), tgt, t.Kind)
		}
		if !t.Fixed {
			w += t.Kind.FreeDim()
		}
	}
	f = &Factor{Kind: kind, Z: make([]float64, len(z)), Omega: la.MatAlloc(dim, dim), Src: src, Tgt: tgt}
	copy(f.Z, z)
	for i := 0; i < dim; i++ {
		copy(f.Omega[i], omega[i])
	}
	o.Facs = append(o.Facs, f)
	o.nnz += w * w
	return
}

// Var returns the variable with given id, or nil
func (o *Graph) Var(id int) *Variable {
	return o.vid[id]
}

// Ids returns all variable ids in insertion order
func (o *Graph) Ids() (ids []int) {
	ids = make([]int, len(o.Vars))
	for i, v := range o.Vars {
		ids[i] = v.Id
	}
	return
}

// Estimate returns a copy of the current estimate of variable id
func (o *Graph) Estimate(id int) []float64 {
	v := o.vid[id]
	if v == nil {
		return nil
	}
	est := make([]float64, len(v.Est))
	copy(est, v.Est)
	return est
}

// SetEstimate overwrites the estimate of variable id. The length must match
// the kind's storage width; quaternions are stored as given (callers must
// pass unit quaternions for 3D vehicles)
func (o *Graph) SetEstimate(id int, est []float64) (err error) {
	v := o.vid[id]
	if v == nil {
		return chk.Err("malformed graph: unknown variable %d", id)
	}
	if len(est) != v.Kind.StorageDim() {
		return chk.Err("dimension mismatch: %v estimate must have %d values. %d != %d", v.Kind, v.Kind.StorageDim(), len(est), v.Kind.StorageDim())
	}
	copy(v.Est, est)
	return
}

// TotalFreeDim returns the total number of free degrees; i.e. the size of the
// global state vector
func (o *Graph) TotalFreeDim() int {
	return o.nfree
}

// NnzEstimate returns the number of entries put into the sparse normal matrix
// per iteration; used to size the triplet
func (o *Graph) NnzEstimate() int {
	return o.nnz
}
