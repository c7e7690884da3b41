// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package opt implements the Gauss-Newton optimizer: per-factor handlers,
// assembly of the sparse normal equations H·Δx = -b, the linear solve and
// the manifold-aware update of estimates
package opt

import (
	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Handler defines what all factor handlers must implement. AddToSystem
// evaluates the error vector and the per-endpoint Jacobians at the current
// estimates and scatters JᵢᵀΩJⱼ into Kb and -JᵢᵀΩe into fb, skipping fixed
// endpoints. Handlers never mutate estimates
type Handler interface {
	AddToSystem(Kb *la.Triplet, fb []float64) (err error)
	Chi2() float64 // eᵀΩe at the current estimates
}

// allocators holds all available handlers; factor kind => allocator
var allocators = make(map[graph.FacKind]func(f *graph.Factor, g *graph.Graph) Handler)

// NewHandler returns a new handler for factor f
func NewHandler(f *graph.Factor, g *graph.Graph) (h Handler, err error) {
	alloc, ok := allocators[f.Kind]
	if !ok {
		return nil, chk.Err("cannot find handler for factor kind %q", f.Kind)
	}
	return alloc(f, g), nil
}
