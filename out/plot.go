// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/plt"
)

// PlotGraph2D plots the vehicle trajectory and the landmarks of a 2D graph
// and saves the figure to dirout/fname
func PlotGraph2D(g *graph.Graph, dirout, fname string) {
	var xv, yv, xl, yl []float64
	for _, v := range g.Vars {
		switch v.Kind {
		case graph.Vehicle2D:
			xv = append(xv, v.Est[0])
			yv = append(yv, v.Est[1])
		case graph.Landmark2D:
			xl = append(xl, v.Est[0])
			yl = append(yl, v.Est[1])
		}
	}
	plt.Reset()
	if len(xv) > 0 {
		plt.Plot(xv, yv, "'b-', marker='.', label='vehicle', clip_on=0")
	}
	if len(xl) > 0 {
		plt.Plot(xl, yl, "'r*', ls='none', label='landmarks', clip_on=0")
	}
	plt.Gll("$x$", "$y$", "leg_out=0")
	plt.SaveD(dirout, fname)
}
