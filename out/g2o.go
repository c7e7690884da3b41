// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the composition of optimized factor graphs back to
// their file formats and simple trajectory plots
package out

import (
	"bytes"

	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// vtxKeys and edgKeys map kinds to g2o keywords
var vtxKeys = map[graph.VarKind]string{
	graph.Vehicle2D:  "VERTEX_SE2",
	graph.Landmark2D: "VERTEX_XY",
	graph.Vehicle3D:  "VERTEX_SE3:QUAT",
	graph.Landmark3D: "VERTEX_TRACKXYZ",
}

var edgKeys = map[graph.FacKind]string{
	graph.Odometry2D:    "EDGE_SE2",
	graph.Observation2D: "EDGE_SE2_XY",
	graph.Odometry3D:    "EDGE_SE3:QUAT",
	graph.Observation3D: "EDGE_SE3_TRACKXYZ",
}

// ComposeG2o returns the g2o text of a graph: vertices in insertion order,
// then FIX lines, then edges. Numbers are written with enough digits to
// round-trip fixed variables bit-equally
func ComposeG2o(g *graph.Graph) (text string, err error) {
	var buf bytes.Buffer
	for _, v := range g.Vars {
		io.Ff(&buf, "%s %d", vtxKeys[v.Kind], v.Id)
		for _, x := range v.Est {
			io.Ff(&buf, " %.17g", x)
		}
		io.Ff(&buf, "\n")
	}
	for _, v := range g.Vars {
		if v.Fixed {
			io.Ff(&buf, "FIX %d\n", v.Id)
		}
	}
	for _, f := range g.Facs {
		key, ok := edgKeys[f.Kind]
		if !ok {
			return "", chk.Err("factor kind %v has no g2o representation", f.Kind)
		}
		io.Ff(&buf, "%s %d %d", key, f.Src, f.Tgt)
		for _, x := range f.Z {
			io.Ff(&buf, " %.17g", x)
		}
		dim := f.Kind.ErrorDim()
		for i := 0; i < dim; i++ {
			for j := i; j < dim; j++ {
				io.Ff(&buf, " %.17g", f.Omega[i][j])
			}
		}
		io.Ff(&buf, "\n")
	}
	return buf.String(), nil
}

// WriteG2o composes a graph and writes it to dirout/fname
func WriteG2o(g *graph.Graph, dirout, fname string) (err error) {
	text, err := ComposeG2o(g)
	if err != nil {
		return
	}
	io.WriteFileSD(dirout, fname, text)
	return
}
