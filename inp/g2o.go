// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the parsers that build factor graphs from SLAM
// benchmark files in g2o and JSON form
package inp

import (
	"strconv"
	"strings"

	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// g2o line kinds and their field counts (after the keyword)
//
//	VERTEX_SE2        id x y φ
//	VERTEX_XY         id x y
//	VERTEX_SE3:QUAT   id x y z qx qy qz qw
//	VERTEX_TRACKXYZ   id x y z
//	EDGE_SE2          i j dx dy dφ + upper triangle of Ω (6)
//	EDGE_SE2_XY       i j dx dy + upper triangle of Ω (3)
//	EDGE_SE3:QUAT     i j dx dy dz dqx dqy dqz dqw + upper triangle of Ω (21)
//	EDGE_SE3_TRACKXYZ i j dx dy dz + upper triangle of Ω (6)
//	FIX               id

// vtxRec and edgRec hold raw lines; the graph is built only after the whole
// file is read so FIX lines may appear anywhere
type vtxRec struct {
	kind graph.VarKind
	id   int
	est  []float64
}

type edgRec struct {
	kind     graph.FacKind
	src, tgt int
	z        []float64
	omega    [][]float64
}

// ReadG2o parses a g2o text file into a factor graph
func ReadG2o(fname string) (g *graph.Graph, err error) {
	buf, err := io.ReadFile(fname)
	if err != nil {
		return nil, chk.Err("cannot read g2o file:\n%v", err)
	}
	return ParseG2o(string(buf))
}

// ParseG2o parses g2o text into a factor graph
func ParseG2o(text string) (g *graph.Graph, err error) {

	// collect records
	var vtxs []vtxRec
	var edgs []edgRec
	fixed := make(map[int]bool)
	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		key, args := fields[0], fields[1:]
		switch key {
		case "VERTEX_SE2":
			err = addVtx(&vtxs, graph.Vehicle2D, args, i)
		case "VERTEX_XY":
			err = addVtx(&vtxs, graph.Landmark2D, args, i)
		case "VERTEX_SE3:QUAT":
			err = addVtx(&vtxs, graph.Vehicle3D, args, i)
		case "VERTEX_TRACKXYZ":
			err = addVtx(&vtxs, graph.Landmark3D, args, i)
		case "EDGE_SE2":
			err = addEdg(&edgs, graph.Odometry2D, args, i)
		case "EDGE_SE2_XY":
			err = addEdg(&edgs, graph.Observation2D, args, i)
		case "EDGE_SE3:QUAT":
			err = addEdg(&edgs, graph.Odometry3D, args, i)
		case "EDGE_SE3_TRACKXYZ":
			err = addEdg(&edgs, graph.Observation3D, args, i)
		case "FIX":
			if len(args) != 1 {
				err = chk.Err("line %d: FIX takes one id", i+1)
				break
			}
			var id int
			id, err = strconv.Atoi(args[0])
			fixed[id] = true
		default:
			err = chk.Err("line %d: unknown keyword %q", i+1, key)
		}
		if err != nil {
			return nil, err
		}
	}

	// build graph
	g = graph.New()
	for _, v := range vtxs {
		_, err = g.AddVariable(v.kind, v.id, v.est, fixed[v.id])
		if err != nil {
			return nil, err
		}
	}
	for _, e := range edgs {
		_, err = g.AddFactor(e.kind, e.z, e.omega, e.src, e.tgt)
		if err != nil {
			return nil, err
		}
	}
	return
}

// addVtx parses one vertex line
func addVtx(vtxs *[]vtxRec, kind graph.VarKind, args []string, lidx int) (err error) {
	n := kind.StorageDim()
	if len(args) != 1+n {
		return chk.Err("line %d: %v vertex needs %d fields. %d != %d", lidx+1, kind, 1+n, len(args), 1+n)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return chk.Err("line %d: cannot parse vertex id %q", lidx+1, args[0])
	}
	est, err := parseFloats(args[1:], lidx)
	if err != nil {
		return
	}
	*vtxs = append(*vtxs, vtxRec{kind: kind, id: id, est: est})
	return
}

// addEdg parses one edge line; the information matrix is stored as the upper
// triangle, row by row, and is expanded to full symmetric form here
func addEdg(edgs *[]edgRec, kind graph.FacKind, args []string, lidx int) (err error) {
	nz := kind.ConstraintDim()
	dim := kind.ErrorDim()
	ninfo := dim * (dim + 1) / 2
	if len(args) != 2+nz+ninfo {
		return chk.Err("line %d: %v edge needs %d fields. %d != %d", lidx+1, kind, 2+nz+ninfo, len(args), 2+nz+ninfo)
	}
	src, err := strconv.Atoi(args[0])
	if err != nil {
		return chk.Err("line %d: cannot parse edge endpoint %q", lidx+1, args[0])
	}
	tgt, err := strconv.Atoi(args[1])
	if err != nil {
		return chk.Err("line %d: cannot parse edge endpoint %q", lidx+1, args[1])
	}
	vals, err := parseFloats(args[2:], lidx)
	if err != nil {
		return
	}
	*edgs = append(*edgs, edgRec{
		kind:  kind,
		src:   src,
		tgt:   tgt,
		z:     vals[:nz],
		omega: symFromUpper(dim, vals[nz:]),
	})
	return
}

// parseFloats converts fields to float64
func parseFloats(args []string, lidx int) (vals []float64, err error) {
	vals = make([]float64, len(args))
	for i, s := range args {
		vals[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, chk.Err("line %d: cannot parse number %q", lidx+1, s)
		}
	}
	return
}

// symFromUpper expands an upper triangle (row by row) to a full symmetric
// matrix
func symFromUpper(dim int, vals []float64) (m [][]float64) {
	m = make([][]float64, dim)
	for i := range m {
		m[i] = make([]float64, dim)
	}
	k := 0
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			m[i][j] = vals[k]
			m[j][i] = vals[k]
			k++
		}
	}
	return
}
