// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"encoding/json"

	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// jsonVertex, jsonEdge and jsonGraph mirror the structures read by inp
type jsonVertex struct {
	Id      int       `json:"id"`
	Kind    string    `json:"kind"`
	Content []float64 `json:"content"`
}

type jsonEdge struct {
	Kind        string      `json:"kind"`
	Constraint  []float64   `json:"constraint"`
	Information [][]float64 `json:"information"`
	Source      int         `json:"source"`
	Target      *int        `json:"target,omitempty"`
}

type jsonGraph struct {
	Vertices      []jsonVertex `json:"vertices"`
	Edges         []jsonEdge   `json:"edges"`
	FixedVertices []int        `json:"fixed_vertices"`
}

// ComposeJson returns the JSON text of a graph
func ComposeJson(g *graph.Graph) (text string, err error) {
	var jg jsonGraph
	jg.FixedVertices = make([]int, 0)
	for _, v := range g.Vars {
		est := make([]float64, len(v.Est))
		copy(est, v.Est)
		jg.Vertices = append(jg.Vertices, jsonVertex{Id: v.Id, Kind: v.Kind.String(), Content: est})
		if v.Fixed {
			jg.FixedVertices = append(jg.FixedVertices, v.Id)
		}
	}
	for _, f := range g.Facs {
		e := jsonEdge{Kind: f.Kind.String(), Constraint: f.Z, Information: f.Omega, Source: f.Src}
		if !f.Kind.Unary() {
			tgt := f.Tgt
			e.Target = &tgt
		}
		jg.Edges = append(jg.Edges, e)
	}
	buf, err := json.MarshalIndent(&jg, "", "  ")
	if err != nil {
		return "", chk.Err("cannot marshal json graph:\n%v", err)
	}
	return string(buf), nil
}

// WriteJson composes a graph and writes it to dirout/fname
func WriteJson(g *graph.Graph, dirout, fname string) (err error) {
	text, err := ComposeJson(g)
	if err != nil {
		return
	}
	io.WriteFileSD(dirout, fname, text)
	return
}
