// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"

	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// JsonVertex holds one vertex of a JSON graph file
type JsonVertex struct {
	Id      int       `json:"id"`
	Kind    string    `json:"kind"`
	Content []float64 `json:"content"`
}

// JsonEdge holds one edge of a JSON graph file. Target is absent for priors.
// The information matrix is stored in full symmetric form
type JsonEdge struct {
	Kind        string      `json:"kind"`
	Constraint  []float64   `json:"constraint"`
	Information [][]float64 `json:"information"`
	Source      int         `json:"source"`
	Target      *int        `json:"target,omitempty"`
}

// JsonGraph holds a whole JSON graph file
type JsonGraph struct {
	Vertices      []JsonVertex `json:"vertices"`
	Edges         []JsonEdge   `json:"edges"`
	FixedVertices []int        `json:"fixed_vertices"`
}

// varKinds and facKinds map the JSON kind names
var varKinds = map[string]graph.VarKind{
	"Vehicle2D":  graph.Vehicle2D,
	"Landmark2D": graph.Landmark2D,
	"Vehicle3D":  graph.Vehicle3D,
	"Landmark3D": graph.Landmark3D,
}

var facKinds = map[string]graph.FacKind{
	"Position2D":    graph.Position2D,
	"Odometry2D":    graph.Odometry2D,
	"Observation2D": graph.Observation2D,
	"Position3D":    graph.Position3D,
	"Odometry3D":    graph.Odometry3D,
	"Observation3D": graph.Observation3D,
}

// ReadJson parses a JSON graph file into a factor graph
func ReadJson(fname string) (g *graph.Graph, err error) {
	buf, err := io.ReadFile(fname)
	if err != nil {
		return nil, chk.Err("cannot read json file:\n%v", err)
	}
	return ParseJson(buf)
}

// ParseJson parses JSON data into a factor graph
func ParseJson(data []byte) (g *graph.Graph, err error) {
	var jg JsonGraph
	err = json.Unmarshal(data, &jg)
	if err != nil {
		return nil, chk.Err("cannot unmarshal json graph:\n%v", err)
	}
	fixed := make(map[int]bool)
	for _, id := range jg.FixedVertices {
		fixed[id] = true
	}
	g = graph.New()
	for _, v := range jg.Vertices {
		kind, ok := varKinds[v.Kind]
		if !ok {
			return nil, chk.Err("unknown vertex kind %q", v.Kind)
		}
		_, err = g.AddVariable(kind, v.Id, v.Content, fixed[v.Id])
		if err != nil {
			return nil, err
		}
	}
	for _, e := range jg.Edges {
		kind, ok := facKinds[e.Kind]
		if !ok {
			return nil, chk.Err("unknown edge kind %q", e.Kind)
		}
		tgt := -1
		if e.Target != nil {
			tgt = *e.Target
		}
		if !kind.Unary() && e.Target == nil {
			return nil, chk.Err("malformed graph: %v edge must have a target", kind)
		}
		_, err = g.AddFactor(kind, e.Constraint, e.Information, e.Source, tgt)
		if err != nil {
			return nil, err
		}
	}
	return
}
