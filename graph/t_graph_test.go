// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_graph01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("graph01. range assignment and partition")

	g := New()
	g.AddVariable(Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(Vehicle2D, 1, []float64{1, 0, 0}, false)
	g.AddVariable(Landmark2D, 7, []float64{2, 2}, false)
	g.AddVariable(Vehicle3D, 3, []float64{0, 0, 0, 0, 0, 0, 1}, false)
	g.AddVariable(Landmark3D, 4, []float64{1, 1, 1}, false)

	chk.IntAssert(g.TotalFreeDim(), 3+2+6+3)
	chk.Ints(tst, "ids", g.Ids(), []int{0, 1, 7, 3, 4})

	// fixed variables carry no range
	if g.Var(0).Start != -1 {
		tst.Errorf("fixed variable has a range\n")
		return
	}

	// free ranges form an exact partition of [0, N)
	covered := make([]int, g.TotalFreeDim())
	for _, v := range g.Vars {
		if v.Fixed {
			continue
		}
		lo, hi := v.Range()
		for i := lo; i < hi; i++ {
			covered[i]++
		}
	}
	for i, c := range covered {
		if c != 1 {
			tst.Errorf("equation %d covered %d times\n", i, c)
			return
		}
	}
}

func Test_graph02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("graph02. construction errors")

	g := New()
	g.AddVariable(Vehicle2D, 0, []float64{0, 0, 0}, true)

	// duplicate id
	_, err := g.AddVariable(Landmark2D, 0, []float64{0, 0}, false)
	if err == nil {
		tst.Errorf("duplicate id must fail\n")
		return
	}

	// wrong estimate width
	_, err = g.AddVariable(Landmark2D, 1, []float64{0, 0, 0}, false)
	if err == nil {
		tst.Errorf("wrong estimate width must fail\n")
		return
	}

	// non-unit quaternion
	_, err = g.AddVariable(Vehicle3D, 2, []float64{0, 0, 0, 0, 0, 0.5, 1}, false)
	if err == nil {
		tst.Errorf("non-unit quaternion must fail\n")
		return
	}

	// dangling endpoint
	omega := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	_, err = g.AddFactor(Odometry2D, []float64{1, 0, 0}, omega, 0, 99)
	if err == nil {
		tst.Errorf("dangling endpoint must fail\n")
		return
	}

	// wrong endpoint kind
	g.AddVariable(Landmark2D, 3, []float64{0, 0}, false)
	_, err = g.AddFactor(Odometry2D, []float64{1, 0, 0}, omega, 0, 3)
	if err == nil {
		tst.Errorf("wrong endpoint kind must fail\n")
		return
	}

	// wrong constraint width
	_, err = g.AddFactor(Observation2D, []float64{1, 0, 0}, [][]float64{{1, 0}, {0, 1}}, 0, 3)
	if err == nil {
		tst.Errorf("wrong constraint width must fail\n")
		return
	}

	// wrong information matrix dimension
	_, err = g.AddFactor(Observation2D, []float64{1, 0}, omega, 0, 3)
	if err == nil {
		tst.Errorf("wrong information dimension must fail\n")
		return
	}
}

func Test_graph03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("graph03. estimates and nonzero accounting")

	g := New()
	g.AddVariable(Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(Vehicle2D, 1, []float64{1, 0, 0}, false)
	g.AddVariable(Landmark2D, 2, []float64{2, 2}, false)

	// Estimate returns a copy
	est := g.Estimate(1)
	est[0] = 123
	chk.Vector(tst, "est", 1e-17, g.Estimate(1), []float64{1, 0, 0})

	// SetEstimate checks the width
	err := g.SetEstimate(2, []float64{5, 6, 7})
	if err == nil {
		tst.Errorf("wrong estimate width must fail\n")
		return
	}
	err = g.SetEstimate(2, []float64{5, 6})
	if err != nil {
		tst.Errorf("SetEstimate failed: %v\n", err)
		return
	}
	chk.Vector(tst, "lmk", 1e-17, g.Estimate(2), []float64{5, 6})

	// nonzeros: one edge with a fixed endpoint (3x3 block) and one free-free
	// observation ((3+2)² entries)
	omega3 := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	omega2 := [][]float64{{1, 0}, {0, 1}}
	g.AddFactor(Odometry2D, []float64{1, 0, 0}, omega3, 0, 1)
	g.AddFactor(Observation2D, []float64{1, 0}, omega2, 1, 2)
	chk.IntAssert(g.NnzEstimate(), 3*3+5*5)
}
