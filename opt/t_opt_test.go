// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"math"
	"testing"

	"github.com/cpmech/gslam/graph"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func eye(n int) (m [][]float64) {
	m = make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return
}

func Test_opt01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt01. two poses and one odometry")

	g := graph.New()
	g.AddVariable(graph.Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(graph.Vehicle2D, 1, []float64{1.1, 0, 0}, false)
	g.AddFactor(graph.Odometry2D, []float64{1, 0, 0}, eye(3), 0, 1)

	err := Optimize(g, 1)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}
	chk.Vector(tst, "v1", 1e-9, g.Estimate(1), []float64{1, 0, 0})
}

func Test_opt02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt02. triangle loop")

	// a unit right triangle; poses keep zero heading
	g := graph.New()
	g.AddVariable(graph.Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(graph.Vehicle2D, 1, []float64{1, 0.1, 0}, false)
	g.AddVariable(graph.Vehicle2D, 2, []float64{1, 1, 0}, false)
	g.AddFactor(graph.Odometry2D, []float64{1, 0, 0}, eye(3), 0, 1)
	g.AddFactor(graph.Odometry2D, []float64{0, 1, 0}, eye(3), 1, 2)
	g.AddFactor(graph.Odometry2D, []float64{1, 1, 0}, eye(3), 0, 2)

	gn, err := NewGaussNewton(g)
	if err != nil {
		tst.Errorf("NewGaussNewton failed: %v\n", err)
		return
	}
	defer gn.Free()
	err = gn.Run(5)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chi2 := gn.Chi2()
	io.Pforan("chi2 = %v\n", chi2)
	if chi2 > 1e-12 {
		tst.Errorf("chi2 = %g is not small enough\n", chi2)
	}
}

func Test_opt03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt03. single landmark observation")

	g := graph.New()
	g.AddVariable(graph.Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(graph.Landmark2D, 1, []float64{2.1, 0.1}, false)
	g.AddFactor(graph.Observation2D, []float64{2, 0}, eye(2), 0, 1)

	err := Optimize(g, 1)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}
	chk.Vector(tst, "lmk", 1e-9, g.Estimate(1), []float64{2, 0})
}

func Test_opt04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt04. 3D odometry pair")

	g := graph.New()
	g.AddVariable(graph.Vehicle3D, 0, []float64{0, 0, 0, 0, 0, 0, 1}, true)
	g.AddVariable(graph.Vehicle3D, 1, []float64{0.1, 0, 0, 0, 0, 0, 1}, false)
	g.AddFactor(graph.Odometry3D, []float64{0, 0, 0, 0, 0, 0, 1}, eye(6), 0, 1)

	err := Optimize(g, 1)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}
	chk.Vector(tst, "v1", 1e-9, g.Estimate(1), []float64{0, 0, 0, 0, 0, 0, 1})
}

func Test_opt05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt05. zero-residual fixpoint")

	// constraints match the estimates exactly => one iteration must not move
	g := graph.New()
	g.AddVariable(graph.Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(graph.Vehicle2D, 1, []float64{1, 0, 0.5}, false)
	g.AddVariable(graph.Landmark2D, 2, []float64{2, 1}, false)
	zp := []float64{math.Cos(0.5)*1 + math.Sin(0.5)*1, -math.Sin(0.5)*1 + math.Cos(0.5)*1}
	g.AddFactor(graph.Odometry2D, []float64{1, 0, 0.5}, eye(3), 0, 1)
	g.AddFactor(graph.Observation2D, zp, eye(2), 1, 2)
	g.AddFactor(graph.Position2D, []float64{1, 0, 0.5}, eye(3), 1, -1)

	before1 := g.Estimate(1)
	before2 := g.Estimate(2)
	err := Optimize(g, 1)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}
	chk.Vector(tst, "v1", 1e-9, g.Estimate(1), before1)
	chk.Vector(tst, "lmk", 1e-9, g.Estimate(2), before2)
}

func Test_opt06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt06. fixed variables, wrap and determinism")

	build := func() *graph.Graph {
		g := graph.New()
		g.AddVariable(graph.Vehicle2D, 0, []float64{0.1, -0.2, 0.3}, true)
		g.AddVariable(graph.Vehicle2D, 1, []float64{1.0, 0.2, 2.9}, false)
		g.AddVariable(graph.Vehicle2D, 2, []float64{1.5, 1.4, -2.8}, false)
		g.AddFactor(graph.Odometry2D, []float64{1, 0, 2.8}, eye(3), 0, 1)
		g.AddFactor(graph.Odometry2D, []float64{0.8, 0.3, 0.6}, eye(3), 1, 2)
		g.AddFactor(graph.Odometry2D, []float64{1.4, 1.2, 3.0}, eye(3), 0, 2)
		return g
	}

	ga := build()
	fixedBefore := ga.Estimate(0)
	err := Optimize(ga, 10)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}

	// fixed variables are bit-equal before and after
	chk.Vector(tst, "fixed", 0, ga.Estimate(0), fixedBefore)

	// headings are wrapped
	for _, id := range ga.Ids() {
		φ := ga.Estimate(id)[2]
		if φ > math.Pi || φ <= -math.Pi {
			tst.Errorf("heading %g of variable %d is not in (-π, π]\n", φ, id)
			return
		}
	}

	// repeated runs are bit-identical
	gb := build()
	err = Optimize(gb, 10)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}
	for _, id := range ga.Ids() {
		chk.Vector(tst, io.Sf("v%d", id), 0, gb.Estimate(id), ga.Estimate(id))
	}
}

func Test_opt07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt07. quaternion norm and 3D chi2 decrease")

	g := graph.New()
	q1 := qnorm(0.05, -0.1, 0.2, 0.97)
	q2 := qnorm(-0.1, 0.15, -0.05, 0.98)
	g.AddVariable(graph.Vehicle3D, 0, []float64{0, 0, 0, 0, 0, 0, 1}, true)
	g.AddVariable(graph.Vehicle3D, 1, pose3d(1.1, 0.1, -0.05, q1), false)
	g.AddVariable(graph.Vehicle3D, 2, pose3d(1.9, 1.05, 0.1, q2), false)
	g.AddVariable(graph.Landmark3D, 3, []float64{1.0, 0.4, 0.6}, false)
	g.AddFactor(graph.Odometry3D, []float64{1, 0, 0, 0, 0, 0, 1}, eye(6), 0, 1)
	g.AddFactor(graph.Odometry3D, []float64{1, 1, 0, 0, 0, 0, 1}, eye(6), 1, 2)
	g.AddFactor(graph.Observation3D, []float64{1, 0.5, 0.5}, eye(3), 0, 3)
	g.AddFactor(graph.Observation3D, []float64{0.1, 0.4, 0.5}, eye(3), 1, 3)
	g.AddFactor(graph.Position3D, []float64{1, 0, 0, 0, 0, 0, 1}, eye(6), 1, -1)

	gn, err := NewGaussNewton(g)
	if err != nil {
		tst.Errorf("NewGaussNewton failed: %v\n", err)
		return
	}
	defer gn.Free()
	chi0 := gn.Chi2()
	err = gn.Run(10)
	if err != nil {
		tst.Errorf("Run failed: %v\n", err)
		return
	}
	chi10 := gn.Chi2()
	io.Pforan("chi2: %v => %v\n", chi0, chi10)
	if chi10 >= chi0 {
		tst.Errorf("chi2 did not decrease. %g >= %g\n", chi10, chi0)
		return
	}

	// quaternions stay unit after every update
	for _, id := range []int{1, 2} {
		est := g.Estimate(id)
		nrm := math.Sqrt(est[3]*est[3] + est[4]*est[4] + est[5]*est[5] + est[6]*est[6])
		chk.Scalar(tst, io.Sf("‖q%d‖", id), 1e-9, nrm, 1)
	}
}

func Test_opt08(tst *testing.T) {

	//verbose()
	chk.PrintTitle("opt08. iteration count ≤ 0 is a no-op")

	g := graph.New()
	g.AddVariable(graph.Vehicle2D, 0, []float64{0, 0, 0}, true)
	g.AddVariable(graph.Vehicle2D, 1, []float64{1.1, 0, 0}, false)
	g.AddFactor(graph.Odometry2D, []float64{1, 0, 0}, eye(3), 0, 1)

	before := g.Estimate(1)
	err := Optimize(g, 0)
	if err != nil {
		tst.Errorf("Optimize failed: %v\n", err)
		return
	}
	chk.Vector(tst, "v1", 0, g.Estimate(1), before)
}
