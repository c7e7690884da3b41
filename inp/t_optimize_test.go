// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"testing"

	"github.com/cpmech/gslam/opt"
	"github.com/cpmech/gslam/out"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_e2e01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("e2e01. 2D dataset: chi2 decrease and round trip")

	g, err := ReadG2o("data/loop2d.g2o")
	if err != nil {
		tst.Errorf("ReadG2o failed: %v\n", err)
		return
	}
	gn, err := opt.NewGaussNewton(g)
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
	if chi10 > 1e-10 {
		tst.Errorf("dataset is consistent; chi2 = %g must approach zero\n", chi10)
		return
	}

	// the pose loop closes onto the unit square
	chk.Vector(tst, "v1", 1e-6, g.Estimate(1), []float64{1, 0, math.Pi / 2})
	chk.Vector(tst, "lmk", 1e-6, g.Estimate(10), []float64{0.5, 0.5})

	// fixed vertex is untouched
	chk.Vector(tst, "v0", 0, g.Estimate(0), []float64{0, 0, 0})

	// compose, parse again and compare
	text, err := out.ComposeG2o(g)
	if err != nil {
		tst.Errorf("ComposeG2o failed: %v\n", err)
		return
	}
	g2, err := ParseG2o(text)
	if err != nil {
		tst.Errorf("ParseG2o of composed text failed: %v\n", err)
		return
	}
	chk.IntAssert(len(g2.Vars), len(g.Vars))
	chk.IntAssert(len(g2.Facs), len(g.Facs))
	for _, id := range g.Ids() {
		chk.Vector(tst, io.Sf("rt v%d", id), 1e-12, g2.Estimate(id), g.Estimate(id))
	}
	for i, f := range g.Facs {
		chk.Vector(tst, io.Sf("rt z%d", i), 1e-12, g2.Facs[i].Z, f.Z)
		chk.Matrix(tst, io.Sf("rt omega%d", i), 1e-12, g2.Facs[i].Omega, f.Omega)
	}
}

func Test_e2e02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("e2e02. 3D json dataset: chi2 decrease and round trip")

	g, err := ReadJson("data/loop3d.json")
	if err != nil {
		tst.Errorf("ReadJson failed: %v\n", err)
		return
	}
	gn, err := opt.NewGaussNewton(g)
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

	// quaternions stay unit
	for _, id := range []int{1, 2, 3} {
		est := g.Estimate(id)
		nrm := math.Sqrt(est[3]*est[3] + est[4]*est[4] + est[5]*est[5] + est[6]*est[6])
		chk.Scalar(tst, io.Sf("‖q%d‖", id), 1e-9, nrm, 1)
	}

	// landmark approaches its ground position
	chk.Vector(tst, "lmk", 1e-6, g.Estimate(20), []float64{0.5, 0.5, 0.3})

	// compose, parse again and compare
	text, err := out.ComposeJson(g)
	if err != nil {
		tst.Errorf("ComposeJson failed: %v\n", err)
		return
	}
	g2, err := ParseJson([]byte(text))
	if err != nil {
		tst.Errorf("ParseJson of composed text failed: %v\n", err)
		return
	}
	for _, id := range g.Ids() {
		chk.Vector(tst, io.Sf("rt v%d", id), 1e-12, g2.Estimate(id), g.Estimate(id))
	}
}

func Test_e2e03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("e2e03. 3D g2o dataset: chi2 decrease")

	g, err := ReadG2o("data/loop3d.g2o")
	if err != nil {
		tst.Errorf("ReadG2o failed: %v\n", err)
		return
	}
	gn, err := opt.NewGaussNewton(g)
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
	}
}
