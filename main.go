// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"path/filepath"
	"strings"

	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/inp"
	"github.com/cpmech/gslam/opt"
	"github.com/cpmech/gslam/out"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nGslam -- Graph SLAM back-end in Go\n\n")

	// input data: gslam input.{g2o,json} [niter] [output]
	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a filename. Ex.: mit.g2o")
	}
	fnamepath := flag.Arg(0)
	niter := 10
	if len(flag.Args()) > 1 {
		niter = io.Atoi(flag.Arg(1))
	}
	fnkey := io.FnKey(fnamepath)
	ext := io.FnExt(fnamepath)
	outpath := fnkey + "_optimized" + ext
	if len(flag.Args()) > 2 {
		outpath = flag.Arg(2)
	}

	// parse
	var g *graph.Graph
	var err error
	switch strings.ToLower(ext) {
	case ".g2o":
		g, err = inp.ReadG2o(fnamepath)
	case ".json":
		g, err = inp.ReadJson(fnamepath)
	default:
		chk.Panic("cannot handle file extension %q", ext)
	}
	if err != nil {
		chk.Panic("cannot parse %s:\n%v", fnamepath, err)
	}
	io.Pf("> %d variables and %d factors read\n", len(g.Vars), len(g.Facs))

	// optimize
	gn, err := opt.NewGaussNewton(g)
	if err != nil {
		chk.Panic("cannot allocate optimizer:\n%v", err)
	}
	defer gn.Free()
	gn.Verbose = true
	io.Pf("> initial chi2 = %.8e\n", gn.Chi2())
	err = gn.Run(niter)
	if err != nil {
		chk.Panic("optimization failed:\n%v", err)
	}

	// compose
	dir, fn := filepath.Split(outpath)
	if dir == "" {
		dir = "."
	}
	switch strings.ToLower(io.FnExt(outpath)) {
	case ".g2o":
		err = out.WriteG2o(g, dir, fn)
	default:
		err = out.WriteJson(g, dir, fn)
	}
	if err != nil {
		chk.Panic("cannot write %s:\n%v", outpath, err)
	}
	io.PfGreen("> Success\n")
}
