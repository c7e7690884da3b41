// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opt

import (
	"github.com/cpmech/gslam/graph"
	"github.com/cpmech/gslam/rot"
)

// update applies the solved increments to all free variables. Positions are
// updated additively; planar headings are wrapped into (-π, π]; 3D rotations
// are composed on the manifold, q ← normalize(q·exp(ω)), never by adding
// quaternion components. Fixed variables are untouched
func (o *GaussNewton) update() {
	for _, v := range o.Gra.Vars {
		if v.Fixed {
			continue
		}
		r := v.Start
		switch v.Kind {
		case graph.Vehicle2D:
			v.Est[0] += o.Dx[r]
			v.Est[1] += o.Dx[r+1]
			v.Est[2] = rot.Wrap(v.Est[2] + o.Dx[r+2])
		case graph.Landmark2D:
			v.Est[0] += o.Dx[r]
			v.Est[1] += o.Dx[r+1]
		case graph.Vehicle3D:
			v.Est[0] += o.Dx[r]
			v.Est[1] += o.Dx[r+1]
			v.Est[2] += o.Dx[r+2]
			q := rot.QuatMul(rot.QuatFromSlice(v.Est[3:7]), rot.QuatExp(o.Dx[r+3:r+6]))
			rot.QuatToSlice(rot.QuatNormalize(q), v.Est[3:7])
		case graph.Landmark3D:
			v.Est[0] += o.Dx[r]
			v.Est[1] += o.Dx[r+1]
			v.Est[2] += o.Dx[r+2]
		}
	}
}
