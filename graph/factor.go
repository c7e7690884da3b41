// Copyright 2016 The Gslam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// FacKind indicates the type of a factor (measurement)
type FacKind int

const (
	// Position2D is a prior on a 2D vehicle pose
	Position2D FacKind = iota

	// Odometry2D is a relative pose between two 2D vehicles, in the source frame
	Odometry2D

	// Observation2D is a landmark position observed in a 2D vehicle's frame
	Observation2D

	// Position3D is a prior on a 3D vehicle pose
	Position3D

	// Odometry3D is a relative pose between two 3D vehicles, in the source frame
	Odometry3D

	// Observation3D is a landmark position observed in a 3D vehicle's frame
	Observation3D
)

// ConstraintDim returns the length of the constraint vector z
func (o FacKind) ConstraintDim() int {
	switch o {
	case Position2D, Odometry2D:
		return 3
	case Observation2D:
		return 2
	case Position3D, Odometry3D:
		return 7
	}
	return 3 // Observation3D
}

// ErrorDim returns the length of the error vector and the dimension of the
// information matrix. For 3D poses this is the local manifold dimension (6),
// not the storage width (7)
func (o FacKind) ErrorDim() int {
	switch o {
	case Position2D, Odometry2D:
		return 3
	case Observation2D:
		return 2
	case Position3D, Odometry3D:
		return 6
	}
	return 3 // Observation3D
}

// Unary tells whether the factor has a single endpoint
func (o FacKind) Unary() bool {
	return o == Position2D || o == Position3D
}

// SrcKind returns the variable kind required at the source endpoint
func (o FacKind) SrcKind() VarKind {
	switch o {
	case Position2D, Odometry2D, Observation2D:
		return Vehicle2D
	}
	return Vehicle3D
}

// TgtKind returns the variable kind required at the target endpoint
func (o FacKind) TgtKind() VarKind {
	switch o {
	case Odometry2D:
		return Vehicle2D
	case Observation2D:
		return Landmark2D
	case Odometry3D:
		return Vehicle3D
	}
	return Landmark3D // Observation3D
}

func (o FacKind) String() string {
	switch o {
	case Position2D:
		return "Position2D"
	case Odometry2D:
		return "Odometry2D"
	case Observation2D:
		return "Observation2D"
	case Position3D:
		return "Position3D"
	case Odometry3D:
		return "Odometry3D"
	}
	return "Observation3D"
}

// Factor holds one measurement: a constraint vector, a symmetric positive
// definite information matrix and one or two variable endpoints
type Factor struct {
	Kind  FacKind     // factor kind
	Z     []float64   // constraint; length == Kind.ConstraintDim()
	Omega [][]float64 // information matrix; Kind.ErrorDim() square, full symmetric form
	Src   int         // source variable id
	Tgt   int         // target variable id; -1 for unary factors
}
