// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package drsolver implements the dynamic-relaxation orchestrator (spec
// §4.4): the convergence loop that recomputes force densities, assembles
// the stiffness-like operator, integrates velocities with the RK scheme,
// runs constraint projection, checks termination, and emits a ResultData.
package drsolver

import "github.com/BlockResearchGroup/compas-dr/numarr"

// Callback is the optional per-iteration observer. ctx is the caller's
// opaque context, threaded through unchanged (the Go analogue of the
// original's callback_args; see SPEC_FULL.md's SUPPLEMENTED FEATURES).
// A callback may return a non-nil error to request early termination;
// Solve then returns the ResultData as of this iteration alongside an
// *Aborted wrapping that error.
type Callback func(k int, x numarr.Vectors, crit1, crit2 float64, ctx interface{}) error

// Options configures one Solve call (spec §4.4's option table). The JSON
// tags follow the teacher's inp.SolverData convention (inp/sim.go) so
// Options can be loaded from a config file the same way, even though
// config-file loading itself is ambient rather than a named module.
type Options struct {
	Kmax     int     `json:"kmax"`     // maximum iterations
	Dt       float64 `json:"dt"`       // time step
	Tol1     float64 `json:"tol1"`     // tolerance on residual-force norm over free vertices
	Tol2     float64 `json:"tol2"`     // tolerance on displacement norm over free vertices
	C        float64 `json:"c"`        // damping parameter
	RkSteps  int     `json:"rksteps"`  // Runge-Kutta stage count ∈ {1,2,4}
	Verbose  bool    `json:"verbose"`  // trace iterations via gosl/io
	Callback Callback `json:"-"`       // optional per-iteration observer
	Ctx      interface{} `json:"-"`    // opaque context passed to Callback
}

// DefaultOptions returns the option defaults named in spec §4.4's table.
func DefaultOptions() Options {
	return Options{
		Kmax:    10000,
		Dt:      1.0,
		Tol1:    1e-3,
		Tol2:    1e-6,
		C:       0.1,
		RkSteps: 2,
	}
}

// coeff holds the damping-derived coefficients a = (1-c/2)/(1+c/2) and
// b = (1+a)/2 (spec §4.4), named after the original's Coeff helper
// (dr_constrained_numpy.py).
type coeff struct {
	a, b float64
}

func newCoeff(c float64) coeff {
	a := (1 - c*0.5) / (1 + c*0.5)
	return coeff{a: a, b: 0.5 * (1 + a)}
}
