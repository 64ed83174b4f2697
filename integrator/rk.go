// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrator implements the explicit 1/2/4-stage Runge-Kutta
// velocity-increment scheme used by one dynamic-relaxation iteration
// (spec §4.3). It is a pure numerical routine: it knows nothing about
// vertices, edges, or constraints, only about a caller-supplied
// acceleration closure operating on n×3 arrays.
//
// The calling convention (a single exported Step entry point dispatching
// on a stage count, evaluating a caller closure at caller-supplied time
// offsets) mirrors the teacher's ana/colpresfluid.go and
// mdl/retention/model.go's use of github.com/cpmech/gosl/ode's ode.ODE;
// the scheme itself is a small, fixed, non-adaptive one (the time step is
// caller-supplied per spec §1 Non-goals: "no adaptive time-stepping"), so
// it is implemented directly rather than by driving ode.ODE's adaptive
// Radau5/Dopri5 machinery, which would fight the fixed-step contract.
package integrator

import "github.com/BlockResearchGroup/compas-dr/numarr"

// UnsupportedScheme is returned by Step when steps is not one of {1,2,4}.
type UnsupportedScheme struct {
	Steps int
}

func (e *UnsupportedScheme) Error() string {
	return "integrator: unsupported Runge-Kutta step count (must be 1, 2, or 4)"
}

// Acceleration is the caller-supplied closure a(τ, v) → n×3 that the
// integrator evaluates at each RK stage. It is allowed to read and
// temporarily mutate the solver's working position/residual arrays (spec
// §4.3): the solver uses this to recompute residuals under a trial
// velocity at each stage.
type Acceleration func(tau float64, v numarr.Vectors) numarr.Vectors

// Step computes the velocity increment dv for one dynamic-relaxation
// iteration given the time step dt and stage count steps ∈ {1,2,4},
// evaluating accel at the Butcher-style stage times and trial velocities
// of spec §4.3. v0 is the (already damping-scaled) initial velocity.
func Step(v0 numarr.Vectors, dt float64, steps int, accel Acceleration) (numarr.Vectors, error) {
	switch steps {
	case 1:
		return scaleVec(accel(0, v0), dt), nil

	case 2:
		k0 := scaleVec(accel(0, v0), dt)
		k1 := scaleVec(accel(dt, addVec(v0, k0)), dt)
		return k1, nil

	case 4:
		k0 := scaleVec(accel(0, v0), dt)
		k1 := scaleVec(accel(dt/2, addVec(v0, scaleVec(k0, 0.5))), dt)
		k2 := scaleVec(accel(dt/2, addVec(v0, scaleVec(k1, 0.5))), dt)
		k3 := scaleVec(accel(dt, addVec(v0, k2)), dt)
		return combine4(k0, k1, k2, k3), nil

	default:
		return nil, &UnsupportedScheme{Steps: steps}
	}
}

func scaleVec(v numarr.Vectors, s float64) numarr.Vectors {
	out := make(numarr.Vectors, len(v))
	for i, row := range v {
		out[i] = [3]float64{row[0] * s, row[1] * s, row[2] * s}
	}
	return out
}

func addVec(a, b numarr.Vectors) numarr.Vectors {
	out := make(numarr.Vectors, len(a))
	for i := range a {
		out[i] = [3]float64{a[i][0] + b[i][0], a[i][1] + b[i][1], a[i][2] + b[i][2]}
	}
	return out
}

func combine4(k0, k1, k2, k3 numarr.Vectors) numarr.Vectors {
	out := make(numarr.Vectors, len(k0))
	for i := range k0 {
		for d := 0; d < 3; d++ {
			out[i][d] = (k0[i][d] + 2*k1[i][d] + 2*k2[i][d] + k3[i][d]) / 6
		}
	}
	return out
}
