// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/BlockResearchGroup/compas-dr/numarr"
)

// constant acceleration a(τ,v) = (1,0,0): exact solution dv = dt regardless
// of stage count, since the scheme is exact for constant integrands.
func constAccel(tau float64, v numarr.Vectors) numarr.Vectors {
	out := make(numarr.Vectors, len(v))
	for i := range out {
		out[i] = [3]float64{1, 0, 0}
	}
	return out
}

func TestStepConstantAccelerationAllSchemes(tst *testing.T) {
	chk.PrintTitle("Step. constant acceleration is exact for every scheme")

	v0 := numarr.Vectors{{0, 0, 0}}
	dt := 0.3
	for _, steps := range []int{1, 2, 4} {
		dv, err := Step(v0, dt, steps, constAccel)
		if err != nil {
			tst.Errorf("steps=%d: unexpected error: %v", steps, err)
			continue
		}
		chk.Float64(tst, "dv.x", 1e-14, dv[0][0], dt)
	}
}

func TestStepUnsupportedScheme(tst *testing.T) {
	chk.PrintTitle("Step. unsupported stage count")

	v0 := numarr.Vectors{{0, 0, 0}}
	_, err := Step(v0, 0.1, 3, constAccel)
	if err == nil {
		tst.Errorf("expected UnsupportedScheme error")
	}
	if _, ok := err.(*UnsupportedScheme); !ok {
		tst.Errorf("expected *UnsupportedScheme, got %T", err)
	}
}

// linear-in-time acceleration a(τ,v) = (τ,0,0): exact integral over [0,dt]
// is dt²/2. The 4-stage scheme reproduces this exactly. The 2-stage scheme
// keeps only its second stage, evaluated at τ=dt, so it returns dt·dt; the
// 1-stage (explicit Euler) scheme evaluates at τ=0 only and returns 0.
func linearAccel(tau float64, v numarr.Vectors) numarr.Vectors {
	out := make(numarr.Vectors, len(v))
	for i := range out {
		out[i] = [3]float64{tau, 0, 0}
	}
	return out
}

func TestStepLinearAccelerationStageTimes(tst *testing.T) {
	chk.PrintTitle("Step. linear acceleration: RK4 exact, RK2 samples tau=dt, RK1 samples tau=0")

	v0 := numarr.Vectors{{0, 0, 0}}
	dt := 0.4
	want := dt * dt / 2

	dv2, err := Step(v0, dt, 2, linearAccel)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "dv2.x", 1e-14, dv2[0][0], dt*dt)

	dv4, err := Step(v0, dt, 4, linearAccel)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "dv4.x", 1e-14, dv4[0][0], want)

	dv1, err := Step(v0, dt, 1, linearAccel)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if dv1[0][0] != 0 {
		tst.Errorf("expected RK1 to evaluate acceleration at tau=0 only, got %v", dv1[0][0])
	}
}
