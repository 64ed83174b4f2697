// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drsolver

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/BlockResearchGroup/compas-dr/constraint"
	"github.com/BlockResearchGroup/compas-dr/indata"
	"github.com/BlockResearchGroup/compas-dr/integrator"
	"github.com/BlockResearchGroup/compas-dr/numarr"
)

// State is the solver's deterministic state machine (spec §4.4):
// Initialized -> Iterating -> Converged | Exhausted | Failed.
type State int

const (
	Initialized State = iota
	Iterating
	Converged
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "Initialized"
	case Iterating:
		return "Iterating"
	case Converged:
		return "Converged"
	case Exhausted:
		return "Exhausted"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Solve runs the dynamic-relaxation loop to equilibrium (spec §4.4).
// constraints, if non-nil, must have one entry per vertex; a nil entry
// means "no constraint on this vertex". A nil or all-nil constraints
// slice recovers the unconstrained solver's behaviour exactly (spec §8's
// default-options-parity property).
func Solve(data *indata.InputData, constraints []constraint.Constraint, opts Options) (*ResultData, error) {
	opts = opts.withDefaults()

	if opts.RkSteps != 1 && opts.RkSteps != 2 && opts.RkSteps != 4 {
		return nil, invalidInput("rk_steps must be one of {1,2,4}, got %d", opts.RkSteps)
	}
	if opts.Kmax < 1 {
		return nil, invalidInput("kmax must be >= 1, got %d", opts.Kmax)
	}
	n := data.N()
	if constraints != nil && len(constraints) != n {
		return nil, invalidInput("constraints must have %d entries (one per vertex) or be nil, got %d", n, len(constraints))
	}

	cf := newCoeff(opts.C)
	conn := data.Connectivity()
	free := data.Free()

	qpre := data.Qpre()
	fpre := data.Fpre()
	lpre := data.Lpre()
	linit := data.EffectiveLinit()
	EA := data.EA()

	x := data.Vertices()
	loads := data.Loads()
	q := data.Q0()
	l := data.L0()
	f := mulScalars(q, l)
	v := data.V0()
	r := data.R0()

	for k := 0; k < opts.Kmax; k++ {

		qFpre, qLpre, qEA := forceDensityTerms(fpre, lpre, linit, EA, f, l)
		for e := range q {
			q[e] = qpre[e] + qFpre[e] + qLpre[e] + qEA[e]
		}

		massVertex := lumpedMass(conn, qpre, qFpre, qLpre, EA, linit, opts.Dt)

		x0 := x.Clone()
		v0 := scaleVectors(v, cf.a)

		accel := func(tau float64, vTrial numarr.Vectors) numarr.Vectors {
			dx := scaleVectors(vTrial, tau)
			for _, i := range free {
				x[i] = [3]float64{x0[i][0] + dx[i][0], x0[i][1] + dx[i][1], x0[i][2] + dx[i][2]}
			}
			u := conn.Apply(x)
			internal := conn.ApplyTransposeWeighted(q, u)
			res := subVectors(loads, internal)
			return scaleMassWeighted(res, massVertex, cf.b)
		}

		dv, err := integrator.Step(v0, opts.Dt, opts.RkSteps, accel)
		if err != nil {
			return nil, err
		}

		for _, i := range free {
			v[i] = [3]float64{v0[i][0] + dv[i][0], v0[i][1] + dv[i][1], v0[i][2] + dv[i][2]}
		}
		dx := scaleVectors(v, opts.Dt)
		for _, i := range free {
			x[i] = [3]float64{x0[i][0] + dx[i][0], x0[i][1] + dx[i][1], x0[i][2] + dx[i][2]}
		}

		u := conn.Apply(x)
		l = numarr.RowNorm(u)
		f = mulScalars(q, l)
		r = subVectors(loads, conn.ApplyTransposeWeighted(q, u))

		if constraints != nil {
			for i, c := range constraints {
				if c == nil {
					continue
				}
				loc, res, err := c.Update(x[i], r[i], opts.C)
				if err != nil {
					return nil, &GeometricError{Vertex: i, Err: err}
				}
				x[i] = loc
				r[i] = res
			}
		}

		if err := checkFinite(k, x, v, r, l); err != nil {
			return nil, err
		}

		crit1 := normAt(r, free)
		crit2 := normAt(dx, free)

		if opts.Verbose {
			io.Pf(">> iter %d: crit1=%v crit2=%v\n", k, crit1, crit2)
		}

		if opts.Callback != nil {
			if cbErr := opts.Callback(k, x, crit1, crit2, opts.Ctx); cbErr != nil {
				// The callback requested early termination: the
				// best-effort ResultData as of this iteration is
				// still returned (spec §7), alongside an *Aborted
				// so errors.As can distinguish this from ordinary
				// convergence/exhaustion.
				return newResultData(x, q, f, l, r), &Aborted{Iteration: k, Reason: cbErr}
			}
		}

		if crit1 < opts.Tol1 || crit2 < opts.Tol2 || k+1 == opts.Kmax {
			break
		}
	}

	return newResultData(x, q, f, l, r), nil
}

// withDefaults fills zero-valued numeric fields with spec §4.4's table
// defaults, the idiomatic Go options-struct convention: a caller builds a
// partial Options{} literal for the fields they care about and gets the
// documented defaults for the rest.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Kmax == 0 {
		o.Kmax = d.Kmax
	}
	if o.Dt == 0 {
		o.Dt = d.Dt
	}
	if o.Tol1 == 0 {
		o.Tol1 = d.Tol1
	}
	if o.Tol2 == 0 {
		o.Tol2 = d.Tol2
	}
	if o.C == 0 {
		o.C = d.C
	}
	if o.RkSteps == 0 {
		o.RkSteps = d.RkSteps
	}
	return o
}

func forceDensityTerms(fpre, lpre, linit, EA, f, l numarr.Scalars) (qFpre, qLpre, qEA numarr.Scalars) {
	m := len(fpre)
	qFpre = numarr.NewScalars(m)
	qLpre = numarr.NewScalars(m)
	qEA = numarr.NewScalars(m)
	for e := 0; e < m; e++ {
		qFpre[e] = fpre[e] / l[e]

		if lpre[e] == 0 {
			qLpre[e] = 0
		} else {
			qLpre[e] = f[e] / lpre[e]
		}

		if linit[e] == 0 {
			qEA[e] = 0
		} else {
			qEA[e] = EA[e] * (l[e] - linit[e]) / (linit[e] * l[e])
		}
	}
	return
}

func lumpedMass(conn *numarr.Connectivity, qpre, qFpre, qLpre, EA, linit numarr.Scalars, dt float64) numarr.Scalars {
	m := len(qpre)
	s := numarr.NewScalars(m)
	for e := 0; e < m; e++ {
		eaTerm := 0.0
		if linit[e] != 0 {
			eaTerm = EA[e] / linit[e]
		}
		s[e] = qpre[e] + qFpre[e] + qLpre[e] + eaTerm
	}
	vertexSum := conn.SquaredTransposeWeighted(s)
	out := numarr.NewScalars(len(vertexSum))
	factor := 0.5 * dt * dt
	for i := range out {
		out[i] = factor * vertexSum[i]
	}
	return out
}

func mulScalars(a, b numarr.Scalars) numarr.Scalars {
	out := numarr.NewScalars(len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out
}

func scaleVectors(v numarr.Vectors, s float64) numarr.Vectors {
	out := make(numarr.Vectors, len(v))
	for i, row := range v {
		out[i] = [3]float64{row[0] * s, row[1] * s, row[2] * s}
	}
	return out
}

func subVectors(a, b numarr.Vectors) numarr.Vectors {
	out := make(numarr.Vectors, len(a))
	for i := range a {
		out[i] = [3]float64{a[i][0] - b[i][0], a[i][1] - b[i][1], a[i][2] - b[i][2]}
	}
	return out
}

// scaleMassWeighted returns b·r / mass, element-wise per vertex, with the
// same scalar mass[i] dividing all three components of row i (spec §4.4
// step 4: "b · r / mass").
func scaleMassWeighted(r numarr.Vectors, mass numarr.Scalars, b float64) numarr.Vectors {
	out := make(numarr.Vectors, len(r))
	for i, row := range r {
		out[i] = [3]float64{b * row[0] / mass[i], b * row[1] / mass[i], b * row[2] / mass[i]}
	}
	return out
}

// normAt flattens the rows at idx and delegates to la.VecNorm, the
// teacher's own vector-norm primitive (ele/solid/beam.go's la.VecNorm(o.e0)).
func normAt(v numarr.Vectors, idx []int) float64 {
	flat := make([]float64, 0, 3*len(idx))
	for _, i := range idx {
		row := v[i]
		flat = append(flat, row[0], row[1], row[2])
	}
	return la.VecNorm(flat)
}

func checkFinite(k int, x, v, r numarr.Vectors, l numarr.Scalars) error {
	for i, row := range x {
		if !finite3(row) {
			return numericBlowup(k, "non-finite position at vertex %d: %v", i, row)
		}
	}
	for i, row := range v {
		if !finite3(row) {
			return numericBlowup(k, "non-finite velocity at vertex %d: %v", i, row)
		}
	}
	for i, row := range r {
		if !finite3(row) {
			return numericBlowup(k, "non-finite residual at vertex %d: %v", i, row)
		}
	}
	for e, val := range l {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return numericBlowup(k, "non-finite length at edge %d: %v", e, val)
		}
	}
	return nil
}

func finite3(row [3]float64) bool {
	for _, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
