// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drsolver

import "github.com/cpmech/gosl/chk"

// InvalidInput is raised synchronously at the call boundary, before
// iteration begins, for malformed options (e.g. a non-{1,2,4} RK step
// count or a constraints slice of the wrong length) — spec §7.
type InvalidInput struct {
	msg string
}

func (e *InvalidInput) Error() string { return e.msg }

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInput{msg: chk.Err(format, args...).Error()}
}

// NumericBlowup reports a non-finite value encountered in positions,
// velocities, or lengths after a full iteration update (excluding the
// deliberately-scrubbed q_lpre/q_EA slots) — spec §4.4, §7.
type NumericBlowup struct {
	Iteration int
	msg       string
}

func (e *NumericBlowup) Error() string { return e.msg }

func numericBlowup(iteration int, format string, args ...interface{}) error {
	return &NumericBlowup{
		Iteration: iteration,
		msg:       chk.Err("iteration %d: "+format, append([]interface{}{iteration}, args...)...).Error(),
	}
}

// Aborted is returned alongside a non-nil ResultData when a callback
// requests early termination: Solve still returns the best-effort
// ResultData reflecting the state at the last completed iteration (spec
// §7), but the accompanying error is an *Aborted rather than nil, so a
// caller can use errors.As to distinguish an abort from ordinary
// convergence/exhaustion (which return a nil error).
type Aborted struct {
	Iteration int
	Reason    error
}

func (e *Aborted) Error() string {
	if e.Reason != nil {
		return chk.Err("aborted at iteration %d: %v", e.Iteration, e.Reason).Error()
	}
	return chk.Err("aborted at iteration %d", e.Iteration).Error()
}

func (e *Aborted) Unwrap() error { return e.Reason }

// GeometricError wraps a constraint projection failure during step 7 of
// the iteration (spec §4.4) with the offending vertex index attached; Err
// holds the error the constraint returned (a *constraint.GeometricError
// for a degenerate locus) and is reachable through Unwrap.
type GeometricError struct {
	Vertex int
	Err    error
}

func (e *GeometricError) Error() string {
	return chk.Err("vertex %d: %v", e.Vertex, e.Err).Error()
}

func (e *GeometricError) Unwrap() error { return e.Err }
