// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package constraint implements the polymorphic vertex-constraint
// projection used by the dynamic-relaxation solver: given a vertex's
// current position and out-of-balance residual, project the position onto
// a host geometric locus and decompose the residual into normal and
// tangential parts, damping the tangential component.
//
// The source this was distilled from (compas_dr.constraints) mutates
// scratch fields (location, residual, tangent) on the constraint object as
// a side channel between solver and constraint. Per spec §9's design
// note, this port re-architects that as explicit arguments/returns:
// Update takes (location, residual, damping) and returns the projected
// pair, so a Constraint value carries no solver-owned mutable state and is
// safe to share by reference across many vertices without becoming a
// data race even under future concurrent use.
package constraint

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// GeometricError is returned when projection onto a degenerate locus is
// attempted (zero-length line, null plane normal, degenerate NURBS
// parameterisation).
type GeometricError struct {
	msg string
}

func (e *GeometricError) Error() string { return e.msg }

func geometricError(format string, args ...interface{}) error {
	return &GeometricError{msg: chk.Err(format, args...).Error()}
}

// Constraint is the capability set every variant implements (spec §4.2).
type Constraint interface {
	// Project returns the closest point on the host locus to point.
	Project(point [3]float64) ([3]float64, error)

	// Tangent returns the component of residual that is tangential to
	// the locus at point (zero for point-like constraints).
	Tangent(at, residual [3]float64) [3]float64

	// Update projects location onto the locus and damps the tangential
	// component of residual, returning the new (location, residual)
	// pair. damping c gives the tangential scale factor (1-c).
	Update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error)

	// Active reports whether this constraint currently projects at all.
	// A constraint toggled inactive behaves as a pass-through (location
	// and residual are returned unchanged), generalising the boolean
	// SLIDE toggle seen in the original's spokewheel/arch examples
	// (docs/examples/example_spokewheel.py) to every variant.
	Active() bool
}

// base centralises the Active flag and the standard Update() composition
// every variant shares: project, then damp the tangential residual by
// (1-c). Embedding base means each variant need only implement Project
// and Tangent.
type base struct {
	active bool
	self   interface {
		Project(point [3]float64) ([3]float64, error)
		Tangent(at, residual [3]float64) [3]float64
	}
}

func (b *base) Active() bool { return b.active }

func (b *base) update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error) {
	if !b.active {
		return location, residual, nil
	}
	proj, err := b.self.Project(location)
	if err != nil {
		return location, residual, err
	}
	tang := b.self.Tangent(proj, residual)
	newResidual := scale(tang, 1-damping)
	return proj, newResidual, nil
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

// dot, norm, and cross delegate to the teacher's own 3-vector helpers
// (utl.Dot3d/utl.Cross3d, la.VecNorm — see ele/solid/beam.go's e0/e1/e2
// frame construction) rather than hand-rolling the arithmetic.
func dot(a, b [3]float64) float64 {
	return utl.Dot3d(a[:], b[:])
}

func norm(a [3]float64) float64 {
	return la.VecNorm(a[:])
}

func cross(a, b [3]float64) [3]float64 {
	var out [3]float64
	utl.Cross3d(out[:], a[:], b[:])
	return out
}
