// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// Line is a parameterised line through Origin along Direction (need not be
// unit length; normalised internally).
type Line struct {
	Origin, Direction [3]float64
}

// LineConstraint projects a vertex orthogonally onto a line; the
// tangential component of the residual is the component along the line
// direction (spec §4.2).
type LineConstraint struct {
	base
	geom Line
	dir  [3]float64 // cached unit direction
}

// NewLineConstraint builds a constraint bound to line, active by default.
// Returns *GeometricError if line.Direction is (numerically) zero-length.
func NewLineConstraint(line Line) (*LineConstraint, error) {
	d := norm(line.Direction)
	if d < 1e-14 {
		return nil, geometricError("line constraint: direction has zero length")
	}
	c := &LineConstraint{geom: line, dir: scale(line.Direction, 1/d)}
	c.base = base{active: true, self: c}
	return c, nil
}

// Project implements Constraint.
func (c *LineConstraint) Project(point [3]float64) ([3]float64, error) {
	rel := sub(point, c.geom.Origin)
	t := dot(rel, c.dir)
	return add(c.geom.Origin, scale(c.dir, t)), nil
}

// Tangent implements Constraint.
func (c *LineConstraint) Tangent(at, residual [3]float64) [3]float64 {
	t := dot(residual, c.dir)
	return scale(c.dir, t)
}

// Update implements Constraint.
func (c *LineConstraint) Update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error) {
	return c.base.update(location, residual, damping)
}

// SetActive toggles sliding on/off without reallocating the constraint,
// generalising the original examples' boolean SLIDE toggle (see
// SPEC_FULL.md's SUPPLEMENTED FEATURES).
func (c *LineConstraint) SetActive(active bool) { c.base.active = active }
