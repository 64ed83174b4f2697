// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// Plane is defined by a point on the plane and its (need not be unit)
// normal vector.
type Plane struct {
	Origin, Normal [3]float64
}

// PlaneConstraint projects a vertex orthogonally onto a plane; the
// tangential component of the residual is the residual minus its
// plane-normal component (spec §4.2).
type PlaneConstraint struct {
	base
	geom Plane
	n    [3]float64 // cached unit normal
}

// NewPlaneConstraint builds a constraint bound to plane, active by
// default. Returns *GeometricError if plane.Normal is zero-length.
func NewPlaneConstraint(plane Plane) (*PlaneConstraint, error) {
	nn := norm(plane.Normal)
	if nn < 1e-14 {
		return nil, geometricError("plane constraint: normal has zero length")
	}
	c := &PlaneConstraint{geom: plane, n: scale(plane.Normal, 1/nn)}
	c.base = base{active: true, self: c}
	return c, nil
}

// Project implements Constraint.
func (c *PlaneConstraint) Project(point [3]float64) ([3]float64, error) {
	rel := sub(point, c.geom.Origin)
	d := dot(rel, c.n)
	return sub(point, scale(c.n, d)), nil
}

// Tangent implements Constraint.
func (c *PlaneConstraint) Tangent(at, residual [3]float64) [3]float64 {
	d := dot(residual, c.n)
	return sub(residual, scale(c.n, d))
}

// Update implements Constraint.
func (c *PlaneConstraint) Update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error) {
	return c.base.update(location, residual, damping)
}

// SetActive toggles sliding on/off without reallocating the constraint.
func (c *PlaneConstraint) SetActive(active bool) { c.base.active = active }
