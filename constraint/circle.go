// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

// Circle lies in the plane through Center with the given Normal, with the
// stated Radius.
type Circle struct {
	Center, Normal [3]float64
	Radius         float64
}

// CircleConstraint projects a vertex onto the closest point of a circle
// (first onto the circle's plane, then radially onto the circle itself);
// the tangential residual component is along the circle's tangent
// direction at the projected point (spec §4.2).
type CircleConstraint struct {
	base
	geom Circle
	n    [3]float64 // cached unit normal
}

// NewCircleConstraint builds a constraint bound to circle, active by
// default. Returns *GeometricError for a null normal or non-positive
// radius.
func NewCircleConstraint(circle Circle) (*CircleConstraint, error) {
	nn := norm(circle.Normal)
	if nn < 1e-14 {
		return nil, geometricError("circle constraint: normal has zero length")
	}
	if circle.Radius <= 0 {
		return nil, geometricError("circle constraint: radius must be positive, got %v", circle.Radius)
	}
	c := &CircleConstraint{geom: circle, n: scale(circle.Normal, 1/nn)}
	c.base = base{active: true, self: c}
	return c, nil
}

func (c *CircleConstraint) radialDir(point [3]float64) ([3]float64, error) {
	rel := sub(point, c.geom.Center)
	inPlane := sub(rel, scale(c.n, dot(rel, c.n)))
	rn := norm(inPlane)
	if rn < 1e-14 {
		return [3]float64{}, geometricError("circle constraint: point projects onto the circle's centre (degenerate radial direction)")
	}
	return scale(inPlane, 1/rn), nil
}

// Project implements Constraint.
func (c *CircleConstraint) Project(point [3]float64) ([3]float64, error) {
	radial, err := c.radialDir(point)
	if err != nil {
		return point, err
	}
	return add(c.geom.Center, scale(radial, c.geom.Radius)), nil
}

// Tangent implements Constraint.
func (c *CircleConstraint) Tangent(at, residual [3]float64) [3]float64 {
	radial, err := c.radialDir(at)
	if err != nil {
		return [3]float64{}
	}
	tangDir := cross(c.n, radial)
	t := dot(residual, tangDir)
	return scale(tangDir, t)
}

// Update implements Constraint.
func (c *CircleConstraint) Update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error) {
	return c.base.update(location, residual, damping)
}

// SetActive toggles sliding on/off without reallocating the constraint.
func (c *CircleConstraint) SetActive(active bool) { c.base.active = active }
