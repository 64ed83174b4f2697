// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/utl"
)

// surfaceRefineRounds is the number of alternating u/v golden-section
// passes performed when closest-point-projecting onto a NURBS surface.
const surfaceRefineRounds = 6

// SurfaceConstraint projects a vertex onto the closest point of a NURBS
// surface (gosl/gm.Nurbs with two parametric dimensions); the tangential
// residual component is the residual minus its surface-normal component
// at the projected (u,v) (spec §4.2).
type SurfaceConstraint struct {
	base
	nurbs      *gm.Nurbs
	uMin, uMax float64
	vMin, vMax float64
}

// NewSurfaceConstraint builds a constraint bound to a NURBS surface of the
// given degrees, a row-major [nu][nv] control grid, optional weights, and
// the two knot vectors.
func NewSurfaceConstraint(degU, degV int, ctrl [][][3]float64, weights [][]float64, knotsU, knotsV []float64) (*SurfaceConstraint, error) {
	nu := len(ctrl)
	if nu == 0 || len(ctrl[0]) == 0 {
		return nil, geometricError("surface constraint: empty control grid")
	}
	nv := len(ctrl[0])
	if nu <= degU || nv <= degV {
		return nil, geometricError("surface constraint: control grid %dx%d too small for degrees (%d,%d)", nu, nv, degU, degV)
	}
	if weights != nil && len(weights) != nu {
		return nil, geometricError("surface constraint: need %d weight rows, got %d", nu, len(weights))
	}
	for i := 0; i < nu; i++ {
		if len(ctrl[i]) != nv || (weights != nil && len(weights[i]) != nv) {
			return nil, geometricError("surface constraint: row %d of the control grid or weights does not have %d entries", i, nv)
		}
	}
	if len(knotsU) != nu+degU+1 || len(knotsV) != nv+degV+1 {
		return nil, geometricError("surface constraint: need %d u-knots and %d v-knots, got %d and %d", nu+degU+1, nv+degV+1, len(knotsU), len(knotsV))
	}

	verts := make([][]float64, 0, nu*nv)
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			w := 1.0
			if weights != nil {
				w = weights[i][j]
			}
			p := ctrl[i][j]
			verts = append(verts, []float64{p[0], p[1], p[2], w})
		}
	}

	nurbs := new(gm.Nurbs)
	nurbs.Init(2, []int{degU, degV}, [][]float64{knotsU, knotsV})
	nurbs.SetControl(verts, utl.IntRange(len(verts)))

	c := &SurfaceConstraint{
		nurbs: nurbs,
		uMin:  knotsU[degU], uMax: knotsU[len(knotsU)-degU-1],
		vMin: knotsV[degV], vMax: knotsV[len(knotsV)-degV-1],
	}
	c.base = base{active: true, self: c}
	return c, nil
}

func (c *SurfaceConstraint) eval(u, v float64) [3]float64 {
	x := make([]float64, 3)
	c.nurbs.Point(x, []float64{u, v}, 3)
	return [3]float64{x[0], x[1], x[2]}
}

func goldenMinimize(lo, hi float64, f func(float64) float64) float64 {
	const gr = 0.6180339887498949
	for i := 0; i < refineIterations; i++ {
		m1 := hi - (hi-lo)*gr
		m2 := lo + (hi-lo)*gr
		if f(m1) < f(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return 0.5 * (lo + hi)
}

// closestParams performs alternating-direction golden-section search: fix
// v and optimise u, then fix u and optimise v, repeated a few rounds. This
// is a coordinate-descent approximation to the true closest-point
// projection, adequate for the mildly-curved architectural surfaces the
// solver targets (spec scenario 4's NURBS arch).
func (c *SurfaceConstraint) closestParams(point [3]float64) (float64, float64, error) {
	if c.uMax-c.uMin < 1e-14 || c.vMax-c.vMin < 1e-14 {
		return 0, 0, geometricError("surface constraint: degenerate parameter domain")
	}
	sqDist := func(u, v float64) float64 {
		p := c.eval(u, v)
		d := sub(p, point)
		return dot(d, d)
	}

	u, v := 0.5*(c.uMin+c.uMax), 0.5*(c.vMin+c.vMax)
	for round := 0; round < surfaceRefineRounds; round++ {
		vv := v
		u = goldenMinimize(c.uMin, c.uMax, func(uu float64) float64 { return sqDist(uu, vv) })
		uu := u
		v = goldenMinimize(c.vMin, c.vMax, func(vv float64) float64 { return sqDist(uu, vv) })
	}
	return u, v, nil
}

// normalAt estimates the unit surface normal at (u,v) via finite
// differences of the two partial derivatives.
func (c *SurfaceConstraint) normalAt(u, v float64) [3]float64 {
	const h = 1e-5
	u0, u1 := clamp(u-h, c.uMin, c.uMax), clamp(u+h, c.uMin, c.uMax)
	v0, v1 := clamp(v-h, c.vMin, c.vMax), clamp(v+h, c.vMin, c.vMax)
	du := sub(c.eval(u1, v), c.eval(u0, v))
	dv := sub(c.eval(u, v1), c.eval(u, v0))
	n := cross(du, dv)
	nn := norm(n)
	if nn < 1e-14 {
		return [3]float64{}
	}
	return scale(n, 1/nn)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Project implements Constraint.
func (c *SurfaceConstraint) Project(point [3]float64) ([3]float64, error) {
	u, v, err := c.closestParams(point)
	if err != nil {
		return point, err
	}
	return c.eval(u, v), nil
}

// Tangent implements Constraint.
func (c *SurfaceConstraint) Tangent(at, residual [3]float64) [3]float64 {
	u, v, err := c.closestParams(at)
	if err != nil {
		return [3]float64{}
	}
	n := c.normalAt(u, v)
	d := dot(residual, n)
	return sub(residual, scale(n, d))
}

// Update implements Constraint.
func (c *SurfaceConstraint) Update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error) {
	return c.base.update(location, residual, damping)
}

// SetActive toggles sliding on/off without reallocating the constraint.
func (c *SurfaceConstraint) SetActive(active bool) { c.base.active = active }
