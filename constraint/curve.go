// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/utl"
)

// samplesPerSpan controls the resolution of the initial bracketing scan
// before golden-section refinement narrows in on the closest parameter.
const samplesPerSpan = 16

// refineIterations is the number of golden-section steps applied after
// bracketing; each step shrinks the parametric search interval to about
// 0.618 of its previous width.
const refineIterations = 40

// CurveConstraint projects a vertex onto the closest point of a NURBS
// curve (gosl/gm.Nurbs with one parametric dimension, the same type the
// teacher's shape-function package stores at shp.Shape.Nurbs and renders
// with gm.PlotNurbs — see out/out.go, tests/solid/nurbs_test.go); the
// tangential residual component is along the unit tangent at the
// projected parameter (spec §4.2).
type CurveConstraint struct {
	base
	nurbs      *gm.Nurbs
	uMin, uMax float64
}

// NewCurveConstraint builds a constraint bound to a NURBS curve of the
// given degree, control points, weights, and knot vector. Returns
// *GeometricError if the curve cannot be constructed (e.g. too few
// control points for the stated degree).
func NewCurveConstraint(degree int, ctrl [][3]float64, weights []float64, knots []float64) (*CurveConstraint, error) {
	if len(ctrl) <= degree {
		return nil, geometricError("curve constraint: need more than %d control points for degree %d, got %d", degree, degree, len(ctrl))
	}
	verts := make([][]float64, len(ctrl))
	for i, p := range ctrl {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		verts[i] = []float64{p[0], p[1], p[2], w}
	}
	nurbs := new(gm.Nurbs)
	nurbs.Init(1, []int{degree}, [][]float64{knots})
	nurbs.SetControl(verts, utl.IntRange(len(verts)))

	c := &CurveConstraint{nurbs: nurbs, uMin: knots[degree], uMax: knots[len(knots)-degree-1]}
	c.base = base{active: true, self: c}
	return c, nil
}

func (c *CurveConstraint) eval(u float64) [3]float64 {
	x := make([]float64, 3)
	c.nurbs.Point(x, []float64{u}, 3)
	return [3]float64{x[0], x[1], x[2]}
}

// closestParam performs a coarse bracketing scan followed by
// golden-section refinement on the squared distance to point, over
// [c.uMin, c.uMax]. Returns GeometricError if the curve degenerates to a
// single point (uMin == uMax).
func (c *CurveConstraint) closestParam(point [3]float64) (float64, error) {
	if c.uMax-c.uMin < 1e-14 {
		return 0, geometricError("curve constraint: degenerate parameter domain [%v,%v]", c.uMin, c.uMax)
	}
	sqDist := func(u float64) float64 {
		p := c.eval(u)
		d := sub(p, point)
		return dot(d, d)
	}

	best, bestVal := c.uMin, sqDist(c.uMin)
	n := samplesPerSpan * 4
	for i := 1; i <= n; i++ {
		u := c.uMin + (c.uMax-c.uMin)*float64(i)/float64(n)
		if v := sqDist(u); v < bestVal {
			best, bestVal = u, v
		}
	}

	step := (c.uMax - c.uMin) / float64(n)
	lo, hi := best-step, best+step
	if lo < c.uMin {
		lo = c.uMin
	}
	if hi > c.uMax {
		hi = c.uMax
	}
	const gr = 0.6180339887498949
	for i := 0; i < refineIterations; i++ {
		m1 := hi - (hi-lo)*gr
		m2 := lo + (hi-lo)*gr
		if sqDist(m1) < sqDist(m2) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return 0.5 * (lo + hi), nil
}

// Project implements Constraint.
func (c *CurveConstraint) Project(point [3]float64) ([3]float64, error) {
	u, err := c.closestParam(point)
	if err != nil {
		return point, err
	}
	return c.eval(u), nil
}

// Tangent implements Constraint.
func (c *CurveConstraint) Tangent(at, residual [3]float64) [3]float64 {
	u, err := c.closestParam(at)
	if err != nil {
		return [3]float64{}
	}
	const h = 1e-5
	u0, u1 := u-h, u+h
	if u0 < c.uMin {
		u0 = c.uMin
	}
	if u1 > c.uMax {
		u1 = c.uMax
	}
	if u1-u0 < 1e-12 {
		return [3]float64{}
	}
	diff := sub(c.eval(u1), c.eval(u0))
	n := norm(diff)
	if n < 1e-14 {
		return [3]float64{}
	}
	tangDir := scale(diff, 1/n)
	return scale(tangDir, dot(residual, tangDir))
}

// Update implements Constraint.
func (c *CurveConstraint) Update(location, residual [3]float64, damping float64) ([3]float64, [3]float64, error) {
	return c.base.update(location, residual, damping)
}

// SetActive toggles sliding on/off without reallocating the constraint.
func (c *CurveConstraint) SetActive(active bool) { c.base.active = active }
