// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestLineConstraintProjectsOrthogonally(tst *testing.T) {
	chk.PrintTitle("LineConstraint. project off-axis point onto x-axis")

	line, err := NewLineConstraint(Line{Origin: [3]float64{0, 0, 0}, Direction: [3]float64{1, 0, 0}})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	p, err := line.Project([3]float64{5, 3, 0})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "px", 1e-14, p[0], 5)
	chk.Float64(tst, "py", 1e-14, p[1], 0)
	chk.Float64(tst, "pz", 1e-14, p[2], 0)
}

func TestLineConstraintZeroDirectionFails(tst *testing.T) {
	chk.PrintTitle("LineConstraint. zero-length direction is a GeometricError")

	_, err := NewLineConstraint(Line{Origin: [3]float64{0, 0, 0}, Direction: [3]float64{0, 0, 0}})
	if err == nil {
		tst.Errorf("expected GeometricError")
	}
	if _, ok := err.(*GeometricError); !ok {
		tst.Errorf("expected *GeometricError, got %T", err)
	}
}

func TestLineConstraintUpdateDampsTangent(tst *testing.T) {
	chk.PrintTitle("LineConstraint.Update. damps tangential residual by (1-c)")

	line, _ := NewLineConstraint(Line{Origin: [3]float64{0, 0, 0}, Direction: [3]float64{1, 0, 0}})
	loc, res, err := line.Update([3]float64{2, 1, 0}, [3]float64{4, 7, 0}, 0.25)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "loc.x", 1e-14, loc[0], 2)
	chk.Float64(tst, "loc.y", 1e-14, loc[1], 0)
	chk.Float64(tst, "res.x", 1e-14, res[0], 4*0.75) // tangent along x, damped
	chk.Float64(tst, "res.y", 1e-14, res[1], 0)       // no y component retained
}

func TestPlaneConstraintProjects(tst *testing.T) {
	chk.PrintTitle("PlaneConstraint. project onto z=0 plane")

	plane, err := NewPlaneConstraint(Plane{Origin: [3]float64{0, 0, 0}, Normal: [3]float64{0, 0, 1}})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	p, _ := plane.Project([3]float64{3, 4, 9})
	chk.Float64(tst, "pz", 1e-14, p[2], 0)

	tang := plane.Tangent(p, [3]float64{1, 2, 5})
	chk.Float64(tst, "tangent.z", 1e-14, tang[2], 0)
}

func TestCircleConstraintProjectsOntoRadius(tst *testing.T) {
	chk.PrintTitle("CircleConstraint. project outward point onto circle")

	circ, err := NewCircleConstraint(Circle{Center: [3]float64{0, 0, 0}, Normal: [3]float64{0, 0, 1}, Radius: 2})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	p, _ := circ.Project([3]float64{10, 0, 0})
	chk.Float64(tst, "px", 1e-14, p[0], 2)
	chk.Float64(tst, "py", 1e-14, p[1], 0)
}

func TestCircleConstraintRejectsBadRadius(tst *testing.T) {
	chk.PrintTitle("CircleConstraint. non-positive radius is a GeometricError")

	_, err := NewCircleConstraint(Circle{Center: [3]float64{0, 0, 0}, Normal: [3]float64{0, 0, 1}, Radius: 0})
	if err == nil {
		tst.Errorf("expected GeometricError")
	}
}

func TestRegistryDispatch(tst *testing.T) {
	chk.PrintTitle("New. registry dispatches on geometry kind")

	c, err := New(Line{Origin: [3]float64{0, 0, 0}, Direction: [3]float64{0, 1, 0}})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	if _, ok := c.(*LineConstraint); !ok {
		tst.Errorf("expected *LineConstraint, got %T", c)
	}
}

func TestCurveConstraintProjectsOntoLinearSegment(tst *testing.T) {
	chk.PrintTitle("CurveConstraint. degree-1 NURBS segment is exact (spec §8 scenario 4)")

	curve, err := NewCurveConstraint(1, [][3]float64{{0, 0, 0}, {10, 0, 0}}, nil, []float64{0, 0, 1, 1})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	p, err := curve.Project([3]float64{5, 3, 0})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "px", 1e-6, p[0], 5)
	chk.Float64(tst, "py", 1e-6, p[1], 0)
	chk.Float64(tst, "pz", 1e-6, p[2], 0)
}

func TestCurveConstraintRejectsTooFewControlPoints(tst *testing.T) {
	chk.PrintTitle("CurveConstraint. fewer control points than degree+1 is a GeometricError")

	_, err := NewCurveConstraint(2, [][3]float64{{0, 0, 0}, {1, 0, 0}}, nil, []float64{0, 0, 0, 1, 1, 1})
	if err == nil {
		tst.Errorf("expected GeometricError")
	}
	if _, ok := err.(*GeometricError); !ok {
		tst.Errorf("expected *GeometricError, got %T", err)
	}
}

func TestSurfaceConstraintProjectsOntoBilinearPatch(tst *testing.T) {
	chk.PrintTitle("SurfaceConstraint. flat bilinear patch projects within-domain points exactly (spec §8 scenario 4)")

	ctrl := [][][3]float64{
		{{0, 0, 0}, {0, 10, 0}},
		{{10, 0, 0}, {10, 10, 0}},
	}
	surf, err := NewSurfaceConstraint(1, 1, ctrl, nil, []float64{0, 0, 1, 1}, []float64{0, 0, 1, 1})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	p, err := surf.Project([3]float64{5, 4, 7})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "px", 1e-4, p[0], 5)
	chk.Float64(tst, "py", 1e-4, p[1], 4)
	chk.Float64(tst, "pz", 1e-4, p[2], 0)

	tang := surf.Tangent(p, [3]float64{1, 1, 5})
	chk.Float64(tst, "tangent.z", 1e-4, tang[2], 0)
}

func TestSurfaceConstraintRejectsEmptyControlGrid(tst *testing.T) {
	chk.PrintTitle("SurfaceConstraint. empty control grid is a GeometricError")

	_, err := NewSurfaceConstraint(1, 1, nil, nil, []float64{0, 0, 1, 1}, []float64{0, 0, 1, 1})
	if err == nil {
		tst.Errorf("expected GeometricError")
	}
	if _, ok := err.(*GeometricError); !ok {
		tst.Errorf("expected *GeometricError, got %T", err)
	}
}

func TestInactiveConstraintPassesThrough(tst *testing.T) {
	chk.PrintTitle("LineConstraint. inactive constraint is a pass-through")

	line, _ := NewLineConstraint(Line{Origin: [3]float64{0, 0, 0}, Direction: [3]float64{1, 0, 0}})
	line.SetActive(false)
	loc, res, err := line.Update([3]float64{2, 9, 0}, [3]float64{1, 1, 1}, 0.5)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "loc.y unchanged", 1e-14, loc[1], 9)
	chk.Float64(tst, "res unchanged", 1e-14, res[1], 1)
}
