// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import "github.com/cpmech/gosl/chk"

// Geometry is a host locus that New dispatches on. Its kind method is
// unexported, so only Line, Plane and Circle (and types embedding one of
// them) implement it, and the kinds New can see are "line", "plane" and
// "circle". NURBS curves and surfaces have no Geometry type and no
// registry entry; they are built with NewCurveConstraint and
// NewSurfaceConstraint directly.
type Geometry interface {
	kind() string
}

func (Line) kind() string   { return "line" }
func (Plane) kind() string  { return "plane" }
func (Circle) kind() string { return "circle" }

// Factory builds a Constraint for a registered geometry kind.
type Factory func(Geometry) (Constraint, error)

var registry = map[string]Factory{
	"line": func(g Geometry) (Constraint, error) {
		return NewLineConstraint(g.(Line))
	},
	"plane": func(g Geometry) (Constraint, error) {
		return NewPlaneConstraint(g.(Plane))
	},
	"circle": func(g Geometry) (Constraint, error) {
		return NewCircleConstraint(g.(Circle))
	},
}

// Register associates a geometry kind with a Factory, replacing any
// factory already stored under that kind. Because Geometry cannot be
// implemented outside this package, a caller elsewhere can replace the
// factory for "line", "plane" or "circle" but cannot add a kind that New
// will ever dispatch to.
func Register(kind string, factory Factory) {
	registry[kind] = factory
}

// New dispatches to the registered Factory for geometry.kind(), the Go
// analogue of the original's Constraint.register(GeometryType,
// ConstraintImpl) class-based registry (compas_dr/constraints/__init__.py).
func New(g Geometry) (Constraint, error) {
	factory, ok := registry[g.kind()]
	if !ok {
		return nil, chk.Err("constraint: no factory registered for geometry kind %q", g.kind())
	}
	return factory(g)
}
