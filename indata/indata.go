// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package indata implements the immutable problem description consumed by
// the dynamic-relaxation solver: raw per-vertex and per-edge inputs plus
// their lazily-derived quantities (connectivity matrix, free-vertex index
// set, initial kinematic state).
package indata

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/BlockResearchGroup/compas-dr/numarr"
)

// InvalidInput is returned by New/FromMesh when cardinalities mismatch, an
// edge references an out-of-range vertex, or an optional array has the
// wrong length. Mirrors the teacher's practice of wrapping chk.Err output
// at package boundaries (see fem/domain.go's "return chk.Err(...)" idiom).
type InvalidInput struct {
	msg string
}

func (e *InvalidInput) Error() string { return e.msg }

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInput{msg: chk.Err(format, args...).Error()}
}

// Mesh is the minimal topology-only collaborator InputData.FromMesh
// consumes (spec §6: "the core consumes a mesh only as an index-based
// topology"). Any caller-owned mesh/graph datastructure that can enumerate
// its vertices with xyz coordinates and its edges as index pairs satisfies
// this interface; the core never constructs or mutates one.
type Mesh interface {
	VertexCount() int
	VertexXYZ(i int) [3]float64
	Edges() [][2]int
}

// InputData is an immutable problem description. It owns the raw inputs
// and lazily derives the connectivity matrix, the free-vertex index set,
// and the initial kinematic state. Once constructed it is never mutated;
// the solver copies out of it into its own mutable iteration state.
type InputData struct {
	n, m int

	vertices numarr.Vectors
	edges    [][2]int
	fixed    map[int]bool
	loads    numarr.Vectors

	qpre   numarr.Scalars
	fpre   numarr.Scalars
	lpre   numarr.Scalars
	linit  numarr.Scalars
	young  numarr.Scalars
	radius numarr.Scalars

	// lazily derived, cached because the solver reuses them every
	// iteration (see spec §4.1)
	conn *numarr.Connectivity
	free []int
}

// New constructs an InputData from raw arrays. fpre, lpre, linit, E, and
// radius may be nil, in which case they default to a zero vector of
// length len(edges). Returns *InvalidInput if cardinalities mismatch or an
// edge references a vertex outside [0,n).
func New(
	vertices numarr.Vectors,
	edges [][2]int,
	fixed []int,
	loads numarr.Vectors,
	qpre numarr.Scalars,
	fpre, lpre, linit, E, radius numarr.Scalars,
) (*InputData, error) {

	n := len(vertices)
	m := len(edges)

	if len(loads) != n {
		return nil, invalidInput("loads must have %d rows (one per vertex), got %d", n, len(loads))
	}
	if len(qpre) != m {
		return nil, invalidInput("qpre must have %d entries (one per edge), got %d", m, len(qpre))
	}
	for e, uv := range edges {
		u, v := uv[0], uv[1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, invalidInput("edge %d references out-of-range vertex (u=%d, v=%d, n=%d)", e, u, v, n)
		}
		if u == v {
			return nil, invalidInput("edge %d is degenerate: u == v == %d", e, u)
		}
	}

	def := func(name string, s numarr.Scalars) (numarr.Scalars, error) {
		if s == nil {
			return numarr.NewScalars(m), nil
		}
		if len(s) != m {
			return nil, invalidInput("%s must have %d entries (one per edge), got %d", name, m, len(s))
		}
		return s, nil
	}

	var err error
	if fpre, err = def("fpre", fpre); err != nil {
		return nil, err
	}
	if lpre, err = def("lpre", lpre); err != nil {
		return nil, err
	}
	if linit, err = def("linit", linit); err != nil {
		return nil, err
	}
	if E, err = def("E", E); err != nil {
		return nil, err
	}
	if radius, err = def("radius", radius); err != nil {
		return nil, err
	}

	fixedSet := make(map[int]bool, len(fixed))
	for _, i := range fixed {
		if i < 0 || i >= n {
			return nil, invalidInput("fixed vertex index %d out of range [0,%d)", i, n)
		}
		fixedSet[i] = true
	}

	d := &InputData{
		n: n, m: m,
		vertices: vertices.Clone(),
		edges:    append([][2]int(nil), edges...),
		fixed:    fixedSet,
		loads:    loads.Clone(),
		qpre:     append(numarr.Scalars(nil), qpre...),
		fpre:     fpre,
		lpre:     lpre,
		linit:    linit,
		young:    E,
		radius:   radius,
	}
	return d, nil
}

// FromMesh extracts vertex coordinates and edges from a mesh that already
// uses dense [0,n) vertex indices (the Mesh interface's VertexXYZ(i) takes
// that as given) and delegates to New. Mirrors the teacher's convention,
// seen throughout fem/domain.go, of handing a pre-numbered topology
// straight to the solver's own constructor; any caller whose own
// datastructure is not already densely indexed must renumber it before
// implementing Mesh, the same obligation fem/domain.go places on its mesh
// readers.
func FromMesh(
	mesh Mesh,
	fixed []int,
	loads numarr.Vectors,
	qpre numarr.Scalars,
	fpre, lpre, linit, E, radius numarr.Scalars,
) (*InputData, error) {
	n := mesh.VertexCount()
	vertices := make(numarr.Vectors, n)
	for i := 0; i < n; i++ {
		vertices[i] = mesh.VertexXYZ(i)
	}
	edges := mesh.Edges()
	return New(vertices, edges, fixed, loads, qpre, fpre, lpre, linit, E, radius)
}

// N returns the number of vertices.
func (d *InputData) N() int { return d.n }

// M returns the number of edges.
func (d *InputData) M() int { return d.m }

// Vertices returns the initial n×3 vertex positions (a copy).
func (d *InputData) Vertices() numarr.Vectors { return d.vertices.Clone() }

// Edges returns the m×2 index pairs.
func (d *InputData) Edges() [][2]int { return d.edges }

// Fixed reports whether vertex i is a fixed (non-free) vertex.
func (d *InputData) Fixed(i int) bool { return d.fixed[i] }

// Loads returns the n×3 external load array.
func (d *InputData) Loads() numarr.Vectors { return d.loads.Clone() }

// Qpre, Fpre, Lpre, Linit, E, Radius return the per-edge m×1 arrays.
func (d *InputData) Qpre() numarr.Scalars   { return append(numarr.Scalars(nil), d.qpre...) }
func (d *InputData) Fpre() numarr.Scalars   { return append(numarr.Scalars(nil), d.fpre...) }
func (d *InputData) Lpre() numarr.Scalars   { return append(numarr.Scalars(nil), d.lpre...) }
func (d *InputData) Linit() numarr.Scalars  { return append(numarr.Scalars(nil), d.linit...) }
func (d *InputData) E() numarr.Scalars      { return append(numarr.Scalars(nil), d.young...) }
func (d *InputData) Radius() numarr.Scalars { return append(numarr.Scalars(nil), d.radius...) }

// EA returns the per-edge axial stiffness E·A with A = π·radius².
func (d *InputData) EA() numarr.Scalars {
	ea := numarr.NewScalars(d.m)
	for e := range ea {
		a := math.Pi * d.radius[e] * d.radius[e]
		ea[e] = d.young[e] * a
	}
	return ea
}

// Free returns the cached free-vertex index set (vertices not in Fixed),
// computed once and reused by the solver every iteration (spec §4.1).
func (d *InputData) Free() []int {
	if d.free == nil {
		free := make([]int, 0, d.n-len(d.fixed))
		for _, i := range utl.IntRange(d.n) {
			if !d.fixed[i] {
				free = append(free, i)
			}
		}
		d.free = free
	}
	return d.free
}

// Connectivity returns the cached sparse m×n connectivity matrix C.
func (d *InputData) Connectivity() *numarr.Connectivity {
	if d.conn == nil {
		d.conn = numarr.NewConnectivity(d.edges, d.n)
	}
	return d.conn
}

// Q0 returns the all-ones initial force-density array. Solve uses it only
// to seed the initial axial forces f = q0·l0 that the first iteration's
// q_lpre term reads; the working q is recomputed every iteration from
// qpre + q_fpre + q_lpre + q_EA.
func (d *InputData) Q0() numarr.Scalars {
	q0 := numarr.NewScalars(d.m)
	for e := range q0 {
		q0[e] = 1.0
	}
	return q0
}

// L0 returns the initial edge lengths ||C·vertices||, row-wise.
func (d *InputData) L0() numarr.Scalars {
	u := d.Connectivity().Apply(d.vertices)
	return numarr.RowNorm(u)
}

// V0 returns the zero-valued initial velocity array.
func (d *InputData) V0() numarr.Vectors { return numarr.NewVectors(d.n) }

// R0 returns the zero-valued initial residual array.
func (d *InputData) R0() numarr.Vectors { return numarr.NewVectors(d.n) }

// EffectiveLinit returns linit with the "if every entry is zero, use l0"
// substitution of spec §3 already applied.
func (d *InputData) EffectiveLinit() numarr.Scalars {
	isZero := make([]bool, len(d.linit))
	for i, v := range d.linit {
		isZero[i] = v == 0
	}
	if utl.BoolAllTrue(isZero) {
		return d.L0()
	}
	return append(numarr.Scalars(nil), d.linit...)
}

// LogSummary writes a one-line verbose trace of the problem size, in the
// teacher's io.Pf style (fem/domain.go).
func (d *InputData) LogSummary() {
	io.Pf(">> vertices=%d edges=%d fixed=%d free=%d\n", d.n, d.m, len(d.fixed), len(d.Free()))
}
