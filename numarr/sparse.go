// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numarr

import (
	"github.com/cpmech/gosl/la"
)

// Connectivity is the sparse m×n matrix C with C[e,u(e)]=+1 and
// C[e,v(e)]=-1 for every edge e=(u,v). It is assembled once from the edge
// list (see indata.InputData) and reused, as a compressed-column matrix,
// for every dot-product the solver performs per iteration — the same
// assemble-once-multiply-many pattern the teacher uses for its Jacobian
// triplet (fem/domain.go's Kb *la.Triplet, fem/e_rod.go's AddToKb).
type Connectivity struct {
	NRows, NCols int
	edges        [][2]int // kept to rebuild Q-weighted operators cheaply
	forward      *la.CCMatrix
	transpose    *la.CCMatrix
}

// NewConnectivity builds C for the given edge list over n vertices.
func NewConnectivity(edges [][2]int, n int) *Connectivity {
	m := len(edges)
	trip := la.NewTriplet(m, n, 2*m)
	tripT := la.NewTriplet(n, m, 2*m)
	for e, uv := range edges {
		u, v := uv[0], uv[1]
		trip.Put(e, u, 1.0)
		trip.Put(e, v, -1.0)
		tripT.Put(u, e, 1.0)
		tripT.Put(v, e, -1.0)
	}
	return &Connectivity{
		NRows:     m,
		NCols:     n,
		edges:     append([][2]int(nil), edges...),
		forward:   trip.ToMatrix(nil),
		transpose: tripT.ToMatrix(nil),
	}
}

// Apply computes u = C·x, an m×3 array of edge vectors, given the n×3
// vertex positions x.
func (c *Connectivity) Apply(x Vectors) Vectors {
	out := make(Vectors, c.NRows)
	var col, res []float64
	for d := 0; d < 3; d++ {
		col = extractColumn(x, d, col)
		res = growTo(res, c.NRows)
		la.SpMatVecMul(res, 1.0, c.forward, col)
		scatterColumn(out, d, res)
	}
	return out
}

// ApplyTransposeWeighted computes y = Cᵀ·(diag(q)·w), an n×3 array, given
// the per-edge weights q and an m×3 array w (typically w = C·x).
func (c *Connectivity) ApplyTransposeWeighted(q Scalars, w Vectors) Vectors {
	weighted := make(Vectors, len(w))
	for e := range w {
		weighted[e] = [3]float64{w[e][0] * q[e], w[e][1] * q[e], w[e][2] * q[e]}
	}
	out := make(Vectors, c.NCols)
	var col, res []float64
	for d := 0; d < 3; d++ {
		col = extractColumn(weighted, d, col)
		res = growTo(res, c.NCols)
		la.SpMatVecMul(res, 1.0, c.transpose, col)
		scatterColumn(out, d, res)
	}
	return out
}

// SquaredTransposeWeighted computes Cᵀ² · s (element-wise square of Cᵀ's
// entries, which are all ±1 so this is just |Cᵀ|, dotted with a per-edge
// scalar s), used by the lumped-mass formula of spec §4.4 step 3.
func (c *Connectivity) SquaredTransposeWeighted(s Scalars) Scalars {
	out := make(Scalars, c.NCols)
	for e, uv := range c.edges {
		u, v := uv[0], uv[1]
		out[u] += s[e]
		out[v] += s[e]
	}
	return out
}

func extractColumn(v Vectors, d int, buf []float64) []float64 {
	buf = growTo(buf, len(v))
	for i, row := range v {
		buf[i] = row[d]
	}
	return buf
}

func scatterColumn(v Vectors, d int, col []float64) {
	for i, val := range col {
		v[i][d] = val
	}
}

func growTo(buf []float64, n int) []float64 {
	if cap(buf) < n {
		return make([]float64, n)
	}
	return buf[:n]
}
