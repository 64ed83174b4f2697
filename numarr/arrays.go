// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package numarr implements the typed dense and sparse numeric arrays shared
// by the dynamic-relaxation input data and solver: n×3 vertex arrays, m×1
// edge-scalar arrays, and the ±1/0 connectivity operator.
package numarr

import (
	"github.com/cpmech/gosl/la"
)

// Vectors holds one 3-component value per vertex (or, when used for edge
// quantities that have been scattered to vertices, per row). Mirrors the
// teacher's convention of a dense [][]float64 with a fixed row width (see
// ele/solid/elastrod.go's X [ndim][nnode], here kept row-major per vertex
// because the solver indexes per-vertex far more often than per-dimension).
type Vectors [][3]float64

// NewVectors allocates n zero-valued 3-vectors.
func NewVectors(n int) Vectors {
	return make(Vectors, n)
}

// Clone returns an independent copy.
func (v Vectors) Clone() Vectors {
	out := make(Vectors, len(v))
	copy(out, v)
	return out
}

// Norm returns the Euclidean norm of the flattened vector, i.e.
// sqrt(Σ |v_i|²) over every component of every row, via la.VecNorm on the
// flattened representation.
func (v Vectors) Norm() float64 {
	flat := make([]float64, 0, 3*len(v))
	for _, row := range v {
		flat = append(flat, row[0], row[1], row[2])
	}
	return la.VecNorm(flat)
}

// Sub returns v - w, element-wise.
func (v Vectors) Sub(w Vectors) Vectors {
	out := make(Vectors, len(v))
	for i := range v {
		out[i] = [3]float64{v[i][0] - w[i][0], v[i][1] - w[i][1], v[i][2] - w[i][2]}
	}
	return out
}

// Scalars holds one value per edge (or, generically, a dense m×1 array).
type Scalars []float64

// NewScalars allocates m zero-valued scalars.
func NewScalars(m int) Scalars {
	return make(Scalars, m)
}

// RowNorm returns, for each row of u (an m×3 array such as C·x), the
// Euclidean length of that row: the per-edge current length.
func RowNorm(u Vectors) Scalars {
	l := make(Scalars, len(u))
	for e, row := range u {
		l[e] = la.VecNorm(row[:])
	}
	return l
}
