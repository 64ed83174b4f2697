// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package drsolver

import "github.com/BlockResearchGroup/compas-dr/numarr"

// ResultData is the value object Solve returns: final positions, force
// densities, axial forces, edge lengths, and vertex residuals (spec
// §4.5). It owns copies, not views, of every array, and is never mutated
// after construction.
type ResultData struct {
	XYZ       numarr.Vectors
	Q         numarr.Scalars
	Forces    numarr.Scalars
	Lengths   numarr.Scalars
	Residuals numarr.Vectors
}

func newResultData(x numarr.Vectors, q, f, l numarr.Scalars, r numarr.Vectors) *ResultData {
	return &ResultData{
		XYZ:       x.Clone(),
		Q:         append(numarr.Scalars(nil), q...),
		Forces:    append(numarr.Scalars(nil), f...),
		Lengths:   append(numarr.Scalars(nil), l...),
		Residuals: r.Clone(),
	}
}

// record is the structured-record shape named by spec §6 for persistence:
// numeric arrays as nested sequences of floats, edges as pairs of
// integers (edges themselves belong to InputData, not ResultData). Kept
// as an exported method rather than encoding/json struct tags directly on
// ResultData so the round-trip is explicit about which fields are part of
// the persisted record (spec §9's open question: "ResultData.__data__ was
// never finished upstream; this port finishes it").
type record struct {
	XYZ       [][3]float64 `json:"xyz"`
	Q         []float64    `json:"q"`
	Forces    []float64    `json:"forces"`
	Lengths   []float64    `json:"lengths"`
	Residuals [][3]float64 `json:"residuals"`
}

// Data returns the structured record described in spec §6, suitable for
// json.Marshal; round-tripping it through json.Unmarshal into a fresh
// ResultData-shaped record reproduces the numeric content bit-for-bit.
func (r *ResultData) Data() record {
	return record{
		XYZ:       [][3]float64(r.XYZ),
		Q:         []float64(r.Q),
		Forces:    []float64(r.Forces),
		Lengths:   []float64(r.Lengths),
		Residuals: [][3]float64(r.Residuals),
	}
}
