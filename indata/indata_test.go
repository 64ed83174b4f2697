// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package indata

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/BlockResearchGroup/compas-dr/numarr"
)

func simpleBar() (numarr.Vectors, [][2]int, numarr.Vectors, numarr.Scalars) {
	v := numarr.Vectors{{0, 0, 0}, {1, 0, 0}}
	e := [][2]int{{0, 1}}
	loads := numarr.Vectors{{0, 0, 0}, {0, 0, 0}}
	qpre := numarr.Scalars{0}
	return v, e, loads, qpre
}

func TestNewValid(tst *testing.T) {
	chk.PrintTitle("New. single bar, all defaults")

	v, e, loads, qpre := simpleBar()
	d, err := New(v, e, []int{0}, loads, qpre, nil, nil, nil, nil, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.IntAssert(d.N(), 2)
	chk.IntAssert(d.M(), 1)
	chk.IntAssert(len(d.Free()), 1)
	if d.Free()[0] != 1 {
		tst.Errorf("expected free vertex 1, got %v", d.Free())
	}
}

func TestNewCardinalityMismatch(tst *testing.T) {
	chk.PrintTitle("New. loads cardinality mismatch")

	v, e, _, qpre := simpleBar()
	_, err := New(v, e, []int{0}, numarr.Vectors{{0, 0, 0}}, qpre, nil, nil, nil, nil, nil)
	if err == nil {
		tst.Errorf("expected InvalidInput error")
	}
	if _, ok := err.(*InvalidInput); !ok {
		tst.Errorf("expected *InvalidInput, got %T", err)
	}
}

func TestNewOutOfRangeEdge(tst *testing.T) {
	chk.PrintTitle("New. out-of-range edge vertex")

	v, _, loads, qpre := simpleBar()
	_, err := New(v, [][2]int{{0, 5}}, []int{0}, loads, qpre, nil, nil, nil, nil, nil)
	if err == nil {
		tst.Errorf("expected InvalidInput error")
	}
}

func TestDefaultOptionalArrays(tst *testing.T) {
	chk.PrintTitle("New. optional arrays default to zero")

	v, e, loads, qpre := simpleBar()
	d, err := New(v, e, []int{0}, loads, qpre, nil, nil, nil, nil, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	for _, s := range []numarr.Scalars{d.Fpre(), d.Lpre(), d.Linit(), d.E(), d.Radius()} {
		if len(s) != 1 || s[0] != 0 {
			tst.Errorf("expected zero-defaulted array of length 1, got %v", s)
		}
	}
}

func TestL0(tst *testing.T) {
	chk.PrintTitle("InputData.L0. unit bar")

	v, e, loads, qpre := simpleBar()
	d, err := New(v, e, []int{0}, loads, qpre, nil, nil, nil, nil, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	l0 := d.L0()
	chk.Float64(tst, "l0", 1e-14, l0[0], 1.0)
}

func TestEffectiveLinitFallsBackToL0(tst *testing.T) {
	chk.PrintTitle("InputData.EffectiveLinit. all-zero linit falls back to l0")

	v, e, loads, qpre := simpleBar()
	d, err := New(v, e, []int{0}, loads, qpre, nil, nil, numarr.Scalars{0}, nil, nil)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	linit := d.EffectiveLinit()
	chk.Float64(tst, "linit[0]", 1e-14, linit[0], 1.0)
}
