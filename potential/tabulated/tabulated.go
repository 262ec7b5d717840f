// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tabulated implements the (r, U, F, F') lookup potential,
// ported from sarkas/potentials/tabulated.py. Tables are kept in
// a small package-level registry rather than inline in the parameter
// tensor (P[p,i,j] is a fixed-width float slot, a table is not); the
// tensor instead carries a table id. Supplements the Python source with
// an optional cubic-spline refinement between grid points, selected per
// table via Table.Interp.
package tabulated

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotTableID = 0
	nSlots      = 2 // P[0]=table id, P[1]=a_rs
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

// Interp selects how lookup refines between grid points. Linear returns
// the node values of bin floor(r/Dr) with no interpolation between
// nodes; Cubic interpolates U by cubic Hermite and F, F' linearly.
type Interp int

const (
	Linear Interp = iota
	Cubic
)

// Table is a uniform-grid (r, U, F, F') potential table with spacing Dr.
type Table struct {
	Dr     float64
	U      []float64
	F      []float64 // F = -dU/dr, tabulated directly (matches tab_force's pot_matrix[2])
	Fp     []float64 // F' = dF/dr, used for the d²U/dr² estimate
	Interp Interp
}

var tables = make(map[int]*Table)

// Register installs a table under an integer id; the caller writes that
// id into P[0] for every species pair using this table. Neither config
// nor cmd/sarkaslux loads or registers tables.
func Register(id int, t *Table) {
	tables[id] = t
}

type kernel struct{}

func init() {
	potential.Register(potential.Tabulated, kernel{})
}

// bin returns the grid index for r, or -1 if out of range (the
// branchless out-of-range clamp to zero).
func (t *Table) bin(r float64) int {
	b := int(r / t.Dr)
	if b < 0 || b >= len(t.U) {
		return -1
	}
	return b
}

// lookup returns U, F (note: F, not f/r) and F' at r, zero outside the
// table's range.
func (t *Table) lookup(r float64) (U, F, Fp float64) {
	b := t.bin(r)
	if b < 0 {
		return 0, 0, 0
	}
	if t.Interp == Linear || b+1 >= len(t.U) {
		return t.U[b], t.F[b], t.Fp[b]
	}
	xi := r/t.Dr - float64(b)
	// Cubic Hermite interpolation using the tabulated slope F=-dU/dr as
	// the derivative at each node (original source only does linear
	// `numpy.interp`; this branch is the supplemented refinement).
	u0, u1 := t.U[b], t.U[b+1]
	d0, d1 := -t.F[b]*t.Dr, -t.F[b+1]*t.Dr
	h00 := 2*xi*xi*xi - 3*xi*xi + 1
	h10 := xi*xi*xi - 2*xi*xi + xi
	h01 := -2*xi*xi*xi + 3*xi*xi
	h11 := xi*xi*xi - xi*xi
	U = h00*u0 + h10*d0 + h01*u1 + h11*d1
	F = (t.F[b] + (t.F[b+1]-t.F[b])*xi)
	Fp = t.Fp[b] + (t.Fp[b+1]-t.Fp[b])*xi
	return
}

// Force returns U(r) and |F|/r for the table referenced by P[0].
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	id := int(math.Round(p[slotTableID]))
	t, ok := tables[id]
	if !ok {
		return 0, 0
	}
	U, F, _ := t.lookup(r)
	fOverR = F / r
	return
}

// Derivatives returns U, dU/dr = -F, and d²U/dr² = -F' directly from the
// table, matching sarkas's potential_derivatives (the intended,
// force-error-integral-feeding path;
// the commented-out alternative estimators in the original source are
// not revived here).
func (kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	r = potential.Regularize(r, p)
	id := int(math.Round(p[slotTableID]))
	t, ok := tables[id]
	if !ok {
		return 0, 0, 0
	}
	var F, Fp float64
	U, F, Fp = t.lookup(r)
	dUdr = -F
	d2Udr2 = -Fp
	return
}
