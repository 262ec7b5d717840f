// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package moliere implements the screened-Coulomb Moliere potential
// U = (Z_i Z_j e²/r) Σ_k C_k exp(-b_k r), a three-term screened sum.
// Parameter slots: P[0]=Z_iZ_je², P[1..3]=C_1..C_3, P[4..6]=b_1..b_3,
// P[7]=a_rs.
package moliere

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotA  = 0
	slotC1 = 1
	slotC2 = 2
	slotC3 = 3
	slotB1 = 4
	slotB2 = 5
	slotB3 = 6
	nSlots = 8
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

type kernel struct{}

func init() {
	potential.Register(potential.Moliere, kernel{})
}

// Force returns U(r) and |F|/r.
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	A := p[slotA]
	c := [3]float64{p[slotC1], p[slotC2], p[slotC3]}
	b := [3]float64{p[slotB1], p[slotB2], p[slotB3]}

	var sum, sumCB float64
	for k := 0; k < 3; k++ {
		e := math.Exp(-b[k] * r)
		sum += c[k] * e
		sumCB += c[k] * b[k] * e
	}
	U = A * sum / r
	fOverR = U/(r*r) + A*sumCB/(r*r)
	return
}

// Derivatives returns U, dU/dr, d²U/dr².
func (k kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	return potential.DerivativesFromForce(k, r, p)
}
