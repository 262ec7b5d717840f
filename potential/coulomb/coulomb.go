// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package coulomb implements the real-space (Ewald-split) Coulomb pair
// kernel. Parameter slots: P[0]=q_i q_j/(4πε0), P[1]=α,
// P[2]=a_rs.
package coulomb

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotQQ    = 0
	slotAlpha = 1
	nSlots    = 3
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

type kernel struct{}

func init() {
	potential.Register(potential.Coulomb, kernel{})
}

var sqrtPiInv = 2.0 / math.Sqrt(math.Pi)

// Force returns U(r) = (q_i q_j/4πε0) erfc(αr)/r and |F|/r.
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	A := p[slotQQ]
	alpha := p[slotAlpha]
	erfcAr := math.Erfc(alpha * r)
	expTerm := math.Exp(-alpha * alpha * r * r)
	U = A * erfcAr / r
	fOverR = (U + A*sqrtPiInv*alpha*expTerm) / (r * r)
	return
}

// Derivatives returns U, dU/dr, d²U/dr².
func (k kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	return potential.DerivativesFromForce(k, r, p)
}
