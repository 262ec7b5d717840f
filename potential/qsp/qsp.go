// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package qsp implements the Quantum Statistical Potential:
// a de Broglie diffraction term (regularizes the Coulomb singularity at
// the electron thermal wavelength) plus a Pauli exclusion term active
// between same-spin electron pairs. Parameter slots: P[0]=q_iq_j/(4πε0),
// P[1]=1/Λ_deB, P[2]=D (Pauli coefficient, 0 for non-electron pairs),
// P[3]=1/Λ_ee², P[4]=a_rs.
package qsp

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotA        = 0
	slotInvLdeB  = 1
	slotPauliD   = 2
	slotInvLee2  = 3
	nSlots       = 5
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

type kernel struct{}

func init() {
	potential.Register(potential.QSP, kernel{})
}

// Force returns U(r) and |F|/r.
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	A := p[slotA]
	invLdeB := p[slotInvLdeB]
	D := p[slotPauliD]
	invLee2 := p[slotInvLee2]

	diffraction := 1.0 - math.Exp(-r*invLdeB)
	deBroglie := A / r * diffraction
	dDeBroglie := -deBroglie/r + (A*invLdeB/r)*math.Exp(-r*invLdeB)

	pauli := D * math.Exp(-r*r*invLee2)
	dPauli := -2 * r * invLee2 * pauli

	U = deBroglie + pauli
	dUdr := dDeBroglie + dPauli
	fOverR = -dUdr / r
	return
}

// Derivatives returns U, dU/dr, d²U/dr².
func (k kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	return potential.DerivativesFromForce(k, r, p)
}
