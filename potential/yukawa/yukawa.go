// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package yukawa implements the real-space (Ewald-split) Yukawa pair
// kernel, combining erfc(αr ± κ/(2α)) exponentials as in Dharuman et al.
// Parameter slots: P[0]=q_i q_j/(4πε0), P[1]=κ, P[2]=α,
// P[3]=a_rs.
package yukawa

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotQQ    = 0
	slotKappa = 1
	slotAlpha = 2
	nSlots    = 4
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

type kernel struct{}

func init() {
	potential.Register(potential.Yukawa, kernel{})
}

// Force returns U(r) and |F|/r for the real-space split Yukawa kernel:
//
//	U(r) = (A/2r) [ e^{κr} erfc(αr+κ/2α) + e^{-κr} erfc(αr-κ/2α) ]
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	A := p[slotQQ]
	kappa := p[slotKappa]
	alpha := p[slotAlpha]

	argP := alpha*r + kappa/(2*alpha)
	argM := alpha*r - kappa/(2*alpha)
	termP := math.Exp(kappa*r) * math.Erfc(argP)
	termM := math.Exp(-kappa*r) * math.Erfc(argM)
	expArgP := math.Exp(kappa*r) * math.Exp(-argP*argP)
	expArgM := math.Exp(-kappa*r) * math.Exp(-argM*argM)

	U = (A / (2 * r)) * (termP + termM)

	sqrtPiInv := 2.0 / math.Sqrt(math.Pi)
	dSum := kappa*(termP-termM) - sqrtPiInv*alpha*(expArgP+expArgM)
	dUdr := (A/2)*(dSum/r) - U/r
	fOverR = -dUdr / r
	return
}

// Derivatives returns U, dU/dr, d²U/dr².
func (k kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	return potential.DerivativesFromForce(k, r, p)
}
