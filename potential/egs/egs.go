// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package egs implements the Exact-Gradient-Screened potential,
// ported from sarkas/potentials/egs.py. Below ν=1 the pair
// potential is a sum of two Yukawa-like exponentials with screening
// lengths λ±; above ν=1 it is an oscillatory cos/sin envelope with
// scales γ±. Both branches are always compiled in; selection is per
// parameter-set (on ν), not per-pair.
//
// Parameter slots (matching egs.py's pot_matrix layout exactly):
//
//	P[0] = q_i q_j/(4πε0) scaled by the branch's leading factor
//	P[1] = ν
//	P[2] = (1+α) or 1.0
//	P[3] = (1-α) or α'
//	P[4] = 1/λ_- or 1/γ_-
//	P[5] = 1/λ_+ or 1/γ_+
//	P[6] = a_rs
package egs

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotA     = 0
	slotNu    = 1
	slotC1    = 2
	slotC2    = 3
	slotInvLM = 4
	slotInvLP = 5
	nSlots    = 7
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

type kernel struct{}

func init() {
	potential.Register(potential.EGS, kernel{})
}

// Force returns U(r) and |F|/r, branching on ν ≤ 1 (monotonic decay) vs.
// ν > 1 (oscillatory).
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	A := p[slotA]
	nu := p[slotNu]
	c1 := p[slotC1]
	c2 := p[slotC2]
	invLM := p[slotInvLM]
	invLP := p[slotInvLP]

	if nu <= 1.0 {
		temp1 := c1 * math.Exp(-r*invLM)
		temp2 := c2 * math.Exp(-r*invLP)
		U = (temp1 + temp2) * A / r
		fOverR = (U/r + A*(temp1*invLM+temp2*invLP)/r) / r
		return
	}

	coskr := math.Cos(r * invLM)
	sinkr := math.Sin(r * invLM)
	expkr := A * math.Exp(-r*invLP)
	U = (coskr + c2*sinkr) * expkr / r
	fOverR = U / r
	fOverR += U * invLP
	fOverR += invLM * (sinkr - c2*coskr) * expkr / r
	fOverR /= r
	return
}

// Derivatives returns U, dU/dr, d²U/dr².
func (k kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	return potential.DerivativesFromForce(k, r, p)
}

// DegeneracyFit evaluates the Perrot–Dharma-Wardana rational fit for
// h(Θ) and its derivative h'(Θ) (egs.py eqs. 32–34), valid for
// 0.1 ≤ Θ ≤ 12. It is the input for deriving b, ν, λ± / γ± before
// filling the tensor; neither config nor cmd/sarkaslux calls it, and it
// is kept here, next to the kernel it feeds, so the closed-form
// constants have a single home.
func DegeneracyFit(theta float64) (h, gradh float64) {
	Ntheta := 1.0 + 2.8343*theta*theta - 0.2151*theta*theta*theta + 5.2759*theta*theta*theta*theta
	Dtheta := 1.0 + 3.9431*theta*theta + 7.9138*theta*theta*theta*theta
	tanhInv := math.Tanh(1.0 / theta)
	h = Ntheta / Dtheta * tanhInv

	dNtheta := 5.6686*theta - 0.6453*theta*theta + 21.1036*theta*theta*theta
	dDtheta := 7.8862*theta + 31.6552*theta*theta*theta
	sech2 := 1.0 / (math.Cosh(1.0/theta) * math.Cosh(1.0/theta))
	gradh = -(Ntheta/Dtheta)*sech2/(theta*theta) + tanhInv*(dNtheta/Dtheta-Ntheta*dDtheta/(Dtheta*Dtheta))
	return
}

// ResolveBranch computes λ±/γ± and the branch-selection constants
// (c1, c2, invLM, invLP) from ν, the exchange-correlation parameter b
// and the Thomas-Fermi screening length λ_TF, following egs.py's
// update_params (eqs. 29–31). It does not touch the parameter tensor;
// a caller copies the results into P[2..5] per species pair (neither
// config nor cmd/sarkaslux calls it).
func ResolveBranch(nu, b, lambdaTF float64) (c1, c2, invLM, invLP float64) {
	if nu <= 1.0 {
		lambdaM := lambdaTF * math.Sqrt(nu/(2.0*b-2.0*math.Sqrt(b*b-nu)))
		lambdaP := lambdaTF * math.Sqrt(nu/(2.0*b+2.0*math.Sqrt(b*b-nu)))
		alpha := b / math.Sqrt(b-nu)
		c1 = 1.0 + alpha
		c2 = 1.0 - alpha
		invLM = 1.0 / lambdaM
		invLP = 1.0 / lambdaP
		return
	}
	gammaM := lambdaTF * math.Sqrt(nu/(math.Sqrt(nu)-b))
	gammaP := lambdaTF * math.Sqrt(nu/(math.Sqrt(nu)+b))
	alphaP := b / math.Sqrt(nu-b)
	c1 = 1.0
	c2 = alphaP
	invLM = 1.0 / gammaM
	invLP = 1.0 / gammaP
	return
}
