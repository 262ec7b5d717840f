// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lj implements the generalized Lennard-Jones m,n pair kernel
// U = 4ε[(σ/r)^m − (σ/r)^n]. Parameter slots: P[0]=ε,
// P[1]=σ, P[2]=m, P[3]=n, P[4]=a_rs.
package lj

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/potential"
)

const (
	slotEps   = 0
	slotSigma = 1
	slotM     = 2
	slotN     = 3
	nSlots    = 5
)

// NSlots is the parameter-tensor width this family requires.
func NSlots() int { return nSlots }

type kernel struct{}

func init() {
	potential.Register(potential.LennardJones, kernel{})
}

// Force returns U(r) and |F|/r.
func (kernel) Force(r float64, p []float64) (U, fOverR float64) {
	r = potential.Regularize(r, p)
	eps := p[slotEps]
	sigma := p[slotSigma]
	m := p[slotM]
	n := p[slotN]

	smr := math.Pow(sigma/r, m)
	snr := math.Pow(sigma/r, n)
	U = 4 * eps * (smr - snr)
	fOverR = 4 * eps * (m*smr - n*snr) / (r * r)
	return
}

// Derivatives returns U, dU/dr, d²U/dr².
func (k kernel) Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	return potential.DerivativesFromForce(k, r, p)
}
