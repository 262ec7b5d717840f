// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ewald chooses the Ewald splitting parameter alpha, the
// real-space cutoff rc, and the PM mesh dimensions from a target force
// error budget, following Dharuman, Knepley & Murillo (J. Chem. Phys.
// 146, 024112 (2017)) for the error estimates and Deserno & Holm
// (J. Chem. Phys. 109, 7694 (1998)) for the closed-form mesh-error
// coefficients.
package ewald

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/integrate"
)

// cmp holds the Deserno-Holm C_{mp} coefficients for charge assignment
// order p = 1..7 (index p-1), reproduced exactly as published; they are
// not derivable from a simpler closed form and must match the paper
// term for term.
var cmp = [7][]float64{
	{2.0 / 3.0},
	{2.0 / 45.0, 8.0 / 189.0},
	{4.0 / 495.0, 2.0 / 225.0, 8.0 / 1485.0},
	{2.0 / 4725.0, 16.0 / 10395.0, 5528.0 / 3869775.0, 32.0 / 42525.0},
	{4.0 / 93555.0, 2764.0 / 11609325.0, 8.0 / 25515.0, 7234.0 / 32531625.0, 350936.0 / 3206852775.0},
	{2764.0 / 638512875.0, 16.0 / 467775.0, 7234.0 / 119282625.0, 1403744.0 / 25196700375.0,
		1396888.0 / 40521009375.0, 2485856.0 / 152506344375.0},
	{8.0 / 18243225.0, 7234.0 / 1550674125.0, 701872.0 / 65511420975.0, 2793776.0 / 225759909375.0,
		1242928.0 / 132172165125.0, 1890912728.0 / 352985880121875.0, 21053792.0 / 8533724574375.0},
}

// yukawaGreen is the continuum Yukawa/Coulomb (kappa=0) Green's
// function used to build the beta(m,p) error integrals below.
func yukawaGreen(k, alpha, kappa float64) float64 {
	a2 := 4 * alpha * alpha
	return 4 * math.Pi * math.Exp(-(k*k+kappa*kappa)/a2) / (kappa*kappa + k*k)
}

// betamp evaluates beta(p,m) = integral_0^inf G_k^2 k^(2(p+m+2)) dk via
// the trapezoidal rule on a fixed, generously wide grid, matching the
// quadrature used to derive the PM error term.
func betamp(m, p int, alpha, kappa float64) float64 {
	const n = 5000
	const kmax = 500.0
	x := make([]float64, n)
	y := make([]float64, n)
	exp := 2 * (m + p + 2)
	x[0] = 0.0001
	step := (kmax - x[0]) / float64(n-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			x[i] = x[0] + step*float64(i)
		}
		g := yukawaGreen(x[i], alpha, kappa)
		y[i] = g * g * math.Pow(x[i], float64(exp))
	}
	return integrate.Trapezoidal(x, y)
}

// pmForceError is the reciprocal-space (mesh) force error estimate for
// assignment order p, mesh spacing h, splitting parameter alpha and
// screening kappa (kappa=0 for pure Coulomb).
func pmForceError(kappa, h, alpha float64, p int) float64 {
	if p < 1 || p > 7 {
		chk.Panic("ewald: charge assignment order p=%d out of supported range [1,7]", p)
	}
	c := cmp[p-1]
	var sum float64
	for m := 0; m < p; m++ {
		expp := 2 * (m + p)
		sum += c[m] * (2.0 / float64(1+expp)) * betamp(m, p, alpha, kappa) * math.Pow(h/2, float64(expp))
	}
	return math.Sqrt(3.0*sum) / (2 * math.Pi)
}

// ppForceError is the real-space cutoff error estimate.
func ppForceError(kappa, rc, alpha float64) float64 {
	return 2.0 * math.Exp(-(0.5*kappa/alpha)*(0.5*kappa/alpha)-alpha*alpha*rc*rc) / math.Sqrt(rc)
}

// TotalError combines the PP and PM estimates in quadrature.
func TotalError(kappa, rc, h, alpha float64, p int) (total, pp, pm float64) {
	pp = ppForceError(kappa, rc, alpha)
	pm = pmForceError(kappa, h, alpha, p)
	total = math.Sqrt(pp*pp + pm*pm)
	return
}

// Params is the resolved, ready-to-use set of long-range solver
// parameters.
type Params struct {
	Alpha          float64
	Rc             float64
	M              [3]int
	Cao            int
	PredictedError float64
}

// minAlphaForRc finds, by golden-section search over a bracket, the
// alpha in (loAlpha, hiAlpha) that minimizes the total force error for
// a fixed rc, h and cao; the total error is unimodal in alpha (PP decays,
// PM grows), so a derivative-free bracket search converges without a
// general-purpose optimizer library.
func minAlphaForRc(kappa, rc, h float64, cao int, loAlpha, hiAlpha float64) (alpha, err float64) {
	const gr = 0.6180339887498949 // (sqrt(5)-1)/2
	a, b := loAlpha, hiAlpha
	f := func(x float64) float64 {
		total, _, _ := TotalError(kappa, rc, h, x, cao)
		return total
	}
	c := b - gr*(b-a)
	d := a + gr*(b-a)
	for i := 0; i < 40 && b-a > 1e-6; i++ {
		if f(c) < f(d) {
			b = d
		} else {
			a = c
		}
		c = b - gr*(b-a)
		d = a + gr*(b-a)
	}
	alpha = 0.5 * (a + b)
	err = f(alpha)
	return
}

// Solve picks (alpha, rc, M) minimizing estimated compute work among
// configurations whose predicted force error is within target, scanning
// rc and the mesh dimension from cheapest to most expensive (a
// deterministic grid over rc and M, with a bracketed search over alpha
// at each candidate). kappa is the Yukawa screening constant (0 for
// Coulomb). n is the particle count, used only to rank candidate work
// estimates, not to change the error formulas.
func Solve(target float64, l [3]float64, n, cao int, kappa float64) (*Params, error) {
	if cao < 1 || cao > 7 {
		return nil, chk.Err("ewald: cao=%d out of supported range [1,7]", cao)
	}
	halfL := math.Min(l[0], math.Min(l[1], l[2])) / 2

	rcCandidates := make([]float64, 0, 20)
	for frac := 0.1; frac <= 1.0; frac += 0.05 {
		rcCandidates = append(rcCandidates, frac*halfL)
	}

	meshCandidates := []int{8, 16, 24, 32, 48, 64, 96, 128}

	type candidate struct {
		rc, alpha, err, work float64
		m                    int
	}
	var best *candidate

	for _, rc := range rcCandidates {
		for _, m := range meshCandidates {
			h := l[0] / float64(m) // assume a near-cubic mesh; per-axis spacing refined below
			loAlpha := 0.5 / rc
			hiAlpha := 8.0 / rc
			alpha, predErr := minAlphaForRc(kappa, rc, h, cao, loAlpha, hiAlpha)
			if predErr > target {
				continue
			}
			ppWork := float64(n) * (4.0 / 3.0) * math.Pi * rc * rc * rc / (l[0] * l[1] * l[2])
			pmWork := float64(m*m*m)*math.Log2(float64(m)) + float64(n*cao*cao*cao)
			work := ppWork + pmWork
			cand := candidate{rc: rc, alpha: alpha, err: predErr, m: m, work: work}
			if best == nil || cand.work < best.work {
				best = &cand
			}
		}
	}
	if best == nil {
		return nil, chk.Err("ewald: no (rc, M) combination in the search grid meets target force error %v", target)
	}

	mx := int(math.Round(l[0] / (l[0] / float64(best.m))))
	my := int(math.Round(l[1] / (l[0] / float64(best.m))))
	mz := int(math.Round(l[2] / (l[0] / float64(best.m))))

	return &Params{
		Alpha:          best.alpha,
		Rc:             best.rc,
		M:              [3]int{mx, my, mz},
		Cao:            cao,
		PredictedError: best.err,
	}, nil
}
