// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pm implements the particle-mesh half of the PP+PM split: charge
// assignment onto a uniform mesh via cardinal B-splines, a Poisson solve
// in Fourier space using an optimized (Hockney-Eastwood) influence
// function, and interpolation of the mesh-computed field back onto the
// particles.
package pm

import (
	"github.com/cpmech/gosl/chk"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Mesh holds the grid geometry and the precomputed influence function
// for one combination of (box, mesh size, assignment order, alpha).
// Build it once per simulation (it only depends on quantities that are
// fixed for the run) and reuse it every step.
type Mesh struct {
	Mx, My, Mz int
	H          [3]float64 // mesh spacing per axis
	L          [3]float64
	Cao        int // charge assignment order, 1..7
	Alpha      float64
	gk         [][][]float64 // optimized Green's function, half-complex layout
}

// NewMesh precomputes the optimized influence function for a box of
// side l, an Mx×My×Mz mesh, assignment order cao, Ewald parameter
// alpha, and reference Green's function ref (CoulombRefGreen or
// YukawaRefGreen). mMax is the alias-sum truncation (2 is adequate for
// cao<=7).
func NewMesh(mx, my, mz int, l [3]float64, cao int, alpha float64, ref RefGreen, mMax int) *Mesh {
	if cao < 1 || cao > 7 {
		chk.Panic("pm: charge assignment order cao=%d out of supported range [1,7]", cao)
	}
	h := [3]float64{l[0] / float64(mx), l[1] / float64(my), l[2] / float64(mz)}
	m := &Mesh{Mx: mx, My: my, Mz: mz, H: h, L: l, Cao: cao, Alpha: alpha}
	m.gk = influenceFunction(mx, my, mz, h, l, cao, alpha, ref, mMax)
	return m
}

// assignment caches, for one particle, the base mesh index and the
// per-axis B-spline weights needed both to deposit its charge and,
// later, to interpolate the field back onto it.
type assignment struct {
	base [3]int // lowest mesh index touched along each axis
	w    [3][]float64
}

func (m *Mesh) weightsFor(s *species.State, i int) assignment {
	var a assignment
	sides := s.Box.Sides()
	for k := 0; k < 3; k++ {
		x := s.Pos[k][i] + sides[k]/2 // shift into [0, L)
		n := [3]int{m.Mx, m.My, m.Mz}[k]
		u := x / m.H[k]
		idx := int(u)
		frac := u - float64(idx)
		if frac < 0 {
			frac += 1
			idx--
		}
		a.base[k] = (((idx - m.Cao + 1) % n) + n) % n
		a.w[k] = fillBSpline(frac, m.Cao)
	}
	return a
}

// AssignCharges deposits every particle's charge onto rho via cardinal
// B-spline weights of order m.Cao, wrapping indices periodically.
func (m *Mesh) AssignCharges(s *species.State) [][][]float64 {
	rho := alloc3Real(m.Mx, m.My, m.Mz)
	n := [3]int{m.Mx, m.My, m.Mz}
	for i := 0; i < s.N; i++ {
		q := s.Table[s.Sid[i]].Charge
		if q == 0 {
			continue
		}
		a := m.weightsFor(s, i)
		for ax := 0; ax < m.Cao; ax++ {
			ix := ((a.base[0]+ax)%n[0] + n[0]) % n[0]
			wx := a.w[0][ax] * q
			for ay := 0; ay < m.Cao; ay++ {
				iy := ((a.base[1]+ay)%n[1] + n[1]) % n[1]
				wxy := wx * a.w[1][ay]
				for az := 0; az < m.Cao; az++ {
					iz := ((a.base[2]+az)%n[2] + n[2]) % n[2]
					rho[ix][iy][iz] += wxy * a.w[2][az]
				}
			}
		}
	}
	return rho
}

// SolvePoisson transforms rho to k-space, multiplies by the optimized
// Green's function, and transforms back, returning the mesh potential
// phi and the reciprocal-space energy, (1/2) * sum_k G_k |rho_hat_k|^2
// over the independent (half-complex) modes, doubled for the modes
// whose Hermitian partner was not stored explicitly.
func (m *Mesh) SolvePoisson(rho [][][]float64) (phi [][][]float64, energy float64) {
	rhoHat := forwardRFFT3D(rho, m.Mx, m.My, m.Mz)
	phiHat := alloc3Complex(m.Mx, m.My, m.Mz/2+1)
	volume := m.L[0] * m.L[1] * m.L[2]

	for ix := range rhoHat {
		for iy := range rhoHat[ix] {
			for iz := range rhoHat[ix][iy] {
				g := m.gk[ix][iy][iz]
				c := rhoHat[ix][iy][iz]
				phiHat[ix][iy][iz] = complex(g, 0) * c
				weight := 2.0
				if iz == 0 || (m.Mz%2 == 0 && iz == m.Mz/2) {
					weight = 1.0
				}
				energy += weight * g * (real(c)*real(c) + imag(c)*imag(c))
			}
		}
	}
	energy *= 0.5 / volume

	phi = inverseRFFT3D(phiHat, m.Mx, m.My, m.Mz)
	return phi, energy
}

// Fields computes E = -grad(phi) on the mesh via centered finite
// differences (the default differencing scheme the influence function
// is built against).
func (m *Mesh) Fields(phi [][][]float64) (ex, ey, ez [][][]float64) {
	ex = alloc3Real(m.Mx, m.My, m.Mz)
	ey = alloc3Real(m.Mx, m.My, m.Mz)
	ez = alloc3Real(m.Mx, m.My, m.Mz)
	for i := 0; i < m.Mx; i++ {
		ip, im := (i+1)%m.Mx, (i-1+m.Mx)%m.Mx
		for j := 0; j < m.My; j++ {
			jp, jm := (j+1)%m.My, (j-1+m.My)%m.My
			for k := 0; k < m.Mz; k++ {
				kp, km := (k+1)%m.Mz, (k-1+m.Mz)%m.Mz
				ex[i][j][k] = -(phi[ip][j][k] - phi[im][j][k]) / (2 * m.H[0])
				ey[i][j][k] = -(phi[i][jp][k] - phi[i][jm][k]) / (2 * m.H[1])
				ez[i][j][k] = -(phi[i][j][kp] - phi[i][j][km]) / (2 * m.H[2])
			}
		}
	}
	return
}

// InterpolateForces applies the same B-spline weights used for charge
// assignment (charge-conserving / momentum-conserving interpolation) to
// sample the mesh field at each particle's position and adds the
// resulting acceleration into acc, a caller-owned [3][N] buffer private
// to this call. It never touches s.Acc directly: the caller is
// responsible for reducing acc into s.Acc only after any concurrent PP
// accumulation into s.Acc has finished, since the two would otherwise
// race on the same slots.
func (m *Mesh) InterpolateForces(s *species.State, ex, ey, ez [][][]float64, acc [3][]float64) {
	n := [3]int{m.Mx, m.My, m.Mz}
	for i := 0; i < s.N; i++ {
		q := s.Table[s.Sid[i]].Charge
		if q == 0 {
			continue
		}
		mass := s.Table[s.Sid[i]].Mass
		a := m.weightsFor(s, i)
		var fx, fy, fz float64
		for ax := 0; ax < m.Cao; ax++ {
			ix := ((a.base[0]+ax)%n[0] + n[0]) % n[0]
			wx := a.w[0][ax]
			for ay := 0; ay < m.Cao; ay++ {
				iy := ((a.base[1]+ay)%n[1] + n[1]) % n[1]
				wxy := wx * a.w[1][ay]
				for az := 0; az < m.Cao; az++ {
					iz := ((a.base[2]+az)%n[2] + n[2]) % n[2]
					w := wxy * a.w[2][az]
					fx += w * ex[ix][iy][iz]
					fy += w * ey[ix][iy][iz]
					fz += w * ez[ix][iy][iz]
				}
			}
		}
		acc[0][i] += q * fx / mass
		acc[1][i] += q * fy / mass
		acc[2][i] += q * fz / mass
	}
}

// Compute runs one full PM evaluation: assign charges, solve Poisson,
// differentiate, and interpolate forces into a freshly allocated,
// private [3][N] acceleration buffer. It returns the reciprocal-space
// energy and that buffer; the caller must add it into s.Acc itself,
// after any concurrent PP accumulation into s.Acc has completed, since
// Compute never writes to s.Acc.
func (m *Mesh) Compute(s *species.State) (energy float64, acc [3][]float64) {
	rho := m.AssignCharges(s)
	phi, e := m.SolvePoisson(rho)
	ex, ey, ez := m.Fields(phi)
	acc = [3][]float64{make([]float64, s.N), make([]float64, s.N), make([]float64, s.N)}
	m.InterpolateForces(s, ex, ey, ez, acc)
	return e, acc
}
