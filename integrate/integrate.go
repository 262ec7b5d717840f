// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate advances particle state in time with the symplectic
// Velocity-Verlet scheme, with an optional analytic Lorentz rotation in
// the half-kicks for a uniform magnetic field (the Spreiter & Walter
// magnetized-Verlet variant). The coefficient-struct-plus-Init pattern
// mirrors gofem's DynCoefs: parameters are resolved once per run, then
// reused every step without recomputation.
package integrate

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Coefs holds the per-step constants an integrator needs. Build once
// per run with Init; Step then only does arithmetic.
type Coefs struct {
	Dt         float64
	Magnetized bool
	// Rotation angle per species for the analytic Lorentz half-kick,
	// omega_c*dt/2, indexed by species id. Unused when Magnetized is
	// false.
	halfAngle []float64
}

// Init resolves the per-species rotation angles from the species table.
// table[s].Cyclotron is omega_c for species s (zero for neutrals).
func (c *Coefs) Init(dt float64, magnetized bool, table []species.Info) {
	c.Dt = dt
	c.Magnetized = magnetized
	if !magnetized {
		return
	}
	c.halfAngle = make([]float64, len(table))
	for s, info := range table {
		c.halfAngle[s] = info.Cyclotron * dt / 2
	}
}

// ForceFunc recomputes accelerations in place from the current
// positions (Step zeros s.Acc before calling it) and is supplied by the caller so this
// package stays agnostic to which force kernels (PP, PM, or both) are in
// play.
type ForceFunc func(s *species.State)

// Step advances s by one Velocity-Verlet step: half-kick, drift (with
// position wrap), force recompute, half-kick. When c.Magnetized is set,
// each half-kick additionally rotates the velocity analytically about
// the field axis (assumed z) by the per-species Larmor half-angle,
// which keeps the scheme symplectic without shrinking dt.
func (c *Coefs) Step(s *species.State, force ForceFunc) {
	halfDt := c.Dt / 2
	c.halfKick(s, halfDt)

	sides := s.Box.Sides()
	for i := 0; i < s.N; i++ {
		for d := 0; d < 3; d++ {
			s.Pos[d][i] += c.Dt * s.Vel[d][i]
		}
		s.Pos[0][i] = species.Wrap(s.Pos[0][i], sides[0])
		s.Pos[1][i] = species.Wrap(s.Pos[1][i], sides[1])
		s.Pos[2][i] = species.Wrap(s.Pos[2][i], sides[2])
	}

	for d := 0; d < 3; d++ {
		row := s.Acc[d]
		for i := range row {
			row[i] = 0
		}
	}
	force(s)

	c.halfKick(s, halfDt)
}

// halfKick applies v += h*a, then, if magnetized, rotates v about the z
// axis by the per-species Larmor half-angle (the order kick-then-rotate
// matches Spreiter & Walter's splitting of the Lorentz force into an
// E×B-free rotation plus the electrostatic kick).
func (c *Coefs) halfKick(s *species.State, h float64) {
	for i := 0; i < s.N; i++ {
		for d := 0; d < 3; d++ {
			s.Vel[d][i] += h * s.Acc[d][i]
		}
	}
	if !c.Magnetized {
		return
	}
	for i := 0; i < s.N; i++ {
		theta := c.halfAngle[s.Sid[i]]
		if theta == 0 {
			continue
		}
		cs, sn := math.Cos(theta), math.Sin(theta)
		vx, vy := s.Vel[0][i], s.Vel[1][i]
		s.Vel[0][i] = cs*vx - sn*vy
		s.Vel[1][i] = sn*vx + cs*vy
	}
}
