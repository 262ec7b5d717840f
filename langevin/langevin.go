// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package langevin adds friction and a Gaussian random force to the
// Velocity-Verlet integration, offering the BBK and van
// Gunsteren-Berendsen discretizations as two small, selectable
// variants (the same "one interface, two concrete implementations"
// shape used for the pack's Small/Large strain split in msolid).
package langevin

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Source is the subset of math/rand.Source that gonum's distuv.Normal
// needs; *rng.Stream satisfies it, keeping Langevin noise tied to the
// checkpointed, restart-reproducible generator.
type Source interface {
	Int63() int64
	Seed(int64)
}

// Variant selects the stochastic discretization.
type Variant int

const (
	// BBK adds friction and noise as explicit acceleration terms
	// (meant to be called before the integrator's kick), then an
	// implicit half-step correction 1/(1+gamma*dt/2) is applied to the
	// resulting velocity via FinishStep.
	BBK Variant = iota
	// VanGunsterenBerendsen applies the exact Ornstein-Uhlenbeck update
	// directly to the velocity: multiplicative decay exp(-gamma*dt)
	// plus a noise kick with the matching exact variance, bypassing
	// the acceleration path entirely.
	VanGunsterenBerendsen
)

// Driver applies friction and thermal noise once per step.
type Driver struct {
	Gamma   float64
	KB      float64
	Variant Variant
	Target  []float64 // target temperature per species id
	Src     Source
}

func (d *Driver) normal() float64 {
	n := distuv.Normal{Mu: 0, Sigma: 1, Src: d.Src}
	return n.Rand()
}

// AddAccel adds the BBK friction+noise acceleration contribution for
// every particle into s.Acc. Call this between the force recompute and
// the integrator's second half-kick; follow the step with FinishStep.
// A no-op under the van Gunsteren-Berendsen variant.
func (d *Driver) AddAccel(s *species.State, dt float64) {
	if d.Variant != BBK {
		return
	}
	for i := 0; i < s.N; i++ {
		sid := s.Sid[i]
		m := s.Table[sid].Mass
		sigma := math.Sqrt(2 * d.Gamma * d.KB * d.Target[sid] / (m * dt))
		for ax := 0; ax < 3; ax++ {
			s.Acc[ax][i] += -d.Gamma*s.Vel[ax][i] + sigma*d.normal()
		}
	}
}

// FinishStep applies the variant-specific velocity update after the
// integrator's kicks for this step are done: BBK's implicit half-step
// correction, or van Gunsteren-Berendsen's direct Ornstein-Uhlenbeck
// overwrite of the velocity.
func (d *Driver) FinishStep(s *species.State, dt float64) {
	switch d.Variant {
	case BBK:
		factor := 1 / (1 + d.Gamma*dt/2)
		for i := 0; i < s.N; i++ {
			for ax := 0; ax < 3; ax++ {
				s.Vel[ax][i] *= factor
			}
		}
	case VanGunsterenBerendsen:
		for i := 0; i < s.N; i++ {
			sid := s.Sid[i]
			m := s.Table[sid].Mass
			decay := math.Exp(-d.Gamma * dt)
			variance := d.KB * d.Target[sid] / m * (1 - decay*decay)
			sigma := math.Sqrt(variance)
			for ax := 0; ax < 3; ax++ {
				s.Vel[ax][i] = decay*s.Vel[ax][i] + sigma*d.normal()
			}
		}
	}
}
