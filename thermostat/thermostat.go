// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermostat implements Berendsen velocity rescaling, applied
// once per step after the integrator's second kick, with independent
// target temperatures per species (mirroring the per-species model
// records used across the rest of the pack's mdl-style packages).
package thermostat

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Berendsen holds the relaxation time and per-species targets.
type Berendsen struct {
	Tau        float64   // relaxation time τ
	Target     []float64 // target temperature per species id
	CutoffStep int       // rescaling only applied while step < CutoffStep
}

// Apply rescales every particle's velocity toward Target[sid] with
// relaxation time Tau, following
//
//	λ_s = sqrt(1 + (dt/τ)(T_target,s/T_s - 1))
//
// Called once after the integrator's full step. A no-op once step
// reaches CutoffStep (equilibration only; production runs unthermostatted).
func (b *Berendsen) Apply(s *species.State, dt float64, step int, kB float64) {
	if step >= b.CutoffStep {
		return
	}
	counts := s.SpeciesCounts()
	for sid := range s.Table {
		if counts[sid] == 0 {
			continue
		}
		tInst := s.Temperature(sid, kB)
		if tInst <= 0 {
			continue // no kinetic energy to rescale yet (e.g. cold start)
		}
		ratio := b.Target[sid]/tInst - 1
		lambda := math.Sqrt(1 + (dt/b.Tau)*ratio)
		for i := 0; i < s.N; i++ {
			if s.Sid[i] != sid {
				continue
			}
			for d := 0; d < 3; d++ {
				s.Vel[d][i] *= lambda
			}
		}
	}
}
