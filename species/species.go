// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package species holds the particle state (structure-of-arrays), the
// per-species immutable record and the periodic simulation box. It is
// the data model shared by every force/integration package; nothing here
// performs force evaluation.
package species

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Info is the immutable per-species record.
// Name is display-only; every other package indexes species by integer
// id, never by name.
type Info struct {
	Name            string  // display name, e.g. "H", "e"
	Mass            float64 // m
	Charge          float64 // q
	NumberDensity   float64 // n_s
	Temperature     float64 // target temperature T_s
	PlasmaFrequency float64 // ω_p, derived at setup time
	Cyclotron       float64 // ω_c, derived from B and q/m when magnetized
}

// Box is an orthorhombic, fully periodic simulation cell.
type Box struct {
	Lx, Ly, Lz float64
}

// Volume returns Lx*Ly*Lz.
func (b Box) Volume() float64 { return b.Lx * b.Ly * b.Lz }

// Sides returns the three side lengths as an array, indexed 0,1,2.
func (b Box) Sides() [3]float64 { return [3]float64{b.Lx, b.Ly, b.Lz} }

// Wrap maps a displacement component into [-L/2, L/2) (minimum image).
// Applying Wrap twice is idempotent.
func Wrap(d, L float64) float64 {
	d -= L * math.Floor(d/L+0.5)
	return d
}

// State is the structure-of-arrays particle state. Positions, velocities
// and accelerations are stored as [3][N] matrices (dimension-major, like
// gofem's BuildCoordsMatrix convention) to keep per-axis force kernels
// operating on contiguous slices.
type State struct {
	N       int
	Pos     [][]float64 // Pos[d][i], d in {0,1,2}
	Vel     [][]float64
	Acc     [][]float64
	Sid     []int // species id per particle, sid in [0,len(Table))
	Table   []Info
	Box     Box
	SeedRNG uint64 // RNG seed field; NewState leaves it zero and checkpoint does not store it (restart RNG state travels as rng.State)
}

// NewState allocates a zeroed State for n particles over the given
// species table and box.
func NewState(n int, table []Info, box Box) *State {
	if n <= 0 {
		chk.Panic("species: n must be positive (n=%d)", n)
	}
	return &State{
		N:     n,
		Pos:   la.MatAlloc(3, n),
		Vel:   la.MatAlloc(3, n),
		Acc:   la.MatAlloc(3, n),
		Sid:   make([]int, n),
		Table: table,
		Box:   box,
	}
}

// TotalNumberDensity returns Σ n_s over the species table.
func TotalNumberDensity(table []Info) (sum float64) {
	for _, sp := range table {
		sum += sp.NumberDensity
	}
	return
}

// WignerSeitzRadius returns a_ws = (3/(4π n_tot))^(1/3).
func WignerSeitzRadius(table []Info) float64 {
	nTot := TotalNumberDensity(table)
	if nTot <= 0 {
		chk.Panic("species: total number density must be positive (n_tot=%v)", nTot)
	}
	return math.Cbrt(3.0 / (4.0 * math.Pi * nTot))
}

// WrapAll re-wraps every particle position into the box. The integrator
// wraps positions inline in its drift and does not call this.
func (s *State) WrapAll() {
	L := s.Box.Sides()
	for d := 0; d < 3; d++ {
		row := s.Pos[d]
		Ld := L[d]
		for i := range row {
			row[i] = Wrap(row[i], Ld)
		}
	}
}

// Momentum returns Σ m_i v_i, the total linear momentum vector.
func (s *State) Momentum() [3]float64 {
	var p [3]float64
	for d := 0; d < 3; d++ {
		var sum float64
		for i := 0; i < s.N; i++ {
			sum += s.Table[s.Sid[i]].Mass * s.Vel[d][i]
		}
		p[d] = sum
	}
	return p
}

// ZeroCOMMomentum subtracts the center-of-mass velocity from every
// particle so total momentum is exactly zero, as required right after
// initialization.
func (s *State) ZeroCOMMomentum() {
	p := s.Momentum()
	var totalMass float64
	for i := 0; i < s.N; i++ {
		totalMass += s.Table[s.Sid[i]].Mass
	}
	if totalMass <= 0 {
		chk.Panic("species: total mass must be positive")
	}
	var vcom [3]float64
	for d := 0; d < 3; d++ {
		vcom[d] = p[d] / totalMass
	}
	for d := 0; d < 3; d++ {
		for i := 0; i < s.N; i++ {
			s.Vel[d][i] -= vcom[d]
		}
	}
}

// SpeciesCounts returns the number of particles per species index,
// derived from Sid (species partitions are contiguous by construction
// but this does not assume that).
func (s *State) SpeciesCounts() []int {
	counts := make([]int, len(s.Table))
	for _, sid := range s.Sid {
		counts[sid]++
	}
	return counts
}

// KineticEnergy returns the total kinetic energy Σ (1/2) m v².
func (s *State) KineticEnergy() float64 {
	var ke float64
	for i := 0; i < s.N; i++ {
		m := s.Table[s.Sid[i]].Mass
		v2 := s.Vel[0][i]*s.Vel[0][i] + s.Vel[1][i]*s.Vel[1][i] + s.Vel[2][i]*s.Vel[2][i]
		ke += 0.5 * m * v2
	}
	return ke
}

// Temperature returns the instantaneous temperature for species sid:
// T_s = (Σ m v²) / (d k_B N_s), using the non-zero box dimensionality
// d=3. kB is the Boltzmann constant in the caller's unit
// system (cgs or mks); see params.Units.
func (s *State) Temperature(sid int, kB float64) float64 {
	var sum float64
	var n int
	m := s.Table[sid].Mass
	for i := 0; i < s.N; i++ {
		if s.Sid[i] != sid {
			continue
		}
		v2 := s.Vel[0][i]*s.Vel[0][i] + s.Vel[1][i]*s.Vel[1][i] + s.Vel[2][i]*s.Vel[2][i]
		sum += m * v2
		n++
	}
	if n == 0 {
		return 0
	}
	const d = 3.0
	return sum / (d * kB * float64(n))
}
