// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pp implements short-range force accumulation across minimum-
// image neighbor pairs: the PP half of the PP+PM split.
package pp

import (
	"math"

	"github.com/SilvestriStefano/sarkas-lux/cell"
	"github.com/SilvestriStefano/sarkas-lux/potential"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Result holds the accumulators produced by one PP evaluation.
type Result struct {
	Ureal float64 // real-space potential energy
	Wreal float64 // real-space virial, Σ r·F, for pressure
}

// Compute accumulates real-space forces into s.Acc (as acceleration,
// F/m, already applied per particle) and returns the energy and virial
// accumulators. family resolves the kernel once via potential.Lookup,
// hoisted out of the pair loop, rather than re-dispatching on every
// pair; the per-pair kernel.Force call itself is still a dynamic
// interface call, since Kernel is an interface.
func Compute(s *species.State, list *cell.List, tensor *potential.Tensor, family potential.Family, rc float64) Result {
	kernel := potential.Lookup(family)
	sides := s.Box.Sides()
	rcSq := rc * rc

	var res Result
	list.ForEachPair(func(i, j int) {
		dx := species.Wrap(s.Pos[0][i]-s.Pos[0][j], sides[0])
		dy := species.Wrap(s.Pos[1][i]-s.Pos[1][j], sides[1])
		dz := species.Wrap(s.Pos[2][i]-s.Pos[2][j], sides[2])
		r2 := dx*dx + dy*dy + dz*dz
		if r2 >= rcSq {
			return // strict inequality: a pair at r==rc contributes zero PP force
		}
		r := math.Sqrt(r2)

		si, sj := s.Sid[i], s.Sid[j]
		p := tensor.Params(si, sj)
		U, fOverR := kernel.Force(r, p)

		fx, fy, fz := dx*fOverR, dy*fOverR, dz*fOverR

		mi := s.Table[si].Mass
		mj := s.Table[sj].Mass
		s.Acc[0][i] += fx / mi
		s.Acc[1][i] += fy / mi
		s.Acc[2][i] += fz / mi
		s.Acc[0][j] -= fx / mj
		s.Acc[1][j] -= fy / mj
		s.Acc[2][j] -= fz / mj

		res.Ureal += U
		res.Wreal += r2 * fOverR
	})
	return res
}
