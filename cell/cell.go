// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cell implements the linked-cell spatial hash used by the PP
// engine: a grid of cubic cells of side ≥ rc, stored as a
// flat per-cell head-of-list index plus a per-particle next-in-cell
// pointer, rebuilt once per step.
package cell

import (
	"github.com/cpmech/gosl/chk"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// halfStencil is the 13 forward neighbor cells of a cell; the cell
// itself is not in the array. Visiting only forward neighbors and accumulating
// both ±f_ij from one pair evaluation (Newton's third law) covers every
// unordered pair exactly once without double counting.
var halfStencil = [13][3]int{
	{1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {-1, 1, 0},
	{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {-1, 1, 1},
	{1, 0, -1}, {1, 1, -1}, {0, 1, -1}, {-1, 1, -1},
	{0, 0, 1},
}

// List is a linked-cell spatial hash over a periodic box.
type List struct {
	Rc     float64
	N      [3]int     // number of cells per axis
	H      [3]float64 // cell side per axis, H[k] = L[k]/N[k]; >= Rc unless N[k] was raised to the minimum of 3
	Box    species.Box
	head   []int // head[cell] = index of first particle in cell, or -1
	next   []int // next[i] = index of next particle in same cell as i, or -1
}

// Build constructs the cell list for the current positions. Must be
// called once per step; this is acceptable because particles
// move less than one cell per step for a sensibly chosen dt.
func Build(s *species.State, rc float64) *List {
	sides := s.Box.Sides()
	for k := 0; k < 3; k++ {
		if rc > sides[k]/2 {
			chk.Panic("cell: rc=%v exceeds half the box side L[%d]=%v (minimum-image validity requires rc <= L/2)", rc, k, sides[k])
		}
	}
	l := &List{Rc: rc, Box: s.Box}
	for k := 0; k < 3; k++ {
		n := int(sides[k] / rc)
		if n < 3 {
			n = 3 // guarantee the half-stencil has a well-defined disjoint geometry
		}
		l.N[k] = n
		l.H[k] = sides[k] / float64(n)
	}
	ncells := l.N[0] * l.N[1] * l.N[2]
	l.head = make([]int, ncells)
	for i := range l.head {
		l.head[i] = -1
	}
	l.next = make([]int, s.N)
	for i := 0; i < s.N; i++ {
		c := l.cellOf(s, i)
		idx := l.flatten(c)
		l.next[i] = l.head[idx]
		l.head[idx] = i
	}
	return l
}

// cellOf returns the (cx,cy,cz) cell indices for particle i, folding
// coordinates into [0, L) before dividing by the cell size.
func (l *List) cellOf(s *species.State, i int) [3]int {
	sides := l.Box.Sides()
	var c [3]int
	for k := 0; k < 3; k++ {
		x := s.Pos[k][i] + sides[k]/2
		n := l.N[k]
		idx := int(x / l.H[k])
		idx = ((idx % n) + n) % n
		c[k] = idx
	}
	return c
}

func (l *List) flatten(c [3]int) int {
	return (c[0]*l.N[1]+c[1])*l.N[2] + c[2]
}

func (l *List) wrapCell(c [3]int) [3]int {
	var w [3]int
	for k := 0; k < 3; k++ {
		n := l.N[k]
		w[k] = ((c[k] % n) + n) % n
	}
	return w
}

// Pair is an unordered neighboring particle pair found by ForEachPair.
type Pair struct{ I, J int }

// ForEachPair visits every unordered pair (i,j) whose cells are within
// the half-stencil of one another exactly once, calling f(i,j). Callers
// apply the minimum-image displacement and the rc cutoff themselves
// ForEachPair only enumerates geometric neighbor
// candidates, it does not filter by true distance.
func (l *List) ForEachPair(f func(i, j int)) {
	for cx := 0; cx < l.N[0]; cx++ {
		for cy := 0; cy < l.N[1]; cy++ {
			for cz := 0; cz < l.N[2]; cz++ {
				c := [3]int{cx, cy, cz}
				base := l.flatten(c)

				// pairs within the same cell
				for i := l.head[base]; i != -1; i = l.next[i] {
					for j := l.next[i]; j != -1; j = l.next[j] {
						f(i, j)
					}
				}

				// pairs with the 13 forward neighbor cells
				for _, off := range halfStencil {
					nb := l.wrapCell([3]int{c[0] + off[0], c[1] + off[1], c[2] + off[2]})
					nbFlat := l.flatten(nb)
					if nbFlat == base {
						continue // degenerate wrap when an axis has fewer than 3 cells
					}
					for i := l.head[base]; i != -1; i = l.next[i] {
						for j := l.head[nbFlat]; j != -1; j = l.next[j] {
							f(i, j)
						}
					}
				}
			}
		}
	}
}
