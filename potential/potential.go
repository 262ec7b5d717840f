// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package potential implements the pluggable pair-potential abstraction:
// a tagged variant (Family) resolved once to its Kernel implementation
// plus the per-species-pair parameter tensor P[p,i,j].
//
// Mirrors the registry idiom gofem/msolid uses for its solid models: an
// init()-populated map, here keyed by a Family enum (with a separate
// name-to-Family table for configuration), so the PP inner loop
// (package pp) resolves its kernel once via Lookup instead of a map
// lookup per pair.
package potential

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// Family tags a potential kernel. The PP inner loop resolves a Family to
// its Kernel once per call via Lookup, outside the pair loop, rather
// than re-resolving it per pair; the resulting Kernel.Force call is
// still a regular interface dispatch.
type Family int

const (
	Coulomb Family = iota
	Yukawa
	EGS
	LennardJones
	Moliere
	QSP
	Tabulated
	nFamilies
)

// Kernel is the pure pair-potential interface every family implements.
// r is a scalar distance; p is P[:,i,j], the parameter slice for the
// (i,j) species pair, whose last element is always the short-range
// cutoff a_rs.
type Kernel interface {
	// Force returns U(r) and |F|/r so the vector force on i from j is
	// (r_i - r_j) * fOverR.
	Force(r float64, p []float64) (U, fOverR float64)

	// Derivatives returns U, dU/dr and d²U/dr² for force-error and
	// virial computations.
	Derivatives(r float64, p []float64) (U, dUdr, d2Udr2 float64)
}

// Regularize applies the branchless short-range clamp common to every
// kernel: r' = max(r, a_rs), a_rs = p[last]. This prevents singular
// forces on near-overlap without a branch in the inner loop.
func Regularize(r float64, p []float64) float64 {
	aRS := p[len(p)-1]
	if r < aRS {
		return aRS
	}
	return r
}

// registry maps a Family to its kernel implementation. Populated by
// init() in each potential/<family> subpackage via Register.
var registry = make(map[Family]Kernel)

// names maps the configuration-facing string name to a Family, for the
// config package to resolve `potential.type` into an enum value.
var names = map[string]Family{
	"coulomb": Coulomb,
	"yukawa":  Yukawa,
	"egs":     EGS,
	"lj":      LennardJones,
	"moliere": Moliere,
	"qsp":     QSP,
	"tabulated": Tabulated,
}

// Register installs a kernel implementation for a family. Called from
// each potential/<family> package's init().
func Register(f Family, k Kernel) {
	registry[f] = k
}

// Lookup returns the kernel registered for a family, panicking (a setup
// error, not a runtime one) if the family's package was never imported.
func Lookup(f Family) Kernel {
	k, ok := registry[f]
	if !ok {
		chk.Panic("potential: family %v has no registered kernel (forgot to import its subpackage?)", f)
	}
	return k
}

// ParseFamily resolves a configuration string (e.g. "Yukawa", "yukawa")
// to a Family, returning an error the caller turns into a
// ConfigurationError. Matching is case-insensitive since the
// configuration schema doesn't pin a casing convention for this field.
func ParseFamily(name string) (Family, bool) {
	f, ok := names[strings.ToLower(name)]
	return f, ok
}

func (f Family) String() string {
	for name, ff := range names {
		if ff == f {
			return name
		}
	}
	return "unknown"
}

// Tensor is the parameter tensor P[p,i,j], stored as one
// parameter slice per species pair (Data[i][j]) rather than slot-major,
// since every kernel consumes exactly P[:,i,j] as a contiguous slice.
type Tensor struct {
	NSpecies int
	NSlots   int
	Data     [][][]float64 // Data[i][j][p]
}

// NewTensor allocates a zeroed tensor for nSpecies species and nSlots
// parameter slots per pair (the last slot is always a_rs).
func NewTensor(nSpecies, nSlots int) *Tensor {
	data := make([][][]float64, nSpecies)
	for i := range data {
		data[i] = make([][]float64, nSpecies)
		for j := range data[i] {
			data[i][j] = make([]float64, nSlots)
		}
	}
	return &Tensor{NSpecies: nSpecies, NSlots: nSlots, Data: data}
}

// Params returns P[:,i,j], the slice passed straight into Kernel calls.
func (t *Tensor) Params(i, j int) []float64 { return t.Data[i][j] }

// Set assigns a single slot of P[:,i,j]. Symmetric pairs (j,i) are not
// auto-mirrored; callers fill both triangles explicitly so asymmetric
// families (none currently, but the contract stays honest) are possible.
func (t *Tensor) Set(slot, i, j int, v float64) {
	t.Data[i][j][slot] = v
}

// CutoffRS returns a_rs = P[last,i,j], the short-range regularization
// cutoff for the (i,j) pair.
func (t *Tensor) CutoffRS(i, j int) float64 {
	return t.Data[i][j][t.NSlots-1]
}

// secondDerivStep is the central-difference step used by
// CentralSecondDeriv. Potentials vary over many decades of r (Yukawa
// screening lengths, LJ σ, tabulated grid spacing); a fixed relative
// step keeps the truncation error comparable across families without
// each kernel hand-deriving d²U/dr².
const secondDerivStep = 1e-6

// CentralSecondDeriv estimates d²U/dr² from an analytic dU/dr by a
// central difference. Kernels with a closed-form dU/dr (every family
// here has one) use this instead of re-deriving the second derivative,
// which the force-error integral only needs to
// modest accuracy.
func CentralSecondDeriv(dUdr func(r float64) float64, r float64) float64 {
	h := secondDerivStep * (r + secondDerivStep)
	return (dUdr(r+h) - dUdr(r-h)) / (2 * h)
}

// DerivativesFromForce builds a Kernel's Derivatives method out of its
// Force method alone, using the identity f/r = -(dU/dr)/r that defines
// f/r in the first place (Force on i from j is (r_i-r_j)*f/r = -∇U).
// d²U/dr² follows from a central difference of the resulting dU/dr.
// Every closed-form family is a thin Force implementation plus this
// helper; tabulated reads its derivatives from the table instead.
func DerivativesFromForce(k Kernel, r float64, p []float64) (U, dUdr, d2Udr2 float64) {
	r = Regularize(r, p)
	var fOverR float64
	U, fOverR = k.Force(r, p)
	dUdr = -fOverR * r
	d2Udr2 = CentralSecondDeriv(func(rr float64) float64 {
		_, fr := k.Force(rr, p)
		return -fr * rr
	}, r)
	return
}
