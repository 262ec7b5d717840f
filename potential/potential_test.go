package potential_test

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/SilvestriStefano/sarkas-lux/potential"
	"github.com/SilvestriStefano/sarkas-lux/potential/coulomb"
	_ "github.com/SilvestriStefano/sarkas-lux/potential/lj"
	_ "github.com/SilvestriStefano/sarkas-lux/potential/yukawa"
)

func TestRegularizeClamp(t *testing.T) {
	p := []float64{1, 1, 0.1} // arbitrary slots, last = a_rs
	chk.Scalar(t, "clamp below a_rs", 1e-15, potential.Regularize(0.01, p), 0.1)
	chk.Scalar(t, "no clamp above a_rs", 1e-15, potential.Regularize(0.5, p), 0.5)
}

func TestCoulombZeroAtInfinityTrend(t *testing.T) {
	k := potential.Lookup(potential.Coulomb)
	p := []float64{1.0, 1.0, 1e-6}
	U1, _ := k.Force(1.0, p)
	U2, _ := k.Force(5.0, p)
	if !(U1 > U2 && U2 > 0) {
		t.Fatalf("expected monotonic decay, got U(1)=%v U(5)=%v", U1, U2)
	}
}

func TestCoulombForceMatchesDerivative(t *testing.T) {
	k := potential.Lookup(potential.Coulomb)
	p := []float64{1.0, 1.0, 1e-6}
	r := 2.0
	_, fOverR := k.Force(r, p)
	_, dUdr, _ := k.Derivatives(r, p)
	chk.Scalar(t, "f/r vs -dU/dr/r", 1e-9, fOverR, -dUdr/r)
}

func TestLJMinimumNearSigma(t *testing.T) {
	k := potential.Lookup(potential.LennardJones)
	// eps, sigma, m=12, n=6, a_rs
	p := []float64{1.0, 1.0, 12, 6, 1e-3}
	rMin := math.Pow(2, 1.0/6.0) // standard LJ 12-6 minimum at r=2^(1/6) σ
	_, fOverR := k.Force(rMin, p)
	chk.Scalar(t, "zero net force at LJ minimum", 1e-6, fOverR, 0)
}

func TestYukawaReducesWithScreening(t *testing.T) {
	k := potential.Lookup(potential.Yukawa)
	alpha := 5.0 // large alpha: PP part ~ fully screened smooth tail negligible
	p := []float64{1.0, 2.0, alpha, 1e-6}
	U, _ := k.Force(3.0, p)
	if math.IsNaN(U) || math.IsInf(U, 0) {
		t.Fatalf("yukawa kernel produced non-finite U: %v", U)
	}
	p0 := []float64{1.0, 0.0, alpha, 1e-6} // same pair without screening
	U0, _ := k.Force(3.0, p0)
	if !(U < U0) {
		t.Fatalf("expected screening to reduce U, got U(kappa=2)=%v U(kappa=0)=%v", U, U0)
	}
}

var _ = coulomb.NSlots
