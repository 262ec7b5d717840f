package egs

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestResolveBranchMonotonic(t *testing.T) {
	c1, c2, invLM, invLP := ResolveBranch(0.5, 1.0, 1.0)
	alpha := 1.0 / math.Sqrt(0.5) // b/sqrt(b-nu) with b=1, nu=0.5
	chk.Scalar(t, "c1 = 1+alpha in monotonic branch", 1e-12, c1, 1+alpha)
	chk.Scalar(t, "c2 = 1-alpha in monotonic branch", 1e-12, c2, 1-alpha)
	if invLM <= 0 || invLP <= 0 {
		t.Fatalf("expected positive inverse screening lengths, got invLM=%v invLP=%v", invLM, invLP)
	}
}

func TestResolveBranchOscillatory(t *testing.T) {
	c1, c2, invLM, invLP := ResolveBranch(2.0, 1.0, 1.0)
	chk.Scalar(t, "c1==1 in oscillatory branch", 1e-15, c1, 1.0)
	if c2 <= 0 || invLM <= 0 || invLP <= 0 {
		t.Fatalf("expected positive branch constants, got c2=%v invLM=%v invLP=%v", c2, invLM, invLP)
	}
}

func TestForceMonotonicBranch(t *testing.T) {
	k := kernel{}
	c1, c2, invLM, invLP := ResolveBranch(0.5, 1.0, 1.0)
	p := []float64{1.0, 0.5, c1, c2, invLM, invLP, 1e-6}
	U1, _ := k.Force(1.0, p)
	U2, _ := k.Force(3.0, p)
	if !(U1 > U2) {
		t.Fatalf("expected decaying potential, U(1)=%v U(3)=%v", U1, U2)
	}
}

func TestDegeneracyFitFinite(t *testing.T) {
	h, gradh := DegeneracyFit(1.0)
	if math.IsNaN(h) || math.IsNaN(gradh) {
		t.Fatalf("degeneracy fit produced NaN: h=%v gradh=%v", h, gradh)
	}
}
