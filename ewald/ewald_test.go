// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ewald

import (
	"math"
	"testing"
)

func TestPPForceErrorDecaysWithRc(t *testing.T) {
	alpha := 0.3
	small := ppForceError(0, 2.0, alpha)
	large := ppForceError(0, 6.0, alpha)
	if !(large < small) {
		t.Fatalf("expected PP force error to shrink with rc, got rc=2 -> %v, rc=6 -> %v", small, large)
	}
}

func TestPMForceErrorDecaysWithMeshResolution(t *testing.T) {
	alpha := 0.3
	coarse := pmForceError(0, 1.0, alpha, 5)
	fine := pmForceError(0, 0.25, alpha, 5)
	if !(fine < coarse) {
		t.Fatalf("expected PM force error to shrink with smaller h, got h=1 -> %v, h=0.25 -> %v", coarse, fine)
	}
}

func TestTotalErrorCombinesInQuadrature(t *testing.T) {
	total, pp, pm := TotalError(0, 3.0, 0.5, 0.3, 5)
	want := math.Sqrt(pp*pp + pm*pm)
	if math.Abs(total-want) > 1e-12 {
		t.Fatalf("TotalError = %v, want sqrt(pp^2+pm^2) = %v", total, want)
	}
}

func TestSolveMeetsLooseTargetWithValidMesh(t *testing.T) {
	l := [3]float64{10, 10, 10}
	p, err := Solve(5e-2, l, 1000, 5, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if p.Rc <= 0 || p.Rc > l[0]/2 {
		t.Fatalf("rc=%v out of bounds for box side %v", p.Rc, l[0])
	}
	if p.Alpha <= 0 {
		t.Fatalf("alpha=%v must be positive", p.Alpha)
	}
	for _, m := range p.M {
		if m < 8 {
			t.Fatalf("mesh dimension %d smaller than the smallest search candidate", m)
		}
	}
	if p.PredictedError > 5e-2 {
		t.Fatalf("predicted error %v exceeds requested target 5e-2", p.PredictedError)
	}
}

func TestSolveRejectsInvalidCao(t *testing.T) {
	l := [3]float64{10, 10, 10}
	if _, err := Solve(1e-3, l, 1000, 8, 0); err == nil {
		t.Fatal("expected an error for cao=8 (out of [1,7])")
	}
}
