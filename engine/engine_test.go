package engine

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/SilvestriStefano/sarkas-lux/potential/coulomb"
	_ "github.com/SilvestriStefano/sarkas-lux/potential/lj"

	"github.com/SilvestriStefano/sarkas-lux/params"
	"github.com/SilvestriStefano/sarkas-lux/pm"
	"github.com/SilvestriStefano/sarkas-lux/potential"
	"github.com/SilvestriStefano/sarkas-lux/rng"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

func smallLJState() (*species.State, *potential.Tensor) {
	box := species.Box{Lx: 20, Ly: 20, Lz: 20}
	table := []species.Info{{Mass: 1}}
	s := species.NewState(8, table, box)
	for i := 0; i < s.N; i++ {
		s.Pos[0][i] = float64(i%2) * 1.2
		s.Pos[1][i] = float64((i/2)%2) * 1.2
		s.Pos[2][i] = float64(i/4) * 1.2
	}
	tensor := potential.NewTensor(1, 5)
	tensor.Set(0, 0, 0, 1.0) // eps
	tensor.Set(1, 0, 0, 1.0) // sigma
	tensor.Set(2, 0, 0, 12) // m
	tensor.Set(3, 0, 0, 6)  // n
	tensor.Set(4, 0, 0, 1e-6)
	return s, tensor
}

// smallCoulombState builds an 8-particle, two-species alternating-charge
// configuration plus a Coulomb tensor with the charge-product and alpha
// slots filled, the way cmd/sarkaslux wires them before constructing the
// engine. Used to drive the PP+PM path, which smallLJState's mesh=nil
// setup never exercises.
func smallCoulombState(alpha float64) (*species.State, *potential.Tensor, *pm.Mesh) {
	box := species.Box{Lx: 20, Ly: 20, Lz: 20}
	table := []species.Info{{Mass: 1, Charge: 1}, {Mass: 1, Charge: -1}}
	s := species.NewState(8, table, box)
	for i := 0; i < s.N; i++ {
		s.Sid[i] = i % 2
		s.Pos[0][i] = float64(i%2) * 1.2
		s.Pos[1][i] = float64((i/2)%2) * 1.2
		s.Pos[2][i] = float64(i/4) * 1.2
	}
	tensor := potential.NewTensor(2, 3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			tensor.Set(0, i, j, table[i].Charge*table[j].Charge)
			tensor.Set(1, i, j, alpha)
			tensor.Set(2, i, j, 1e-3)
		}
	}
	l := [3]float64{box.Lx, box.Ly, box.Lz}
	mesh := pm.NewMesh(16, 16, 16, l, 5, alpha, pm.CoulombRefGreen, 2)
	return s, tensor, mesh
}

// TestAdvancePPPMReproducible drives the mesh!=nil path — smallLJState's
// tests never set a mesh, so PP-and-PM concurrency was never exercised —
// and checks that two independent runs from the same initial state
// produce bitwise-identical trajectories, per the reproducibility
// requirement that the PP/PM force concurrency must not be able to
// scramble results.
func TestAdvancePPPMReproducible(t *testing.T) {
	run := func() *species.State {
		s, tensor, mesh := smallCoulombState(0.3)
		p := params.Parameters{
			Box:       s.Box,
			Method:    params.P3M,
			Rc:        5.0,
			Dt:        0.001,
			NSteps:    5,
			DumpStep:  0,
			OutputDir: t.TempDir(),
			JobID:     "test",
		}
		stream := rng.NewStream(3, 3)
		e := New(p, s, tensor, potential.Coulomb, mesh, stream)
		for i := 0; i < 5; i++ {
			if err := e.Advance(); err != nil {
				t.Fatalf("Advance failed: %v", err)
			}
		}
		return s
	}

	a := run()
	b := run()
	for d := 0; d < 3; d++ {
		for i := 0; i < a.N; i++ {
			if math.IsNaN(a.Vel[d][i]) || math.IsInf(a.Vel[d][i], 0) {
				t.Fatalf("non-finite velocity after PP+PM run")
			}
			if a.Pos[d][i] != b.Pos[d][i] || a.Vel[d][i] != b.Vel[d][i] {
				t.Fatalf("PP+PM run not bit-reproducible: axis %d particle %d: pos %v vs %v, vel %v vs %v",
					d, i, a.Pos[d][i], b.Pos[d][i], a.Vel[d][i], b.Vel[d][i])
			}
		}
	}
}

func TestAdvancePPOnlyKeepsFiniteState(t *testing.T) {
	s, tensor := smallLJState()
	p := params.Parameters{
		Box:       s.Box,
		Rc:        5.0,
		Dt:        0.001,
		NSteps:    5,
		DumpStep:  0,
		OutputDir: t.TempDir(),
		JobID:     "test",
	}
	stream := rng.NewStream(1, 1)
	e := New(p, s, tensor, potential.LennardJones, nil, stream)
	for i := 0; i < 5; i++ {
		if err := e.Advance(); err != nil {
			t.Fatalf("Advance failed: %v", err)
		}
	}
	for d := 0; d < 3; d++ {
		for i := 0; i < s.N; i++ {
			if math.IsNaN(s.Vel[d][i]) || math.IsInf(s.Vel[d][i], 0) {
				t.Fatalf("non-finite velocity after run")
			}
		}
	}
}

func TestAdvanceDumpsCheckpointOnSchedule(t *testing.T) {
	s, tensor := smallLJState()
	dir := t.TempDir()
	p := params.Parameters{
		Box:       s.Box,
		Rc:        5.0,
		Dt:        0.001,
		NSteps:    2,
		DumpStep:  1,
		OutputDir: dir,
		JobID:     "test",
	}
	stream := rng.NewStream(2, 2)
	e := New(p, s, tensor, potential.LennardJones, nil, stream)
	if err := e.Advance(); err != nil {
		t.Fatal(err)
	}
	xyz := filepath.Join(dir, "test.xyz")
	if _, err := os.Stat(xyz); err != nil {
		t.Fatalf("expected trajectory file at %s: %v", xyz, err)
	}
}
