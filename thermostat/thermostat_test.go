package thermostat

import (
	"math"
	"testing"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

func hotState(tInst float64) *species.State {
	box := species.Box{Lx: 10, Ly: 10, Lz: 10}
	table := []species.Info{{Mass: 1}}
	s := species.NewState(100, table, box)
	// v chosen so that (1/2) m v^2 summed over N gives T = tInst with kB=1, d=3:
	// T = sum(m v^2) / (3 N) => v^2 = 3*T
	v := math.Sqrt(3 * tInst)
	for i := 0; i < s.N; i++ {
		s.Vel[0][i] = v
	}
	return s
}

func TestBerendsenRelaxesTowardTarget(t *testing.T) {
	target := 1.0
	s := hotState(2.0 * target)
	b := &Berendsen{Tau: 1.0, Target: []float64{target}, CutoffStep: 1000000}
	dt := 0.01
	for step := 0; step < 500; step++ {
		b.Apply(s, dt, step, 1.0)
	}
	tFinal := s.Temperature(0, 1.0)
	if math.Abs(tFinal-target)/target > 0.05 {
		t.Fatalf("expected temperature within 5%% of target after relaxation, got %v (target %v)", tFinal, target)
	}
}

func TestBerendsenInactiveAfterCutoff(t *testing.T) {
	s := hotState(2.0)
	b := &Berendsen{Tau: 1.0, Target: []float64{1.0}, CutoffStep: 0}
	before := s.Temperature(0, 1.0)
	b.Apply(s, 0.01, 0, 1.0)
	after := s.Temperature(0, 1.0)
	if before != after {
		t.Fatalf("expected no rescaling once step >= CutoffStep, got %v -> %v", before, after)
	}
}
