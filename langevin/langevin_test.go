package langevin

import (
	"math"
	"testing"

	"github.com/SilvestriStefano/sarkas-lux/rng"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

func stateWithVelocity(v float64) *species.State {
	box := species.Box{Lx: 10, Ly: 10, Lz: 10}
	table := []species.Info{{Mass: 1}}
	s := species.NewState(4, table, box)
	for i := 0; i < s.N; i++ {
		s.Vel[0][i] = v
	}
	return s
}

func TestVanGunsterenBerendsenIsFinite(t *testing.T) {
	s := stateWithVelocity(1.0)
	stream := rng.NewStream(1, 2)
	d := &Driver{Gamma: 0.5, KB: 1.0, Variant: VanGunsterenBerendsen, Target: []float64{1.0}, Src: stream}
	d.FinishStep(s, 0.01)
	for i := 0; i < s.N; i++ {
		if math.IsNaN(s.Vel[0][i]) || math.IsInf(s.Vel[0][i], 0) {
			t.Fatalf("non-finite velocity after vGB update: %v", s.Vel[0][i])
		}
	}
}

func TestBBKAccelOnlyAppliesUnderBBKVariant(t *testing.T) {
	s := stateWithVelocity(1.0)
	stream := rng.NewStream(3, 4)
	d := &Driver{Gamma: 0.5, KB: 1.0, Variant: VanGunsterenBerendsen, Target: []float64{1.0}, Src: stream}
	d.AddAccel(s, 0.01)
	for i := 0; i < s.N; i++ {
		if s.Acc[0][i] != 0 {
			t.Fatalf("expected AddAccel to be a no-op under the vGB variant, got acc=%v", s.Acc[0][i])
		}
	}
}

func TestBBKFinishStepDampensVelocity(t *testing.T) {
	s := stateWithVelocity(2.0)
	stream := rng.NewStream(5, 6)
	d := &Driver{Gamma: 1.0, KB: 1.0, Variant: BBK, Target: []float64{1.0}, Src: stream}
	d.FinishStep(s, 0.1)
	if s.Vel[0][0] >= 2.0 {
		t.Fatalf("expected the implicit BBK correction to damp velocity, got %v", s.Vel[0][0])
	}
}
