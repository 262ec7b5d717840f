package initcond

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/SilvestriStefano/sarkas-lux/rng"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

func newState(n int) *species.State {
	box := species.Box{Lx: 10, Ly: 10, Lz: 10}
	table := []species.Info{{Mass: 1, Temperature: 1.0}, {Mass: 2, Temperature: 1.0}}
	return species.NewState(n, table, box)
}

func TestLatticePlacesAllParticlesInsideBox(t *testing.T) {
	s := newState(27)
	Lattice(s, []int{27})
	half := [3]float64{5, 5, 5}
	for i := 0; i < s.N; i++ {
		for d := 0; d < 3; d++ {
			if math.Abs(s.Pos[d][i]) > half[d]+1e-9 {
				t.Fatalf("particle %d axis %d outside box: %v", i, d, s.Pos[d][i])
			}
		}
	}
}

func TestHaltonRejectionRespectsMinSeparation(t *testing.T) {
	s := newState(20)
	minSep := 0.3
	Halton(s, []int{20}, minSep)
	sides := s.Box.Sides()
	for i := 0; i < s.N; i++ {
		for j := i + 1; j < s.N; j++ {
			dx := species.Wrap(s.Pos[0][i]-s.Pos[0][j], sides[0])
			dy := species.Wrap(s.Pos[1][i]-s.Pos[1][j], sides[1])
			dz := species.Wrap(s.Pos[2][i]-s.Pos[2][j], sides[2])
			r := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if r < minSep-1e-9 {
				t.Fatalf("particles %d,%d closer than minSep: r=%v", i, j, r)
			}
		}
	}
}

func TestMaxwellBoltzmannZeroesMomentum(t *testing.T) {
	s := newState(50)
	for i := 0; i < s.N; i++ {
		s.Sid[i] = i % 2
	}
	stream := rng.NewStream(42, 7)
	MaxwellBoltzmann(s, 1.0, stream)
	p := s.Momentum()
	for d := 0; d < 3; d++ {
		chk.Scalar(t, "COM momentum component", 1e-9, p[d], 0)
	}
}
