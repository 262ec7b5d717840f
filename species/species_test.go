package species

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestWrapIdempotent(t *testing.T) {
	L := 10.0
	for _, d := range []float64{0, 4.9, 5.0, 5.1, -5.1, 12.3, -30.4} {
		once := Wrap(d, L)
		twice := Wrap(once, L)
		chk.Scalar(t, "wrap idempotence", 1e-12, once, twice)
	}
}

func TestWignerSeitzRadius(t *testing.T) {
	table := []Info{{NumberDensity: 1.62e32}}
	aws := WignerSeitzRadius(table)
	want := math.Cbrt(3.0 / (4.0 * math.Pi * 1.62e32))
	chk.Scalar(t, "a_ws", 1e-12, aws, want)
}

func TestZeroCOMMomentum(t *testing.T) {
	table := []Info{{Mass: 1.0}, {Mass: 2.0}}
	s := NewState(4, table, Box{Lx: 1, Ly: 1, Lz: 1})
	s.Sid = []int{0, 0, 1, 1}
	for i := 0; i < 4; i++ {
		s.Vel[0][i] = float64(i + 1)
		s.Vel[1][i] = -float64(i)
		s.Vel[2][i] = 0.5
	}
	s.ZeroCOMMomentum()
	p := s.Momentum()
	for d := 0; d < 3; d++ {
		chk.Scalar(t, "momentum component", 1e-9, p[d], 0)
	}
}

func TestSpeciesCounts(t *testing.T) {
	table := []Info{{}, {}}
	s := NewState(5, table, Box{Lx: 1, Ly: 1, Lz: 1})
	s.Sid = []int{0, 0, 1, 0, 1}
	counts := s.SpeciesCounts()
	chk.IntAssert(counts[0], 3)
	chk.IntAssert(counts[1], 2)
}
