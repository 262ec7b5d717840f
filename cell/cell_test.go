package cell

import (
	"testing"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

func makeState(n int, box species.Box) *species.State {
	s := species.NewState(n, []species.Info{{Mass: 1}}, box)
	return s
}

func TestForEachPairFindsAllWithinCutoffNoDuplicates(t *testing.T) {
	box := species.Box{Lx: 10, Ly: 10, Lz: 10}
	s := makeState(20, box)
	// place particles on a small grid so many pairs are close
	k := 0
	for i := 0; i < 20 && k < 20; i++ {
		s.Pos[0][i] = float64(i%4) - 2
		s.Pos[1][i] = float64((i/4)%4) - 2
		s.Pos[2][i] = float64(i/16) - 2
		k++
	}
	rc := 1.5
	l := Build(s, rc)

	seen := make(map[[2]int]bool)
	bruteForce := 0
	for i := 0; i < s.N; i++ {
		for j := i + 1; j < s.N; j++ {
			dx := species.Wrap(s.Pos[0][i]-s.Pos[0][j], box.Lx)
			dy := species.Wrap(s.Pos[1][i]-s.Pos[1][j], box.Ly)
			dz := species.Wrap(s.Pos[2][i]-s.Pos[2][j], box.Lz)
			r2 := dx*dx + dy*dy + dz*dz
			if r2 <= rc*rc {
				bruteForce++
			}
		}
	}

	count := 0
	l.ForEachPair(func(i, j int) {
		key := [2]int{i, j}
		if i > j {
			key = [2]int{j, i}
		}
		if seen[key] {
			t.Fatalf("pair (%d,%d) visited twice", i, j)
		}
		seen[key] = true
		dx := species.Wrap(s.Pos[0][i]-s.Pos[0][j], box.Lx)
		dy := species.Wrap(s.Pos[1][i]-s.Pos[1][j], box.Ly)
		dz := species.Wrap(s.Pos[2][i]-s.Pos[2][j], box.Lz)
		r2 := dx*dx + dy*dy + dz*dz
		if r2 <= rc*rc {
			count++
		}
	})

	if count != bruteForce {
		t.Fatalf("cell list found %d pairs within rc, brute force found %d", count, bruteForce)
	}
}

func TestBuildPanicsWhenRcExceedsHalfBox(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when rc > L/2")
		}
	}()
	box := species.Box{Lx: 2, Ly: 2, Lz: 2}
	s := makeState(4, box)
	Build(s, 5.0)
}
