package tabulated

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestLinearLookupExactAtNode(t *testing.T) {
	tbl := &Table{
		Dr:     0.1,
		U:      []float64{1.0, 0.8, 0.6, 0.4},
		F:      []float64{2.0, 1.6, 1.2, 0.8},
		Fp:     []float64{0, 0, 0, 0},
		Interp: Linear,
	}
	Register(1, tbl)
	p := []float64{1, 1e-6}
	k := kernel{}
	U, fOverR := k.Force(0.2, p)
	chk.Scalar(t, "U at node", 1e-12, U, 0.6)
	chk.Scalar(t, "f/r at node", 1e-12, fOverR, 1.2/0.2)
}

func TestOutOfRangeClampsToZero(t *testing.T) {
	tbl := &Table{Dr: 0.1, U: []float64{1, 2}, F: []float64{1, 2}, Fp: []float64{0, 0}}
	Register(2, tbl)
	p := []float64{2, 1e-6}
	k := kernel{}
	U, fOverR := k.Force(10.0, p)
	chk.Scalar(t, "U beyond table range", 1e-15, U, 0)
	chk.Scalar(t, "f/r beyond table range", 1e-15, fOverR, 0)
}

func TestCubicInterpMatchesNodesExactly(t *testing.T) {
	tbl := &Table{
		Dr:     0.1,
		U:      []float64{1.0, 0.8, 0.6},
		F:      []float64{2.0, 1.6, 1.2},
		Fp:     []float64{-4, -4, -4},
		Interp: Cubic,
	}
	Register(3, tbl)
	p := []float64{3, 1e-6}
	k := kernel{}
	U, _ := k.Force(0.1, p)
	chk.Scalar(t, "cubic interp exact at node", 1e-9, U, 0.8)
}
