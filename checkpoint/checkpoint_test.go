package checkpoint

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SilvestriStefano/sarkas-lux/rng"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

func sampleState() *species.State {
	box := species.Box{Lx: 10, Ly: 10, Lz: 10}
	table := []species.Info{{Name: "e", Mass: 1, Charge: -1}}
	s := species.NewState(3, table, box)
	for i := 0; i < s.N; i++ {
		s.Pos[0][i] = float64(i)
		s.Vel[1][i] = float64(i) * 0.5
	}
	return s
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := sampleState()
	stream := rng.NewStream(11, 22)
	stream.Uint64() // advance past the seed so we can confirm the draw position survives

	snap, err := FromState(s, 42, 1.25, stream)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ckpt.gob")
	require.NoError(t, Write(path, snap))

	loaded, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, 42, loaded.Step)
	require.Equal(t, 1.25, loaded.ElapsedTime)
	require.Equal(t, s.Pos, loaded.Pos)

	restored, restoredStream, err := loaded.Restore()
	require.NoError(t, err)
	require.Equal(t, s.N, restored.N)

	want := stream.Uint64()
	got := restoredStream.Uint64()
	require.Equal(t, want, got, "restored RNG stream must resume the exact same draw sequence")
}
