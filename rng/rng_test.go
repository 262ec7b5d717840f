package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStreamReproducible(t *testing.T) {
	a := NewStream(42, 7)
	b := NewStream(42, 7)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestStreamSnapshotRestore(t *testing.T) {
	s := NewStream(1, 2)
	for i := 0; i < 10; i++ {
		s.Uint64()
	}
	st, err := s.Snapshot()
	require.NoError(t, err)

	want := make([]uint64, 5)
	for i := range want {
		want[i] = s.Uint64()
	}

	restored, err := Restore(st)
	require.NoError(t, err)
	for i := range want {
		require.Equal(t, want[i], restored.Uint64())
	}
}

func TestFloat64Range(t *testing.T) {
	s := NewStream(9, 9)
	for i := 0; i < 1000; i++ {
		v := s.Float64()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}
