// package rng implements the engine's seeded random stream: a PCG-family
// generator (math/rand/v2) feeding reproducible normal variates for the
// Langevin driver and the particle initializer. The stream's full state
// is part of every checkpoint (the generator seed is
// part of the reproducible state").
package rng

import (
	"math/rand/v2"
)

// Stream is a checkpointable PCG-based generator. It also satisfies the
// (legacy) math/rand.Source interface so it can back gonum's
// stat/distuv.Normal, which is how reproducible Gaussian draws are
// produced for Langevin noise and Maxwell-Boltzmann velocity sampling.
type Stream struct {
	seed1, seed2 uint64
	pcg          *rand.PCG
}

// NewStream returns a new stream seeded with (seed1, seed2). The pair,
// not a single int64, is the PCG seed; callers typically derive seed2
// from a per-species or per-purpose salt so independent streams (e.g.
// initializer vs. Langevin) do not collide even when run with the same
// top-level seed.
func NewStream(seed1, seed2 uint64) *Stream {
	return &Stream{seed1: seed1, seed2: seed2, pcg: rand.NewPCG(seed1, seed2)}
}

// Int63 implements math/rand.Source for interop with gonum/stat/distuv.
func (s *Stream) Int63() int64 {
	return int64(s.pcg.Uint64() >> 1)
}

// Seed implements math/rand.Source. It is a no-op: this stream is always
// seeded explicitly through NewStream or State restore, never reseeded
// mid-run, which is what makes restart reproducibility possible.
func (s *Stream) Seed(int64) {}

// Uint64 draws a raw 64-bit word.
func (s *Stream) Uint64() uint64 { return s.pcg.Uint64() }

// Float64 draws a uniform variate in [0,1).
func (s *Stream) Float64() float64 {
	return float64(s.pcg.Uint64()>>11) / (1 << 53)
}

// State is the checkpointable, restart-reproducible representation of a
// Stream: the original two-word seed plus the serialized internal PCG
// state (so a restart resumes the exact draw sequence, not merely an
// equivalent one reseeded from scratch).
type State struct {
	Seed1, Seed2 uint64
	PCGState     []byte
}

// Snapshot returns the current restartable state.
func (s *Stream) Snapshot() (State, error) {
	b, err := s.pcg.MarshalBinary()
	if err != nil {
		return State{}, err
	}
	return State{Seed1: s.seed1, Seed2: s.seed2, PCGState: b}, nil
}

// Restore rebuilds a Stream from a previously captured State.
func Restore(st State) (*Stream, error) {
	s := &Stream{seed1: st.Seed1, seed2: st.Seed2, pcg: rand.NewPCG(st.Seed1, st.Seed2)}
	if len(st.PCGState) > 0 {
		if err := s.pcg.UnmarshalBinary(st.PCGState); err != nil {
			return nil, err
		}
	}
	return s, nil
}
