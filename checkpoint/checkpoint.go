// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checkpoint writes and restores complete run state — particle
// positions, velocities, accelerations, the species table, and the RNG
// stream — as a single binary snapshot via encoding/gob, so a restarted
// run resumes the exact bit-reproducible trajectory rather than merely
// an equivalent one.
package checkpoint

import (
	"encoding/gob"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/SilvestriStefano/sarkas-lux/rng"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Snapshot is the full restartable state of a run at one step.
type Snapshot struct {
	Step        int
	ElapsedTime float64
	N           int
	Pos         [][]float64
	Vel         [][]float64
	Acc         [][]float64
	Sid         []int
	Table       []species.Info
	Box         species.Box
	RNG         rng.State
}

// FromState captures a Snapshot from the live simulation state.
func FromState(s *species.State, step int, elapsed float64, stream *rng.Stream) (Snapshot, error) {
	rngState, err := stream.Snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Step:        step,
		ElapsedTime: elapsed,
		N:           s.N,
		Pos:         s.Pos,
		Vel:         s.Vel,
		Acc:         s.Acc,
		Sid:         s.Sid,
		Table:       s.Table,
		Box:         s.Box,
		RNG:         rngState,
	}, nil
}

// Restore rebuilds a species.State and rng.Stream from a Snapshot.
func (snap Snapshot) Restore() (*species.State, *rng.Stream, error) {
	s := species.NewState(snap.N, snap.Table, snap.Box)
	s.Pos = snap.Pos
	s.Vel = snap.Vel
	s.Acc = snap.Acc
	s.Sid = snap.Sid
	stream, err := rng.Restore(snap.RNG)
	if err != nil {
		return nil, nil, err
	}
	return s, stream, nil
}

// Write serializes snap to path, overwriting any existing file.
func Write(path string, snap Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		return err
	}
	io.Pf("> checkpoint written: %s (step=%d)\n", path, snap.Step)
	return nil
}

// Read deserializes a Snapshot previously written by Write.
func Read(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()
	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
