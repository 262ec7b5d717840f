// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine is the control-thread state machine that drives the
// simulation: per-step it advances the integrator, recomputes forces
// (PP and PM concurrently), applies the thermostat or Langevin driver,
// updates accumulators, and checkpoints on dump steps. The shape — a
// struct holding everything the run needs plus a Run method wrapping
// the loop in deferred exit handling — mirrors gofem's fem.Main/Run.
package engine

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/SilvestriStefano/sarkas-lux/cell"
	"github.com/SilvestriStefano/sarkas-lux/checkpoint"
	"github.com/SilvestriStefano/sarkas-lux/integrate"
	"github.com/SilvestriStefano/sarkas-lux/langevin"
	"github.com/SilvestriStefano/sarkas-lux/params"
	"github.com/SilvestriStefano/sarkas-lux/pm"
	"github.com/SilvestriStefano/sarkas-lux/postproc"
	"github.com/SilvestriStefano/sarkas-lux/potential"
	"github.com/SilvestriStefano/sarkas-lux/pp"
	"github.com/SilvestriStefano/sarkas-lux/rng"
	"github.com/SilvestriStefano/sarkas-lux/simerr"
	"github.com/SilvestriStefano/sarkas-lux/species"
	"github.com/SilvestriStefano/sarkas-lux/thermostat"
)

// Phase distinguishes the two scheduling windows of a magnetized run:
// an initial unmagnetized thermalization, then magnetized production.
type Phase int

const (
	Unmagnetized Phase = iota
	Magnetized
)

// Accumulators holds the running energy/virial bookkeeping for one step.
type Accumulators struct {
	Ureal, Wreal float64 // real-space (PP)
	Upm          float64 // reciprocal-space (PM)
	KE           float64
}

// Engine owns the full run state.
type Engine struct {
	P      params.Parameters
	State  *species.State
	Tensor *potential.Tensor
	Family potential.Family
	Mesh   *pm.Mesh // nil when P.Method == params.PPOnly

	Integrator integrate.Coefs
	Thermostat *thermostat.Berendsen // nil when P.Thermostat == params.NoThermostat
	Langevin   *langevin.Driver      // nil when P.Langevin == params.LangevinOff

	RNGStream *rng.Stream
	Step      int
	Elapsed   float64
	Last      Accumulators

	phase        Phase
	xyzPath      string
	checkpointID int
}

// New builds an Engine ready to Run. The caller is responsible for
// having already placed particles (initcond) and resolved the Ewald
// parameters (ewald.Solve) into p.
func New(p params.Parameters, s *species.State, tensor *potential.Tensor, family potential.Family, mesh *pm.Mesh, stream *rng.Stream) *Engine {
	e := &Engine{P: p, State: s, Tensor: tensor, Family: family, Mesh: mesh, RNGStream: stream}
	e.Integrator.Init(p.Dt, p.Magnetized, s.Table)

	if p.Thermostat == params.Berendsen {
		e.Thermostat = &thermostat.Berendsen{Tau: p.Tau, Target: p.TargetTemp, CutoffStep: p.ThermCutoffStep}
	}
	if p.Langevin != params.LangevinOff {
		variant := langevin.BBK
		if p.Langevin == params.LangevinVanGunsterenBerendsen {
			variant = langevin.VanGunsterenBerendsen
		}
		e.Langevin = &langevin.Driver{Gamma: p.Gamma, KB: p.KB(), Variant: variant, Target: p.TargetTemp, Src: stream}
	}
	if p.Magnetized && p.ElecThermPrephase {
		e.phase = Unmagnetized
	} else {
		e.phase = Magnetized
	}
	e.xyzPath = filepath.Join(p.OutputDir, p.JobID+".xyz")
	return e
}

// forceFunc recomputes s.Acc, which integrate.Step has already zeroed,
// from scratch: the linked-cell
// list is rebuilt (positions moved since last call), then the PP and PM
// contributions are computed concurrently. PP is the sole writer of
// s.Acc during that window — pp.Compute adds into it directly — while
// PM accumulates into its own private buffer and never touches s.Acc.
// Only after both goroutines have signalled the barrier does the
// control thread serially add the PM buffer into s.Acc, so the two
// never race on the same slots.
func (e *Engine) forceFunc(s *species.State) {
	list := cell.Build(s, e.P.Rc)

	var ppRes pp.Result
	var pmEnergy float64
	var pmAcc [3][]float64

	done := make(chan struct{}, 2)
	go func() {
		ppRes = pp.Compute(s, list, e.Tensor, e.Family, e.P.Rc)
		done <- struct{}{}
	}()
	if e.Mesh != nil {
		go func() {
			pmEnergy, pmAcc = e.Mesh.Compute(s)
			done <- struct{}{}
		}()
	} else {
		done <- struct{}{}
	}
	<-done
	<-done

	if e.Mesh != nil {
		for d := 0; d < 3; d++ {
			for i := 0; i < s.N; i++ {
				s.Acc[d][i] += pmAcc[d][i]
			}
		}
	}

	e.Last.Ureal, e.Last.Wreal, e.Last.Upm = ppRes.Ureal, ppRes.Wreal, pmEnergy
}

// magnetizedNow reports whether the current step should use the
// magnetized-Verlet half-kick rotation.
func (e *Engine) magnetizedNow() bool {
	if !e.P.Magnetized {
		return false
	}
	if e.phase == Unmagnetized {
		return e.Step >= e.P.MagEquilSteps
	}
	return true
}

// Advance steps the simulation by one timestep, following the control
// flow: integrator half-kick/drift, force recompute, integrator
// half-kick, thermostat or Langevin, accumulator update, dump-step
// checkpoint.
func (e *Engine) Advance() error {
	if e.P.Magnetized && e.phase == Unmagnetized && e.Step >= e.P.MagEquilSteps {
		e.phase = Magnetized
	}
	e.Integrator.Magnetized = e.magnetizedNow()

	if e.Langevin != nil {
		e.Integrator.Step(e.State, func(s *species.State) {
			e.forceFunc(s)
			e.Langevin.AddAccel(s, e.P.Dt)
		})
		e.Langevin.FinishStep(e.State, e.P.Dt)
	} else {
		e.Integrator.Step(e.State, e.forceFunc)
	}

	if e.Thermostat != nil {
		e.Thermostat.Apply(e.State, e.P.Dt, e.Step, e.P.KB())
	}

	e.Last.KE = e.State.KineticEnergy()
	if err := e.checkFinite(); err != nil {
		return err
	}

	e.Elapsed += e.P.Dt
	if e.P.DumpStep > 0 && e.Step%e.P.DumpStep == 0 {
		if err := e.dump(); err != nil {
			return err
		}
	}
	e.Step++
	return nil
}

// checkFinite detects NaN/Inf in the live state; per the error
// taxonomy, numerical blow-up gets a diagnostic checkpoint and a fatal
// exit, never a silent recovery attempt.
func (e *Engine) checkFinite() error {
	if math.IsNaN(e.Last.KE) || math.IsInf(e.Last.KE, 0) {
		_ = e.dump() // best-effort diagnostic snapshot; error from dump is secondary to the real failure
		return simerr.New(simerr.Numerical, "engine: non-finite kinetic energy at step %d (KE=%v) — diagnostic checkpoint written", e.Step, e.Last.KE)
	}
	return nil
}

func (e *Engine) dump() error {
	e.checkpointID++
	path := filepath.Join(e.P.OutputDir, fmt.Sprintf("%s_%06d.ckpt", e.P.JobID, e.Step))
	snap, err := checkpoint.FromState(e.State, e.Step, e.Elapsed, e.RNGStream)
	if err != nil {
		return err
	}
	if err := checkpoint.Write(path, snap); err != nil {
		return err
	}
	comment := fmt.Sprintf("step=%d t=%.6e KE=%.6e", e.Step, e.Elapsed, e.Last.KE)
	return postproc.WriteXYZFrame(e.xyzPath, e.State, comment)
}

// Summary prints a human-readable overview of the run configuration,
// mirroring the source's verbose startup banner.
func (e *Engine) Summary() {
	io.Pf("> species: %d, N=%d, box=%v\n", len(e.State.Table), e.State.N, e.P.Box)
	io.Pf("> potential=%s method=%v rc=%v\n", e.P.PotentialFamily, e.P.Method, e.P.Rc)
	if e.Mesh != nil {
		io.Pf("> P3M: mesh=%v cao=%d alpha=%v\n", e.P.Mesh, e.P.Cao, e.P.Alpha)
	}
	io.Pf("> dt=%v nsteps=%d neq=%d\n", e.P.Dt, e.P.NSteps, e.P.Neq)
}

// Run executes the configured number of steps (p.NSteps total,
// including the p.Neq equilibration steps at the start), logging
// progress and converting the first error into a clean return.
func (e *Engine) Run() (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			io.PfRed("> run failed at step %d: %v\n", e.Step, err)
			return
		}
		io.PfGreen("> run completed: %d steps in %v\n", e.Step, time.Since(start))
	}()

	for e.Step < e.P.NSteps {
		if err = e.Advance(); err != nil {
			return err
		}
	}
	return nil
}
