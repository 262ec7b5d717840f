// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package params defines the immutable, validated run configuration
// that config.Document is parsed and checked into. Nothing outside
// config constructs a Parameters value directly; every other package
// treats it as a read-only record.
package params

import "github.com/SilvestriStefano/sarkas-lux/species"

// Units selects the unit system for physical constants (kB, e, ε0).
type Units int

const (
	CGS Units = iota
	MKS
)

// Method selects the long-range solver.
type Method int

const (
	PPOnly Method = iota
	P3M
)

// IntegratorKind selects the time-stepping scheme.
type IntegratorKind int

const (
	VelocityVerlet IntegratorKind = iota
	MagnetizedVerlet
)

// ThermostatKind is the supported thermostat family; Berendsen is the
// only one this engine implements.
type ThermostatKind int

const (
	NoThermostat ThermostatKind = iota
	Berendsen
)

// LangevinKind mirrors langevin.Variant without importing that package
// (params must stay a leaf dependency).
type LangevinKind int

const (
	LangevinOff LangevinKind = iota
	LangevinBBK
	LangevinVanGunsterenBerendsen
)

// Parameters is the fully resolved, immutable configuration for one run.
type Parameters struct {
	Units Units

	Species []species.Info
	Box     species.Box

	PotentialFamily string // one of the registered potential.Family names
	Method          Method
	Rc              float64

	// P3M (used only when Method == P3M)
	Mesh      [3]int
	Cao       int
	AliasMMax int
	Alpha     float64

	Thermostat      ThermostatKind
	Tau             float64
	ThermCutoffStep int
	TargetTemp      []float64 // per species id

	Magnetized        bool
	BFieldTesla       float64
	MagEquilSteps     int
	ElecThermPrephase bool

	Integrator IntegratorKind

	Langevin LangevinKind
	Gamma    float64

	PeriodicAxes [3]bool

	Dt            float64
	NSteps        int
	Neq           int
	DumpStep      int
	ThermDumpStep int
	NPerSide      int
	OutputDir     string
	Seed          uint64
	JobID         string

	RDFBins         int
	KSpaceHarmonics int
	HermiteOrder    int
}

// KB returns the Boltzmann constant in the configured unit system.
func (p Parameters) KB() float64 {
	if p.Units == CGS {
		return 1.380649e-16 // erg/K
	}
	return 1.380649e-23 // J/K
}
