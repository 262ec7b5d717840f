// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config parses the YAML run configuration, validates it, and
// resolves it into an immutable params.Parameters. The section layout
// mirrors gofem's inp package (one struct field per configuration
// section, a single top-level Read entry point), ported from gofem's
// hand-written .sim JSON reader to gopkg.in/yaml.v3 struct tags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SilvestriStefano/sarkas-lux/params"
	"github.com/SilvestriStefano/sarkas-lux/simerr"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

// Document is the raw, unvalidated shape of the YAML configuration
// file, one struct field per top-level section.
type Document struct {
	Particles struct {
		Species []struct {
			Name          string  `yaml:"name"`
			Mass          float64 `yaml:"mass"`
			Charge        float64 `yaml:"charge"`
			NumberDensity float64 `yaml:"number_density"`
			Temperature   float64 `yaml:"temperature"`
			NPerSide      int     `yaml:"np_per_side"`
		} `yaml:"species"`
		LoadMethod string `yaml:"load_method"` // lattice | random | halton | restart
		InputFile  string `yaml:"input_file"`
	} `yaml:"particles"`

	Potential struct {
		Type   string  `yaml:"type"`
		Method string  `yaml:"method"` // PP | P3M
		Rc     float64 `yaml:"rc"`
	} `yaml:"potential"`

	P3M struct {
		MeshX   int     `yaml:"mesh_x"`
		MeshY   int     `yaml:"mesh_y"`
		MeshZ   int     `yaml:"mesh_z"`
		Cao     int     `yaml:"cao"`
		Aliases int     `yaml:"aliases"`
		Alpha   float64 `yaml:"alpha_ewald"`
	} `yaml:"P3M"`

	Thermostat struct {
		Type        string    `yaml:"type"`
		Tau         float64   `yaml:"tau"`
		StartStep   int       `yaml:"start_step"`
		TargetTemps []float64 `yaml:"target_temperatures"`
	} `yaml:"thermostat"`

	Magnetized struct {
		Enabled        bool    `yaml:"enabled"`
		BField         float64 `yaml:"b_field"`
		BUnits         string  `yaml:"b_units"` // tesla | gauss
		EquilSteps     int     `yaml:"equilibration_steps"`
		ElecThermFirst bool    `yaml:"elec_therm"`
	} `yaml:"magnetized"`

	Integrator struct {
		Type string `yaml:"type"`
	} `yaml:"integrator"`

	Langevin struct {
		Enabled bool    `yaml:"enabled"`
		Type    string  `yaml:"type"` // bbk | van_gunsteren_berendsen
		Gamma   float64 `yaml:"gamma"`
	} `yaml:"langevin"`

	BoundaryConditions struct {
		Periodic [3]bool `yaml:"periodic"`
	} `yaml:"boundary_conditions"`

	Control struct {
		Units         string  `yaml:"units"` // cgs | mks
		Dt            float64 `yaml:"dt"`
		NSteps        int     `yaml:"nsteps"`
		Neq           int     `yaml:"neq"`
		DumpStep      int     `yaml:"dump_step"`
		ThermDumpStep int     `yaml:"therm_dump_step"`
		NPerSide      int     `yaml:"np_per_side"`
		OutputDir     string  `yaml:"output_dir"`
		Seed          uint64  `yaml:"seed"`
		JobID         string  `yaml:"job_id"`
	} `yaml:"control"`

	PostProcessing struct {
		RDFBins         int `yaml:"rdf_bins"`
		KSpaceHarmonics int `yaml:"kspace_harmonics"`
		HermiteOrder    int `yaml:"hermite_order"`
	} `yaml:"post_processing"`
}

// Read loads and parses a YAML configuration file; it does not validate.
func Read(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, simerr.IOf("config: cannot read %s: %v", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, simerr.Configf("config: cannot parse %s: %v", path, err)
	}
	return &doc, nil
}

// Validate checks cross-field invariants that the YAML schema alone
// cannot express, returning the first violation found.
func (d *Document) Validate() error {
	var npTotal int
	for _, sp := range d.Particles.Species {
		npTotal += sp.NPerSide
	}
	if d.Control.NPerSide != 0 && npTotal != 0 && npTotal != d.Control.NPerSide {
		return simerr.Configf("config: sum of per-species np_per_side (%d) does not match control.np_per_side (%d)", npTotal, d.Control.NPerSide)
	}
	if d.P3M.Cao < 1 || d.P3M.Cao > 7 {
		if d.Potential.Method == "P3M" {
			return simerr.Configf("config: P3M.cao=%d must be in [1,7]", d.P3M.Cao)
		}
	}
	for _, axis := range d.BoundaryConditions.Periodic {
		if !axis {
			return simerr.Configf("config: only fully periodic boundary conditions are supported (mirror/open requested)")
		}
	}
	if d.Thermostat.Type != "" && d.Thermostat.Type != "Berendsen" {
		return simerr.Configf("config: unsupported thermostat type %q (only Berendsen is implemented)", d.Thermostat.Type)
	}
	return nil
}

// ToParameters resolves a validated Document, plus the box geometry
// derived from the requested species number densities, into an
// immutable params.Parameters. Call Validate first.
func (d *Document) ToParameters(box species.Box) (params.Parameters, error) {
	if err := d.Validate(); err != nil {
		return params.Parameters{}, err
	}

	table := make([]species.Info, len(d.Particles.Species))
	targetTemp := make([]float64, len(d.Particles.Species))
	for i, sp := range d.Particles.Species {
		table[i] = species.Info{
			Name:          sp.Name,
			Mass:          sp.Mass,
			Charge:        sp.Charge,
			NumberDensity: sp.NumberDensity,
			Temperature:   sp.Temperature,
		}
		targetTemp[i] = sp.Temperature
	}
	if len(d.Thermostat.TargetTemps) == len(table) {
		targetTemp = d.Thermostat.TargetTemps
	}

	p := params.Parameters{
		Species:           table,
		Box:               box,
		PotentialFamily:   d.Potential.Type,
		Rc:                d.Potential.Rc,
		Mesh:              [3]int{d.P3M.MeshX, d.P3M.MeshY, d.P3M.MeshZ},
		Cao:               d.P3M.Cao,
		AliasMMax:         d.P3M.Aliases,
		Alpha:             d.P3M.Alpha,
		Tau:               d.Thermostat.Tau,
		ThermCutoffStep:   d.Thermostat.StartStep,
		TargetTemp:        targetTemp,
		Magnetized:        d.Magnetized.Enabled,
		BFieldTesla:       resolveBField(d.Magnetized.BField, d.Magnetized.BUnits),
		MagEquilSteps:     d.Magnetized.EquilSteps,
		ElecThermPrephase: d.Magnetized.ElecThermFirst,
		Gamma:             d.Langevin.Gamma,
		PeriodicAxes:      d.BoundaryConditions.Periodic,
		Dt:                d.Control.Dt,
		NSteps:            d.Control.NSteps,
		Neq:               d.Control.Neq,
		DumpStep:          d.Control.DumpStep,
		ThermDumpStep:     d.Control.ThermDumpStep,
		NPerSide:          d.Control.NPerSide,
		OutputDir:         d.Control.OutputDir,
		Seed:              d.Control.Seed,
		JobID:             d.Control.JobID,
		RDFBins:           d.PostProcessing.RDFBins,
		KSpaceHarmonics:   d.PostProcessing.KSpaceHarmonics,
		HermiteOrder:      d.PostProcessing.HermiteOrder,
	}

	if d.Control.Units == "mks" {
		p.Units = params.MKS
	}
	if d.Potential.Method == "P3M" {
		p.Method = params.P3M
	}
	if d.Thermostat.Type == "Berendsen" {
		p.Thermostat = params.Berendsen
	}
	switch d.Integrator.Type {
	case "magnetized_verlet":
		p.Integrator = params.MagnetizedVerlet
	default:
		p.Integrator = params.VelocityVerlet
	}
	if d.Langevin.Enabled {
		switch d.Langevin.Type {
		case "van_gunsteren_berendsen":
			p.Langevin = params.LangevinVanGunsterenBerendsen
		default:
			p.Langevin = params.LangevinBBK
		}
	}

	if p.Rc > box.Lx/2 || p.Rc > box.Ly/2 || p.Rc > box.Lz/2 {
		return params.Parameters{}, simerr.Configf("config: rc=%v exceeds half the box side", p.Rc)
	}

	return p, nil
}

func resolveBField(value float64, units string) float64 {
	if units == "gauss" {
		return value * 1e-4 // 1 G = 1e-4 T
	}
	return value
}
