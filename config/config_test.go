package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SilvestriStefano/sarkas-lux/params"
	"github.com/SilvestriStefano/sarkas-lux/species"
)

const sampleYAML = `
particles:
  species:
    - name: e
      mass: 1.0
      charge: -1.0
      number_density: 1.0e20
      temperature: 1.0
      np_per_side: 10
  load_method: lattice
potential:
  type: Coulomb
  method: P3M
  rc: 2.0
P3M:
  mesh_x: 16
  mesh_y: 16
  mesh_z: 16
  cao: 5
  aliases: 2
  alpha_ewald: 0.3
thermostat:
  type: Berendsen
  tau: 1.0
  start_step: 1000
  target_temperatures: [1.0]
magnetized:
  enabled: false
integrator:
  type: velocity_verlet
langevin:
  enabled: false
boundary_conditions:
  periodic: [true, true, true]
control:
  units: cgs
  dt: 0.01
  nsteps: 1000
  neq: 100
  dump_step: 10
  therm_dump_step: 10
  np_per_side: 10
  output_dir: /tmp/out
  seed: 12345
  job_id: test
post_processing:
  rdf_bins: 100
  kspace_harmonics: 10
  hermite_order: 4
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0644))
	return path
}

func TestReadAndValidate(t *testing.T) {
	path := writeSample(t)
	doc, err := Read(path)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	require.Equal(t, 5, doc.P3M.Cao)
}

func TestToParametersResolvesBoxAndEnums(t *testing.T) {
	path := writeSample(t)
	doc, err := Read(path)
	require.NoError(t, err)

	box := species.Box{Lx: 10, Ly: 10, Lz: 10}
	p, err := doc.ToParameters(box)
	require.NoError(t, err)
	require.Len(t, p.Species, 1)
	require.Equal(t, box, p.Box)
	require.Equal(t, params.P3M, p.Method)
	require.Equal(t, params.Berendsen, p.Thermostat)
	require.Equal(t, 2.0, p.Rc)
	require.Equal(t, [3]int{16, 16, 16}, p.Mesh)
}

func TestValidateRejectsNonPeriodicBoundary(t *testing.T) {
	doc := &Document{}
	doc.BoundaryConditions.Periodic = [3]bool{true, false, true}
	err := doc.Validate()
	require.Error(t, err)
}

func TestValidateRejectsMismatchedParticleCounts(t *testing.T) {
	path := writeSample(t)
	doc, err := Read(path)
	require.NoError(t, err)
	doc.Control.NPerSide = 999
	err = doc.Validate()
	require.Error(t, err)
}
