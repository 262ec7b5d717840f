// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package postproc exports particle trajectories to the XYZ format.
// The fuller post-processing suite (RDF, structure factor, VACF) is out
// of scope for this engine; only the trajectory dump that downstream
// tools consume is implemented here, mirroring gofem's out package role
// as an external consumer of core simulation state rather than a
// participant in the force/integration hot loop.
package postproc

import (
	"bufio"
	"fmt"
	"os"

	"github.com/SilvestriStefano/sarkas-lux/species"
)

// WriteXYZFrame appends one frame to an XYZ trajectory file at path,
// creating it if necessary. comment is written verbatim on the XYZ
// comment line (conventionally the step number and elapsed time).
func WriteXYZFrame(path string, s *species.State, comment string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n%s\n", s.N, comment)
	for i := 0; i < s.N; i++ {
		name := s.Table[s.Sid[i]].Name
		if name == "" {
			name = fmt.Sprintf("S%d", s.Sid[i])
		}
		fmt.Fprintf(w, "%s %.10e %.10e %.10e\n", name, s.Pos[0][i], s.Pos[1][i], s.Pos[2][i])
	}
	return w.Flush()
}
