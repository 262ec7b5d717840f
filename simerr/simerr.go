// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package simerr implements the typed error taxonomy used throughout the
// engine: configuration, algorithm, numerical and I/O errors.
package simerr

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Kind classifies a fatal error raised by the engine.
type Kind int

const (
	Configuration Kind = iota // malformed or inconsistent configuration; raised during setup
	Algorithm                 // unsupported combination of potential/method/solver
	Numerical                 // Ewald solver cannot meet target accuracy; NaN/Inf detected
	IO                        // checkpoint or particle-file read/write failure
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "ConfigurationError"
	case Algorithm:
		return "AlgorithmError"
	case Numerical:
		return "NumericalError"
	case IO:
		return "IOError"
	}
	return "UnknownError"
}

// Error is a fatal, machine-classifiable engine error. All fatal errors
// are logged as a single-line machine-readable record before the run
// aborts; no error in this taxonomy is silently recovered inside the
// step loop.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds a Kind-tagged error with a formatted message, routed through
// gosl/chk.Err so the error carries the same caller-info wrapping the
// rest of the codebase relies on.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: chk.Err(format, args...).Error()}
}

// Configf builds a ConfigurationError.
func Configf(format string, args ...interface{}) error { return New(Configuration, format, args...) }

// Algorithmf builds an AlgorithmError.
func Algorithmf(format string, args ...interface{}) error { return New(Algorithm, format, args...) }

// Numericalf builds a NumericalError.
func Numericalf(format string, args ...interface{}) error { return New(Numerical, format, args...) }

// IOf builds an IOError.
func IOf(format string, args ...interface{}) error { return New(IO, format, args...) }

// Is reports whether err is a simerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
