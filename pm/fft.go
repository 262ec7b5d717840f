// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pm

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// forwardRFFT3D computes the 3D real-to-complex FFT of a real grid of
// shape Mx×My×Mz, returning complex coefficients of shape
// Mx×My×(Mz/2+1). It follows the axis-by-axis pencil decomposition used
// for 2D Poisson solves elsewhere in the pack (a real FFT along the last
// axis, then full complex FFTs along the remaining two), extended to
// three dimensions.
func forwardRFFT3D(rho [][][]float64, mx, my, mz int) [][][]complex128 {
	mzh := mz/2 + 1
	out := alloc3Complex(mx, my, mzh)

	rfft := fourier.NewFFT(mz)
	for i := 0; i < mx; i++ {
		for j := 0; j < my; j++ {
			coeff := rfft.Coefficients(nil, rho[i][j])
			copy(out[i][j], coeff)
		}
	}

	cfftY := fourier.NewCmplxFFT(my)
	col := make([]complex128, my)
	for i := 0; i < mx; i++ {
		for k := 0; k < mzh; k++ {
			for j := 0; j < my; j++ {
				col[j] = out[i][j][k]
			}
			res := cfftY.Coefficients(nil, col)
			for j := 0; j < my; j++ {
				out[i][j][k] = res[j]
			}
		}
	}

	cfftX := fourier.NewCmplxFFT(mx)
	row := make([]complex128, mx)
	for j := 0; j < my; j++ {
		for k := 0; k < mzh; k++ {
			for i := 0; i < mx; i++ {
				row[i] = out[i][j][k]
			}
			res := cfftX.Coefficients(nil, row)
			for i := 0; i < mx; i++ {
				out[i][j][k] = res[i]
			}
		}
	}
	return out
}

// inverseRFFT3D is the normalized inverse of forwardRFFT3D: complex-to-
// real FFT back to a real Mx×My×Mz grid.
func inverseRFFT3D(hatPhi [][][]complex128, mx, my, mz int) [][][]float64 {
	mzh := mz/2 + 1
	work := alloc3Complex(mx, my, mzh)
	for i := range hatPhi {
		for j := range hatPhi[i] {
			copy(work[i][j], hatPhi[i][j])
		}
	}

	cfftX := fourier.NewCmplxFFT(mx)
	row := make([]complex128, mx)
	for j := 0; j < my; j++ {
		for k := 0; k < mzh; k++ {
			for i := 0; i < mx; i++ {
				row[i] = work[i][j][k]
			}
			res := cfftX.Sequence(nil, row)
			for i := 0; i < mx; i++ {
				work[i][j][k] = res[i] / complex(float64(mx), 0)
			}
		}
	}

	cfftY := fourier.NewCmplxFFT(my)
	col := make([]complex128, my)
	for i := 0; i < mx; i++ {
		for k := 0; k < mzh; k++ {
			for j := 0; j < my; j++ {
				col[j] = work[i][j][k]
			}
			res := cfftY.Sequence(nil, col)
			for j := 0; j < my; j++ {
				work[i][j][k] = res[j] / complex(float64(my), 0)
			}
		}
	}

	out := alloc3Real(mx, my, mz)
	rfft := fourier.NewFFT(mz)
	for i := 0; i < mx; i++ {
		for j := 0; j < my; j++ {
			seq := rfft.Sequence(nil, work[i][j])
			for k := 0; k < mz; k++ {
				out[i][j][k] = seq[k] / float64(mz)
			}
		}
	}
	return out
}

func alloc3Real(nx, ny, nz int) [][][]float64 {
	a := make([][][]float64, nx)
	for i := range a {
		a[i] = make([][]float64, ny)
		for j := range a[i] {
			a[i][j] = make([]float64, nz)
		}
	}
	return a
}

func alloc3Complex(nx, ny, nz int) [][][]complex128 {
	a := make([][][]complex128, nx)
	for i := range a {
		a[i] = make([][]complex128, ny)
		for j := range a[i] {
			a[i][j] = make([]complex128, nz)
		}
	}
	return a
}
