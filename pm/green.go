// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pm

import "math"

// RefGreen is a reference (continuum) Green's function for the mesh
// solve, R(k^2), evaluated at the squared wavenumber. CoulombRefGreen
// and YukawaRefGreen below are the two families the engine needs.
type RefGreen func(k2, alpha float64) float64

// CoulombRefGreen is the Fourier-space Ewald Green's function for the
// Coulomb potential, 4*pi/k^2 * exp(-k^2/(4 alpha^2)), alpha the Ewald
// splitting parameter.
func CoulombRefGreen(k2, alpha float64) float64 {
	if k2 == 0 {
		return 0
	}
	return 4 * math.Pi / k2 * math.Exp(-k2/(4*alpha*alpha))
}

// YukawaRefGreen is the screened analogue, 4*pi/(k^2+kappa^2) *
// exp(-k^2/(4 alpha^2)), for split-Yukawa electrostatics.
func YukawaRefGreen(kappa float64) RefGreen {
	return func(k2, alpha float64) float64 {
		return 4 * math.Pi / (k2 + kappa*kappa) * math.Exp(-k2/(4*alpha*alpha))
	}
}

// influenceFunction builds the optimized (Hockney-Eastwood) Green's
// function G_k on the half-complex mesh of shape Mx×My×(Mz/2+1), for
// the assignment order cao and Ewald parameter alpha. mMax bounds the
// alias sum over periodic images of the reciprocal mesh in each
// direction (2*mMax+1 terms per axis); mMax=2 is a good default for
// cao <= 7.
//
// The finite-difference derivative operator D used for the force
// interpolation (the default differencing scheme, see Fields)
// contributes sin(k_axis*h_axis)/h_axis per axis; its combined
// magnitude stands in for the vector ideal-derivative operator in the
// classical construction.
func influenceFunction(mx, my, mz int, h, l [3]float64, cao int, alpha float64, ref RefGreen, mMax int) [][][]float64 {
	mzh := mz/2 + 1
	gk := alloc3Real(mx, my, mzh)

	for ix := 0; ix < mx; ix++ {
		kx0 := freq(ix, mx, l[0])
		for iy := 0; iy < my; iy++ {
			ky0 := freq(iy, my, l[1])
			for iz := 0; iz < mzh; iz++ {
				kz0 := freq(iz, mz, l[2])
				if ix == 0 && iy == 0 && iz == 0 {
					continue // DC mode carries no physical force, left at zero
				}

				dk := fdDerivative(kx0, ky0, kz0, h)

				var num, sumW2 float64
				for nx := -mMax; nx <= mMax; nx++ {
					kxn := kx0 + 2*math.Pi*float64(nx)/h[0]
					for ny := -mMax; ny <= mMax; ny++ {
						kyn := ky0 + 2*math.Pi*float64(ny)/h[1]
						for nz := -mMax; nz <= mMax; nz++ {
							kzn := kz0 + 2*math.Pi*float64(nz)/h[2]
							k2 := kxn*kxn + kyn*kyn + kzn*kzn
							if k2 == 0 {
								continue
							}
							what := splineFT(kxn*h[0]/2, cao) * splineFT(kyn*h[1]/2, cao) * splineFT(kzn*h[2]/2, cao)
							w2 := what * what
							num += dk * ref(k2, alpha) * w2
							sumW2 += w2
						}
					}
				}
				if dk == 0 || sumW2 == 0 {
					continue
				}
				gk[ix][iy][iz] = num / (dk * dk * sumW2 * sumW2)
			}
		}
	}
	return gk
}

// freq returns the signed angular wavenumber 2*pi*m/L for FFT bin i of
// an M-point transform over a box of side L, with m folded into
// (-M/2, M/2].
func freq(i, m int, l float64) float64 {
	n := i
	if i > m/2 {
		n = i - m
	}
	return 2 * math.Pi * float64(n) / l
}

// fdDerivative is the Euclidean norm of the central finite-difference
// first-derivative operator's eigenvalue along each axis,
// sin(k_axis*h_axis)/h_axis, matching the differencing scheme
// Fields uses by default.
func fdDerivative(kx, ky, kz float64, h [3]float64) float64 {
	dx := math.Sin(kx*h[0]) / h[0]
	dy := math.Sin(ky*h[1]) / h[1]
	dz := math.Sin(kz*h[2]) / h[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
