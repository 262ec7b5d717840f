// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pm

import "math"

// fillBSpline evaluates the cardinal B-spline of integer order cao at a
// fractional mesh offset w in [0,1), returning the cao weights that the
// charge of a particle sitting at that offset distributes across the
// cao nearest mesh points (the particle's own cell and cao-1 points
// behind it along the assignment direction). It uses the same recursive
// construction used throughout particle-mesh Ewald codes: start from
// the order-2 (linear) weights and repeatedly convolve with the order-2
// kernel to raise the order by one.
func fillBSpline(w float64, cao int) []float64 {
	if cao == 1 {
		return []float64{1} // nearest-grid-point: all charge to the single point
	}
	wt := make([]float64, cao)
	wt[cao-1] = 0
	wt[1] = w
	wt[0] = 1 - w
	for k := 3; k <= cao; k++ {
		div := 1.0 / float64(k-1)
		wt[k-1] = div * w * wt[k-2]
		for j := 1; j < k-1; j++ {
			wt[k-j-1] = div * ((w+float64(j))*wt[k-j-2] + (float64(k-j)-w)*wt[k-j-1])
		}
		wt[0] = div * (1 - w) * wt[0]
	}
	return wt
}

// splineFT returns the Fourier transform magnitude of the order-cao
// cardinal B-spline evaluated at the scaled wavenumber halfKh = k*h/2,
// namely sinc(halfKh)^cao with sinc(x) = sin(x)/x (sinc(0) = 1). Used to
// build the optimized influence function's window-function term.
func splineFT(halfKh float64, cao int) float64 {
	s := sinc(halfKh)
	v := 1.0
	for i := 0; i < cao; i++ {
		v *= s
	}
	return v
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}
	return math.Sin(x) / x
}
