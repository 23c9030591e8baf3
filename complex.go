package qsim

import "math/cmplx"

// Complex is the amplitude type: one packed (real, imaginary) pair per
// basis state. Go's complex128 is exactly the two-wide float layout the
// engine needs, so the alias keeps call sites readable without wrapping.
type Complex = complex128

// normSqrd returns |c|^2 without the sqrt that cmplx.Abs would pay for.
func normSqrd(c Complex) float64 {
	re := real(c)
	im := imag(c)
	return re*re + im*im
}

// fromPolar builds an amplitude from a magnitude and a phase angle.
func fromPolar(magnitude, angle float64) Complex {
	return cmplx.Rect(magnitude, angle)
}

// angleOf returns the phase angle of an amplitude in (-pi, pi].
func angleOf(c Complex) float64 {
	return cmplx.Phase(c)
}
