package nums

import (
	"math"
	"math/cmplx"
)

// ComplexPolar is a complex number in polar form r·exp(iθ).
type ComplexPolar struct {
	Magnitude float64
	Argument  float64
}

// Complex returns the rectangular form of p.
func (p ComplexPolar) Complex() complex128 {
	return cmplx.Rect(p.Magnitude, p.Argument)
}

// Polar converts a rectangular complex number to polar form.
func Polar(c complex128) ComplexPolar {
	r, theta := cmplx.Polar(c)
	return ComplexPolar{Magnitude: r, Argument: theta}
}

// UnitPhase returns exp(2πi·num/2^pow), the amplitude factor applied by a
// PhaseShift gate. num may be negative.
func UnitPhase(num int64, pow int) complex128 {
	theta := 2 * math.Pi * float64(num) * math.Ldexp(1, -pow)
	return cmplx.Rect(1, theta)
}
