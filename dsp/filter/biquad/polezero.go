package biquad

import "math/cmplx"

// PoleZeroPair holds the z-plane roots of one section. First-order
// sections (B2 = A2 = 0) leave the second pole and zero at the origin.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the roots of the denominator 1 + A1*z^-1 + A2*z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	return solveQuadratic(1, c.A1, c.A2)
}

// Zeros returns the roots of the numerator B0 + B1*z^-1 + B2*z^-2.
func (c *Coefficients) Zeros() [2]complex128 {
	return solveQuadratic(c.B0, c.B1, c.B2)
}

// PoleZeroPair returns both poles and zeros of the section.
func (c *Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{Poles: c.Poles(), Zeros: c.Zeros()}
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) Stable() bool {
	poles := c.Poles()
	return cmplx.Abs(poles[0]) < 1 && cmplx.Abs(poles[1]) < 1
}

// PoleZeroPairs maps each coefficient set to its pole/zero pair.
func PoleZeroPairs(coeffs []Coefficients) []PoleZeroPair {
	pairs := make([]PoleZeroPair, len(coeffs))
	for i := range coeffs {
		pairs[i] = coeffs[i].PoleZeroPair()
	}
	return pairs
}

// PoleZeroPairs returns one pole/zero pair per chain section.
func (ch *Chain) PoleZeroPairs() []PoleZeroPair {
	pairs := make([]PoleZeroPair, len(ch.secs))
	for i := range ch.secs {
		pairs[i] = ch.secs[i].PoleZeroPair()
	}
	return pairs
}

// Stable reports whether every section of the cascade is stable.
func (ch *Chain) Stable() bool {
	for i := range ch.secs {
		if !ch.secs[i].Stable() {
			return false
		}
	}
	return true
}

// solveQuadratic finds the complex roots of a*x^2 + b*x + c, degrading to
// the linear root (and an origin placeholder) when a is zero.
func solveQuadratic(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}
		return [2]complex128{complex(-c/b, 0), 0}
	}

	nb := -complex(b, 0)
	disc := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	d := complex(2*a, 0)
	return [2]complex128{(nb + disc) / d, (nb - disc) / d}
}
