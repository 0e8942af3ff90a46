package geometry

import "github.com/chewxy/math32"

// SolveQuadratic returns the real roots of a*x^2 + b*x + c = 0, or ok=false
// when the discriminant is negative. The roots are not ordered.
//
// The roots are computed as
//
//	q  = -0.5 * (b + sign(b)*sqrt(b^2 - 4ac))
//	x0 = q / a
//	x1 = c / q
//
// which only ever adds terms of the same sign. The textbook
// (-b +- sqrt(disc)) / 2a loses most of its precision when b and sqrt(disc)
// are close in magnitude.
func SolveQuadratic(a, b, c float32) (x0, x1 float32, ok bool) {
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}

	root := math32.Sqrt(disc)
	if b < 0 {
		root = -root
	}
	q := -0.5 * (b + root)
	if q == 0 {
		// b == 0 and disc == 0, so c == 0: a double root at zero
		return 0, 0, true
	}

	return q / a, c / q, true
}
