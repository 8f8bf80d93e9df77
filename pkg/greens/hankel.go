package greens

import "math"

// hankel2 returns the real and imaginary building blocks of the Hankel
// function of the second kind and order zero,
//
//	H0^(2)(x) = J0(x) - i*Y0(x),
//
// as the pair (J0(x), Y0(x)). Y0 diverges to -Inf at x = 0, matching the
// logarithmic singularity of the 2D Green's function on the source line.
func hankel2(x float64) (j0, y0 float64) {
	return math.J0(x), math.Y0(x)
}
