package greens

import (
	"fmt"
	"math"

	"github.com/sfstoolbox/sfs-go/pkg/geometry"
	"github.com/sfstoolbox/sfs-go/pkg/grid"
)

// DefaultSpeedOfSound is the propagation speed in air at 20 degrees Celsius,
// in m/s.
const DefaultSpeedOfSound = 343.0

// Params carries the physical constants of one evaluation.
type Params struct {
	// Frequency of the monochromatic field in Hz. Must be positive.
	Frequency float64
	// SpeedOfSound in m/s. Zero selects DefaultSpeedOfSound.
	SpeedOfSound float64
	// Convention is the sign of the temporal exponential.
	Convention Convention
}

// Wavenumber returns k = 2*pi*f/c for the parameters.
func (p Params) Wavenumber() float64 {
	c := p.SpeedOfSound
	if c == 0 {
		c = DefaultSpeedOfSound
	}
	return 2 * math.Pi * p.Frequency / c
}

// Validate checks the physical constants without evaluating anything.
func (p Params) Validate() error {
	if p.Frequency <= 0 || math.IsNaN(p.Frequency) || math.IsInf(p.Frequency, 0) {
		return fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, p.Frequency)
	}
	if c := p.SpeedOfSound; c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%w: speed of sound %v m/s", ErrInvalidParameter, c)
	}
	return nil
}

// Evaluate computes the Green's function of one secondary source over every
// point of the grid and returns it as a complex slice aligned with the grid
// layout. pos is the source position; orientation is only consulted by the
// plane-wave model, where it is the propagation direction (normalized
// internally) and pos the zero-phase reference point.
//
// Evaluating a point or line source exactly at its own position divides by a
// zero distance. The resulting non-finite values are returned as-is: the
// singularity is physical, and callers that need finite output must keep
// their evaluation points off the source positions.
func Evaluate(g *grid.Grid, pos, orientation geometry.Vec3, m Model, p Params) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k := p.Wavenumber()

	var out []complex128
	switch m {
	case PointSource:
		out = evaluatePoint(g, pos, k)
	case LineSource:
		out = evaluateLine(g, pos, k)
	case PlaneWave:
		if orientation.Norm() == 0 || !orientation.IsFinite() {
			return nil, fmt.Errorf("%w: plane wave needs a non-zero propagation direction",
				ErrInvalidParameter)
		}
		out = evaluatePlane(g, pos, orientation.Normalize(), k)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownModel, m)
	}

	if p.Convention == PositiveExponent {
		conjugate(out)
	}
	return out, nil
}

// evaluatePoint computes G(x) = exp(-i*k*r) / (4*pi*r) with r the Euclidean
// distance to the source.
func evaluatePoint(g *grid.Grid, pos geometry.Vec3, k float64) []complex128 {
	out := make([]complex128, g.Len())
	for i := range out {
		dx := g.XX[i] - pos.X
		dy := g.YY[i] - pos.Y
		dz := g.ZZ[i] - pos.Z
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)
		amp := 1 / (4 * math.Pi * r)
		s, c := math.Sincos(-k * r)
		out[i] = complex(amp*c, amp*s)
	}
	return out
}

// evaluateLine computes G(x) = -i/4 * H0^(2)(k*r) for a line source along
// the z axis, with r the distance in the xy plane.
func evaluateLine(g *grid.Grid, pos geometry.Vec3, k float64) []complex128 {
	out := make([]complex128, g.Len())
	for i := range out {
		dx := g.XX[i] - pos.X
		dy := g.YY[i] - pos.Y
		r := math.Hypot(dx, dy)
		j0, y0 := hankel2(k * r)
		// -i/4 * (J0 - i*Y0) = -Y0/4 - i*J0/4
		out[i] = complex(-y0/4, -j0/4)
	}
	return out
}

// evaluatePlane computes G(x) = exp(-i*k * n.(x - pos)), a unit-amplitude
// phase ramp along the propagation direction n.
func evaluatePlane(g *grid.Grid, pos, n geometry.Vec3, k float64) []complex128 {
	out := make([]complex128, g.Len())
	for i := range out {
		proj := n.X*(g.XX[i]-pos.X) + n.Y*(g.YY[i]-pos.Y) + n.Z*(g.ZZ[i]-pos.Z)
		s, c := math.Sincos(-k * proj)
		out[i] = complex(c, s)
	}
	return out
}

func conjugate(field []complex128) {
	for i, v := range field {
		field[i] = complex(real(v), -imag(v))
	}
}
