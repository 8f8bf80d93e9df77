package greens

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfstoolbox/sfs-go/pkg/geometry"
	"github.com/sfstoolbox/sfs-go/pkg/grid"
)

func pointGrid(t *testing.T, x, y, z float64) *grid.Grid {
	t.Helper()
	g, err := grid.Build(grid.Fixed(x), grid.Fixed(y), grid.Fixed(z), 2)
	require.NoError(t, err)
	return g
}

func customGrid(t *testing.T, xs, ys, zs []float64) *grid.Grid {
	t.Helper()
	g, err := grid.Build(grid.Explicit(xs), grid.Explicit(ys), grid.Explicit(zs), 2)
	require.NoError(t, err)
	return g
}

func TestParseModel(t *testing.T) {
	for tag, want := range map[string]Model{
		"point":      PointSource,
		"line":       LineSource,
		"plane_wave": PlaneWave,
	} {
		m, err := ParseModel(tag)
		require.NoError(t, err)
		assert.Equal(t, want, m)
		assert.Equal(t, tag, m.String())
	}

	_, err := ParseModel("dipole")
	assert.ErrorIs(t, err, ErrUnknownModel)
}

// The closed form at unit distance: G = exp(-i*k)/(4*pi) for f = 1 kHz and
// c = 343 m/s.
func TestPointSourceClosedForm(t *testing.T) {
	g := pointGrid(t, 1, 0, 0)
	p := Params{Frequency: 1000, SpeedOfSound: 343}
	k := 2 * math.Pi * 1000 / 343

	field, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource, p)
	require.NoError(t, err)
	require.Len(t, field, 1)

	want := cmplx.Exp(complex(0, -k)) / complex(4*math.Pi, 0)
	assert.InDelta(t, real(want), real(field[0]), 1e-12)
	assert.InDelta(t, imag(want), imag(field[0]), 1e-12)
}

// Equal-distance points see equal magnitude, regardless of direction.
func TestPointSourceRadialSymmetry(t *testing.T) {
	g := customGrid(t,
		[]float64{2, 0, 0, math.Sqrt2},
		[]float64{0, 2, 0, math.Sqrt2},
		[]float64{0, 0, 2, 0},
	)
	p := Params{Frequency: 700, SpeedOfSound: 343}

	field, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource, p)
	require.NoError(t, err)

	want := cmplx.Abs(field[0])
	for i, v := range field {
		assert.InDelta(t, want, cmplx.Abs(v), 1e-12, "point %d", i)
	}
	assert.InDelta(t, 1/(8*math.Pi), want, 1e-12)
}

func TestPointSourceSingularity(t *testing.T) {
	g := pointGrid(t, 0.5, -0.25, 2)
	p := Params{Frequency: 1000}

	// Evaluating at the source position divides by zero distance. The
	// non-finite value propagates instead of being patched.
	field, err := Evaluate(g, geometry.NewVec3(0.5, -0.25, 2), geometry.Vec3{}, PointSource, p)
	require.NoError(t, err)
	assert.True(t, cmplx.IsInf(field[0]) || cmplx.IsNaN(field[0]))
}

func TestLineSourceClosedForm(t *testing.T) {
	g := pointGrid(t, 1, 0, 0)
	p := Params{Frequency: 500, SpeedOfSound: 343}
	k := p.Wavenumber()

	field, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, LineSource, p)
	require.NoError(t, err)

	// -i/4 * H0^(2)(k*r) with H0^(2) = J0 - i*Y0.
	want := complex(-math.Y0(k)/4, -math.J0(k)/4)
	assert.InDelta(t, real(want), real(field[0]), 1e-12)
	assert.InDelta(t, imag(want), imag(field[0]), 1e-12)
}

// The line extends along z: displacing the evaluation point along z must not
// change the transfer function.
func TestLineSourceIgnoresZ(t *testing.T) {
	p := Params{Frequency: 500, SpeedOfSound: 343}

	a, err := Evaluate(pointGrid(t, 1, 0.5, 0), geometry.Vec3{}, geometry.Vec3{}, LineSource, p)
	require.NoError(t, err)
	b, err := Evaluate(pointGrid(t, 1, 0.5, -7), geometry.Vec3{}, geometry.Vec3{}, LineSource, p)
	require.NoError(t, err)

	assert.Equal(t, a[0], b[0])
}

// A plane wave has no distance attenuation: |G| == 1 everywhere.
func TestPlaneWaveUnitAmplitude(t *testing.T) {
	g, err := grid.Build(grid.Span(-2, 2), grid.Span(-2, 2), grid.Fixed(0), 9)
	require.NoError(t, err)
	p := Params{Frequency: 1200, SpeedOfSound: 343}

	field, err := Evaluate(g, geometry.Vec3{}, geometry.NewVec3(1, 1, 0), PlaneWave, p)
	require.NoError(t, err)

	for i, v := range field {
		assert.InDelta(t, 1.0, cmplx.Abs(v), 1e-12, "point %d", i)
	}
}

func TestPlaneWavePhaseRamp(t *testing.T) {
	g := pointGrid(t, 2, 0, 0)
	p := Params{Frequency: 343, SpeedOfSound: 343} // k = 2*pi

	// Two meters along the propagation direction is two full cycles.
	field, err := Evaluate(g, geometry.Vec3{}, geometry.NewVec3(1, 0, 0), PlaneWave, p)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(field[0]), 1e-9)
	assert.InDelta(t, 0.0, imag(field[0]), 1e-9)

	// Direction vectors are normalized before projecting.
	scaled, err := Evaluate(g, geometry.Vec3{}, geometry.NewVec3(10, 0, 0), PlaneWave, p)
	require.NoError(t, err)
	assert.InDelta(t, real(field[0]), real(scaled[0]), 1e-12)
	assert.InDelta(t, imag(field[0]), imag(scaled[0]), 1e-12)
}

func TestPlaneWaveNeedsDirection(t *testing.T) {
	g := pointGrid(t, 1, 0, 0)
	p := Params{Frequency: 1000}

	_, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PlaneWave, p)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

// Flipping the time convention conjugates the field.
func TestConventionFlip(t *testing.T) {
	g := pointGrid(t, 1.2, 0.3, 0)

	neg, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource,
		Params{Frequency: 800, Convention: NegativeExponent})
	require.NoError(t, err)
	pos, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource,
		Params{Frequency: 800, Convention: PositiveExponent})
	require.NoError(t, err)

	assert.Equal(t, real(neg[0]), real(pos[0]))
	assert.Equal(t, -imag(neg[0]), imag(pos[0]))
}

func TestEvaluateValidation(t *testing.T) {
	g := pointGrid(t, 1, 0, 0)

	_, err := Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource, Params{Frequency: 0})
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource, Params{Frequency: -100})
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, PointSource,
		Params{Frequency: 100, SpeedOfSound: -1})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Evaluate(g, geometry.Vec3{}, geometry.Vec3{}, Model(42), Params{Frequency: 100})
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestParseConvention(t *testing.T) {
	c, err := ParseConvention("")
	require.NoError(t, err)
	assert.Equal(t, NegativeExponent, c)

	c, err = ParseConvention("positive")
	require.NoError(t, err)
	assert.Equal(t, PositiveExponent, c)

	_, err = ParseConvention("sideways")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestWavenumber(t *testing.T) {
	p := Params{Frequency: 1000, SpeedOfSound: 343}
	assert.InDelta(t, 18.3166, p.Wavenumber(), 1e-3)

	// Zero speed of sound selects the default.
	p = Params{Frequency: 1000}
	assert.InDelta(t, 2*math.Pi*1000/DefaultSpeedOfSound, p.Wavenumber(), 1e-12)
}
