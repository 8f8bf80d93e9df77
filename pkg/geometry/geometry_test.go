package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	assert.Equal(t, Vec3{5, -3, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, 7, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.InDelta(t, 12.0, a.Dot(b), 1e-15)
	assert.Equal(t, Vec3{27, 6, -13}, a.Cross(b))
	assert.InDelta(t, math.Sqrt(14), a.Norm(), 1e-15)
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	assert.InDelta(t, 1.0, v.Normalize().Norm(), 1e-15)

	// The zero vector stays put instead of dividing by zero.
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestLinearArray(t *testing.T) {
	sources, err := LinearArray(NewVec3(0, 0, 0), 0.2, 5)
	require.NoError(t, err)
	require.Len(t, sources, 5)

	// Centered on the origin, spaced along y, facing +x.
	assert.InDelta(t, -0.4, sources[0].Position.Y, 1e-15)
	assert.InDelta(t, 0.4, sources[4].Position.Y, 1e-15)
	assert.InDelta(t, 0.0, sources[2].Position.Y, 1e-15)
	for _, src := range sources {
		assert.Equal(t, Vec3{X: 1}, src.Normal)
		assert.InDelta(t, 0.2, src.Weight, 1e-15)
		assert.Zero(t, src.Position.X)
		assert.Zero(t, src.Position.Z)
	}
}

func TestLinearArrayInvalid(t *testing.T) {
	_, err := LinearArray(Vec3{}, 0.2, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = LinearArray(Vec3{}, -1, 4)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCircularArray(t *testing.T) {
	center := NewVec3(1, 2, 0)
	sources, err := CircularArray(center, 1.5, 16)
	require.NoError(t, err)
	require.Len(t, sources, 16)

	for i, src := range sources {
		assert.InDelta(t, 1.5, src.Position.Sub(center).Norm(), 1e-12, "source %d radius", i)
		assert.InDelta(t, 1.0, src.Normal.Norm(), 1e-12, "source %d normal length", i)

		// Normals point back at the center.
		toCenter := center.Sub(src.Position).Normalize()
		assert.InDelta(t, 1.0, src.Normal.Dot(toCenter), 1e-12, "source %d normal direction", i)

		assert.InDelta(t, 2*math.Pi*1.5/16, src.Weight, 1e-12)
	}
}

func TestCircularArrayInvalid(t *testing.T) {
	_, err := CircularArray(Vec3{}, 0, 8)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = CircularArray(Vec3{}, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTukeyWindow(t *testing.T) {
	win, err := TukeyWindow(9, 0.5)
	require.NoError(t, err)
	require.Len(t, win, 9)

	// Tapered ends, flat middle.
	assert.InDelta(t, 0.0, win[0], 1e-12)
	assert.InDelta(t, 0.0, win[8], 1e-12)
	assert.InDelta(t, 1.0, win[4], 1e-12)
	for i := range win {
		assert.InDelta(t, win[i], win[8-i], 1e-12, "window symmetry at %d", i)
		assert.GreaterOrEqual(t, win[i], 0.0)
		assert.LessOrEqual(t, win[i], 1.0)
	}
}

func TestTukeyWindowRectangular(t *testing.T) {
	win, err := TukeyWindow(5, 0)
	require.NoError(t, err)
	for i := range win {
		assert.Equal(t, 1.0, win[i])
	}
}

func TestTukeyWindowInvalid(t *testing.T) {
	_, err := TukeyWindow(0, 0.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = TukeyWindow(8, 1.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestApplyTaper(t *testing.T) {
	sources, err := LinearArray(Vec3{}, 0.1, 4)
	require.NoError(t, err)

	tapered, err := ApplyTaper(sources, []float64{0, 0.5, 0.5, 0})
	require.NoError(t, err)

	assert.Zero(t, tapered[0].Weight)
	assert.InDelta(t, 0.05, tapered[1].Weight, 1e-15)

	// The input array is untouched.
	assert.InDelta(t, 0.1, sources[0].Weight, 1e-15)
}

func TestApplyTaperCountMismatch(t *testing.T) {
	sources, err := LinearArray(Vec3{}, 0.1, 4)
	require.NoError(t, err)

	_, err = ApplyTaper(sources, []float64{1, 1})
	assert.ErrorIs(t, err, ErrCountMismatch)
}
