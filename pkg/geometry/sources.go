// Package geometry provides the secondary-source descriptors consumed by the
// synthesis engine, plus generators for common loudspeaker array layouts.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Common geometry errors.
var (
	ErrInvalidParameter = errors.New("invalid geometry parameter")
	ErrCountMismatch    = errors.New("count mismatch")
)

// SecondarySource describes one element of the loudspeaker array: its
// position, the unit normal it radiates along, and the integration weight
// folded into the discretized single-layer integral (grid spacing times any
// tapering or selection weight).
type SecondarySource struct {
	Position Vec3    `json:"position" yaml:"position"`
	Normal   Vec3    `json:"normal" yaml:"normal"`
	Weight   float64 `json:"weight" yaml:"weight"`
}

// LinearArray generates n equally spaced secondary sources on a line along
// the y axis, centered on center, all facing the positive x direction. The
// integration weight of every source is the element spacing.
func LinearArray(center Vec3, spacing float64, n int) ([]SecondarySource, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: array size %d", ErrInvalidParameter, n)
	}
	if spacing <= 0 || math.IsNaN(spacing) {
		return nil, fmt.Errorf("%w: spacing %v", ErrInvalidParameter, spacing)
	}

	sources := make([]SecondarySource, n)
	offset := -spacing * float64(n-1) / 2
	for i := range sources {
		sources[i] = SecondarySource{
			Position: Vec3{center.X, center.Y + offset + float64(i)*spacing, center.Z},
			Normal:   Vec3{X: 1},
			Weight:   spacing,
		}
	}
	return sources, nil
}

// CircularArray generates n equally spaced secondary sources on a circle of
// the given radius in the z = center.Z plane, with normals pointing toward
// the center. The integration weight is the arc length per element.
func CircularArray(center Vec3, radius float64, n int) ([]SecondarySource, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: array size %d", ErrInvalidParameter, n)
	}
	if radius <= 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidParameter, radius)
	}

	sources := make([]SecondarySource, n)
	arc := 2 * math.Pi * radius / float64(n)
	for i := range sources {
		phi := 2 * math.Pi * float64(i) / float64(n)
		cos, sin := math.Cos(phi), math.Sin(phi)
		sources[i] = SecondarySource{
			Position: Vec3{center.X + radius*cos, center.Y + radius*sin, center.Z},
			Normal:   Vec3{X: -cos, Y: -sin},
			Weight:   arc,
		}
	}
	return sources, nil
}

// TukeyWindow returns an n-point tapered cosine window. ratio is the fraction
// of the window inside the cosine ramps; 0 yields a rectangular window and 1
// a Hann window. Used to taper the active part of an array and soften
// truncation artifacts.
func TukeyWindow(n int, ratio float64) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: window size %d", ErrInvalidParameter, n)
	}
	if ratio < 0 || ratio > 1 || math.IsNaN(ratio) {
		return nil, fmt.Errorf("%w: taper ratio %v", ErrInvalidParameter, ratio)
	}

	win := make([]float64, n)
	if n == 1 {
		win[0] = 1
		return win, nil
	}
	ramp := ratio * float64(n-1) / 2
	for i := range win {
		x := float64(i)
		switch {
		case ramp > 0 && x < ramp:
			win[i] = 0.5 * (1 + math.Cos(math.Pi*(x/ramp-1)))
		case ramp > 0 && x > float64(n-1)-ramp:
			win[i] = 0.5 * (1 + math.Cos(math.Pi*((x-float64(n-1))/ramp+1)))
		default:
			win[i] = 1
		}
	}
	return win, nil
}

// ApplyTaper multiplies the integration weight of each source by the matching
// window coefficient and returns the tapered copy. The input slice is not
// modified.
func ApplyTaper(sources []SecondarySource, window []float64) ([]SecondarySource, error) {
	if len(sources) != len(window) {
		return nil, fmt.Errorf("%w: %d sources, %d window coefficients",
			ErrCountMismatch, len(sources), len(window))
	}
	tapered := make([]SecondarySource, len(sources))
	copy(tapered, sources)
	for i := range tapered {
		tapered[i].Weight *= window[i]
	}
	return tapered, nil
}
