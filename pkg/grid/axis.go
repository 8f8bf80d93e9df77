// Package grid builds the spatial evaluation grids that sound fields are
// computed over. An axis of the grid is specified either as a fixed
// coordinate (the dimension is squeezed), as a [min, max] span that is
// expanded to a uniform sequence, or as an explicit list of coordinates
// (a custom, possibly irregular grid).
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Grid construction errors.
var (
	ErrInvalidSpec      = errors.New("invalid axis specification")
	ErrShapeMismatch    = errors.New("axis shape mismatch")
	ErrInvalidParameter = errors.New("invalid grid parameter")
)

// AxisKind discriminates the three axis specification variants.
type AxisKind int

const (
	// AxisFixed pins the axis to a single coordinate; the dimension is
	// squeezed out of the resulting field.
	AxisFixed AxisKind = iota
	// AxisSpan expands to a uniform sequence of grid points between two
	// bounds, inclusive.
	AxisSpan
	// AxisExplicit supplies the evaluation coordinates verbatim and marks
	// the grid as custom.
	AxisExplicit
)

// Axis is the tagged specification of one grid dimension. The zero value is
// a fixed axis at coordinate 0.
type Axis struct {
	kind     AxisKind
	value    float64
	min, max float64
	points   []float64
}

// Fixed specifies a squeezed axis at the given coordinate.
func Fixed(v float64) Axis {
	return Axis{kind: AxisFixed, value: v}
}

// Span specifies an active axis covering [min, max], expanded to the
// configured resolution when the grid is built. min must not exceed max;
// descending spans are rejected at build time.
func Span(min, max float64) Axis {
	return Axis{kind: AxisSpan, min: min, max: max}
}

// Explicit specifies the axis coordinates verbatim. The slice is copied.
func Explicit(points []float64) Axis {
	p := make([]float64, len(points))
	copy(p, points)
	return Axis{kind: AxisExplicit, points: p}
}

// Kind returns the specification variant of the axis.
func (a Axis) Kind() AxisKind { return a.kind }

func (a Axis) validate() error {
	switch a.kind {
	case AxisFixed:
		if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
			return fmt.Errorf("%w: non-finite fixed coordinate %v", ErrInvalidSpec, a.value)
		}
	case AxisSpan:
		if math.IsNaN(a.min) || math.IsInf(a.min, 0) ||
			math.IsNaN(a.max) || math.IsInf(a.max, 0) {
			return fmt.Errorf("%w: non-finite span [%v, %v]", ErrInvalidSpec, a.min, a.max)
		}
		if a.min > a.max {
			return fmt.Errorf("%w: descending span [%v, %v]", ErrInvalidSpec, a.min, a.max)
		}
	case AxisExplicit:
		if len(a.points) == 0 {
			return fmt.Errorf("%w: empty explicit axis", ErrInvalidSpec)
		}
		for _, p := range a.points {
			if math.IsNaN(p) || math.IsInf(p, 0) {
				return fmt.Errorf("%w: non-finite explicit coordinate %v", ErrInvalidSpec, p)
			}
		}
	default:
		return fmt.Errorf("%w: unknown axis kind %d", ErrInvalidSpec, a.kind)
	}
	return nil
}
