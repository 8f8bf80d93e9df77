// Package greens evaluates free-field Green's functions: the complex
// transfer function between a unit-amplitude secondary source and every
// point of an evaluation grid, for a single frequency.
package greens

import (
	"errors"
	"fmt"
)

// Evaluation errors.
var (
	ErrUnknownModel     = errors.New("unknown source model")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Model selects the closed-form Green's function of a secondary source.
type Model int

const (
	// PointSource is the 3D free-field Green's function with 1/r decay.
	PointSource Model = iota
	// LineSource is the 2D free-field Green's function of a line along the
	// z axis, expressed through the Hankel function of the second kind.
	LineSource
	// PlaneWave is a pure phase ramp with unit amplitude everywhere.
	PlaneWave
)

// ParseModel maps the wire-level model tags to a Model.
func ParseModel(s string) (Model, error) {
	switch s {
	case "point":
		return PointSource, nil
	case "line":
		return LineSource, nil
	case "plane_wave":
		return PlaneWave, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// String returns the wire-level tag of the model.
func (m Model) String() string {
	switch m {
	case PointSource:
		return "point"
	case LineSource:
		return "line"
	case PlaneWave:
		return "plane_wave"
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// Convention is the sign of the temporal exponential. The whole toolbox
// assumes exp(-i*omega*t); flipping the convention conjugates every Green's
// function.
type Convention int

const (
	// NegativeExponent is the exp(-i*omega*t) time convention (default).
	NegativeExponent Convention = iota
	// PositiveExponent is the exp(+i*omega*t) time convention.
	PositiveExponent
)

// ParseConvention maps the configuration tags "negative" and "positive" to a
// Convention.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "negative":
		return NegativeExponent, nil
	case "positive":
		return PositiveExponent, nil
	}
	return 0, fmt.Errorf("%w: time convention %q", ErrInvalidParameter, s)
}
