package synthesis

import (
	"math"
	"math/cmplx"

	"github.com/sfstoolbox/sfs-go/pkg/grid"
)

// ReferencePressure is the standard reference for sound pressure level in
// air, 20 micropascal.
const ReferencePressure = 20e-6

// Result is a synthesized field together with the grid it was evaluated on.
// The pressure slice is aligned with the grid layout (x fastest for regular
// grids) and is not mutated after synthesis.
type Result struct {
	Pressure []complex128
	Grid     *grid.Grid
}

// At returns the complex pressure at evaluation point i.
func (r *Result) At(i int) complex128 { return r.Pressure[i] }

// Magnitude returns the absolute pressure per evaluation point.
func (r *Result) Magnitude() []float64 {
	out := make([]float64, len(r.Pressure))
	for i, p := range r.Pressure {
		out[i] = cmplx.Abs(p)
	}
	return out
}

// Level returns the sound pressure level in dB re 20 uPa per evaluation
// point. Zero pressure maps to -Inf.
func (r *Result) Level() []float64 {
	out := make([]float64, len(r.Pressure))
	for i, p := range r.Pressure {
		out[i] = 20 * math.Log10(cmplx.Abs(p)/ReferencePressure)
	}
	return out
}

// Finite reports whether every field value is finite. Evaluation points that
// coincide with a secondary source produce non-finite values; see
// greens.Evaluate.
func (r *Result) Finite() bool {
	for _, p := range r.Pressure {
		if cmplx.IsNaN(p) || cmplx.IsInf(p) {
			return false
		}
	}
	return true
}
