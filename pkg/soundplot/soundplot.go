// Package soundplot renders synthesized sound fields as heatmaps. It only
// handles regular grids with exactly two active dimensions; custom grids
// carry no lattice structure to draw.
package soundplot

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	// Liberation fonts register automatically on import.
	_ "gonum.org/v1/plot/font/liberation"

	"github.com/sfstoolbox/sfs-go/pkg/geometry"
	"github.com/sfstoolbox/sfs-go/pkg/synthesis"
)

// ErrUnplottable is returned for fields whose grid cannot be drawn as a 2D
// heatmap.
var ErrUnplottable = errors.New("field is not plottable")

// Mode selects the scalar projected out of the complex field.
type Mode string

const (
	// ModeReal draws the real part of the pressure (the wave fronts).
	ModeReal Mode = "real"
	// ModeMagnitude draws the absolute pressure.
	ModeMagnitude Mode = "magnitude"
	// ModeLevel draws the sound pressure level in dB re 20 uPa.
	ModeLevel Mode = "level"
)

// Options control the rendering. The zero value draws the real part with the
// default palette and no source markers.
type Options struct {
	Mode          Mode
	Title         string
	PaletteColors int
	// Sources, when non-empty, are overlaid as markers projected onto the
	// plot plane.
	Sources []geometry.SecondarySource
}

var axisLabels = [3]string{"x (m)", "y (m)", "z (m)"}

// Render builds a heatmap plot of the field.
func Render(res *synthesis.Result, opts *Options) (*plot.Plot, error) {
	if opts == nil {
		opts = &Options{}
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeReal
	}

	g := res.Grid
	if g.Custom {
		return nil, fmt.Errorf("%w: custom grid", ErrUnplottable)
	}
	dims, _ := g.Active()
	if len(dims) != 2 {
		return nil, fmt.Errorf("%w: %d active dimensions, want 2", ErrUnplottable, len(dims))
	}

	cols, err := g.AxisCoords(dims[0])
	if err != nil {
		return nil, err
	}
	rows, err := g.AxisCoords(dims[1])
	if err != nil {
		return nil, err
	}

	data := &fieldGrid{cols: cols, rows: rows, values: make([]float64, len(res.Pressure))}
	for i, p := range res.Pressure {
		data.values[i] = project(p, mode)
	}

	colors := opts.PaletteColors
	if colors <= 0 {
		colors = 255
	}

	pl := plot.New()
	pl.Title.Text = opts.Title
	pl.X.Label.Text = axisLabels[dims[0]]
	pl.Y.Label.Text = axisLabels[dims[1]]
	pl.Add(plotter.NewHeatMap(data, palette.Heat(colors, 1)))

	if len(opts.Sources) > 0 {
		xys := make(plotter.XYs, len(opts.Sources))
		for i, src := range opts.Sources {
			pos := [3]float64{src.Position.X, src.Position.Y, src.Position.Z}
			xys[i] = plotter.XY{X: pos[dims[0]], Y: pos[dims[1]]}
		}
		markers, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		pl.Add(markers)
	}

	return pl, nil
}

// Save renders the field and writes it to path. The image format follows the
// file extension (png, pdf, svg, ...).
func Save(res *synthesis.Result, opts *Options, path string, width, height vg.Length) error {
	pl, err := Render(res, opts)
	if err != nil {
		return err
	}
	return pl.Save(width, height, path)
}

func project(p complex128, mode Mode) float64 {
	switch mode {
	case ModeMagnitude:
		return cmplx.Abs(p)
	case ModeLevel:
		return 20 * math.Log10(cmplx.Abs(p)/synthesis.ReferencePressure)
	default:
		return real(p)
	}
}

// fieldGrid adapts the flat field layout (first active dimension fastest) to
// the plotter.GridXYZ interface.
type fieldGrid struct {
	cols, rows []float64
	values     []float64
}

func (f *fieldGrid) Dims() (c, r int)   { return len(f.cols), len(f.rows) }
func (f *fieldGrid) X(c int) float64    { return f.cols[c] }
func (f *fieldGrid) Y(r int) float64    { return f.rows[r] }
func (f *fieldGrid) Z(c, r int) float64 { return f.values[r*len(f.cols)+c] }
