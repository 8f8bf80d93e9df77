package grid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/sfstoolbox/sfs-go/pkg/geometry"
)

// Grid holds the coordinates of every evaluation point. The three coordinate
// slices are flat-backed and always of identical length; for regular grids
// the points are laid out with x varying fastest, then y, then z. A Grid is
// immutable once built.
type Grid struct {
	// XX, YY, ZZ are the per-point coordinates, one entry per evaluation
	// point.
	XX, YY, ZZ []float64

	// Shape lists the extent of each active dimension in x, y, z order.
	// Squeezed dimensions do not appear. For a custom grid Shape is the
	// flat point count; a single-point grid, regular or custom, has an
	// empty Shape.
	Shape []int

	// ActiveDims marks which of x, y, z are evaluated at more than one
	// coordinate.
	ActiveDims [3]bool

	// Custom is set when any axis was given explicitly. Custom grids carry
	// no regularity guarantees; consumers that assume a regular lattice
	// (plotting, amplitude normalization) must refuse them.
	Custom bool

	axes [3]Axis
}

// Build constructs the evaluation grid from the three axis specifications.
// Span axes are expanded to resolution uniformly spaced points, inclusive of
// both bounds. Mixing Span and Explicit axes is rejected, as is any pair of
// Explicit axes with differing length.
func Build(x, y, z Axis, resolution int) (*Grid, error) {
	axes := [3]Axis{x, y, z}
	names := [3]string{"x", "y", "z"}

	hasSpan, hasExplicit := false, false
	for i, a := range axes {
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("%s axis: %w", names[i], err)
		}
		switch a.kind {
		case AxisSpan:
			hasSpan = true
		case AxisExplicit:
			hasExplicit = true
		}
	}
	if hasSpan && hasExplicit {
		return nil, fmt.Errorf("%w: span and explicit axes cannot be mixed", ErrInvalidSpec)
	}
	if hasSpan && resolution < 2 {
		return nil, fmt.Errorf("%w: resolution %d, need at least 2 grid points per spanned axis",
			ErrInvalidParameter, resolution)
	}

	if hasExplicit {
		return buildCustom(axes, names)
	}
	return buildRegular(axes, resolution)
}

// buildRegular expands fixed and span axes into a full lattice by an outer
// product, x fastest.
func buildRegular(axes [3]Axis, resolution int) (*Grid, error) {
	var coords [3][]float64
	g := &Grid{axes: axes}
	for i, a := range axes {
		if a.kind == AxisSpan {
			c := make([]float64, resolution)
			floats.Span(c, a.min, a.max)
			// Span steps from min; pin the far endpoint against rounding.
			c[resolution-1] = a.max
			coords[i] = c
			g.ActiveDims[i] = true
			g.Shape = append(g.Shape, resolution)
		} else {
			coords[i] = []float64{a.value}
		}
	}

	n := len(coords[0]) * len(coords[1]) * len(coords[2])
	g.XX = make([]float64, 0, n)
	g.YY = make([]float64, 0, n)
	g.ZZ = make([]float64, 0, n)
	for _, z := range coords[2] {
		for _, y := range coords[1] {
			for _, x := range coords[0] {
				g.XX = append(g.XX, x)
				g.YY = append(g.YY, y)
				g.ZZ = append(g.ZZ, z)
			}
		}
	}
	return g, nil
}

// buildCustom uses explicit coordinates verbatim, broadcasting fixed axes
// against them.
func buildCustom(axes [3]Axis, names [3]string) (*Grid, error) {
	n := 0
	for i, a := range axes {
		if a.kind != AxisExplicit {
			continue
		}
		if n == 0 {
			n = len(a.points)
		} else if len(a.points) != n {
			return nil, fmt.Errorf("%w: %s axis has %d points, want %d",
				ErrShapeMismatch, names[i], len(a.points), n)
		}
	}

	g := &Grid{Custom: true, axes: axes}
	if n > 1 {
		g.Shape = []int{n}
	}
	expand := func(i int) []float64 {
		a := axes[i]
		if a.kind == AxisExplicit {
			g.ActiveDims[i] = len(a.points) > 1
			c := make([]float64, n)
			copy(c, a.points)
			return c
		}
		c := make([]float64, n)
		for j := range c {
			c[j] = a.value
		}
		return c
	}
	g.XX = expand(0)
	g.YY = expand(1)
	g.ZZ = expand(2)
	return g, nil
}

// Len returns the number of evaluation points.
func (g *Grid) Len() int { return len(g.XX) }

// At returns the coordinates of evaluation point i.
func (g *Grid) At(i int) geometry.Vec3 {
	return geometry.Vec3{X: g.XX[i], Y: g.YY[i], Z: g.ZZ[i]}
}

// Active returns the indices of the active dimensions (0 = x, 1 = y, 2 = z)
// and the field shape over those dimensions. An empty dims slice means a
// single-point evaluation with a scalar field.
func (g *Grid) Active() (dims []int, shape []int) {
	for i, on := range g.ActiveDims {
		if on {
			dims = append(dims, i)
		}
	}
	if len(g.Shape) > 0 {
		shape = make([]int, len(g.Shape))
		copy(shape, g.Shape)
	}
	return dims, shape
}

// AxisCoords returns the distinct coordinates of a regular grid along the
// given dimension (0 = x, 1 = y, 2 = z). It fails on custom grids, whose
// axes are not separable.
func (g *Grid) AxisCoords(dim int) ([]float64, error) {
	if dim < 0 || dim > 2 {
		return nil, fmt.Errorf("%w: axis index %d", ErrInvalidParameter, dim)
	}
	if g.Custom {
		return nil, fmt.Errorf("%w: custom grids have no separable axes", ErrInvalidParameter)
	}
	a := g.axes[dim]
	if a.kind == AxisFixed {
		return []float64{a.value}, nil
	}
	// Spanned axis: stride through the flat layout (x fastest).
	var src []float64
	switch dim {
	case 0:
		src = g.XX
	case 1:
		src = g.YY
	default:
		src = g.ZZ
	}
	size, stride := 1, 1
	for d := 0; d < 3; d++ {
		if !g.ActiveDims[d] {
			continue
		}
		extent := g.extent(d)
		if d < dim {
			stride *= extent
		}
		if d == dim {
			size = extent
		}
	}
	out := make([]float64, size)
	for i := range out {
		out[i] = src[i*stride]
	}
	return out, nil
}

// extent returns the number of grid points along dimension d of a regular
// grid.
func (g *Grid) extent(d int) int {
	j := 0
	for i := 0; i < 3; i++ {
		if !g.ActiveDims[i] {
			continue
		}
		if i == d {
			return g.Shape[j]
		}
		j++
	}
	return 1
}
