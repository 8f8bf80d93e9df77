package app

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sfstoolbox/sfs-go/pkg/geometry"
	"github.com/sfstoolbox/sfs-go/pkg/greens"
	"github.com/sfstoolbox/sfs-go/pkg/grid"
)

// Scenario is the YAML description of one synthesis run: the evaluation
// grid, the secondary-source array, the driving signals and the source
// model. Driving signals are opaque inputs here; deriving them for a
// specific synthesis method is the job of upstream tooling.
type Scenario struct {
	Name        string      `yaml:"name"`
	Model       string      `yaml:"model"`
	FrequencyHz float64     `yaml:"frequency_hz"`
	Grid        GridSpec    `yaml:"grid"`
	Array       ArraySpec   `yaml:"array"`
	Driving     DrivingSpec `yaml:"driving"`
}

// GridSpec holds the three axis specifications.
type GridSpec struct {
	X AxisSpec `yaml:"x"`
	Y AxisSpec `yaml:"y"`
	Z AxisSpec `yaml:"z"`
}

// AxisSpec is the YAML form of one axis: exactly one of fixed, span or
// points must be given.
type AxisSpec struct {
	Fixed  *float64  `yaml:"fixed"`
	Span   []float64 `yaml:"span"`
	Points []float64 `yaml:"points"`
}

// ArraySpec describes the secondary-source array, either through a generator
// or as an explicit source table. taper applies a Tukey window on top.
type ArraySpec struct {
	Linear   *LinearArraySpec           `yaml:"linear"`
	Circular *CircularArraySpec         `yaml:"circular"`
	Sources  []geometry.SecondarySource `yaml:"sources"`
	Taper    *TaperSpec                 `yaml:"taper"`
}

// LinearArraySpec generates an equally spaced line of sources.
type LinearArraySpec struct {
	Center  geometry.Vec3 `yaml:"center"`
	Spacing float64       `yaml:"spacing"`
	Count   int           `yaml:"count"`
}

// CircularArraySpec generates a circle of sources with inward normals.
type CircularArraySpec struct {
	Center geometry.Vec3 `yaml:"center"`
	Radius float64       `yaml:"radius"`
	Count  int           `yaml:"count"`
}

// TaperSpec applies a Tukey window to the array weights.
type TaperSpec struct {
	Ratio float64 `yaml:"ratio"`
}

// DrivingSpec supplies the complex excitation per source, either one entry
// per source or a single uniform signal broadcast to the whole array.
type DrivingSpec struct {
	Signals []SignalSpec `yaml:"signals"`
	Uniform *SignalSpec  `yaml:"uniform"`
}

// SignalSpec is one complex driving signal in polar form.
type SignalSpec struct {
	Amplitude float64 `yaml:"amplitude"`
	PhaseDeg  float64 `yaml:"phase_deg"`
}

func (s SignalSpec) complexValue() complex128 {
	phi := s.PhaseDeg * math.Pi / 180
	sin, cos := math.Sincos(phi)
	return complex(s.Amplitude*cos, s.Amplitude*sin)
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return &sc, nil
}

// axis converts the YAML axis form to a grid.Axis.
func (a AxisSpec) axis(name string) (grid.Axis, error) {
	set := 0
	if a.Fixed != nil {
		set++
	}
	if len(a.Span) > 0 {
		set++
	}
	if len(a.Points) > 0 {
		set++
	}
	if set != 1 {
		return grid.Axis{}, fmt.Errorf("%s axis: exactly one of fixed, span or points must be given", name)
	}
	switch {
	case a.Fixed != nil:
		return grid.Fixed(*a.Fixed), nil
	case len(a.Span) > 0:
		if len(a.Span) != 2 {
			return grid.Axis{}, fmt.Errorf("%s axis: span needs exactly [min, max], got %d values",
				name, len(a.Span))
		}
		return grid.Span(a.Span[0], a.Span[1]), nil
	default:
		return grid.Explicit(a.Points), nil
	}
}

// BuildGrid constructs the evaluation grid of the scenario.
func (sc *Scenario) BuildGrid(resolution int) (*grid.Grid, error) {
	x, err := sc.Grid.X.axis("x")
	if err != nil {
		return nil, err
	}
	y, err := sc.Grid.Y.axis("y")
	if err != nil {
		return nil, err
	}
	z, err := sc.Grid.Z.axis("z")
	if err != nil {
		return nil, err
	}
	return grid.Build(x, y, z, resolution)
}

// BuildArray constructs the secondary-source table of the scenario.
func (sc *Scenario) BuildArray() ([]geometry.SecondarySource, error) {
	specs := 0
	if sc.Array.Linear != nil {
		specs++
	}
	if sc.Array.Circular != nil {
		specs++
	}
	if len(sc.Array.Sources) > 0 {
		specs++
	}
	if specs != 1 {
		return nil, fmt.Errorf("array: exactly one of linear, circular or sources must be given")
	}

	var sources []geometry.SecondarySource
	var err error
	switch {
	case sc.Array.Linear != nil:
		l := sc.Array.Linear
		sources, err = geometry.LinearArray(l.Center, l.Spacing, l.Count)
	case sc.Array.Circular != nil:
		c := sc.Array.Circular
		sources, err = geometry.CircularArray(c.Center, c.Radius, c.Count)
	default:
		sources = append(sources, sc.Array.Sources...)
	}
	if err != nil {
		return nil, err
	}

	if sc.Array.Taper != nil {
		win, err := geometry.TukeyWindow(len(sources), sc.Array.Taper.Ratio)
		if err != nil {
			return nil, err
		}
		sources, err = geometry.ApplyTaper(sources, win)
		if err != nil {
			return nil, err
		}
	}
	return sources, nil
}

// BuildDriving constructs the driving-signal vector for n sources.
func (sc *Scenario) BuildDriving(n int) ([]complex128, error) {
	d := sc.Driving
	if len(d.Signals) > 0 && d.Uniform != nil {
		return nil, fmt.Errorf("driving: signals and uniform are mutually exclusive")
	}
	driving := make([]complex128, n)
	switch {
	case d.Uniform != nil:
		for i := range driving {
			driving[i] = d.Uniform.complexValue()
		}
	case len(d.Signals) > 0:
		if len(d.Signals) != n {
			return nil, fmt.Errorf("driving: %d signals for %d sources", len(d.Signals), n)
		}
		for i, s := range d.Signals {
			driving[i] = s.complexValue()
		}
	default:
		return nil, fmt.Errorf("driving: either signals or uniform must be given")
	}
	return driving, nil
}

// ParseModel resolves the scenario's source model tag.
func (sc *Scenario) ParseModel() (greens.Model, error) {
	return greens.ParseModel(sc.Model)
}
