package app

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfstoolbox/sfs-go/pkg/greens"
)

const sampleScenario = `
name: circular point synthesis
model: point
frequency_hz: 1000
grid:
  x: {span: [-2, 2]}
  y: {span: [-2, 2]}
  z: {fixed: 0}
array:
  circular:
    center: {x: 0, y: 0, z: 0}
    radius: 1.5
    count: 32
  taper:
    ratio: 0.3
driving:
  uniform: {amplitude: 1, phase_deg: 90}
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	assert.Equal(t, "circular point synthesis", sc.Name)
	assert.Equal(t, 1000.0, sc.FrequencyHz)

	model, err := sc.ParseModel()
	require.NoError(t, err)
	assert.Equal(t, greens.PointSource, model)
}

func TestScenarioBuildGrid(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	g, err := sc.BuildGrid(50)
	require.NoError(t, err)
	assert.Equal(t, 2500, g.Len())
	assert.Equal(t, []int{50, 50}, g.Shape)
}

func TestScenarioBuildArray(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	sources, err := sc.BuildArray()
	require.NoError(t, err)
	require.Len(t, sources, 32)

	// Tapered: the first element sits at the window edge.
	assert.Less(t, sources[0].Weight, sources[16].Weight)
}

func TestScenarioBuildDrivingUniform(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, sampleScenario))
	require.NoError(t, err)

	driving, err := sc.BuildDriving(4)
	require.NoError(t, err)
	require.Len(t, driving, 4)
	for _, d := range driving {
		assert.InDelta(t, 0.0, real(d), 1e-12)
		assert.InDelta(t, 1.0, imag(d), 1e-12)
	}
}

func TestScenarioBuildDrivingPerSource(t *testing.T) {
	sc := &Scenario{Driving: DrivingSpec{Signals: []SignalSpec{
		{Amplitude: 1, PhaseDeg: 0},
		{Amplitude: 2, PhaseDeg: 180},
	}}}

	driving, err := sc.BuildDriving(2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, real(driving[0]), 1e-12)
	assert.InDelta(t, -2.0, real(driving[1]), 1e-12)
	assert.InDelta(t, 0.0, imag(driving[1]), 1e-12)

	_, err = sc.BuildDriving(3)
	assert.Error(t, err, "signal count must match source count")
}

func TestScenarioDrivingValidation(t *testing.T) {
	sc := &Scenario{}
	_, err := sc.BuildDriving(2)
	assert.Error(t, err)

	sc = &Scenario{Driving: DrivingSpec{
		Uniform: &SignalSpec{Amplitude: 1},
		Signals: []SignalSpec{{Amplitude: 1}},
	}}
	_, err = sc.BuildDriving(1)
	assert.Error(t, err)
}

func TestScenarioAxisValidation(t *testing.T) {
	fixed := 1.0
	cases := map[string]AxisSpec{
		"none set": {},
		"two set":  {Fixed: &fixed, Span: []float64{0, 1}},
		"bad span": {Span: []float64{0, 1, 2}},
	}
	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			sc := &Scenario{Grid: GridSpec{X: spec, Y: AxisSpec{Fixed: &fixed}, Z: AxisSpec{Fixed: &fixed}}}
			_, err := sc.BuildGrid(10)
			assert.Error(t, err)
		})
	}
}

func TestScenarioArrayValidation(t *testing.T) {
	sc := &Scenario{}
	_, err := sc.BuildArray()
	assert.Error(t, err, "an array spec is required")

	sc = &Scenario{Array: ArraySpec{
		Linear:   &LinearArraySpec{Spacing: 0.1, Count: 4},
		Circular: &CircularArraySpec{Radius: 1, Count: 4},
	}}
	_, err = sc.BuildArray()
	assert.Error(t, err, "generators are mutually exclusive")
}

func TestSignalSpecComplexValue(t *testing.T) {
	v := SignalSpec{Amplitude: 2, PhaseDeg: -90}.complexValue()
	assert.InDelta(t, 0.0, real(v), 1e-12)
	assert.InDelta(t, -2.0, imag(v), 1e-12)

	v = SignalSpec{Amplitude: 1, PhaseDeg: 45}.complexValue()
	assert.InDelta(t, math.Sqrt2/2, real(v), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, imag(v), 1e-12)
}
