// Package output turns synthesis results into serialized documents for
// files or stdout.
package output

import (
	"math/cmplx"
	"time"

	"github.com/sfstoolbox/sfs-go/pkg/synthesis"
)

// Document is the serializable form of one synthesized field: the run
// metadata, the evaluation coordinates and the complex pressure per point.
type Document struct {
	Model        string    `json:"model" yaml:"model"`
	FrequencyHz  float64   `json:"frequency_hz" yaml:"frequency_hz"`
	SpeedOfSound float64   `json:"speed_of_sound" yaml:"speed_of_sound"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`

	Shape      []int    `json:"shape" yaml:"shape"`
	ActiveDims []string `json:"active_dims" yaml:"active_dims"`
	Custom     bool     `json:"custom_grid" yaml:"custom_grid"`

	Points []PointSample `json:"points" yaml:"points"`
}

// PointSample is one evaluation point of the field.
type PointSample struct {
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Z         float64 `json:"z" yaml:"z"`
	Re        float64 `json:"re" yaml:"re"`
	Im        float64 `json:"im" yaml:"im"`
	Magnitude float64 `json:"magnitude" yaml:"magnitude"`
}

var dimNames = [3]string{"x", "y", "z"}

// NewDocument flattens a synthesis result into a Document.
func NewDocument(res *synthesis.Result, model string, frequency, speedOfSound float64) *Document {
	g := res.Grid
	dims, shape := g.Active()

	doc := &Document{
		Model:        model,
		FrequencyHz:  frequency,
		SpeedOfSound: speedOfSound,
		Timestamp:    time.Now().UTC(),
		Shape:        shape,
		Custom:       g.Custom,
		Points:       make([]PointSample, g.Len()),
	}
	for _, d := range dims {
		doc.ActiveDims = append(doc.ActiveDims, dimNames[d])
	}
	for i := range doc.Points {
		p := res.Pressure[i]
		doc.Points[i] = PointSample{
			X:         g.XX[i],
			Y:         g.YY[i],
			Z:         g.ZZ[i],
			Re:        real(p),
			Im:        imag(p),
			Magnitude: cmplx.Abs(p),
		}
	}
	return doc
}
