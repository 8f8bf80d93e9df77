package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Formatter serializes a field document.
type Formatter interface {
	Format(doc *Document, pretty bool) ([]byte, error)
}

// NewFormatter returns the formatter for a format tag (json, yaml, csv).
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "", "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

// JSONFormatter serializes the full document as JSON.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(doc *Document, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// YAMLFormatter serializes the full document as YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(doc *Document, _ bool) ([]byte, error) {
	return yaml.Marshal(doc)
}

// CSVFormatter writes one row per evaluation point and drops the run
// metadata, which does not fit the tabular shape.
type CSVFormatter struct{}

// Format implements Formatter.
func (f *CSVFormatter) Format(doc *Document, _ bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"x", "y", "z", "re", "im", "magnitude"}); err != nil {
		return nil, err
	}
	row := make([]string, 6)
	for _, p := range doc.Points {
		for i, v := range []float64{p.X, p.Y, p.Z, p.Re, p.Im, p.Magnitude} {
			row[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
