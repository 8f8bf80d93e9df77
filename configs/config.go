package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sfstoolbox/sfs-go/pkg/greens"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Synthesis configuration
	Synthesis SynthesisConfig `mapstructure:"synthesis"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`

	// Plot configuration
	Plot PlotConfig `mapstructure:"plot"`
}

// SynthesisConfig contains the numeric settings of the field computation
type SynthesisConfig struct {
	// Resolution is the number of grid points per spanned axis
	Resolution int `mapstructure:"resolution"`
	// SpeedOfSound is the propagation speed in m/s used in k = 2*pi*f/c
	SpeedOfSound float64 `mapstructure:"speed_of_sound"`
	// TimeConvention is the sign of the temporal exponential
	// ("negative" for exp(-i*omega*t), "positive" for exp(+i*omega*t))
	TimeConvention string `mapstructure:"time_convention"`
	// ShowProgress enables per-source progress notifications
	ShowProgress bool `mapstructure:"show_progress"`
	// Workers is the number of goroutines used for the source loop;
	// values below 2 run sequentially
	Workers int `mapstructure:"workers"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// PlotConfig contains sound field rendering settings
type PlotConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	File         string  `mapstructure:"file"`
	Mode         string  `mapstructure:"mode"`
	WidthInches  float64 `mapstructure:"width_inches"`
	HeightInches float64 `mapstructure:"height_inches"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Synthesis.Resolution < 2 {
		return fmt.Errorf("synthesis resolution must be at least 2 grid points per axis")
	}

	if config.Synthesis.SpeedOfSound <= 0 {
		return fmt.Errorf("speed of sound must be positive")
	}

	if _, err := greens.ParseConvention(config.Synthesis.TimeConvention); err != nil {
		return fmt.Errorf("time convention must be \"negative\" or \"positive\"")
	}

	if config.Synthesis.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}

	switch config.OutputFormat {
	case "", "json", "yaml", "csv":
	default:
		return fmt.Errorf("unsupported output format %q", config.OutputFormat)
	}

	switch config.Plot.Mode {
	case "", "real", "magnitude", "level":
	default:
		return fmt.Errorf("unsupported plot mode %q", config.Plot.Mode)
	}

	if config.Plot.WidthInches < 0 || config.Plot.HeightInches < 0 {
		return fmt.Errorf("plot dimensions cannot be negative")
	}

	return nil
}
