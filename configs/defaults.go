package configs

import (
	"github.com/spf13/viper"

	"github.com/sfstoolbox/sfs-go/pkg/greens"
)

// setDefaults registers default configuration values for all components.
// Defaults have the lowest precedence: config file, environment and flag
// values all override them.
func setDefaults(v *viper.Viper) {
	// Synthesis defaults
	v.SetDefault("synthesis.resolution", 300)
	v.SetDefault("synthesis.speed_of_sound", greens.DefaultSpeedOfSound)
	v.SetDefault("synthesis.time_convention", "negative")
	v.SetDefault("synthesis.show_progress", false)
	v.SetDefault("synthesis.workers", 1)

	// Output defaults
	v.SetDefault("output.pretty", true)

	// Plot defaults
	v.SetDefault("plot.enabled", false)
	v.SetDefault("plot.mode", "real")
	v.SetDefault("plot.width_inches", 6)
	v.SetDefault("plot.height_inches", 6)
}

// SetDefaults applies the default values to the global viper instance
func SetDefaults() {
	setDefaults(viper.GetViper())
}
