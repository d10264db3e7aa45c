package app

import "flag"

// Config represents the command-line parameters for the application.
type Config struct {
	ElementsPath string
	SettingsPath string
	Scale        int
	Seed         int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ElementsPath: "testdata/elements.data",
		SettingsPath: "testdata/settings.data",
		Scale:        3,
		Seed:         42,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ElementsPath, "elements", c.ElementsPath, "path to the element definition file")
	fs.StringVar(&c.SettingsPath, "settings", c.SettingsPath, "path to the engine settings file")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the engine RNG")
}
