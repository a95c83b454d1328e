// 18 Oct 2026

// Package config reads defaults for bpp-tools from a YAML file. Anything
// given on the command line wins over the file.
//
// An example file:
//
//	out: result.phy
//	alphabet: nt
//	log_level: warn
//	jobs: 4
//	trim_ambiguous: true
package config

import (
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"

	"github.com/xflouris/bpp-tools/pkg/chrmap"
)

// EnvVar names a config file if -config is not given.
const EnvVar = "BPP_TOOLS_CONFIG"

// Config has the settings that can come from a file.
type Config struct {
	Out           string `yaml:"out"`
	Quiet         bool   `yaml:"quiet"`
	LogLevel      string `yaml:"log_level"`
	Alphabet      string `yaml:"alphabet"` // fasta, nt or aa
	Interleaved   bool   `yaml:"interleaved"`
	Jobs          int    `yaml:"jobs"` // files written at once by explode
	Pretty        bool   `yaml:"pretty"`
	TrimAmbiguous bool   `yaml:"trim_ambiguous"`
	PruneMissing  bool   `yaml:"prune_missing"`
}

// Default is what you get with no file.
func Default() Config {
	return Config{
		LogLevel: "info",
		Alphabet: "fasta",
		Jobs:     runtime.NumCPU(),
	}
}

// Parse reads YAML on top of the defaults. Unknown keys are errors.
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalWithOptions(b, &c, yaml.DisallowUnknownField()); err != nil {
		return c, errors.Wrap(err, "config")
	}
	return c, c.Check()
}

// Load reads fname. If fname is empty, the file named by $BPP_TOOLS_CONFIG
// is used, and if that is not set, the defaults.
func Load(fname string) (Config, error) {
	if fname == "" {
		fname = os.Getenv(EnvVar)
	}
	if fname == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(fname)
	if err != nil {
		return Default(), errors.Wrap(err, "config")
	}
	c, err := Parse(b)
	return c, errors.Wrap(err, fname)
}

// Check makes sure the values make sense.
func (c Config) Check() error {
	if _, err := chrmap.ByName(c.Alphabet); err != nil {
		return errors.Wrap(err, "config")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return errors.Errorf("config: jobs must not be negative, got %d", c.Jobs)
	}
	return nil
}

// Level turns LogLevel into a logger level. Quiet means errors only.
func (c Config) Level() (log.Level, error) {
	if c.Quiet {
		return log.ErrorLevel, nil
	}
	l, err := log.ParseLevel(c.LogLevel)
	return l, errors.Wrap(err, "config: log_level")
}
