package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/logging"
	"github.com/phil-mansfield/weathering/model"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/rand"
)

const (
	ExampleRunFile = `[Weathering]

#######################
# Required Parameters #
#######################

# Side lengths of the parent material. Units are up to you, but all three
# sides must use the same unit, and density must be given in a compatible
# unit (e.g. cm and g/cm^3).
Side1 = 1e4
Side2 = 100
Side3 = 100
Density = 2.1

# Number of time steps to simulate.
Steps = 18

#######################
# Optional Parameters #
#######################

# Model must be one of [ BinarySplit | LinearGrowth ]. BinarySplit divides
# every particle at every step and so doubles the population each step.
# LinearGrowth divides a batch of particles whose size depends on the
# current population. Default is BinarySplit.
# Model = LinearGrowth

# Seed for the random number generator. Runs with the same seed, model, and
# parent material produce identical tables. Negative values (the default)
# seed from the clock.
# Seed = 1234

# The run stops with an error instead of building a population larger than
# this. 0 removes the limit. Default is 67108864 (2^26).
# MaxCount = 1048576

# Text file the record table is written to. If not set, the table is
# written to stdout.
# Output = path/to/table.txt

# SQLite database that the run and its table are appended to.
# Archive = path/to/runs.db

# Figure of the run, rendered as a single PNG. If the file ends in .py, the
# figures are drawn with matplotlib instead, one PNG per column next to the
# named file (requires python).
# Plot = path/to/figure.png

# Output files which are useful for profiling and debugging. LogLevel must be
# one of [ debug | info | warn | error ].
# LogLevel = info
# LogFile = log.out
# ProfileFile = prof.out`

	ExampleRunYAMLFile = `weathering:
  side1: 1e4
  side2: 100
  side3: 100
  density: 2.1
  steps: 18
  # model: LinearGrowth
  # seed: 1234
  # maxcount: 1048576
  # output: path/to/table.txt
  # archive: path/to/runs.db
  # plot: path/to/figure.png
  # loglevel: info
  # logfile: log.out
  # profilefile: prof.out`
)

type SharedConfig struct {
	// Optional
	LogFile     string `yaml:"logfile"`
	LogLevel    string `yaml:"loglevel"`
	ProfileFile string `yaml:"profilefile"`
}

func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *SharedConfig) ValidLogLevel() bool {
	return logging.ValidLevel(con.LogLevel)
}

type RunConfig struct {
	SharedConfig `yaml:",inline"`

	// Required
	Side1   float64 `yaml:"side1"`
	Side2   float64 `yaml:"side2"`
	Side3   float64 `yaml:"side3"`
	Density float64 `yaml:"density"`
	Steps   int     `yaml:"steps"`

	// Optional
	Model    string `yaml:"model"`
	Seed     int64  `yaml:"seed"`
	MaxCount int    `yaml:"maxcount"`
	Output   string `yaml:"output"`
	Archive  string `yaml:"archive"`
	Plot     string `yaml:"plot"`
}

type RunWrapper struct {
	Weathering RunConfig `yaml:"weathering"`
}

func DefaultRunWrapper() *RunWrapper {
	con := RunConfig{}
	con.Model = model.BinarySplitName
	con.Seed = -1
	con.MaxCount = weathering.DefaultMaxCount
	con.LogLevel = "info"
	return &RunWrapper{con}
}

func (con *RunConfig) ValidSide1() bool   { return con.Side1 > 0 }
func (con *RunConfig) ValidSide2() bool   { return con.Side2 > 0 }
func (con *RunConfig) ValidSide3() bool   { return con.Side3 > 0 }
func (con *RunConfig) ValidDensity() bool { return con.Density > 0 }
func (con *RunConfig) ValidSteps() bool   { return con.Steps > 0 }

func (con *RunConfig) ValidModel() bool {
	return model.ValidName(con.Model)
}
func (con *RunConfig) ValidMaxCount() bool {
	return con.MaxCount >= 0
}
func (con *RunConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *RunConfig) ValidArchive() bool {
	return con.Archive != ""
}
func (con *RunConfig) ValidPlot() bool {
	return con.Plot != ""
}
func (con *RunConfig) ValidSeed() bool {
	return con.Seed >= 0
}

// CheckInit returns a descriptive error for the first invalid required
// parameter, or nil if the configuration can be run.
func (con *RunConfig) CheckInit() error {
	if !con.ValidSide1() {
		return fmt.Errorf("Invalid/non-existent 'Side1' value, %g.", con.Side1)
	} else if !con.ValidSide2() {
		return fmt.Errorf("Invalid/non-existent 'Side2' value, %g.", con.Side2)
	} else if !con.ValidSide3() {
		return fmt.Errorf("Invalid/non-existent 'Side3' value, %g.", con.Side3)
	} else if !con.ValidDensity() {
		return fmt.Errorf(
			"Invalid/non-existent 'Density' value, %g.", con.Density,
		)
	} else if !con.ValidSteps() {
		return fmt.Errorf("Invalid/non-existent 'Steps' value, %d.", con.Steps)
	} else if !con.ValidModel() {
		return fmt.Errorf(
			"'Model' must be one of [%s], but is '%s'.",
			strings.Join(model.Names(), " | "), con.Model,
		)
	} else if !con.ValidMaxCount() {
		return fmt.Errorf("'MaxCount' must be non-negative, got %d.",
			con.MaxCount)
	} else if !con.ValidLogLevel() {
		return fmt.Errorf(
			"'LogLevel' must be one of [debug | info | warn | error], "+
				"but is '%s'.", con.LogLevel,
		)
	}
	return nil
}

// Parent returns the parent material described by the configuration.
func (con *RunConfig) Parent() (particle.Particle, error) {
	return particle.New(con.Side1, con.Side2, con.Side3, con.Density)
}

// Source returns the random generator for the run: seeded from Seed if it
// is non-negative and from the clock otherwise.
func (con *RunConfig) Source() *rand.Generator {
	if con.ValidSeed() {
		return rand.New(uint64(con.Seed))
	}
	return rand.NewTimeSeed()
}

// IsYAML returns true if fname should be parsed as YAML rather than as a
// gcfg file.
func IsYAML(fname string) bool {
	ext := strings.ToLower(filepath.Ext(fname))
	return ext == ".yaml" || ext == ".yml"
}

// LoadRunConfig reads a [Weathering] configuration file and fills in
// defaults for missing optional parameters without checking it. Files
// ending in .yaml or .yml are read as YAML with a top-level "weathering"
// key.
func LoadRunConfig(fname string) (*RunConfig, error) {
	wrap := DefaultRunWrapper()

	if IsYAML(fname) {
		data, err := os.ReadFile(fname)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, wrap); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", fname, err)
		}
	} else if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}

	return &wrap.Weathering, nil
}

// ReadRunConfig is LoadRunConfig followed by CheckInit.
func ReadRunConfig(fname string) (*RunConfig, error) {
	con, err := LoadRunConfig(fname)
	if err != nil {
		return nil, err
	}
	if err := con.CheckInit(); err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return con, nil
}
