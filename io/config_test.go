package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/model"
)

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestReadExampleRunFile(t *testing.T) {
	for _, test := range []struct{ name, text string }{
		{"run.cfg", ExampleRunFile},
		{"run.yaml", ExampleRunYAMLFile},
	} {
		con, err := ReadRunConfig(writeFile(t, test.name, test.text))
		require.NoError(t, err, test.name)

		assert.Equal(t, 1e4, con.Side1, test.name)
		assert.Equal(t, 100.0, con.Side2, test.name)
		assert.Equal(t, 100.0, con.Side3, test.name)
		assert.Equal(t, 2.1, con.Density, test.name)
		assert.Equal(t, 18, con.Steps, test.name)

		// Defaults.
		assert.Equal(t, model.BinarySplitName, con.Model, test.name)
		assert.Equal(t, int64(-1), con.Seed, test.name)
		assert.Equal(t, weathering.DefaultMaxCount, con.MaxCount, test.name)
		assert.Equal(t, "info", con.LogLevel, test.name)
		assert.False(t, con.ValidOutput(), test.name)
		assert.False(t, con.ValidArchive(), test.name)
		assert.False(t, con.ValidPlot(), test.name)
		assert.False(t, con.ValidLogFile(), test.name)
		assert.False(t, con.ValidProfileFile(), test.name)
	}
}

func TestReadRunConfigOptional(t *testing.T) {
	text := `[Weathering]
Side1 = 2
Side2 = 3
Side3 = 4
Density = 2.65
Steps = 40
Model = LinearGrowth
Seed = 12
MaxCount = 0
Output = out.txt
Archive = runs.db
Plot = fig.png
LogLevel = debug
LogFile = log.out
`
	con, err := ReadRunConfig(writeFile(t, "run.cfg", text))
	require.NoError(t, err)

	assert.Equal(t, model.LinearGrowthName, con.Model)
	assert.Equal(t, int64(12), con.Seed)
	assert.Equal(t, 0, con.MaxCount)
	assert.Equal(t, "out.txt", con.Output)
	assert.Equal(t, "runs.db", con.Archive)
	assert.Equal(t, "fig.png", con.Plot)
	assert.Equal(t, "debug", con.LogLevel)
	assert.Equal(t, "log.out", con.LogFile)

	p, err := con.Parent()
	require.NoError(t, err)
	assert.InEpsilon(t, 24.0, p.Volume(), 1e-12)

	g1, g2 := con.Source(), con.Source()
	assert.Equal(t, uint64(12), g1.Seed())
	assert.Equal(t, g1.IntN(1000), g2.IntN(1000))
}

func TestReadRunConfigInvalid(t *testing.T) {
	base := "Side1 = 1\nSide2 = 1\nSide3 = 1\nDensity = 1\n"
	table := []struct {
		text, errPart string
	}{
		{"[Weathering]\nSide1 = 1\nSide2 = 1\nSide3 = 1\nSteps = 3\n", "Density"},
		{"[Weathering]\nSide1 = -1\nSide2 = 1\nSide3 = 1\nDensity = 1\nSteps = 3\n", "Side1"},
		{"[Weathering]\n" + base, "Steps"},
		{"[Weathering]\n" + base + "Steps = 2\nModel = Cubic\n", "Model"},
		{"[Weathering]\n" + base + "Steps = 2\nMaxCount = -5\n", "MaxCount"},
		{"[Weathering]\n" + base + "Steps = 2\nLogLevel = loud\n", "LogLevel"},
		{"[Weathering]\n" + base + "Steps = 2\nRadius = 3\n", ""},
	}

	for i, test := range table {
		_, err := ReadRunConfig(writeFile(t, "run.cfg", test.text))
		if assert.Error(t, err, "%d)", i) {
			assert.Contains(t, err.Error(), test.errPart, "%d)", i)
		}
	}

	_, err := ReadRunConfig(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
	_, err = ReadRunConfig(writeFile(t, "bad.yml", "weathering: [1, 2"))
	assert.Error(t, err)
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("a/b/run.yaml"))
	assert.True(t, IsYAML("RUN.YML"))
	assert.False(t, IsYAML("run.cfg"))
	assert.False(t, IsYAML("yaml"))
}

func TestLoadRunConfigUnchecked(t *testing.T) {
	text := `[Weathering]
Side1 = 2
Model = LinearGrowth
`
	fname := writeFile(t, "partial.cfg", text)

	con, err := LoadRunConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 2.0, con.Side1)
	assert.Equal(t, 0, con.Steps)
	assert.Equal(t, int64(-1), con.Seed)
	assert.Error(t, con.CheckInit())

	_, err = ReadRunConfig(fname)
	assert.Error(t, err)
}
