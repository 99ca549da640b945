package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/model"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/rand"
)

func runTable(t *testing.T, steps int) (weathering.Table, *TableHeader) {
	t.Helper()
	pm := particle.MustNew(1e4, 100, 100, 2.1)
	m := model.NewLinearGrowth(rand.New(21))
	tab, err := weathering.Run(m, pm, steps)
	require.NoError(t, err)
	hd := NewTableHeader(m.Name(), pm, 21)
	return tab, &hd
}

func TestWriteTableFormat(t *testing.T) {
	tab, hd := runTable(t, 3)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteTable(buf, hd, tab))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	header, rows := 0, []string{}
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			header++
		} else {
			rows = append(rows, line)
		}
	}
	assert.Equal(t, 7+len(weathering.Columns), header)
	require.Len(t, rows, 3)
	assert.True(t, strings.HasPrefix(rows[0], "1 2 "), rows[0])
	assert.Len(t, strings.Fields(rows[2]), len(weathering.Columns))
	assert.Contains(t, buf.String(), "# Model: LinearGrowth")
}

func TestTableFileRoundTrip(t *testing.T) {
	tab, hd := runTable(t, 25)
	fname := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, WriteTableFile(fname, hd, tab))

	got, err := ReadTable(fname)
	require.NoError(t, err)
	require.Len(t, got, len(tab))
	for i := range tab {
		want := tab[i]
		assert.Equal(t, want.Step, got[i].Step)
		assert.Equal(t, want.Count, got[i].Count)
		assert.Equal(t, want.SurfaceArea, got[i].SurfaceArea)
		assert.Equal(t, want.MeanVolume, got[i].MeanVolume)
		assert.Equal(t, want.StdVolume, got[i].StdVolume)
		assert.Equal(t, want.MeanMass, got[i].MeanMass)
		assert.Equal(t, want.TotalVolume, got[i].TotalVolume)
		assert.InDelta(t, want.CreationTime.Seconds(),
			got[i].CreationTime.Seconds(), 1e-8)
	}

	gotHd, err := ReadTableHeader(fname)
	require.NoError(t, err)
	assert.Equal(t, hd, gotHd)
}

func TestReadTableHeaderDefaults(t *testing.T) {
	fname := writeFile(t, "t.txt", "# Model: BinarySplit\n1 2 3 4 5 6 7 8 9\n")
	hd, err := ReadTableHeader(fname)
	require.NoError(t, err)
	assert.Equal(t, "BinarySplit", hd.Model)
	assert.Equal(t, int64(-1), hd.Seed)

	fname = writeFile(t, "bad.txt", "# Seed: twelve\n")
	_, err = ReadTableHeader(fname)
	assert.Error(t, err)
}

func TestReadTableMissing(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}
