package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/weathering"
	"github.com/phil-mansfield/weathering/particle"
)

// TableHeader describes the run which produced a record table. It is
// written as '#' comment lines, which table readers skip.
type TableHeader struct {
	Model                        string
	Side1, Side2, Side3, Density float64
	// Seed is negative if the seed is unknown.
	Seed int64
}

// NewTableHeader builds the header for a run of the named model.
func NewTableHeader(
	modelName string, parent particle.Particle, seed int64,
) TableHeader {
	return TableHeader{
		Model: modelName,
		Side1: parent.Side1(), Side2: parent.Side2(), Side3: parent.Side3(),
		Density: parent.Density(),
		Seed:    seed,
	}
}

// WriteTable writes t as whitespace-separated text: a block of '#' header
// lines followed by one row per step, with columns in the order of
// weathering.Columns.
func WriteTable(w io.Writer, hd *TableHeader, t weathering.Table) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# weathering record table")
	fmt.Fprintf(bw, "# Model: %s\n", hd.Model)
	fmt.Fprintf(bw, "# Side1: %.17g\n", hd.Side1)
	fmt.Fprintf(bw, "# Side2: %.17g\n", hd.Side2)
	fmt.Fprintf(bw, "# Side3: %.17g\n", hd.Side3)
	fmt.Fprintf(bw, "# Density: %.17g\n", hd.Density)
	fmt.Fprintf(bw, "# Seed: %d\n", hd.Seed)
	for i, col := range weathering.Columns {
		fmt.Fprintf(bw, "# Column %d: %s\n", i, col)
	}

	for i := range t {
		vals := t[i].Values()
		strs := make([]string, len(vals))
		for j, x := range vals {
			if j < 2 {
				strs[j] = strconv.Itoa(int(x))
			} else {
				strs[j] = strconv.FormatFloat(x, 'g', 17, 64)
			}
		}
		fmt.Fprintln(bw, strings.Join(strs, " "))
	}

	return bw.Flush()
}

// WriteTableFile writes t to the file fname, creating or truncating it.
func WriteTableFile(fname string, hd *TableHeader, t weathering.Table) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := WriteTable(f, hd, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadTable reads a record table written by WriteTable.
func ReadTable(fname string) (weathering.Table, error) {
	colIdxs := make([]int, len(weathering.Columns))
	for i := range colIdxs {
		colIdxs[i] = i
	}

	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	n := len(cols[0])
	t := make(weathering.Table, n)
	vals := make([]float64, len(cols))
	for i := 0; i < n; i++ {
		for j := range cols {
			vals[j] = cols[j][i]
		}
		t[i], err = weathering.RecordFromValues(vals)
		if err != nil {
			return nil, fmt.Errorf("%s, row %d: %w", fname, i, err)
		}
	}

	return t, nil
}

// ReadTableHeader reads the '#' header block of a record table. Unknown
// keys are ignored and missing keys are left at their zero value, except
// Seed, which defaults to -1.
func ReadTableHeader(fname string) (*TableHeader, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hd := &TableHeader{Seed: -1}
	floats := map[string]*float64{
		"Side1": &hd.Side1, "Side2": &hd.Side2, "Side3": &hd.Side3,
		"Density": &hd.Density,
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		} else if !strings.HasPrefix(line, "#") {
			break
		}

		key, val, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
		if !ok {
			continue
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)

		switch key {
		case "Model":
			hd.Model = val
		case "Seed":
			if hd.Seed, err = strconv.ParseInt(val, 10, 64); err != nil {
				return nil, fmt.Errorf("%s: bad Seed '%s'", fname, val)
			}
		default:
			ptr, ok := floats[key]
			if !ok {
				continue
			}
			if *ptr, err = strconv.ParseFloat(val, 64); err != nil {
				return nil, fmt.Errorf("%s: bad %s '%s'", fname, key, val)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return hd, nil
}
