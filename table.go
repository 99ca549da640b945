package weathering

import (
	"fmt"
	"time"

	"github.com/phil-mansfield/weathering/stats"
)

// Record summarizes the population at the end of one time step.
type Record struct {
	// Step is the 1-based index of the time step.
	Step  int
	Count int
	// SurfaceArea is the specific surface area of the population.
	SurfaceArea float64
	TotalVolume float64
	MeanVolume  float64
	StdVolume   float64
	MeanMass    float64

	// CreationTime is the time spent building the new population and
	// CalculationTime the time spent summarizing it.
	CreationTime, CalculationTime time.Duration
}

func newRecord(
	step int, sum stats.Summary, creation, calculation time.Duration,
) Record {
	return Record{
		Step:            step,
		Count:           sum.Count,
		SurfaceArea:     sum.SurfaceArea,
		TotalVolume:     sum.TotalVolume,
		MeanVolume:      sum.MeanVolume,
		StdVolume:       sum.StdVolume,
		MeanMass:        sum.MeanMass,
		CreationTime:    creation,
		CalculationTime: calculation,
	}
}

// Table is the ordered output of a run: element i holds step i+1.
type Table []Record

// Column names, in the order they are written to text tables.
const (
	ColStep        = "step"
	ColCount       = "count"
	ColSurfaceArea = "surface_area"
	ColMeanVolume  = "mean_volume"
	ColStdVolume   = "std_volume"
	ColMeanMass    = "mean_mass"
	ColTotalVolume = "total_volume"
	ColCreation    = "creation_seconds"
	ColCalculation = "calculation_seconds"
)

// Columns lists every column name in table order.
var Columns = []string{
	ColStep, ColCount, ColSurfaceArea, ColMeanVolume, ColStdVolume,
	ColMeanMass, ColTotalVolume, ColCreation, ColCalculation,
}

// Values returns the record's fields in the order given by Columns.
func (r *Record) Values() []float64 {
	return []float64{
		float64(r.Step), float64(r.Count), r.SurfaceArea, r.MeanVolume,
		r.StdVolume, r.MeanMass, r.TotalVolume,
		r.CreationTime.Seconds(), r.CalculationTime.Seconds(),
	}
}

// RecordFromValues is the inverse of Record.Values.
func RecordFromValues(vals []float64) (Record, error) {
	if len(vals) != len(Columns) {
		return Record{}, fmt.Errorf(
			"expected %d values, got %d", len(Columns), len(vals),
		)
	}
	return Record{
		Step:            int(vals[0]),
		Count:           int(vals[1]),
		SurfaceArea:     vals[2],
		MeanVolume:      vals[3],
		StdVolume:       vals[4],
		MeanMass:        vals[5],
		TotalVolume:     vals[6],
		CreationTime:    seconds(vals[7]),
		CalculationTime: seconds(vals[8]),
	}, nil
}

func seconds(x float64) time.Duration {
	return time.Duration(x * float64(time.Second))
}

// Column returns the named column as a slice, one value per step.
func (t Table) Column(name string) ([]float64, error) {
	idx := -1
	for i, col := range Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("table has no column '%s'", name)
	}

	out := make([]float64, len(t))
	for i := range t {
		out[i] = t[i].Values()[idx]
	}
	return out, nil
}

func (t Table) column(name string) []float64 {
	col, err := t.Column(name)
	if err != nil {
		panic(err.Error())
	}
	return col
}

func (t Table) Steps() []float64        { return t.column(ColStep) }
func (t Table) Counts() []float64       { return t.column(ColCount) }
func (t Table) SurfaceAreas() []float64 { return t.column(ColSurfaceArea) }
func (t Table) MeanVolumes() []float64  { return t.column(ColMeanVolume) }
func (t Table) MeanMasses() []float64   { return t.column(ColMeanMass) }

// Final returns the record of the last step. It panics on an empty Table.
func (t Table) Final() Record { return t[len(t)-1] }
