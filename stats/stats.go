/*package stats computes the summary statistics of a particle population
which are recorded at every time step.
*/
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/weathering/particle"
)

// Summary holds the aggregate properties of a population.
type Summary struct {
	Count int
	// SurfaceArea is the specific surface area: the summed surface area of
	// every particle.
	SurfaceArea float64
	TotalVolume float64
	MeanVolume  float64
	// StdVolume is the population standard deviation of particle volumes.
	// It is generally non-zero once particles have been split along
	// different axes.
	StdVolume float64
	MeanMass  float64
}

// Summarize computes the Summary of pop. It does not modify pop and has no
// hidden state, so calling it twice on the same population gives identical
// results. The Summary of an empty population is the zero value.
func Summarize(pop []particle.Particle) Summary {
	if len(pop) == 0 {
		return Summary{}
	}

	vols := make([]float64, len(pop))
	masses := make([]float64, len(pop))
	areas := make([]float64, len(pop))
	for i := range pop {
		vols[i] = pop[i].Volume()
		masses[i] = pop[i].Mass()
		areas[i] = pop[i].SurfaceArea()
	}

	s := Summary{Count: len(pop)}
	s.SurfaceArea = floats.Sum(areas)
	s.TotalVolume = floats.Sum(vols)
	s.MeanVolume, s.StdVolume = stat.PopMeanStdDev(vols, nil)
	s.MeanMass = stat.Mean(masses, nil)
	return s
}
