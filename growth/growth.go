/*package growth contains population growth policies: rules which decide how
many particles are divided during a time step, given the current population
size.
*/
package growth

import (
	"fmt"
	"sort"
)

// Policy returns the number of particles which will be divided when the
// population contains size particles.
type Policy interface {
	NewCount(size int) int
}

// Breakpoint is one row of a step-function policy: every population size up
// to and including Max divides Count particles.
type Breakpoint struct {
	Max, Count int
}

// StepFunction is a monotone step function given as an explicit table of
// breakpoints, sorted by Max. Sizes above the last breakpoint divide Above
// particles.
type StepFunction struct {
	Breakpoints []Breakpoint
	Above       int
}

// Doubling divides every particle in the population, so each step doubles
// its size.
type Doubling struct{}

var (
	_ Policy = &StepFunction{}
	_ Policy = Doubling{}
)

// LinearBreakpoints is the breakpoint table of the linear-growth model.
var LinearBreakpoints = []Breakpoint{
	{10, 1},
	{20, 10},
	{50, 20},
	{100, 50},
	{200, 100},
	{300, 200},
	{1000, 300},
}

// LinearAbove is the number of particles divided by the linear-growth model
// once the population has grown past 1000.
const LinearAbove = 1000

var linear = MustStepFunction(LinearBreakpoints, LinearAbove)

// Linear returns the number of particles the linear-growth model divides at
// the given population size.
func Linear(size int) int { return linear.NewCount(size) }

// LinearPolicy returns the linear-growth model's policy.
func LinearPolicy() *StepFunction { return linear }

// NewStepFunction checks that bps is sorted by strictly increasing Max and
// that counts are positive and non-decreasing.
func NewStepFunction(bps []Breakpoint, above int) (*StepFunction, error) {
	if len(bps) == 0 {
		return nil, fmt.Errorf("step function needs at least one breakpoint")
	}
	for i, bp := range bps {
		if bp.Count <= 0 {
			return nil, fmt.Errorf(
				"breakpoint %d has non-positive count %d", i, bp.Count,
			)
		}
		if i == 0 {
			continue
		}
		if bp.Max <= bps[i-1].Max {
			return nil, fmt.Errorf(
				"breakpoint %d has Max %d, but the previous Max is %d",
				i, bp.Max, bps[i-1].Max,
			)
		} else if bp.Count < bps[i-1].Count {
			return nil, fmt.Errorf(
				"breakpoint %d has Count %d, which is less than the "+
					"previous Count %d", i, bp.Count, bps[i-1].Count,
			)
		}
	}
	if above < bps[len(bps)-1].Count {
		return nil, fmt.Errorf(
			"count above the last breakpoint, %d, is less than %d",
			above, bps[len(bps)-1].Count,
		)
	}

	out := make([]Breakpoint, len(bps))
	copy(out, bps)
	return &StepFunction{out, above}, nil
}

// MustStepFunction is like NewStepFunction, but panics on an invalid table.
func MustStepFunction(bps []Breakpoint, above int) *StepFunction {
	sf, err := NewStepFunction(bps, above)
	if err != nil {
		panic(err.Error())
	}
	return sf
}

func (sf *StepFunction) NewCount(size int) int {
	i := sort.Search(len(sf.Breakpoints), func(i int) bool {
		return size <= sf.Breakpoints[i].Max
	})
	if i == len(sf.Breakpoints) {
		return sf.Above
	}
	return sf.Breakpoints[i].Count
}

func (Doubling) NewCount(size int) int { return size }
