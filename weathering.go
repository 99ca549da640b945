/*package weathering simulates the fragmentation of a parent material into
successively smaller soil particles.

A run starts from a single particle of parent material and applies a
model.Model once per time step. After each step the population is
summarized and the summary is stored as one Record of the output Table.
*/
package weathering

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/phil-mansfield/weathering/model"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/stats"
)

var (
	// ErrInvalidSteps is returned when a run is asked for a non-positive
	// number of steps.
	ErrInvalidSteps = errors.New("step count must be positive")
	// ErrPopulationLimit is returned when the next step would grow the
	// population past the configured maximum.
	ErrPopulationLimit = errors.New("population limit exceeded")
)

// DefaultMaxCount is the largest population a run will build unless told
// otherwise. A binary-split run reaches it after 26 steps.
const DefaultMaxCount = 1 << 26

type runner struct {
	log      *slog.Logger
	observe  func(Record)
	maxCount int
	now      func() time.Time
}

// Option configures a call to Run.
type Option func(*runner)

// Log sets the logger which per-step progress is written to at debug level.
func Log(l *slog.Logger) Option {
	return func(r *runner) { r.log = l }
}

// Observer registers a function which is called with each Record as soon as
// its step completes.
func Observer(f func(Record)) Option {
	return func(r *runner) { r.observe = f }
}

// MaxCount sets the largest population the run is allowed to build. Values
// <= 0 remove the limit.
func MaxCount(n int) Option {
	return func(r *runner) { r.maxCount = n }
}

// Run simulates steps time steps of m starting from a single parent
// particle and returns one Record per step, in step order. The first error
// aborts the run and no partial Table is returned.
func Run(
	m model.Model, parent particle.Particle, steps int, opts ...Option,
) (Table, error) {
	r := &runner{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxCount: DefaultMaxCount,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	if steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}

	pop, err := particle.Parent(
		parent.Side1(), parent.Side2(), parent.Side3(), parent.Density(),
	)
	if err != nil {
		return nil, err
	}

	start := r.now()
	out := make(Table, steps)

	for i := range out {
		step := i + 1

		if r.maxCount > 0 {
			next := len(pop) + m.Policy().NewCount(len(pop))
			if next > r.maxCount {
				return nil, fmt.Errorf(
					"step %d: %w: %d particles requested, limit is %d",
					step, ErrPopulationLimit, next, r.maxCount,
				)
			}
		}

		t0 := r.now()
		next, err := m.Step(pop)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		t1 := r.now()
		sum := stats.Summarize(next)
		t2 := r.now()

		out[i] = newRecord(step, sum, t1.Sub(t0), t2.Sub(t1))
		pop = next

		r.log.Debug("completed step",
			"step", step, "particles", sum.Count,
			"surface_area", sum.SurfaceArea,
			"creation", out[i].CreationTime,
			"calculation", out[i].CalculationTime,
		)
		if r.observe != nil {
			r.observe(out[i])
		}
	}

	r.log.Info("simulation finished",
		"model", m.Name(), "steps", steps,
		"particles", len(pop), "elapsed", r.now().Sub(start),
	)
	return out, nil
}
