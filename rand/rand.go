/*package rand provides the random sources that drive particle splitting.

Sources are always passed explicitly to the code that consumes them, so a
run can be reproduced exactly from its seed.
*/
package rand

import (
	mrand "math/rand/v2"
	"time"
)

// Source is the only form of randomness the simulation consumes.
type Source interface {
	// IntN returns a uniformly distributed integer in [0, n). It panics
	// if n <= 0.
	IntN(n int) int
}

// Generator is a seeded PCG generator which remembers its seed.
type Generator struct {
	rng  *mrand.Rand
	seed uint64
}

var (
	_ Source = &Generator{}
	_ Source = &Fixed{}
)

// The second PCG stream word is derived from the seed so that a single
// integer is enough to reproduce a run.
const streamMix = 0x9e3779b97f4a7c15

// New returns a Generator seeded with seed.
func New(seed uint64) *Generator {
	return &Generator{
		rng:  mrand.New(mrand.NewPCG(seed, seed^streamMix)),
		seed: seed,
	}
}

// NewTimeSeed returns a Generator seeded from the current time.
func NewTimeSeed() *Generator {
	return New(uint64(time.Now().UnixNano()))
}

// Seed returns the seed the generator was created with.
func (gen *Generator) Seed() uint64 { return gen.seed }

func (gen *Generator) IntN(n int) int { return gen.rng.IntN(n) }

// Fixed is a Source that replays a fixed sequence of draws, reduced modulo
// n. It is intended for tests which need to control every draw.
type Fixed struct {
	vals []int
	i    int
}

// NewFixed returns a Fixed source which cycles through vals.
func NewFixed(vals ...int) *Fixed {
	if len(vals) == 0 {
		panic("rand: NewFixed needs at least one value.")
	}
	return &Fixed{vals: vals}
}

func (f *Fixed) IntN(n int) int {
	if n <= 0 {
		panic("rand: IntN called with n <= 0.")
	}
	v := f.vals[f.i%len(f.vals)]
	f.i++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Draws returns the number of values drawn so far.
func (f *Fixed) Draws() int { return f.i }
