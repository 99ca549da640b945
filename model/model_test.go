package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/weathering/growth"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/rand"
	"github.com/phil-mansfield/weathering/stats"
)

const eps = 1e-9

func parent(t *testing.T) []particle.Particle {
	t.Helper()
	pop, err := particle.Parent(1e4, 100, 100, 2.1)
	require.NoError(t, err)
	return pop
}

func TestByName(t *testing.T) {
	src := rand.New(1)
	table := []struct {
		name, want string
	}{
		{"BinarySplit", BinarySplitName},
		{"binarysplit", BinarySplitName},
		{" LinearGrowth ", LinearGrowthName},
		{"LINEARGROWTH", LinearGrowthName},
	}
	for i, test := range table {
		m, err := ByName(test.name, src)
		require.NoError(t, err, "%d)", i)
		assert.Equal(t, test.want, m.Name(), "%d)", i)
		assert.True(t, ValidName(test.name), "%d)", i)
	}

	_, err := ByName("Exponential", src)
	assert.Error(t, err)
	assert.False(t, ValidName("Exponential"))
	assert.Equal(t, []string{BinarySplitName, LinearGrowthName}, Names())
}

func TestBinarySplitDoubles(t *testing.T) {
	m := NewBinarySplit(rand.New(2))
	pop := parent(t)
	vol := pop[0].Volume()

	for step := 1; step <= 12; step++ {
		next, err := m.Step(pop)
		require.NoError(t, err)
		assert.Len(t, next, 1<<step, "step %d", step)
		assert.InEpsilon(t, vol, stats.Summarize(next).TotalVolume, eps,
			"step %d", step)
		pop = next
	}
	assert.IsType(t, growth.Doubling{}, m.Policy())
}

func TestBinarySplitIndependentAxes(t *testing.T) {
	// The parent is cut along Side1. Of the two halves, the first is cut
	// along Side1 again and the second along Side2.
	m := NewBinarySplit(rand.NewFixed(0, 0, 1))
	pop := parent(t)

	pop, err := m.Step(pop)
	require.NoError(t, err)
	require.Len(t, pop, 2)
	assert.Equal(t, 5e3, pop[0].Side1())

	pop, err = m.Step(pop)
	require.NoError(t, err)
	require.Len(t, pop, 4)
	assert.Equal(t, 2.5e3, pop[0].Side1())
	assert.Equal(t, 100.0, pop[0].Side2())
	assert.Equal(t, 5e3, pop[2].Side1())
	assert.Equal(t, 50.0, pop[2].Side2())

	// Equal volumes, but differing shapes and surface areas.
	assert.InEpsilon(t, pop[0].Volume(), pop[2].Volume(), eps)
	assert.NotEqual(t, pop[0].SurfaceArea(), pop[2].SurfaceArea())
}

func TestBinarySplitDoesNotModifyInput(t *testing.T) {
	m := NewBinarySplit(rand.New(3))
	pop := []particle.Particle{
		particle.MustNew(1, 2, 3, 1), particle.MustNew(4, 5, 6, 1),
	}
	before := append([]particle.Particle(nil), pop...)
	_, err := m.Step(pop)
	require.NoError(t, err)
	assert.Equal(t, before, pop)
}

func TestLinearGrowthFirstStep(t *testing.T) {
	m := NewLinearGrowth(rand.New(4))
	pop := parent(t)

	next, err := m.Step(pop)
	require.NoError(t, err)
	require.Len(t, next, 2, "retained 0 + divided 1 + divided 1")
	assert.Equal(t, next[0], next[1])
	assert.InEpsilon(t, pop[0].Volume()/2, next[0].Volume(), eps)
}

func TestLinearGrowthSizes(t *testing.T) {
	m := NewLinearGrowth(rand.New(5))
	pop := parent(t)

	for step := 1; step <= 60; step++ {
		want := len(pop) + growth.Linear(len(pop))
		next, err := m.Step(pop)
		require.NoError(t, err, "step %d", step)
		assert.Len(t, next, want, "step %d", step)
		pop = next
	}
}

func TestLinearGrowthStructure(t *testing.T) {
	// A population of distinguishable particles with a policy that
	// divides 3 of them.
	pop := make([]particle.Particle, 8)
	for i := range pop {
		pop[i] = particle.MustNew(1, 2, float64(i+1), 2)
	}
	policy := growth.MustStepFunction([]growth.Breakpoint{{100, 3}}, 3)

	// Sampling draws 8-i candidates per pick (here 0, 0, 0, picking
	// indices 0, 1, 2), then one draw for the shared axis (1: Side2).
	m := NewLinearGrowthWithPolicy(rand.NewFixed(0, 0, 0, 1), policy)
	next, err := m.Step(pop)
	require.NoError(t, err)
	require.Len(t, next, 11)

	// Retained particles come first and keep their order.
	assert.Equal(t, pop[3:], next[:5])

	// Then the divided batch, twice, all cut along Side2.
	for j := 0; j < 3; j++ {
		assert.Equal(t, next[5+j], next[8+j])
		assert.Equal(t, 1.0, next[5+j].Side2())
		assert.Equal(t, pop[j].Side3(), next[5+j].Side3())
	}

	// Total volume is conserved.
	assert.InEpsilon(t,
		stats.Summarize(pop).TotalVolume,
		stats.Summarize(next).TotalVolume, eps,
	)
}

func TestLinearGrowthSampleDistinct(t *testing.T) {
	m := NewLinearGrowth(rand.New(6))
	for _, size := range []int{1, 5, 10, 64, 300} {
		for k := 0; k <= size; k += 1 + size/7 {
			picks := m.sample(size, k)
			seen := map[int]bool{}
			for _, i := range picks {
				assert.False(t, seen[i], "index %d drawn twice", i)
				assert.True(t, m.selected[i])
				seen[i] = true
			}
			nSel := 0
			for _, s := range m.selected[:size] {
				if s {
					nSel++
				}
			}
			assert.Equal(t, k, nSel, "size %d, k %d", size, k)
		}
	}
}

type constPolicy int

func (c constPolicy) NewCount(int) int { return int(c) }

func TestLinearGrowthInfeasible(t *testing.T) {
	m := NewLinearGrowthWithPolicy(rand.New(7), constPolicy(5))
	pop := []particle.Particle{
		particle.MustNew(1, 1, 1, 1), particle.MustNew(1, 1, 1, 1),
	}
	_, err := m.Step(pop)
	assert.True(t, errors.Is(err, ErrSamplingInfeasible))

	_, err = NewLinearGrowth(rand.New(7)).Step(nil)
	assert.True(t, errors.Is(err, ErrSamplingInfeasible))

	_, err = NewLinearGrowthWithPolicy(rand.New(7), constPolicy(-1)).Step(pop)
	assert.True(t, errors.Is(err, ErrSamplingInfeasible))
}

func TestLinearGrowthUniformSampling(t *testing.T) {
	m := NewLinearGrowth(rand.New(8))
	counts := make([]int, 20)
	trials := 20000
	for i := 0; i < trials; i++ {
		for _, idx := range m.sample(20, 10) {
			counts[idx]++
		}
	}
	for i, n := range counts {
		assert.InDelta(t, 0.5, float64(n)/float64(trials), 0.03, "index %d", i)
	}
}

func BenchmarkBinarySplitStep(b *testing.B) {
	m := NewBinarySplit(rand.New(1))
	pop := make([]particle.Particle, 1<<12)
	for i := range pop {
		pop[i] = particle.MustNew(1e4, 100, 100, 2.1)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Step(pop)
	}
}

func BenchmarkLinearGrowthStep(b *testing.B) {
	m := NewLinearGrowth(rand.New(1))
	pop := make([]particle.Particle, 1<<12)
	for i := range pop {
		pop[i] = particle.MustNew(1e4, 100, 100, 2.1)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Step(pop)
	}
}
