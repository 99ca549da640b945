package model

import (
	"fmt"

	"github.com/phil-mansfield/weathering/growth"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/rand"
)

// LinearGrowth divides a sampled subset of the population at every step.
// The subset size comes from a step-function growth policy, the subset is
// sampled uniformly without replacement, and every sampled particle is cut
// along one shared axis. Each divided particle contributes two identical
// halves to the next population.
type LinearGrowth struct {
	src    rand.Source
	policy growth.Policy

	// Buffers
	idxBuf   []int
	selected []bool
}

// NewLinearGrowth returns a LinearGrowth model which uses the linear
// breakpoint table as its growth policy.
func NewLinearGrowth(src rand.Source) *LinearGrowth {
	return NewLinearGrowthWithPolicy(src, growth.LinearPolicy())
}

// NewLinearGrowthWithPolicy returns a LinearGrowth model with a custom
// growth policy.
func NewLinearGrowthWithPolicy(
	src rand.Source, policy growth.Policy,
) *LinearGrowth {
	return &LinearGrowth{src: src, policy: policy}
}

func (m *LinearGrowth) Name() string          { return LinearGrowthName }
func (m *LinearGrowth) Policy() growth.Policy { return m.policy }

// Step samples, divides, and reassembles the population. The retained
// particles keep their relative order and come first, followed by the
// divided batch twice. A particle's id in the new population is its index
// plus one.
func (m *LinearGrowth) Step(pop []particle.Particle) ([]particle.Particle, error) {
	size := len(pop)
	k := m.policy.NewCount(size)
	if size == 0 || k < 0 || k > size {
		return nil, fmt.Errorf(
			"%w: growth policy requested %d of %d particles",
			ErrSamplingInfeasible, k, size,
		)
	}

	picks := m.sample(size, k)
	axis := particle.RandomAxis(m.src)

	divided := make([]particle.Particle, k)
	for j, i := range picks {
		divided[j] = pop[i].Halve(axis)
	}

	out := make([]particle.Particle, 0, size+k)
	for i := range pop {
		if !m.selected[i] {
			out = append(out, pop[i])
		}
	}
	out = append(out, divided...)
	out = append(out, divided...)
	return out, nil
}

// sample draws k distinct indices from [0, size) with a partial
// Fisher-Yates shuffle and marks them in m.selected. The returned slice
// aliases an internal buffer.
func (m *LinearGrowth) sample(size, k int) []int {
	if cap(m.idxBuf) < size {
		m.idxBuf = make([]int, size)
		m.selected = make([]bool, size)
	}
	idxs, selected := m.idxBuf[:size], m.selected[:size]
	for i := range idxs {
		idxs[i] = i
		selected[i] = false
	}

	for i := 0; i < k; i++ {
		j := i + m.src.IntN(size-i)
		idxs[i], idxs[j] = idxs[j], idxs[i]
		selected[idxs[i]] = true
	}
	m.selected = selected
	return idxs[:k]
}
