package model

import (
	"fmt"

	"github.com/phil-mansfield/weathering/growth"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/rand"
)

// BinarySplit divides every particle into two at every step. Each particle
// draws its own split axis, so after the first step particles are generally
// not congruent, even though the population size is exactly 2^t.
type BinarySplit struct {
	src    rand.Source
	policy growth.Doubling
}

func NewBinarySplit(src rand.Source) *BinarySplit {
	return &BinarySplit{src: src}
}

func (m *BinarySplit) Name() string          { return BinarySplitName }
func (m *BinarySplit) Policy() growth.Policy { return m.policy }

func (m *BinarySplit) Step(pop []particle.Particle) ([]particle.Particle, error) {
	n := m.policy.NewCount(len(pop))
	if n != len(pop) {
		panic(fmt.Sprintf(
			"model: doubling policy divided %d of %d particles", n, len(pop),
		))
	}

	out := make([]particle.Particle, 0, len(pop)+n)
	for i := range pop {
		c1, c2 := particle.Split(pop[i], m.src)
		out = append(out, c1, c2)
	}
	return out, nil
}
