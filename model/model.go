/*package model contains the step transitions which turn the particle
population at one time step into the population at the next.

Two models are provided. BinarySplit divides every particle, each along its
own randomly chosen axis. LinearGrowth divides a batch of randomly sampled
particles whose size is set by a step-function growth policy, and all
particles in the batch are cut along the same axis.
*/
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/phil-mansfield/weathering/growth"
	"github.com/phil-mansfield/weathering/particle"
	"github.com/phil-mansfield/weathering/rand"
)

// ErrSamplingInfeasible is returned when a growth policy asks for more
// particles than the population contains.
var ErrSamplingInfeasible = errors.New("sampling infeasible")

// Model advances a population by one time step.
type Model interface {
	// Name returns the name the model is selected by in configuration
	// files.
	Name() string
	// Policy returns the growth policy which sets how many particles are
	// divided each step.
	Policy() growth.Policy
	// Step returns the population at the next time step. pop is not
	// modified.
	Step(pop []particle.Particle) ([]particle.Particle, error)
}

const (
	BinarySplitName  = "BinarySplit"
	LinearGrowthName = "LinearGrowth"
)

var (
	_ Model = &BinarySplit{}
	_ Model = &LinearGrowth{}

	constructors = map[string]func(rand.Source) Model{
		strings.ToLower(BinarySplitName): func(src rand.Source) Model {
			return NewBinarySplit(src)
		},
		strings.ToLower(LinearGrowthName): func(src rand.Source) Model {
			return NewLinearGrowth(src)
		},
	}
)

// ByName returns the model with the given name (case-insensitive), drawing
// its randomness from src.
func ByName(name string, src rand.Source) (Model, error) {
	con, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf(
			"unrecognized model '%s', must be one of [%s]",
			name, strings.Join(Names(), " | "),
		)
	}
	return con(src), nil
}

// Names returns the names of every model, sorted.
func Names() []string {
	names := []string{BinarySplitName, LinearGrowthName}
	sort.Strings(names)
	return names
}

// ValidName returns true if name refers to a known model.
func ValidName(name string) bool {
	_, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
