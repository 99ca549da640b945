/*package particle models soil particles as rectangular prisms.

A Particle is a value: its volume, mass, and surface area are computed once
when it is created and it is never modified afterwards. Splitting a particle
produces two new values and leaves the original untouched.
*/
package particle

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/weathering/rand"
)

// ErrInvalidGeometry is returned when a side length or density is not a
// finite positive number.
var ErrInvalidGeometry = errors.New("invalid particle geometry")

// Axis identifies one of the three sides of a particle.
type Axis int

const (
	Side1 Axis = iota + 1
	Side2
	Side3
)

// Axes is the number of sides a split can be made along.
const Axes = 3

func (a Axis) String() string {
	switch a {
	case Side1:
		return "Side1"
	case Side2:
		return "Side2"
	case Side3:
		return "Side3"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Valid returns true if a names one of the three sides.
func (a Axis) Valid() bool { return a >= Side1 && a <= Side3 }

// RandomAxis draws an axis uniformly from {Side1, Side2, Side3}. It consumes
// exactly one draw from src.
func RandomAxis(src rand.Source) Axis {
	return Axis(src.IntN(Axes) + 1)
}

// Particle is an immutable rectangular prism of uniform density.
type Particle struct {
	sides   [3]float64
	density float64

	volume, mass, surfaceArea float64
}

// New creates a particle with the given side lengths and density. All four
// values must be finite and positive.
func New(side1, side2, side3, density float64) (Particle, error) {
	vals := [4]float64{side1, side2, side3, density}
	names := [4]string{"side1", "side2", "side3", "density"}
	for i, x := range vals {
		if !(x > 0) || math.IsInf(x, 0) {
			return Particle{}, fmt.Errorf(
				"%w: %s must be positive and finite, got %g",
				ErrInvalidGeometry, names[i], x,
			)
		}
	}
	return newUnchecked([3]float64{side1, side2, side3}, density), nil
}

// MustNew is like New, but panics on invalid input.
func MustNew(side1, side2, side3, density float64) Particle {
	p, err := New(side1, side2, side3, density)
	if err != nil {
		panic(err.Error())
	}
	return p
}

func newUnchecked(sides [3]float64, density float64) Particle {
	p := Particle{sides: sides, density: density}
	s1, s2, s3 := sides[0], sides[1], sides[2]
	p.volume = s1 * s2 * s3
	p.mass = density * p.volume
	p.surfaceArea = 2 * (s1*s2 + s2*s3 + s1*s3)
	return p
}

// Parent builds the initial population: a single particle of parent
// material.
func Parent(side1, side2, side3, density float64) ([]Particle, error) {
	p, err := New(side1, side2, side3, density)
	if err != nil {
		return nil, fmt.Errorf("parent material: %w", err)
	}
	return []Particle{p}, nil
}

func (p Particle) Side1() float64       { return p.sides[0] }
func (p Particle) Side2() float64       { return p.sides[1] }
func (p Particle) Side3() float64       { return p.sides[2] }
func (p Particle) Density() float64     { return p.density }
func (p Particle) Volume() float64      { return p.volume }
func (p Particle) Mass() float64        { return p.mass }
func (p Particle) SurfaceArea() float64 { return p.surfaceArea }

// Side returns the length of the side along axis a.
func (p Particle) Side(a Axis) float64 {
	if !a.Valid() {
		panic(fmt.Sprintf("particle: %v is not a valid axis.", a))
	}
	return p.sides[a-1]
}

// Halve returns a copy of p with the side along axis a cut in half. The
// derived quantities of the copy are recomputed.
func (p Particle) Halve(a Axis) Particle {
	if !a.Valid() {
		panic(fmt.Sprintf("particle: %v is not a valid axis.", a))
	}
	sides := p.sides
	sides[a-1] /= 2
	return newUnchecked(sides, p.density)
}

// Split divides p into two identical halves along a side chosen uniformly at
// random. It consumes exactly one draw from src.
func Split(p Particle, src rand.Source) (Particle, Particle) {
	half := p.Halve(RandomAxis(src))
	return half, half
}

func (p Particle) String() string {
	return fmt.Sprintf(
		"Particle{%g x %g x %g, density %g}",
		p.sides[0], p.sides[1], p.sides[2], p.density,
	)
}
