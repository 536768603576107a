package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gridlearn/environment"
)

// SingleStart starts every episode at a fixed cell
type SingleStart struct {
	state mat.Vector
}

// NewSingleStart returns a Starter that always starts episodes at cell
// (x, y) on an r x c grid
func NewSingleStart(x, y, r, c int) (environment.Starter, error) {
	if x < 0 || x >= c {
		return nil, fmt.Errorf("x = %d not in [0, %d)", x, c)
	} else if y < 0 || y >= r {
		return nil, fmt.Errorf("y = %d not in [0, %d)", y, r)
	}

	return &SingleStart{cToV(x, y, r, c)}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() mat.Vector {
	return s.state
}

// RandomStart starts each episode at a cell drawn uniformly at random
type RandomStart struct {
	starter environment.CategoricalStarter
	r, c    int
}

// NewRandomStart returns a Starter that samples start cells uniformly
// over an r x c grid
func NewRandomStart(r, c int, seed uint64) environment.Starter {
	return &RandomStart{
		starter: environment.NewCategoricalStarter([]int{c, r}, seed),
		r:       r,
		c:       c,
	}
}

// Start samples and returns a starting state
func (s *RandomStart) Start() mat.Vector {
	coords := s.starter.Start()
	x, y := int(coords.AtVec(0)), int(coords.AtVec(1))
	return cToV(x, y, s.r, s.c)
}
