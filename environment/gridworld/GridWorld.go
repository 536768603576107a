// Package gridworld implements 2D gridworld environments
package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gridlearn/environment"
	"gridlearn/timestep"
	"gridlearn/utils/matutils"
)

// Actions available in a GridWorld
const (
	Left int = iota
	Right
	Up
	Down
	numActions
)

// GridWorld represents a gridworld environment.
//
// A gridworld is a flattened r x c matrix of cells. The agent occupies
// a single cell, and observations are one-hot vectors of length r*c
// with a 1.0 at the agent's current cell. Actions move the agent one
// cell left, right, up, or down; moves off the border leave the
// position unchanged.
//
// Episodes end when the Task reports a goal state, in which case the
// final TimeStep carries a discount of 0, or when the Ender cuts the
// episode off, in which case the discount is left intact so that
// learners still bootstrap.
type GridWorld struct {
	environment.Task
	environment.Starter
	ender       environment.Ender
	r, c        int
	position    int
	discount    float64
	currentStep timestep.TimeStep
}

// New creates a new gridworld with r rows and c columns, task t,
// discount factor discount, start-state distribution s, and episode
// cutoff e. The ender e may be nil, in which case episodes end only at
// goal states. The returned GridWorld is reset and ready to use.
func New(r, c int, t environment.Task, discount float64,
	s environment.Starter, e environment.Ender) (*GridWorld,
	timestep.TimeStep, error) {
	if r <= 0 || c <= 0 {
		return nil, timestep.TimeStep{},
			fmt.Errorf("gridworld: invalid dimensions (%d, %d)", r, c)
	}
	if discount < 0 || discount > 1 {
		return nil, timestep.TimeStep{},
			fmt.Errorf("gridworld: discount %v not in [0, 1]", discount)
	}

	g := &GridWorld{
		Task:     t,
		Starter:  s,
		ender:    e,
		r:        r,
		c:        c,
		discount: discount,
	}

	return g, g.Reset(), nil
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.r, g.c
}

// At checks the value at position (i, j) in the gridworld. A value of
// 1.0 indicates that the agent is at position (i, j).
func (g *GridWorld) At(i, j int) float64 {
	if (i*g.c)+j == g.position {
		return 1.0
	}
	return 0.0
}

// Reset resets the GridWorld to a start state sampled from its Starter
// and returns the first timestep of the new episode
func (g *GridWorld) Reset() timestep.TimeStep {
	startVec := g.Start()
	g.position = g.vToInd(startVec)

	startStep := timestep.New(timestep.First, 0, g.discount,
		g.getObservation(), 0)
	g.currentStep = startStep
	return startStep
}

// Step takes a single environmental step given some action to perform,
// returning the next timestep and whether it is the last in the episode
func (g *GridWorld) Step(action mat.Vector) (timestep.TimeStep, bool,
	error) {
	direction := int(action.AtVec(0))
	if direction < 0 || direction >= numActions {
		return timestep.TimeStep{}, true,
			fmt.Errorf("step: illegal action %d", direction)
	}

	x, y := g.Coordinates()
	newX, newY := move(x, y, direction, g.r, g.c)
	g.position = g.cToInd(newX, newY)

	// Construct the next timestep, which determines its own reward
	number := g.currentStep.Number + 1
	obs := g.getObservation()
	step := timestep.New(timestep.Mid, 0, g.discount, obs, number)
	step.Reward = g.GetReward(step, action)

	// Transitions into a goal state are terminal and must not be
	// bootstrapped from
	if g.AtGoal(obs) {
		step.StepType = timestep.Last
		step.Discount = 0.0
	} else if g.ender != nil {
		g.ender.End(&step)
	}

	g.currentStep = step
	return step, step.Last(), nil
}

// RewardSpec returns the reward specification of the GridWorld
func (g *GridWorld) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.Min()})
	upperBound := mat.NewVecDense(1, []float64{g.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}

// DiscountSpec returns the discount specification of the GridWorld
func (g *GridWorld) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, nil)
	upperBound := mat.NewVecDense(1, []float64{g.discount})

	return environment.NewSpec(shape, environment.Discount, lowerBound,
		upperBound, environment.Continuous)
}

// ObservationSpec returns the observation specification of the
// GridWorld. Observations are one-hot vectors over the r*c cells.
func (g *GridWorld) ObservationSpec() environment.Spec {
	states := g.r * g.c
	shape := mat.NewVecDense(states, nil)
	lowerBound := mat.NewVecDense(states, nil)
	upperBound := matutils.VecOnes(states)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// ActionSpec returns the action specification of the GridWorld
func (g *GridWorld) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(Left)})
	upperBound := mat.NewVecDense(1, []float64{float64(Down)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// Coordinates returns the (x, y) coordinates of the agent's current
// position
func (g *GridWorld) Coordinates() (int, int) {
	y := g.position / g.c
	x := g.position - (y * g.c)
	return x, y
}

func (g *GridWorld) String() string {
	str := "GridWorld | At: (%d, %d)  |  Bounds: (%d, %d)"
	x, y := g.Coordinates()

	return fmt.Sprintf(str, x, y, g.r, g.c)
}

// getObservation returns the one-hot observation of the current
// position
func (g *GridWorld) getObservation() *mat.VecDense {
	position := mat.NewVecDense(g.r*g.c, nil)
	position.SetVec(g.position, 1.0)
	return position
}

// move computes the coordinates reached by taking direction from
// (x, y) on an r x c grid, clamping moves at the grid's borders
func move(x, y, direction, r, c int) (int, int) {
	switch direction {
	case Left:
		if newX := x - 1; newX >= 0 {
			return newX, y
		}

	case Right:
		if newX := x + 1; newX < c {
			return newX, y
		}

	case Up:
		if newY := y + 1; newY < r {
			return x, newY
		}

	case Down:
		if newY := y - 1; newY >= 0 {
			return x, newY
		}
	}
	return x, y
}

// cToV converts coordinates (x, y) to a one-hot vector
func cToV(x, y, r, c int) mat.Vector {
	vec := mat.NewVecDense(r*c, nil)
	vec.SetVec(cToInd(x, y, c), 1.0)
	return vec
}

// vToC converts a one-hot vector into the (x, y) coordinates of its
// single 1.0 value
func vToC(v mat.Vector, r, c int) (int, int) {
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0.0 {
			y := i / c
			x := i - (y * c)
			return x, y
		}
	}
	return -1, -1
}

// cToInd converts coordinates (x, y) to a flattened cell index
func cToInd(x, y, c int) int {
	return y*c + x
}

func (g *GridWorld) cToInd(x, y int) int {
	return cToInd(x, y, g.c)
}

func (g *GridWorld) vToInd(v mat.Vector) int {
	x, y := vToC(v, g.r, g.c)
	return cToInd(x, y, g.c)
}
