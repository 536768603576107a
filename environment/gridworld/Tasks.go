package gridworld

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"gridlearn/timestep"
	"gridlearn/utils/matutils"
)

// Goal represents the task of reaching goal states in a GridWorld.
// Transitions into a goal cell earn goalReward; every other transition
// earns timeStepReward.
type Goal struct {
	goals          *mat.Dense // (x, y) coordinates of goal states, one per row
	r, c           int        // total rows and columns in environment
	timeStepReward float64
	goalReward     float64
}

// NewGoal creates and returns a new Goal task with goal states at
// positions (x[i], y[i]), given that the gridworld has r rows and c
// columns. The argument tr is the reward for a regular timestep and gr
// is the reward for reaching a goal.
func NewGoal(x, y []int, r, c int, tr, gr float64) (*Goal, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("x length (%d) != y length (%d)",
			len(x), len(y))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("at least one goal state is required")
	}

	coords := make([]float64, 0, 2*len(x))
	for i := range x {
		// Ensure that the goal is within the proper bounds
		if x[i] < 0 || x[i] >= c {
			return nil, fmt.Errorf("x[%d] = %d not in [0, %d)", i, x[i], c)
		} else if y[i] < 0 || y[i] >= r {
			return nil, fmt.Errorf("y[%d] = %d not in [0, %d)", i, y[i], r)
		}
		coords = append(coords, float64(x[i]), float64(y[i]))
	}

	goals := mat.NewDense(len(x), 2, coords)
	return &Goal{goals, r, c, tr, gr}, nil
}

// GetReward returns the reward for arriving in the state observed at
// t. The action argument is unused by this task.
func (g *Goal) GetReward(t timestep.TimeStep, _ mat.Vector) float64 {
	if g.AtGoal(t.Observation) {
		return g.goalReward
	}
	return g.timeStepReward
}

// AtGoal returns whether state is a goal state
func (g *Goal) AtGoal(state mat.Matrix) bool {
	obs := state.(mat.Vector)
	x, y := vToC(obs, g.r, g.c)

	numGoals, _ := g.goals.Dims()
	for i := 0; i < numGoals; i++ {
		goal := g.goals.RowView(i)
		if x == int(goal.AtVec(0)) && y == int(goal.AtVec(1)) {
			return true
		}
	}
	return false
}

// Min returns the minimum reward attainable in the Task
func (g *Goal) Min() float64 {
	return floats.Min([]float64{g.timeStepReward, g.goalReward})
}

// Max returns the maximum reward attainable in the Task
func (g *Goal) Max() float64 {
	return floats.Max([]float64{g.timeStepReward, g.goalReward})
}

// String returns the Goal as a string
func (g *Goal) String() string {
	return matutils.Format(g.goals)
}
