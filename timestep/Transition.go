package timestep

import "gonum.org/v1/gonum/mat"

// Transition packages together a single (s, a, r, s') transition of the
// agent-environment interaction. The Discount field holds the discount
// applicable to values bootstrapped from NextState; it is 0 if the
// transition ended the episode at a terminal state.
type Transition struct {
	State     mat.Vector
	Action    int
	Reward    float64
	Discount  float64
	NextState mat.Vector
}

// NewTransition constructs the Transition taking action in the state
// observed at step and leading to nextStep
func NewTransition(step TimeStep, action int, nextStep TimeStep) Transition {
	return Transition{
		State:     step.Observation,
		Action:    action,
		Reward:    nextStep.Reward,
		Discount:  nextStep.Discount,
		NextState: nextStep.Observation,
	}
}

// Terminal returns whether the transition ended its episode at a
// terminal state, in which case no value should be bootstrapped from
// NextState
func (t Transition) Terminal() bool {
	return t.Discount == 0
}
