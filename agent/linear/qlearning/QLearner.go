package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gridlearn/timestep"
)

// QLearner implements the update functionality for the Q-Learning
// algorithm.
//
// On each Step(), the learner constructs the bootstrapped target
//
//	target = reward + discount * max(Q(s', a'))
//
// where the discount comes from the next timestep and is 0 on terminal
// transitions, and moves the taken action's weights towards the target
// by one stochastic gradient descent step on the squared TD error with
// a fixed learning rate. Only the taken action's weights change: the
// targets for all other actions equal their predictions, so their
// gradient contribution is zero.
type QLearner struct {
	weights      *mat.Dense
	step         timestep.TimeStep
	action       int
	nextStep     timestep.TimeStep
	learningRate float64
}

// NewQLearner creates a new QLearner struct
//
// weights are the weights of the policy to learn
func NewQLearner(weights *mat.Dense, learningRate float64) *QLearner {
	return &QLearner{
		weights:      weights,
		learningRate: learningRate,
	}
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observefirst: timestep "+
			"%d is not the first timestep of its episode", t.Number)
	}
	q.step = timestep.TimeStep{}
	q.nextStep = t
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearner) Observe(action mat.Vector,
	nextStep timestep.TimeStep) error {
	if action.Len() != 1 {
		return fmt.Errorf("observe: value-based methods do not support "+
			"multi-dimensional actions (action dim = %d)", action.Len())
	}
	q.step = q.nextStep
	q.action = int(action.AtVec(0))
	q.nextStep = nextStep
	return nil
}

// Step updates the weights of the Agent's Learner and Policy
func (q *QLearner) Step() error {
	if q.step.Observation == nil {
		return fmt.Errorf("step: no transition observed yet")
	}

	numActions, _ := q.weights.Dims()

	// Calculate the action values in the next state
	actionValues := mat.NewVecDense(numActions, nil)
	nextState := q.nextStep.Observation
	actionValues.MulVec(q.weights, nextState)

	// Find the maximum action value in the next state
	maxVal := mat.Max(actionValues)

	// Create the update target. The next step's discount is 0 on
	// terminal transitions, so terminal targets equal the reward.
	discount := q.nextStep.Discount
	target := q.nextStep.Reward + discount*maxVal

	// Find the current estimate of the taken action
	weights := q.weights.RowView(q.action)
	state := q.step.Observation
	currentEstimate := mat.Dot(weights, state)

	// Construct the scaling factor of the gradient
	scale := q.learningRate * (target - currentEstimate)

	// Perform gradient descent: ∇weights = scale * state
	newWeights := mat.NewVecDense(weights.Len(), nil)
	newWeights.AddScaledVec(weights, scale, state)
	q.weights.SetRow(q.action, mat.Col(nil, 0, newWeights))

	return nil
}

// TdError calculates the TD error generated by the learner on some
// transition under the current weights
func (q *QLearner) TdError(t timestep.Transition) float64 {
	numActions, _ := q.weights.Dims()

	actionValues := mat.NewVecDense(numActions, nil)
	actionValues.MulVec(q.weights, t.NextState)

	target := t.Reward + t.Discount*mat.Max(actionValues)
	currentEstimate := mat.Dot(q.weights.RowView(t.Action), t.State)

	return target - currentEstimate
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearner) EndEpisode() {}

// Weights gets and returns the weights of the learner
func (q *QLearner) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights["weights"] = q.weights

	return weights
}
