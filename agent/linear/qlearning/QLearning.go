// Package qlearning implements the Q-Learning algorithm with linear
// function approximation.
//
// The behaviour policy is ε-greedy with respect to a single dense
// weight matrix (actions × features, no bias), and the target policy
// is greedy with respect to the same weights. Weights are adjusted
// online by one stochastic gradient descent step per environmental
// step on the squared TD error.
package qlearning

import (
	"fmt"

	"gridlearn/agent"
	"gridlearn/agent/linear/policy"
	"gridlearn/environment"
	"gridlearn/utils/matutils/initializers/weights"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*QLearner
	*policy.EGreedy
	Target agent.Policy
	seed   uint64
}

// New creates a new QLearning agent acting in env, with weights drawn
// from the argument Initializer
func New(env environment.Environment, config Config,
	init weights.Initializer, seed uint64) (*QLearning, error) {
	// Ensure environment has discrete actions
	if env.ActionSpec().Cardinality != environment.Discrete {
		return nil, fmt.Errorf("qlearning: cannot use non-discrete actions")
	}

	// Ensure actions are one-dimensional
	if env.ActionSpec().Shape.Len() > 1 {
		return nil, fmt.Errorf("qlearning: actions must be 1-dimensional")
	}

	// Ensure actions are enumerated from 0
	if env.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return nil, fmt.Errorf("qlearning: actions must be enumerated " +
			"starting from 0")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Get the environment specifications
	features := env.ObservationSpec().Shape.Len()
	actions := env.ActionSpec().NumActions()

	// Create algorithm components using the environment specifications.
	// The behaviour policy, target policy, and learner share weights.
	behaviour := policy.NewEGreedy(config.Epsilon, seed, features, actions)
	target := behaviour.GreedyPolicy

	w := behaviour.Weights()[policy.WeightsKey]
	init.Initialize(w)

	learner := NewQLearner(w, config.LearningRate)

	return &QLearning{learner, behaviour, target, seed}, nil
}
