// Package policy implements policies using linear function
// approximation
package policy

import (
	"gonum.org/v1/gonum/mat"

	"gridlearn/timestep"
	"gridlearn/utils/matutils"
)

const (
	// Key for weights map: map[string]*mat.Dense
	WeightsKey string = "weights"
)

// Greedy implements a greedy policy using linear function
// approximation. The policy always selects the action with the highest
// estimated value; ties resolve to the first maximal index.
type Greedy struct {
	weights *mat.Dense
}

// NewGreedy constructs a new Greedy policy over a weight matrix of
// shape (actions, features)
func NewGreedy(features, actions int) *Greedy {
	weights := mat.NewDense(actions, features, nil)
	return &Greedy{weights}
}

// SelectAction selects the greedy action in the state observed at t
func (p *Greedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	actionValues := p.actionValues(t.Observation)
	action := matutils.MaxVec(actionValues)

	return mat.NewVecDense(1, []float64{float64(action)})
}

// Eval is a no-op: a Greedy policy acts identically in training and
// evaluation mode
func (p *Greedy) Eval() {}

// Train is a no-op: a Greedy policy acts identically in training and
// evaluation mode
func (p *Greedy) Train() {}

// IsEval always returns true for Greedy policies
func (p *Greedy) IsEval() bool { return true }

// Weights gets and returns the weights of the Greedy policy as a
// string description -> weights
func (p *Greedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = p.weights

	return weights
}

// actionValues computes the value estimate of each action given the
// feature vector obs
func (p *Greedy) actionValues(obs mat.Vector) mat.Vector {
	numActions, _ := p.weights.Dims()
	actionValues := mat.NewVecDense(numActions, nil)
	actionValues.MulVec(p.weights, obs)
	return actionValues
}
