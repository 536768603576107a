package gradq

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"gridlearn/timestep"
	"gridlearn/utils/matutils"
)

// Policy is an ε-greedy policy over the agent's live network weights.
// Action values are read from the computational graph's weight node
// through the values closure, so the policy always reflects the most
// recent gradient step without holding its own copy of the weights.
type Policy struct {
	values  func() *mat.Dense // (features, actions) weight view
	epsilon float64
	seed    rand.Source
	eval    bool
}

// newPolicy returns a new ε-greedy policy reading its action values
// from values
func newPolicy(epsilon float64, seed uint64,
	values func() *mat.Dense) *Policy {
	return &Policy{
		values:  values,
		epsilon: epsilon,
		seed:    rand.NewSource(seed),
	}
}

// SelectAction selects an action from an ε-greedy distribution over
// the action values at the timestep's observation
func (p *Policy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	weights := p.values()
	_, actions := weights.Dims()

	actionValues := mat.NewVecDense(actions, nil)
	actionValues.MulVec(weights.T(), t.Observation)

	greedy := matutils.MaxVec(actionValues)
	if p.eval {
		return mat.NewVecDense(1, []float64{float64(greedy)})
	}

	// With probability ε choose an action uniformly at random,
	// otherwise choose the greedy action
	probabilities := make([]float64, actions)
	for i := range probabilities {
		probabilities[i] = p.epsilon / float64(actions)
	}
	probabilities[greedy] += 1.0 - p.epsilon

	dist := distuv.NewCategorical(probabilities, p.seed)
	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// SetEpsilon sets the probability of taking an exploratory action
func (p *Policy) SetEpsilon(epsilon float64) {
	p.epsilon = epsilon
}

// Epsilon returns the probability of taking an exploratory action
func (p *Policy) Epsilon() float64 {
	return p.epsilon
}

// Eval sets the policy to evaluation mode, in which the greedy action
// is always chosen
func (p *Policy) Eval() {
	p.eval = true
}

// Train sets the policy to training mode
func (p *Policy) Train() {
	p.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (p *Policy) IsEval() bool {
	return p.eval
}
