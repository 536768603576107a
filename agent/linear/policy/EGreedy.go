package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"gridlearn/timestep"
)

// EGreedy implements an ε-greedy policy using linear function
// approximation. With probability 1-ε the policy selects the greedy
// action, and with probability ε it selects an action uniformly at
// random. In evaluation mode the policy is fully greedy.
type EGreedy struct {
	weights      *mat.Dense
	GreedyPolicy *Greedy
	epsilon      float64
	seed         rand.Source // Seed for random number generation
	eval         bool
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected; features is the
// number of features in a given feature vector for the environment;
// actions is the number of actions in the environment
func NewEGreedy(e float64, seed uint64, features, actions int) *EGreedy {
	source := rand.NewSource(seed)

	greedyPolicy := NewGreedy(features, actions)
	weights := greedyPolicy.Weights()[WeightsKey] // Share weights

	return &EGreedy{weights, greedyPolicy, e, source, false}
}

// SelectAction selects an action from an ε-greedy policy
func (e *EGreedy) SelectAction(t timestep.TimeStep) *mat.VecDense {
	// Get the greedy action
	greedyAction := int(e.GreedyPolicy.SelectAction(t).AtVec(0))
	if e.eval {
		return mat.NewVecDense(1, []float64{float64(greedyAction)})
	}

	// Calculate the ε probability of choosing any action at random
	numActions, _ := e.weights.Dims()
	prob := e.epsilon / float64(numActions)
	actionProbabilities := make([]float64, numActions)
	for i := 0; i < numActions; i++ {
		actionProbabilities[i] = prob
	}

	// Adjust the probability of choosing the greedy action
	actionProbabilities[greedyAction] += (1.0 - e.epsilon)

	// Construct a categorical distribution over actions using the
	// action probabilities
	dist := distuv.NewCategorical(actionProbabilities, e.seed)

	// Sample an action given the action probabilities and return
	return mat.NewVecDense(1, []float64{dist.Rand()})
}

// Eval sets the policy to evaluation mode, acting fully greedily
func (e *EGreedy) Eval() { e.eval = true }

// Train sets the policy to training mode
func (e *EGreedy) Train() { e.eval = false }

// IsEval indicates whether the policy is in evaluation mode
func (e *EGreedy) IsEval() bool { return e.eval }

// SetEpsilon sets the exploration rate of the policy
func (e *EGreedy) SetEpsilon(epsilon float64) {
	e.epsilon = epsilon
}

// Epsilon returns the current exploration rate of the policy
func (e *EGreedy) Epsilon() float64 {
	return e.epsilon
}

// Weights gets and returns the weights of the EGreedy policy as a
// string description -> weights
func (e *EGreedy) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = e.weights

	return weights
}

// SetWeights sets the weight pointers to point to a new set of
// weights. The SetWeights function can take the output of a call to
// Weights() on another EGreedy Policy directly
func (e *EGreedy) SetWeights(weights map[string]*mat.Dense) error {
	newWeights, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setweights: no weights named %q", WeightsKey)
	}

	e.weights = newWeights
	e.GreedyPolicy.weights = newWeights
	return nil
}
