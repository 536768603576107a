// Package gradq implements Q-Learning with a linear action-value
// network trained by automatic differentiation.
//
// The agent learns the same linear function approximator as the
// closed-form qlearning package, but computes its gradient step with
// Gorgonia instead of the analytic update rule: predictions are a
// single matrix product with no bias, and the loss is the sum of
// squared differences between the prediction vector and a target
// vector that differs from the prediction only at the taken action.
// The unchanged coordinates are excluded from the loss by an explicit
// one-hot action mask, so their gradient contribution is exactly zero.
package gradq

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"gridlearn/environment"
	"gridlearn/solver"
	"gridlearn/timestep"
)

// GradQ implements the Q-Learning algorithm with a Gorgonia-backed
// linear value estimator.
//
// The computational graph computes, for a single transition,
//
//	prediction = input · weights
//	loss       = Σ (mask ⊙ (target − prediction))²
//
// where mask is the one-hot encoding of the taken action and target
// holds r + γ·max(Q(s', ·)) at the taken action's index. The
// bootstrapped target is computed outside the graph from the current
// weight values, so no gradient flows through the lookahead.
type GradQ struct {
	*Policy

	graph *G.ExprGraph
	vm    G.VM
	slvr  *solver.Solver

	weights *G.Node // (features, actions)
	input   *G.Node // (1, features)
	mask    *G.Node // (1, actions)
	target  *G.Node // (1, actions)

	lossVal G.Value

	features int
	actions  int

	step     timestep.TimeStep
	action   int
	nextStep timestep.TimeStep
}

// New creates a new GradQ agent acting in env
func New(env environment.Environment, config Config,
	seed uint64) (*GradQ, error) {
	// Ensure environment has discrete actions
	if env.ActionSpec().Cardinality != environment.Discrete {
		return nil, fmt.Errorf("gradq: cannot use non-discrete actions")
	}

	// Ensure actions are enumerated from 0
	if env.ActionSpec().LowerBound.AtVec(0) != 0.0 {
		return nil, fmt.Errorf("gradq: actions must be enumerated " +
			"starting from 0")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	features := env.ObservationSpec().Shape.Len()
	actions := env.ActionSpec().NumActions()

	// Build the computational graph of the loss
	g := G.NewGraph()
	weights := G.NewMatrix(g, tensor.Float64,
		G.WithShape(features, actions), G.WithName("weights"),
		G.WithInit(config.InitWFn.InitWFn()))
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(1, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))
	mask := G.NewMatrix(g, tensor.Float64, G.WithShape(1, actions),
		G.WithName("actionMask"), G.WithInit(G.Zeroes()))
	target := G.NewMatrix(g, tensor.Float64, G.WithShape(1, actions),
		G.WithName("target"), G.WithInit(G.Zeroes()))

	prediction := G.Must(G.Mul(input, weights))

	// Sum-of-squared-error loss over the action dimension. Only the
	// taken action's coordinate survives the mask.
	losses := G.Must(G.Sub(target, prediction))
	losses = G.Must(G.HadamardProd(losses, mask))
	losses = G.Must(G.Square(losses))
	cost := G.Must(G.Sum(losses))

	agent := &GradQ{
		graph:    g,
		weights:  weights,
		input:    input,
		mask:     mask,
		target:   target,
		features: features,
		actions:  actions,
	}
	G.Read(cost, &agent.lossVal)

	// Compute the gradient with respect to the loss
	if _, err := G.Grad(cost, weights); err != nil {
		return nil, fmt.Errorf("gradq: could not compute gradient: %v", err)
	}

	agent.vm = G.NewTapeMachine(g, G.BindDualValues(weights))

	slvr, err := solver.FromName(config.Solver, config.LearningRate)
	if err != nil {
		return nil, fmt.Errorf("gradq: %v", err)
	}
	agent.slvr = slvr

	agent.Policy = newPolicy(config.Epsilon, seed, agent.weightsMatrix)

	return agent, nil
}

// ObserveFirst observes and records the first episodic timestep
func (q *GradQ) ObserveFirst(t timestep.TimeStep) error {
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
func (q *GradQ) Observe(action mat.Vector,
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

// Step updates the weights of the agent by a single gradient descent
// step on the masked squared-error loss
func (q *GradQ) Step() error {
	if q.step.Observation == nil {
		return fmt.Errorf("step: no transition observed yet")
	}

	// Bootstrapped target, computed outside the graph. The next
	// step's discount is 0 on terminal transitions, so terminal
	// targets equal the reward.
	nextValues := q.actionValues(q.nextStep.Observation)
	targetValue := q.nextStep.Reward + q.nextStep.Discount*mat.Max(nextValues)

	// Feed the transition into the graph
	if err := q.setInput(q.step.Observation); err != nil {
		return fmt.Errorf("step: could not set input: %v", err)
	}

	maskData := make([]float64, q.actions)
	maskData[q.action] = 1.0
	maskTensor := tensor.New(tensor.WithShape(1, q.actions),
		tensor.WithBacking(maskData))
	if err := G.Let(q.mask, maskTensor); err != nil {
		return fmt.Errorf("step: could not set action mask: %v", err)
	}

	targetData := make([]float64, q.actions)
	targetData[q.action] = targetValue
	targetTensor := tensor.New(tensor.WithShape(1, q.actions),
		tensor.WithBacking(targetData))
	if err := G.Let(q.target, targetTensor); err != nil {
		return fmt.Errorf("step: could not set target: %v", err)
	}

	// Run the learning step
	if err := q.vm.RunAll(); err != nil {
		return fmt.Errorf("step: could not run forward pass: %v", err)
	}
	if err := q.slvr.Step([]G.ValueGrad{q.weights}); err != nil {
		return fmt.Errorf("step: could not run solver: %v", err)
	}
	q.vm.Reset()

	return nil
}

// Loss returns the loss of the last gradient step taken
func (q *GradQ) Loss() float64 {
	if q.lossVal == nil {
		return 0
	}
	return q.lossVal.Data().(float64)
}

// TdError calculates the TD error generated by the learner on some
// transition under the current weights
func (q *GradQ) TdError(t timestep.Transition) float64 {
	nextValues := q.actionValues(t.NextState)
	target := t.Reward + t.Discount*mat.Max(nextValues)

	currentValues := q.actionValues(t.State)
	return target - currentValues.AtVec(t.Action)
}

// EndEpisode performs cleanup at the end of an episode
func (q *GradQ) EndEpisode() {}

// Close cleans up the agent's virtual machine
func (q *GradQ) Close() error {
	return q.vm.Close()
}

// Weights gets and returns the weights of the learner, with rows
// indexing actions and columns indexing features
func (q *GradQ) Weights() map[string]*mat.Dense {
	w := mat.DenseCopyOf(q.weightsMatrix().T())

	weights := make(map[string]*mat.Dense)
	weights["weights"] = w
	return weights
}

// weightsMatrix returns a gonum view of the current weight values,
// with shape (features, actions)
func (q *GradQ) weightsMatrix() *mat.Dense {
	data := q.weights.Value().Data().([]float64)
	return mat.NewDense(q.features, q.actions, data)
}

// actionValues computes the value estimate of each action for the
// feature vector obs, outside the computational graph
func (q *GradQ) actionValues(obs mat.Vector) *mat.VecDense {
	values := mat.NewVecDense(q.actions, nil)
	values.MulVec(q.weightsMatrix().T(), obs)
	return values
}

// setInput sets the value of the graph's input node to obs
func (q *GradQ) setInput(obs mat.Vector) error {
	data := make([]float64, obs.Len())
	for i := range data {
		data[i] = obs.AtVec(i)
	}

	inputTensor := tensor.New(tensor.WithShape(1, q.features),
		tensor.WithBacking(data))
	return G.Let(q.input, inputTensor)
}
