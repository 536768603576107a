// Package wrappers provides wrappers for environments
package wrappers

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"gridlearn/environment"
	"gridlearn/timestep"
	"gridlearn/utils/matutils"
)

// OneHot wraps an environment whose observations are scalar state
// indices and returns as observations the one-hot encoding of those
// indices. The encoded vector has length equal to the number of states
// in the wrapped environment, with a single 1.0 at the state's index
// and 0.0 elsewhere, so that the encoding is a bijection between state
// indices and basis vectors.
//
// OneHot itself implements the environment.Environment interface and
// is therefore itself an environment. Out-of-range indices in the
// wrapped environment's observations are not validated.
type OneHot struct {
	environment.Environment
	states int
}

// NewOneHot creates and returns a new OneHot environment wrapping an
// existing environment with numStates discrete states. The wrapped
// environment is reset by calling its Reset() method, and the first
// timestep of the encoded environment is returned.
func NewOneHot(env environment.Environment, numStates int) (*OneHot,
	timestep.TimeStep, error) {
	if numStates <= 0 {
		return nil, timestep.TimeStep{},
			fmt.Errorf("onehot: non-positive state count %d", numStates)
	}

	wrapped := &OneHot{env, numStates}

	step := env.Reset()
	step.Observation = wrapped.encode(step.Observation)

	return wrapped, step, nil
}

// Reset resets the environment to some starting state
func (o *OneHot) Reset() timestep.TimeStep {
	step := o.Environment.Reset()
	step.Observation = o.encode(step.Observation)
	return step
}

// Step takes one environmental step given action a and returns the
// next state as a timestep.TimeStep and a bool indicating whether or
// not the episode has ended
func (o *OneHot) Step(a mat.Vector) (timestep.TimeStep, bool, error) {
	step, last, err := o.Environment.Step(a)
	if err != nil {
		return step, last, err
	}

	step.Observation = o.encode(step.Observation)
	return step, last, nil
}

// ObservationSpec returns the observation specification of the
// environment
func (o *OneHot) ObservationSpec() environment.Spec {
	shape := mat.NewVecDense(o.states, nil)
	lowerBound := mat.NewVecDense(o.states, nil)
	upperBound := matutils.VecOnes(o.states)

	return environment.NewSpec(shape, environment.Observation, lowerBound,
		upperBound, environment.Discrete)
}

// String returns a string representation of the OneHot environment
func (o *OneHot) String() string {
	return fmt.Sprintf("OneHot: %v", o.Environment)
}

// encode converts a scalar state-index observation into its one-hot
// feature vector
func (o *OneHot) encode(obs mat.Vector) mat.Vector {
	return matutils.OneHot(int(obs.AtVec(0)), o.states)
}
