package gradq

import (
	"fmt"

	"gridlearn/environment"
	"gridlearn/initwfn"
)

// Default weight initialization range
const (
	InitWeightMin float64 = 0.0
	InitWeightMax float64 = 0.01
)

// Config implements a configuration of the GradQ agent
type Config struct {
	// Epsilon is the probability with which the behaviour policy
	// takes an exploratory action
	Epsilon float64

	// LearningRate is the step size of the gradient descent solver
	LearningRate float64

	// Solver names the gradient descent solver to use. An empty
	// string selects vanilla stochastic gradient descent.
	Solver string

	// InitWFn initializes the network weights
	InitWFn *initwfn.InitWFn
}

// NewConfig returns a new Config with the default uniform weight
// initializer seeded with seed, so that agents created from equal
// configurations start from identical weights
func NewConfig(epsilon, learningRate float64, seed uint64) (Config, error) {
	init, err := initwfn.NewUniform(InitWeightMin, InitWeightMax, seed)
	if err != nil {
		return Config{}, fmt.Errorf("newconfig: could not create "+
			"weight initializer: %v", err)
	}

	return Config{
		Epsilon:      epsilon,
		LearningRate: learningRate,
		InitWFn:      init,
	}, nil
}

// CreateAgent creates a new GradQ agent as described by the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (*GradQ, error) {
	return New(env, c, seed)
}

// Validate checks whether the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1] "+
			"(got %v)", c.Epsilon)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive "+
			"(got %v)", c.LearningRate)
	}
	if c.InitWFn == nil {
		return fmt.Errorf("validate: no weight initializer given")
	}
	return nil
}
