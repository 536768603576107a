package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"gridlearn/agent"
	"gridlearn/environment"
	"gridlearn/utils/matutils/initializers/weights"
)

// Default range of the uniform distribution from which initial weights
// are drawn by CreateAgent
const (
	InitWeightMin float64 = 0.0
	InitWeightMax float64 = 0.01
)

// Config represents a configuration for the QLearning agent
type Config struct {
	Epsilon      float64 // epsilon for behaviour policy
	LearningRate float64
}

// CreateAgent creates the agent from the Config. Agent weights are
// initialized to small positive random values drawn uniformly from
// [InitWeightMin, InitWeightMax). To initialize from some other
// distribution, use the agent's constructor manually.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {

	rand := distuv.Uniform{
		Min: InitWeightMin,
		Max: InitWeightMax,
		Src: rand.NewSource(seed),
	}
	init := weights.NewLinearUV(rand)

	return New(env, c, init, seed)
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1]")
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}
	return nil
}
