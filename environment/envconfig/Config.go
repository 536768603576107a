// Package envconfig builds environments from configuration values
package envconfig

import (
	"fmt"

	env "gridlearn/environment"
	"gridlearn/environment/gridworld"
	"gridlearn/timestep"
)

// Config describes a gridworld environment
type Config struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	// RandomStart selects uniform random start cells; otherwise every
	// episode starts at (StartX, StartY)
	RandomStart bool `yaml:"random_start"`
	StartX      int  `yaml:"start_x"`
	StartY      int  `yaml:"start_y"`

	// Goal cells are (GoalX[i], GoalY[i])
	GoalX []int `yaml:"goal_x"`
	GoalY []int `yaml:"goal_y"`

	TimeStepReward float64 `yaml:"time_step_reward"`
	GoalReward     float64 `yaml:"goal_reward"`
	Discount       float64 `yaml:"discount"`

	// EpisodeStepLimit cuts episodes off after this many steps.
	// Cut-off episodes still bootstrap.
	EpisodeStepLimit int `yaml:"episode_step_limit"`
}

// Default returns the default environment configuration: a 5x5 grid
// with a single goal in the bottom-right corner
func Default() Config {
	return Config{
		Rows:             5,
		Cols:             5,
		GoalX:            []int{4},
		GoalY:            []int{4},
		TimeStepReward:   -0.01,
		GoalReward:       1.0,
		Discount:         0.99,
		EpisodeStepLimit: 500,
	}
}

// Validate checks whether the Config describes a legal environment
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("validate: grid dimensions must be positive "+
			"(got %d x %d)", c.Rows, c.Cols)
	}
	if len(c.GoalX) == 0 {
		return fmt.Errorf("validate: at least one goal cell is required")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1] "+
			"(got %v)", c.Discount)
	}
	if c.EpisodeStepLimit <= 0 {
		return fmt.Errorf("validate: episode step limit must be "+
			"positive (got %d)", c.EpisodeStepLimit)
	}
	return nil
}

// CreateEnv creates the environment described by the Config, returning
// the environment and the first timestep of its first episode
func (c Config) CreateEnv(seed uint64) (env.Environment,
	timestep.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, timestep.TimeStep{}, err
	}

	task, err := gridworld.NewGoal(c.GoalX, c.GoalY, c.Rows, c.Cols,
		c.TimeStepReward, c.GoalReward)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("createenv: could "+
			"not create task: %v", err)
	}

	var starter env.Starter
	if c.RandomStart {
		starter = gridworld.NewRandomStart(c.Rows, c.Cols, seed)
	} else {
		starter, err = gridworld.NewSingleStart(c.StartX, c.StartY,
			c.Rows, c.Cols)
		if err != nil {
			return nil, timestep.TimeStep{}, fmt.Errorf("createenv: "+
				"could not create starter: %v", err)
		}
	}

	ender := env.NewStepLimit(c.EpisodeStepLimit)

	return gridworld.New(c.Rows, c.Cols, task, c.Discount, starter, ender)
}
