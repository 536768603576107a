package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gridlearn/environment/envconfig"
)

// Config is the root configuration of a training run.
//
// Seed and Epsilon are pointers so that an explicit 0 in the file is
// distinguishable from the field being absent: 0 is a legal value for
// both, and only absent fields get defaults.
type Config struct {
	Seed       *uint64          `yaml:"seed"`
	Env        envconfig.Config `yaml:"env"`
	Agent      AgentConfig      `yaml:"agent"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

// AgentConfig describes the learning agent
type AgentConfig struct {
	// Backend selects the learner implementation: "linear" for the
	// closed-form update rule or "autodiff" for the Gorgonia-backed
	// gradient descent learner
	Backend      string   `yaml:"backend"`
	Epsilon      *float64 `yaml:"epsilon"`
	LearningRate float64  `yaml:"learning_rate"`

	// Solver names the gradient descent solver ("Vanilla" or "Adam");
	// used by the autodiff backend only
	Solver string `yaml:"solver"`
}

// ExperimentConfig describes the training run
type ExperimentConfig struct {
	Episodes     int  `yaml:"episodes"`
	DecayEpsilon bool `yaml:"decay_epsilon"`
	Progress     bool `yaml:"progress"`

	// Output files for tracked run data; empty disables the tracker
	ReturnFile        string `yaml:"return_file"`
	EpisodeLengthFile string `yaml:"episode_length_file"`
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: could not read config: %v", err)
	}

	cfg := &Config{Env: envconfig.Default()}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("load: could not parse config: %v", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Seed == nil {
		seed := uint64(1337)
		cfg.Seed = &seed
	}
	if cfg.Agent.Backend == "" {
		cfg.Agent.Backend = "linear"
	}
	if cfg.Agent.Epsilon == nil {
		epsilon := 0.3
		cfg.Agent.Epsilon = &epsilon
	}
	if cfg.Agent.LearningRate == 0 {
		cfg.Agent.LearningRate = 0.1
	}
	if cfg.Experiment.Episodes == 0 {
		cfg.Experiment.Episodes = 1000
	}
}
