// Command train runs a Q-Learning agent on a gridworld environment
// described by a YAML configuration file and saves the run's data.
//
// The run stops early and gracefully on SIGINT or SIGTERM: the
// interrupt is observed between environment steps, the data of all
// completed episodes is saved, and the agent's last completed update
// is left intact.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gridlearn/agent"
	"gridlearn/agent/autodiff/gradq"
	"gridlearn/agent/linear/qlearning"
	env "gridlearn/environment"
	"gridlearn/experiment"
	"gridlearn/experiment/trackers"
)

func main() {
	configPath := flag.String("config", "configs/gridworld.yaml",
		"path to the training configuration file")
	flag.Parse()

	cfg, err := Load(*configPath)
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := run(ctx, cfg)
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	if result.Interrupted {
		fmt.Printf("training interrupted after %d episodes\n",
			result.Episodes())
	} else {
		fmt.Printf("training finished: %d episodes\n", result.Episodes())
	}
	if n := result.Episodes(); n > 0 {
		fmt.Printf("final episode: return %.3f, length %d, loss %.3f, "+
			"epsilon %.4f\n", result.Returns[n-1], result.Lengths[n-1],
			result.Losses[n-1], result.Epsilons[n-1])
	}
}

// run trains the configured agent and returns the run's statistics
func run(ctx context.Context, cfg *Config) (*experiment.Result, error) {
	environment, _, err := cfg.Env.CreateEnv(*cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("run: could not create environment: %v", err)
	}

	a, err := createAgent(environment, cfg)
	if err != nil {
		return nil, fmt.Errorf("run: could not create agent: %v", err)
	}

	exp, err := experiment.NewEpisodic(environment, a,
		cfg.Experiment.Episodes)
	if err != nil {
		return nil, fmt.Errorf("run: %v", err)
	}

	if cfg.Experiment.ReturnFile != "" {
		exp.Register(trackers.NewReturn(cfg.Experiment.ReturnFile))
	}
	if cfg.Experiment.EpisodeLengthFile != "" {
		exp.Register(trackers.NewEpisodeLength(
			cfg.Experiment.EpisodeLengthFile))
	}

	if cfg.Experiment.DecayEpsilon {
		decay := experiment.NewBudgetDecay(cfg.Experiment.Episodes)
		if err := exp.DecayEpsilon(decay); err != nil {
			return nil, fmt.Errorf("run: %v", err)
		}
	}

	if cfg.Experiment.Progress {
		exp.ShowProgress()
	}

	result, err := exp.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("run: %v", err)
	}

	exp.SaveData()
	return result, nil
}

// createAgent builds the configured learner backend
func createAgent(e env.Environment, cfg *Config) (agent.Agent, error) {
	switch cfg.Agent.Backend {
	case "linear":
		config := qlearning.Config{
			Epsilon:      *cfg.Agent.Epsilon,
			LearningRate: cfg.Agent.LearningRate,
		}
		return config.CreateAgent(e, *cfg.Seed)

	case "autodiff":
		config, err := gradq.NewConfig(*cfg.Agent.Epsilon,
			cfg.Agent.LearningRate, *cfg.Seed)
		if err != nil {
			return nil, err
		}
		config.Solver = cfg.Agent.Solver
		return config.CreateAgent(e, *cfg.Seed)
	}

	return nil, fmt.Errorf("createagent: unknown backend %q",
		cfg.Agent.Backend)
}
