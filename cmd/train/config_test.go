package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `
seed: 7
env:
  rows: 4
  cols: 6
  goal_x: [5]
  goal_y: [3]
  time_step_reward: -0.5
  goal_reward: 2.0
  discount: 0.95
  episode_step_limit: 50
agent:
  backend: autodiff
  epsilon: 0.2
  learning_rate: 0.05
  solver: Adam
experiment:
  episodes: 10
  decay_epsilon: true
  return_file: out.bin
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	require.Equal(t, uint64(7), *cfg.Seed)
	require.Equal(t, 4, cfg.Env.Rows)
	require.Equal(t, 6, cfg.Env.Cols)
	require.Equal(t, []int{5}, cfg.Env.GoalX)
	require.Equal(t, -0.5, cfg.Env.TimeStepReward)
	require.Equal(t, "autodiff", cfg.Agent.Backend)
	require.Equal(t, 0.2, *cfg.Agent.Epsilon)
	require.Equal(t, "Adam", cfg.Agent.Solver)
	require.Equal(t, 10, cfg.Experiment.Episodes)
	require.True(t, cfg.Experiment.DecayEpsilon)
	require.Equal(t, "out.bin", cfg.Experiment.ReturnFile)
	require.Empty(t, cfg.Experiment.EpisodeLengthFile)
}

// Omitted fields fall back to defaults
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)

	require.Equal(t, uint64(1337), *cfg.Seed)
	require.Equal(t, "linear", cfg.Agent.Backend)
	require.Equal(t, 0.3, *cfg.Agent.Epsilon)
	require.Equal(t, 0.1, cfg.Agent.LearningRate)
	require.Equal(t, 1000, cfg.Experiment.Episodes)
	require.NoError(t, cfg.Env.Validate())
}

// An explicit 0 is a legal seed and a legal epsilon; it must not be
// mistaken for an omitted field and replaced by defaults
func TestLoadExplicitZeroes(t *testing.T) {
	cfg, err := Load(writeConfig(t, "seed: 0\nagent:\n  epsilon: 0\n"))
	require.NoError(t, err)

	require.Equal(t, uint64(0), *cfg.Seed)
	require.Equal(t, 0.0, *cfg.Agent.Epsilon)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "episodes: [unclosed"))
	require.Error(t, err)
}
