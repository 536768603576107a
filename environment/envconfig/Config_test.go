package envconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDefaultCreatesEnvironment(t *testing.T) {
	env, first, err := Default().CreateEnv(42)
	require.NoError(t, err)

	require.True(t, first.First())
	require.Equal(t, 25, first.Observation.Len())
	require.Equal(t, 1.0, mat.Sum(first.Observation))

	require.Equal(t, 25, env.ObservationSpec().Shape.Len())
	require.Equal(t, 4, env.ActionSpec().NumActions())
}

func TestRandomStartConfig(t *testing.T) {
	cfg := Default()
	cfg.RandomStart = true

	env, _, err := cfg.CreateEnv(42)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		step := env.Reset()
		require.Equal(t, 1.0, mat.Sum(step.Observation))
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	invalid := []func(*Config){
		func(c *Config) { c.Rows = 0 },
		func(c *Config) { c.Cols = -1 },
		func(c *Config) { c.GoalX = nil },
		func(c *Config) { c.Discount = 1.5 },
		func(c *Config) { c.Discount = -0.1 },
		func(c *Config) { c.EpisodeStepLimit = 0 },
	}

	for i, corrupt := range invalid {
		cfg := Default()
		corrupt(&cfg)
		require.Errorf(t, cfg.Validate(), "case %d", i)
	}
}

func TestCreateEnvRejectsOutOfBoundsCells(t *testing.T) {
	cfg := Default()
	cfg.GoalX = []int{cfg.Cols}
	cfg.GoalY = []int{0}
	_, _, err := cfg.CreateEnv(42)
	require.Error(t, err)

	cfg = Default()
	cfg.StartX = -1
	_, _, err = cfg.CreateEnv(42)
	require.Error(t, err)
}
