package gradq

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"gridlearn/environment"
	"gridlearn/environment/gridworld"
	"gridlearn/initwfn"
	"gridlearn/timestep"
)

// newTestEnv returns a 2x2 gridworld starting at (0, 0) with the goal
// at (1, 1)
func newTestEnv(t *testing.T) (environment.Environment,
	timestep.TimeStep) {
	t.Helper()

	task, err := gridworld.NewGoal([]int{1}, []int{1}, 2, 2, 0.0, 1.0)
	if err != nil {
		t.Fatalf("could not create task: %v", err)
	}

	starter, err := gridworld.NewSingleStart(0, 0, 2, 2)
	if err != nil {
		t.Fatalf("could not create starter: %v", err)
	}

	env, first, err := gridworld.New(2, 2, task, 0.9, starter,
		environment.NewStepLimit(100))
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}
	return env, first
}

// newZeroAgent returns a GradQ agent with all weights initialized to 0
func newZeroAgent(t *testing.T, env environment.Environment,
	epsilon float64) *GradQ {
	t.Helper()

	init, err := initwfn.NewZeroes()
	if err != nil {
		t.Fatalf("could not create initializer: %v", err)
	}

	config := Config{Epsilon: epsilon, LearningRate: 0.1, InitWFn: init}
	agent, err := New(env, config, 42)
	if err != nil {
		t.Fatalf("could not create agent: %v", err)
	}
	return agent
}

// With zero weights, the TD error of a transition is exactly its
// reward
func TestTdErrorZeroWeights(t *testing.T) {
	env, _ := newTestEnv(t)
	agent := newZeroAgent(t, env, 0.0)
	defer agent.Close()

	transition := timestep.Transition{
		State:     mat.NewVecDense(4, []float64{1, 0, 0, 0}),
		Action:    0,
		Reward:    1.0,
		Discount:  0.9,
		NextState: mat.NewVecDense(4, []float64{0, 1, 0, 0}),
	}

	if got := agent.TdError(transition); got != 1.0 {
		t.Errorf("TD error = %v, expected 1", got)
	}
}

// A gradient step moves the taken action's weight towards the target
// and leaves all other weights at zero
func TestStepUpdatesTakenActionOnly(t *testing.T) {
	// Goal at (1, 0), so a single Right step is a rewarding terminal
	// transition
	task, err := gridworld.NewGoal([]int{1}, []int{0}, 2, 2, 0.0, 1.0)
	if err != nil {
		t.Fatalf("could not create task: %v", err)
	}
	starter, err := gridworld.NewSingleStart(0, 0, 2, 2)
	if err != nil {
		t.Fatalf("could not create starter: %v", err)
	}
	env, first, err := gridworld.New(2, 2, task, 0.9, starter, nil)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	agent := newZeroAgent(t, env, 0.0)
	defer agent.Close()

	if err := agent.ObserveFirst(first); err != nil {
		t.Fatalf("could not observe first step: %v", err)
	}

	action := mat.NewVecDense(1, []float64{float64(gridworld.Right)})
	next, _, err := env.Step(action)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if err := agent.Observe(action, next); err != nil {
		t.Fatalf("could not observe transition: %v", err)
	}

	if err := agent.Step(); err != nil {
		t.Fatalf("could not step agent: %v", err)
	}

	weights := agent.Weights()["weights"]
	rows, cols := weights.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i == gridworld.Right && j == 0 {
				if weights.At(i, j) <= 0 {
					t.Errorf("taken action's weight = %v, expected it to "+
						"move towards the positive target", weights.At(i, j))
				}
				continue
			}
			if weights.At(i, j) != 0 {
				t.Errorf("weight (%d, %d) = %v, expected 0", i, j,
					weights.At(i, j))
			}
		}
	}
}

// The recorded loss is the squared TD error under the pre-update
// weights
func TestLoss(t *testing.T) {
	env, first := newTestEnv(t)
	agent := newZeroAgent(t, env, 0.0)
	defer agent.Close()

	if err := agent.ObserveFirst(first); err != nil {
		t.Fatalf("could not observe first step: %v", err)
	}

	// Move into the goal: reward 1, terminal, so with zero weights the
	// TD error is 1 and the loss is 1
	right := mat.NewVecDense(1, []float64{float64(gridworld.Right)})
	up := mat.NewVecDense(1, []float64{float64(gridworld.Up)})

	next, _, err := env.Step(right)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if err := agent.Observe(right, next); err != nil {
		t.Fatalf("could not observe transition: %v", err)
	}

	// First transition earns reward 0, so its loss is 0
	if err := agent.Step(); err != nil {
		t.Fatalf("could not step agent: %v", err)
	}
	if got := agent.Loss(); got != 0 {
		t.Errorf("loss = %v, expected 0", got)
	}

	goal, _, err := env.Step(up)
	if err != nil {
		t.Fatalf("could not step environment: %v", err)
	}
	if !goal.Last() {
		t.Fatal("expected terminal step at the goal")
	}
	if err := agent.Observe(up, goal); err != nil {
		t.Fatalf("could not observe transition: %v", err)
	}
	if err := agent.Step(); err != nil {
		t.Fatalf("could not step agent: %v", err)
	}

	if got := agent.Loss(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("loss = %v, expected 1", got)
	}
}

// With zero weights and ε = 0, the greedy action is the first index
func TestSelectActionGreedyTie(t *testing.T) {
	env, first := newTestEnv(t)
	agent := newZeroAgent(t, env, 0.0)
	defer agent.Close()

	if got := agent.SelectAction(first).AtVec(0); got != 0 {
		t.Errorf("selected action %v, expected 0 on a tie", got)
	}
}

// Agents created with equal seeds must start from identical weights,
// drawn from [InitWeightMin, InitWeightMax)
func TestUniformInitDeterminism(t *testing.T) {
	env, _ := newTestEnv(t)

	newAgent := func(seed uint64) *GradQ {
		config, err := NewConfig(0.0, 0.1, seed)
		if err != nil {
			t.Fatalf("could not create config: %v", err)
		}
		agent, err := New(env, config, seed)
		if err != nil {
			t.Fatalf("could not create agent: %v", err)
		}
		return agent
	}

	first := newAgent(42)
	defer first.Close()
	second := newAgent(42)
	defer second.Close()

	w1 := first.Weights()["weights"]
	w2 := second.Weights()["weights"]
	if !mat.Equal(w1, w2) {
		t.Error("agents with equal seeds have different initial weights")
	}

	rows, cols := w1.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := w1.At(i, j)
			if v < InitWeightMin || v >= InitWeightMax {
				t.Errorf("weight (%d, %d) = %v outside [%v, %v)", i, j,
					v, InitWeightMin, InitWeightMax)
			}
		}
	}

	third := newAgent(7)
	defer third.Close()
	if mat.Equal(w1, third.Weights()["weights"]) {
		t.Error("agents with different seeds have identical initial " +
			"weights")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	config, err := NewConfig(0.1, 0.5, 42)
	if err != nil {
		t.Fatalf("could not create config: %v", err)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}

	invalid := []Config{
		{Epsilon: -1, LearningRate: 0.5, InitWFn: config.InitWFn},
		{Epsilon: 0.1, LearningRate: 0, InitWFn: config.InitWFn},
		{Epsilon: 0.1, LearningRate: 0.5},
	}
	for _, c := range invalid {
		if err := c.Validate(); err == nil {
			t.Errorf("invalid config %+v accepted", c)
		}
	}
}
