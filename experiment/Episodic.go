// Package experiment implements training runs of agents acting in
// environments
package experiment

import (
	"context"
	"fmt"
	"time"

	"gridlearn/agent"
	env "gridlearn/environment"
	"gridlearn/experiment/trackers"
	"gridlearn/timestep"
	"gridlearn/utils/progressbar"
)

// progressBarWidth is the character width of the optional training
// progress bar
const progressBarWidth int = 45

// Episodic is a training run that trains an agent online for a fixed
// budget of episodes. Each episode runs until the environment reports
// a terminal state or cuts the episode off at a step limit.
//
// The run is fully sequential: action selection, the environment step,
// and the agent's update form one synchronous chain. Cancellation of
// the run's context is observed between steps, so a cancelled run
// always leaves the agent's last completed update intact.
type Episodic struct {
	environment env.Environment
	agent       agent.Agent
	episodes    int

	// tdErrorer is non-nil when the agent can report TD errors, in
	// which case per-episode losses are recorded
	tdErrorer agent.TdErrorer

	// explore is non-nil when the agent exposes an exploration rate,
	// in which case the rate in force during each episode is recorded.
	// decay is non-nil when the rate is also decayed across episodes.
	explore agent.EpsilonGreedier
	decay   *BudgetDecay

	trackers []trackers.Tracker
	progress *progressbar.ProgressBar
}

// NewEpisodic returns a new Episodic training run of the agent a on
// environment e, lasting for the given budget of episodes. The t
// parameter determines which additional data the run tracks and saves.
func NewEpisodic(e env.Environment, a agent.Agent, episodes int,
	t ...trackers.Tracker) (*Episodic, error) {
	if episodes <= 0 {
		return nil, fmt.Errorf("newepisodic: episode budget must be "+
			"positive (got %d)", episodes)
	}

	tdErrorer, _ := a.(agent.TdErrorer)
	explore, _ := a.(agent.EpsilonGreedier)

	return &Episodic{
		environment: e,
		agent:       a,
		episodes:    episodes,
		tdErrorer:   tdErrorer,
		explore:     explore,
		trackers:    t,
	}, nil
}

// Register registers a Tracker with the run so that data generated
// during the run can be tracked and saved
func (e *Episodic) Register(t trackers.Tracker) {
	e.trackers = append(e.trackers, t)
}

// DecayEpsilon enables per-episode decay of the agent's exploration
// rate according to the given schedule. The agent must expose its
// exploration rate.
func (e *Episodic) DecayEpsilon(schedule BudgetDecay) error {
	if e.explore == nil {
		return fmt.Errorf("decayepsilon: agent does not have an " +
			"adjustable exploration rate")
	}

	e.decay = &schedule
	return nil
}

// ShowProgress enables a terminal progress bar for the run
func (e *Episodic) ShowProgress() {
	e.progress = progressbar.New(progressBarWidth, e.episodes, time.Second)
}

// Run trains the agent for the run's episode budget and returns the
// per-episode statistics. If ctx is cancelled, the run stops at the
// next step boundary and returns the statistics of all completed
// episodes with the Interrupted flag set. Environment and agent errors
// are fatal to the run.
func (e *Episodic) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	if e.progress != nil {
		e.progress.Display()
		defer e.progress.Close()
	}

	for i := 0; i < e.episodes; i++ {
		epsilon := 0.0
		if e.explore != nil {
			epsilon = e.explore.Epsilon()
		}

		episodeReturn, length, loss, interrupted, err := e.runEpisode(ctx)
		if err != nil {
			return result, err
		}
		if interrupted {
			result.Interrupted = true
			return result, nil
		}

		result.Returns = append(result.Returns, episodeReturn)
		result.Lengths = append(result.Lengths, length)
		result.Losses = append(result.Losses, loss)
		result.Epsilons = append(result.Epsilons, epsilon)

		if e.decay != nil {
			e.explore.SetEpsilon(e.decay.Next(e.explore.Epsilon(), i))
		}
		if e.progress != nil {
			e.progress.Increment()
		}
	}

	return result, nil
}

// SaveData saves all the data cached by the run's Trackers to disk
func (e *Episodic) SaveData() {
	for _, tracker := range e.trackers {
		tracker.Save()
	}
}

// runEpisode runs a single episode and returns its cumulative reward,
// length, and accumulated squared TD error. The interrupted return is
// true if the episode was cut short by context cancellation, in which
// case the other returns hold partial data that the caller discards.
func (e *Episodic) runEpisode(ctx context.Context) (episodeReturn float64,
	length int, loss float64, interrupted bool, err error) {
	step := e.environment.Reset()
	if err := e.agent.ObserveFirst(step); err != nil {
		return 0, 0, 0, false, fmt.Errorf("runepisode: %v", err)
	}
	e.track(step)

	for !step.Last() {
		// Cancellation is checked between steps only, never during an
		// update
		select {
		case <-ctx.Done():
			return episodeReturn, length, loss, true, nil
		default:
		}

		action := e.agent.SelectAction(step)
		nextStep, _, err := e.environment.Step(action)
		if err != nil {
			return 0, 0, 0, false, fmt.Errorf("runepisode: could not "+
				"step environment: %v", err)
		}

		if err := e.agent.Observe(action, nextStep); err != nil {
			return 0, 0, 0, false, fmt.Errorf("runepisode: %v", err)
		}

		// Measure the TD error under the pre-update weights, so the
		// recorded loss is the one the update was computed from
		if e.tdErrorer != nil {
			transition := timestep.NewTransition(step, int(action.AtVec(0)),
				nextStep)
			tdError := e.tdErrorer.TdError(transition)
			loss += tdError * tdError
		}

		if err := e.agent.Step(); err != nil {
			return 0, 0, 0, false, fmt.Errorf("runepisode: could not "+
				"update agent: %v", err)
		}

		e.track(nextStep)
		episodeReturn += nextStep.Reward
		length++
		step = nextStep
	}

	e.agent.EndEpisode()
	return episodeReturn, length, loss, false, nil
}

// track caches the current timestep's data in each Tracker
func (e *Episodic) track(t timestep.TimeStep) {
	for _, tracker := range e.trackers {
		tracker.Track(t)
	}
}
