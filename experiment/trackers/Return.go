package trackers

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"

	ts "gridlearn/timestep"
)

// Return tracks and saves the episodic return of a training run. When
// an environment returns a TimeStep, this Tracker extracts the reward
// and accumulates the return for each episode in the run.
//
// Note: an episode must finish for this Tracker to record its data.
// If the last episode in a run does not finish, that episode's return
// is not saved.
type Return struct {
	lastTimeStep   int
	currentReturn  float64
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker
func NewReturn(filename string) Tracker {
	var saver Return
	saver.lastTimeStep = -1
	saver.filename = filename
	return &saver
}

// Track tracks the reward seen on a timestep. By calling this method
// on every timestep, the Tracker accumulates the rewards seen in the
// episode and records the cumulative reward of each finished episode
// as its return. A new episode is detected automatically from the
// timestep numbering.
//
// Track panics if it is called on non-sequential timesteps
func (r *Return) Track(step ts.TimeStep) {
	// Ensure that Track is called on sequential timesteps
	if r.lastTimeStep+1 != step.Number {
		msg := fmt.Sprintf("warning: last two timesteps tracked are not "+
			"sequential: timestep %v --> timestep %v were tracked",
			r.lastTimeStep, step.Number)
		panic(msg)
	}

	if !step.Last() {
		r.currentReturn += step.Reward
		r.lastTimeStep = step.Number
	} else {
		// Episode has ended, record the return and begin tracking the
		// return of a new episode
		r.currentReturn += step.Reward
		r.episodeReturns = append(r.episodeReturns, r.currentReturn)

		r.currentReturn = 0.0
		r.lastTimeStep = -1
	}
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() {
	file, err := os.Create(r.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(r.episodeReturns); err != nil {
		log.Fatalf("could not encode return data: %v", err)
	}
}
