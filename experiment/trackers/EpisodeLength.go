package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "gridlearn/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in a training
// run.
// Note that an episode must finish for this Tracker to record its data.
// If the last episode in a run does not finish, that episode's length
// is not saved.
type EpisodeLength struct {
	episodeLengths []float64
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) Tracker {
	var saver EpisodeLength
	saver.filename = filename
	return &saver
}

// Track tracks the episode lengths of a training run. The length of an
// episode is recorded when the episode's last timestep is tracked;
// timesteps in the middle of an episode are ignored.
//
// Lengths are stored as float64 so that LoadData can decode the saved
// data uniformly.
func (e *EpisodeLength) Track(t ts.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, float64(t.Number))
	}
}

// Save saves the data tracked by the EpisodeLength Tracker to disk.
func (e *EpisodeLength) Save() {
	file, err := os.Create(e.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(e.episodeLengths); err != nil {
		log.Fatalf("could not encode episode length data: %v", err)
	}
}
