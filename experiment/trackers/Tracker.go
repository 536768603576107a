// Package trackers implements Trackers, which record data generated
// during a training run and save it to disk
package trackers

import (
	"encoding/gob"
	"log"
	"os"

	ts "gridlearn/timestep"
)

// Tracker keeps track of training run data and saves the data once the
// run has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) []float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data []float64

	err = dec.Decode(&data)
	if err != nil {
		log.Fatalf("could not decode data: %v", err)
	}

	return data
}
