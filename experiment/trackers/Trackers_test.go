package trackers

import (
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	ts "gridlearn/timestep"
)

// step returns the n'th timestep of an episode with the given reward;
// last marks the episode's final step
func step(n int, reward float64, last bool) ts.TimeStep {
	stepType := ts.Mid
	if n == 0 {
		stepType = ts.First
	} else if last {
		stepType = ts.Last
	}
	return ts.New(stepType, reward, 1.0, mat.NewVecDense(1, nil), n)
}

func TestReturnTracksEpisodes(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := NewReturn(filename)

	// Two episodes with returns 3.0 and 1.0
	tracker.Track(step(0, 0, false))
	tracker.Track(step(1, 1, false))
	tracker.Track(step(2, 2, true))

	tracker.Track(step(0, 0, false))
	tracker.Track(step(1, 1, true))

	tracker.Save()

	data := LoadData(filename)
	want := []float64{3.0, 1.0}
	if len(data) != len(want) {
		t.Fatalf("loaded %d returns, expected %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("return[%d] = %v, expected %v", i, data[i], want[i])
		}
	}
}

// Unfinished episodes are not recorded
func TestReturnIgnoresUnfinishedEpisode(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	tracker := NewReturn(filename)

	tracker.Track(step(0, 0, false))
	tracker.Track(step(1, 1, true))

	tracker.Track(step(0, 0, false))
	tracker.Track(step(1, 5, false)) // episode never finishes

	tracker.Save()

	data := LoadData(filename)
	if len(data) != 1 || data[0] != 1.0 {
		t.Errorf("loaded returns %v, expected [1]", data)
	}
}

func TestReturnPanicsOnNonSequentialSteps(t *testing.T) {
	tracker := NewReturn("unused")
	tracker.Track(step(0, 0, false))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on non-sequential timesteps")
		}
	}()
	tracker.Track(step(5, 0, false))
}

func TestEpisodeLength(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	tracker := NewEpisodeLength(filename)

	// Episodes of lengths 2 and 3
	tracker.Track(step(0, 0, false))
	tracker.Track(step(1, 0, false))
	tracker.Track(step(2, 0, true))

	tracker.Track(step(0, 0, false))
	tracker.Track(step(1, 0, false))
	tracker.Track(step(2, 0, false))
	tracker.Track(step(3, 0, true))

	tracker.Save()

	data := LoadData(filename)
	want := []float64{2, 3}
	if len(data) != len(want) {
		t.Fatalf("loaded %d lengths, expected %d", len(data), len(want))
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("length[%d] = %v, expected %v", i, data[i], want[i])
		}
	}
}
