package experiment

// Result holds the per-episode statistics of a training run. A
// training run returns its statistics explicitly rather than
// accumulating them in shared state, so concurrent runs never
// interfere with each other's data.
//
// All slices are indexed by episode and hold data for completed
// episodes only: if a run is interrupted mid-episode, the partial
// episode's statistics are discarded and Interrupted is set.
type Result struct {
	// Returns holds the cumulative reward of each episode
	Returns []float64

	// Lengths holds the number of environment steps in each episode
	Lengths []int

	// Losses holds the accumulated squared TD error of each episode,
	// measured before each update was applied
	Losses []float64

	// Epsilons holds the exploration rate that was in force during
	// each episode
	Epsilons []float64

	// Interrupted indicates that the run was cancelled before its
	// episode budget was exhausted
	Interrupted bool
}

// Episodes returns the number of completed episodes in the run
func (r *Result) Episodes() int {
	return len(r.Returns)
}
