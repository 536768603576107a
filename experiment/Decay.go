package experiment

// BudgetDecay is a deterministic per-episode exploration decay
// schedule whose rate depends on the total episode budget N. After
// episode i, the exploration rate is scaled by
//
//	N / (i/(N/20) + N)
//
// using floating-point division throughout. The scale factor is at
// most 1, so the rate is monotonically non-increasing across episodes
// for any N ≥ 1, and it is always positive, so the rate never reaches
// zero. The asymptotic floor depends on N: larger budgets decay more
// slowly per episode but for more episodes.
type BudgetDecay struct {
	budget float64
}

// NewBudgetDecay returns a decay schedule for a run of budget episodes
func NewBudgetDecay(budget int) BudgetDecay {
	return BudgetDecay{budget: float64(budget)}
}

// Next returns the exploration rate to use after episode i, given the
// rate epsilon that was in force during episode i
func (b BudgetDecay) Next(epsilon float64, i int) float64 {
	return epsilon * b.budget / (float64(i)/(b.budget/20.0) + b.budget)
}
