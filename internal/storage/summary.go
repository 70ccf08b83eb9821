package storage

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of run totals.
type Summary struct {
	Runs   int
	Best   int
	Mean   float64
	StdDev float64
	Median float64
}

// Summarize computes distribution statistics over the totals of entries.
// An empty slice yields the zero Summary.
func Summarize(entries []ScoreEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	totals := make([]float64, len(entries))
	best := 0
	for i, e := range entries {
		totals[i] = float64(e.Total())
		best = max(best, e.Total())
	}

	sum := Summary{Runs: len(entries), Best: best}
	sum.Mean, sum.StdDev = stat.MeanStdDev(totals, nil)
	if len(totals) < 2 {
		sum.StdDev = 0
	}

	slices.Sort(totals)
	sum.Median = stat.Quantile(0.5, stat.Empirical, totals, nil)
	return sum
}
