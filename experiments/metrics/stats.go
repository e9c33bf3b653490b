package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// WinRateInterval is the Wilson score interval of the win rate at the given
// confidence, in percent. With no games played the interval is [0, 1].
func (r MatchupResult) WinRateInterval(confidence float64) (low, high float64) {
	n := float64(r.Wins + r.Losses)
	if n == 0 {
		return 0, 1
	}

	z := ZVal(confidence)
	p := r.WinRate()
	denominator := 1 + z*z/n
	centre := (p + z*z/(2*n)) / denominator
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denominator
	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}
