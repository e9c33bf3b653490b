package searcher

import "time"

// TimeLeft reports the time remaining in the current turn. It is polled at
// every node and must never block.
type TimeLeft func() time.Duration

// Countdown returns a TimeLeft that starts counting down from budget now.
func Countdown(budget time.Duration) TimeLeft {
	start := time.Now()
	return func() time.Duration {
		return budget - time.Since(start)
	}
}

// Unlimited never runs out. Useful for fixed-depth analysis and tests.
func Unlimited() time.Duration {
	return time.Duration(1<<63 - 1)
}

type deadline struct {
	timeLeft  TimeLeft
	threshold time.Duration
}

func (d deadline) expired() bool {
	if d.timeLeft == nil {
		return false
	}
	return d.timeLeft() < d.threshold
}
