package engine

import (
	"isolation/experiments/metrics"
	"isolation/game"
)

type Engine interface {
	// Run plays a game to the end and returns the winner
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
