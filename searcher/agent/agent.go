package agent

import (
	"fmt"
	"time"

	"isolation/config"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
)

type Agent interface {
	// ChooseMove returns one of legalMoves, or game.NoMove if legalMoves is
	// empty. It must return before timeLeft reaches zero.
	ChooseMove(state game.State, legalMoves []game.Move, timeLeft searcher.TimeLeft) game.Move
}

// Reporter is implemented by agents that collect search metrics.
type Reporter interface {
	// LastMetrics describes the most recent ChooseMove call.
	LastMetrics() metrics.SearchMetric
}

// New builds the agent described by cfg. Search and remote agents give up
// once less than threshold is left; random agents draw from seed.
func New(cfg config.AgentConfig, threshold time.Duration, seed uint64) (Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case config.KindRandom:
		return NewRandomAgent(seed), nil
	case config.KindRemote:
		return NewRemoteAgent(cfg.URL, threshold), nil
	case config.KindSearch:
		algorithm, err := searcher.ParseAlgorithm(cfg.Algorithm)
		if err != nil {
			return nil, err
		}
		evaluator, err := game.EvaluatorByName(cfg.Evaluator)
		if err != nil {
			return nil, err
		}
		s := searcher.NewSearcher(
			searcher.WithAlgorithm(algorithm),
			searcher.WithEvaluator(cfg.Evaluator, evaluator),
			searcher.WithThreshold(threshold),
			searcher.WithMetrics(metrics.NewCollector()),
		)
		var options []Option
		if !cfg.Iterative {
			options = append(options, WithFixedDepth(cfg.Depth))
		}
		return NewSearchAgent(s, options...), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", cfg.Kind)
	}
}
