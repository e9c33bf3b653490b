package experiments

import (
	"fmt"
	"time"

	"isolation/config"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// RunThroughputExperiment plays numGames self-play games for every search
// agent in cfg and reports the nodes each one visits per second.
func RunThroughputExperiment(cfg config.Config, numGames int) (map[string]float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Same config for both players in each game
	// for the same playing strength and similar game length
	configs := lo.Filter(append(append([]config.AgentConfig{}, cfg.TestAgents...), cfg.Baselines...),
		func(a config.AgentConfig, _ int) bool { return a.Kind == config.KindSearch })

	log.Info().Msg("starting throughput experiment...")

	t := NewTournament(cfg)
	throughput := map[string]float64{}
	for _, ac := range configs {
		log.Info().Msgf("starting self-play of agent %s...", ac.Name)

		before := len(t.moveRecords)
		for i := 0; i < numGames; i++ {
			agent1, err := agent.New(ac, cfg.Threshold, t.rng.Uint64())
			if err != nil {
				return nil, err
			}
			agent2, err := agent.New(ac, cfg.Threshold, t.rng.Uint64())
			if err != nil {
				return nil, err
			}

			board := game.NewBoard(cfg.Board.Width, cfg.Board.Height)
			e := engine.LocalEngine([]agent.Agent{agent1, agent2}, board, cfg.TimeLimit)
			winner, gameMetric, moveMetrics := e.Run()
			t.record([2]int{ac.ID, ac.ID}, gameMetric, moveMetrics)

			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, numGames, winner)
		}

		moves := t.moveRecords[before:]
		nodes := lo.SumBy(moves, func(r metrics.MoveRecord) int { return r.Nodes })
		elapsed := lo.SumBy(moves, func(r metrics.MoveRecord) time.Duration { return r.Duration })
		rate := 0.0
		if elapsed > 0 {
			rate = float64(nodes) / elapsed.Seconds()
		}
		throughput[ac.Name] = rate
		log.Info().Msgf("agent %s visited %d nodes in %v (%.0f nodes/s)", ac.Name, nodes, elapsed, rate)
	}

	log.Info().Msg("completed throughput experiment")

	if cfg.OutputDir == "" {
		return throughput, nil
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "throughput")
	if err != nil {
		return throughput, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	agents := lo.Map(configs, func(a config.AgentConfig, _ int) metrics.AgentRecord {
		return metrics.AgentRecord{ID: a.ID, Name: a.Name, Description: describe(a)}
	})
	if err := writer.WriteAgents(agents); err != nil {
		return throughput, fmt.Errorf("failed to store agents: %w", err)
	}
	if err := writer.WriteGameRecords(t.gameRecords); err != nil {
		return throughput, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(t.moveRecords); err != nil {
		return throughput, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return throughput, nil
}
