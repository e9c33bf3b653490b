package experiments

import (
	"fmt"

	"isolation/config"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Tournament pits every test agent against every baseline. Each match
// places both players on random cells, then plays two games from that
// opening with the seats swapped.
type Tournament struct {
	cfg         config.Config
	rng         *rand.Rand
	gameRecords []metrics.GameRecord
	moveRecords []metrics.MoveRecord
}

func NewTournament(cfg config.Config) *Tournament {
	return &Tournament{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

type playedGame struct {
	ids         [2]int
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

type matchup struct {
	testAgent config.AgentConfig
	baseline  config.AgentConfig
	seed      uint64
	result    metrics.MatchupResult
	games     []playedGame
}

// Run plays all matchups and, if an output directory is configured, stores
// the records as CSV files. Up to cfg.Workers matchups run at once; records
// and results keep the configured order either way.
func (t *Tournament) Run() ([]metrics.MatchupResult, error) {
	if err := t.cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().Msgf("starting tournament: %d test agents, %d baselines, %d matches each, %v per move",
		len(t.cfg.TestAgents), len(t.cfg.Baselines), t.cfg.NumMatches, t.cfg.TimeLimit)

	// Seeds are drawn up front so results do not depend on scheduling
	matchups := []*matchup{}
	for _, testAgent := range t.cfg.TestAgents {
		for _, baseline := range t.cfg.Baselines {
			matchups = append(matchups, &matchup{testAgent: testAgent, baseline: baseline, seed: t.rng.Uint64()})
		}
	}

	g := errgroup.Group{}
	g.SetLimit(t.cfg.Workers)
	for _, m := range matchups {
		m := m
		g.Go(func() error {
			return t.runMatchup(m)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]metrics.MatchupResult, 0, len(matchups))
	for _, m := range matchups {
		for _, played := range m.games {
			t.record(played.ids, played.gameMetric, played.moveMetrics)
		}
		results = append(results, m.result)
	}

	for _, testAgent := range t.cfg.TestAgents {
		mine := lo.Filter(results, func(r metrics.MatchupResult, _ int) bool {
			return r.TestAgent == testAgent.Name
		})
		wins := lo.SumBy(mine, func(r metrics.MatchupResult) int { return r.Wins })
		total := lo.SumBy(mine, func(r metrics.MatchupResult) int { return r.Wins + r.Losses })
		log.Info().Msgf("%s won %d of %d games (%.2f%%)", testAgent.Name, wins, total, 100*float64(wins)/float64(total))
	}
	log.Info().Msg("completed tournament")

	if t.cfg.OutputDir != "" {
		if err := t.store(results); err != nil {
			return results, err
		}
	}
	return results, nil
}

func (t *Tournament) runMatchup(m *matchup) error {
	testAgent, baseline := m.testAgent, m.baseline
	m.result = metrics.MatchupResult{TestAgent: testAgent.Name, Baseline: baseline.Name}
	log.Info().Msgf("starting matchup %s vs %s...", testAgent.Name, baseline.Name)

	rng := rand.New(rand.NewSource(m.seed))
	test, err := agent.New(testAgent, t.cfg.Threshold, rng.Uint64())
	if err != nil {
		return fmt.Errorf("create agent %q: %w", testAgent.Name, err)
	}
	base, err := agent.New(baseline, t.cfg.Threshold, rng.Uint64())
	if err != nil {
		return fmt.Errorf("create agent %q: %w", baseline.Name, err)
	}

	for i := 0; i < t.cfg.NumMatches; i++ {
		opening := randomOpening(rng, t.cfg.Board)
		seatings := []struct {
			agents []agent.Agent
			ids    [2]int
			test   game.Player
		}{
			{[]agent.Agent{test, base}, [2]int{testAgent.ID, baseline.ID}, game.Player1},
			{[]agent.Agent{base, test}, [2]int{baseline.ID, testAgent.ID}, game.Player2},
		}

		for _, seating := range seatings {
			e := engine.LocalEngine(seating.agents, opening.Copy(), t.cfg.TimeLimit)
			winner, gameMetric, moveMetrics := e.Run()
			m.games = append(m.games, playedGame{ids: seating.ids, gameMetric: gameMetric, moveMetrics: moveMetrics})

			if winner == seating.test {
				m.result.Wins++
			} else {
				m.result.Losses++
			}
		}
	}

	log.Info().Msgf("completed matchup %s vs %s: %d wins, %d losses", testAgent.Name, baseline.Name, m.result.Wins, m.result.Losses)
	return nil
}

// randomOpening places both players on random blank cells.
func randomOpening(rng *rand.Rand, size config.BoardConfig) *game.Board {
	board := game.NewBoard(size.Width, size.Height)
	for i := 0; i < 2; i++ {
		moves := board.LegalMoves(board.ActivePlayer())
		if len(moves) == 0 {
			break
		}
		board = board.Apply(moves[rng.Intn(len(moves))])
	}
	return board
}

func (t *Tournament) record(ids [2]int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric) {
	id := len(t.gameRecords) + 1
	t.gameRecords = append(t.gameRecords, metrics.GameRecord{
		ID:         id,
		Agent1:     ids[0],
		Agent2:     ids[1],
		GameMetric: gameMetric,
	})
	for _, mm := range moveMetrics {
		t.moveRecords = append(t.moveRecords, metrics.MoveRecord{Game: id, MoveMetric: mm})
	}
}

// Records returns every game and move played so far.
func (t *Tournament) Records() ([]metrics.GameRecord, []metrics.MoveRecord) {
	return t.gameRecords, t.moveRecords
}

func (t *Tournament) store(results []metrics.MatchupResult) error {
	writer, err := metrics.NewWriter(t.cfg.OutputDir, "tournament")
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	agents := lo.Map(append(append([]config.AgentConfig{}, t.cfg.TestAgents...), t.cfg.Baselines...),
		func(a config.AgentConfig, _ int) metrics.AgentRecord {
			return metrics.AgentRecord{ID: a.ID, Name: a.Name, Description: describe(a)}
		})
	if err := writer.WriteAgents(agents); err != nil {
		return fmt.Errorf("failed to store agents: %w", err)
	}
	if err := writer.WriteGameRecords(t.gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(t.moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteResults(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	log.Info().Msgf("stored tournament records in %s", writer.Dir())
	return nil
}

func describe(a config.AgentConfig) string {
	switch a.Kind {
	case config.KindSearch:
		if a.Iterative {
			return fmt.Sprintf("%s/%s/iterative", a.Algorithm, a.Evaluator)
		}
		return fmt.Sprintf("%s/%s/depth=%d", a.Algorithm, a.Evaluator, a.Depth)
	case config.KindRemote:
		return "remote " + a.URL
	default:
		return a.Kind
	}
}
