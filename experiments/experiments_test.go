package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"isolation/config"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func smallConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Board = config.BoardConfig{Width: 5, Height: 5}
	cfg.TimeLimit = time.Second
	cfg.NumMatches = 2
	cfg.OutputDir = t.TempDir()
	cfg.TestAgents = []config.AgentConfig{
		{ID: 1, Name: "AB_Composite", Kind: config.KindSearch, Algorithm: "alphabeta", Evaluator: "composite", Depth: 2},
	}
	cfg.Baselines = []config.AgentConfig{
		{ID: 10, Name: "Random", Kind: config.KindRandom},
		{ID: 11, Name: "MM_Aggressive", Kind: config.KindSearch, Algorithm: "minimax", Evaluator: "aggressive", Depth: 1},
	}
	return cfg
}

func TestTournament(t *testing.T) {
	cfg := smallConfig(t)
	tournament := NewTournament(cfg)

	results, err := tournament.Run()

	require.NoError(t, err)
	require.Len(t, results, 2, "One result per test agent and baseline")
	for _, r := range results {
		require.Equal(t, "AB_Composite", r.TestAgent)
		require.Equal(t, 2*cfg.NumMatches, r.Wins+r.Losses, "Each match is two games")
	}

	games, moves := tournament.Records()
	require.Len(t, games, 2*2*cfg.NumMatches)
	require.NotEmpty(t, moves)
	require.Equal(t, 1, games[0].Agent1, "Test agent should start the first game")
	require.Equal(t, 10, games[1].Agent1, "Seats should be swapped in the second game")

	dirs, err := os.ReadDir(filepath.Join(cfg.OutputDir, "tournament"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	for _, name := range []string{"agents.csv", "game_records.csv", "move_records.csv", "results.csv"} {
		require.FileExists(t, filepath.Join(cfg.OutputDir, "tournament", dirs[0].Name(), name))
	}
}

func TestRandomOpeningsAreSeeded(t *testing.T) {
	cfg := smallConfig(t)
	a := rand.New(rand.NewSource(cfg.Seed))
	b := rand.New(rand.NewSource(cfg.Seed))

	for i := 0; i < 5; i++ {
		openingA := randomOpening(a, cfg.Board)
		openingB := randomOpening(b, cfg.Board)
		require.Equal(t, openingA.String(), openingB.String())
		require.Equal(t, 2, openingA.MoveCount(), "Both players should be placed")
	}
}

func TestTournamentInvalidConfig(t *testing.T) {
	cfg := smallConfig(t)
	cfg.NumMatches = 0

	_, err := NewTournament(cfg).Run()

	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestThroughputExperiment(t *testing.T) {
	cfg := smallConfig(t)

	throughput, err := RunThroughputExperiment(cfg, 1)

	require.NoError(t, err)
	require.Contains(t, throughput, "AB_Composite")
	require.Contains(t, throughput, "MM_Aggressive")
	require.NotContains(t, throughput, "Random", "Only search agents are measured")
	require.DirExists(t, filepath.Join(cfg.OutputDir, "throughput"))
}

func TestTournamentWorkers(t *testing.T) {
	sequential := smallConfig(t)
	sequential.OutputDir = ""
	parallel := sequential
	parallel.Workers = 4

	want, err := NewTournament(sequential).Run()
	require.NoError(t, err)
	got, err := NewTournament(parallel).Run()
	require.NoError(t, err)

	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].TestAgent, got[i].TestAgent, "Results should keep the configured order")
		require.Equal(t, want[i].Baseline, got[i].Baseline, "Results should keep the configured order")
	}
}
