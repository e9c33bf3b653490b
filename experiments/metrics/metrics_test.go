package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"isolation/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("alphabeta", "composite")
	c.AddNode()
	c.AddNode()
	c.AddEvaluation()
	c.AddCutoff()
	c.CompleteDepth(2)
	c.CompleteDepth(1)

	metric := c.Complete()

	require.Equal(t, "alphabeta", metric.Algorithm)
	require.Equal(t, "composite", metric.Evaluator)
	require.Equal(t, 2, metric.Nodes)
	require.Equal(t, 1, metric.Evaluations)
	require.Equal(t, 1, metric.Cutoffs)
	require.Equal(t, 2, metric.Depth, "Depth should be the deepest completed depth")
	require.False(t, metric.Aborted)
	require.GreaterOrEqual(t, metric.Duration, time.Duration(0))

	c.Abort()
	require.True(t, c.Complete().Aborted)

	c.Start("minimax", "aggressive")
	require.Equal(t, 0, c.Complete().Nodes, "Start should reset the counters")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("alphabeta", "composite")
	c.AddNode()
	c.CompleteDepth(3)

	require.Equal(t, SearchMetric{}, c.Complete())
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "tournament")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "tournament"), filepath.Dir(w.Dir()))

	require.NoError(t, w.WriteAgents([]AgentRecord{{ID: 1, Name: "ID_Composite", Description: "alphabeta/composite/iterative"}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{{
		ID:     1,
		Agent1: 1,
		Agent2: 10,
		GameMetric: GameMetric{
			StartingPlayer: game.Player1,
			Winner:         game.Player2,
			TotalMoves:     17,
		},
	}}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{{
		Game: 1,
		MoveMetric: MoveMetric{
			Step:   3,
			Player: game.Player1,
			Move:   game.Move{Row: 2, Col: 4},
			SearchMetric: SearchMetric{
				Algorithm: "alphabeta",
				Nodes:     120,
				Depth:     4,
			},
		},
	}}))
	require.NoError(t, w.WriteResults([]MatchupResult{{TestAgent: "ID_Composite", Baseline: "Random", Wins: 3, Losses: 1}}))

	agents := readCSV(t, filepath.Join(w.Dir(), "agents.csv"))
	require.Equal(t, [][]string{
		{"id", "name", "description"},
		{"1", "ID_Composite", "alphabeta/composite/iterative"},
	}, agents)

	games := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, games, 2)
	require.Equal(t, []string{"1", "1", "10", "1", "2", "false"}, games[1][:6])
	require.Equal(t, "17", games[1][9])

	moves := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Len(t, moves, 2)
	require.Equal(t, []string{"1", "3", "1", "2", "4", "alphabeta"}, moves[1][:6])
	require.Equal(t, "120", moves[1][8])
	require.Equal(t, "4", moves[1][11])

	results := readCSV(t, filepath.Join(w.Dir(), "results.csv"))
	require.Equal(t, []string{"ID_Composite", "Random", "3", "1", "0.7500"}, results[1][:5])
	require.Len(t, results[1], 7, "Results should include the 95% interval")
}

func TestWinRate(t *testing.T) {
	require.Equal(t, 0.0, MatchupResult{}.WinRate())
	require.Equal(t, 0.5, MatchupResult{Wins: 2, Losses: 2}.WinRate())
}

func TestZVal(t *testing.T) {
	require.InDelta(t, 1.96, ZVal(95), 0.001)
	require.InDelta(t, 2.576, ZVal(99), 0.001)
}

func TestWinRateInterval(t *testing.T) {
	low, high := MatchupResult{}.WinRateInterval(95)
	require.Equal(t, 0.0, low)
	require.Equal(t, 1.0, high)

	r := MatchupResult{Wins: 7, Losses: 3}
	low, high = r.WinRateInterval(95)
	require.Less(t, low, r.WinRate())
	require.Greater(t, high, r.WinRate())
	require.InDelta(t, 0.3968, low, 0.001)
	require.InDelta(t, 0.8922, high, 0.001)

	low, high = MatchupResult{Wins: 10}.WinRateInterval(95)
	require.Less(t, low, 1.0, "A perfect record should not be certain")
	require.InDelta(t, 1.0, high, 1e-9)
}
