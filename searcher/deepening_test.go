package searcher

import (
	"testing"
	"time"

	"isolation/experiments/metrics"
	"isolation/game"

	"github.com/stretchr/testify/require"
)

// afterCalls returns a clock that runs out once it has been polled n times.
// Every search frame polls it exactly once.
func afterCalls(n int) TimeLeft {
	calls := 0
	return func() time.Duration {
		calls++
		if calls > n {
			return 0
		}
		return time.Hour
	}
}

func TestDeepen(t *testing.T) {
	t.Run("stops once the game tree is exhausted", func(t *testing.T) {
		s := newTreeSearcher(AlphaBeta)

		_, depth, err := s.Deepen(classicTree(), Unlimited)

		require.NoError(t, err)
		require.Equal(t, 3, depth, "Depth 3 is the first search that never reaches the depth limit")
		require.Equal(t, 3, s.Metrics().Complete().Depth)
	})

	t.Run("terminates on a small board", func(t *testing.T) {
		board := game.NewBoard(4, 3).
			Apply(game.Cell{Row: 0, Col: 0}).
			Apply(game.Cell{Row: 2, Col: 3})

		result, depth, err := NewSearcher(WithAlgorithm(AlphaBeta)).Deepen(board, Unlimited)

		require.NoError(t, err)
		require.LessOrEqual(t, depth, 11, "No game lasts longer than the blank cells")
		require.Contains(t, board.LegalMoves(game.Player1), result.Move)
	})

	t.Run("aborted before depth 1", func(t *testing.T) {
		s := newTreeSearcher(Minimax)

		result, depth, err := s.Deepen(classicTree(), afterCalls(0))

		require.ErrorIs(t, err, ErrSearchAborted)
		require.Equal(t, 0, depth)
		require.Equal(t, game.NoMove, result.Move)
		require.True(t, s.Metrics().Complete().Aborted)
	})

	t.Run("keeps the deepest completed result", func(t *testing.T) {
		// Depth 1 visits 4 frames, depth 2 visits 13 more
		s := newTreeSearcher(Minimax)

		result, depth, err := s.Deepen(classicTree(), afterCalls(4+5))

		require.ErrorIs(t, err, ErrSearchAborted)
		require.Equal(t, 1, depth)
		require.Equal(t, Result{Score: 5, Move: game.Move{Row: 0, Col: 1}}, result,
			"The partial depth 2 search must not leak into the result")
	})
}

func TestDeepenMatchesFixedDepth(t *testing.T) {
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		t.Run(algorithm.String(), func(t *testing.T) {
			for i, board := range randomPositions(t, 11, 4) {
				for _, budget := range []int{50, 500, 5000} {
					s := NewSearcher(WithAlgorithm(algorithm))

					result, depth, err := s.Deepen(board, afterCalls(budget))
					if err == nil {
						// The whole tree fit in the budget
						continue
					}
					require.ErrorIs(t, err, ErrSearchAborted)
					if depth == 0 {
						require.Equal(t, game.NoMove, result.Move)
						continue
					}

					want, err := s.Search(board, depth, Unlimited)
					require.NoError(t, err)
					require.Equal(t, want, result,
						"position %d with budget %d should return the depth %d result", i, budget, depth)
				}
			}
		})
	}
}

func TestFixed(t *testing.T) {
	t.Run("aborted", func(t *testing.T) {
		s := NewSearcher(WithEvaluator("tree", treeScore), WithMetrics(metrics.NewCollector()))

		result, depth, err := s.Fixed(classicTree(), 2, afterCalls(3))

		require.ErrorIs(t, err, ErrSearchAborted)
		require.Equal(t, 0, depth)
		require.Equal(t, game.NoMove, result.Move)
		require.True(t, s.Metrics().Complete().Aborted)
	})
}
