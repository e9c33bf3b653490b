package searcher

import (
	"math"
	"testing"
	"time"

	"isolation/experiments/metrics"
	"isolation/game"

	"github.com/stretchr/testify/require"
)

// treeNode is a hand-built game tree. score is read by treeScore from the
// root player's perspective.
type treeNode struct {
	score    float64
	children []*treeNode
}

func tree(score float64, children ...*treeNode) *treeNode {
	return &treeNode{score: score, children: children}
}

type treeState struct {
	node   *treeNode
	active game.Player
}

func (s treeState) ActivePlayer() game.Player {
	return s.active
}

func (s treeState) LegalMoves(player game.Player) []game.Move {
	moves := make([]game.Move, len(s.node.children))
	for i := range s.node.children {
		moves[i] = game.Move{Row: 0, Col: i}
	}
	return moves
}

func (s treeState) ForecastMove(move game.Move) game.State {
	return treeState{node: s.node.children[move.Col], active: s.Opponent(s.active)}
}

func (s treeState) PlayerLocation(player game.Player) (game.Cell, bool) {
	return game.Cell{}, true
}

func (s treeState) Opponent(player game.Player) game.Player {
	if player == game.Player1 {
		return game.Player2
	}
	return game.Player1
}

func (s treeState) IsWinner(player game.Player) bool {
	return player != s.active && len(s.node.children) == 0
}

func (s treeState) IsLoser(player game.Player) bool {
	return player == s.active && len(s.node.children) == 0
}

var treeScore = game.EvaluatorFunc(func(s game.State, player game.Player) float64 {
	return s.(treeState).node.score
})

// classicTree is the textbook two-ply example: minimax value 3 via the first
// move, and alpha-beta prunes two leaves.
func classicTree() treeState {
	root := tree(0,
		tree(1, tree(3), tree(12), tree(8)),
		tree(5, tree(2), tree(4), tree(6)),
		tree(3, tree(14), tree(5), tree(2)),
	)
	return treeState{node: root, active: game.Player1}
}

func newTreeSearcher(algorithm Algorithm) *Searcher {
	return NewSearcher(
		WithAlgorithm(algorithm),
		WithEvaluator("tree", treeScore),
		WithMetrics(metrics.NewCollector()),
	)
}

func TestMinimax(t *testing.T) {
	t.Run("two plies", func(t *testing.T) {
		s := newTreeSearcher(Minimax)

		result, depth, err := s.Fixed(classicTree(), 2, Unlimited)

		require.NoError(t, err)
		require.Equal(t, 2, depth)
		require.Equal(t, Result{Score: 3, Move: game.Move{Row: 0, Col: 0}}, result)

		metric := s.Metrics().Complete()
		require.Equal(t, 13, metric.Nodes, "Minimax should visit every node")
		require.Equal(t, 9, metric.Evaluations, "Minimax should evaluate every leaf")
		require.Equal(t, 0, metric.Cutoffs)
		require.Equal(t, 2, metric.Depth)
		require.False(t, metric.Aborted)
	})

	t.Run("one ply evaluates the children", func(t *testing.T) {
		s := newTreeSearcher(Minimax)

		result, err := s.Search(classicTree(), 1, Unlimited)

		require.NoError(t, err)
		require.Equal(t, Result{Score: 5, Move: game.Move{Row: 0, Col: 1}}, result)
	})

	t.Run("ties go to the first move", func(t *testing.T) {
		root := treeState{node: tree(0, tree(7), tree(7), tree(7)), active: game.Player1}

		result, err := newTreeSearcher(Minimax).Search(root, 1, Unlimited)

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 0}, result.Move)
	})

	t.Run("terminal nodes score the side to move as lost", func(t *testing.T) {
		// After the second move the opponent is stuck; after the first the
		// root player is stuck
		root := treeState{node: tree(0,
			tree(0, tree(0)),
			tree(0),
		), active: game.Player1}

		result, err := newTreeSearcher(Minimax).Search(root, 3, Unlimited)

		require.NoError(t, err)
		require.Equal(t, Result{Score: math.Inf(1), Move: game.Move{Row: 0, Col: 1}}, result)
	})
}

func TestSearchLeaves(t *testing.T) {
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		t.Run(algorithm.String()+" with depth zero", func(t *testing.T) {
			result, err := newTreeSearcher(algorithm).Search(classicTree(), 0, Unlimited)

			require.NoError(t, err)
			require.Equal(t, Result{Score: 0, Move: game.NoMove}, result,
				"Depth zero should evaluate the root without choosing a move")
		})

		t.Run(algorithm.String()+" without legal moves", func(t *testing.T) {
			root := treeState{node: tree(-2), active: game.Player1}

			result, err := newTreeSearcher(algorithm).Search(root, 3, Unlimited)

			require.NoError(t, err)
			require.Equal(t, game.NoMove, result.Move)
		})
	}
}

func TestEvaluatorOnlyAtCutoff(t *testing.T) {
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		t.Run(algorithm.String(), func(t *testing.T) {
			var evaluated []*treeNode
			recorder := game.EvaluatorFunc(func(s game.State, player game.Player) float64 {
				node := s.(treeState).node
				evaluated = append(evaluated, node)
				return node.score
			})
			s := NewSearcher(WithAlgorithm(algorithm), WithEvaluator("recorder", recorder))
			root := classicTree()

			_, err := s.Search(root, 2, Unlimited)

			require.NoError(t, err)
			require.NotEmpty(t, evaluated)
			for _, node := range evaluated {
				require.Empty(t, node.children, "Only nodes at the depth limit should be evaluated")
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		parsed, err := ParseAlgorithm(algorithm.String())
		require.NoError(t, err)
		require.Equal(t, algorithm, parsed)
	}

	_, err := ParseAlgorithm("expectimax")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestDeadline(t *testing.T) {
	for _, algorithm := range []Algorithm{Minimax, AlphaBeta} {
		t.Run(algorithm.String()+" aborts when time is up", func(t *testing.T) {
			noTime := func() time.Duration { return 0 }

			_, err := newTreeSearcher(algorithm).Search(classicTree(), 2, noTime)

			require.ErrorIs(t, err, ErrSearchAborted)
		})

		t.Run(algorithm.String()+" aborts below the threshold", func(t *testing.T) {
			fiveMs := func() time.Duration { return 5 * time.Millisecond }

			_, err := NewSearcher(WithAlgorithm(algorithm)).Search(classicTree(), 2, fiveMs)
			require.ErrorIs(t, err, ErrSearchAborted, "Default threshold is 10ms")

			s := NewSearcher(WithAlgorithm(algorithm), WithEvaluator("tree", treeScore), WithThreshold(time.Millisecond))
			_, err = s.Search(classicTree(), 2, fiveMs)
			require.NoError(t, err)
		})
	}

	t.Run("countdown", func(t *testing.T) {
		timeLeft := Countdown(time.Hour)
		require.Greater(t, timeLeft(), 59*time.Minute)
		require.LessOrEqual(t, timeLeft(), time.Hour)

		require.True(t, deadline{timeLeft: Countdown(0), threshold: time.Millisecond}.expired())
		require.False(t, deadline{threshold: time.Hour}.expired(), "A missing clock never expires")
	})
}
