package agent

import (
	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option func(a *SearchAgent)

// WithFixedDepth searches once to depth instead of deepening iteratively.
func WithFixedDepth(depth int) Option {
	return func(a *SearchAgent) {
		if depth > 0 {
			a.depth = depth
		}
	}
}

// WithOpening overrides the cell preferred as the opening move. By default
// the agent prefers the centre of the board.
func WithOpening(cell game.Cell) Option {
	return func(a *SearchAgent) {
		a.opening = &cell
	}
}

// SearchAgent plays the move found by minimax or alpha-beta search within the
// turn's time budget. It is not safe for concurrent use.
type SearchAgent struct {
	searcher *searcher.Searcher
	depth    int // Fixed search depth, 0 for iterative deepening
	opening  *game.Cell
	last     metrics.SearchMetric
}

// NewSearchAgent returns an agent that deepens iteratively unless a fixed
// depth is given.
func NewSearchAgent(s *searcher.Searcher, options ...Option) *SearchAgent {
	a := &SearchAgent{searcher: s}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *SearchAgent) Iterative() bool {
	return a.depth == 0
}

func (a *SearchAgent) ChooseMove(state game.State, legalMoves []game.Move, timeLeft searcher.TimeLeft) game.Move {
	a.last = metrics.SearchMetric{}
	if len(legalMoves) == 0 {
		return game.NoMove
	}

	// Fallback in case not even a depth 1 search completes
	move := a.openingMove(state, legalMoves)

	self := state.ActivePlayer()
	_, selfPlaced := state.PlayerLocation(self)
	_, oppPlaced := state.PlayerLocation(state.Opponent(self))
	if !selfPlaced || !oppPlaced {
		// Positions cannot be evaluated before both players are placed
		return move
	}

	var (
		result searcher.Result
		depth  int
		err    error
	)
	if a.Iterative() {
		result, depth, err = a.searcher.Deepen(state, timeLeft)
	} else {
		result, depth, err = a.searcher.Fixed(state, a.depth, timeLeft)
	}
	a.last = a.searcher.Metrics().Complete()

	// An aborted search still reports the deepest completed depth, if any.
	// The search expands state's own legal moves, so a move the caller did
	// not offer is ignored.
	if depth > 0 && result.Move != game.NoMove && lo.Contains(legalMoves, result.Move) {
		move = result.Move
	}
	log.Debug().Err(err).Msgf("%v chose %v at depth %d (score %v)", self, move, depth, result.Score)
	return move
}

func (a *SearchAgent) LastMetrics() metrics.SearchMetric {
	return a.last
}

// openingMove prefers the configured opening cell, or the centre of a board,
// and falls back to the first legal move.
func (a *SearchAgent) openingMove(state game.State, legalMoves []game.Move) game.Move {
	var preferred game.Cell
	switch {
	case a.opening != nil:
		preferred = *a.opening
	default:
		board, ok := state.(*game.Board)
		if !ok {
			return legalMoves[0]
		}
		preferred = board.Center()
	}

	if lo.Contains(legalMoves, preferred) {
		return preferred
	}
	return legalMoves[0]
}
