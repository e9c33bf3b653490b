package searcher

import (
	"isolation/game"
	"math"
)

// alphabeta returns the same value as minimax while skipping subtrees that
// cannot change it. alpha is the score the maximizer is already guaranteed,
// beta the score the minimizer is already guaranteed.
func (c *searchContext) alphabeta(state game.State) (Result, error) {
	if err := c.enter(); err != nil {
		return Result{}, err
	}

	moves := state.LegalMoves(state.ActivePlayer())
	if result, ok := c.leaf(state, moves); ok {
		return result, nil
	}

	// The root is a maximizing node that never cuts: beta stays +Inf and
	// alpha follows the best score so far.
	best := Result{Score: negInf, Move: moves[0]}
	for _, move := range moves {
		v, err := c.alphaBetaMin(state.ForecastMove(move), 1, best.Score, posInf)
		if err != nil {
			return Result{}, err
		}
		if v > best.Score {
			best = Result{Score: v, Move: move}
		}
	}
	return best, nil
}

func (c *searchContext) alphaBetaMax(state game.State, ply int, alpha, beta float64) (float64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	if v, ok := c.cutoff(state, ply); ok {
		return v, nil
	}

	v := negInf
	for _, move := range state.LegalMoves(state.ActivePlayer()) {
		child, err := c.alphaBetaMin(state.ForecastMove(move), ply+1, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = math.Max(v, child)
		if v >= beta {
			c.metrics.AddCutoff()
			return v, nil
		}
		alpha = math.Max(alpha, v)
	}
	return v, nil
}

func (c *searchContext) alphaBetaMin(state game.State, ply int, alpha, beta float64) (float64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	if v, ok := c.cutoff(state, ply); ok {
		return v, nil
	}

	v := posInf
	for _, move := range state.LegalMoves(state.ActivePlayer()) {
		child, err := c.alphaBetaMax(state.ForecastMove(move), ply+1, alpha, beta)
		if err != nil {
			return 0, err
		}
		v = math.Min(v, child)
		if v <= alpha {
			c.metrics.AddCutoff()
			return v, nil
		}
		beta = math.Min(beta, v)
	}
	return v, nil
}
