package searcher

import (
	"isolation/game"
	"math"
)

// minimax alternates maximizing layers, where the root player moves, with
// minimizing layers, where the opponent moves. The first root move reaching
// the best score wins ties.
func (c *searchContext) minimax(state game.State) (Result, error) {
	if err := c.enter(); err != nil {
		return Result{}, err
	}

	moves := state.LegalMoves(state.ActivePlayer())
	if result, ok := c.leaf(state, moves); ok {
		return result, nil
	}

	best := Result{Score: negInf, Move: moves[0]}
	for _, move := range moves {
		v, err := c.minValue(state.ForecastMove(move), 1)
		if err != nil {
			return Result{}, err
		}
		if v > best.Score {
			best = Result{Score: v, Move: move}
		}
	}
	return best, nil
}

func (c *searchContext) maxValue(state game.State, ply int) (float64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	if v, ok := c.cutoff(state, ply); ok {
		return v, nil
	}

	// With no moves left the maximizer has lost
	v := negInf
	for _, move := range state.LegalMoves(state.ActivePlayer()) {
		child, err := c.minValue(state.ForecastMove(move), ply+1)
		if err != nil {
			return 0, err
		}
		v = math.Max(v, child)
	}
	return v, nil
}

func (c *searchContext) minValue(state game.State, ply int) (float64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	if v, ok := c.cutoff(state, ply); ok {
		return v, nil
	}

	v := posInf
	for _, move := range state.LegalMoves(state.ActivePlayer()) {
		child, err := c.maxValue(state.ForecastMove(move), ply+1)
		if err != nil {
			return 0, err
		}
		v = math.Min(v, child)
	}
	return v, nil
}
