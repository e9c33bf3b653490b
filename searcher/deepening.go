package searcher

import (
	"isolation/game"

	"github.com/rs/zerolog/log"
)

// Deepen searches to depth 1, 2, 3, ... until the deadline aborts a search
// and returns the result of the deepest search that completed, together with
// its depth. When the deadline aborts the search, the result is returned with
// ErrSearchAborted; depth is 0 and the move is game.NoMove if not even depth 1
// completed.
//
// Deepening stops on its own once a completed search explored the whole game
// tree without reaching the depth limit, since deeper searches would repeat it.
func (s *Searcher) Deepen(state game.State, timeLeft TimeLeft) (Result, int, error) {
	s.metrics.Start(s.algorithm.String(), s.evaluatorName)

	best := Result{Score: negInf, Move: game.NoMove}
	completed := 0
	for depth := 1; ; depth++ {
		c := s.newContext(state, depth, timeLeft)
		result, err := c.run(state)
		if err != nil {
			s.metrics.Abort()
			log.Debug().Msgf("search at depth %d aborted, keeping depth %d move %v", depth, completed, best.Move)
			return best, completed, err
		}

		best = result
		completed = depth
		s.metrics.CompleteDepth(depth)
		log.Debug().Msgf("completed depth %d: move %v score %v", depth, best.Move, best.Score)

		if !c.horizon {
			log.Debug().Msgf("game tree exhausted at depth %d", depth)
			return best, completed, nil
		}
	}
}

// Fixed runs a single search at depth. On abort it returns ErrSearchAborted
// and the zero depth, leaving the caller's fallback in place.
func (s *Searcher) Fixed(state game.State, depth int, timeLeft TimeLeft) (Result, int, error) {
	s.metrics.Start(s.algorithm.String(), s.evaluatorName)

	result, err := s.Search(state, depth, timeLeft)
	if err != nil {
		s.metrics.Abort()
		return Result{Score: negInf, Move: game.NoMove}, 0, err
	}
	s.metrics.CompleteDepth(depth)
	return result, depth, nil
}
