package agent

import (
	"isolation/game"
	"isolation/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal
// moves. The same seed replays the same moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) ChooseMove(state game.State, legalMoves []game.Move, timeLeft searcher.TimeLeft) game.Move {
	if len(legalMoves) == 0 {
		return game.NoMove
	}
	return legalMoves[a.rng.Intn(len(legalMoves))]
}
