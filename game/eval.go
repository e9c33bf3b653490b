package game

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

var (
	// Aggressive rewards closing the distance to the opponent.
	Aggressive Evaluator = EvaluatorFunc(aggressiveScore)
	// Conservative rewards keeping away from the opponent.
	Conservative Evaluator = EvaluatorFunc(conservativeScore)
	// MobilityConservative weighs the mobility difference by the distance
	// between the players. A mobility deficit flips the sign of the score no
	// matter how far apart the players are.
	MobilityConservative Evaluator = EvaluatorFunc(mobilityConservativeScore)
	// Composite is the default evaluator: it scores decided games as +/-Inf
	// and defers to MobilityConservative otherwise.
	Composite Evaluator = EvaluatorFunc(compositeScore)
)

var evaluators = map[string]Evaluator{
	"aggressive":   Aggressive,
	"conservative": Conservative,
	"mobility":     MobilityConservative,
	"composite":    Composite,
}

// EvaluatorByName looks up one of the built-in evaluators.
func EvaluatorByName(name string) (Evaluator, error) {
	evaluator, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose from %v)", ErrUnknownEvaluator, name, EvaluatorNames())
	}
	return evaluator, nil
}

// EvaluatorNames lists the registered evaluator names in sorted order.
func EvaluatorNames() []string {
	names := make([]string, 0, len(evaluators))
	for name := range evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func aggressiveScore(s State, player Player) float64 {
	return -distance(locations(s, player))
}

func conservativeScore(s State, player Player) float64 {
	return distance(locations(s, player))
}

func mobilityConservativeScore(s State, player Player) float64 {
	ownMoves := len(s.LegalMoves(player))
	oppMoves := len(s.LegalMoves(s.Opponent(player)))
	return distance(locations(s, player)) * float64(ownMoves-oppMoves)
}

func compositeScore(s State, player Player) float64 {
	if s.IsLoser(player) {
		return math.Inf(-1)
	}
	if s.IsWinner(player) {
		return math.Inf(1)
	}
	return mobilityConservativeScore(s, player)
}

// locations returns the positions of player and its opponent. Evaluating a
// state before both players are placed is a programming error.
func locations(s State, player Player) (own, opp Cell) {
	own, ok := s.PlayerLocation(player)
	if !ok {
		panic(fmt.Sprintf("%v has no location", player))
	}
	opponent := s.Opponent(player)
	opp, ok = s.PlayerLocation(opponent)
	if !ok {
		panic(fmt.Sprintf("%v has no location", opponent))
	}
	return own, opp
}

// distance is the Euclidean distance between two cells
func distance(p0, p1 Cell) float64 {
	dr := float64(p0.Row - p1.Row)
	dc := float64(p0.Col - p1.Col)
	return math.Sqrt(dr*dr + dc*dc)
}
