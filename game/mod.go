package game

import "fmt"

// Player identifies one of the two seats, 1 or 2. The zero value is no player.
type Player int

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

func (p Player) String() string {
	return fmt.Sprintf("Player%d", int(p))
}

// Cell is a board coordinate.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Move is the cell the active player moves to.
type Move = Cell

// NoMove is returned by agents that have no legal moves.
var NoMove = Move{Row: -1, Col: -1}

// State should be immutable - ForecastMove always returns a new copy and never
// modifies the receiver.
type State interface {
	// ActivePlayer is the player to move.
	ActivePlayer() Player
	// LegalMoves lists the moves available to player in a stable order.
	LegalMoves(player Player) []Move
	// ForecastMove returns the state after the active player plays move.
	ForecastMove(move Move) State
	// PlayerLocation returns false if the player has not been placed yet.
	PlayerLocation(player Player) (Cell, bool)
	Opponent(player Player) Player
	IsWinner(player Player) bool
	IsLoser(player Player) bool
}

// Evaluator scores a state from the perspective of player. Implementations
// must be pure: they may read positions and legal move counts but never
// search deeper.
type Evaluator interface {
	Evaluate(state State, player Player) float64
}

// EvaluatorFunc adapts a plain function to an Evaluator.
type EvaluatorFunc func(state State, player Player) float64

func (f EvaluatorFunc) Evaluate(state State, player Player) float64 {
	return f(state, player)
}
