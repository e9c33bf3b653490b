package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultWidth  = 7
	DefaultHeight = 7
)

// knightDirections is the stable order in which legal moves are generated.
var knightDirections = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var ErrInvalidBoard = errors.New("invalid board")

// MaxBoardSize bounds the width and height of decoded boards.
const MaxBoardSize = 64

// Board is an Isolation board. A player that has not been placed yet may
// move to any blank cell, afterwards it moves like a chess knight. Every cell
// a player has visited stays blocked for the rest of the game.
type Board struct {
	width     int
	height    int
	blocked   []bool  // Indexed by row*width + col
	locations [3]Cell // Indexed by Player
	placed    [3]bool // Indexed by Player
	active    Player  // The player to move
	moveCount int     // Number of plies played
}

// NewBoard returns an empty board with Player1 to move.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("board dimensions must be positive, got %dx%d", width, height))
	}
	return &Board{
		width:     width,
		height:    height,
		blocked:   make([]bool, width*height),
		locations: [3]Cell{NoMove, NoMove, NoMove},
		active:    Player1,
	}
}

func (b *Board) Width() int { return b.width }

func (b *Board) Height() int { return b.height }

func (b *Board) MoveCount() int { return b.moveCount }

// Center is the middle cell of the board.
func (b *Board) Center() Cell {
	return Cell{Row: b.height / 2, Col: b.width / 2}
}

func (b *Board) Copy() *Board {
	blocked := make([]bool, len(b.blocked))
	copy(blocked, b.blocked)
	return &Board{
		width:     b.width,
		height:    b.height,
		blocked:   blocked,
		locations: b.locations,
		placed:    b.placed,
		active:    b.active,
		moveCount: b.moveCount,
	}
}

func (b *Board) ActivePlayer() Player {
	return b.active
}

func (b *Board) Opponent(player Player) Player {
	switch player {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		panic(fmt.Sprintf("unknown player %d", player))
	}
}

func (b *Board) PlayerLocation(player Player) (Cell, bool) {
	if !b.placed[player] {
		return NoMove, false
	}
	return b.locations[player], true
}

// IsBlank reports whether cell is on the board and has never been visited.
func (b *Board) IsBlank(cell Cell) bool {
	if !b.inBounds(cell) {
		return false
	}
	return !b.blocked[b.index(cell)]
}

func (b *Board) LegalMoves(player Player) []Move {
	if !b.placed[player] {
		return b.blankCells()
	}

	from := b.locations[player]
	moves := make([]Move, 0, len(knightDirections))
	for _, d := range knightDirections {
		to := Cell{Row: from.Row + d[0], Col: from.Col + d[1]}
		if b.IsBlank(to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// IsLegal reports whether the active player may play move.
func (b *Board) IsLegal(move Move) bool {
	for _, m := range b.LegalMoves(b.active) {
		if m == move {
			return true
		}
	}
	return false
}

// ForecastMove returns a copy of the board with move applied for the active
// player. Playing an illegal move is a programming error.
func (b *Board) ForecastMove(move Move) State {
	return b.Apply(move)
}

// Apply is ForecastMove with the concrete board type.
func (b *Board) Apply(move Move) *Board {
	if !b.IsLegal(move) {
		panic(fmt.Sprintf("illegal move %v for %v", move, b.active))
	}

	next := b.Copy()
	next.blocked[next.index(move)] = true
	next.locations[next.active] = move
	next.placed[next.active] = true
	next.active = next.Opponent(next.active)
	next.moveCount++
	return next
}

// IsLoser is true when player is to move and has no legal moves.
func (b *Board) IsLoser(player Player) bool {
	return player == b.active && len(b.LegalMoves(b.active)) == 0
}

// IsWinner is true when player's opponent is to move and has no legal moves.
func (b *Board) IsWinner(player Player) bool {
	return player != b.active && len(b.LegalMoves(b.active)) == 0
}

// Winner returns NoPlayer while the game is still in progress.
func (b *Board) Winner() Player {
	if len(b.LegalMoves(b.active)) > 0 {
		return NoPlayer
	}
	return b.Opponent(b.active)
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.height; row++ {
		sb.WriteString("|")
		for col := 0; col < b.width; col++ {
			cell := Cell{Row: row, Col: col}
			switch {
			case b.placed[Player1] && b.locations[Player1] == cell:
				sb.WriteString(" 1 ")
			case b.placed[Player2] && b.locations[Player2] == cell:
				sb.WriteString(" 2 ")
			case b.blocked[b.index(cell)]:
				sb.WriteString(" - ")
			default:
				sb.WriteString("   ")
			}
			sb.WriteString("|")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Board) blankCells() []Move {
	cells := make([]Move, 0, len(b.blocked))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			cell := Cell{Row: row, Col: col}
			if !b.blocked[b.index(cell)] {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

func (b *Board) inBounds(cell Cell) bool {
	return cell.Row >= 0 && cell.Row < b.height && cell.Col >= 0 && cell.Col < b.width
}

func (b *Board) index(cell Cell) int {
	return cell.Row*b.width + cell.Col
}

type boardJSON struct {
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Blocked   []Cell          `json:"blocked"`
	Locations map[Player]Cell `json:"locations"`
	Active    Player          `json:"active"`
	MoveCount int             `json:"move_count"`
}

func (b *Board) MarshalJSON() ([]byte, error) {
	payload := boardJSON{
		Width:     b.width,
		Height:    b.height,
		Blocked:   []Cell{},
		Locations: map[Player]Cell{},
		Active:    b.active,
		MoveCount: b.moveCount,
	}
	for i, blocked := range b.blocked {
		if blocked {
			payload.Blocked = append(payload.Blocked, Cell{Row: i / b.width, Col: i % b.width})
		}
	}
	for _, p := range []Player{Player1, Player2} {
		if b.placed[p] {
			payload.Locations[p] = b.locations[p]
		}
	}
	return json.Marshal(payload)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var payload boardJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	if payload.Width <= 0 || payload.Height <= 0 || payload.Width > MaxBoardSize || payload.Height > MaxBoardSize {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBoard, payload.Width, payload.Height)
	}
	if payload.Active != Player1 && payload.Active != Player2 {
		return fmt.Errorf("%w: active player %d", ErrInvalidBoard, payload.Active)
	}

	board := NewBoard(payload.Width, payload.Height)
	board.active = payload.Active
	board.moveCount = payload.MoveCount
	for _, cell := range payload.Blocked {
		if !board.inBounds(cell) {
			return fmt.Errorf("%w: blocked cell %v out of bounds", ErrInvalidBoard, cell)
		}
		board.blocked[board.index(cell)] = true
	}
	for player, cell := range payload.Locations {
		if player != Player1 && player != Player2 {
			return fmt.Errorf("%w: unknown player %d", ErrInvalidBoard, player)
		}
		if !board.inBounds(cell) {
			return fmt.Errorf("%w: %v location %v out of bounds", ErrInvalidBoard, player, cell)
		}
		// A player's current cell is always blocked
		board.blocked[board.index(cell)] = true
		board.locations[player] = cell
		board.placed[player] = true
	}

	*b = *board
	return nil
}
