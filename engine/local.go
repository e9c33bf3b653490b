package engine

import (
	"time"

	"isolation/experiments/metrics"
	"isolation/game"
	"isolation/searcher"
	"isolation/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Local plays two in-process agents against each other. Each agent gets
// timeLimit per move; returning late or returning an illegal move forfeits
// the game.
type Local struct {
	Board     *game.Board
	agents    map[game.Player]agent.Agent
	timeLimit time.Duration
}

// LocalEngine seats agents[0] as Player1 and agents[1] as Player2, starting
// from board.
func LocalEngine(agents []agent.Agent, board *game.Board, timeLimit time.Duration) *Local {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if timeLimit <= 0 {
		panic("time limit must be positive")
	}

	return &Local{
		Board: board,
		agents: map[game.Player]agent.Agent{
			game.Player1: agents[0],
			game.Player2: agents[1],
		},
		timeLimit: timeLimit,
	}
}

// Run executes the game loop until a player has no legal moves or forfeits.
func (e *Local) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.ActivePlayer(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Msgf("%v is starting", e.Board.ActivePlayer())

	step := 1
	var winner game.Player
	for {
		player := e.Board.ActivePlayer()
		legalMoves := e.Board.LegalMoves(player)
		if len(legalMoves) == 0 {
			winner = e.Board.Opponent(player)
			log.Debug().Msgf("%v has no legal moves", player)
			break
		}

		// Agents get their own copies so they cannot tamper with the game
		timeLeft := searcher.Countdown(e.timeLimit)
		move := e.agents[player].ChooseMove(e.Board.Copy(), append([]game.Move(nil), legalMoves...), timeLeft)
		remaining := timeLeft()

		moveMetric := metrics.MoveMetric{Step: step, Player: player, Move: move}
		if reporter, ok := e.agents[player].(agent.Reporter); ok {
			moveMetric.SearchMetric = reporter.LastMetrics()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		if remaining < 0 {
			winner = e.Board.Opponent(player)
			gameMetric.Forfeit = true
			log.Warn().Msgf("%v forfeits: timed out by %v", player, -remaining)
			break
		}
		if !lo.Contains(legalMoves, move) {
			winner = e.Board.Opponent(player)
			gameMetric.Forfeit = true
			log.Warn().Msgf("%v forfeits: illegal move %v", player, move)
			break
		}

		e.Board = e.Board.Apply(move)
		step++
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Debug().Msgf("game over after %d moves, winner: %v\n%v", gameMetric.TotalMoves, winner, e.Board)
	return winner, gameMetric, moveMetrics
}
