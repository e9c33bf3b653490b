package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"isolation/game"
	"isolation/searcher"

	"github.com/rs/zerolog/log"
)

// remoteAgent asks an agent Server for its moves.
type remoteAgent struct {
	url       string
	threshold time.Duration
	client    *http.Client
}

// NewRemoteAgent returns an agent backed by the Server listening at url,
// e.g. "http://localhost:8080". State must be a *game.Board. Requests give up
// once less than threshold is left, so the fallback move is still on time.
func NewRemoteAgent(url string, threshold time.Duration) Agent {
	return &remoteAgent{url: url, threshold: threshold, client: &http.Client{}}
}

func (a *remoteAgent) ChooseMove(state game.State, legalMoves []game.Move, timeLeft searcher.TimeLeft) game.Move {
	if len(legalMoves) == 0 {
		return game.NoMove
	}

	move, err := a.requestMove(state, timeLeft())
	if err != nil {
		log.Error().Err(err).Msgf("remote agent %s failed, playing first legal move", a.url)
		return legalMoves[0]
	}
	return move
}

// requestMove posts the board and the budget left above the threshold to
// /choosemove
func (a *remoteAgent) requestMove(state game.State, timeLeft time.Duration) (game.Move, error) {
	board, ok := state.(*game.Board)
	if !ok {
		return game.NoMove, fmt.Errorf("unexpected state type %T", state)
	}
	budget := timeLeft - a.threshold
	if budget <= 0 {
		return game.NoMove, fmt.Errorf("no time left")
	}

	payload := struct {
		Board      *game.Board `json:"board"`
		TimeLeftMs int64       `json:"time_left_ms"`
	}{
		Board:      board,
		TimeLeftMs: budget.Milliseconds(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return game.NoMove, fmt.Errorf("encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/choosemove", bytes.NewReader(body))
	if err != nil {
		return game.NoMove, fmt.Errorf("build move request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return game.NoMove, fmt.Errorf("post move request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.NoMove, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, out)
	}

	var response ChooseMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return game.NoMove, fmt.Errorf("decode move: %w", err)
	}
	if response.NoMove {
		return game.NoMove, nil
	}
	return response.Move, nil
}
