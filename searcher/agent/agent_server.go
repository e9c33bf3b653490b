package agent

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"isolation/game"
	"isolation/searcher"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// maxRequestBytes bounds the size of a /choosemove request body.
const maxRequestBytes = 1 << 20

type ChooseMoveRequest struct {
	Board      game.Board `json:"board"`
	TimeLeftMs int64      `json:"time_left_ms"`
}

type ChooseMoveResponse struct {
	Move   game.Move `json:"move"`
	NoMove bool      `json:"no_move"`
}

// Server exposes an agent over HTTP. Requests are served one at a time since
// agents keep per-move state.
type Server struct {
	mu    sync.Mutex
	agent Agent
	mux   *http.ServeMux
}

func NewServer(agent Agent) *Server {
	s := &Server{agent: agent}
	// Create a local mux rather than using the global DefaultServeMux
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/choosemove", s.handleChooseMove)
	s.mux.Handle("/metrics", promhttp.Handler())
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving the agent on addr, e.g. ":8080".
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleChooseMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload ChooseMoveRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, err.Error())
		return
	}
	if payload.Board.Width() == 0 {
		badRequest(w, "missing board")
		return
	}
	if payload.TimeLeftMs <= 0 {
		badRequest(w, "time_left_ms must be positive")
		return
	}

	// The budget starts counting when the request is decoded
	timeLeft := searcher.Countdown(time.Duration(payload.TimeLeftMs) * time.Millisecond)
	board := &payload.Board
	legalMoves := board.LegalMoves(board.ActivePlayer())

	move := s.chooseMove(board, legalMoves, timeLeft)

	response := ChooseMoveResponse{Move: move, NoMove: move == game.NoMove}
	if response.NoMove {
		requestsTotal.WithLabelValues("no_move").Inc()
	} else {
		requestsTotal.WithLabelValues("move").Inc()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("failed to encode move")
	}
}

// chooseMove asks the agent for a move, one request at a time.
func (s *Server) chooseMove(board *game.Board, legalMoves []game.Move, timeLeft searcher.TimeLeft) game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()

	move := s.agent.ChooseMove(board, legalMoves, timeLeft)
	if reporter, ok := s.agent.(Reporter); ok && len(legalMoves) > 0 {
		recordSearch(reporter.LastMetrics())
	}
	return move
}

func badRequest(w http.ResponseWriter, reason string) {
	requestsTotal.WithLabelValues("bad_request").Inc()
	http.Error(w, "bad request: "+reason, http.StatusBadRequest)
}
