package searcher

import (
	"errors"
	"fmt"
	"isolation/experiments/metrics"
	"isolation/game"
	"math"
	"time"
)

// DefaultThreshold is the time left at which a search gives up. It has to
// leave enough room for the deepest frame to unwind before the turn ends.
const DefaultThreshold = 10 * time.Millisecond

var (
	// ErrSearchAborted is returned by every frame once the deadline has
	// passed. A result returned alongside it belongs to an earlier,
	// completed search and never to the aborted one.
	ErrSearchAborted = errors.New("search aborted: deadline exceeded")

	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

type Algorithm int

const (
	Minimax Algorithm = iota
	AlphaBeta
)

func (a Algorithm) String() string {
	switch a {
	case Minimax:
		return "minimax"
	case AlphaBeta:
		return "alphabeta"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "minimax":
		return Minimax, nil
	case "alphabeta":
		return AlphaBeta, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Result is the value of a searched position and the root move leading to
// it. Move is game.NoMove only when the root had no legal moves.
type Result struct {
	Score float64
	Move  game.Move
}

type Option func(s *Searcher)

// Searcher explores the game tree from the perspective of the player to move
// at the root.
type Searcher struct {
	algorithm     Algorithm
	evaluator     game.Evaluator
	evaluatorName string
	threshold     time.Duration
	metrics       metrics.Collector
}

func WithAlgorithm(algorithm Algorithm) Option {
	return func(s *Searcher) {
		s.algorithm = algorithm
	}
}

// WithEvaluator sets the scoring hook used at the cutoff depth. The name is
// only reported in metrics.
func WithEvaluator(name string, evaluator game.Evaluator) Option {
	return func(s *Searcher) {
		if evaluator != nil {
			s.evaluator = evaluator
			s.evaluatorName = name
		}
	}
}

func WithThreshold(threshold time.Duration) Option {
	return func(s *Searcher) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Searcher) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		algorithm:     Minimax,
		evaluator:     game.Composite,
		evaluatorName: "composite",
		threshold:     DefaultThreshold,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) Algorithm() Algorithm {
	return s.algorithm
}

func (s *Searcher) Threshold() time.Duration {
	return s.threshold
}

func (s *Searcher) Metrics() metrics.Collector {
	return s.metrics
}

// Search runs the configured algorithm once to the given depth.
func (s *Searcher) Search(state game.State, depth int, timeLeft TimeLeft) (Result, error) {
	c := s.newContext(state, depth, timeLeft)
	return c.run(state)
}

// searchContext holds the per-search context shared by every recursive call.
type searchContext struct {
	algorithm Algorithm
	self      game.Player
	depth     int
	evaluator game.Evaluator
	deadline  deadline
	metrics   metrics.Collector
	// horizon is set once any node is cut off by the depth limit. A search
	// that never hits the horizon explored the whole game tree.
	horizon bool
}

func (s *Searcher) newContext(state game.State, depth int, timeLeft TimeLeft) *searchContext {
	return &searchContext{
		algorithm: s.algorithm,
		self:      state.ActivePlayer(),
		depth:     depth,
		evaluator: s.evaluator,
		deadline:  deadline{timeLeft: timeLeft, threshold: s.threshold},
		metrics:   s.metrics,
	}
}

func (c *searchContext) run(state game.State) (Result, error) {
	switch c.algorithm {
	case Minimax:
		return c.minimax(state)
	case AlphaBeta:
		return c.alphabeta(state)
	default:
		panic(fmt.Sprintf("unexpected algorithm %v", c.algorithm))
	}
}

// enter is called at the top of every frame.
func (c *searchContext) enter() error {
	c.metrics.AddNode()
	if c.deadline.expired() {
		return ErrSearchAborted
	}
	return nil
}

// score is the single place the evaluator is called.
func (c *searchContext) score(state game.State) float64 {
	c.metrics.AddEvaluation()
	return c.evaluator.Evaluate(state, c.self)
}

// cutoff evaluates the state if ply has reached the depth limit.
func (c *searchContext) cutoff(state game.State, ply int) (float64, bool) {
	if ply < c.depth {
		return 0, false
	}
	c.horizon = true
	return c.score(state), true
}

// leaf handles a root with nothing to search: a depth limit of zero or no
// legal moves.
func (c *searchContext) leaf(state game.State, moves []game.Move) (Result, bool) {
	if c.depth > 0 && len(moves) > 0 {
		return Result{}, false
	}
	if c.depth <= 0 {
		c.horizon = true
	}
	return Result{Score: c.score(state), Move: game.NoMove}, true
}
