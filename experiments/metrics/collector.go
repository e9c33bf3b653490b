package metrics

import (
	"isolation/game"
	"time"
)

type SearchMetric struct {
	Algorithm   string
	Evaluator   string
	Duration    time.Duration
	Nodes       int // Frames entered, including aborted ones
	Evaluations int // Evaluator calls at the cutoff depth
	Cutoffs     int // Alpha and beta cutoffs
	Depth       int // Deepest completed depth
	Aborted     bool
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	Forfeit        bool // The loser timed out or played an illegal move
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates statistics for a single move decision. Search is
// sequential, so collectors are not safe for concurrent use.
type Collector interface {
	Start(algorithm, evaluator string)
	AddNode()
	AddEvaluation()
	AddCutoff()
	CompleteDepth(depth int)
	Abort()
	Complete() SearchMetric
}

type collector struct {
	metric    SearchMetric
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm, evaluator string) {
	m.startTime = time.Now()
	m.metric = SearchMetric{Algorithm: algorithm, Evaluator: evaluator}
}

func (m *collector) AddNode() {
	m.metric.Nodes++
}

func (m *collector) AddEvaluation() {
	m.metric.Evaluations++
}

func (m *collector) AddCutoff() {
	m.metric.Cutoffs++
}

func (m *collector) CompleteDepth(depth int) {
	if depth > m.metric.Depth {
		m.metric.Depth = depth
	}
}

func (m *collector) Abort() {
	m.metric.Aborted = true
}

func (m *collector) Complete() SearchMetric {
	metric := m.metric
	metric.Duration = time.Since(m.startTime)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm, evaluator string) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddEvaluation()                    {}
func (m *dummyCollector) AddCutoff()                        {}
func (m *dummyCollector) CompleteDepth(depth int)           {}
func (m *dummyCollector) Abort()                            {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
