package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentRecord identifies an agent taking part in an experiment.
type AgentRecord struct {
	ID          int
	Name        string
	Description string
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID seated as Player1
	Agent2 int // AgentConfig.ID seated as Player2
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MatchupResult tallies the games of a test agent against one baseline.
type MatchupResult struct {
	TestAgent string
	Baseline  string
	Wins      int
	Losses    int
}

func (r MatchupResult) WinRate() float64 {
	total := r.Wins + r.Losses
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total)
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named after the experiment and the
// current timestamp.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgents(agents []AgentRecord) error {
	header := []string{"id", "name", "description"}
	rows := make([][]string, 0, len(agents))
	for _, a := range agents {
		rows = append(rows, []string{strconv.Itoa(a.ID), a.Name, a.Description})
	}
	return w.write("agents.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "forfeit", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(int(record.StartingPlayer)),
			strconv.Itoa(int(record.Winner)),
			strconv.FormatBool(record.Forfeit),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "row", "col", "algorithm", "evaluator", "duration", "nodes", "evaluations", "cutoffs", "depth", "aborted"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(int(record.Player)),
			strconv.Itoa(record.Move.Row),
			strconv.Itoa(record.Move.Col),
			record.Algorithm,
			record.Evaluator,
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Depth),
			strconv.FormatBool(record.Aborted),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteResults(results []MatchupResult) error {
	header := []string{"test_agent", "baseline", "wins", "losses", "win_rate", "win_rate_low", "win_rate_high"}
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		low, high := result.WinRateInterval(95)
		rows = append(rows, []string{
			result.TestAgent,
			result.Baseline,
			strconv.Itoa(result.Wins),
			strconv.Itoa(result.Losses),
			strconv.FormatFloat(result.WinRate(), 'f', 4, 64),
			strconv.FormatFloat(low, 'f', 4, 64),
			strconv.FormatFloat(high, 'f', 4, 64),
		})
	}
	return w.write("results.csv", header, rows)
}

func (w *Writer) write(filename string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", filename, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", filename, err)
	}
	return nil
}
