package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"isolation/game"
	"isolation/meta"
	"isolation/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	KindSearch = "search"
	KindRandom = "random"
	KindRemote = "remote"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config describes a tournament: the board, the per-move budget and the
// agents taking part.
type Config struct {
	Board BoardConfig `json:"board" yaml:"board"`

	// TimeLimit is the time each agent has per move.
	TimeLimit time.Duration `json:"time_limit" yaml:"time_limit"`

	// Threshold is the time left at which search agents abort. It must be
	// smaller than TimeLimit.
	Threshold time.Duration `json:"threshold" yaml:"threshold"`

	// NumMatches per test agent and baseline pair. Each match is two games.
	NumMatches int `json:"num_matches" yaml:"num_matches"`

	// Seed for random openings and random agents.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Workers is the number of matchups played at once. Search agents share
	// the CPU, so more than one worker weakens them.
	Workers int `json:"workers" yaml:"workers"`

	LogLevel string `json:"log_level" yaml:"log_level"`

	// OutputDir receives CSV records of each run. Empty disables output.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	TestAgents []AgentConfig `json:"test_agents" yaml:"test_agents"`
	Baselines  []AgentConfig `json:"baselines" yaml:"baselines"`
}

type BoardConfig struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

type AgentConfig struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Kind is one of "search", "random" or "remote".
	Kind      string `json:"kind" yaml:"kind"`
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Evaluator string `json:"evaluator" yaml:"evaluator"`
	Iterative bool   `json:"iterative" yaml:"iterative"`
	// Depth is only used when Iterative is false.
	Depth int `json:"depth" yaml:"depth"`
	// URL of the agent server for remote agents.
	URL string `json:"url" yaml:"url"`
}

func searchAgent(id int, name, algorithm, evaluator string, iterative bool) AgentConfig {
	depth := 0
	if !iterative {
		depth = meta.SEARCH_DEPTH
	}
	return AgentConfig{
		ID:        id,
		Name:      name,
		Kind:      KindSearch,
		Algorithm: algorithm,
		Evaluator: evaluator,
		Iterative: iterative,
		Depth:     depth,
	}
}

// Default returns a tournament of the iterative deepening agents against
// random and fixed-depth baselines.
func Default() Config {
	return Config{
		Board:      BoardConfig{Width: meta.BOARD_SIZE, Height: meta.BOARD_SIZE},
		TimeLimit:  meta.TIME_LIMIT,
		Threshold:  meta.TIMER_THRESHOLD,
		NumMatches: meta.NUM_MATCHES,
		Seed:       1,
		Workers:    1,
		LogLevel:   "info",
		TestAgents: []AgentConfig{
			searchAgent(1, "ID_Mobility", "alphabeta", "mobility", true),
			searchAgent(2, "ID_Composite", "alphabeta", "composite", true),
		},
		Baselines: []AgentConfig{
			{ID: 10, Name: "Random", Kind: KindRandom},
			searchAgent(11, "MM_Aggressive", "minimax", "aggressive", false),
			searchAgent(12, "MM_Conservative", "minimax", "conservative", false),
			searchAgent(13, "AB_Aggressive", "alphabeta", "aggressive", false),
			searchAgent(14, "AB_Conservative", "alphabeta", "conservative", false),
			searchAgent(15, "AB_Mobility", "alphabeta", "mobility", false),
		},
	}
}

// Load starts from the defaults, applies the file at path (YAML or JSON, a
// missing file is ignored) and then ISOLATION_* environment variables.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadConfigFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadConfigFromEnv(config *Config) {
	if v := os.Getenv("ISOLATION_TIME_LIMIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TimeLimit = d
		}
	}
	if v := os.Getenv("ISOLATION_THRESHOLD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Threshold = d
		}
	}
	if v := os.Getenv("ISOLATION_NUM_MATCHES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.NumMatches = i
		}
	}
	if v := os.Getenv("ISOLATION_SEED"); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Seed = i
		}
	}
	if v := os.Getenv("ISOLATION_WORKERS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			config.Workers = i
		}
	}
	if v := os.Getenv("ISOLATION_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("ISOLATION_OUTPUT_DIR"); v != "" {
		config.OutputDir = v
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Board.Width < 1 || c.Board.Height < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("%w: time_limit must be > 0", ErrInvalidConfig)
	}
	if c.Threshold <= 0 || c.Threshold >= c.TimeLimit {
		return fmt.Errorf("%w: threshold must be > 0 and < time_limit", ErrInvalidConfig)
	}
	if c.NumMatches < 1 {
		return fmt.Errorf("%w: num_matches must be >= 1", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be >= 1", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	if len(c.TestAgents) == 0 || len(c.Baselines) == 0 {
		return fmt.Errorf("%w: need at least one test agent and one baseline", ErrInvalidConfig)
	}

	ids := map[int]string{}
	for _, agent := range append(append([]AgentConfig{}, c.TestAgents...), c.Baselines...) {
		if other, ok := ids[agent.ID]; ok {
			return fmt.Errorf("%w: agents %q and %q share id %d", ErrInvalidConfig, other, agent.Name, agent.ID)
		}
		ids[agent.ID] = agent.Name
		if err := agent.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (a AgentConfig) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: agent %d has no name", ErrInvalidConfig, a.ID)
	}

	switch a.Kind {
	case KindSearch:
		if _, err := searcher.ParseAlgorithm(a.Algorithm); err != nil {
			return fmt.Errorf("%w: agent %q: %w", ErrInvalidConfig, a.Name, err)
		}
		if _, err := game.EvaluatorByName(a.Evaluator); err != nil {
			return fmt.Errorf("%w: agent %q: %w", ErrInvalidConfig, a.Name, err)
		}
		if !a.Iterative && a.Depth < 1 {
			return fmt.Errorf("%w: agent %q: depth must be >= 1 for fixed-depth search", ErrInvalidConfig, a.Name)
		}
	case KindRandom:
	case KindRemote:
		if a.URL == "" {
			return fmt.Errorf("%w: agent %q: remote agents need a url", ErrInvalidConfig, a.Name)
		}
	default:
		return fmt.Errorf("%w: agent %q: unknown kind %q", ErrInvalidConfig, a.Name, a.Kind)
	}
	return nil
}
