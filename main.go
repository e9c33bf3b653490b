package main

import (
	"fmt"
	"os"
	"time"

	"isolation/config"
	"isolation/experiments"
	"isolation/game"
	"isolation/meta"
	"isolation/searcher"
	"isolation/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	addr      string
	algorithm string
	evaluator string
	depth     int
	threshold time.Duration

	throughputGames int

	rootCmd = &cobra.Command{
		Use:   "isolation",
		Short: "Game-tree search agents for knight-move Isolation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setLogLevel(logLevel)
		},
	}

	tournamentCmd = &cobra.Command{
		Use:   "tournament",
		Short: "Play the test agents against the baselines and report win rates",
		RunE:  runTournament,
	}

	throughputCmd = &cobra.Command{
		Use:   "throughput",
		Short: "Measure the nodes per second of every search agent in self-play",
		RunE:  runThroughput,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve a search agent over HTTP",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "zerolog level, overrides the config file")

	tournamentCmd.Flags().StringVar(&configPath, "config", "", "tournament config file (YAML or JSON)")
	throughputCmd.Flags().StringVar(&configPath, "config", "", "tournament config file (YAML or JSON)")
	throughputCmd.Flags().IntVar(&throughputGames, "games", 1, "self-play games per agent")

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().StringVar(&algorithm, "algorithm", searcher.AlphaBeta.String(), "minimax or alphabeta")
	serveCmd.Flags().StringVar(&evaluator, "evaluator", "composite", fmt.Sprintf("one of %v", game.EvaluatorNames()))
	serveCmd.Flags().IntVar(&depth, "depth", 0, "fixed search depth, 0 for iterative deepening")
	serveCmd.Flags().DurationVar(&threshold, "threshold", meta.TIMER_THRESHOLD, "time left at which the search aborts")

	rootCmd.AddCommand(tournamentCmd, throughputCmd, serveCmd)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setLogLevel(level string) error {
	if level == "" {
		return nil
	}
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if logLevel == "" {
		if err := setLogLevel(cfg.LogLevel); err != nil {
			return cfg, err
		}
	}
	log.Debug().Msgf("loaded config: %+v", cfg)
	return cfg, nil
}

func runTournament(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	results, err := experiments.NewTournament(cfg).Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-16s %5s %6s %8s  %s\n", "test agent", "baseline", "wins", "losses", "win rate", "95% interval")
	for _, r := range results {
		low, high := r.WinRateInterval(95)
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-16s %5d %6d %7.2f%%  [%.2f%%, %.2f%%]\n",
			r.TestAgent, r.Baseline, r.Wins, r.Losses, 100*r.WinRate(), 100*low, 100*high)
	}
	return nil
}

func runThroughput(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	throughput, err := experiments.RunThroughputExperiment(cfg, throughputGames)
	if err != nil {
		return err
	}
	for name, nps := range throughput {
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %12.0f nodes/s\n", name, nps)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ac := config.AgentConfig{
		ID:        1,
		Name:      "server",
		Kind:      config.KindSearch,
		Algorithm: algorithm,
		Evaluator: evaluator,
		Iterative: depth == 0,
		Depth:     depth,
	}
	a, err := agent.New(ac, threshold, 0)
	if err != nil {
		return err
	}
	return agent.NewServer(a).ListenAndServe(addr)
}
