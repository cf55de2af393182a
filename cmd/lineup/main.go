package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/derekprior/lineup/internal/config"
	"github.com/derekprior/lineup/internal/excel"
	"github.com/derekprior/lineup/internal/gametype"
	"github.com/derekprior/lineup/internal/metrics"
	"github.com/derekprior/lineup/internal/schedule"
	"github.com/derekprior/lineup/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %s\n", err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "lineup",
		Short: "Assigns players to fixtures within availability and game limits",
	}

	var (
		initOutputPath string
		initGameType   string
		initPlayers    int
	)
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath, initGameType, initPlayers)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")
	initCmd.Flags().StringVar(&initGameType, "game-type", "duo", "Game type (see 'lineup gametypes')")
	initCmd.Flags().IntVar(&initPlayers, "players", 0, "Number of players (default: enough for the game type)")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var (
		outputFile  string
		seed        int64
		metricsFile string
	)
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			var seedOverride *int64
			if cmd.Flags().Changed("seed") {
				seedOverride = &seed
			}
			return runGenerate(cmd.Context(), configPath, outputFile, seedOverride, metricsFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (overrides the config file; 0 picks one from the clock)")
	generateCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics for this run to a text file")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate a schedule against the config",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	gametypesCmd := &cobra.Command{
		Use:   "gametypes",
		Short: "List the available game types and their limits",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runGameTypes()
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, gametypesCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newLogger(e *config.Env) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(e.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if e.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

func runInit(outputPath, gameType string, players int) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	policy, err := gametype.Get(gameType)
	if err != nil {
		return err
	}
	if players <= 0 {
		players = policy.RequiredPlayers + 2
	}

	cfg := config.Config{
		GameType:  policy.Name,
		Locations: gametype.DefaultLocations(policy.DefaultLocations, ""),
	}
	for i := 0; i < players; i++ {
		av := make([]bool, len(cfg.Locations))
		for j := range av {
			av[j] = true
		}
		cfg.Players = append(cfg.Players, config.Player{Name: fmt.Sprintf("Player %d", i+1), Availability: av})
	}

	body, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(outputPath, append([]byte(configHeader), body...), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configHeader = `# Lineup configuration
# =====================
# game_type sets the roster size and game limits (run 'lineup gametypes').
# Locations starting with THUIS are home locations; the rest are away.
# At least half must be home unless the game type is cup.
#
# Optional settings:
#   home_prefix: THUIS        # prefix that marks a home location
#   coverage: best_effort     # best_effort, required or off
#   seed: 42                  # fixed seed for a reproducible schedule
#   rules:                    # override the game type's limits
#     max_games: 4
#
# Each player lists one availability entry per location, in order.

`

func runGenerate(ctx context.Context, configPath, outputPath string, seedOverride *int64, metricsFile string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	logger, err := newLogger(env)
	if err != nil {
		return err
	}

	rules, err := cfg.ScheduleRules()
	if err != nil {
		return err
	}
	coverage, err := schedule.ParseCoveragePolicy(cfg.Coverage)
	if err != nil {
		return err
	}
	seed := cfg.Seed
	if seedOverride != nil {
		seed = *seedOverride
	}

	registry := prometheus.NewRegistry()
	gen := schedule.New(schedule.Options{
		MaxAttempts:       env.MaxAttempts,
		MaxSwapIterations: env.MaxSwapIterations,
		ProgressEvery:     env.ProgressEvery,
		Coverage:          coverage,
		Seed:              seed,
		Logger:            logger,
		Metrics:           metrics.NewMetrics(registry),
	})

	fmt.Printf("Scheduling %d players over %d locations (%s, %d per location)...\n",
		len(cfg.Players), len(cfg.Locations), cfg.GameType, rules.RequiredPlayers)

	run := gen.Start(ctx, schedule.Request{
		GameType:  cfg.GameType,
		Locations: cfg.Locations,
		Players:   cfg.SchedulePlayers(),
		Rules:     rules,
	})
	for n := range run.Progress() {
		fmt.Printf("\r  %d recalculations", n)
	}
	fmt.Println()
	result, genErr := run.Wait()

	if metricsFile != "" {
		if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
			logger.WithError(err).Warn("could not write metrics file")
		}
	}

	var coverageErr *schedule.CoverageError
	if genErr != nil && !errors.As(genErr, &coverageErr) {
		return genErr
	}

	fmt.Printf("✓ All %d locations filled after %d recalculations (seed %d)\n",
		len(cfg.Locations), result.Attempts, result.Seed)
	fmt.Println()
	printGrid(cfg, result)

	if len(result.Missing) > 0 {
		fmt.Printf("\nPairs that never share a location (%d):\n", len(result.Missing))
		for _, p := range result.Missing {
			fmt.Printf("  ⚠ %s\n", p)
		}
	} else {
		fmt.Println("\n✓ Every pair of players shares a location")
	}

	f, err := excel.Generate(cfg, result)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", outputPath)

	return genErr
}

// printGrid writes one row per location with X where a player is rostered
// and - where they are unavailable, followed by home, away and total rows.
func printGrid(cfg *config.Config, result *schedule.Result) {
	width := 8
	for _, loc := range cfg.Locations {
		width = max(width, len(loc)+1)
	}
	colWidth := 4
	for _, p := range cfg.Players {
		colWidth = max(colWidth, len(p.Name)+1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s", width, "")
	for _, p := range cfg.Players {
		fmt.Fprintf(&b, "%*s", colWidth, p.Name)
	}
	b.WriteString("\n")

	for li, loc := range cfg.Locations {
		fmt.Fprintf(&b, "  %-*s", width, loc)
		for _, p := range cfg.Players {
			cell := ""
			switch {
			case result.Assignment.Plays(loc, p.Name):
				cell = excel.Mark
			case li >= len(p.Availability) || !p.Availability[li]:
				cell = "-"
			}
			fmt.Fprintf(&b, "%*s", colWidth, cell)
		}
		b.WriteString("\n")
	}

	rows := []struct {
		label string
		value func(schedule.PlayerSummary) int
	}{
		{"Home", func(s schedule.PlayerSummary) int { return s.Home }},
		{"Away", func(s schedule.PlayerSummary) int { return s.Away }},
		{"Total", func(s schedule.PlayerSummary) int { return s.Total }},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %-*s", width, r.label)
		for _, s := range result.Summaries {
			fmt.Fprintf(&b, "%*d", colWidth, r.value(s))
		}
		b.WriteString("\n")
	}
	fmt.Print(b.String())
}

func runValidate(configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	rules := 0
	guidelines := 0
	for _, v := range violations {
		where := ""
		if v.Row > 0 {
			where = fmt.Sprintf(" (row %d)", v.Row)
		}
		switch v.Type {
		case "error":
			rules++
			fmt.Printf("✗ Rule violation: %s%s\n", v.Message, where)
		case "warning":
			guidelines++
			fmt.Printf("⚠ Guideline violation: %s%s\n", v.Message, where)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", rules, guidelines)

	if err := excel.UpdatePlayerSheet(schedulePath, cfg); err != nil {
		return fmt.Errorf("updating players sheet: %w", err)
	}
	fmt.Printf("✓ Players sheet updated in %s\n", schedulePath)

	if rules > 0 {
		return fmt.Errorf("%d constraint violations found", rules)
	}
	return nil
}

func runGameTypes() {
	fmt.Printf("  %-8s %8s %10s %16s %10s\n", "Type", "Players", "Max games", "Max consecutive", "Home rule")
	for _, p := range gametype.All() {
		home := "half"
		if !p.BalanceHomeAway {
			home = "none"
		}
		fmt.Printf("  %-8s %8d %10d %16d %10s\n", p.Name, p.RequiredPlayers, p.MaxGames, p.MaxConsecutiveGames, home)
	}
}
