package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeondice/internal/game"
	"github.com/samdwyer/dungeondice/internal/gamedata"
	"github.com/samdwyer/dungeondice/internal/logging"
	"github.com/samdwyer/dungeondice/internal/telemetry"
	"github.com/samdwyer/dungeondice/internal/ui"
)

// settings are the process-level knobs that sit outside the game rules.
type settings struct {
	LogLevel         string `env:"DUNGEONDICE_LOG_LEVEL" envDefault:"info"`
	LogFile          string `env:"DUNGEONDICE_LOG_FILE"`
	HoneycombAPIKey  string `env:"HONEYCOMB_DUNGEONDICE_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_DUNGEONDICE_DATASET"`
}

var rootCmd = &cobra.Command{
	Use:   "dungeondice",
	Short: "DungeonDice is a single-player dungeon-crawl dice game",
	Long: `Roll a party of dice, spend them against monsters, loot chests,
quaff potions and slay dragons across several delves.`,
	SilenceUsage: true,
	RunE:         play,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Int64("seed", 0, "Seed for a reproducible run (0 picks one)")
	rootCmd.Flags().Int("delves", 0, "Number of delves (overrides DUNGEONDICE_DELVES)")
	rootCmd.Flags().String("log-file", "", "Write structured logs to this file (overrides DUNGEONDICE_LOG_FILE)")
}

func play(cmd *cobra.Command, _ []string) error {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig()
	if err != nil {
		return err
	}
	set, err := env.ParseAs[settings]()
	if err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := applyFlags(cmd, &cfg, &set); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger, closeLog, err := logging.Open(set.LogLevel, set.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeLog(); err != nil {
			log.Printf("Error closing log file: %v", err)
		}
	}()

	ctx := context.Background()

	if telemetry.HoneycombEnv(set.HoneycombAPIKey, set.HoneycombDataset) {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Warn("telemetry setup failed, running without traces", "error", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	rules, err := game.DefaultRules()
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	faces, err := gamedata.LoadFaceRegistry()
	if err != nil {
		return fmt.Errorf("load faces: %w", err)
	}

	src := rand.New(rand.NewSource(cfg.Seed))
	engine := game.New(ctx, cfg, rules, src, game.WithLogger(logger))
	logger.Info("run started", "run_id", engine.RunID(), "seed", cfg.Seed, "delves", cfg.Delves)

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := ui.NewApp(screen, faces, engine, logger).Run(ctx); err != nil {
		return err
	}

	fmt.Printf("Final score: %d (seed %d)\n", engine.Score(), cfg.Seed)
	return nil
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *game.Config, set *settings) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		seed, err := flags.GetInt64("seed")
		if err != nil {
			return err
		}
		cfg.Seed = seed
	}
	if flags.Changed("delves") {
		delves, err := flags.GetInt("delves")
		if err != nil {
			return err
		}
		cfg.Delves = delves
	}
	if flags.Changed("log-file") {
		path, err := flags.GetString("log-file")
		if err != nil {
			return err
		}
		set.LogFile = path
	}
	return cfg.Validate()
}
