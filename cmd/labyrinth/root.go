package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/labyrinth/internal/cli"
	"github.com/aretw0/labyrinth/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "labyrinth",
	Short:         "Labyrinth discovers routes through mazes of timed passages",
	Long:          `Labyrinth loads maze definitions (YAML or JSON), walks them from a start cell and reports the route found and its travel time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the maze definitions")
	rootCmd.PersistentFlags().String("config", "", "Path to a labyrinth.yaml file (default: <dir>/labyrinth.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().String("store", "", "Route store: none, memory, file or redis")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the redis store")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for the random policy and sampled travel times (0 = random)")
}

// loadSettings merges the config file with the flags the user set explicitly.
func loadSettings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	path, _ := flags.GetString("config")

	optional := path == ""
	if optional {
		path = filepath.Join(dir, config.DefaultFile)
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return cfg, nil, err
	}

	if flags.Changed("dir") || cfg.Dir == "" {
		cfg.Dir = dir
	} else if !filepath.IsAbs(cfg.Dir) {
		// Relative dirs in the file are relative to the file itself.
		cfg.Dir = filepath.Join(filepath.Dir(path), cfg.Dir)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("store") {
		cfg.Store.Kind, _ = flags.GetString("store")
	}
	if flags.Changed("redis-addr") {
		cfg.Redis.Addr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}
