// game2048 plays the 2048 sliding-tile game in a desktop window, in the
// terminal, or over SSH.
//
// Usage:
//
//	game2048 play [variant]   - Play a variant (window by default)
//	game2048 menu             - Pick a variant interactively in the terminal
//	game2048 list             - List available variants
//	game2048 serve            - Start SSH server for remote play
//	game2048 constants        - Print the effective constants
//
// Global flags:
//
//	--constants <path>   - Constants file (default: search order)
//	--difficulty <name>  - Preset: easy, normal, hard, endless
//	--fps <rate>         - Override target_fps
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/game2048/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/game2048/internal/games/t2048"
)

var (
	// Global flags
	flagConstants  string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "game2048",
	Short: "2048 - slide and merge tiles",
	Long: `game2048 is the 2048 sliding-tile game. It runs in a desktop window,
in your terminal, or as an SSH server.

Available commands:
  play       - Play a variant directly
  menu       - Interactive variant picker
  list       - Show all available variants
  serve      - Start SSH server for remote play
  constants  - Print the effective constants

Examples:
  game2048 play
  game2048 play 2048_endless --ui terminal
  game2048 play --constants ./constants.yaml --watch
  game2048 serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConstants, "constants", "", "Path to a constants file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, endless")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Target frames per second (0 = from constants)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(constantsCmd)
}

// newLogger builds the process logger. Terminal UIs own the screen, so they
// pass quiet=true and only log when --log-file is set.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "game2048",
		Level:           level,
	})
	return logger, closer, nil
}

// loadConstants resolves the constants for this run and applies the global
// overrides.
func loadConstants(logger *log.Logger) (config.Constants, string, error) {
	c, source, err := config.Load(flagConstants, logger)
	if err != nil {
		return config.Constants{}, "", err
	}
	c, err = applyOverrides(c, config.DifficultyPreset(flagDifficulty))
	if err != nil {
		return config.Constants{}, "", err
	}
	logger.Debug("constants loaded", "source", source)
	return c, source, nil
}

// applyOverrides applies a difficulty preset and --fps. Reloaded constants go
// through it too so the chosen difficulty and the flags keep winning.
func applyOverrides(c config.Constants, preset config.DifficultyPreset) (config.Constants, error) {
	c = c.Clone()
	if err := config.ApplyPreset(&c.Rules, preset); err != nil {
		return config.Constants{}, err
	}
	if flagFPS > 0 {
		c.TargetFPS = flagFPS
	}
	return c, nil
}

// seed returns --seed, or a time based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
