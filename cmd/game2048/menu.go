package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants interactively in the terminal",
	Long: `Start the terminal variant picker.

Use arrow keys or j/k to navigate, left/right to change the difficulty and
Enter to play. Esc in a game returns to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Play
  Q               - Quit

Examples:
  game2048 menu
  game2048 menu --difficulty hard
  game2048 menu --constants ./constants.yaml --watch`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the constants file when it changes")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	consts, source, err := loadConstants(logger)
	if err != nil {
		return err
	}
	live := newLiveConstants(consts)

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: consts.TargetFPS,
		Seed:     flagSeed,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if err := follow(gctx, g, source, logger, live.Set); err != nil {
		return err
	}

	runErr := tui.RunSession(live.Get, cfg, config.DifficultyPreset(flagDifficulty), logger, tea.WithContext(gctx))
	if errors.Is(runErr, tea.ErrProgramKilled) && gctx.Err() != nil {
		runErr = nil
	}

	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
