package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/platform/tui"
	"github.com/vovakirdan/game2048/internal/platform/window"
	"github.com/vovakirdan/game2048/internal/registry"
)

const (
	uiWindow   = "window"
	uiTerminal = "terminal"
)

var (
	flagUI    string
	flagWatch bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant. Without a variant the window
opens classic 2048 and the terminal shows the variant picker first.

Controls (default constants):
  Arrows/WASD  - Slide tiles
  R            - Restart
  P            - Pause
  Esc          - Quit
  Ctrl+S       - Save a text screenshot (terminal only)

Examples:
  game2048 play
  game2048 play 2048_endless
  game2048 play --ui terminal
  game2048 play --difficulty hard --seed 42
  game2048 play --constants ./constants.json --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUI, "ui", uiWindow, "Frontend: window or terminal")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the constants file when it changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	terminal := flagUI == uiTerminal
	if !terminal && flagUI != uiWindow {
		return fmt.Errorf("unknown --ui %q (want %s or %s)", flagUI, uiWindow, uiTerminal)
	}

	logger, closeLog, err := newLogger(terminal)
	if err != nil {
		return err
	}
	defer closeLog()

	consts, source, err := loadConstants(logger)
	if err != nil {
		return err
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: consts.TargetFPS,
		Seed:     seed(),
	}

	gameID := "2048"
	preset := config.DifficultyPreset(flagDifficulty)
	switch {
	case len(args) == 1:
		gameID = args[0]
	case terminal:
		res, err := tui.RunMenu(cfg, preset)
		if err != nil {
			return err
		}
		if res.Quit {
			return nil
		}
		gameID = res.GameID
		cfg.ScreenW, cfg.ScreenH = res.Config.ScreenW, res.Config.ScreenH
		preset = res.Difficulty
		if err := config.ApplyPreset(&consts.Rules, preset); err != nil {
			return err
		}
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'game2048 list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID, registry.Options{Constants: consts, Logger: logger})
	if err != nil {
		return err
	}
	logger.Info("starting", "game", gameID, "ui", flagUI, "seed", cfg.Seed, "constants", source)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var updates <-chan config.Constants
	if flagWatch {
		updates, err = watch(gctx, g, source, preset, logger)
		if err != nil {
			return err
		}
	}

	// The window backend has to run on the main goroutine.
	var runErr error
	if terminal {
		runErr = tui.Run(game, cfg, tui.Options{
			Constants: consts,
			Logger:    logger,
			Updates:   updates,
		}, tea.WithContext(gctx))
		if errors.Is(runErr, tea.ErrProgramKilled) && gctx.Err() != nil {
			runErr = nil
		}
	} else {
		runErr = window.Run(gctx, game, window.Options{
			Constants: consts,
			Seed:      cfg.Seed,
			Logger:    logger,
			Updates:   updates,
		})
	}

	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// watch starts a watcher on path in g and returns reloaded constants with
// preset and the command line overrides applied. The channel closes when ctx
// ends.
func watch(ctx context.Context, g *errgroup.Group, path string, preset config.DifficultyPreset, logger *log.Logger) (<-chan config.Constants, error) {
	if path == config.SourceEmbedded {
		logger.Warn("no constants file to watch, using embedded defaults")
		return nil, nil
	}

	w, err := config.NewWatcher(path, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("watching constants", "path", w.Path())

	out := make(chan config.Constants, 1)
	g.Go(func() error {
		return w.Run(ctx)
	})
	g.Go(func() error {
		relay(w.Updates(), out, preset, logger)
		return nil
	})
	return out, nil
}

// relay copies reloads from in to out with the overrides applied until in
// closes, then closes out. Only the newest value waits in out.
func relay(in <-chan config.Constants, out chan config.Constants, preset config.DifficultyPreset, logger *log.Logger) {
	defer close(out)
	for c := range in {
		c, err := applyOverrides(c, preset)
		if err != nil {
			logger.Warn("reloaded constants rejected", "err", err)
			continue
		}
		select {
		case <-out:
		default:
		}
		out <- c
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
