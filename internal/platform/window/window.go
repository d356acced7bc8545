// Package window runs a game in a desktop window using ebiten.
// It owns the frame loop: it measures real frame time, polls the keyboard,
// steps the game and hands it a canvas to draw on.
package window

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/registry"
)

// Options configures a window run.
type Options struct {
	Constants config.Constants
	Seed      int64
	Logger    *log.Logger

	// Updates delivers reloaded constants; nil disables hot reload.
	Updates <-chan config.Constants
}

// Driver adapts a registry.Game to ebiten.Game.
type Driver struct {
	ctx     context.Context
	game    registry.Game
	consts  config.Constants
	keymap  KeyMap
	fonts   *Fonts
	logger  *log.Logger
	updates <-chan config.Constants

	pressed []ebiten.Key
	last    time.Time

	// Hooks into ebiten's global state; replaced in tests.
	now         func() time.Time
	justPressed func([]ebiten.Key) []ebiten.Key
	configure   func(config.Constants)
}

// NewDriver prepares a driver and resets the game.
func NewDriver(ctx context.Context, game registry.Game, opts Options) (*Driver, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}

	d := &Driver{
		ctx:     ctx,
		game:    game,
		fonts:   fonts,
		logger:  opts.Logger,
		updates: opts.Updates,

		now:         time.Now,
		justPressed: inpututil.AppendJustPressedKeys,
		configure:   configureWindow,
	}
	d.setConstants(opts.Constants)

	game.Reset(core.RuntimeConfig{
		ScreenW:  opts.Constants.Size,
		ScreenH:  opts.Constants.Size,
		TickRate: opts.Constants.TargetFPS,
		Seed:     opts.Seed,
	})
	return d, nil
}

func (d *Driver) setConstants(c config.Constants) {
	d.consts = c
	km, unknown := NewKeyMap(c.Bindings())
	if len(unknown) > 0 {
		d.logger.Warn("ignoring unknown key names", "keys", unknown)
	}
	d.keymap = km
}

// Update runs one frame. Returning ebiten.Termination ends RunGame cleanly.
func (d *Driver) Update() error {
	if d.ctx.Err() != nil {
		return ebiten.Termination
	}

	d.applyUpdates()

	now := d.now()
	dt := 0.0
	if !d.last.IsZero() {
		dt = now.Sub(d.last).Seconds()
	}
	d.last = now

	d.pressed = d.justPressed(d.pressed[:0])
	frame := d.keymap.Frame(d.pressed)
	if frame.Has(core.ActionQuit) {
		d.logger.Info("quit requested")
		return ebiten.Termination
	}

	d.game.Step(frame, dt)
	return nil
}

// applyUpdates installs constants that arrived since the last frame.
func (d *Driver) applyUpdates() {
	if d.updates == nil {
		return
	}
	select {
	case c, ok := <-d.updates:
		if !ok {
			d.updates = nil
			return
		}
		if rc, ok := d.game.(registry.Reconfigurable); ok {
			if err := rc.ApplyConstants(c); err != nil {
				d.logger.Warn("reload rejected", "err", err)
				return
			}
		}
		d.setConstants(c)
		d.configure(c)
		d.logger.Info("constants applied")
	default:
	}
}

// configureWindow sets the window properties that follow the constants.
func configureWindow(c config.Constants) {
	ebiten.SetWindowTitle(c.Title)
	ebiten.SetWindowSize(c.Size, c.Size)
	ebiten.SetTPS(c.TargetFPS)
}

// Draw renders the game onto the screen image.
func (d *Driver) Draw(screen *ebiten.Image) {
	d.game.Render(NewCanvas(screen, d.fonts))
}

// Layout fixes the logical screen to the constants size; ebiten scales it
// to the window.
func (d *Driver) Layout(_, _ int) (int, int) {
	return d.consts.Size, d.consts.Size
}

// Run opens the window and blocks until it is closed, a quit key is pressed
// or ctx is cancelled.
func Run(ctx context.Context, game registry.Game, opts Options) error {
	d, err := NewDriver(ctx, game, opts)
	if err != nil {
		return err
	}

	c := opts.Constants
	d.configure(c)

	palette, err := config.NewPalette(c.Colour)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	icon, err := WindowIcon(c.Icon, palette)
	if err != nil {
		d.logger.Warn("using generated icon", "err", err)
	}
	ebiten.SetWindowIcon([]image.Image{icon})

	d.logger.Info("window opened", "game", game.ID(), "size", c.Size, "tps", c.TargetFPS)
	if err := ebiten.RunGame(d); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	d.logger.Info("window closed", "score", game.State().Score)
	return nil
}
