// Package t2048 implements the 2048 sliding-tile game: tiles and the board
// as scene actors, plus the Game session that ties them to the platforms.
package t2048

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/registry"
	"github.com/vovakirdan/game2048/internal/scene"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeEndless Mode = "endless"
)

// fpsSmoothing is the weight kept from the previous FPS average.
const fpsSmoothing = 0.9

// Game is one 2048 session.
type Game struct {
	mode   Mode
	logger *log.Logger
	consts config.Constants
	style  *Style
	rng    *rand.Rand

	round  uuid.UUID
	scene  *scene.Scene
	board  *Board
	status Status
	paused bool

	frames uint64
	moves  int
	fps    float64
}

// New creates a classic game that is won on reaching the win value.
func New(opts registry.Options) *Game {
	return newGame(ModeClassic, opts)
}

// NewEndless creates a game without a win condition.
func NewEndless(opts registry.Options) *Game {
	return newGame(ModeEndless, opts)
}

func newGame(mode Mode, opts registry.Options) *Game {
	opts = opts.WithDefaults()
	g := &Game{mode: mode, logger: opts.Logger}

	err := opts.Constants.Validate()
	var style *Style
	if err == nil {
		style, err = NewStyle(opts.Constants)
	}
	if err != nil {
		g.logger.Warn("constants rejected, using defaults", "err", err)
		opts.Constants = config.Default()
		style, _ = NewStyle(opts.Constants)
	}
	g.consts = opts.Constants
	g.style = style
	g.rng = rand.New(rand.NewSource(0))
	g.board = NewBoard(style, g.rules(), g.rng)
	g.scene = scene.New(g.board)
	for _, t := range g.board.Tiles() {
		g.scene.Add(t)
	}
	return g
}

func init() {
	registry.Register("2048", func(opts registry.Options) registry.Game {
		return New(opts)
	})
	registry.Register("2048_endless", func(opts registry.Options) registry.Game {
		return NewEndless(opts)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return g.consts.Title + " (Endless)"
	}
	return g.consts.Title
}

// rules returns the constants rules adjusted for the mode.
func (g *Game) rules() config.Rules {
	r := g.consts.Rules
	if g.mode == ModeEndless {
		r.WinValue = 0
	}
	return r
}

// Reset reseeds the RNG and starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng.Seed(cfg.Seed)
	g.frames = 0
	g.fps = 0
	g.restart()
}

// restart starts a new round, keeping the RNG stream.
func (g *Game) restart() {
	g.round = uuid.New()
	g.board.SetRules(g.rules())
	g.board.Reset()
	g.status = StatusPlaying
	g.paused = false
	g.moves = 0
	g.logger.Info("round started", "game", g.ID(), "round", g.round)
}

// Step applies one frame of input and advances the scene by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.frames++

	if in.Has(core.ActionRestart) {
		g.restart()
	}

	if in.Has(core.ActionPause) && g.status == StatusPlaying {
		g.paused = !g.paused
	}

	if !g.paused && g.status == StatusPlaying {
		if dir, ok := DirectionFromInput(in); ok {
			g.move(dir)
		}
	}

	g.scene.Advance(dt)

	if g.status == StatusPlaying {
		if g.status = g.board.CheckState(); g.status != StatusPlaying {
			g.logger.Info("round over",
				"round", g.round,
				"result", g.status,
				"score", g.board.Score(),
				"highest", g.board.Highest(),
				"moves", g.moves)
		}
	}

	g.sampleFPS(dt)

	return core.StepResult{State: g.State()}
}

func (g *Game) move(dir Direction) {
	moved, gained := g.board.Move(dir)
	if !moved {
		return
	}
	g.moves++
	g.logger.Debug("move", "dir", dir, "gained", gained, "score", g.board.Score())
}

// sampleFPS folds the frame time into an exponential moving average.
func (g *Game) sampleFPS(dt float64) {
	if dt <= 0 {
		return
	}
	if g.fps == 0 {
		g.fps = 1 / dt
		return
	}
	g.fps = fpsSmoothing*g.fps + (1-fpsSmoothing)*(1/dt)
}

// FPS returns the smoothed frame rate.
func (g *Game) FPS() float64 {
	return g.fps
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.board.Score(),
		GameOver: g.status != StatusPlaying,
		Won:      g.status == StatusWon,
		Paused:   g.paused,
	}
}

// Board returns the board, mainly for tests and debugging.
func (g *Game) Board() *Board {
	return g.board
}

// ApplyConstants swaps visuals and key hints immediately. Rule changes are
// picked up when the next round starts.
func (g *Game) ApplyConstants(c config.Constants) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("t2048: apply constants: %w", err)
	}
	style, err := NewStyle(c)
	if err != nil {
		return fmt.Errorf("t2048: apply constants: %w", err)
	}
	*g.style = *style
	g.consts = c
	g.logger.Debug("constants applied", "game", g.ID())
	return nil
}

// keyFor returns the first key name, alphabetically, bound to a.
func (g *Game) keyFor(a core.Action) string {
	var keys []string
	for key, action := range g.consts.Bindings() {
		if action == a {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}
