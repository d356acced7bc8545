package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/registry"
)

// Rows reserved below the board for the status line and help footer.
const chromeRows = 2

// Minimum board area in cells.
const (
	minBoardW = 24
	minBoardH = 12
)

// Options configures a terminal game.
type Options struct {
	Constants config.Constants
	Logger    *log.Logger

	// Updates delivers reloaded constants; nil disables hot reload.
	Updates <-chan config.Constants

	// AllowBack makes the quit key return to the menu instead of exiting.
	AllowBack bool
}

// Model is the Bubble Tea model for running a game in the terminal.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	consts     config.Constants
	config     core.RuntimeConfig
	keys       *KeyMapper
	help       help.Model
	logger     *log.Logger
	updates    <-chan config.Constants
	inputFrame core.InputFrame
	gameState  core.GameState
	lastTick   time.Time
	allowBack  bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = opts.Constants.TargetFPS
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		consts:     opts.Constants,
		config:     cfg,
		keys:       NewKeyMapper(opts.Constants.Bindings()),
		help:       help.New(),
		logger:     opts.Logger,
		updates:    opts.Updates,
		inputFrame: core.NewInputFrame(),
		allowBack:  opts.AllowBack,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForConstants(m.updates))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConstantsMsg:
		return m.handleConstants(config.Constants(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		if m.allowBack && msg.String() != "ctrl+c" {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps its state;
// only the screen buffer follows the terminal.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one frame with the input collected since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	result := m.game.Step(m.inputFrame, dt)
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("game over", "game", m.game.ID(), "score", result.State.Score, "won", result.State.Won)
	}
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// handleConstants installs reloaded constants and waits for the next ones.
func (m Model) handleConstants(c config.Constants) (tea.Model, tea.Cmd) {
	if rc, ok := m.game.(registry.Reconfigurable); ok {
		if err := rc.ApplyConstants(c); err != nil {
			m.logger.Warn("reload rejected", "err", err)
			return m, waitForConstants(m.updates)
		}
	}
	m.consts = c
	m.keys = NewKeyMapper(c.Bindings())
	m.logger.Info("constants applied")
	return m, waitForConstants(m.updates)
}

// boardRegion returns the cells the board is drawn into. Terminal cells are
// about twice as tall as wide, so the region is twice as wide as high.
func boardRegion(w, h int) core.Rect {
	rows := h - chromeRows
	bh := min(rows, w/2)
	bw := bh * 2
	return core.NewRect((w-bw)/2, (rows-bh)/2, bw, bh)
}

// render draws the game into the screen buffer.
func (m Model) render() {
	m.screen.Clear()
	w, h := m.screen.Width(), m.screen.Height()

	region := boardRegion(w, h)
	if region.W < minBoardW || region.H < minBoardH {
		m.screen.DrawTextCentered(h/2, "Window too small")
		m.screen.DrawTextCentered(h/2+1, "Please resize terminal")
		return
	}

	m.game.Render(core.NewScreenCanvas(m.screen, region, m.consts.Size, m.consts.Size))

	status := fmt.Sprintf("%s   Score: %d", m.game.Title(), m.gameState.Score)
	if m.gameState.Paused {
		status += "   [paused]"
	}
	m.screen.DrawText(region.X, region.Bottom(), status)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	dir := filepath.Join(home, ".config", "game2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.render()

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.screen.Width(), lipgloss.Center, m.help.View(m.keys)))
	return b.String()
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options, programOpts ...tea.ProgramOption) error {
	model := NewModel(game, cfg, opts)

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	p := tea.NewProgram(model, programOpts...)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		opts.Logger.Info("session finished", "game", game.ID(), "score", fm.State().Score)
	}
	return nil
}
