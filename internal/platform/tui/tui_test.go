package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	_ "github.com/vovakirdan/game2048/internal/games/t2048"
	"github.com/vovakirdan/game2048/internal/registry"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, "ArrowUp"},
		{tea.KeyMsg{Type: tea.KeyLeft}, "ArrowLeft"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "Enter"},
		{tea.KeyMsg{Type: tea.KeySpace}, "Space"},
		{runes("w"), "W"},
		{runes("R"), "R"},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, "ctrl+s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyName(tt.msg), "key %q", tt.msg.String())
	}
}

func TestKeyMapperDefaults(t *testing.T) {
	km := NewKeyMapper(config.Default().Bindings())

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runes("s"), core.ActionDown, false},
		{runes("A"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runes("r"), core.ActionRestart, false},
		{runes("p"), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		assert.Equal(t, tt.action, action, "key %q", tt.msg.String())
		assert.Equal(t, tt.quit, quit, "key %q", tt.msg.String())
	}
}

func TestKeyMapperCtrlCAlwaysQuits(t *testing.T) {
	km := NewKeyMapper(map[string]core.Action{"W": core.ActionUp})

	action, quit := km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, core.ActionQuit, action)
	assert.True(t, quit)

	_, quit = km.MapKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, quit, "escape is not bound here")
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper(config.Default().Bindings())
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(runes("d"), &frame))
	assert.True(t, frame.Has(core.ActionRight))

	assert.True(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEsc}, &frame))
	assert.False(t, frame.Has(core.ActionQuit), "quit is reported, not queued")
}

func TestKeyMapperHelp(t *testing.T) {
	km := NewKeyMapper(config.Default().Bindings())

	var got []string
	for _, b := range km.ShortHelp() {
		got = append(got, b.Help().Key+" "+b.Help().Desc)
	}
	assert.Equal(t, []string{
		"↑↓←→/a/d/s/w move",
		"r restart",
		"p pause",
		"esc quit",
	}, got)

	require.Len(t, km.FullHelp(), 1)
	assert.True(t, key.Matches(runes("w"), km.ShortHelp()[0]))
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("j"), MenuActionDown},
		{runes("h"), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapKeyToMenuAction(tt.msg), "key %q", tt.msg.String())
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(1, 1, "cd")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[1], "cd")
}

func TestBoardRegion(t *testing.T) {
	r := boardRegion(80, 30)
	assert.Equal(t, core.NewRect(12, 0, 56, 28), r)

	// A narrow terminal limits the height instead.
	r = boardRegion(40, 50)
	assert.Equal(t, 20, r.H)
	assert.Equal(t, 40, r.W)
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Constants.Size == 0 {
		opts.Constants = config.Default()
	}
	game, err := registry.Create("2048", registry.Options{Constants: opts.Constants})
	require.NoError(t, err)

	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, Seed: 1}, opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestModelTickAppliesInput(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, runes("p"))
	m, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd, "ticking continues")
	assert.True(t, m.State().Paused)

	// The frame is cleared after each tick.
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.True(t, m.State().Paused)
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsQuitting())
	assert.False(t, m.BackToMenu())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModelBackToMenu(t *testing.T) {
	m := newTestModel(t, Options{AllowBack: true})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	assert.Nil(t, cmd)

	_, cmd = update(t, m, TickMsg(time.Now()))
	assert.Nil(t, cmd, "ticking stops once leaving")

	m = newTestModel(t, Options{AllowBack: true})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.IsQuitting())
}

func TestModelRender(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, TickMsg(time.Now()))

	m.render()
	assert.Contains(t, m.screen.Row(28), "2048")
	assert.Contains(t, m.screen.Row(28), "Score: 0")
	assert.NotEmpty(t, m.View())
}

func TestModelTooSmall(t *testing.T) {
	m := newTestModel(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})

	m.render()
	assert.Contains(t, m.screen.String(), "Window too small")
}

func TestModelConstantsReload(t *testing.T) {
	updates := make(chan config.Constants, 1)
	m := newTestModel(t, Options{Updates: updates})

	c := config.Default()
	c.Title = "Reloaded"
	c.Keys["Q"] = "quit"

	m, cmd := update(t, m, ConstantsMsg(c))
	assert.NotNil(t, cmd, "waits for the next reload")
	assert.Equal(t, "Reloaded", m.game.Title())

	m, _ = update(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
}

func TestModelConstantsRejected(t *testing.T) {
	m := newTestModel(t, Options{})

	c := config.Default()
	c.Size = -1
	m, _ = update(t, m, ConstantsMsg(c))
	assert.Equal(t, "2048", m.game.Title())
}

func TestWaitForConstants(t *testing.T) {
	assert.Nil(t, waitForConstants(nil))

	ch := make(chan config.Constants, 1)
	ch <- config.Default()
	msg := waitForConstants(ch)()
	assert.IsType(t, ConstantsMsg{}, msg)

	close(ch)
	assert.Nil(t, waitForConstants(ch)())
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "")
	require.Len(t, m.items, 2)
	assert.Equal(t, config.DifficultyNormal, m.Difficulty())

	step := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}

	step(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, config.DifficultyHard, m.Difficulty())
	step(tea.KeyMsg{Type: tea.KeyLeft})
	step(tea.KeyMsg{Type: tea.KeyLeft})
	step(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, config.DifficultyEndless, m.Difficulty(), "wraps around")

	step(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	assert.Contains(t, m.View(), "Difficulty: < endless >")

	step(tea.KeyMsg{Type: tea.KeyEnter})
	res := m.result()
	assert.False(t, res.Quit)
	assert.Equal(t, "2048_endless", res.GameID)
	assert.Equal(t, config.DifficultyEndless, res.Difficulty)
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{}, config.DifficultyEasy)
	assert.Equal(t, config.DifficultyEasy, m.Difficulty())

	next, cmd := m.Update(runes("q"))
	m = next.(MenuModel)
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.True(t, m.result().Quit)
}

func TestSessionMenuGameMenu(t *testing.T) {
	s := NewSessionModel(config.Default, core.RuntimeConfig{}, config.DifficultyHard, log.New(io.Discard))

	step := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	step(tea.WindowSizeMsg{Width: 80, Height: 30})
	assert.False(t, s.InGame())

	cmd := step(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, s.InGame())
	assert.NotNil(t, cmd)
	assert.Equal(t, 80, s.game.screen.Width())

	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, s.InGame(), "escape returns to the menu")
	assert.Equal(t, config.DifficultyHard, s.menu.Difficulty())

	cmd = step(runes("q"))
	assert.NotNil(t, cmd)
	assert.Empty(t, s.View())
}
