package tui

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/game2048/internal/core"
)

// teaToKeyName maps Bubble Tea key strings to the key names used in the
// constants file, which follow the window backend's naming.
var teaToKeyName = map[string]string{
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"esc":       "Escape",
	"enter":     "Enter",
	" ":         "Space",
	"space":     "Space",
	"tab":       "Tab",
	"backspace": "Backspace",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
}

// KeyName converts a Bubble Tea key message to a constants key name.
// Single characters are upper-cased ("w" -> "W").
func KeyName(msg tea.KeyMsg) string {
	s := msg.String()
	if name, ok := teaToKeyName[s]; ok {
		return name
	}
	if utf8.RuneCountInString(s) == 1 {
		return strings.ToUpper(s)
	}
	return s
}

// teaKey is the reverse of KeyName, used for help bindings.
func teaKey(name string) string {
	for tk, n := range teaToKeyName {
		if strings.EqualFold(n, name) && tk != " " {
			return tk
		}
	}
	return strings.ToLower(name)
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]core.Action // lowercase key name -> action
	help     []key.Binding
}

// NewKeyMapper creates a key mapper from constants bindings.
func NewKeyMapper(bindings map[string]core.Action) *KeyMapper {
	km := &KeyMapper{bindings: make(map[string]core.Action, len(bindings))}
	byAction := make(map[core.Action][]string)
	for name, a := range bindings {
		km.bindings[strings.ToLower(name)] = a
		byAction[a] = append(byAction[a], teaKey(name))
	}

	for _, entry := range []struct {
		actions []core.Action
		label   string
	}{
		{[]core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}, "move"},
		{[]core.Action{core.ActionRestart}, "restart"},
		{[]core.Action{core.ActionPause}, "pause"},
		{[]core.Action{core.ActionQuit}, "quit"},
	} {
		var keys []string
		for _, a := range entry.actions {
			keys = append(keys, byAction[a]...)
		}
		if len(keys) == 0 {
			continue
		}
		sort.Strings(keys)
		km.help = append(km.help, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKeys(keys), entry.label),
		))
	}
	return km
}

// helpKeys renders a short key list, arrows collapsed to glyphs.
func helpKeys(keys []string) string {
	var glyphs, rest []string
	for _, arrow := range []struct{ key, glyph string }{
		{"up", "↑"}, {"down", "↓"}, {"left", "←"}, {"right", "→"},
	} {
		if slices.Contains(keys, arrow.key) {
			glyphs = append(glyphs, arrow.glyph)
		}
	}
	for _, k := range keys {
		switch k {
		case "up", "down", "left", "right":
		default:
			rest = append(rest, k)
		}
	}
	out := strings.Join(glyphs, "")
	if len(rest) > 0 {
		if out != "" {
			out += "/"
		}
		out += strings.Join(rest, "/")
	}
	return out
}

// MapKey translates a key message to a game action.
// Ctrl+C is always a quit request, whatever the bindings say.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if msg.String() == "ctrl+c" {
		return core.ActionQuit, true
	}
	a, ok := km.bindings[strings.ToLower(KeyName(msg))]
	if !ok {
		return core.ActionNone, false
	}
	return a, a == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// ShortHelp returns the bindings shown in the help footer.
func (km *KeyMapper) ShortHelp() []key.Binding {
	return km.help
}

// FullHelp returns the help bindings in a single column.
func (km *KeyMapper) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.help}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Menus use fixed keys.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
