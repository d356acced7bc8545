package window

import (
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/game2048/internal/core"
)

// keysByName indexes every ebiten key by its lowercase name ("arrowup", "a").
var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// KeyMap translates physical keys into game actions.
type KeyMap map[ebiten.Key]core.Action

// NewKeyMap builds a key map from constants bindings (key name -> action).
// Names are matched case-insensitively against ebiten key names. Unknown
// names are returned sorted so the caller can report them.
func NewKeyMap(bindings map[string]core.Action) (KeyMap, []string) {
	km := make(KeyMap, len(bindings))
	var unknown []string
	for name, action := range bindings {
		k, ok := keysByName[strings.ToLower(name)]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		km[k] = action
	}
	sort.Strings(unknown)
	return km, unknown
}

// Frame converts the keys pressed this tick into an input frame.
func (km KeyMap) Frame(pressed []ebiten.Key) core.InputFrame {
	frame := core.NewInputFrame()
	for _, k := range pressed {
		if a, ok := km[k]; ok {
			frame.Set(a)
		}
	}
	return frame
}
