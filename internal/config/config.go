// Package config provides loading, validation and live reloading of the game
// constants file: window and tile geometry, fonts, key bindings, the colour
// palette and the board rules.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math/bits"
	"strconv"

	"github.com/vovakirdan/game2048/internal/core"
)

// ErrInvalidConstants is wrapped by every validation failure.
var ErrInvalidConstants = errors.New("invalid constants")

// Constants holds everything that can be changed without touching code.
type Constants struct {
	Title         string            `yaml:"title" json:"title"`
	Size          int               `yaml:"size" json:"size"`       // Window side in pixels (square)
	Padding       int               `yaml:"padding" json:"padding"` // Gap around each tile
	Font          string            `yaml:"font" json:"font"`       // regular, bold or mono
	FontSize      float64           `yaml:"font_size" json:"font_size"`
	DebugFontSize float64           `yaml:"debug_font_size" json:"debug_font_size"`
	TargetFPS     int               `yaml:"target_fps" json:"target_fps"`
	ShowFPS       bool              `yaml:"show_fps" json:"show_fps"`
	Icon          string            `yaml:"icon,omitempty" json:"icon,omitempty"`
	Keys          map[string]string `yaml:"keys" json:"keys"`     // Key name -> action name
	Colour        map[string]RGBA   `yaml:"colour" json:"colour"` // Tile value or role -> colour
	Rules         Rules             `yaml:"rules" json:"rules"`
}

// Rules are the board parameters.
type Rules struct {
	WinValue        int     `yaml:"win_value" json:"win_value"` // 0 disables winning
	SpawnFourChance float64 `yaml:"spawn_four_chance" json:"spawn_four_chance"`
	InitialTiles    int     `yaml:"initial_tiles" json:"initial_tiles"`
}

// BoxSize returns the side of one grid cell in pixels.
func (c Constants) BoxSize() int {
	return c.Size / BoardSize
}

// BoardSize is the number of rows and columns of the board.
const BoardSize = 4

// Validate checks the constants for values the game cannot work with.
func (c Constants) Validate() error {
	if c.Size < BoardSize {
		return fmt.Errorf("%w: size %d is too small", ErrInvalidConstants, c.Size)
	}
	if c.Padding < 0 || 2*c.Padding >= c.BoxSize() {
		return fmt.Errorf("%w: padding %d does not fit a %dpx cell", ErrInvalidConstants, c.Padding, c.BoxSize())
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("%w: target_fps must be positive, got %d", ErrInvalidConstants, c.TargetFPS)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: font_size must be positive", ErrInvalidConstants)
	}
	if err := c.Rules.Validate(); err != nil {
		return err
	}
	for key, name := range c.Keys {
		if _, err := core.ParseAction(name); err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrInvalidConstants, key, err)
		}
	}
	if _, err := NewPalette(c.Colour); err != nil {
		return err
	}
	return nil
}

// Validate checks the rule values.
func (r Rules) Validate() error {
	if r.SpawnFourChance < 0 || r.SpawnFourChance > 1 {
		return fmt.Errorf("%w: spawn_four_chance %v outside [0, 1]", ErrInvalidConstants, r.SpawnFourChance)
	}
	if r.WinValue != 0 && (r.WinValue < 4 || bits.OnesCount(uint(r.WinValue)) != 1) {
		return fmt.Errorf("%w: win_value %d is not a power of two >= 4", ErrInvalidConstants, r.WinValue)
	}
	if r.InitialTiles < 0 || r.InitialTiles > BoardSize*BoardSize {
		return fmt.Errorf("%w: initial_tiles %d out of range", ErrInvalidConstants, r.InitialTiles)
	}
	return nil
}

// Bindings resolves the key table into actions.
// Invalid entries are skipped; Validate reports them.
func (c Constants) Bindings() map[string]core.Action {
	out := make(map[string]core.Action, len(c.Keys))
	for key, name := range c.Keys {
		if a, err := core.ParseAction(name); err == nil {
			out[key] = a
		}
	}
	return out
}

// Clone returns a deep copy so callers may mutate maps freely.
func (c Constants) Clone() Constants {
	out := c
	out.Keys = make(map[string]string, len(c.Keys))
	for k, v := range c.Keys {
		out.Keys[k] = v
	}
	out.Colour = make(map[string]RGBA, len(c.Colour))
	for k, v := range c.Colour {
		out.Colour[k] = v
	}
	return out
}

// RGBA is a colour written as [r, g, b], [r, g, b, a] or "#rrggbb[aa]".
type RGBA color.RGBA

// Color converts to the standard library type.
func (c RGBA) Color() color.RGBA {
	return color.RGBA(c)
}

func parseHexColour(s string) (RGBA, error) {
	if len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return RGBA{}, fmt.Errorf("%w: colour %q is not #rrggbb or #rrggbbaa", ErrInvalidConstants, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConstants, s, err)
	}
	if len(s) == 7 {
		return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func rgbaFromInts(vals []int) (RGBA, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return RGBA{}, fmt.Errorf("%w: colour needs 3 or 4 components, got %d", ErrInvalidConstants, len(vals))
	}
	for _, v := range vals {
		if v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("%w: colour component %d outside [0, 255]", ErrInvalidConstants, v)
		}
	}
	c := RGBA{R: uint8(vals[0]), G: uint8(vals[1]), B: uint8(vals[2]), A: 255}
	if len(vals) == 4 {
		c.A = uint8(vals[3])
	}
	return c, nil
}

func (c RGBA) components() []int {
	if c.A == 255 {
		return []int{int(c.R), int(c.G), int(c.B)}
	}
	return []int{int(c.R), int(c.G), int(c.B), int(c.A)}
}
