package config

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/kamstrup/intmap"
)

// Named palette entries. Everything else in the colour table must be a tile value.
const (
	ColourBackground = "background"
	ColourEmpty      = "0"
	ColourDark       = "dark"
	ColourLight      = "light"
	ColourOver       = "over"
	ColourSuper      = "super"
	ColourFPS        = "fps"
)

var requiredColours = []string{ColourBackground, ColourEmpty, ColourDark, ColourLight, ColourOver}

// Palette resolves tile values and roles to colours.
type Palette struct {
	tiles *intmap.Map[int, color.RGBA]

	Background color.RGBA
	Empty      color.RGBA
	Dark       color.RGBA // Text on light tiles (2 and 4)
	Light      color.RGBA // Text on everything else
	Over       color.RGBA // End-of-round overlay, usually translucent
	Super      color.RGBA // Tiles above the largest listed value
	FPS        color.RGBA
}

// NewPalette builds a palette from the constants colour table.
func NewPalette(table map[string]RGBA) (*Palette, error) {
	for _, name := range requiredColours {
		if _, ok := table[name]; !ok {
			return nil, fmt.Errorf("%w: colour %q is required", ErrInvalidConstants, name)
		}
	}

	p := &Palette{
		tiles:      intmap.New[int, color.RGBA](len(table)),
		Background: table[ColourBackground].Color(),
		Empty:      table[ColourEmpty].Color(),
		Dark:       table[ColourDark].Color(),
		Light:      table[ColourLight].Color(),
		Over:       table[ColourOver].Color(),
		FPS:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
	if c, ok := table[ColourFPS]; ok {
		p.FPS = c.Color()
	}

	largest := 0
	for name, c := range table {
		switch name {
		case ColourBackground, ColourEmpty, ColourDark, ColourLight, ColourOver, ColourSuper, ColourFPS:
			continue
		}
		v, err := strconv.Atoi(name)
		if err != nil || v <= 0 {
			return nil, fmt.Errorf("%w: unknown colour entry %q", ErrInvalidConstants, name)
		}
		p.tiles.Put(v, c.Color())
		if v > largest {
			largest = v
		}
	}

	switch c, ok := table[ColourSuper]; {
	case ok:
		p.Super = c.Color()
	case largest > 0:
		p.Super, _ = p.tiles.Get(largest)
	default:
		p.Super = p.Empty
	}
	return p, nil
}

// Tile returns the fill colour for a tile value. Zero is the empty cell.
func (p *Palette) Tile(value int) color.RGBA {
	if value == 0 {
		return p.Empty
	}
	if c, ok := p.tiles.Get(value); ok {
		return c
	}
	return p.Super
}

// Text returns the colour of the number drawn on a tile.
func (p *Palette) Text(value int) color.RGBA {
	if value == 2 || value == 4 {
		return p.Dark
	}
	return p.Light
}

// Len returns how many tile values have their own colour.
func (p *Palette) Len() int {
	return p.tiles.Len()
}
