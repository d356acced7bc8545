package t2048

import (
	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
)

// Style is the visual state shared by the board and all of its tiles.
// It is replaced in place when constants are reloaded.
type Style struct {
	Palette       *config.Palette
	Box           int // Side of one grid cell
	Padding       int // Gap between cell edge and tile
	Font          core.FaceKind
	FontSize      float64
	DebugFontSize float64
}

// NewStyle derives the drawing parameters from constants.
func NewStyle(c config.Constants) (*Style, error) {
	p, err := config.NewPalette(c.Colour)
	if err != nil {
		return nil, err
	}
	return &Style{
		Palette:       p,
		Box:           c.BoxSize(),
		Padding:       c.Padding,
		Font:          core.ParseFace(c.Font),
		FontSize:      c.FontSize,
		DebugFontSize: c.DebugFontSize,
	}, nil
}

// CellRect returns the area of the tile at (row, col).
func (s *Style) CellRect(row, col int) core.Rect {
	return core.NewRect(col*s.Box, row*s.Box, s.Box, s.Box).Inset(s.Padding)
}

// BoardRect returns the area covered by the whole grid.
func (s *Style) BoardRect() core.Rect {
	return core.NewRect(0, 0, s.Box*BoardSize, s.Box*BoardSize)
}
