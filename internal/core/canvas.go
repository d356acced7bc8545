package core

import "image/color"

// FaceKind selects one of the fonts a platform offers.
type FaceKind int

const (
	FaceRegular FaceKind = iota
	FaceBold
	FaceMono
)

// ParseFace maps a constants-file font name to a FaceKind.
// Unknown names fall back to FaceBold, the tile font.
func ParseFace(name string) FaceKind {
	switch name {
	case "regular":
		return FaceRegular
	case "mono", "monospace":
		return FaceMono
	default:
		return FaceBold
	}
}

// TextStyle describes how a string is drawn.
type TextStyle struct {
	Color color.RGBA
	Size  float64 // Font size in canvas units; terminals ignore it
	Face  FaceKind
}

// Canvas is the drawing surface actors render onto. Coordinates are in the
// logical space reported by Size; platforms scale to their own units.
type Canvas interface {
	// Size returns the logical width and height.
	Size() (w, h int)

	// Fill paints the whole canvas.
	Fill(c color.RGBA)

	// FillRect paints a rectangle. Colours with alpha < 255 blend.
	FillRect(r Rect, c color.RGBA)

	// DrawText draws a single line with its top-left corner at (x, y).
	DrawText(x, y int, s string, st TextStyle)

	// DrawTextCentered draws a single line centred inside r.
	DrawTextCentered(r Rect, s string, st TextStyle)
}

// ScreenCanvas maps a logical canvas onto a region of a character Screen.
type ScreenCanvas struct {
	screen  *Screen
	region  Rect
	logical Rect
}

// NewScreenCanvas creates a canvas of logical size w x h drawn into region.
func NewScreenCanvas(s *Screen, region Rect, w, h int) *ScreenCanvas {
	return &ScreenCanvas{
		screen:  s,
		region:  region,
		logical: NewRect(0, 0, max(w, 1), max(h, 1)),
	}
}

// Size returns the logical size.
func (c *ScreenCanvas) Size() (int, int) {
	return c.logical.W, c.logical.H
}

func (c *ScreenCanvas) mapX(x int) int {
	return c.region.X + x*c.region.W/c.logical.W
}

func (c *ScreenCanvas) mapY(y int) int {
	return c.region.Y + y*c.region.H/c.logical.H
}

// toCells converts a logical rect into screen cells. Non-empty logical rects
// always cover at least one cell.
func (c *ScreenCanvas) toCells(r Rect) Rect {
	x0, y0 := c.mapX(r.X), c.mapY(r.Y)
	x1, y1 := c.mapX(r.Right()), c.mapY(r.Bottom())
	if r.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if r.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Fill paints the whole region.
func (c *ScreenCanvas) Fill(col color.RGBA) {
	c.FillRect(c.logical, col)
}

// FillRect paints the cells under r. Opaque fills erase text; translucent
// fills tint both background and text.
func (c *ScreenCanvas) FillRect(r Rect, col color.RGBA) {
	cells := c.toCells(r)
	for y := cells.Y; y < cells.Bottom(); y++ {
		for x := cells.X; x < cells.Right(); x++ {
			cell := c.screen.GetCell(x, y)
			if col.A == 255 {
				cell = Cell{Rune: ' ', BG: col}
			} else {
				cell.BG = Blend(cell.BG, col)
				if cell.FG.A != 0 {
					cell.FG = Blend(cell.FG, col)
				}
			}
			c.screen.SetCell(x, y, cell)
		}
	}
}

// DrawText writes s starting at the cell under (x, y), keeping backgrounds.
func (c *ScreenCanvas) DrawText(x, y int, s string, st TextStyle) {
	c.writeRunes(c.mapX(x), c.mapY(y), []rune(s), st.Color)
}

// DrawTextCentered writes s in the middle row of the cells under r.
func (c *ScreenCanvas) DrawTextCentered(r Rect, s string, st TextStyle) {
	cells := c.toCells(r)
	runes := []rune(s)
	x := cells.X + (cells.W-len(runes))/2
	y := cells.Y + (cells.H-1)/2
	c.writeRunes(x, y, runes, st.Color)
}

func (c *ScreenCanvas) writeRunes(x, y int, runes []rune, fg color.RGBA) {
	for i, r := range runes {
		cell := c.screen.GetCell(x+i, y)
		cell.Rune = r
		cell.FG = fg
		c.screen.SetCell(x+i, y, cell)
	}
}
