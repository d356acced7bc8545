package t2048

import (
	"strconv"

	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/scene"
)

// Tile is one cell of the board. Tiles keep their grid position for the
// whole game; moves shift values between them.
type Tile struct {
	value  int
	row    int
	col    int
	merged bool // Already combined during the current move
	style  *Style
}

// NewTile creates an empty tile at (row, col).
func NewTile(row, col int, style *Style) *Tile {
	return &Tile{row: row, col: col, style: style}
}

// Value returns the tile value, 0 when empty.
func (t *Tile) Value() int { return t.value }

// Row returns the tile's grid row.
func (t *Tile) Row() int { return t.row }

// Col returns the tile's grid column.
func (t *Tile) Col() int { return t.col }

// SetValue replaces the value.
func (t *Tile) SetValue(v int) { t.value = v }

// IsZero reports whether the cell is empty.
func (t *Tile) IsZero() bool { return t.value == 0 }

// Merged reports whether the tile was produced by a merge this move.
func (t *Tile) Merged() bool { return t.merged }

// Reset empties the tile.
func (t *Tile) Reset() {
	t.value = 0
	t.merged = false
}

// CanCombine reports whether other may merge into t.
func (t *Tile) CanCombine(other *Tile) bool {
	return !t.IsZero() && t.value == other.value && !t.merged && !other.merged
}

// Combine doubles the value, marks the tile as merged and returns the new value.
func (t *Tile) Combine() int {
	t.value *= 2
	t.merged = true
	return t.value
}

// Update clears the merge mark so the tile can merge again next move.
func (t *Tile) Update(_ *scene.Scene, _ float64) {
	t.merged = false
}

// Draw paints the tile square and its value.
func (t *Tile) Draw(dst core.Canvas) {
	r := t.style.CellRect(t.row, t.col)
	p := t.style.Palette
	dst.FillRect(r, p.Tile(t.value))
	if t.IsZero() {
		return
	}
	dst.DrawTextCentered(r, strconv.Itoa(t.value), core.TextStyle{
		Color: p.Text(t.value),
		Size:  t.style.FontSize,
		Face:  t.style.Font,
	})
}
