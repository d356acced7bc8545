package t2048

import (
	"math/rand"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
	"github.com/vovakirdan/game2048/internal/scene"
)

// Status is the outcome of a board check.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Board is the 4x4 grid of tiles. Moves rewrite tile values in place.
type Board struct {
	tiles   [BoardSize][BoardSize]*Tile
	style   *Style
	rules   config.Rules
	rng     *rand.Rand
	score   int
	highest int
}

// NewBoard creates an empty board. Call Reset to place the starting tiles.
func NewBoard(style *Style, rules config.Rules, rng *rand.Rand) *Board {
	b := &Board{style: style, rules: rules, rng: rng}
	for r := range BoardSize {
		for c := range BoardSize {
			b.tiles[r][c] = NewTile(r, c, style)
		}
	}
	return b
}

// SetRules replaces the rules. They take effect on the next spawn or check.
func (b *Board) SetRules(rules config.Rules) {
	b.rules = rules
}

// Rules returns the active rules.
func (b *Board) Rules() config.Rules {
	return b.rules
}

// Tile returns the tile at (row, col).
func (b *Board) Tile(row, col int) *Tile {
	return b.tiles[row][col]
}

// Tiles returns every tile in row-major order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, 0, BoardSize*BoardSize)
	for r := range BoardSize {
		out = append(out, b.tiles[r][:]...)
	}
	return out
}

// Score returns the sum of all merged values since the last reset.
func (b *Board) Score() int { return b.score }

// Highest returns the largest tile value.
func (b *Board) Highest() int { return b.highest }

// Reset clears the board and places the initial tiles.
func (b *Board) Reset() {
	for _, t := range b.Tiles() {
		t.Reset()
	}
	b.score = 0
	b.highest = 0
	for range b.rules.InitialTiles {
		b.SpawnTile()
	}
}

// Values returns a snapshot of the tile values.
func (b *Board) Values() Grid {
	var g Grid
	for r := range BoardSize {
		for c := range BoardSize {
			g[r][c] = b.tiles[r][c].Value()
		}
	}
	return g
}

// Load replaces every tile value. The score is kept.
func (b *Board) Load(g Grid) {
	for r := range BoardSize {
		for c := range BoardSize {
			b.tiles[r][c].Reset()
			b.tiles[r][c].SetValue(g[r][c])
		}
	}
	b.highest = MaxTile(g)
}

// EmptyCells returns the empty positions in row-major order.
func (b *Board) EmptyCells() []Cell {
	return EmptyCells(b.Values())
}

// SpawnTile puts a 2 or 4 into a random empty cell. It returns false when
// the board is full.
func (b *Board) SpawnTile() bool {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return false
	}

	cell := empty[b.rng.Intn(len(empty))]

	value := 2
	if b.rng.Float64() < b.rules.SpawnFourChance {
		value = 4
	}

	b.tiles[cell.Row][cell.Col].SetValue(value)
	b.highest = max(b.highest, value)
	return true
}

// Move slides every tile toward the edge named by d. Each tile merges at
// most once. When anything changed one new tile is spawned. It returns
// whether the board changed and the score gained.
func (b *Board) Move(d Direction) (moved bool, gained int) {
	for _, t := range b.Tiles() {
		t.merged = false
	}

	dr, dc := d.vector()
	for _, cell := range traversal(d) {
		t := b.tiles[cell.Row][cell.Col]
		if t.IsZero() {
			continue
		}

		r, c := cell.Row, cell.Col
		for inside(r+dr, c+dc) && b.tiles[r+dr][c+dc].IsZero() {
			r, c = r+dr, c+dc
		}
		if r != cell.Row || c != cell.Col {
			dest := b.tiles[r][c]
			dest.SetValue(t.Value())
			t.Reset()
			t = dest
			moved = true
		}

		if !inside(r+dr, c+dc) {
			continue
		}
		if next := b.tiles[r+dr][c+dc]; next.CanCombine(t) {
			v := next.Combine()
			t.Reset()
			gained += v
			b.highest = max(b.highest, v)
			moved = true
		}
	}

	if moved {
		b.score += gained
		b.SpawnTile()
	}
	return moved, gained
}

// CheckState reports whether the round is won, lost or still running.
func (b *Board) CheckState() Status {
	if b.rules.WinValue > 0 && b.highest >= b.rules.WinValue {
		return StatusWon
	}
	if CanMove(b.Values()) {
		return StatusPlaying
	}
	return StatusLost
}

// Update recomputes the highest tile.
func (b *Board) Update(_ *scene.Scene, _ float64) {
	b.highest = MaxTile(b.Values())
}

// Draw paints the board backdrop. Tiles draw themselves on top.
func (b *Board) Draw(dst core.Canvas) {
	dst.FillRect(b.style.BoardRect(), b.style.Palette.Background)
}

// traversal lists the cells a move visits, starting next to the target
// edge of every line so tiles nearer the edge settle first.
func traversal(d Direction) []Cell {
	dr, dc := d.vector()
	reverse := dr > 0 || dc > 0

	cells := make([]Cell, 0, BoardSize*(BoardSize-1))
	for line := range BoardSize {
		for i := 1; i < BoardSize; i++ {
			k := i
			if reverse {
				k = BoardSize - 1 - i
			}
			if dr != 0 {
				cells = append(cells, Cell{Row: k, Col: line})
			} else {
				cells = append(cells, Cell{Row: line, Col: k})
			}
		}
	}
	return cells
}

func inside(r, c int) bool {
	return r >= 0 && r < BoardSize && c >= 0 && c < BoardSize
}
