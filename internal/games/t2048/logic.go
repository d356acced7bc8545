package t2048

import "github.com/vovakirdan/game2048/internal/core"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// BoardSize is the board dimension.
const BoardSize = 4

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// vector returns the row and column step toward the edge tiles slide to.
func (d Direction) vector() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 1
	}
}

// DirectionFromInput returns the move requested by a frame. When several
// moves arrive in one frame the first of up, down, left, right wins.
func DirectionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// Grid is a plain snapshot of tile values, indexed [row][col].
type Grid [BoardSize][BoardSize]int

// Cell addresses one grid position.
type Cell struct {
	Row, Col int
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []Cell {
	var cells []Cell
	for r := range BoardSize {
		for c := range BoardSize {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasPossibleMerge returns true if any horizontally or vertically adjacent
// non-empty tiles are equal.
func HasPossibleMerge(g Grid) bool {
	for r := range BoardSize {
		for c := range BoardSize {
			val := g[r][c]
			if val == 0 {
				continue
			}
			// Check right neighbor
			if c < BoardSize-1 && g[r][c+1] == val {
				return true
			}
			// Check bottom neighbor
			if r < BoardSize-1 && g[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(g Grid) bool {
	return len(EmptyCells(g)) > 0 || HasPossibleMerge(g)
}

// MaxTile returns the maximum tile value.
func MaxTile(g Grid) int {
	maxVal := 0
	for r := range BoardSize {
		for c := range BoardSize {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}
