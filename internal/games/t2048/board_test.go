package t2048

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/game2048/internal/config"
	"github.com/vovakirdan/game2048/internal/core"
)

func newTestBoard(t *testing.T, seed int64) *Board {
	t.Helper()
	c := config.Default()
	style, err := NewStyle(c)
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	return NewBoard(style, c.Rules, rand.New(rand.NewSource(seed)))
}

// checkMoved verifies got equals want apart from exactly one freshly
// spawned 2 or 4 in a cell that want leaves empty.
func checkMoved(t *testing.T, got, want Grid) {
	t.Helper()
	spawned := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if got[r][c] == want[r][c] {
				continue
			}
			if want[r][c] != 0 || (got[r][c] != 2 && got[r][c] != 4) {
				t.Fatalf("unexpected value at (%d,%d):\n%s", r, c, cmp.Diff(want, got))
			}
			spawned++
		}
	}
	if spawned != 1 {
		t.Errorf("spawned %d tiles, want 1:\n%s", spawned, cmp.Diff(want, got))
	}
}

func TestMoveRowLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    [4]int
		expected [4]int
		score    int
	}{
		{
			name:     "simple merge",
			input:    [4]int{2, 2, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "merge with trailing tile",
			input:    [4]int{2, 2, 2, 0},
			expected: [4]int{4, 2, 0, 0},
			score:    4,
		},
		{
			name:     "double merge",
			input:    [4]int{2, 2, 2, 2},
			expected: [4]int{4, 4, 0, 0},
			score:    8,
		},
		{
			name:     "merged tile does not merge again",
			input:    [4]int{4, 4, 8, 0},
			expected: [4]int{8, 8, 0, 0},
			score:    8,
		},
		{
			name:     "slide with gap",
			input:    [4]int{0, 0, 2, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "slide with multiple gaps",
			input:    [4]int{2, 0, 0, 2},
			expected: [4]int{4, 0, 0, 0},
			score:    4,
		},
		{
			name:     "single tile",
			input:    [4]int{0, 4, 0, 0},
			expected: [4]int{4, 0, 0, 0},
			score:    0,
		},
		{
			name:     "four equal",
			input:    [4]int{4, 4, 4, 4},
			expected: [4]int{8, 8, 0, 0},
			score:    16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, 1)
			b.Load(Grid{tt.input})

			moved, score := b.Move(DirLeft)
			if !moved {
				t.Fatalf("Move(left) on %v reported no change", tt.input)
			}
			if score != tt.score {
				t.Errorf("Move(left) on %v score = %d, want %d", tt.input, score, tt.score)
			}
			checkMoved(t, b.Values(), Grid{tt.expected})
		})
	}
}

func TestMoveThreeEqualRight(t *testing.T) {
	b := newTestBoard(t, 1)
	b.Load(Grid{{2, 2, 2, 0}})

	b.Move(DirRight)
	checkMoved(t, b.Values(), Grid{{0, 0, 2, 4}})
}

func TestMoveLeftBoard(t *testing.T) {
	b := newTestBoard(t, 7)
	b.Load(Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	moved, score := b.Move(DirLeft)
	if !moved {
		t.Fatal("Move(left) should indicate board changed")
	}
	checkMoved(t, b.Values(), Grid{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	})

	expectedScore := 4 + 8 + 4 + 4
	if score != expectedScore || b.Score() != expectedScore {
		t.Errorf("Move(left) score = %d (board %d), want %d", score, b.Score(), expectedScore)
	}
}

func TestMoveRightBoard(t *testing.T) {
	b := newTestBoard(t, 7)
	b.Load(Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	b.Move(DirRight)
	checkMoved(t, b.Values(), Grid{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	})
}

func TestMoveUpBoard(t *testing.T) {
	b := newTestBoard(t, 7)
	b.Load(Grid{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})

	b.Move(DirUp)
	checkMoved(t, b.Values(), Grid{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
}

func TestMoveDownBoard(t *testing.T) {
	b := newTestBoard(t, 7)
	b.Load(Grid{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})

	b.Move(DirDown)
	checkMoved(t, b.Values(), Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	})
}

func TestNoChangeNoSpawn(t *testing.T) {
	b := newTestBoard(t, 3)
	start := Grid{
		{4, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	b.Load(start)

	moved, score := b.Move(DirLeft)
	if moved || score != 0 {
		t.Errorf("Move(left) = (%v, %d), want (false, 0)", moved, score)
	}
	if diff := cmp.Diff(start, b.Values()); diff != "" {
		t.Errorf("no-op move changed the board (-want +got):\n%s", diff)
	}
}

func TestConsecutiveMovesMergeAgain(t *testing.T) {
	b := newTestBoard(t, 3)
	b.Load(Grid{{2, 2, 4, 0}})

	b.Move(DirLeft)
	if got := b.Tile(0, 0).Value(); got != 4 {
		t.Fatalf("after first move (0,0) = %d, want 4", got)
	}

	// A fresh move clears merge marks, so the two 4s now combine.
	b.Move(DirLeft)
	if got := b.Tile(0, 0).Value(); got != 8 {
		t.Errorf("after second move (0,0) = %d, want 8", got)
	}
}

func TestSpawnTile(t *testing.T) {
	b := newTestBoard(t, 99)

	for i := range BoardSize * BoardSize {
		if !b.SpawnTile() {
			t.Fatalf("SpawnTile failed with %d tiles placed", i)
		}
	}
	if b.SpawnTile() {
		t.Error("SpawnTile on a full board should return false")
	}
	for _, tile := range b.Tiles() {
		if v := tile.Value(); v != 2 && v != 4 {
			t.Errorf("spawned value %d at (%d,%d), want 2 or 4", v, tile.Row(), tile.Col())
		}
	}
}

func TestSpawnFourChance(t *testing.T) {
	b := newTestBoard(t, 5)
	rules := b.Rules()

	rules.SpawnFourChance = 1
	b.SetRules(rules)
	b.SpawnTile()
	if got := MaxTile(b.Values()); got != 4 {
		t.Errorf("chance 1 spawned %d, want 4", got)
	}

	b.Load(Grid{})
	rules.SpawnFourChance = 0
	b.SetRules(rules)
	b.SpawnTile()
	if got := MaxTile(b.Values()); got != 2 {
		t.Errorf("chance 0 spawned %d, want 2", got)
	}
}

func TestResetPlacesInitialTiles(t *testing.T) {
	b := newTestBoard(t, 11)
	b.Load(Grid{{1024, 1024}})

	b.Reset()
	if got := len(b.EmptyCells()); got != BoardSize*BoardSize-2 {
		t.Errorf("empty cells after Reset = %d, want %d", got, BoardSize*BoardSize-2)
	}
	if b.Score() != 0 {
		t.Errorf("Score after Reset = %d, want 0", b.Score())
	}
}

func TestCheckState(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		want Status
	}{
		{
			name: "no moves left",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 4, 8},
				{16, 32, 64, 128},
			},
			want: StatusLost,
		},
		{
			name: "full with possible merge",
			grid: Grid{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 4, 8},
				{16, 32, 64, 128},
			},
			want: StatusPlaying,
		},
		{
			name: "full with vertical merge",
			grid: Grid{
				{2, 4, 8, 16},
				{2, 64, 128, 256},
				{512, 1024, 4, 8},
				{16, 32, 64, 128},
			},
			want: StatusPlaying,
		},
		{
			name: "one empty cell",
			grid: Grid{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 8},
				{16, 32, 64, 128},
			},
			want: StatusPlaying,
		},
		{
			name: "win tile present",
			grid: Grid{{2048}},
			want: StatusWon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, 1)
			b.Load(tt.grid)
			if got := b.CheckState(); got != tt.want {
				t.Errorf("CheckState() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheckStateWinDisabled(t *testing.T) {
	b := newTestBoard(t, 1)
	rules := b.Rules()
	rules.WinValue = 0
	b.SetRules(rules)
	b.Load(Grid{{8192}})

	if got := b.CheckState(); got != StatusPlaying {
		t.Errorf("CheckState() = %s, want %s", got, StatusPlaying)
	}
}

func TestUpdateRecomputesHighest(t *testing.T) {
	b := newTestBoard(t, 1)
	b.Load(Grid{{64, 8}})
	b.Tile(0, 0).SetValue(2)

	b.Update(nil, 0)
	if got := b.Highest(); got != 8 {
		t.Errorf("Highest() = %d, want 8", got)
	}
}

func TestTileCombine(t *testing.T) {
	b := newTestBoard(t, 1)
	a, c := b.Tile(0, 0), b.Tile(0, 1)
	a.SetValue(8)
	c.SetValue(8)

	if !a.CanCombine(c) {
		t.Fatal("equal tiles should combine")
	}
	if got := a.Combine(); got != 16 || !a.Merged() {
		t.Errorf("Combine() = %d merged=%v, want 16 merged=true", got, a.Merged())
	}

	c.SetValue(16)
	if a.CanCombine(c) {
		t.Error("a merged tile must not combine again in the same move")
	}

	a.Update(nil, 0.016)
	if a.Merged() || !a.CanCombine(c) {
		t.Error("Update should clear the merge mark")
	}

	c.Reset()
	a.Reset()
	if a.CanCombine(c) {
		t.Error("empty tiles never combine")
	}
}

func TestTileDraw(t *testing.T) {
	b := newTestBoard(t, 1)
	screen := core.NewScreen(40, 20)
	canvas := core.NewScreenCanvas(screen, core.NewRect(0, 0, 40, 20), 400, 400)

	b.Tile(1, 2).SetValue(512)
	b.Draw(canvas)
	for _, tile := range b.Tiles() {
		tile.Draw(canvas)
	}

	// Row 1 covers screen rows 5..8; the centred text sits on row 6.
	if row := screen.Row(6); !containsAt(row, "512", 20, 29) {
		t.Errorf("row 6 = %q, want 512 inside columns 20..28", row)
	}

	palette := b.style.Palette
	if got := screen.GetCell(21, 6).BG; got != palette.Tile(512) {
		t.Errorf("tile background = %v, want %v", got, palette.Tile(512))
	}
	if got := screen.GetCell(1, 1).BG; got != palette.Empty {
		t.Errorf("empty cell background = %v, want %v", got, palette.Empty)
	}
}

func containsAt(row, s string, from, to int) bool {
	runes := []rune(row)
	for i := from; i+len(s) <= to && i+len(s) <= len(runes); i++ {
		if string(runes[i:i+len(s)]) == s {
			return true
		}
	}
	return false
}

func TestTraversalStartsNextToEdge(t *testing.T) {
	cells := traversal(DirRight)
	if cells[0] != (Cell{Row: 0, Col: 2}) || cells[2] != (Cell{Row: 0, Col: 0}) {
		t.Errorf("traversal(right) starts %v, want (0,2) then down to (0,0)", cells[:3])
	}
	cells = traversal(DirUp)
	if cells[0] != (Cell{Row: 1, Col: 0}) {
		t.Errorf("traversal(up) starts at %v, want (1,0)", cells[0])
	}
}
