package t2048

// Snapshot captures the complete game state for determinism testing and debugging.
type Snapshot struct {
	Frames  uint64
	Mode    string // "classic" or "endless"
	Round   string // Round id, new on every restart
	Moves   int    // Moves that changed the board this round
	Score   int
	Board   Grid
	MaxTile int // Highest tile on board
	State   Status
	Paused  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Frames:  g.frames,
		Mode:    string(g.mode),
		Round:   g.round.String(),
		Moves:   g.moves,
		Score:   g.board.Score(),
		Board:   g.board.Values(),
		MaxTile: g.board.Highest(),
		State:   g.status,
		Paused:  g.paused,
	}
}
