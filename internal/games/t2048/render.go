package t2048

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/game2048/internal/core"
)

// Render draws the board, tiles and any overlay onto the canvas.
func (g *Game) Render(dst core.Canvas) {
	p := g.style.Palette
	dst.Fill(p.Background)

	g.scene.Draw(dst)

	switch {
	case g.status != StatusPlaying:
		g.renderEnd(dst)
	case g.paused:
		g.renderPaused(dst)
	}

	if g.consts.ShowFPS {
		dst.DrawText(4, 4, strconv.Itoa(int(g.fps+0.5))+" FPS", core.TextStyle{
			Color: p.FPS,
			Size:  g.style.DebugFontSize,
			Face:  core.FaceMono,
		})
	}
}

// renderEnd shows the result and final score over a translucent veil.
func (g *Game) renderEnd(dst core.Canvas) {
	title := "Game over"
	if g.status == StatusWon {
		title = "You win!"
	}

	lines := []string{title, fmt.Sprintf("Score: %d", g.board.Score())}
	if key := g.keyFor(core.ActionRestart); key != "" {
		lines = append(lines, fmt.Sprintf("Press %s to play again", key))
	}
	g.renderOverlay(dst, lines)
}

func (g *Game) renderPaused(dst core.Canvas) {
	lines := []string{"Paused"}
	if key := g.keyFor(core.ActionPause); key != "" {
		lines = append(lines, fmt.Sprintf("Press %s to resume", key))
	}
	g.renderOverlay(dst, lines)
}

// renderOverlay veils the canvas and stacks lines around its centre. The
// first line uses the tile font, the rest the small font.
func (g *Game) renderOverlay(dst core.Canvas, lines []string) {
	p := g.style.Palette
	w, h := dst.Size()
	dst.FillRect(core.NewRect(0, 0, w, h), p.Over)

	lineH := int(g.style.FontSize * 1.6)
	top := h/2 - lineH*len(lines)/2
	for i, line := range lines {
		st := core.TextStyle{Color: p.Dark, Size: g.style.FontSize, Face: g.style.Font}
		if i > 0 {
			st.Size = g.style.DebugFontSize
			st.Face = core.FaceRegular
		}
		dst.DrawTextCentered(core.NewRect(0, top+i*lineH, w, lineH), line, st)
	}
}
