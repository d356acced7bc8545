package window

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/game2048/internal/core"
)

// Fonts holds the Go font family and caches one face per kind and size.
type Fonts struct {
	sources map[core.FaceKind]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

type faceKey struct {
	kind core.FaceKind
	size float64
}

// LoadFonts parses the embedded Go fonts.
func LoadFonts() (*Fonts, error) {
	files := map[core.FaceKind][]byte{
		core.FaceRegular: goregular.TTF,
		core.FaceBold:    gobold.TTF,
		core.FaceMono:    gomono.TTF,
	}

	f := &Fonts{
		sources: make(map[core.FaceKind]*text.GoTextFaceSource, len(files)),
		faces:   make(map[faceKey]*text.GoTextFace),
	}
	for kind, data := range files {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("window: load font %d: %w", kind, err)
		}
		f.sources[kind] = src
	}
	return f, nil
}

// Face returns the face for a text style.
func (f *Fonts) Face(st core.TextStyle) *text.GoTextFace {
	size := st.Size
	if size <= 0 {
		size = 12
	}
	key := faceKey{kind: st.Face, size: size}
	if face, ok := f.faces[key]; ok {
		return face
	}
	src, ok := f.sources[st.Face]
	if !ok {
		src = f.sources[core.FaceBold]
	}
	face := &text.GoTextFace{Source: src, Size: size}
	f.faces[key] = face
	return face
}

// Canvas draws onto an ebiten image. Logical units are pixels.
type Canvas struct {
	dst   *ebiten.Image
	fonts *Fonts
}

// NewCanvas wraps an ebiten image.
func NewCanvas(dst *ebiten.Image, fonts *Fonts) *Canvas {
	return &Canvas{dst: dst, fonts: fonts}
}

// Size returns the image bounds.
func (c *Canvas) Size() (int, int) {
	b := c.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Fill paints the whole image.
func (c *Canvas) Fill(col color.RGBA) {
	c.dst.Fill(straight(col))
}

// FillRect paints a rectangle; translucent colours blend over what is there.
func (c *Canvas) FillRect(r core.Rect, col color.RGBA) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), straight(col), false)
}

// DrawText draws s with its top-left corner at (x, y).
func (c *Canvas) DrawText(x, y int, s string, st core.TextStyle) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(straight(st.Color))
	text.Draw(c.dst, s, c.fonts.Face(st), op)
}

// DrawTextCentered draws s centred in r.
func (c *Canvas) DrawTextCentered(r core.Rect, s string, st core.TextStyle) {
	cx, cy := r.Center()
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.ColorScale.ScaleWithColor(straight(st.Color))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(c.dst, s, c.fonts.Face(st), op)
}

// straight marks palette colours as non-premultiplied, which is how the
// constants file writes them.
func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
