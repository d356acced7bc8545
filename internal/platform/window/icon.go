package window

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/vovakirdan/game2048/internal/config"
)

// IconSize is the side of the window icon in pixels.
const IconSize = 32

// LoadIcon decodes an image file and scales it to IconSize.
func LoadIcon(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("window: open icon: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("window: decode icon %s: %w", path, err)
	}
	return ScaleIcon(src), nil
}

// ScaleIcon resizes src to IconSize x IconSize.
func ScaleIcon(src image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// GenerateIcon draws a 2048 tile on the board background.
func GenerateIcon(p *config.Palette) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	inner := image.Rect(3, 3, IconSize-3, IconSize-3)
	draw.Draw(img, inner, image.NewUniform(p.Tile(2048)), image.Point{}, draw.Src)

	// Four bars hint at the digits.
	text := p.Text(2048)
	for i := range 4 {
		x := 6 + i*5
		bar := image.Rect(x, 13, x+3, 19)
		draw.Draw(img, bar, image.NewUniform(color.RGBA{R: text.R, G: text.G, B: text.B, A: 255}), image.Point{}, draw.Src)
	}
	return img
}

// WindowIcon returns the icon to install: the file at path when it can be
// read, the generated icon otherwise.
func WindowIcon(path string, p *config.Palette) (image.Image, error) {
	if path == "" {
		return GenerateIcon(p), nil
	}
	img, err := LoadIcon(path)
	if err != nil {
		return GenerateIcon(p), err
	}
	return img, nil
}
