package config

import (
	_ "embed"
)

//go:embed defaults/constants.json
var defaultConstantsJSON []byte

// DefaultFile returns the embedded default constants file.
func DefaultFile() []byte {
	return defaultConstantsJSON
}

// Default returns the embedded defaults, falling back to the hardcoded table
// if the embedded file cannot be parsed.
func Default() Constants {
	cfg := fallbackConstants()
	if err := decodeOver(&cfg, defaultConstantsJSON); err != nil {
		return fallbackConstants()
	}
	return cfg
}

// fallbackConstants mirrors defaults/constants.json.
func fallbackConstants() Constants {
	return Constants{
		Title:         "2048",
		Size:          400,
		Padding:       6,
		Font:          "bold",
		FontSize:      26,
		DebugFontSize: 12,
		TargetFPS:     60,
		ShowFPS:       true,
		Keys: map[string]string{
			"ArrowUp":    "up",
			"W":          "up",
			"ArrowDown":  "down",
			"S":          "down",
			"ArrowLeft":  "left",
			"A":          "left",
			"ArrowRight": "right",
			"D":          "right",
			"R":          "restart",
			"P":          "pause",
			"Escape":     "quit",
		},
		Colour: map[string]RGBA{
			ColourBackground: {R: 187, G: 173, B: 160, A: 255},
			ColourEmpty:      {R: 205, G: 193, B: 180, A: 255},
			"2":              {R: 238, G: 228, B: 218, A: 255},
			"4":              {R: 237, G: 224, B: 200, A: 255},
			"8":              {R: 242, G: 177, B: 121, A: 255},
			"16":             {R: 245, G: 149, B: 99, A: 255},
			"32":             {R: 246, G: 124, B: 95, A: 255},
			"64":             {R: 246, G: 94, B: 59, A: 255},
			"128":            {R: 237, G: 207, B: 114, A: 255},
			"256":            {R: 237, G: 204, B: 97, A: 255},
			"512":            {R: 237, G: 200, B: 80, A: 255},
			"1024":           {R: 237, G: 197, B: 63, A: 255},
			"2048":           {R: 237, G: 194, B: 46, A: 255},
			ColourSuper:      {R: 60, G: 58, B: 50, A: 255},
			ColourDark:       {R: 119, G: 110, B: 101, A: 255},
			ColourLight:      {R: 249, G: 246, B: 242, A: 255},
			ColourOver:       {R: 238, G: 228, B: 218, A: 186},
			ColourFPS:        {R: 255, G: 255, B: 255, A: 255},
		},
		Rules: Rules{
			WinValue:        2048,
			SpawnFourChance: 0.1,
			InitialTiles:    2,
		},
	}
}
