package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/game2048/internal/core"
)

func TestDefaultMatchesFallback(t *testing.T) {
	if diff := cmp.Diff(fallbackConstants(), Default()); diff != "" {
		t.Errorf("embedded defaults drifted from the hardcoded table (-fallback +embedded):\n%s", diff)
	}
	require.NoError(t, Default().Validate())
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"size": 600, "colour": {"2": [1, 2, 3]}}`))
	require.NoError(t, err)

	assert.Equal(t, 600, cfg.Size)
	assert.Equal(t, 150, cfg.BoxSize())
	assert.Equal(t, 60, cfg.TargetFPS, "unset fields keep defaults")
	assert.Equal(t, RGBA{R: 1, G: 2, B: 3, A: 255}, cfg.Colour["2"])
	assert.Equal(t, Default().Colour["4"], cfg.Colour["4"], "colour entries merge")
	assert.Equal(t, Default().Keys, cfg.Keys, "keys untouched when absent")
}

func TestParseKeysReplaceBindings(t *testing.T) {
	cfg, err := Parse([]byte(`{"keys": {"K": "up", "J": "down"}}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"K": "up", "J": "down"}, cfg.Keys)
	assert.Equal(t, map[string]core.Action{"K": core.ActionUp, "J": core.ActionDown}, cfg.Bindings())
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
title: Tiles
padding: 4
colour:
  background: "#102030"
  over: "#ffffff80"
  4096: [10, 20, 30]
rules:
  win_value: 4096
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "Tiles", cfg.Title)
	assert.Equal(t, 4, cfg.Padding)
	assert.Equal(t, RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, cfg.Colour["background"])
	assert.Equal(t, RGBA{R: 255, G: 255, B: 255, A: 0x80}, cfg.Colour["over"])
	assert.Equal(t, RGBA{R: 10, G: 20, B: 30, A: 255}, cfg.Colour["4096"])
	assert.Equal(t, 4096, cfg.Rules.WinValue)
	assert.InDelta(t, 0.1, cfg.Rules.SpawnFourChance, 1e-9)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"padding too large", `{"padding": 50}`},
		{"zero fps", `{"target_fps": 0}`},
		{"unknown action", `{"keys": {"Space": "jump"}}`},
		{"win value not power of two", `{"rules": {"win_value": 3000}}`},
		{"spawn chance above one", `{"rules": {"spawn_four_chance": 1.5}}`},
		{"colour out of range", `{"colour": {"2": [300, 0, 0]}}`},
		{"colour bad length", `{"colour": {"2": [1, 2]}}`},
		{"unknown colour entry", `{"colour": {"purple": [1, 2, 3]}}`},
		{"bad hex colour", `{"colour": {"2": "#12"}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConstants), "error should wrap ErrInvalidConstants: %v", err)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`{"size": `))
	require.Error(t, err)
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, source, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, source)
	assert.Equal(t, Default().Size, cfg.Size)

	require.NoError(t, os.WriteFile(filepath.Join(work, "constants.json"), []byte(`{"size": 480}`), 0o600))
	cfg, source, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "constants.json", source)
	assert.Equal(t, 480, cfg.Size)

	userDir := filepath.Join(home, ".config", "game2048")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "constants.yaml"), []byte("size: 520\n"), 0o600))
	cfg, _, err = Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 520, cfg.Size, "user config wins over working directory")

	// An unusable implicit file is skipped with a warning.
	var logs bytes.Buffer
	broken := filepath.Join(userDir, "constants.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"size": -1}`), 0o600))
	cfg, _, err = Load("", log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, 520, cfg.Size)
	assert.Contains(t, logs.String(), "ignoring constants file")
	assert.Contains(t, logs.String(), broken)
}

func TestLoadWarnsOnlyForRejectedFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	var logs bytes.Buffer
	_, source, err := Load("", log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, source)
	assert.Empty(t, logs.String(), "missing files are not worth a warning")

	require.NoError(t, os.WriteFile(filepath.Join(work, "constants.json"), []byte(`{"size": `), 0o600))
	cfg, source, err := Load("", log.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, source)
	assert.Equal(t, Default().Size, cfg.Size)
	assert.Contains(t, logs.String(), "WARN")
	assert.Contains(t, logs.String(), "constants.json")
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()

	_, _, err := Load(filepath.Join(dir, "missing.json"), nil)
	require.Error(t, err, "missing custom path must be reported")

	path := filepath.Join(dir, "mine.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title": "Mine"}`), 0o600))
	cfg, source, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, "Mine", cfg.Title)
}

func TestEncodeParsesBack(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			data, err := Encode(Default(), format)
			require.NoError(t, err)

			back, err := Parse(data)
			require.NoError(t, err)
			if diff := cmp.Diff(Default(), back); diff != "" {
				t.Errorf("%s output did not parse back (-want +got):\n%s", format, diff)
			}
		})
	}

	_, err := Encode(Default(), "toml")
	require.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.Keys["X"] = "quit"
	b.Colour["2"] = RGBA{}

	assert.NotContains(t, a.Keys, "X")
	assert.NotEqual(t, RGBA{}, a.Colour["2"])
}

func TestApplyPreset(t *testing.T) {
	rules := Default().Rules

	require.NoError(t, ApplyPreset(&rules, DifficultyHard))
	assert.InDelta(t, 0.25, rules.SpawnFourChance, 1e-9)
	assert.Equal(t, 2048, rules.WinValue)

	require.NoError(t, ApplyPreset(&rules, DifficultyEndless))
	assert.Equal(t, 0, rules.WinValue)

	require.NoError(t, ApplyPreset(&rules, DifficultyEasy))
	assert.Equal(t, 2048, rules.WinValue, "leaving endless restores the classic target")

	before := rules
	require.NoError(t, ApplyPreset(&rules, ""))
	assert.Equal(t, before, rules)

	require.Error(t, ApplyPreset(&rules, "nightmare"))
	assert.Len(t, Presets(), 4)
}

func TestPaletteLookup(t *testing.T) {
	c := Default()
	p, err := NewPalette(c.Colour)
	require.NoError(t, err)

	assert.Equal(t, 11, p.Len())
	assert.Equal(t, c.Colour["8"].Color(), p.Tile(8))
	assert.Equal(t, c.Colour[ColourEmpty].Color(), p.Tile(0))
	assert.Equal(t, c.Colour[ColourSuper].Color(), p.Tile(8192), "unlisted values use super")
	assert.Equal(t, p.Dark, p.Text(4))
	assert.Equal(t, p.Light, p.Text(8))

	delete(c.Colour, ColourSuper)
	p, err = NewPalette(c.Colour)
	require.NoError(t, err)
	assert.Equal(t, c.Colour["2048"].Color(), p.Tile(4096), "largest listed value without super")

	c.Colour["fish"] = RGBA{A: 255}
	_, err = NewPalette(c.Colour)
	assert.True(t, errors.Is(err, ErrInvalidConstants))
}
