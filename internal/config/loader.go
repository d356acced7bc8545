package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by Load when no file was found.
const SourceEmbedded = "embedded"

// Load loads the game constants.
// Search order: customPath -> ~/.config/game2048/constants.{json,yaml} ->
// ./constants.json -> embedded default. A custom path that cannot be read or
// parsed is an error; the implicit locations are skipped when unusable, with
// a warning when the file exists. The returned source names the file that was
// used. A nil logger discards output.
func Load(customPath string, logger *log.Logger) (Constants, string, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return Constants{}, "", err
		}
		return cfg, customPath, nil
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}
	for _, path := range searchPaths() {
		cfg, err := LoadFile(path)
		if err == nil {
			return cfg, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("ignoring constants file", "path", path, "err", err)
		}
	}

	return Default(), SourceEmbedded, nil
}

// LoadFile reads and validates one constants file. JSON and YAML are both
// accepted; fields missing from the file keep their default values.
func LoadFile(path string) (Constants, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Constants{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes constants over the defaults and validates the result.
func Parse(data []byte) (Constants, error) {
	cfg := Default()
	if err := decodeOver(&cfg, data); err != nil {
		return Constants{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Constants{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// decodeOver decodes data into cfg. Colour entries are merged into the
// existing table; a keys table in data replaces the existing bindings.
func decodeOver(cfg *Constants, data []byte) error {
	colours, keys := cfg.Colour, cfg.Keys
	cfg.Colour, cfg.Keys = nil, nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.Colour, cfg.Keys = colours, keys
		return fmt.Errorf("config: parse: %w", err)
	}

	if cfg.Keys == nil {
		cfg.Keys = keys
	}
	merged := make(map[string]RGBA, len(colours)+len(cfg.Colour))
	for k, v := range colours {
		merged[k] = v
	}
	for k, v := range cfg.Colour {
		merged[k] = v
	}
	cfg.Colour = merged
	return nil
}

func searchPaths() []string {
	var paths []string
	if dir := userConfigDir(); dir != "" {
		paths = append(paths,
			filepath.Join(dir, "constants.json"),
			filepath.Join(dir, "constants.yaml"),
		)
	}
	return append(paths, "constants.json")
}

// userConfigDir returns ~/.config/game2048, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "game2048")
}
