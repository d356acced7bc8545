package config

import "fmt"

// DifficultyPreset represents a named set of rule tweaks.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyEndless DifficultyPreset = "endless"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyEndless}
}

// SpawnFourChanceForPreset returns the chance of a new tile being a 4.
func SpawnFourChanceForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.10
	}
}

// ApplyPreset modifies the rules for a difficulty preset. An empty preset
// leaves the rules from the constants file untouched.
func ApplyPreset(rules *Rules, preset DifficultyPreset) error {
	switch preset {
	case "":
		return nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		rules.SpawnFourChance = SpawnFourChanceForPreset(preset)
		if rules.WinValue == 0 {
			rules.WinValue = 2048
		}
		return nil
	case DifficultyEndless:
		rules.WinValue = 0
		return nil
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or endless)", preset)
	}
}
