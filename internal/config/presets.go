package config

import "fmt"

// SearchPreset represents a named search effort level.
type SearchPreset string

const (
	PresetFast   SearchPreset = "fast"
	PresetNormal SearchPreset = "normal"
	PresetDeep   SearchPreset = "deep"
)

// ParsePreset validates a preset name. An empty name selects PresetNormal.
func ParsePreset(name string) (SearchPreset, error) {
	switch p := SearchPreset(name); p {
	case "":
		return PresetNormal, nil
	case PresetFast, PresetNormal, PresetDeep:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want fast, normal or deep)", name)
	}
}

// ApplyPreset adjusts search depth and sampling for a preset.
// PresetNormal keeps the loaded values.
func ApplyPreset(cfg *Config, preset SearchPreset) {
	switch preset {
	case PresetFast:
		cfg.Strategies.Expectimax.Depth = 2
		cfg.Strategies.AlphaBeta.Depth = 3
		cfg.Strategies.AlphaBeta.SampleCells = 2
		cfg.Autoplay.IntervalMS = 50
	case PresetDeep:
		cfg.Strategies.Expectimax.Depth = 5
		cfg.Strategies.AlphaBeta.Depth = 6
		cfg.Strategies.AlphaBeta.SampleCells = 4
	}
}
