package season

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a season configuration from a YAML file, layered over the
// built-in default season so a partial file still yields a usable config.
func Load(_ context.Context, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if cfg.Name == "" {
		return nil, ErrUnnamed
	}
	return cfg, nil
}

// Default returns the reference season used when no file is supplied:
// a fuel game with a three-level climb. Point values here are the
// reference game's, not any particular year's rules.
func Default() *Config {
	cfg := &Config{Name: "fuel_frenzy"}
	cfg.Points.Auto = map[string]float64{
		"fuel_scored": 4,
		"crossings":   2,
		"mobility":    2,
	}
	cfg.Points.Teleop = map[string]float64{
		"fuel_scored": 2,
		"steals":      1,
	}
	cfg.Points.Endgame = map[string]float64{
		"climb_l1": 4,
		"climb_l2": 20,
		"climb_l3": 30,
	}
	cfg.Validation = ValidationConfig{
		Mappings: []FieldMapping{
			{Category: "auto-scoring", ScoutedKey: "auto.fuel_scored", OfficialKey: "autoFuelCount", Unit: "fuel"},
			{Category: "teleop-scoring", ScoutedKey: "teleop.fuel_scored", OfficialKey: "teleopFuelCount", Unit: "fuel"},
			{Category: "fouls", ScoutedKey: "teleop.fouls", OfficialKey: "foulCount"},
		},
		Thresholds: map[string]Thresholds{
			"fouls": {Minor: 0, Warning: 1, Critical: 3},
		},
		Default: Thresholds{Minor: 1, Warning: 3, Critical: 6},
	}
	return cfg
}
