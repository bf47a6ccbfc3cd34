// Package config loads the runner configuration (TOML) and the field
// weight tuning file (YAML).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/rtsengine/pkg/field"
)

// Config is the full runner configuration.
type Config struct {
	Bot       BotConfig       `toml:"bot"`
	Search    SearchConfig    `toml:"search"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// BotConfig shapes the bot's tick loop.
type BotConfig struct {
	// SegmentSize is the coarse grid block edge for group planning.
	SegmentSize int `toml:"segment_size"`
	// OpeningBuilders is the build planner's opening goal.
	OpeningBuilders int `toml:"opening_builders"`
	// CombatWindowRadius bounds the sub-grid handed to the battle
	// planner around each engagement.
	CombatWindowRadius int `toml:"combat_window_radius"`
	// GroupRanged and GroupMelee set the default squad composition.
	GroupRanged int `toml:"group_ranged"`
	GroupMelee  int `toml:"group_melee"`
}

// SearchConfig sizes the planner budgets. Budgets are transition
// counts, not wall-clock time.
type SearchConfig struct {
	Seed           int64   `toml:"seed"`
	EntityBudget   int     `toml:"entity_budget"`
	BattleBudget   int     `toml:"battle_budget"`
	BuildBudget    int     `toml:"build_budget"`
	MinDepth       int     `toml:"min_depth"`
	MaxDepth       int     `toml:"max_depth"`
	BuildMaxDepth  int     `toml:"build_max_depth"`
	DistanceWeight float64 `toml:"distance_weight"`
	GroupRange     int     `toml:"group_range"`
}

// TelemetryConfig controls the websocket telemetry endpoint.
type TelemetryConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Bot: BotConfig{
			SegmentSize:        5,
			OpeningBuilders:    10,
			CombatWindowRadius: 10,
			GroupRanged:        4,
			GroupMelee:         2,
		},
		Search: SearchConfig{
			Seed:           42,
			EntityBudget:   200,
			BattleBudget:   400,
			BuildBudget:    2000,
			MinDepth:       2,
			MaxDepth:       5,
			BuildMaxDepth:  32,
			DistanceWeight: 1.0,
			GroupRange:     4,
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
			Addr:    "localhost:8090",
		},
	}
}

// Load reads a TOML config file, falling back to defaults for the
// zero path.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWeights reads the field weight tuning file, falling back to
// defaults for the zero path.
func LoadWeights(path string) (field.Weights, error) {
	w := field.DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse weights %s: %w", path, err)
	}
	return w, nil
}

// NewLogger builds the process logger.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
