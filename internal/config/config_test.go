package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Search.EntityBudget <= 0 || cfg.Search.MaxDepth < cfg.Search.MinDepth {
		t.Errorf("defaults are not self-consistent: %+v", cfg.Search)
	}
	if cfg.Bot.SegmentSize <= 0 {
		t.Errorf("segment size = %d", cfg.Bot.SegmentSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bot.toml")
	body := `
[search]
seed = 7
entity_budget = 99

[telemetry]
enabled = true
addr = "127.0.0.1:9999"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.Seed != 7 || cfg.Search.EntityBudget != 99 {
		t.Errorf("overrides not applied: %+v", cfg.Search)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Addr != "127.0.0.1:9999" {
		t.Errorf("telemetry overrides not applied: %+v", cfg.Telemetry)
	}
	// Untouched sections keep their defaults.
	if cfg.Bot.OpeningBuilders != Default().Bot.OpeningBuilders {
		t.Errorf("default lost: %+v", cfg.Bot)
	}
}

func TestLoadWeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.yaml")
	body := "enemy_power: -3.5\ndistance: -0.25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if w.EnemyPower != -3.5 || w.Distance != -0.25 {
		t.Errorf("weights not applied: %+v", w)
	}
	if w.GroupPower == 0 {
		t.Error("unset weights must keep defaults")
	}

	if _, err := LoadWeights(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file must error")
	}
}
