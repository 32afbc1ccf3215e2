package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Rows != DefaultRows || cfg.Cols != DefaultCols {
		t.Errorf("expected %dx%d grid, got %dx%d", DefaultRows, DefaultCols, cfg.Rows, cfg.Cols)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"negative stiffness", func(c *Config) { c.Stiffness = -1 }},
		{"negative sigma", func(c *Config) { c.Sigma = -1 }},
		{"probe outside", func(c *Config) { c.Probe.Row = c.Rows }},
		{"probe axis", func(c *Config) { c.Probe.Axis = 2 }},
		{"strategy", func(c *Config) { c.Strategy = "hilbert" }},
		{"order", func(c *Config) { c.UpdateOrder = "sideways" }},
		{"backend", func(c *Config) { c.Backend = "gpu" }},
		{"morton extent", func(c *Config) { c.Strategy = "morton"; c.Cols = 1 << 17 }},
		{"morton 1x65536", func(c *Config) { c.Strategy = "morton"; c.Rows, c.Cols = 1, 1<<16; c.Probe.Row, c.Probe.Col = 0, 0 }},
		{"morton 2x16384", func(c *Config) { c.Strategy = "morton"; c.Rows, c.Cols = 2, 1<<14; c.Probe.Row, c.Probe.Col = 0, 0 }},
		{"morton 1x4096", func(c *Config) { c.Strategy = "morton"; c.Rows, c.Cols = 1, 1<<12; c.Probe.Row, c.Probe.Col = 0, 0 }},
		{"precision", func(c *Config) { c.Precision = "float16" }},
		{"excitation", func(c *Config) { c.Excitation = "hammer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidateMortonShapes(t *testing.T) {
	for _, sh := range [][2]int{{1, 64}, {33, 33}, {256, 256}, {300, 200}} {
		cfg := DefaultConfig()
		cfg.Strategy = "morton"
		cfg.Rows, cfg.Cols = sh[0], sh[1]
		cfg.Probe = ProbeConfig{}
		if err := cfg.Validate(); err != nil {
			t.Errorf("morton %dx%d: %v", sh[0], sh[1], err)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	cfg := GetPreset("chain")
	cfg.Seed = 42

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("chain")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Rows != 1 || cfg.Cols != 64 {
		t.Errorf("expected 1x64 chain, got %dx%d", cfg.Rows, cfg.Cols)
	}

	cfg.Rows = 99
	if Presets["chain"].Rows == 99 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"chain", "membrane", "morton", "pulse", "small"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, presets[i], want[i])
		}
	}
}
