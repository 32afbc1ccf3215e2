package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/latticesim/internal/lattice"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRows        = 32
	DefaultCols        = 32
	DefaultStiffness   = 1.0
	DefaultDt          = 0.01
	DefaultSteps       = 2000
	DefaultSigma       = 0.01
	DefaultSampleEvery = 10
	DefaultLimit       = 10.0
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Rows           int         `yaml:"rows"`
	Cols           int         `yaml:"cols"`
	Stiffness      float64     `yaml:"stiffness"`
	Dt             float64     `yaml:"dt"`
	Steps          int         `yaml:"steps"`
	Strategy       string      `yaml:"strategy"`
	UpdateOrder    string      `yaml:"update_order"`
	Precision      string      `yaml:"precision"`
	Backend        string      `yaml:"backend"`
	Workers        int         `yaml:"workers"`
	Seed           int64       `yaml:"seed"`
	Sigma          float64     `yaml:"sigma"`
	Excitation     string      `yaml:"excitation"`
	Probe          ProbeConfig `yaml:"probe"`
	SampleEvery    int         `yaml:"sample_every"`
	StabilityLimit float64     `yaml:"stability_limit"`
}

// ProbeConfig selects the cell and axis whose displacement is traced.
type ProbeConfig struct {
	Row  int `yaml:"row"`
	Col  int `yaml:"col"`
	Axis int `yaml:"axis"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		Stiffness:      DefaultStiffness,
		Dt:             DefaultDt,
		Steps:          DefaultSteps,
		Strategy:       "rowmajor",
		UpdateOrder:    "pre",
		Precision:      "float64",
		Backend:        "auto",
		Seed:           1,
		Sigma:          DefaultSigma,
		Excitation:     "random",
		Probe:          ProbeConfig{Row: DefaultRows / 2, Col: DefaultCols / 2},
		SampleEvery:    DefaultSampleEvery,
		StabilityLimit: DefaultLimit,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a copy that can be modified without touching c.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Cols < 1:
		return fmt.Errorf("%w: grid %dx%d must be at least 1x1", ErrInvalidConfig, c.Rows, c.Cols)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	case c.Stiffness < 0:
		return fmt.Errorf("%w: stiffness must be non-negative, got %g", ErrInvalidConfig, c.Stiffness)
	case c.Sigma < 0:
		return fmt.Errorf("%w: sigma must be non-negative, got %g", ErrInvalidConfig, c.Sigma)
	case c.Probe.Row < 0 || c.Probe.Row >= c.Rows || c.Probe.Col < 0 || c.Probe.Col >= c.Cols:
		return fmt.Errorf("%w: probe (%d,%d) outside %dx%d grid", ErrInvalidConfig, c.Probe.Row, c.Probe.Col, c.Rows, c.Cols)
	case c.Probe.Axis < 0 || c.Probe.Axis >= lattice.Axes:
		return fmt.Errorf("%w: probe axis %d", ErrInvalidConfig, c.Probe.Axis)
	}

	strategy, err := lattice.ParseStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if strategy == lattice.MortonStrategy {
		if max(c.Rows, c.Cols) > lattice.MaxMortonExtent {
			return fmt.Errorf("%w: morton layout supports at most %d cells per side", ErrInvalidConfig, lattice.MaxMortonExtent)
		}
		if err := lattice.CheckMortonSparsity(c.Rows, c.Cols); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := lattice.ParseUpdateOrder(c.UpdateOrder); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Backend {
	case "", "auto", "cpu", "serial":
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}
	switch c.Precision {
	case "", "float64", "float32":
	default:
		return fmt.Errorf("%w: unknown precision %q", ErrInvalidConfig, c.Precision)
	}
	switch c.Excitation {
	case "", "random", "pulse", "mode":
	default:
		return fmt.Errorf("%w: unknown excitation %q", ErrInvalidConfig, c.Excitation)
	}
	return nil
}
