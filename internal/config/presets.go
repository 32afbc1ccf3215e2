package config

import "sort"

var Presets = map[string]*Config{
	"small": {
		Rows: 8, Cols: 8, Stiffness: 1, Dt: 0.01, Steps: 2000,
		Strategy: "rowmajor", UpdateOrder: "pre", Precision: "float64", Backend: "serial",
		Seed: 1, Sigma: 0.01, Excitation: "random",
		Probe: ProbeConfig{Row: 4, Col: 4}, SampleEvery: 5, StabilityLimit: DefaultLimit,
	},
	"membrane": {
		Rows: 128, Cols: 128, Stiffness: 1, Dt: 0.01, Steps: 5000,
		Strategy: "rowmajor", UpdateOrder: "pre", Precision: "float64", Backend: "auto",
		Seed: 7, Sigma: 0.01, Excitation: "random",
		Probe: ProbeConfig{Row: 64, Col: 64}, SampleEvery: 20, StabilityLimit: DefaultLimit,
	},
	"chain": {
		Rows: 1, Cols: 64, Stiffness: 4, Dt: 0.005, Steps: 8000,
		Strategy: "rowmajor", UpdateOrder: "post", Precision: "float64", Backend: "serial",
		Seed: 1, Sigma: 0.1, Excitation: "mode",
		Probe: ProbeConfig{Row: 0, Col: 0}, SampleEvery: 4, StabilityLimit: DefaultLimit,
	},
	"pulse": {
		Rows: 33, Cols: 33, Stiffness: 1, Dt: 0.01, Steps: 3000,
		Strategy: "rowmajor", UpdateOrder: "pre", Precision: "float64", Backend: "auto",
		Seed: 1, Sigma: 0.5, Excitation: "pulse",
		Probe: ProbeConfig{Row: 16, Col: 24}, SampleEvery: 10, StabilityLimit: DefaultLimit,
	},
	"morton": {
		Rows: 256, Cols: 256, Stiffness: 1, Dt: 0.01, Steps: 1000,
		Strategy: "morton", UpdateOrder: "pre", Precision: "float32", Backend: "cpu",
		Seed: 3, Sigma: 0.01, Excitation: "random",
		Probe: ProbeConfig{Row: 128, Col: 128}, SampleEvery: 10, StabilityLimit: DefaultLimit,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
