package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/experiment"
	"github.com/san-kum/latticesim/internal/sim"
	"github.com/san-kum/latticesim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of lattice runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (or the defaults) and applies the
// fields given under config on top of it.
type ScenarioStep struct {
	Name      string    `yaml:"name"`
	Preset    string    `yaml:"preset"`
	Overrides yaml.Node `yaml:"config"`
	Save      bool      `yaml:"save"`
}

type StepResult struct {
	Name   string
	RunID  string
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepConfig resolves the configuration a step runs with.
func (s *ScenarioStep) StepConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if !s.Overrides.IsZero() {
		if err := s.Overrides.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order. Steps marked save are written to
// st when it is non-nil. Progress lines go to out.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("%s_%d", scenario.Name, i+1)
		}
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		cfg, err := step.StepConfig()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp, err := experiment.New(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}
		result, err := exp.Run(ctx)
		exp.Close()
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Config: cfg, Result: result}
		if step.Save && st != nil {
			sr.RunID, err = st.Save(name, cfg, result, exp.Probe().Trace())
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloResult summarises an ensemble of runs that differ only in seed.
type MonteCarloResult struct {
	Trials      int
	Stable      int
	MeanDrift   float64
	MaxDrift    float64
	MeanEnergy  float64
	Diverged    int
	FinalEnergy []float64
}

// RunMonteCarlo runs cfg with seeds cfg.Seed, cfg.Seed+1, ... concurrently.
func RunMonteCarlo(ctx context.Context, cfg *config.Config, trials, limit int) (*MonteCarloResult, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", trials)
	}
	seeds := make([]int64, trials)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	results, err := experiment.RunEnsemble(ctx, cfg, seeds, limit)
	if err != nil {
		return nil, err
	}

	mc := &MonteCarloResult{Trials: trials}
	for _, r := range results {
		if len(r.Errors) > 0 {
			mc.Diverged++
		} else if r.Metrics["stability"] == 1 {
			mc.Stable++
		}
		mc.MeanDrift += r.EnergyDrift
		mc.MaxDrift = max(mc.MaxDrift, r.EnergyDrift)
		mc.MeanEnergy += r.Metrics["energy"]
		mc.FinalEnergy = append(mc.FinalEnergy, r.Energies[len(r.Energies)-1])
	}
	mc.MeanDrift /= float64(trials)
	mc.MeanEnergy /= float64(trials)
	return mc, nil
}
