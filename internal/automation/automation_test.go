package automation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/latticesim/internal/storage"
)

const scenarioYAML = `
name: demo
description: two short runs
steps:
  - name: coarse
    preset: small
    config:
      steps: 50
      dt: 0.02
    save: true
  - preset: chain
    config:
      cols: 16
      steps: 40
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 {
		t.Fatalf("got %+v", sc)
	}

	cfg, err := sc.Steps[0].StepConfig()
	if err != nil {
		t.Fatal(err)
	}
	// overridden fields change, the rest come from the preset
	if cfg.Steps != 50 || cfg.Dt != 0.02 || cfg.Rows != 8 {
		t.Errorf("step config = %+v", cfg)
	}

	if _, err := ParseScenario([]byte("name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestStepConfigErrors(t *testing.T) {
	sc, err := ParseScenario([]byte(`
name: bad
steps:
  - preset: nope
  - config:
      rows: 0
`))
	if err != nil {
		t.Fatal(err)
	}
	for i, step := range sc.Steps {
		if _, err := step.StepConfig(); err == nil {
			t.Errorf("step %d: expected error", i)
		}
	}
}

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}

	st := storage.New(t.TempDir())
	var out bytes.Buffer
	results, err := RunScenario(context.Background(), sc, st, &out)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("only the first step saves: %q %q", results[0].RunID, results[1].RunID)
	}
	if results[1].Name != "demo_2" || results[1].Result.StepsTaken != 40 {
		t.Errorf("second step = %+v", results[1])
	}
	if !strings.Contains(out.String(), "Running step 2/2: demo_2") {
		t.Errorf("progress output = %q", out.String())
	}

	runs, err := st.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected one stored run, got %d (%v)", len(runs), err)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	sc, _ := ParseScenario([]byte(scenarioYAML))
	cfg, _ := sc.Steps[0].StepConfig()

	mc, err := RunMonteCarlo(context.Background(), cfg, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mc.Trials != 4 || mc.Stable != 4 || mc.Diverged != 0 {
		t.Errorf("got %+v", mc)
	}
	if len(mc.FinalEnergy) != 4 || mc.MeanEnergy <= 0 {
		t.Errorf("energies = %v mean %v", mc.FinalEnergy, mc.MeanEnergy)
	}

	if _, err := RunMonteCarlo(context.Background(), cfg, 0, 1); err == nil {
		t.Error("expected error for zero trials")
	}
}
