package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/latticesim/internal/config"
	"github.com/san-kum/latticesim/internal/lattice"
	"github.com/san-kum/latticesim/internal/sim"
)

var ErrNoFrame = errors.New("storage: run has no final frame")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Timestamp   time.Time          `json:"timestamp"`
	Config      config.Config      `json:"config"`
	StepsTaken  int                `json:"steps_taken"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Errors      []string           `json:"errors,omitempty"`
}

// Trace is the per-sample record of a run.
type Trace struct {
	Times    []float64 `json:"times"`
	Energies []float64 `json:"energies"`
	Probe    []float64 `json:"probe"`
}

// Save writes metadata.json, trace.csv and, when the result carries a final
// frame, frame.csv into a new run directory and returns the run ID.
func (s *Store) Save(name string, cfg *config.Config, result *sim.Result, probe []float64) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Config:      *cfg,
		StepsTaken:  result.StepsTaken,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, "trace.csv"), result, probe); err != nil {
		return "", err
	}
	if result.Final != nil {
		if err := writeFrame(filepath.Join(runDir, "frame.csv"), result.Final); err != nil {
			return "", err
		}
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTrace(path string, result *sim.Result, probe []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "energy", "probe"}); err != nil {
		return err
	}
	for i, t := range result.Times {
		row := []string{formatFloat(t), formatFloat(result.Energies[i]), ""}
		if i < len(probe) {
			row[2] = formatFloat(probe[i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeFrame(path string, fr *lattice.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"row", "col", "x", "y", "vx", "vy"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < fr.Rows; i++ {
		for j := 0; j < fr.Cols; j++ {
			k := lattice.Axes * (i*fr.Cols + j)
			row := []string{
				strconv.Itoa(i), strconv.Itoa(j),
				formatFloat(fr.Pos[k]), formatFloat(fr.Pos[k+1]),
				formatFloat(fr.Vel[k]), formatFloat(fr.Vel[k+1]),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every stored run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}

	tr := &Trace{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		tr.Times = append(tr.Times, t)
		tr.Energies = append(tr.Energies, e)
		if len(record) > 2 {
			if p, err := strconv.ParseFloat(record[2], 64); err == nil {
				tr.Probe = append(tr.Probe, p)
			}
		}
	}
	return tr, nil
}

// LoadFrame reads the final frame of a run.
func (s *Store) LoadFrame(runID string) (*lattice.Frame, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	records, err := readCSV(filepath.Join(s.baseDir, runID, "frame.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoFrame, runID)
		}
		return nil, err
	}

	fr := lattice.NewFrame(meta.Config.Rows, meta.Config.Cols)
	fr.Stiffness = meta.Config.Stiffness
	fr.Step = meta.StepsTaken
	for n := 1; n < len(records); n++ {
		rec := records[n]
		if len(rec) != 6 {
			return nil, fmt.Errorf("frame.csv line %d: %d fields", n+1, len(rec))
		}
		i, err1 := strconv.Atoi(rec[0])
		j, err2 := strconv.Atoi(rec[1])
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("frame.csv line %d: %w", n+1, err)
		}
		if i < 0 || i >= fr.Rows || j < 0 || j >= fr.Cols {
			return nil, fmt.Errorf("frame.csv line %d: cell (%d,%d) outside grid", n+1, i, j)
		}
		k := lattice.Axes * (i*fr.Cols + j)
		dst := []*float64{&fr.Pos[k], &fr.Pos[k+1], &fr.Vel[k], &fr.Vel[k+1]}
		for c, p := range dst {
			v, err := strconv.ParseFloat(rec[2+c], 64)
			if err != nil {
				return nil, fmt.Errorf("frame.csv line %d: %w", n+1, err)
			}
			*p = v
		}
	}
	return fr, nil
}

type ExportData struct {
	Meta  RunMetadata `json:"meta"`
	Trace *Trace      `json:"trace"`
}

// ExportJSON writes a run's metadata and trace as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tr, err := s.LoadTrace(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: *meta, Trace: tr})
}
