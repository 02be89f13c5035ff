// Package storage persists finished runs and sensitivity tables. Each run
// gets its own directory with metadata.json and trajectory.csv; the plot and
// export commands read them back.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/xulfus/ai-world3/internal/sensitivity"
	"github.com/xulfus/ai-world3/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0o755)
}

// RunMetadata describes one persisted run.
type RunMetadata struct {
	ID        string              `json:"id"`
	Scenario  string              `json:"scenario"`
	Timestamp time.Time           `json:"timestamp"`
	Dt        float64             `json:"dt"`
	Horizon   float64             `json:"horizon"`
	Summary   sensitivity.Summary `json:"summary"`
}

// Save writes metadata and the full trajectory table, returning the run id.
func (s *Store) Save(scenario string, cfg sim.Config, tr *sim.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Horizon:   cfg.Horizon,
		Summary:   sensitivity.Summarize(tr),
	}
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := WriteTrajectoryCSV(filepath.Join(runDir, "trajectory.csv"), tr); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns metadata for every stored run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	sort.Slice(runs, func(a, b int) bool { return runs[a].Timestamp.After(runs[b].Timestamp) })
	return runs, nil
}

// Load reads one run's metadata and trajectory table.
func (s *Store) Load(runID string) (RunMetadata, []string, [][]float64, error) {
	var meta RunMetadata
	runDir := filepath.Join(s.baseDir, runID)

	data, err := os.ReadFile(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return meta, nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return meta, nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}

	f, err := os.Open(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return meta, nil, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return meta, nil, nil, fmt.Errorf("run %s: bad trajectory table: %w", runID, err)
	}
	if len(records) == 0 {
		return meta, nil, nil, fmt.Errorf("run %s: empty trajectory table", runID)
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return meta, nil, nil, fmt.Errorf("run %s: %w", runID, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return meta, header, rows, nil
}

// Export writes one run's metadata as indented JSON.
func (s *Store) Export(runID string, path string) error {
	meta, _, _, err := s.Load(runID)
	if err != nil {
		return err
	}
	return writeJSON(path, meta)
}

// WriteTrajectoryCSV writes the full trajectory table in sim.Columns order.
func WriteTrajectoryCSV(path string, tr *sim.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(sim.Columns); err != nil {
		return err
	}
	for _, step := range tr.Steps {
		if err := w.Write(formatRecord(step.Record())); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSweepCSV writes OAT results, one row per (parameter, value).
func WriteSweepCSV(path string, rows []sensitivity.OATResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append([]string{"param", "value"}, sensitivity.MetricNames...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{row.Param, formatFloat(row.Value)}
		for _, metric := range sensitivity.MetricNames {
			v, err := row.Summary.Metric(metric)
			if err != nil {
				return err
			}
			rec = append(rec, formatFloat(v))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSamplesCSV writes LHS samples, one row per sample with drawn
// parameter values followed by summary metrics.
func WriteSamplesCSV(path string, samples []sensitivity.Sample, params []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append(append([]string{"sample_id"}, params...), sensitivity.MetricNames...)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, sample := range samples {
		rec := []string{strconv.Itoa(sample.ID)}
		for _, param := range params {
			rec = append(rec, formatFloat(sample.Values[param]))
		}
		for _, metric := range sensitivity.MetricNames {
			v, err := sample.Summary.Metric(metric)
			if err != nil {
				return err
			}
			rec = append(rec, formatFloat(v))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
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

func formatRecord(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = formatFloat(v)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
