// Package storage persists recorded runs: a metadata.json with the
// configuration and metrics, and a samples.csv with the full trace.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/ecgsim/internal/config"
	"github.com/san-kum/ecgsim/internal/ecg"
)

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
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	HeartRate      float64            `json:"heart_rate"`
	SamplingRate   float64            `json:"sampling_rate"`
	Gain           float64            `json:"gain"`
	Width          int                `json:"width"`
	Height         int                `json:"height"`
	DisplaySeconds float64            `json:"display_seconds"`
	Duration       float64            `json:"duration"`
	Samples        int                `json:"samples"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Config reconstructs the run configuration from the metadata.
func (m *RunMetadata) Config() *config.Config {
	return &config.Config{
		HeartRate:      m.HeartRate,
		SamplingRate:   m.SamplingRate,
		Gain:           m.Gain,
		Width:          m.Width,
		Height:         m.Height,
		DisplaySeconds: m.DisplaySeconds,
		Seed:           m.Seed,
	}
}

// Save writes a run directory and returns its id.
func (s *Store) Save(cfg *config.Config, seed int64, duration float64, metrics map[string]float64, samples []ecg.Sample) (string, error) {
	runID := fmt.Sprintf("ecg_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Seed:           seed,
		HeartRate:      cfg.HeartRate,
		SamplingRate:   cfg.SamplingRate,
		Gain:           cfg.Gain,
		Width:          cfg.Width,
		Height:         cfg.Height,
		DisplaySeconds: cfg.DisplaySeconds,
		Duration:       duration,
		Samples:        len(samples),
		Metrics:        metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "millivolts"}); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Value, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every readable run, skipping damaged
// directories.
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

// LoadSamples reads a run's trace back as value and time slices.
func (s *Store) LoadSamples(runID string) (values, times []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	values = make([]float64, 0, len(records)-1)
	times = make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		values = append(values, v)
	}

	return values, times, nil
}

// SamplesPath returns the on-disk CSV path for a run.
func (s *Store) SamplesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "samples.csv")
}
