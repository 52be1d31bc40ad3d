package storage

import (
	"testing"

	"github.com/san-kum/ecgsim/internal/config"
	"github.com/san-kum/ecgsim/internal/ecg"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func testRun(t *testing.T, s *Store) string {
	t.Helper()
	cfg := config.DefaultConfig()
	samples := []ecg.Sample{
		{Value: 0.1, Time: 0.002},
		{Value: -0.05, Time: 0.004},
		{Value: 0.98, Time: 0.006},
	}
	id, err := s.Save(cfg, 42, 10.0, map[string]float64{"beats": 12}, samples)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	return id
}

func TestSaveLoadMetadata(t *testing.T) {
	s := testStore(t)
	id := testRun(t, s)

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != id {
		t.Errorf("id mismatch: %s vs %s", meta.ID, id)
	}
	if meta.Seed != 42 || meta.Duration != 10.0 || meta.Samples != 3 {
		t.Errorf("metadata lost values: %+v", meta)
	}
	if meta.Metrics["beats"] != 12 {
		t.Errorf("metrics lost: %v", meta.Metrics)
	}

	cfg := meta.Config()
	if cfg.HeartRate != config.DefaultHeartRate || cfg.Seed != 42 {
		t.Errorf("config reconstruction wrong: %+v", cfg)
	}
}

func TestLoadSamplesRoundTrip(t *testing.T) {
	s := testStore(t)
	id := testRun(t, s)

	values, times, err := s.LoadSamples(id)
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	if len(values) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 samples, got %d/%d", len(values), len(times))
	}
	if values[2] != 0.98 || times[2] != 0.006 {
		t.Errorf("sample values corrupted: %v %v", values[2], times[2])
	}
}

func TestListRuns(t *testing.T) {
	s := testStore(t)
	testRun(t, s)

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	s := New(t.TempDir() + "/does-not-exist")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := testStore(t)
	if _, err := s.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}
