package telemetry

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-catch/internal/config"
)

func TestRecorderSummary(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	steps := []int{1, 0, 1, 1, 2}
	for i, s := range steps {
		if err := r.Record(FrameRecord{Frame: uint64(i), Delta: 0.02, Steps: s, Alpha: 0.5, SimTime: float64(i)}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	r.SetScore(3)

	got := r.Summary()
	if got.Frames != 5 || got.TotalSteps != 5 || got.MaxSteps != 2 || got.Score != 3 {
		t.Errorf("Summary() = %+v, expected 5 frames, 5 steps, max 2, score 3", got)
	}
	if math.Abs(got.MeanDelta-0.02) > 1e-12 || got.StdDelta > 1e-12 {
		t.Errorf("MeanDelta/StdDelta = %v/%v, expected 0.02/0", got.MeanDelta, got.StdDelta)
	}
	if got.MeanSteps != 1 {
		t.Errorf("MeanSteps = %v, expected 1", got.MeanSteps)
	}
	if got.AlphaP50 != 0.5 || got.AlphaP95 != 0.5 {
		t.Errorf("alpha quantiles = %v/%v, expected 0.5/0.5", got.AlphaP50, got.AlphaP95)
	}
	if got.SimTime != 4 {
		t.Errorf("SimTime = %v, expected 4", got.SimTime)
	}
}

func TestRecorderEmptySummary(t *testing.T) {
	r, _ := NewRecorder("")
	if got := r.Summary(); got.Frames != 0 || got.MeanDelta != 0 {
		t.Errorf("Summary() = %+v, expected zero value", got)
	}
}

func TestRecorderWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	r, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := r.Record(FrameRecord{Frame: uint64(i), Delta: 0.016, Steps: 1, Phase: "playing"}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := r.WriteConfig(config.DefaultCatchConfig()); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := r.WriteSummary(); err != nil {
		t.Fatalf("WriteSummary() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("open frames.csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read frames.csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("frames.csv has %d rows, expected header + 3", len(rows))
	}
	if rows[0][0] != "frame" || rows[0][len(rows[0])-1] != "collected" {
		t.Errorf("header = %v", rows[0])
	}

	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	var frames []FrameRecord
	if err := gocsv.UnmarshalFile(f, &frames); err != nil {
		t.Fatalf("gocsv.UnmarshalFile() error = %v", err)
	}
	if len(frames) != 3 || frames[2].Frame != 2 || frames[2].Phase != "playing" {
		t.Errorf("frames = %+v", frames)
	}

	data, err := os.ReadFile(filepath.Join(dir, "summary.yaml"))
	if err != nil {
		t.Fatalf("read summary.yaml: %v", err)
	}
	var sum Summary
	if err := yaml.Unmarshal(data, &sum); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if sum.Frames != 3 || sum.TotalSteps != 3 {
		t.Errorf("summary = %+v, expected 3 frames and 3 steps", sum)
	}

	if _, err := config.LoadCatch(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml does not load: %v", err)
	}
}
