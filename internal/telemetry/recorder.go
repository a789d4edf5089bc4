// Package telemetry records per-frame simulator timing to CSV and summarizes
// it. It backs the headless simulate command.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-catch/internal/config"
)

// FrameRecord is one display frame as seen by the simulator.
type FrameRecord struct {
	Frame       uint64  `csv:"frame"`
	Delta       float64 `csv:"delta"`
	Steps       int     `csv:"steps"`
	Alpha       float64 `csv:"alpha"`
	Accumulator float64 `csv:"accumulator"`
	Bodies      int     `csv:"bodies"`
	SimTime     float64 `csv:"sim_time"`
	Level       int     `csv:"level"`
	Phase       string  `csv:"phase"`
	Lives       int     `csv:"lives"`
	Collected   int     `csv:"collected"`
}

// Summary aggregates a recording.
type Summary struct {
	Frames     int     `yaml:"frames"`
	TotalSteps int     `yaml:"total_steps"`
	MaxSteps   int     `yaml:"max_steps"`
	MeanDelta  float64 `yaml:"mean_delta"`
	StdDelta   float64 `yaml:"std_delta"`
	MeanSteps  float64 `yaml:"mean_steps"`
	StdSteps   float64 `yaml:"std_steps"`
	AlphaP50   float64 `yaml:"alpha_p50"`
	AlphaP95   float64 `yaml:"alpha_p95"`
	SimTime    float64 `yaml:"sim_time"`
	Score      int     `yaml:"score"`
}

// Recorder accumulates frame records. With an output directory it also
// streams them to frames.csv.
type Recorder struct {
	dir           string
	file          *os.File
	headerWritten bool

	deltas  []float64
	steps   []float64
	alphas  []float64
	simTime float64
	score   int
}

// NewRecorder creates a recorder. An empty dir keeps statistics in memory only.
func NewRecorder(dir string) (*Recorder, error) {
	r := &Recorder{dir: dir}
	if dir == "" {
		return r, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating frames.csv: %w", err)
	}
	r.file = f
	return r, nil
}

// Record adds one frame.
func (r *Recorder) Record(rec FrameRecord) error {
	r.deltas = append(r.deltas, rec.Delta)
	r.steps = append(r.steps, float64(rec.Steps))
	r.alphas = append(r.alphas, rec.Alpha)
	r.simTime = rec.SimTime

	if r.file == nil {
		return nil
	}

	records := []FrameRecord{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("telemetry: writing frame: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("telemetry: writing frame: %w", err)
	}
	return nil
}

// SetScore sets the score reported in the summary.
func (r *Recorder) SetScore(score int) { r.score = score }

// Summary computes statistics over everything recorded so far.
func (r *Recorder) Summary() Summary {
	s := Summary{Frames: len(r.deltas), SimTime: r.simTime, Score: r.score}
	if s.Frames == 0 {
		return s
	}

	for _, v := range r.steps {
		s.TotalSteps += int(v)
		s.MaxSteps = max(s.MaxSteps, int(v))
	}
	s.MeanDelta, s.StdDelta = stat.MeanStdDev(r.deltas, nil)
	s.MeanSteps, s.StdSteps = stat.MeanStdDev(r.steps, nil)

	sorted := slices.Clone(r.alphas)
	slices.Sort(sorted)
	s.AlphaP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.AlphaP95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}

// WriteConfig saves the configuration the run used as config.yaml.
func (r *Recorder) WriteConfig(cfg config.CatchConfig) error {
	if r.dir == "" {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(r.dir, "config.yaml"))
}

// WriteSummary saves Summary() as summary.yaml.
func (r *Recorder) WriteSummary() error {
	if r.dir == "" {
		return nil
	}
	data, err := yaml.Marshal(r.Summary())
	if err != nil {
		return fmt.Errorf("telemetry: marshaling summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, "summary.yaml"), data, 0o644); err != nil {
		return fmt.Errorf("telemetry: writing summary.yaml: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string { return r.dir }

// Close flushes and closes the frame file.
func (r *Recorder) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
