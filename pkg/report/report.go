// Package report defines the persisted analysis record and its JSON sink.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/greenml/co2scope/pkg/advisor"
	"github.com/greenml/co2scope/pkg/bench"
	"github.com/greenml/co2scope/pkg/carbon"
	"github.com/greenml/co2scope/pkg/introspect"
)

// FileName is the result file written inside the output directory.
const FileName = "analysis_results.json"

// Inputs echoes the analysis inputs into the persisted record.
// DemoSubstituted marks runs where the demo model was analyzed instead of
// the named file; such numbers do not describe the file at ModelPath.
type Inputs struct {
	ModelPath       string `json:"model_path"`
	HardwareType    string `json:"hardware_type"`
	Region          string `json:"aws_region"`
	DemoSubstituted bool   `json:"demo_substituted,omitempty"`
}

// DynamicAnalysis is the benchmark section of the record. Raw per-run
// latencies are never persisted; only the mean survives the run.
type DynamicAnalysis struct {
	InferenceLatencyMS float64 `json:"inference_latency_ms"`
	WarmupRuns         int     `json:"warmup_runs"`
	TimedRuns          int     `json:"timed_runs"`
}

// Report is the full analysis record for one run.
type Report struct {
	RunID                string                   `json:"run_id"`
	GeneratedAt          time.Time                `json:"generated_at"`
	Inputs               Inputs                   `json:"inputs"`
	StaticAnalysis       introspect.StaticMetrics `json:"static_analysis"`
	DynamicAnalysis      DynamicAnalysis          `json:"dynamic_analysis"`
	CO2Estimation        carbon.Estimate          `json:"co2_estimation"`
	OptimizerSuggestions []advisor.Suggestion     `json:"optimizer_suggestions"`
}

// New assembles a report from the pipeline outputs and stamps it with a
// fresh run id.
func New(in Inputs, static introspect.StaticMetrics, m bench.Measurement, warmup int, est carbon.Estimate, suggestions []advisor.Suggestion) *Report {
	if suggestions == nil {
		suggestions = []advisor.Suggestion{}
	}
	return &Report{
		RunID:          uuid.NewString(),
		GeneratedAt:    time.Now().UTC(),
		Inputs:         in,
		StaticAnalysis: static,
		DynamicAnalysis: DynamicAnalysis{
			InferenceLatencyMS: m.MeanMS,
			WarmupRuns:         warmup,
			TimedRuns:          len(m.Latencies),
		},
		CO2Estimation:        est,
		OptimizerSuggestions: suggestions,
	}
}

// Write persists the report as indented JSON under dir, creating the
// directory if needed, and returns the file path.
func Write(dir string, r *Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create output dir: %w", err)
	}

	b, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return "", fmt.Errorf("report: marshal: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}
