package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenml/co2scope/pkg/advisor"
	"github.com/greenml/co2scope/pkg/bench"
	"github.com/greenml/co2scope/pkg/carbon"
	"github.com/greenml/co2scope/pkg/introspect"
	"github.com/greenml/co2scope/pkg/modelrt"
)

func sampleReport() *Report {
	return New(
		Inputs{ModelPath: "./model.yaml", HardwareType: "gpu_t4", Region: "us-east-1"},
		introspect.StaticMetrics{
			TotalParameters: 1234,
			Precisions:      []modelrt.Precision{modelrt.Float32},
			FLOPs:           introspect.FLOPsEstimate{Value: 1.8e9, Placeholder: true},
		},
		bench.Measurement{Latencies: []float64{1, 2, 3}, MeanMS: 2},
		10,
		carbon.Estimate{PowerWatts: 45, EnergyKWh: 2.5e-7, CO2Grams: 1.1e-4, CarbonIntensity: 379, PUE: 1.15},
		[]advisor.Suggestion{{Code: "QUANT-01", Title: "t", Description: "d", Impact: advisor.ImpactHigh}},
	)
}

func TestNew_StampsRunAndDropsRawLatencies(t *testing.T) {
	r := sampleReport()

	assert.NotEmpty(t, r.RunID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Equal(t, 2.0, r.DynamicAnalysis.InferenceLatencyMS)
	assert.Equal(t, 3, r.DynamicAnalysis.TimedRuns)
	assert.Equal(t, 10, r.DynamicAnalysis.WarmupRuns)

	r2 := sampleReport()
	assert.NotEqual(t, r.RunID, r2.RunID, "run ids are unique per analysis")
}

func TestNew_NilSuggestionsBecomeEmptySlice(t *testing.T) {
	r := New(Inputs{}, introspect.StaticMetrics{}, bench.Measurement{}, 10, carbon.Estimate{}, nil)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"optimizer_suggestions":[]`,
		"schema consumers expect an array, not null")
}

func TestWrite_CreatesDirectoryAndSchema(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	path, err := Write(dir, sampleReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, field := range []string{"inputs", "static_analysis", "dynamic_analysis", "co2_estimation", "optimizer_suggestions"} {
		assert.Contains(t, decoded, field)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := sampleReport()

	path, err := Write(dir, original)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Report
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, original.Inputs, got.Inputs)
	assert.Equal(t, original.StaticAnalysis, got.StaticAnalysis)
	assert.Equal(t, original.CO2Estimation, got.CO2Estimation)
	assert.Equal(t, original.OptimizerSuggestions, got.OptimizerSuggestions)
}
