// Package advisor maps static model metrics and the deployment hardware to
// optimization suggestions through a fixed-order rule set.
package advisor

import (
	"github.com/greenml/co2scope/pkg/introspect"
	"github.com/greenml/co2scope/pkg/modelrt"
	"github.com/greenml/co2scope/pkg/reference"
)

// Impact is the estimated effect of applying a suggestion.
type Impact string

const (
	ImpactLow    Impact = "Low"
	ImpactMedium Impact = "Medium"
	ImpactHigh   Impact = "High"
)

// Suggestion is one optimization recommendation. Code is a stable short
// identifier consumers can match on.
type Suggestion struct {
	Code        string `json:"suggestion_code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      Impact `json:"estimated_impact"`
}

// Rule thresholds, all strict comparisons.
const (
	pruneThresholdParams     = 10_000_000
	downgradeThresholdParams = 5_000_000
	upgradeThresholdParams   = 20_000_000
)

// Engine evaluates the suggestion rules. Hardware class resolution uses the
// injected reference tables.
type Engine struct {
	tables *reference.Tables
}

// NewEngine builds an engine over the given factor tables. A nil tables
// argument uses the built-ins.
func NewEngine(tables *reference.Tables) *Engine {
	if tables == nil {
		tables = reference.Builtin()
	}
	return &Engine{tables: tables}
}

// Suggest evaluates the rules in fixed order; each is independently
// triggerable and zero matches is a valid outcome, not an error. The
// hardware up/downgrade rules partition on accelerator class and cannot
// both fire.
func (e *Engine) Suggest(metrics introspect.StaticMetrics, hardwareID string) []Suggestion {
	var out []Suggestion
	accelerator := e.tables.Hardware(hardwareID).Accelerator

	if metrics.HasPrecision(modelrt.Float32) {
		out = append(out, Suggestion{
			Code:  "QUANT-01",
			Title: "Apply Post-Training Quantization",
			Description: "The model uses 32-bit floating point precision. Quantizing to 16-bit " +
				"(FP16/BFP16) or 8-bit integers (INT8) can reduce model size by 50-75%, lower " +
				"latency, and decrease energy use, often with minimal impact on accuracy.",
			Impact: ImpactHigh,
		})
	}

	if metrics.TotalParameters > pruneThresholdParams {
		out = append(out, Suggestion{
			Code:  "PRUNE-01",
			Title: "Explore Model Pruning",
			Description: "With over 10 million parameters, this model may contain redundant " +
				"weights. Unstructured or structured pruning can create a smaller, faster model " +
				"by removing unnecessary parameters.",
			Impact: ImpactMedium,
		})
	}

	if accelerator && metrics.TotalParameters < downgradeThresholdParams {
		out = append(out, Suggestion{
			Code:  "HW-01",
			Title: "Consider More Efficient Hardware",
			Description: "This model is relatively small. A powerful accelerator may be " +
				"underutilized. Consider deploying on a more energy-efficient GPU (e.g., T4), a " +
				"CPU-based instance (e.g., powered by Graviton), or AWS Inferentia for better " +
				"cost and energy performance.",
			Impact: ImpactMedium,
		})
	} else if !accelerator && metrics.TotalParameters > upgradeThresholdParams {
		out = append(out, Suggestion{
			Code:  "HW-02",
			Title: "Consider GPU Acceleration",
			Description: "This is a large model. Deploying on a CPU may result in high latency. " +
				"A GPU-based instance would likely provide significantly better performance and " +
				"throughput.",
			Impact: ImpactHigh,
		})
	}

	return out
}
