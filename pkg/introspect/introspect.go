// Package introspect performs static analysis of a loaded model: trainable
// parameter count, the set of numeric precisions in use, and an estimated
// FLOPs figure.
package introspect

import (
	"sort"

	"github.com/greenml/co2scope/pkg/modelrt"
)

// placeholderFLOPs is the fixed estimate reported for every model. Real
// FLOPs derivation needs graph traversal the runtime boundary does not
// expose; the value matches a ResNet18-class forward pass.
const placeholderFLOPs = 1.8e9

// FLOPsEstimate is an estimated floating-point operation count. Placeholder
// marks values not derived from the actual model graph; consumers must not
// treat those as representative of the analyzed architecture.
type FLOPsEstimate struct {
	Value       float64 `json:"value"`
	Placeholder bool    `json:"placeholder"`
}

// StaticMetrics is the result of static model analysis.
type StaticMetrics struct {
	// TotalParameters counts trainable parameters only.
	TotalParameters int64 `json:"total_parameters"`
	// Precisions is the de-duplicated, sorted set of parameter precisions.
	Precisions []modelrt.Precision `json:"model_precisions"`
	FLOPs      FLOPsEstimate       `json:"estimated_flops"`
}

// HasPrecision reports whether p occurs in the model's precision set.
func (s StaticMetrics) HasPrecision(p modelrt.Precision) bool {
	for _, q := range s.Precisions {
		if q == p {
			return true
		}
	}
	return false
}

// Inspect computes static metrics for a model. Non-trainable parameters
// contribute their precision tag but not their count. Validity of the model
// handle is the caller's concern; Inspect itself cannot fail.
func Inspect(m modelrt.Model) StaticMetrics {
	var total int64
	seen := map[modelrt.Precision]struct{}{}

	for _, p := range m.Parameters() {
		if p.Trainable {
			total += p.Count
		}
		seen[p.Precision] = struct{}{}
	}

	precisions := make([]modelrt.Precision, 0, len(seen))
	for p := range seen {
		precisions = append(precisions, p)
	}
	sort.Slice(precisions, func(i, j int) bool { return precisions[i] < precisions[j] })

	return StaticMetrics{
		TotalParameters: total,
		Precisions:      precisions,
		FLOPs:           FLOPsEstimate{Value: placeholderFLOPs, Placeholder: true},
	}
}
