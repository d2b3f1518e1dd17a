// Package bench measures mean inference latency of a model by repeated
// timed forward passes over a synthetic input.
package bench

import (
	"math/rand"
	"time"

	"github.com/greenml/co2scope/pkg/modelrt"
)

// InputShape is the fixed synthetic input: one 3-channel 224x224 image,
// flattened. The benchmark is architecture-agnostic only for models that
// accept this shape.
var InputShape = [4]int{1, 3, 224, 224}

// Config holds benchmark parameters.
type Config struct {
	// Warmup is the number of untimed passes run first, to keep one-time
	// initialization cost (lazy allocation, cache warm-up) out of the
	// measurement.
	Warmup int
	// Runs is the number of timed passes averaged into the result.
	Runs int
}

// defaultConfig mirrors the analysis defaults: 10 warm-up passes, 50 timed.
func defaultConfig() *Config {
	return &Config{Warmup: 10, Runs: 50}
}

// merge returns defaults with positive fields of cfg applied over them.
func merge(cfg *Config) *Config {
	base := defaultConfig()
	if cfg == nil {
		return base
	}
	merged := *base
	if cfg.Warmup > 0 {
		merged.Warmup = cfg.Warmup
	}
	if cfg.Runs > 0 {
		merged.Runs = cfg.Runs
	}
	return &merged
}

// Measurement holds per-run latencies in milliseconds and their arithmetic
// mean. The zero value is the empty measurement: it signals an
// unmeasurable model to the next pipeline stage.
type Measurement struct {
	Latencies []float64
	MeanMS    float64
}

// Empty reports whether the measurement carries no timed runs.
func (m Measurement) Empty() bool { return len(m.Latencies) == 0 }

// Run benchmarks a single-inference forward pass.
//
// Each timed interval brackets exactly one Forward call. When the device
// executes asynchronously (exposes modelrt.Synchronizer), the barrier is
// invoked before the interval ends; without it the interval would
// systematically undercount true compute time. A nil model yields the
// empty measurement rather than an error.
func Run(m modelrt.Model, d modelrt.Device, cfg *Config) Measurement {
	if m == nil {
		return Measurement{}
	}
	c := merge(cfg)

	input := syntheticInput()
	sync, _ := d.(modelrt.Synchronizer)

	for i := 0; i < c.Warmup; i++ {
		if _, err := m.Forward(input); err != nil {
			return Measurement{}
		}
		if sync != nil {
			sync.Synchronize()
		}
	}

	latencies := make([]float64, 0, c.Runs)
	for i := 0; i < c.Runs; i++ {
		start := time.Now()
		_, err := m.Forward(input)
		if sync != nil {
			sync.Synchronize()
		}
		elapsed := time.Since(start)
		if err != nil {
			return Measurement{}
		}
		latencies = append(latencies, float64(elapsed.Nanoseconds())/1e6)
	}

	return Measurement{Latencies: latencies, MeanMS: mean(latencies)}
}

func syntheticInput() []float64 {
	n := InputShape[0] * InputShape[1] * InputShape[2] * InputShape[3]
	rng := rand.New(rand.NewSource(1))
	in := make([]float64, n)
	for i := range in {
		in[i] = rng.NormFloat64()
	}
	return in
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
