// Package modelrt is the model-runtime boundary for the analysis pipeline.
// It defines the minimal surface the pipeline needs from a loaded model:
// enumeration of parameters with trainable flag and precision tag, a
// forward-pass invocation, and an optional device synchronization
// capability for asynchronously-executing hardware.
//
// The built-in runtime is a dense feed-forward network backed by gonum
// matrices, constructed from a YAML manifest (see Manifest). It exists so
// the tool works end to end without an external inference engine; any
// implementation of Model and Device can be analyzed the same way.
package modelrt

// Precision is a numeric precision tag for model parameters.
type Precision string

const (
	Float64  Precision = "float64"
	Float32  Precision = "float32"
	Float16  Precision = "float16"
	BFloat16 Precision = "bfloat16"
	Int8     Precision = "int8"
)

// Parameter describes one named parameter tensor of a model.
type Parameter struct {
	Name      string
	Count     int64
	Precision Precision
	Trainable bool
}

// Model is a loaded model handle. Forward performs a single inference pass;
// implementations must not track gradients or retain per-call state, since
// Forward is timed by the latency benchmark.
type Model interface {
	Parameters() []Parameter
	Forward(input []float64) ([]float64, error)
}

// Device is a compute device handle.
type Device interface {
	Name() string
}

// Synchronizer is an optional Device capability. Devices that execute
// asynchronously expose it so callers can block until outstanding work
// completes; devices without it execute synchronously. There is no
// cancellation: a stalled device blocks the caller.
type Synchronizer interface {
	Synchronize()
}

// CPUDevice is the synchronous host device. It does not implement
// Synchronizer: forward passes have completed when the call returns.
type CPUDevice struct{}

func (CPUDevice) Name() string { return "cpu" }
