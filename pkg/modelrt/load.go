package modelrt

import (
	"errors"
	"fmt"
	"os"
)

// ErrModelNotFound reports a model path that does not exist and no fallback
// was permitted.
var ErrModelNotFound = errors.New("modelrt: model file not found")

// LoadResult is a successfully loaded model plus the device it is placed
// on. Substituted is true when the demo model was returned instead of the
// requested file; callers must surface that state, since the resulting
// analysis describes the demo architecture, not the named file.
type LoadResult struct {
	Model       Model
	Device      Device
	Name        string
	Substituted bool
}

// Load resolves a model path into a runnable model on the host device.
//
// A missing path is an error unless allowFallback is set, in which case the
// demo classifier model is substituted and flagged. The fallback is opt-in:
// silently analyzing an unrelated architecture under a real filename would
// produce meaningless footprint numbers.
func Load(path string, allowFallback bool) (*LoadResult, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("modelrt: stat model: %w", err)
		}
		if !allowFallback {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		m, err := DemoModel()
		if err != nil {
			return nil, err
		}
		return &LoadResult{Model: m, Device: CPUDevice{}, Name: m.Name(), Substituted: true}, nil
	}

	m, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Model: m, Device: CPUDevice{}, Name: m.Name()}, nil
}

// DemoModel builds the demonstration network: a float32 MLP sized like a
// small image classifier (flattened 3x224x224 input), standing in for the
// pre-trained architecture the tool substitutes when asked to run without a
// model file.
func DemoModel() (*MLP, error) {
	return NewMLP("demo-classifier", 3*224*224, []int{64, 32, 10},
		[]Precision{Float32, Float32, Float32})
}
