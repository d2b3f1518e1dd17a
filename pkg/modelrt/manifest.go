package modelrt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a model file the built-in runtime can instantiate.
// Precision applies to every layer unless a layer overrides it.
//
// Example:
//
//	name: tiny-classifier
//	input: 150528
//	precision: float32
//	layers:
//	  - units: 64
//	  - units: 10
//	    precision: float16
type Manifest struct {
	Name      string          `yaml:"name"`
	Input     int             `yaml:"input"`
	Precision Precision       `yaml:"precision"`
	Layers    []LayerManifest `yaml:"layers"`
}

// LayerManifest is one dense layer in a Manifest.
type LayerManifest struct {
	Units     int       `yaml:"units"`
	Precision Precision `yaml:"precision"`
}

var knownPrecisions = map[Precision]struct{}{
	Float64: {}, Float32: {}, Float16: {}, BFloat16: {}, Int8: {},
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(raw []byte) (*Manifest, error) {
	var mf Manifest
	if err := yaml.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("modelrt: parse manifest: %w", err)
	}
	if mf.Precision == "" {
		mf.Precision = Float32
	}
	if _, ok := knownPrecisions[mf.Precision]; !ok {
		return nil, fmt.Errorf("modelrt: unknown precision %q", mf.Precision)
	}
	if mf.Input <= 0 {
		return nil, fmt.Errorf("modelrt: manifest input must be > 0, got %d", mf.Input)
	}
	if len(mf.Layers) == 0 {
		return nil, fmt.Errorf("modelrt: manifest has no layers")
	}
	for i := range mf.Layers {
		if mf.Layers[i].Precision == "" {
			mf.Layers[i].Precision = mf.Precision
		}
		if _, ok := knownPrecisions[mf.Layers[i].Precision]; !ok {
			return nil, fmt.Errorf("modelrt: layer %d: unknown precision %q", i, mf.Layers[i].Precision)
		}
		if mf.Layers[i].Units <= 0 {
			return nil, fmt.Errorf("modelrt: layer %d: units must be > 0, got %d", i, mf.Layers[i].Units)
		}
	}
	return &mf, nil
}

// Build instantiates the network described by the manifest.
func (mf *Manifest) Build() (*MLP, error) {
	widths := make([]int, len(mf.Layers))
	precisions := make([]Precision, len(mf.Layers))
	for i, l := range mf.Layers {
		widths[i] = l.Units
		precisions[i] = l.Precision
	}
	return NewMLP(mf.Name, mf.Input, widths, precisions)
}

// readManifest loads and builds a manifest from disk.
func readManifest(path string) (*MLP, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelrt: read manifest: %w", err)
	}
	mf, err := ParseManifest(raw)
	if err != nil {
		return nil, err
	}
	return mf.Build()
}
