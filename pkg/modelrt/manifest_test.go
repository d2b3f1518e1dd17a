package modelrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest_DefaultsAndOverrides(t *testing.T) {
	mf, err := ParseManifest([]byte(`
name: tiny-classifier
input: 16
layers:
  - units: 8
  - units: 4
    precision: float16
`))
	require.NoError(t, err)

	assert.Equal(t, "tiny-classifier", mf.Name)
	assert.Equal(t, 16, mf.Input)
	assert.Equal(t, Float32, mf.Precision, "precision defaults to float32")
	require.Len(t, mf.Layers, 2)
	assert.Equal(t, Float32, mf.Layers[0].Precision, "layer inherits model precision")
	assert.Equal(t, Float16, mf.Layers[1].Precision, "layer override wins")
}

func TestParseManifest_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no layers", "name: m\ninput: 16\n"},
		{"zero input", "name: m\ninput: 0\nlayers:\n  - units: 4\n"},
		{"zero units", "name: m\ninput: 16\nlayers:\n  - units: 0\n"},
		{"unknown precision", "name: m\ninput: 16\nprecision: float8\nlayers:\n  - units: 4\n"},
		{"unknown layer precision", "name: m\ninput: 16\nlayers:\n  - units: 4\n    precision: fp4\n"},
		{"not yaml", "{{{{"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.yaml))
			require.Error(t, err)
		})
	}
}

func TestManifestBuild(t *testing.T) {
	mf, err := ParseManifest([]byte("name: m\ninput: 6\nlayers:\n  - units: 3\n  - units: 2\n"))
	require.NoError(t, err)

	m, err := mf.Build()
	require.NoError(t, err)

	out, err := m.Forward(make([]float64, 6))
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
