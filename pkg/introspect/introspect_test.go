package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenml/co2scope/pkg/modelrt"
)

// fakeModel returns a canned parameter list; Forward is never exercised by
// static analysis.
type fakeModel struct {
	params []modelrt.Parameter
}

func (f *fakeModel) Parameters() []modelrt.Parameter { return f.params }
func (f *fakeModel) Forward(in []float64) ([]float64, error) {
	return nil, nil
}

func TestInspect_CountsTrainableOnly(t *testing.T) {
	m := &fakeModel{params: []modelrt.Parameter{
		{Name: "conv.weight", Count: 1000, Precision: modelrt.Float32, Trainable: true},
		{Name: "conv.bias", Count: 10, Precision: modelrt.Float32, Trainable: true},
		{Name: "bn.running_mean", Count: 500, Precision: modelrt.Float32, Trainable: false},
	}}

	got := Inspect(m)
	assert.Equal(t, int64(1010), got.TotalParameters, "non-trainable excluded")
}

func TestInspect_PrecisionSetDeduplicatesAndSorts(t *testing.T) {
	m := &fakeModel{params: []modelrt.Parameter{
		{Name: "a", Count: 1, Precision: modelrt.Float32, Trainable: true},
		{Name: "b", Count: 1, Precision: modelrt.Float16, Trainable: true},
		{Name: "c", Count: 1, Precision: modelrt.Float32, Trainable: true},
		{Name: "d", Count: 1, Precision: modelrt.BFloat16, Trainable: false},
	}}

	got := Inspect(m)
	assert.Equal(t,
		[]modelrt.Precision{modelrt.BFloat16, modelrt.Float16, modelrt.Float32},
		got.Precisions, "order-independent set, duplicates collapsed")
	assert.True(t, got.HasPrecision(modelrt.Float32))
	assert.False(t, got.HasPrecision(modelrt.Int8))
}

func TestInspect_FLOPsIsTaggedPlaceholder(t *testing.T) {
	small := Inspect(&fakeModel{params: []modelrt.Parameter{
		{Name: "a", Count: 1, Precision: modelrt.Float32, Trainable: true},
	}})
	large := Inspect(&fakeModel{params: []modelrt.Parameter{
		{Name: "a", Count: 1_000_000_000, Precision: modelrt.Float32, Trainable: true},
	}})

	assert.True(t, small.FLOPs.Placeholder)
	assert.Equal(t, 1.8e9, small.FLOPs.Value)
	assert.Equal(t, small.FLOPs, large.FLOPs, "placeholder is independent of model shape")
}

func TestInspect_EmptyModel(t *testing.T) {
	got := Inspect(&fakeModel{})
	assert.Zero(t, got.TotalParameters)
	assert.Empty(t, got.Precisions)
	require.True(t, got.FLOPs.Placeholder)
}
