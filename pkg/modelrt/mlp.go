package modelrt

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// layer is one dense layer: y = relu(W*x + b), with the activation skipped
// on the output layer.
type layer struct {
	name      string
	weights   *mat.Dense // out x in
	bias      *mat.VecDense
	precision Precision
}

// MLP is a dense feed-forward network. It implements Model. Weights are
// fixed at construction; Forward is inference-only.
type MLP struct {
	name     string
	inputDim int
	layers   []layer
}

// NewMLP builds a network with the given input width and layer widths.
// precisions carries the per-layer precision tag and must be the same
// length as widths. Weights are initialized from a deterministic seed so
// two models built from the same manifest are identical.
func NewMLP(name string, inputDim int, widths []int, precisions []Precision) (*MLP, error) {
	if inputDim <= 0 {
		return nil, fmt.Errorf("modelrt: input width must be > 0, got %d", inputDim)
	}
	if len(widths) == 0 {
		return nil, fmt.Errorf("modelrt: model needs at least one layer")
	}
	if len(precisions) != len(widths) {
		return nil, fmt.Errorf("modelrt: %d layers but %d precision tags", len(widths), len(precisions))
	}

	rng := rand.New(rand.NewSource(int64(inputDim)))
	m := &MLP{name: name, inputDim: inputDim}

	in := inputDim
	for i, out := range widths {
		if out <= 0 {
			return nil, fmt.Errorf("modelrt: layer %d width must be > 0, got %d", i, out)
		}
		w := mat.NewDense(out, in, nil)
		scale := math.Sqrt(2 / float64(in)) // He init keeps activations bounded through ReLU
		for r := 0; r < out; r++ {
			for c := 0; c < in; c++ {
				w.Set(r, c, rng.NormFloat64()*scale)
			}
		}
		m.layers = append(m.layers, layer{
			name:      fmt.Sprintf("fc%d", i),
			weights:   w,
			bias:      mat.NewVecDense(out, nil),
			precision: precisions[i],
		})
		in = out
	}
	return m, nil
}

// Name returns the model name from its manifest.
func (m *MLP) Name() string { return m.name }

// InputDim returns the flattened input width Forward expects.
func (m *MLP) InputDim() int { return m.inputDim }

// Parameters enumerates weight and bias tensors per layer. All parameters
// of the built-in runtime are trainable.
func (m *MLP) Parameters() []Parameter {
	params := make([]Parameter, 0, 2*len(m.layers))
	for _, l := range m.layers {
		rows, cols := l.weights.Dims()
		params = append(params,
			Parameter{
				Name:      l.name + ".weight",
				Count:     int64(rows) * int64(cols),
				Precision: l.precision,
				Trainable: true,
			},
			Parameter{
				Name:      l.name + ".bias",
				Count:     int64(l.bias.Len()),
				Precision: l.precision,
				Trainable: true,
			},
		)
	}
	return params
}

// Forward runs one inference pass over a flattened input vector.
func (m *MLP) Forward(input []float64) ([]float64, error) {
	if len(input) != m.inputDim {
		return nil, fmt.Errorf("modelrt: input length %d, model expects %d", len(input), m.inputDim)
	}

	x := mat.NewVecDense(len(input), input)
	for i, l := range m.layers {
		out := mat.NewVecDense(l.bias.Len(), nil)
		out.MulVec(l.weights, x)
		out.AddVec(out, l.bias)
		if i < len(m.layers)-1 {
			for j := 0; j < out.Len(); j++ {
				if out.AtVec(j) < 0 {
					out.SetVec(j, 0)
				}
			}
		}
		x = out
	}

	res := make([]float64, x.Len())
	copy(res, x.RawVector().Data)
	return res, nil
}
