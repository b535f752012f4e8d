package neural

import "fmt"

// Layer is a dense feed-forward layer: weights are row-major (row i is
// output neuron i's input weights), biases are per-output-neuron. A
// Layer owns no per-call output storage — Forward writes into a
// caller-supplied scratch buffer, so inference stays pure and multiple
// matches can run concurrently over the same (read-only) Layer.
type Layer struct {
	InputSize, OutputSize int
	Weights               []float64 // len == InputSize*OutputSize
	Biases                []float64 // len == OutputSize
	Activation            Activation
}

// NewLayer returns a Layer with zero weights and biases. Call Randomize
// to draw weights from a distribution before use.
func NewLayer(inputSize, outputSize int, activation Activation) *Layer {
	return &Layer{
		InputSize:  inputSize,
		OutputSize: outputSize,
		Weights:    make([]float64, inputSize*outputSize),
		Biases:     make([]float64, outputSize),
		Activation: activation,
	}
}

func (l *Layer) String() string {
	return fmt.Sprintf("layer{in=%v, out=%v, activation=%v}", l.InputSize, l.OutputSize, l.Activation)
}

// Forward computes out[i] = bias[i] + sum_j(weights[i*InputSize+j] * input[j])
// for every output neuron, then applies the layer's activation. out is
// resized to exactly OutputSize. input must have length InputSize.
func (l *Layer) Forward(input []float64, out *[]float64) {
	*out = grow(*out, l.OutputSize)
	dst := *out

	for i := 0; i < l.OutputSize; i++ {
		row := l.Weights[i*l.InputSize : (i+1)*l.InputSize]

		sum := l.Biases[i]
		for j, w := range row {
			sum += w * input[j]
		}
		dst[i] = sum
	}

	l.Activation.apply(dst)
}

// grow returns a slice with exactly n elements, reusing buf's backing
// array when it has enough capacity.
func grow(buf []float64, n int) []float64 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
