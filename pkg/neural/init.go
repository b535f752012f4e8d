package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// WeightInit selects a per-layer weight-distribution standard deviation.
type WeightInit uint8

const (
	// He sets std-dev = sqrt(2/input_size); suited to ReLU layers.
	He WeightInit = iota
	// Xavier sets std-dev = sqrt(2/(input_size+output_size)); suited to
	// the final, linear layer.
	Xavier
)

// Randomize draws every weight i.i.d. from Normal(0, sigma), where
// sigma is chosen by the given WeightInit. Biases are left at zero.
// rng must not be nil and must not be shared across concurrent callers.
func (l *Layer) Randomize(init WeightInit, rng *rand.Rand) error {
	var sigma float64
	switch init {
	case He:
		sigma = math.Sqrt(2.0 / float64(l.InputSize))
	case Xavier:
		sigma = math.Sqrt(2.0 / float64(l.InputSize+l.OutputSize))
	default:
		return fmt.Errorf("neural: unknown weight init %v", init)
	}
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return fmt.Errorf("neural: degenerate weight init for layer shape in=%v out=%v", l.InputSize, l.OutputSize)
	}

	for i := range l.Weights {
		l.Weights[i] = rng.NormFloat64() * sigma
	}
	return nil
}
