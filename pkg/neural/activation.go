// Package neural implements the feed-forward inference network: dense
// layers with scratch-buffer forward passes, weight initialization and
// MessagePack persistence. It never trains by gradient descent — the
// only way a Network's weights change is via Reproduction's crossover
// (see pkg/evolve).
package neural

import "fmt"

// ActivationKind tags the variant held by an Activation.
type ActivationKind uint8

const (
	None ActivationKind = iota
	Relu
	Softmax
)

// Activation is a tagged union of the supported layer activations.
// Softmax carries a Temperature honored as a divisor on the logit
// before exponentiation (see Softmax in softmax.go).
//
// In the network built for self-play (cmd/evolvechess), the final layer
// is tagged None: the canonical contract is that it emits raw logits,
// MoveSelector masks illegal destinations, and softmax is applied
// externally exactly once — applying it here too would double-apply it.
// A Layer tagged Softmax still computes it correctly, for networks built
// outside that pipeline.
type Activation struct {
	Kind        ActivationKind
	Temperature float64
}

func (a Activation) String() string {
	switch a.Kind {
	case None:
		return "none"
	case Relu:
		return "relu"
	case Softmax:
		return fmt.Sprintf("softmax(t=%.3f)", a.Temperature)
	default:
		return "?"
	}
}

// apply runs the activation over out in place.
func (a Activation) apply(out []float64) {
	switch a.Kind {
	case None:
		// identity
	case Relu:
		for i, v := range out {
			if v < 0 {
				out[i] = 0
			}
		}
	case Softmax:
		t := a.Temperature
		if t <= 0 {
			t = 1
		}
		Softmax(out, t)
	}
}
