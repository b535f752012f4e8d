package neural

import "fmt"

// Network is an ordered sequence of Layers; layer i's OutputSize must
// equal layer i+1's InputSize. A Network is immutable during inference:
// Forward only ever writes into caller-supplied scratch, never into the
// Network itself, so many matches can share one generation's Networks
// read-only across goroutines.
type Network struct {
	Layers []*Layer
}

// New returns a Network from the given layers, in order.
func New(layers ...*Layer) *Network {
	return &Network{Layers: layers}
}

// Scratch is a ping-pong buffer pair used to carry activations between
// layers during Forward without per-call allocation.
type Scratch struct {
	A, B []float64
}

// NewScratch returns an empty buffer pair, each pre-allocated to the
// Network's largest layer output, to amortize allocation across many
// Forward calls (e.g. the 4096-wide move logits of the final layer).
func (n *Network) NewScratch() Scratch {
	max := 0
	for _, l := range n.Layers {
		if l.OutputSize > max {
			max = l.OutputSize
		}
	}
	return Scratch{A: make([]float64, 0, max), B: make([]float64, 0, max)}
}

// Forward runs input through every layer in order, using s as scratch,
// and returns the final layer's output (a view into s.A or s.B — copy
// it if it must outlive the next Forward call on this Scratch).
func (n *Network) Forward(input []float64, s *Scratch) ([]float64, error) {
	if len(n.Layers) == 0 {
		return nil, fmt.Errorf("neural: network has no layers")
	}
	if len(input) != n.Layers[0].InputSize {
		return nil, fmt.Errorf("neural: input length %v does not match first layer input size %v", len(input), n.Layers[0].InputSize)
	}

	s.A = grow(s.A, len(input))
	copy(s.A, input)

	a, b := s.A, s.B
	for _, l := range n.Layers {
		l.Forward(a, &b)
		a, b = b, a
	}
	s.A, s.B = a, b

	return a, nil
}

// InputSize returns the first layer's input width.
func (n *Network) InputSize() int {
	return n.Layers[0].InputSize
}

// OutputSize returns the last layer's output width.
func (n *Network) OutputSize() int {
	return n.Layers[len(n.Layers)-1].OutputSize
}

// SameShape reports whether a and b have the same number of layers with
// identical input and output sizes, the precondition Reproduction
// requires of its parents. Activations are not compared.
func SameShape(a, b *Network) bool {
	if len(a.Layers) != len(b.Layers) {
		return false
	}
	for i := range a.Layers {
		if a.Layers[i].InputSize != b.Layers[i].InputSize || a.Layers[i].OutputSize != b.Layers[i].OutputSize {
			return false
		}
	}
	return true
}
