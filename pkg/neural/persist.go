package neural

import (
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// wireActivation and wireLayer mirror the persisted layout: each
// layer carries input/output size, weight and bias vectors, and a
// tagged activation. Kept separate from Layer/Activation so the wire
// format doesn't shift if the in-memory types grow unrelated fields.
type wireActivation struct {
	Kind        uint8   `msgpack:"kind"`
	Temperature float64 `msgpack:"temperature"`
}

type wireLayer struct {
	InputSize  uint64         `msgpack:"input_size"`
	OutputSize uint64         `msgpack:"output_size"`
	Weights    []float64      `msgpack:"weights"`
	Biases     []float64      `msgpack:"biases"`
	Activation wireActivation `msgpack:"activation"`
}

type wireNetwork struct {
	Layers []wireLayer `msgpack:"layers"`
}

// Encode serializes the network to MessagePack bytes. Round-trips
// losslessly with Decode: weights, biases, sizes and activations are
// preserved exactly.
func Encode(n *Network) ([]byte, error) {
	w := wireNetwork{Layers: make([]wireLayer, len(n.Layers))}
	for i, l := range n.Layers {
		w.Layers[i] = wireLayer{
			InputSize:  uint64(l.InputSize),
			OutputSize: uint64(l.OutputSize),
			Weights:    l.Weights,
			Biases:     l.Biases,
			Activation: wireActivation{Kind: uint8(l.Activation.Kind), Temperature: l.Activation.Temperature},
		}
	}

	b, err := msgpack.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("neural: encode failed: %w", err)
	}
	return b, nil
}

// Decode deserializes a network from MessagePack bytes produced by
// Encode. Malformed or truncated input returns a decode error.
func Decode(b []byte) (*Network, error) {
	var w wireNetwork
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return nil, fmt.Errorf("neural: decode failed: %w", err)
	}

	layers := make([]*Layer, len(w.Layers))
	for i, wl := range w.Layers {
		layers[i] = &Layer{
			InputSize:  int(wl.InputSize),
			OutputSize: int(wl.OutputSize),
			Weights:    wl.Weights,
			Biases:     wl.Biases,
			Activation: Activation{Kind: ActivationKind(wl.Activation.Kind), Temperature: wl.Activation.Temperature},
		}
	}
	return &Network{Layers: layers}, nil
}

// Save encodes the network and writes it to path, overwriting any
// existing file. A failure to write is an IO error, distinct from the
// decode errors Load can return.
func Save(n *Network, path string) error {
	b, err := Encode(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("neural: write %v: %w", path, err)
	}
	return nil
}

// Load reads and decodes a network previously written by Save. Missing
// or unreadable files surface as IO errors; malformed contents as
// decode errors — both wrap the underlying error with %w, so callers
// can tell them apart with errors.Is/errors.As against the os/msgpack
// errors.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("neural: open %v: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("neural: read %v: %w", path, err)
	}

	n, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("neural: load %v: %w", path, err)
	}
	return n, nil
}
