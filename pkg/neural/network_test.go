package neural_test

import (
	"math"
	"math/rand"
	"os"
	"testing"

	"github.com/herohde/morlock/pkg/neural"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallNetwork(t *testing.T) *neural.Network {
	t.Helper()

	rng := rand.New(rand.NewSource(1))
	l0 := neural.NewLayer(4, 6, neural.Activation{Kind: neural.Relu})
	l1 := neural.NewLayer(6, 3, neural.Activation{Kind: neural.None})
	require.NoError(t, l0.Randomize(neural.He, rng))
	require.NoError(t, l1.Randomize(neural.Xavier, rng))

	return neural.New(l0, l1)
}

func TestForwardProducesExpectedLength(t *testing.T) {
	n := smallNetwork(t)
	s := n.NewScratch()

	out, err := n.Forward([]float64{0.1, -0.2, 0.3, 0.4}, &s)
	require.NoError(t, err)
	assert.Len(t, out, n.OutputSize())
}

func TestForwardRejectsWrongInputLength(t *testing.T) {
	n := smallNetwork(t)
	s := n.NewScratch()

	_, err := n.Forward([]float64{1, 2, 3}, &s)
	assert.Error(t, err)
}

func TestReluClampsNegatives(t *testing.T) {
	l := neural.NewLayer(2, 2, neural.Activation{Kind: neural.Relu})
	l.Weights = []float64{1, 0, 0, 1}
	l.Biases = []float64{0, 0}

	var out []float64
	l.Forward([]float64{-5, 3}, &out)
	assert.Equal(t, []float64{0, 3}, out)
}

func TestSoftmaxSumsToOneAndMasksNegInf(t *testing.T) {
	logits := []float64{1, 2, math.Inf(-1), 3}
	neural.Softmax(logits, 1)

	var sum float64
	for _, v := range logits {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, 0.0, logits[2])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	n := smallNetwork(t)

	b, err := neural.Encode(n)
	require.NoError(t, err)

	got, err := neural.Decode(b)
	require.NoError(t, err)

	require.Len(t, got.Layers, len(n.Layers))
	for i := range n.Layers {
		assert.Equal(t, n.Layers[i].InputSize, got.Layers[i].InputSize)
		assert.Equal(t, n.Layers[i].OutputSize, got.Layers[i].OutputSize)
		assert.Equal(t, n.Layers[i].Weights, got.Layers[i].Weights)
		assert.Equal(t, n.Layers[i].Biases, got.Layers[i].Biases)
		assert.Equal(t, n.Layers[i].Activation, got.Layers[i].Activation)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	n := smallNetwork(t)
	path := t.TempDir() + "/net.model"

	require.NoError(t, neural.Save(n, path))
	got, err := neural.Load(path)
	require.NoError(t, err)

	assert.Equal(t, n.Layers[0].Weights, got.Layers[0].Weights)
}

func TestLoadMissingFileIsIOError(t *testing.T) {
	_, err := neural.Load("/nonexistent/path/net.model")
	assert.Error(t, err)
}

func TestLoadMalformedBytesIsDecodeError(t *testing.T) {
	path := t.TempDir() + "/bad.model"
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0x00, 0x01}, 0644))

	_, err := neural.Load(path)
	assert.Error(t, err)
}
