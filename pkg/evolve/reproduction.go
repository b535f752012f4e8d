// Package evolve implements the evolutionary driver: reproduction
// (crossover + mutation), the two-network self-play game loop and its
// scoring, and the Evolver that schedules matches, runs them in
// parallel, extracts elites and checkpoints generations.
package evolve

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/herohde/morlock/pkg/neural"
)

// ErrShapeMismatch is returned by Offspring when the two parents don't
// have identical layer shapes — a precondition the Evolver always
// upholds internally (every network in a generation is cloned from the
// same architecture), so this only fires on programmer error.
var ErrShapeMismatch = errors.New("evolve: parents have mismatched network shapes")

const (
	mutateNoneP   = 0.80
	mutateSmoothP = 0.15
	mutateBurstP  = 0.05

	smoothStdDev = 0.02
	burstStdDev  = 0.20
)

// Offspring produces a new Network from two same-shaped parents a and
// b via per-scalar crossover and mutation. Parents are left unchanged.
//
// For every weight: a position draws alpha ~ Uniform[0,1), interpolates
// base = alpha*a + (1-alpha)*b, then adds mutation noise drawn from a
// three-outcome mixture (none 80%, smooth Gaussian(0, 0.02) 15%, burst
// Gaussian(0, 0.20) 5%).
//
// Biases interpolate parent a against itself — base is just a[i] before
// mutation — a literal, intentional carry-over of the reference engine's
// bias crossover. Not a bug to fix here.
func Offspring(a, b *neural.Network, rng *rand.Rand) (*neural.Network, error) {
	if !neural.SameShape(a, b) {
		return nil, ErrShapeMismatch
	}

	layers := make([]*neural.Layer, len(a.Layers))
	for i, la := range a.Layers {
		lb := b.Layers[i]

		child := neural.NewLayer(la.InputSize, la.OutputSize, la.Activation)
		crossoverInto(child.Weights, la.Weights, lb.Weights, rng)
		crossoverInto(child.Biases, la.Biases, la.Biases, rng)
		layers[i] = child
	}
	return neural.New(layers...), nil
}

func crossoverInto(dst, x, y []float64, rng *rand.Rand) {
	for i := range dst {
		dst[i] = crossoverScalar(x[i], y[i], rng)
	}
}

func crossoverScalar(x, y float64, rng *rand.Rand) float64 {
	alpha := rng.Float64()
	base := alpha*x + (1-alpha)*y
	return base + mutationDelta(rng)
}

// mutationDelta draws from the three-outcome mutation mixture: no
// change (80%), a smooth Gaussian nudge (15%), or a large burst (5%).
func mutationDelta(rng *rand.Rand) float64 {
	switch r := rng.Float64(); {
	case r < mutateNoneP:
		return 0
	case r < mutateNoneP+mutateSmoothP:
		return rng.NormFloat64() * smoothStdDev
	default:
		return rng.NormFloat64() * burstStdDev
	}
}

func init() {
	if mutateNoneP+mutateSmoothP+mutateBurstP != 1 {
		panic(fmt.Sprintf("evolve: mutation mixture must sum to 1, got %v", mutateNoneP+mutateSmoothP+mutateBurstP))
	}
}
