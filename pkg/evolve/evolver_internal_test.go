package evolve

import (
	"math/rand"
	"testing"

	"github.com/herohde/morlock/pkg/neural"
	"github.com/stretchr/testify/assert"
)

func TestMakeMatchesRespectsPerNetworkCap(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	matches := makeMatches(20, 3, rng)

	counts := make([]int, 20)
	for _, m := range matches {
		counts[m.i]++
		counts[m.j]++
	}
	for i, c := range counts {
		assert.LessOrEqualf(t, c, 3, "network %v exceeded match cap", i)
	}
}

func TestMakeMatchesNeverPairsNetworkWithItself(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	matches := makeMatches(10, 4, rng)

	for _, m := range matches {
		assert.NotEqual(t, m.i, m.j)
	}
}

func newScalarNetwork(fill float64) *neural.Network {
	l := neural.NewLayer(2, 1, neural.Activation{Kind: neural.None})
	for i := range l.Weights {
		l.Weights[i] = fill
	}
	return neural.New(l)
}

func TestGetElitesOrdersByScoreDescending(t *testing.T) {
	cands := []*candidate{
		{net: newScalarNetwork(1), score: 3},
		{net: newScalarNetwork(2), score: 9},
		{net: newScalarNetwork(3), score: 1},
	}

	elites := getElites(cands, 2)
	assert.Equal(t, cands[1].net, elites[0])
	assert.Equal(t, cands[0].net, elites[1])
}

func TestGetElitesClampsToPopulationSize(t *testing.T) {
	cands := []*candidate{{net: newScalarNetwork(1), score: 1}}
	elites := getElites(cands, 5)
	assert.Len(t, elites, 1)
}

func TestBestScoreFindsMaximum(t *testing.T) {
	cands := []*candidate{
		{score: -5},
		{score: 42},
		{score: 3},
	}
	assert.Equal(t, 42.0, bestScore(cands))
}
