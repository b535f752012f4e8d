package evolve_test

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/herohde/morlock/pkg/evolve"
	"github.com/herohde/morlock/pkg/neural"
	"github.com/herohde/morlock/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyFactory(rng *rand.Rand) (*neural.Network, error) {
	l0 := neural.NewLayer(policy.BoardSize, 8, neural.Activation{Kind: neural.Relu})
	l1 := neural.NewLayer(8, policy.NumMoves, neural.Activation{Kind: neural.None})
	if err := l0.Randomize(neural.He, rng); err != nil {
		return nil, err
	}
	if err := l1.Randomize(neural.Xavier, rng); err != nil {
		return nil, err
	}
	return neural.New(l0, l1), nil
}

func TestRunPlaysCheckpointsAndBreedsAGeneration(t *testing.T) {
	dir := t.TempDir()
	e := evolve.New(tinyFactory,
		evolve.WithPopulation(6),
		evolve.WithElite(2),
		evolve.WithMatchCap(2),
		evolve.WithCheckpointEvery(1),
		evolve.WithModelsDir(dir),
		evolve.WithWorkers(2),
	)

	rng := rand.New(rand.NewSource(1))
	err := e.Run(context.Background(), 0, 1, rng)
	require.NoError(t, err)

	for gen := 0; gen <= 1; gen++ {
		for i := 0; i < 2; i++ {
			path := filepath.Join(dir, fmt.Sprintf("gen-%d-net-%d.model", gen, i))
			_, err := os.Stat(path)
			assert.NoError(t, err, "expected checkpoint at %v", path)
		}
	}
}

func TestRunResumesFromACheckpointedGeneration(t *testing.T) {
	dir := t.TempDir()
	opts := []evolve.Option{
		evolve.WithPopulation(6),
		evolve.WithElite(2),
		evolve.WithMatchCap(2),
		evolve.WithCheckpointEvery(1),
		evolve.WithModelsDir(dir),
		evolve.WithWorkers(2),
	}

	rng := rand.New(rand.NewSource(2))
	require.NoError(t, evolve.New(tinyFactory, opts...).Run(context.Background(), 0, 1, rng))

	// A second Evolver instance, resuming from generation 1, must load
	// the elites checkpointed above rather than silently reinventing a
	// fresh random population.
	resumed := evolve.New(tinyFactory, opts...)
	err := resumed.Run(context.Background(), 1, 2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for _, gen := range []int{1, 2} {
		for i := 0; i < 2; i++ {
			path := filepath.Join(dir, fmt.Sprintf("gen-%d-net-%d.model", gen, i))
			_, err := os.Stat(path)
			assert.NoError(t, err, "expected checkpoint at %v", path)
		}
	}
}

func TestRunResumeFailsLoudlyWithoutACheckpoint(t *testing.T) {
	dir := t.TempDir()
	e := evolve.New(tinyFactory,
		evolve.WithPopulation(6),
		evolve.WithElite(2),
		evolve.WithModelsDir(dir),
	)

	err := e.Run(context.Background(), 5, 6, rand.New(rand.NewSource(1)))
	assert.Error(t, err, "resuming from a generation with no checkpoint on disk must fail, not silently start over")
}
