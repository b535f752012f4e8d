package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/herohde/morlock/pkg/evolve"
	"github.com/herohde/morlock/pkg/neural"
	"github.com/herohde/morlock/pkg/policy"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	start           = flag.Int("start", 0, "First generation to run (above 0, its checkpointed elites must exist in -models-dir)")
	end             = flag.Int("end", 100, "Last generation to run, inclusive")
	population      = flag.Int("population", 256, "Number of networks per generation")
	elite           = flag.Int("elite", 8, "Number of top networks preserved unchanged into the next generation")
	matchCap        = flag.Int("cap", 16, "Maximum number of matches any one network plays per generation")
	checkpointEvery = flag.Int("checkpoint-every", 5, "Write a checkpoint every N generations (always written for the final generation)")
	modelsDir       = flag.String("models-dir", "models", "Directory for generation checkpoints")
	workers         = flag.Int("workers", 0, "Worker goroutines for match play (0 = runtime.NumCPU())")
	seed            = flag.Int64("seed", 1, "Seed for the top-level RNG driving matchmaking shuffles and population init")
	temperature     = flag.Float64("temperature", policy.DefaultTemperature, "Softmax temperature applied to move logits before sampling")
	hidden          = flag.Int("hidden", 512, "Width of the single hidden layer")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: evolvechess [options]

EVOLVECHESS evolves populations of small feed-forward networks to play
chess via self-play tournaments, with no gradient training involved.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *end < *start {
		flag.Usage()
		logw.Exitf(ctx, "end generation (%v) must be >= start generation (%v)", *end, *start)
	}

	factory := func(rng *rand.Rand) (*neural.Network, error) {
		l0 := neural.NewLayer(policy.BoardSize, *hidden, neural.Activation{Kind: neural.Relu})
		l1 := neural.NewLayer(*hidden, policy.NumMoves, neural.Activation{Kind: neural.None})
		if err := l0.Randomize(neural.He, rng); err != nil {
			return nil, err
		}
		if err := l1.Randomize(neural.Xavier, rng); err != nil {
			return nil, err
		}
		return neural.New(l0, l1), nil
	}

	w := *workers
	opts := []evolve.Option{
		evolve.WithPopulation(*population),
		evolve.WithElite(*elite),
		evolve.WithMatchCap(*matchCap),
		evolve.WithCheckpointEvery(*checkpointEvery),
		evolve.WithModelsDir(*modelsDir),
		evolve.WithTemperature(*temperature),
	}
	if w > 0 {
		opts = append(opts, evolve.WithWorkers(w))
	}
	e := evolve.New(factory, opts...)

	logw.Infof(ctx, "evolvechess %v starting: generations [%v, %v], population=%v, elite=%v, matchCap=%v", version, *start, *end, *population, *elite, *matchCap)

	t0 := time.Now()
	if err := e.Run(ctx, *start, *end, rand.New(rand.NewSource(*seed))); err != nil {
		logw.Exitf(ctx, "run failed: %v", err)
	}
	logw.Infof(ctx, "evolvechess finished in %v", time.Since(t0))
}
