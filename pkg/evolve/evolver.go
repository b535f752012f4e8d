package evolve

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/herohde/morlock/pkg/neural"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// NetworkFactory builds a fresh, randomly-initialized network of the
// architecture the caller wants evolved. The Evolver has no opinion on
// layer shapes; that's a property of the problem being solved, so it's
// supplied by cmd/evolvechess rather than hardcoded here.
type NetworkFactory func(rng *rand.Rand) (*neural.Network, error)

// Evolver drives the generation loop: build a population, play every
// scheduled match, keep the elites, breed the rest, checkpoint to disk,
// repeat.
type Evolver struct {
	iox.AsyncCloser

	Population      int
	Elite           int
	MatchCap        int
	CheckpointEvery int
	ModelsDir       string
	Workers         int
	Temperature     float64

	NewNetwork NetworkFactory
}

// Option configures an Evolver constructed with New.
type Option func(*Evolver)

func WithPopulation(n int) Option      { return func(e *Evolver) { e.Population = n } }
func WithElite(n int) Option           { return func(e *Evolver) { e.Elite = n } }
func WithMatchCap(n int) Option        { return func(e *Evolver) { e.MatchCap = n } }
func WithCheckpointEvery(n int) Option { return func(e *Evolver) { e.CheckpointEvery = n } }
func WithModelsDir(dir string) Option  { return func(e *Evolver) { e.ModelsDir = dir } }
func WithWorkers(n int) Option         { return func(e *Evolver) { e.Workers = n } }
func WithTemperature(t float64) Option { return func(e *Evolver) { e.Temperature = t } }

// New constructs an Evolver with the population defaults used by the
// reference runs, then applies opts on top.
func New(factory NetworkFactory, opts ...Option) *Evolver {
	e := &Evolver{
		AsyncCloser:     iox.NewAsyncCloser(),
		Population:      256,
		Elite:           8,
		MatchCap:        16,
		CheckpointEvery: 5,
		ModelsDir:       "models",
		Workers:         runtime.NumCPU(),
		Temperature:     1.0,
		NewNetwork:      factory,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stop requests the run loop exit before the next generation begins.
// Safe to call from another goroutine; idempotent.
func (e *Evolver) Stop() {
	e.Close()
}

type candidate struct {
	net   *neural.Network
	score float64
}

type match struct {
	i, j int
}

// Run executes generations [start, end] inclusive. If start is 0, a
// fresh random population is built with no elite ancestry (spec: "begin
// with no elite"); otherwise the e.Elite networks checkpointed at
// generation start are loaded and bred into that generation's starting
// population. rng drives population init, every generation's
// matchmaking shuffle and breeding. Each worker's game-play RNG is
// seeded from the generation number and worker index, not from rng
// (see runMatches); which worker plays which match depends on
// goroutine scheduling, so match results repeat exactly only with a
// single worker.
//
// Run stops early, returning ctx.Err() or nil (if Stop was called),
// when ctx is canceled or Stop is called between generations. Errors
// from generation construction or checkpoint I/O abort the run; a
// single failed match does not — it is logged and scored as a no-op.
func (e *Evolver) Run(ctx context.Context, start, end int, rng *rand.Rand) error {
	defer e.Close()

	pop, err := e.loadOrInit(start, rng)
	if err != nil {
		return fmt.Errorf("evolve: load generation %v: %w", start, err)
	}

	for gen := start; gen <= end; gen++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.Closed():
			return nil
		default:
		}

		cands := make([]*candidate, len(pop))
		for i, n := range pop {
			cands[i] = &candidate{net: n}
		}

		matches := makeMatches(len(cands), e.MatchCap, rng)
		e.runMatches(ctx, cands, matches, gen)

		elites := getElites(cands, e.Elite)
		best := bestScore(cands)
		logw.Infof(ctx, "generation %v: played %v matches, best score %v", gen, len(matches), best)

		if (gen+1)%e.CheckpointEvery == 0 || gen == end {
			if err := e.checkpoint(gen, elites); err != nil {
				return fmt.Errorf("evolve: checkpoint generation %v: %w", gen, err)
			}
		}

		if gen == end {
			break
		}

		next, err := e.makeGeneration(elites, rng)
		if err != nil {
			return fmt.Errorf("evolve: breed generation %v: %w", gen+1, err)
		}
		pop = next
	}
	return nil
}

func (e *Evolver) loadOrInit(start int, rng *rand.Rand) ([]*neural.Network, error) {
	if start == 0 {
		return e.initPopulation(rng)
	}

	elites, err := e.loadCheckpoint(start)
	if err != nil {
		return nil, fmt.Errorf("resume from generation %v: %w", start, err)
	}
	return e.makeGeneration(elites, rng)
}

func (e *Evolver) initPopulation(rng *rand.Rand) ([]*neural.Network, error) {
	pop := make([]*neural.Network, e.Population)
	for i := range pop {
		n, err := e.NewNetwork(rng)
		if err != nil {
			return nil, fmt.Errorf("evolve: init network %v: %w", i, err)
		}
		pop[i] = n
	}
	return pop, nil
}

// loadCheckpoint loads the e.Elite networks checkpoint wrote for gen,
// not a full population: checkpoint only ever persists the elites.
func (e *Evolver) loadCheckpoint(gen int) ([]*neural.Network, error) {
	elites := make([]*neural.Network, e.Elite)
	for i := range elites {
		n, err := neural.Load(e.checkpointPath(gen, i))
		if err != nil {
			return nil, fmt.Errorf("evolve: load elite %v: %w", i, err)
		}
		elites[i] = n
	}
	return elites, nil
}

func (e *Evolver) checkpoint(gen int, elites []*neural.Network) error {
	for i, n := range elites {
		if err := neural.Save(n, e.checkpointPath(gen, i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Evolver) checkpointPath(gen, index int) string {
	return filepath.Join(e.ModelsDir, fmt.Sprintf("gen-%v-net-%v.model", gen, index))
}

// makeMatches enumerates every ordered pair (i, j), i != j, shuffles
// them and greedily keeps pairs while both participants are still
// under cap matches — a round-robin cap, not a round-robin guarantee.
func makeMatches(n, cap int, rng *rand.Rand) []match {
	all := make([]match, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				all = append(all, match{i, j})
			}
		}
	}
	rng.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })

	counts := make([]int, n)
	var out []match
	for _, m := range all {
		if counts[m.i] >= cap || counts[m.j] >= cap {
			continue
		}
		counts[m.i]++
		counts[m.j]++
		out = append(out, m)
	}
	return out
}

// runMatches plays every scheduled match concurrently across e.Workers
// goroutines, each with its own RNG seeded deterministically from gen
// and the worker index — per-thread independent RNGs, never shared. A
// match that errors contributes no score adjustment and is logged, not
// propagated: one bad position must not abort an entire generation.
func (e *Evolver) runMatches(ctx context.Context, cands []*candidate, matches []match, gen int) {
	jobs := make(chan match)
	var mu sync.Mutex

	var wg sync.WaitGroup
	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(gen)*1_000_003 + int64(worker)))
			for m := range jobs {
				res, err := Play(cands[m.i].net, cands[m.j].net, rng, rng, e.Temperature)
				if err != nil {
					logw.Errorf(ctx, "generation %v: match (%v,%v) failed, skipping: %v", gen, m.i, m.j, err)
					continue
				}
				mu.Lock()
				cands[m.i].score += res.ScoreWhite
				cands[m.j].score += res.ScoreBlack
				mu.Unlock()
			}
		}(w)
	}
	for _, m := range matches {
		jobs <- m
	}
	close(jobs)
	wg.Wait()
}

func bestScore(cands []*candidate) float64 {
	best := cands[0].score
	for _, c := range cands[1:] {
		if c.score > best {
			best = c.score
		}
	}
	return best
}

// getElites returns the top k candidates by score, ties broken by
// original population order for stability across runs.
func getElites(cands []*candidate, k int) []*neural.Network {
	sorted := make([]*candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score > sorted[j].score })

	if k > len(sorted) {
		k = len(sorted)
	}
	out := make([]*neural.Network, k)
	for i := 0; i < k; i++ {
		out[i] = sorted[i].net
	}
	return out
}

// makeGeneration fills a new population of Population networks: the
// elites survive unchanged, the rest are bred from random distinct
// pairs drawn from the elites.
func (e *Evolver) makeGeneration(elites []*neural.Network, rng *rand.Rand) ([]*neural.Network, error) {
	next := make([]*neural.Network, 0, e.Population)
	next = append(next, elites...)

	for len(next) < e.Population {
		a := elites[rng.Intn(len(elites))]
		b := elites[rng.Intn(len(elites))]
		for b == a && len(elites) > 1 {
			b = elites[rng.Intn(len(elites))]
		}
		child, err := Offspring(a, b, rng)
		if err != nil {
			return nil, err
		}
		next = append(next, child)
	}
	return next, nil
}
