// Package bench drives a hash set through insert, lookup, and remove phases and
// reports latency, throughput, and bucket distribution.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	cerrors "git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
	"git.home.luguber.info/inful/chainset/internal/logfields"
	"git.home.luguber.info/inful/chainset/internal/metrics"
)

// Workload describes one benchmark run.
type Workload struct {
	Name        string
	Elements    int     // inserts and lookups performed
	RemoveRatio float64 // removes performed, as a fraction of Elements
	Seed        uint64
	// KeySpace bounds drawn values to [0, KeySpace). Zero means twice Elements, so
	// some inserts are duplicates and some lookups miss.
	KeySpace int
}

func (w Workload) validate() error {
	if w.Elements <= 0 {
		return cerrors.ValidationFailed("elements", fmt.Sprintf("must be positive, got %d", w.Elements))
	}
	if w.RemoveRatio < 0 || w.RemoveRatio > 1 {
		return cerrors.ValidationFailed("remove_ratio", fmt.Sprintf("must be within [0, 1], got %v", w.RemoveRatio))
	}
	if w.KeySpace < 0 {
		return cerrors.ValidationFailed("key_space", fmt.Sprintf("must not be negative, got %d", w.KeySpace))
	}
	return nil
}

// Phase names one pass over the set.
type Phase string

const (
	PhaseInsert Phase = "insert"
	PhaseLookup Phase = "lookup"
	PhaseRemove Phase = "remove"
)

// Latency summarizes per-operation timings.
type Latency struct {
	Min time.Duration
	Avg time.Duration
	P50 time.Duration
	P95 time.Duration
	P99 time.Duration
	Max time.Duration
}

// PhaseResult captures one phase. Hits counts inserts that added, lookups that
// found, or removes that removed.
type PhaseResult struct {
	Phase     Phase
	Ops       int
	Hits      int
	Duration  time.Duration
	OpsPerSec float64
	Latency   Latency
}

// ChainStats describes how elements spread over buckets.
type ChainStats struct {
	MaxLength    int
	MeanLength   float64 // over non-empty buckets
	EmptyBuckets int
}

// Result captures metrics from a run.
type Result struct {
	Workload     Workload
	Phases       []PhaseResult
	Rehashes     int
	FinalSize    int
	FinalBuckets int
	LoadFactor   float64
	Chains       ChainStats
	Duration     time.Duration
}

type runConfig struct {
	setOpts  []hashset.Option
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures Run.
type Option func(*runConfig)

// WithSetOptions sizes the set under test.
func WithSetOptions(opts ...hashset.Option) Option {
	return func(c *runConfig) { c.setOpts = append(c.setOpts, opts...) }
}

// WithRecorder forwards every set event to r as well as to the run's own counters.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *runConfig) { c.recorder = r }
}

// WithLogger sets the logger for phase progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// rehashCounter counts rebuilds while forwarding to another recorder.
type rehashCounter struct {
	metrics.Recorder
	count int
}

func (c *rehashCounter) ObserveRehash(set string, from, to int, d time.Duration) {
	c.count++
	c.Recorder.ObserveRehash(set, from, to, d)
}

// Run executes w against a new hashset.Set[hashset.Int]. Cancelling ctx stops the
// run between operations; the partial result is returned with ctx's error.
func Run(ctx context.Context, w Workload, opts ...Option) (*Result, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	cfg := runConfig{recorder: metrics.NoopRecorder{}, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.recorder == nil {
		cfg.recorder = metrics.NoopRecorder{}
	}
	counter := &rehashCounter{Recorder: cfg.recorder}
	name := w.Name
	if name == "" {
		name = "bench"
	}
	setOpts := slices.Concat(cfg.setOpts, []hashset.Option{hashset.WithName(name), hashset.WithRecorder(counter)})
	set, err := hashset.New[hashset.Int](setOpts...)
	if err != nil {
		return nil, cerrors.FromSet(err)
	}

	keySpace := w.KeySpace
	if keySpace == 0 {
		keySpace = 2 * w.Elements
	}
	rng := rand.New(rand.NewPCG(w.Seed, w.Seed^0x9E3779B97F4A7C15))
	draw := func() hashset.Int { return hashset.Int(rng.IntN(keySpace)) }

	result := &Result{Workload: w}
	start := time.Now()
	phases := []struct {
		phase Phase
		ops   int
		op    func(hashset.Int) (bool, error)
	}{
		{PhaseInsert, w.Elements, set.Add},
		{PhaseLookup, w.Elements, set.Contains},
		{PhaseRemove, int(float64(w.Elements) * w.RemoveRatio), set.Remove},
	}

	var runErr error
	for _, p := range phases {
		pr, err := runPhase(ctx, p.phase, p.ops, draw, p.op)
		result.Phases = append(result.Phases, pr)
		cfg.logger.Info("Benchmark phase complete",
			logfields.Op(string(p.phase)),
			slog.Int("ops", pr.Ops),
			slog.Int("hits", pr.Hits),
			logfields.DurationMS(float64(pr.Duration.Microseconds())/1000))
		if err != nil {
			runErr = err
			break
		}
	}

	result.Duration = time.Since(start)
	result.Rehashes = counter.count
	result.FinalSize = set.Len()
	result.FinalBuckets = set.Buckets()
	result.LoadFactor = set.LoadFactor()
	result.Chains = chainStats(set.Chains())
	return result, runErr
}

func runPhase(ctx context.Context, phase Phase, ops int, draw func() hashset.Int, op func(hashset.Int) (bool, error)) (PhaseResult, error) {
	pr := PhaseResult{Phase: phase}
	latencies := make([]time.Duration, 0, ops)
	start := time.Now()
	var err error
	for range ops {
		if err = ctx.Err(); err != nil {
			break
		}
		v := draw()
		opStart := time.Now()
		hit, opErr := op(v)
		latencies = append(latencies, time.Since(opStart))
		if opErr != nil {
			err = cerrors.FromSet(opErr)
			break
		}
		pr.Ops++
		if hit {
			pr.Hits++
		}
	}
	pr.Duration = time.Since(start)
	if secs := pr.Duration.Seconds(); secs > 0 {
		pr.OpsPerSec = float64(pr.Ops) / secs
	}
	pr.Latency = summarize(latencies)
	return pr, err
}

// summarize sorts latencies in place and reads off percentiles.
func summarize(latencies []time.Duration) Latency {
	if len(latencies) == 0 {
		return Latency{}
	}
	slices.Sort(latencies)
	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	return Latency{
		Min: latencies[0],
		Avg: sum / time.Duration(len(latencies)),
		P50: percentile(latencies, 0.50),
		P95: percentile(latencies, 0.95),
		P99: percentile(latencies, 0.99),
		Max: latencies[len(latencies)-1],
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := min(int(float64(len(sorted))*p), len(sorted)-1)
	return sorted[idx]
}

func chainStats[T any](chains [][]T) ChainStats {
	var stats ChainStats
	var total, nonEmpty int
	for _, chain := range chains {
		if len(chain) == 0 {
			stats.EmptyBuckets++
			continue
		}
		nonEmpty++
		total += len(chain)
		stats.MaxLength = max(stats.MaxLength, len(chain))
	}
	if nonEmpty > 0 {
		stats.MeanLength = float64(total) / float64(nonEmpty)
	}
	return stats
}
