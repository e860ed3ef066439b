package hashset

import (
	"fmt"
	"log/slog"
	"math"

	"git.home.luguber.info/inful/chainset/internal/metrics"
)

const (
	// DefaultBucketCount is the bucket array length used when none is configured.
	DefaultBucketCount = 10
	// DefaultLoadFactorLimit is the growth threshold used when none is configured.
	DefaultLoadFactorLimit = 0.75
)

type options struct {
	bucketCount     int
	loadFactorLimit float64
	preserveOrder   bool
	name            string
	recorder        metrics.Recorder
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{
		bucketCount:     DefaultBucketCount,
		loadFactorLimit: DefaultLoadFactorLimit,
		recorder:        metrics.NoopRecorder{},
		logger:          slog.New(slog.DiscardHandler),
	}
}

func (o options) validate() error {
	if o.bucketCount <= 0 {
		return fmt.Errorf("%w: bucket count must be positive, got %d", ErrInvalidConfig, o.bucketCount)
	}
	if math.IsNaN(o.loadFactorLimit) || math.IsInf(o.loadFactorLimit, 0) || o.loadFactorLimit <= 0 {
		return fmt.Errorf("%w: load factor limit must be a positive number, got %v", ErrInvalidConfig, o.loadFactorLimit)
	}
	return nil
}

// Option configures a Set at construction.
type Option func(*options)

// WithBucketCount sets the initial bucket array length.
func WithBucketCount(n int) Option {
	return func(o *options) { o.bucketCount = n }
}

// WithLoadFactorLimit sets the elements-per-bucket ratio above which Add grows the array.
func WithLoadFactorLimit(f float64) Option {
	return func(o *options) { o.loadFactorLimit = f }
}

// WithOrderPreservingRehash keeps each chain's relative order when the bucket
// array is rebuilt, instead of the default head-insertion reversal.
func WithOrderPreservingRehash(enabled bool) Option {
	return func(o *options) { o.preserveOrder = enabled }
}

// WithName labels the set in metrics and logs.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithRecorder reports operations and rehashes to r. A nil r keeps the no-op recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithLogger enables debug logging of rehashes. A nil logger keeps logging disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
