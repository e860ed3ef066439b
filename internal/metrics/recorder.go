package metrics

import "time"

// Operation names a set operation for counters.
type Operation string

const (
	OpAdd      Operation = "add"
	OpRemove   Operation = "remove"
	OpContains Operation = "contains"
	OpRehash   Operation = "rehash"
)

// ResultLabel enumerates operation outcomes for counters.
type ResultLabel string

const (
	ResultAdded     ResultLabel = "added"
	ResultDuplicate ResultLabel = "duplicate"
	ResultRemoved   ResultLabel = "removed"
	ResultAbsent    ResultLabel = "absent"
	ResultHit       ResultLabel = "hit"
	ResultMiss      ResultLabel = "miss"
	ResultGrown     ResultLabel = "grown"
	ResultInvalid   ResultLabel = "invalid"
)

// Recorder defines observability hooks for set operations and rehashes. Implementations
// may forward to Prometheus or a test double. The set label identifies the instance
// (registry id or a caller-chosen name).
type Recorder interface {
	IncOperation(set string, op Operation, result ResultLabel)
	ObserveRehash(set string, from, to int, d time.Duration)
	SetElements(set string, n int)
	SetBuckets(set string, n int)
	Forget(set string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncOperation(string, Operation, ResultLabel) {}
func (NoopRecorder) ObserveRehash(string, int, int, time.Duration) {}
func (NoopRecorder) SetElements(string, int) {}
func (NoopRecorder) SetBuckets(string, int) {}
func (NoopRecorder) Forget(string) {}
