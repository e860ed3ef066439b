package hashset

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/chainset/internal/logfields"
	"git.home.luguber.info/inful/chainset/internal/metrics"
)

type node[T any] struct {
	value T
	hash  int
	next  *node[T]
}

// Set is a separate-chaining hash set of distinct elements.
type Set[T Element[T]] struct {
	buckets       []*node[T]
	count         int
	limit         float64
	preserveOrder bool
	name          string
	recorder      metrics.Recorder
	logger        *slog.Logger
}

// New creates an empty set. Without options it has DefaultBucketCount buckets and
// grows past DefaultLoadFactorLimit.
func New[T Element[T]](opts ...Option) (*Set[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	s := &Set[T]{
		buckets:       make([]*node[T], o.bucketCount),
		limit:         o.loadFactorLimit,
		preserveOrder: o.preserveOrder,
		name:          o.name,
		recorder:      o.recorder,
		logger:        o.logger,
	}
	s.recorder.SetBuckets(s.name, len(s.buckets))
	s.recorder.SetElements(s.name, 0)
	return s, nil
}

// NewDefault creates an empty set with 10 buckets and a 0.75 load factor limit.
func NewDefault[T Element[T]]() *Set[T] {
	s, _ := New[T]()
	return s
}

// bucketIndex clears the sign bit of hash and reduces it modulo n.
func bucketIndex(hash, n int) int {
	return (hash & 0x7FFFFFFF) % n
}

// hashOf validates v and returns its hash. It never mutates the set, so a failure
// here leaves every invariant intact.
func hashOf[T Element[T]](v T) (h int, err error) {
	if isNil(v) {
		return 0, fmt.Errorf("%w: nil value", ErrInvalidElement)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: hash failed: %v", ErrInvalidElement, r)
		}
	}()
	return v.Hash(), nil
}

// IsEmpty reports whether the set holds no elements.
func (s *Set[T]) IsEmpty() bool { return s.count == 0 }

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int { return s.count }

// Buckets returns the current bucket array length.
func (s *Set[T]) Buckets() int { return len(s.buckets) }

// LoadFactorLimit returns the configured growth threshold.
func (s *Set[T]) LoadFactorLimit() float64 { return s.limit }

// Name returns the label given with WithName.
func (s *Set[T]) Name() string { return s.name }

// LoadFactor returns elements divided by buckets.
func (s *Set[T]) LoadFactor() float64 {
	return float64(s.count) / float64(len(s.buckets))
}

// BucketOf returns the index of the bucket v belongs to under the current length.
func (s *Set[T]) BucketOf(v T) (int, error) {
	h, err := hashOf(v)
	if err != nil {
		return 0, err
	}
	return bucketIndex(h, len(s.buckets)), nil
}

func (s *Set[T]) find(idx int, v T) *node[T] {
	for n := s.buckets[idx]; n != nil; n = n.next {
		if n.value.Equal(v) {
			return n
		}
	}
	return nil
}

// Contains reports whether an element equal to v is in the set. A nil v is
// rejected even when the set is empty; an empty set answers without hashing.
func (s *Set[T]) Contains(v T) (bool, error) {
	if isNil(v) {
		s.recorder.IncOperation(s.name, metrics.OpContains, metrics.ResultInvalid)
		return false, fmt.Errorf("%w: nil value", ErrInvalidElement)
	}
	if s.IsEmpty() {
		s.recorder.IncOperation(s.name, metrics.OpContains, metrics.ResultMiss)
		return false, nil
	}
	h, err := hashOf(v)
	if err != nil {
		s.recorder.IncOperation(s.name, metrics.OpContains, metrics.ResultInvalid)
		return false, err
	}
	if s.find(bucketIndex(h, len(s.buckets)), v) == nil {
		s.recorder.IncOperation(s.name, metrics.OpContains, metrics.ResultMiss)
		return false, nil
	}
	s.recorder.IncOperation(s.name, metrics.OpContains, metrics.ResultHit)
	return true, nil
}

// Add inserts v at the head of its bucket's chain unless an equal element is
// already present. It reports whether v was inserted. When the load factor then
// exceeds the limit, the bucket array is doubled until it no longer does.
func (s *Set[T]) Add(v T) (bool, error) {
	h, err := hashOf(v)
	if err != nil {
		s.recorder.IncOperation(s.name, metrics.OpAdd, metrics.ResultInvalid)
		return false, err
	}
	idx := bucketIndex(h, len(s.buckets))
	if s.find(idx, v) != nil {
		s.recorder.IncOperation(s.name, metrics.OpAdd, metrics.ResultDuplicate)
		return false, nil
	}
	s.buckets[idx] = &node[T]{value: v, hash: h, next: s.buckets[idx]}
	s.count++
	for s.LoadFactor() > s.limit {
		s.rehash(len(s.buckets) * 2)
	}
	s.recorder.IncOperation(s.name, metrics.OpAdd, metrics.ResultAdded)
	s.recorder.SetElements(s.name, s.count)
	return true, nil
}

// Remove unlinks the element equal to v and reports whether one was found.
func (s *Set[T]) Remove(v T) (bool, error) {
	h, err := hashOf(v)
	if err != nil {
		s.recorder.IncOperation(s.name, metrics.OpRemove, metrics.ResultInvalid)
		return false, err
	}
	idx := bucketIndex(h, len(s.buckets))
	var prev *node[T]
	for n := s.buckets[idx]; n != nil; n = n.next {
		if !n.value.Equal(v) {
			prev = n
			continue
		}
		if prev == nil {
			s.buckets[idx] = n.next
		} else {
			prev.next = n.next
		}
		s.count--
		s.recorder.IncOperation(s.name, metrics.OpRemove, metrics.ResultRemoved)
		s.recorder.SetElements(s.name, s.count)
		return true, nil
	}
	s.recorder.IncOperation(s.name, metrics.OpRemove, metrics.ResultAbsent)
	return false, nil
}

// Rehash rebuilds the bucket array with n buckets. The array only grows: n must
// exceed the current length.
func (s *Set[T]) Rehash(n int) error {
	if n <= len(s.buckets) {
		s.recorder.IncOperation(s.name, metrics.OpRehash, metrics.ResultInvalid)
		return fmt.Errorf("%w: rehash target %d does not exceed current bucket count %d", ErrInvalidArgument, n, len(s.buckets))
	}
	s.rehash(n)
	s.recorder.IncOperation(s.name, metrics.OpRehash, metrics.ResultGrown)
	return nil
}

// rehash moves every element into a fresh array of n buckets. Old buckets are
// visited in index order and chains head to tail. Without preserveOrder each
// element is head-inserted, reversing relative order within a new bucket; with it
// elements are appended at the tail. No growth check runs during the pass.
func (s *Set[T]) rehash(n int) {
	start := time.Now()
	old := s.buckets
	s.buckets = make([]*node[T], n)
	s.count = 0

	var tails []*node[T]
	if s.preserveOrder {
		tails = make([]*node[T], n)
	}
	for _, head := range old {
		for cur := head; cur != nil; cur = cur.next {
			idx := bucketIndex(cur.hash, n)
			moved := &node[T]{value: cur.value, hash: cur.hash}
			switch {
			case tails == nil:
				moved.next = s.buckets[idx]
				s.buckets[idx] = moved
			case tails[idx] == nil:
				s.buckets[idx] = moved
				tails[idx] = moved
			default:
				tails[idx].next = moved
				tails[idx] = moved
			}
			s.count++
		}
	}

	elapsed := time.Since(start)
	s.recorder.ObserveRehash(s.name, len(old), n, elapsed)
	s.recorder.SetBuckets(s.name, n)
	s.logger.Debug("Rebuilt bucket array",
		logfields.Set(s.name),
		logfields.FromBuckets(len(old)),
		logfields.Buckets(n),
		logfields.Elements(s.count),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
}

// All yields every element in bucket order, each chain head to tail.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, head := range s.buckets {
			for n := head; n != nil; n = n.next {
				if !yield(n.value) {
					return
				}
			}
		}
	}
}

// Chains returns a copy of every bucket's chain, head to tail, indexed by bucket.
// Empty buckets are nil.
func (s *Set[T]) Chains() [][]T {
	out := make([][]T, len(s.buckets))
	for i, head := range s.buckets {
		for n := head; n != nil; n = n.next {
			out[i] = append(out[i], n.value)
		}
	}
	return out
}
