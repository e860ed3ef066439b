// Package registry holds named string sets for the HTTP API. Each set is guarded by
// its own mutex; the registry map by another.
package registry

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
	"git.home.luguber.info/inful/chainset/internal/metrics"
)

// StringSet is the set type served by the registry.
type StringSet = hashset.Set[hashset.String]

type entry struct {
	mu      sync.Mutex
	set     *StringSet
	created time.Time
}

// Info summarizes one registered set.
type Info struct {
	ID         string    `json:"id"`
	Size       int       `json:"size"`
	Buckets    int       `json:"buckets"`
	LoadFactor float64   `json:"load_factor"`
	Limit      float64   `json:"load_factor_limit"`
	CreatedAt  time.Time `json:"created_at"`
}

// Registry maps ids to sets.
type Registry struct {
	mu       sync.RWMutex
	sets     map[string]*entry
	base     []hashset.Option
	recorder metrics.Recorder
	now      func() time.Time
}

// New creates an empty registry. Every created set starts from base options and
// reports to recorder (nil means no metrics).
func New(recorder metrics.Recorder, base ...hashset.Option) *Registry {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Registry{
		sets:     make(map[string]*entry),
		base:     base,
		recorder: recorder,
		now:      time.Now,
	}
}

// Create registers a new empty set and returns its id. extra options are applied
// after the registry's base options.
func (r *Registry) Create(extra ...hashset.Option) (string, error) {
	id := uuid.NewString()
	opts := slices.Concat(r.base, extra, []hashset.Option{
		hashset.WithName(id),
		hashset.WithRecorder(r.recorder),
	})
	set, err := hashset.New[hashset.String](opts...)
	if err != nil {
		return "", errors.FromSet(err)
	}

	r.mu.Lock()
	r.sets[id] = &entry{set: set, created: r.now()}
	r.mu.Unlock()
	return id, nil
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.sets[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.SetNotFound(id)
	}
	return e, nil
}

// With runs fn with exclusive access to the set registered as id.
func (r *Registry) With(id string, fn func(*StringSet) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.set)
}

// Info returns a summary of the set registered as id.
func (r *Registry) Info(id string) (Info, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Info{}, err
	}
	return e.info(id), nil
}

// Inspect returns the summary and the Describe rendering of the set registered
// as id, both taken under one lock.
func (r *Registry) Inspect(id string) (Info, string, error) {
	return r.Update(id, nil)
}

// Update runs fn (if non-nil) with exclusive access to the set registered as id
// and, unless fn fails, returns the resulting summary and Describe rendering
// without releasing the lock in between.
func (r *Registry) Update(id string, fn func(*StringSet) error) (Info, string, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Info{}, "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn != nil {
		if err := fn(e.set); err != nil {
			return Info{}, "", err
		}
	}
	return e.infoLocked(id), e.set.Describe(), nil
}

func (e *entry) info(id string) Info {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.infoLocked(id)
}

// infoLocked requires e.mu.
func (e *entry) infoLocked(id string) Info {
	return Info{
		ID:         id,
		Size:       e.set.Len(),
		Buckets:    e.set.Buckets(),
		LoadFactor: e.set.LoadFactor(),
		Limit:      e.set.LoadFactorLimit(),
		CreatedAt:  e.created,
	}
}

// Delete drops the set registered as id.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.sets[id]
	delete(r.sets, id)
	r.mu.Unlock()
	if !ok {
		return errors.SetNotFound(id)
	}
	r.recorder.Forget(id)
	return nil
}

// List returns summaries of every set ordered by creation time, then id.
func (r *Registry) List() []Info {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sets))
	entries := make([]*entry, 0, len(r.sets))
	for id, e := range r.sets {
		ids = append(ids, id)
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	out := make([]Info, len(entries))
	for i, e := range entries {
		out[i] = e.info(ids[i])
	}
	slices.SortFunc(out, func(a, b Info) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Snapshot aggregates the registry for periodic reporting.
type Snapshot struct {
	Sets          int
	Elements      int
	Buckets       int
	MaxLoadFactor float64
}

// Snapshot summarizes every registered set.
func (r *Registry) Snapshot() Snapshot {
	var s Snapshot
	for _, info := range r.List() {
		s.Sets++
		s.Elements += info.Size
		s.Buckets += info.Buckets
		s.MaxLoadFactor = max(s.MaxLoadFactor, info.LoadFactor)
	}
	return s
}
