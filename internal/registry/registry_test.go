package registry

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/chainset/internal/errors"
	"git.home.luguber.info/inful/chainset/internal/hashset"
)

func TestCreateAndUse(t *testing.T) {
	r := New(nil, hashset.WithBucketCount(4))
	id, err := r.Create()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "ids are uuids")

	err = r.With(id, func(s *StringSet) error {
		added, err := s.Add("a")
		require.NoError(t, err)
		require.True(t, added)
		return nil
	})
	require.NoError(t, err)

	info, err := r.Info(id)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, 1, info.Size)
	assert.Equal(t, 4, info.Buckets)
	assert.Equal(t, 0.25, info.LoadFactor)
	assert.Equal(t, hashset.DefaultLoadFactorLimit, info.Limit)
}

func TestCreateWithOverrides(t *testing.T) {
	r := New(nil)
	id, err := r.Create(hashset.WithBucketCount(32))
	require.NoError(t, err)
	info, err := r.Info(id)
	require.NoError(t, err)
	assert.Equal(t, 32, info.Buckets)

	_, err = r.Create(hashset.WithLoadFactorLimit(-1))
	require.ErrorIs(t, err, hashset.ErrInvalidConfig)
	assert.Len(t, r.List(), 1)
}

func TestUnknownID(t *testing.T) {
	r := New(nil)
	err := r.With("nope", func(*StringSet) error { return nil })
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
	_, err = r.Info("nope")
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
	assert.True(t, errors.IsCategory(r.Delete("nope"), errors.CategoryNotFound))
}

func TestDeleteAndList(t *testing.T) {
	r := New(nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	r.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, err := r.Create()
	require.NoError(t, err)
	second, err := r.Create()
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, second, list[1].ID)

	require.NoError(t, r.Delete(first))
	list = r.List()
	require.Len(t, list, 1)
	assert.Equal(t, second, list[0].ID)
}

func TestSnapshot(t *testing.T) {
	r := New(nil, hashset.WithBucketCount(2), hashset.WithLoadFactorLimit(10))
	a, err := r.Create()
	require.NoError(t, err)
	b, err := r.Create()
	require.NoError(t, err)

	require.NoError(t, r.With(a, func(s *StringSet) error {
		_, err := s.Add("x")
		return err
	}))
	require.NoError(t, r.With(b, func(s *StringSet) error {
		for _, v := range []hashset.String{"x", "y", "z"} {
			if _, err := s.Add(v); err != nil {
				return err
			}
		}
		return nil
	}))

	snap := r.Snapshot()
	assert.Equal(t, Snapshot{Sets: 2, Elements: 4, Buckets: 4, MaxLoadFactor: 1.5}, snap)
}

func TestConcurrentAccessIsSerialized(t *testing.T) {
	r := New(nil)
	id, err := r.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				_ = r.With(id, func(s *StringSet) error {
					_, err := s.Add(hashset.String(fmt.Sprintf("%d-%d", w, i)))
					return err
				})
			}
		}()
	}
	wg.Wait()

	info, err := r.Info(id)
	require.NoError(t, err)
	assert.Equal(t, 1600, info.Size)
	assert.LessOrEqual(t, info.LoadFactor, info.Limit)
}

func TestInspectIsConsistent(t *testing.T) {
	r := New(nil, hashset.WithBucketCount(1))
	id, err := r.Create()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 500 {
			_ = r.With(id, func(s *StringSet) error {
				_, err := s.Add(hashset.String(fmt.Sprintf("e%d", i)))
				return err
			})
		}
	}()

	for {
		info, describe, err := r.Inspect(id)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(describe, fmt.Sprintf("[ %d, %d | ", info.Size, info.Buckets)),
			"info %d/%d disagrees with %.40q", info.Size, info.Buckets, describe)
		select {
		case <-done:
			info, _, err := r.Inspect(id)
			require.NoError(t, err)
			assert.Equal(t, 500, info.Size)
			return
		default:
		}
	}
}

func TestInspectUnknownID(t *testing.T) {
	_, describe, err := New(nil).Inspect("nope")
	assert.True(t, errors.IsCategory(err, errors.CategoryNotFound))
	assert.Empty(t, describe)
}
