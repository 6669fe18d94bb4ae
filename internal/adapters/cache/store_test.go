package cache_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundler/internal/adapters/cache"
	"go.trai.ch/bundler/internal/core/domain"
)

func artifact(content string) domain.Artifact {
	return domain.Artifact{Content: []byte(content)}
}

func TestStore_SetAndGet(t *testing.T) {
	s := cache.NewStore()

	_, ok := s.TryGet("app")
	assert.False(t, ok)

	s.Set("App", artifact("x"), time.Minute)

	got, ok := s.TryGet("APP")
	require.True(t, ok)
	assert.Equal(t, "x", string(got.Content))

	s.Set("app", artifact("y"), time.Minute)
	got, ok = s.TryGet("app")
	require.True(t, ok)
	assert.Equal(t, "y", string(got.Content))
	assert.Equal(t, 1, s.Len())
}

func TestStore_Expiry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := cache.NewStore()
		s.Set("app", artifact("x"), 100*time.Millisecond)

		time.Sleep(99 * time.Millisecond)
		_, ok := s.TryGet("app")
		assert.True(t, ok)

		time.Sleep(time.Millisecond)
		_, ok = s.TryGet("app")
		assert.False(t, ok, "entry is expired once now reaches ExpiresAt")
		assert.Equal(t, 0, s.Len(), "expired entry is evicted on read")
	})
}

func TestStore_Invalidate(t *testing.T) {
	s := cache.NewStore()
	s.Set("app", artifact("x"), time.Minute)

	s.Invalidate("APP")
	_, ok := s.TryGet("app")
	assert.False(t, ok)

	// Invalidating an absent key is a no-op apart from the epoch.
	s.Invalidate("missing")
	assert.Equal(t, uint64(1), s.Epoch("missing"))
}

func TestStore_SetAt(t *testing.T) {
	s := cache.NewStore()

	epoch := s.Epoch("app")
	s.Invalidate("app")

	stored := s.SetAt("app", artifact("stale"), time.Minute, epoch)
	assert.False(t, stored)
	_, ok := s.TryGet("app")
	assert.False(t, ok)

	epoch = s.Epoch("app")
	stored = s.SetAt("app", artifact("fresh"), time.Minute, epoch)
	assert.True(t, stored)
	got, ok := s.TryGet("app")
	require.True(t, ok)
	assert.Equal(t, "fresh", string(got.Content))
}

func TestStore_Clear(t *testing.T) {
	s := cache.NewStore()
	s.Set("a", artifact("1"), time.Minute)
	s.Set("b", artifact("2"), time.Minute)
	epoch := s.Epoch("a")

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.NotEqual(t, epoch, s.Epoch("a"))
}

func TestStore_Concurrent(t *testing.T) {
	s := cache.NewStore()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := []string{"a", "b", "c"}[i%3]
			s.Set(key, artifact("v"), time.Minute)
			s.TryGet(key)
			if i%7 == 0 {
				s.Invalidate(key)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 3)
}
