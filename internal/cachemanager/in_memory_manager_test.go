package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetAndGet(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("docs", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "guid-1", "*hello*", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "guid-1")
	require.True(t, ok)
	require.Equal(t, "*hello*", got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("docs", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "absent")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_StructValues(t *testing.T) {
	type entry struct {
		Title  string
		Markup string
	}
	cache := NewInMemoryCacheManager[string, entry]("docs", DefaultExpiration, DefaultCleanupInterval)
	want := entry{Title: "Notes", Markup: "_italic_"}
	cache.Set(context.Background(), "guid-2", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "guid-2")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_Expiration(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("docs", 10*time.Millisecond, time.Minute)
	cache.Set(context.Background(), "k", 1, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_Delete(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("docs", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", 1, DefaultExpiration)
	cache.Set(context.Background(), "b", 2, DefaultExpiration)

	require.NoError(t, cache.Delete(context.Background(), "a", "b"))

	_, okA := cache.Get(context.Background(), "a")
	_, okB := cache.Get(context.Background(), "b")
	require.False(t, okA)
	require.False(t, okB)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, int]("docs", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", 1, DefaultExpiration)

	require.NoError(t, cache.Flush(context.Background()))

	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)
}
