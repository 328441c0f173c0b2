package examplegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExampleCache(t *testing.T) {
	cache := NewExampleCache()
	calls := 0
	compute := func() (string, bool) {
		calls++
		return "markup", true
	}

	markup, found, hit := cache.Get("//p", "v", TargetNative, compute)
	assert.Equal(t, "markup", markup)
	assert.True(t, found)
	assert.False(t, hit)

	markup, found, hit = cache.Get("//p", "v", TargetNative, compute)
	assert.Equal(t, "markup", markup)
	assert.True(t, found)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)

	_, _, hit = cache.Get("//p", "v", TargetEnglish, compute)
	assert.False(t, hit)
	_, _, hit = cache.Get("//p", "w", TargetNative, compute)
	assert.False(t, hit)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, cache.Len())
}

func TestExampleCacheKeepsAbsentResults(t *testing.T) {
	cache := NewExampleCache()
	calls := 0
	absent := func() (string, bool) {
		calls++
		return "", false
	}

	_, found, _ := cache.Get("//p", "v", TargetNative, absent)
	assert.False(t, found)
	_, found, hit := cache.Get("//p", "v", TargetNative, absent)
	assert.False(t, found)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)
}

func TestExampleCacheClearAndDisable(t *testing.T) {
	cache := NewExampleCache()
	calls := 0
	compute := func() (string, bool) {
		calls++
		return "markup", true
	}

	cache.Get("//p", "v", TargetNative, compute)
	cache.Clear()
	assert.Equal(t, 0, cache.Len())
	_, _, hit := cache.Get("//p", "v", TargetNative, compute)
	assert.False(t, hit)

	cache.Disable()
	assert.True(t, cache.Disabled())
	assert.Equal(t, 0, cache.Len())

	for i := 0; i < 3; i++ {
		_, _, hit = cache.Get("//p", "v", TargetNative, compute)
		assert.False(t, hit)
	}
	assert.Equal(t, 5, calls)
	assert.Equal(t, 0, cache.Len())
}
