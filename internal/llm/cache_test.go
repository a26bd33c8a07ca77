package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionCache(t *testing.T) {
	cache := newSuggestionCache(time.Hour)
	defer cache.Close()

	_, ok := cache.get("missing")
	assert.False(t, ok)

	cache.set("k", "cook at home")
	got, ok := cache.get("k")
	assert.True(t, ok)
	assert.Equal(t, "cook at home", got)
	assert.Equal(t, 1, cache.size())
}

func TestSuggestionCacheExpiry(t *testing.T) {
	cache := newSuggestionCache(time.Millisecond)
	defer cache.Close()

	cache.set("k", "v")
	time.Sleep(5 * time.Millisecond)

	_, ok := cache.get("k")
	assert.False(t, ok)
}

func TestSuggestionCacheCloseTwice(t *testing.T) {
	cache := newSuggestionCache(0)
	assert.Equal(t, 15*time.Minute, cache.ttl)
	cache.Close()
	assert.NotPanics(t, cache.Close)
}
