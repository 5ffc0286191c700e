package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionCache(t *testing.T) {
	t.Run("Basic operations", func(t *testing.T) {
		cache := NewDimensionCache(3)

		_, ok := cache.Get("file:///a.jpg")
		assert.False(t, ok, "Expected cache miss")

		cache.Put("file:///a.jpg", TDimensions{Width: 4000, Height: 3000})

		dims, ok := cache.Get("file:///a.jpg")
		assert.True(t, ok)
		assert.Equal(t, TDimensions{Width: 4000, Height: 3000}, dims)
	})

	t.Run("LRU eviction", func(t *testing.T) {
		cache := NewDimensionCache(2)
		cache.Put("one", TDimensions{Width: 1, Height: 1})
		cache.Put("two", TDimensions{Width: 2, Height: 2})

		// touch "one" so that "two" becomes the least recently used
		_, _ = cache.Get("one")
		cache.Put("three", TDimensions{Width: 3, Height: 3})

		_, ok := cache.Get("two")
		assert.False(t, ok, "Expected two to be evicted")
		_, ok = cache.Get("one")
		assert.True(t, ok)
		_, ok = cache.Get("three")
		assert.True(t, ok)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("Update existing", func(t *testing.T) {
		cache := NewDimensionCache(2)
		cache.Put("one", TDimensions{Width: 1, Height: 1})
		cache.Put("one", TDimensions{Width: 5, Height: 5})

		dims, _ := cache.Get("one")
		assert.Equal(t, 5, dims.Width)
		assert.Equal(t, 1, cache.Len())
	})
}
