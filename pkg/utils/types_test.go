package utils

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageAssetDimensions(t *testing.T) {
	t.Run("unknown until set", func(t *testing.T) {
		asset := NewImageAsset("a.jpg", 10, 0, "image/jpeg", nil)

		_, _, ok := asset.Dimensions()

		assert.False(t, ok)
		assert.NotEmpty(t, asset.ID)
	})

	t.Run("set exactly once", func(t *testing.T) {
		asset := NewImageAsset("a.jpg", 10, 0, "image/jpeg", nil)

		assert.True(t, asset.SetDimensions(800, 600))
		assert.False(t, asset.SetDimensions(10, 10))

		w, h, ok := asset.Dimensions()
		assert.True(t, ok)
		assert.Equal(t, 800, w)
		assert.Equal(t, 600, h)
	})

	t.Run("failure is permanent", func(t *testing.T) {
		asset := NewImageAsset("a.jpg", 10, 0, "image/jpeg", nil)
		asset.MarkUnreadable(errors.New("boom"))

		assert.False(t, asset.SetDimensions(800, 600))
		_, _, ok := asset.Dimensions()
		assert.False(t, ok)
		assert.EqualError(t, asset.ProbeError(), "boom")
	})

	t.Run("concurrent writers converge", func(t *testing.T) {
		asset := NewImageAsset("a.jpg", 10, 0, "image/jpeg", nil)
		var wg sync.WaitGroup
		wins := make(chan bool, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				wins <- asset.SetDimensions(640, 480)
			}()
		}
		wg.Wait()
		close(wins)

		count := 0
		for won := range wins {
			if won {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestBytesHandle(t *testing.T) {
	a := NewBytesHandle("same.jpg", []byte("abc"))
	b := NewBytesHandle("same.jpg", []byte("abc"))

	assert.NotEqual(t, a.URI(), b.URI())

	rc, err := a.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestTagSet(t *testing.T) {
	tests := []struct {
		name     string
		actions  func(s *TTagSet)
		expected []string
	}{
		{
			name:     "deduplicates and keeps first insertion order",
			actions:  func(s *TTagSet) { s.Add("studio"); s.Add("mariage"); s.Add("studio") },
			expected: []string{"studio", "mariage"},
		},
		{
			name:     "case-sensitive",
			actions:  func(s *TTagSet) { s.Add("Studio"); s.Add("studio") },
			expected: []string{"Studio", "studio"},
		},
		{
			name:     "blank tags ignored and free tags trimmed",
			actions:  func(s *TTagSet) { s.Add("   "); s.Add("  golden-hour ") },
			expected: []string{"golden-hour"},
		},
		{
			name:     "toggle removes then re-adds at the end",
			actions:  func(s *TTagSet) { s.Add("a"); s.Add("b"); s.Toggle("a"); s.Toggle("a") },
			expected: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			set := NewTagSet()

			// Act
			tt.actions(set)

			// Assert
			assert.Equal(t, tt.expected, set.Values())
		})
	}
}

func TestTagSetValuesIsACopy(t *testing.T) {
	set := NewTagSet("a", "b")
	values := set.Values()
	values[0] = "z"

	assert.Equal(t, []string{"a", "b"}, set.Values())
}
