package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{name: "zero", input: 0, expected: "0 Mo"},
		{name: "one megabyte", input: 1024 * 1024, expected: "1.00 Mo"},
		{name: "fraction", input: 1572864, expected: "1.50 Mo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestIsImageMediaType(t *testing.T) {
	assert.True(t, IsImageMediaType("image/jpeg"))
	assert.True(t, IsImageMediaType("IMAGE/PNG"))
	assert.False(t, IsImageMediaType("text/plain; charset=utf-8"))
	assert.False(t, IsImageMediaType(""))
}

func TestIntPtr(t *testing.T) {
	assert.Nil(t, IntPtr(0))
	assert.Nil(t, IntPtr(-3))
	if p := IntPtr(1000); assert.NotNil(t, p) {
		assert.Equal(t, 1000, *p)
	}
}

func TestRemoveEmptyStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, RemoveEmptyStrings([]string{"", "a", "", "b"}))
	assert.Equal(t, []string{}, RemoveEmptyStrings(nil))
}
