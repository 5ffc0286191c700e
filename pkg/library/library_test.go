package library

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/************************************************************************************************
** Test helper functions and types
************************************************************************************************/

func newTestLibrary() *Library {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(logger)
}

func assetsNamed(names ...string) []*utils.TImageAsset {
	out := make([]*utils.TImageAsset, 0, len(names))
	for _, name := range names {
		out = append(out, utils.NewImageAsset(name, 100, 0, "image/jpeg", nil))
	}
	return out
}

func names(files []*utils.TImageAsset) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.DisplayName)
	}
	return out
}

/************************************************************************************************
** Tests
************************************************************************************************/

func TestNew(t *testing.T) {
	assert.Nil(t, New(nil))
	assert.NotNil(t, newTestLibrary())
}

func TestCreateOrAppend(t *testing.T) {
	t.Run("empty batch creates nothing", func(t *testing.T) {
		lib := newTestLibrary()

		id, created := lib.CreateOrAppend("", nil)

		assert.Empty(t, id)
		assert.False(t, created)
		assert.Empty(t, lib.ListAll())
	})

	t.Run("no destination creates auto-named shoots", func(t *testing.T) {
		lib := newTestLibrary()

		first, created1 := lib.CreateOrAppend("", assetsNamed("a.jpg"))
		second, created2 := lib.CreateOrAppend("", assetsNamed("b.jpg"))

		assert.True(t, created1)
		assert.True(t, created2)
		assert.NotEqual(t, first, second)
		shoots := lib.ListAll()
		require.Len(t, shoots, 2)
		assert.Equal(t, "Shooting 1", shoots[0].Name)
		assert.Equal(t, "Shooting 2", shoots[1].Name)
	})

	t.Run("existing destination receives files in order", func(t *testing.T) {
		lib := newTestLibrary()
		id, _ := lib.CreateOrAppend("", assetsNamed("a.jpg"))

		got, created := lib.CreateOrAppend(id, assetsNamed("b.jpg", "c.jpg"))

		assert.Equal(t, id, got)
		assert.False(t, created)
		shoot, ok := lib.Get(id)
		require.True(t, ok)
		assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, names(shoot.Files))
	})

	t.Run("unknown destination falls back to a new shoot", func(t *testing.T) {
		lib := newTestLibrary()

		id, created := lib.CreateOrAppend("does-not-exist", assetsNamed("a.jpg"))

		assert.True(t, created)
		assert.NotEqual(t, "does-not-exist", id)
	})
}

func TestRename(t *testing.T) {
	tests := []struct {
		name     string
		newName  string
		expected string
		renamed  bool
	}{
		{name: "plain rename", newName: "Mariage Julie", expected: "Mariage Julie", renamed: true},
		{name: "trimmed", newName: "  Studio  ", expected: "Studio", renamed: true},
		{name: "blank is a no-op", newName: "   ", expected: "Shooting 1", renamed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			lib := newTestLibrary()
			id, _ := lib.CreateOrAppend("", assetsNamed("a.jpg"))

			// Act
			renamed := lib.Rename(id, tt.newName)

			// Assert
			assert.Equal(t, tt.renamed, renamed)
			shoot, _ := lib.Get(id)
			assert.Equal(t, tt.expected, shoot.Name)
		})
	}

	t.Run("unknown shoot", func(t *testing.T) {
		lib := newTestLibrary()
		assert.False(t, lib.Rename("nope", "name"))
	})
}

func TestRemoveFile(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		expected []string
		removed  bool
	}{
		{name: "middle file shifts the rest down", index: 1, expected: []string{"a.jpg", "c.jpg", "d.jpg"}, removed: true},
		{name: "first file", index: 0, expected: []string{"b.jpg", "c.jpg", "d.jpg"}, removed: true},
		{name: "last file", index: 3, expected: []string{"a.jpg", "b.jpg", "c.jpg"}, removed: true},
		{name: "index too large", index: 4, expected: []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, removed: false},
		{name: "negative index", index: -1, expected: []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg"}, removed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			lib := newTestLibrary()
			id, _ := lib.CreateOrAppend("", assetsNamed("a.jpg", "b.jpg", "c.jpg", "d.jpg"))

			// Act
			removed := lib.RemoveFile(id, tt.index)

			// Assert
			assert.Equal(t, tt.removed, removed)
			shoot, _ := lib.Get(id)
			assert.Equal(t, tt.expected, names(shoot.Files))
		})
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	lib := newTestLibrary()
	id, _ := lib.CreateOrAppend("", assetsNamed("a.jpg", "b.jpg"))

	before := lib.ListAll()
	lib.RemoveFile(id, 0)

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, names(before[0].Files))

	before[0].Files[0] = utils.NewImageAsset("intruder.jpg", 1, 0, "image/jpeg", nil)
	shoot, _ := lib.Get(id)
	assert.Equal(t, []string{"b.jpg"}, names(shoot.Files))
}

func TestSelectionByIDs(t *testing.T) {
	lib := newTestLibrary()
	first, _ := lib.CreateOrAppend("", assetsNamed("a1.jpg", "a2.jpg"))
	second, _ := lib.CreateOrAppend("", assetsNamed("b1.jpg"))
	third, _ := lib.CreateOrAppend("", assetsNamed("c1.jpg", "c2.jpg"))
	shared := assetsNamed("shared.jpg")
	lib.CreateOrAppend(first, shared)
	lib.CreateOrAppend(third, shared)

	t.Run("library order, then file order, no de-duplication", func(t *testing.T) {
		selection := lib.SelectionByIDs([]string{third, first})

		assert.Equal(t, []string{"a1.jpg", "a2.jpg", "shared.jpg", "c1.jpg", "c2.jpg", "shared.jpg"}, names(selection))
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		selection := lib.SelectionByIDs([]string{"nope", second})

		assert.Equal(t, []string{"b1.jpg"}, names(selection))
	})

	t.Run("empty selection", func(t *testing.T) {
		assert.Empty(t, lib.SelectionByIDs(nil))
	})
}

func TestAddResultsShoot(t *testing.T) {
	lib := newTestLibrary()
	lib.CreateOrAppend("", assetsNamed("a.jpg"))

	id := lib.AddResultsShoot([]string{"mariage", "studio"}, []json.RawMessage{json.RawMessage(`{"id":"r1"}`)})

	shoot, ok := lib.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Résultats tags: mariage, studio", shoot.Name)
	assert.Empty(t, shoot.Files)
	assert.Len(t, shoot.Results, 1)
	assert.Len(t, lib.ListAll(), 2)
	assert.Len(t, lib.AllFiles(), 1)
}

func TestStats(t *testing.T) {
	lib := newTestLibrary()
	lib.CreateOrAppend("", assetsNamed("a.jpg", "b.jpg"))
	lib.CreateOrAppend("", assetsNamed("c.jpg"))

	stats := lib.Stats()

	assert.Equal(t, 2, stats.Shoots)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, int64(300), stats.TotalBytes)
	assert.Equal(t, "0.00 Mo", stats.SizeLabel)
}
