package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/majorfi/shootdesk/pkg/assistant"
	"github.com/majorfi/shootdesk/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/************************************************************************************************
** Test helper functions and types
************************************************************************************************/

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
	return path
}

func newTestWorkspace(t *testing.T) *workspace {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	apiURL = utils.DefaultAPIURL
	ws, err := newWorkspace(logger)
	require.NoError(t, err)
	return ws
}

// shootDirs creates two shoot directories: "mariage" with a landscape and a portrait photo, and
// "studio" with one portrait photo and a text file.
func shootDirs(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	mariage := filepath.Join(root, "mariage")
	studio := filepath.Join(root, "studio")
	require.NoError(t, os.Mkdir(mariage, 0o755))
	require.NoError(t, os.Mkdir(studio, 0o755))
	writePNG(t, mariage, "a.png", 40, 30)
	writePNG(t, mariage, "b.png", 30, 40)
	writePNG(t, studio, "c.png", 20, 60)
	require.NoError(t, os.WriteFile(filepath.Join(studio, "notes.txt"), []byte("hello"), 0o644))
	return mariage, studio
}

/************************************************************************************************
** Tests
************************************************************************************************/

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		endOfDay bool
		want     *time.Time
		wantErr  bool
	}{
		{name: "empty", value: ""},
		{name: "day as start", value: "2024-06-01", want: ptrTime(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
		{name: "day as end", value: "2024-06-01", endOfDay: true, want: ptrTime(time.Date(2024, 6, 1, 23, 59, 59, 999000000, time.UTC))},
		{name: "rfc3339", value: "2024-06-01T10:00:00Z", endOfDay: true, want: ptrTime(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))},
		{name: "invalid", value: "01/06/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := parseDate(tt.value, tt.endOfDay)

			// Assert
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestImportPaths(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	mariage, studio := shootDirs(t)
	empty := t.TempDir()
	ws := newTestWorkspace(t)

	// Act
	ids, err := ws.importPaths(context.Background(), []string{mariage, empty, studio})

	// Assert
	require.NoError(t, err)
	require.Len(t, ids, 2)
	shoots := ws.library.ListAll()
	require.Len(t, shoots, 2)
	assert.Equal(t, "mariage", shoots[0].Name)
	assert.Len(t, shoots[0].Files, 2)
	assert.Equal(t, "studio", shoots[1].Name)
	assert.Len(t, shoots[1].Files, 1)
}

func TestImportPathsWithBounds(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	mariage, _ := shootDirs(t)
	ws := newTestWorkspace(t)
	maxWidth = 35

	_, err := ws.importPaths(context.Background(), []string{mariage})

	require.NoError(t, err)
	shoots := ws.library.ListAll()
	require.Len(t, shoots, 1)
	require.Len(t, shoots[0].Files, 1)
	assert.Equal(t, "b.png", shoots[0].Files[0].DisplayName)
}

func TestResolveShoots(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	mariage, studio := shootDirs(t)
	ws := newTestWorkspace(t)
	ids, err := ws.importPaths(context.Background(), []string{mariage, studio})
	require.NoError(t, err)

	got, err := ws.resolveShoots([]string{"studio", "1", "mariage"})
	require.NoError(t, err)
	assert.Equal(t, []string{ids[1], ids[0]}, got)

	_, err = ws.resolveShoots([]string{"3"})
	assert.Error(t, err)
}

func TestBuildState(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	mariage, studio := shootDirs(t)
	ws := newTestWorkspace(t)
	ids, err := ws.importPaths(context.Background(), []string{mariage, studio})
	require.NoError(t, err)

	searchMode = "FACES"
	searchFaces = []string{filepath.Join(studio, "c.png")}
	searchShoots = []string{"mariage"}
	searchTags = []string{"couple", " couple "}
	searchOrientation = "portrait"
	searchFaceFilter = "intersection"
	searchFrom = "2000-01-01"

	// Act
	state, err := buildState(ws)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, utils.ModeFaces, state.Mode)
	assert.Equal(t, []string{ids[0]}, state.SelectedShootIDs)
	assert.Equal(t, []string{"couple"}, state.Tags.Values())
	assert.Len(t, state.FaceQueryImages, 1)
	assert.Equal(t, utils.FaceFilterIntersection, state.FaceFilterMode)
	assert.Equal(t, utils.OrientationPortrait, state.Filters.Orientation)
	require.NotNil(t, state.Filters.DateRange.Start)
	assert.Nil(t, state.Filters.DateRange.End)

	t.Run("invalid orientation", func(t *testing.T) {
		searchOrientation = "square"
		_, err := buildState(ws)
		assert.Error(t, err)
		searchOrientation = "any"
	})

	t.Run("invalid face filter", func(t *testing.T) {
		searchFaceFilter = "xor"
		_, err := buildState(ws)
		assert.Error(t, err)
		searchFaceFilter = "union"
	})
}

func TestSearchCommandInDryRun(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	mariage, studio := shootDirs(t)
	os.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()

	rootCmd := CreateRootCommand()
	rootCmd.SetArgs([]string{"search", mariage, studio, "--mode", "tags", "--tag", "mariage", "--select", "1"})

	// Act
	require.NoError(t, rootCmd.Execute())

	// Assert
	output := out.String()
	assert.Contains(t, output, "[SUCCESS]")
	assert.Contains(t, output, "0 result(s)")
	assert.Contains(t, output, "Résultats tags: mariage")
	assert.Contains(t, output, "tags")
	assert.Contains(t, output, "[a.png, b.png]")
}

func TestAskCommandInDryRun(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	os.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	stdout = &out
	defer func() { stdout = os.Stdout }()

	rootCmd := CreateRootCommand()
	rootCmd.SetArgs([]string{"ask", "trouve", "les", "portraits"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t,
		"[assistant] "+utils.AssistantGreeting+"\n"+
			"[user] trouve les portraits\n"+
			"[assistant] "+utils.AssistantStubReply+"\n",
		out.String())
}

func TestPrintConversation(t *testing.T) {
	var out bytes.Buffer
	attachment := utils.NewImageAsset("a.jpg", 1, 0, "image/jpeg", nil)

	printConversation(&out, []assistant.Message{
		{ID: 1, Role: assistant.RoleAssistant, Text: "Bonjour"},
		{ID: 2, Role: assistant.RoleUser, Text: "", Attachments: []*utils.TImageAsset{attachment}},
	})

	assert.Equal(t, "[assistant] Bonjour\n[user]  (1 image(s))\n", out.String())
}

func TestResolveDimensionsBeforeOrientationFilter(t *testing.T) {
	resetTestEnv()
	defer resetTestEnv()
	mariage, _ := shootDirs(t)
	ws := newTestWorkspace(t)
	_, err := ws.importPaths(context.Background(), []string{mariage})
	require.NoError(t, err)

	require.NoError(t, ws.resolveDimensions(context.Background()))

	for _, file := range ws.library.AllFiles() {
		_, _, ok := file.Dimensions()
		assert.True(t, ok, "%s should have dimensions", file.DisplayName)
	}
}
