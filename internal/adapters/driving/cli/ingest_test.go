package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [path]", ingestCmd.Use)
}

func TestIngestCmd_HasClearAndWatchFlags(t *testing.T) {
	require.NotNil(t, ingestCmd.Flags().Lookup("clear"))
	require.NotNil(t, ingestCmd.Flags().Lookup("watch"))
}

func TestIngestCmd_Folder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", t.TempDir()})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Indexed 2 course(s), 30 chunk(s)")
}

func TestIngestCmd_SingleFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "course.md")
	require.NoError(t, os.WriteFile(path, []byte("Course Title: Introduction to MCP\n"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Indexed "Introduction to MCP": 12 chunk(s)`)
}

func TestIngestCmd_SkippedFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingest, ok := ingestService.(*mockIngestService)
	require.True(t, ok)
	ingest.chunks = 0

	path := filepath.Join(t.TempDir(), "course.md")
	require.NoError(t, os.WriteFile(path, []byte("Course Title: Introduction to MCP\n"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "already indexed")
}

func TestIngestCmd_MissingPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "/nonexistent/path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read")
}

func TestIngestCmd_WatchRequiresFolder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "course.md")
	require.NoError(t, os.WriteFile(path, []byte("Course Title: X\n"), 0600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "--watch", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestWatch = false
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires a folder")
}

func TestIsCourseScript(t *testing.T) {
	assert.True(t, isCourseScript("docs/course_mcp.txt"))
	assert.True(t, isCourseScript("docs/Course.MD"))
	assert.False(t, isCourseScript("docs/notes.pdf"))
	assert.False(t, isCourseScript("docs/course"))
}
