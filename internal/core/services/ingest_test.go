package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/segmenter"
)

const mcpScript = `Course Title: Introduction to MCP
Course Link: https://example.com/mcp
Course Instructor: Elena Ruiz

Lesson 0: Welcome
Lesson Link: https://example.com/mcp/0
Welcome to the course. We will cover the Model Context Protocol.

Lesson 1: Getting Started
Lesson Link: https://example.com/mcp/1
MCP servers expose tools to language models. This lesson sets one up.
`

const retrievalScript = `Course Title: Advanced Retrieval
Course Instructor: Sam Okafor

Lesson 0: Embeddings
Dense vectors represent meaning. Similar texts land near each other.
`

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestService_AddCourseDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "mcp.txt", mcpScript)

	store := &mockVectorStore{}
	svc := NewIngestService(segmenter.New(), store)

	course, chunks, err := svc.AddCourseDocument(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Introduction to MCP", course.Title)
	assert.Equal(t, "Elena Ruiz", course.Instructor)
	assert.Len(t, course.Lessons, 2)
	assert.Positive(t, chunks)

	require.Len(t, store.upsertedSums, 1)
	require.Len(t, store.upsertedChks, 1)
	assert.Len(t, store.upsertedChks[0], chunks)
}

func TestIngestService_DuplicateTitleSkipped(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "mcp.txt", mcpScript)

	store := &mockVectorStore{titles: map[string]bool{"Introduction to MCP": true}}
	svc := NewIngestService(segmenter.New(), store)

	course, chunks, err := svc.AddCourseDocument(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Introduction to MCP", course.Title)
	assert.Zero(t, chunks)
	assert.Empty(t, store.upsertedSums, "duplicates write no summary")
	assert.Empty(t, store.upsertedChks, "duplicates write no chunks")
}

func TestIngestService_MissingFile(t *testing.T) {
	svc := NewIngestService(segmenter.New(), &mockVectorStore{})

	_, _, err := svc.AddCourseDocument(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestIngestService_AddCourseFolder(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "b_retrieval.txt", retrievalScript)
	writeScript(t, dir, "a_mcp.md", mcpScript)
	writeScript(t, dir, "notes.pdf", "binary junk")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	store := &mockVectorStore{}
	svc := NewIngestService(segmenter.New(), store)

	stats, err := svc.AddCourseFolder(context.Background(), dir, false)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Courses)
	assert.Positive(t, stats.Chunks)
	assert.Zero(t, stats.Skipped)
	assert.Zero(t, stats.Failures)
	assert.False(t, store.resetCalled)

	// Name order: a_mcp.md before b_retrieval.txt.
	require.Len(t, store.upsertedSums, 2)
	assert.Equal(t, "Introduction to MCP", store.upsertedSums[0].Title)
	assert.Equal(t, "Advanced Retrieval", store.upsertedSums[1].Title)
}

func TestIngestService_AddCourseFolderIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mcp.txt", mcpScript)

	store := &mockVectorStore{}
	svc := NewIngestService(segmenter.New(), store)

	ctx := context.Background()
	first, err := svc.AddCourseFolder(ctx, dir, false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Courses)

	// Re-run with the catalog now containing the title.
	store.titles = map[string]bool{"Introduction to MCP": true}
	second, err := svc.AddCourseFolder(ctx, dir, false)
	require.NoError(t, err)
	assert.Zero(t, second.Courses)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, store.upsertedSums, 1, "no second write for a known title")
}

func TestIngestService_DuplicateWithinOneRun(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "first.txt", mcpScript)
	writeScript(t, dir, "second.txt", mcpScript)

	store := &mockVectorStore{}
	svc := NewIngestService(segmenter.New(), store)

	stats, err := svc.AddCourseFolder(context.Background(), dir, false)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Courses)
	assert.Equal(t, 1, stats.Skipped)
	assert.Len(t, store.upsertedSums, 1)
}

func TestIngestService_ClearExisting(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "mcp.txt", mcpScript)

	store := &mockVectorStore{}
	svc := NewIngestService(segmenter.New(), store)

	stats, err := svc.AddCourseFolder(context.Background(), dir, true)
	require.NoError(t, err)
	assert.True(t, store.resetCalled)
	assert.Equal(t, 1, stats.Courses)
}

func TestIngestService_DirectoriesFiltered(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "good.txt", mcpScript)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "bad.txt"), 0o755))

	store := &mockVectorStore{}
	svc := NewIngestService(segmenter.New(), store)

	stats, err := svc.AddCourseFolder(context.Background(), dir, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Courses)
	assert.Zero(t, stats.Failures)
}

func TestIngestService_MissingFolder(t *testing.T) {
	svc := NewIngestService(segmenter.New(), &mockVectorStore{})

	_, err := svc.AddCourseFolder(context.Background(), filepath.Join(t.TempDir(), "absent"), false)
	require.Error(t, err)
}

func TestIngestService_Catalog(t *testing.T) {
	store := &mockVectorStore{summaries: map[string]*domain.CourseSummary{
		"Zeta Course":  {Title: "Zeta Course"},
		"Alpha Course": {Title: "Alpha Course"},
	}}
	svc := NewIngestService(segmenter.New(), store)

	summaries, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Alpha Course", summaries[0].Title)
	assert.Equal(t, "Zeta Course", summaries[1].Title)
}
