package cli

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
)

// --- Mock implementations ---

type mockSearchService struct {
	results []domain.SearchResult
	summary *domain.CourseSummary
	err     error

	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Outline(_ context.Context, _ string) (*domain.CourseSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

type mockIngestService struct {
	course    *domain.Course
	chunks    int
	stats     *driving.IngestStats
	summaries []domain.CourseSummary
	err       error
}

func (m *mockIngestService) AddCourseDocument(_ context.Context, _ string) (*domain.Course, int, error) {
	return m.course, m.chunks, m.err
}

func (m *mockIngestService) AddCourseFolder(_ context.Context, _ string, _ bool) (*driving.IngestStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.stats != nil {
		return m.stats, nil
	}
	return &driving.IngestStats{}, nil
}

func (m *mockIngestService) Catalog(_ context.Context) ([]domain.CourseSummary, error) {
	return m.summaries, m.err
}

type mockChatService struct {
	result *driving.QueryResult
	err    error

	lastQuery string
}

func (m *mockChatService) Query(_ context.Context, query, _ string) (*driving.QueryResult, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockChatService) NewSession() string {
	return "session-1"
}

// setupTestServices swaps the package services for mocks and returns a
// cleanup function restoring the previous state.
func setupTestServices() func() {
	oldSearch := searchService
	oldIngest := ingestService
	oldChat := chatService

	lesson := 1
	searchService = &mockSearchService{
		results: []domain.SearchResult{
			{
				Content:      "MCP servers expose tools to AI assistants.",
				Score:        0.91,
				CourseTitle:  "Introduction to MCP",
				LessonNumber: &lesson,
			},
		},
		summary: &domain.CourseSummary{
			Title:       "Introduction to MCP",
			Instructor:  "Elena Ruiz",
			LessonCount: 2,
			Lessons: []domain.Lesson{
				{Number: 0, Title: "Welcome"},
				{Number: 1, Title: "Getting Started"},
			},
		},
	}
	ingestService = &mockIngestService{
		course: &domain.Course{Title: "Introduction to MCP"},
		chunks: 12,
		stats:  &driving.IngestStats{Courses: 2, Chunks: 30},
		summaries: []domain.CourseSummary{
			{Title: "Introduction to MCP", Instructor: "Elena Ruiz", LessonCount: 2},
		},
	}
	chatService = &mockChatService{
		result: &driving.QueryResult{
			Answer:    "MCP servers expose tools.",
			Sources:   []domain.Source{{CourseTitle: "Introduction to MCP", LessonNumber: &lesson}},
			SessionID: "session-1",
		},
	}

	return func() {
		searchService = oldSearch
		ingestService = oldIngest
		chatService = oldChat
	}
}
