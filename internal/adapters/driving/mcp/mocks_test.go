package mcp

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
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
	return m.summary, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	summaries []domain.CourseSummary
	err       error
}

func (m *mockIngestService) AddCourseDocument(_ context.Context, _ string) (*domain.Course, int, error) {
	return nil, 0, m.err
}

func (m *mockIngestService) AddCourseFolder(_ context.Context, _ string, _ bool) (*driving.IngestStats, error) {
	return &driving.IngestStats{}, m.err
}

func (m *mockIngestService) Catalog(_ context.Context) ([]domain.CourseSummary, error) {
	return m.summaries, m.err
}
