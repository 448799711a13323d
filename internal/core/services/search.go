package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService exposes raw retrieval to the CLI and MCP adapters,
// bypassing the language model loop.
type SearchService struct {
	store driven.VectorStore
}

// NewSearchService creates the search service.
func NewSearchService(store driven.VectorStore) *SearchService {
	return &SearchService{store: store}
}

// Search performs filtered semantic search over course content.
// An empty query returns no results.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultSearchLimit
	}

	logger.Section("Search")
	logger.Debug("Query: %q course=%q", query, opts.CourseName)

	results, err := s.store.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	logger.Debug("%d results", len(results))
	return results, nil
}

// Outline resolves a fuzzily-referenced course and returns its catalog
// record.
func (s *SearchService) Outline(ctx context.Context, courseName string) (*domain.CourseSummary, error) {
	title, err := s.store.ResolveCourseName(ctx, courseName)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", courseName, err)
	}
	summary, err := s.store.GetCourseSummary(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("course summary: %w", err)
	}
	return summary, nil
}
