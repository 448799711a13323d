package driving

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// SearchService exposes raw retrieval, without the language model loop,
// to external actors (CLI debugging, MCP clients).
type SearchService interface {
	// Search performs filtered semantic search over course content.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Outline returns the catalog record for a fuzzily-referenced course.
	Outline(ctx context.Context, courseName string) (*domain.CourseSummary, error)
}
