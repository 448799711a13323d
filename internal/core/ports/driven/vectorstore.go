package driven

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// VectorStore is the dual-index vector capability: a catalog collection
// holding one summary record per course, and a content collection holding
// every chunk. Both are queryable by semantic similarity; the content
// collection additionally by structured filters.
//
// The store is assumed durable across restarts and safe for concurrent
// reads. Writes happen during ingestion, before query traffic starts.
type VectorStore interface {
	// UpsertCourseSummary writes the catalog record for a course.
	// Last write wins per title.
	UpsertCourseSummary(ctx context.Context, course *domain.Course) error

	// UpsertChunks writes content chunks. Last write wins per
	// (course title, chunk index).
	UpsertChunks(ctx context.Context, chunks []domain.Chunk) error

	// ResolveCourseName fuzzy-matches a free-text course reference
	// against the catalog and returns the best-matching stored title.
	// Returns domain.ErrCourseNotFound when nothing matches above the
	// configured similarity threshold, or the catalog is empty.
	ResolveCourseName(ctx context.Context, name string) (string, error)

	// Search runs a filtered similarity search over the content
	// collection. A course filter is resolved via ResolveCourseName
	// first; filters combine with logical AND. Results follow the
	// index's nearest-neighbour ranking.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// ExistingCourseTitles returns the set of titles already in the
	// catalog. Ingestion uses it to skip duplicate documents.
	ExistingCourseTitles(ctx context.Context) (map[string]bool, error)

	// ListCourseSummaries returns every catalog record.
	ListCourseSummaries(ctx context.Context) ([]domain.CourseSummary, error)

	// GetCourseSummary returns the catalog record for an exact title.
	// Returns domain.ErrCourseNotFound for unknown titles.
	GetCourseSummary(ctx context.Context, title string) (*domain.CourseSummary, error)

	// Reset drops and recreates both collections.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}
