package driving

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// IngestService loads course scripts into the vector index.
type IngestService interface {
	// AddCourseDocument ingests a single course script file and returns
	// the parsed course and the number of chunks indexed. A course whose
	// title is already in the catalog is skipped (returned with zero
	// chunks).
	AddCourseDocument(ctx context.Context, path string) (*domain.Course, int, error)

	// AddCourseFolder ingests every course script in a folder.
	// Unreadable or empty files are skipped and counted, not fatal.
	// When clearExisting is set, both collections are reset first.
	AddCourseFolder(ctx context.Context, dir string, clearExisting bool) (*IngestStats, error)

	// Catalog returns the current course catalog.
	Catalog(ctx context.Context) ([]domain.CourseSummary, error)
}

// IngestStats summarises one folder ingestion run.
type IngestStats struct {
	// Courses is the number of newly indexed courses.
	Courses int

	// Chunks is the number of newly indexed chunks.
	Chunks int

	// Skipped is the number of documents skipped as duplicates.
	Skipped int

	// Failures is the number of documents that could not be processed.
	Failures int
}
