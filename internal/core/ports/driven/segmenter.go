package driven

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// Segmenter parses a raw course script into a Course and its ordered
// chunk sequence, ready for indexing.
type Segmenter interface {
	// Segment parses the raw document text. fallbackTitle is used when
	// the script declares no Course Title header. An empty document
	// yields a course with no lessons and no chunks, not an error.
	Segment(ctx context.Context, raw, fallbackTitle string) (*domain.Course, []domain.Chunk, error)
}
