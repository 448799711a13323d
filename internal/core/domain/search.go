package domain

import "fmt"

// DefaultSearchLimit is the result limit used when none is requested.
const DefaultSearchLimit = 5

// SearchOptions configures a content search.
type SearchOptions struct {
	// CourseName is an optional free-text course reference. It is
	// resolved to an exact stored title by fuzzy matching before
	// filtering; raw user input is never used as an exact key.
	CourseName string

	// LessonNumber optionally restricts results to one lesson.
	LessonNumber *int

	// Limit is the maximum number of results (default 5).
	Limit int
}

// SearchResult is one content hit, ordered by similarity.
// Results are transient and never persisted.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// Score is the similarity score reported by the vector index.
	Score float64

	// CourseTitle is the resolved title of the owning course.
	CourseTitle string

	// LessonNumber is the owning lesson, nil for document-level text.
	LessonNumber *int
}

// Source is a citation record attached to a search-derived answer.
type Source struct {
	// CourseTitle is the cited course.
	CourseTitle string

	// LessonNumber is the cited lesson, nil if the citation is
	// course-level.
	LessonNumber *int

	// Link is an optional URL for the cited lesson or course.
	Link string
}

// Label renders the source for display, e.g. "Building Towards
// Computer Use - Lesson 3".
func (s Source) Label() string {
	if s.LessonNumber != nil {
		return fmt.Sprintf("%s - Lesson %d", s.CourseTitle, *s.LessonNumber)
	}
	return s.CourseTitle
}

// Key identifies a source for deduplication within one query.
func (s Source) Key() string {
	if s.LessonNumber != nil {
		return fmt.Sprintf("%s#%d", s.CourseTitle, *s.LessonNumber)
	}
	return s.CourseTitle
}
