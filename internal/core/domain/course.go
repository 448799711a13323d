package domain

import "fmt"

// Course represents one ingested course script.
// The title is the canonical identifier: ingestion deduplicates by it.
type Course struct {
	// Title is the unique, human-readable course title.
	Title string

	// Link is the optional course URL.
	Link string

	// Instructor is the optional instructor name.
	Instructor string

	// Lessons are the course lessons in canonical (number) order.
	Lessons []Lesson
}

// Lesson is a numbered section of a course.
type Lesson struct {
	// Number is the lesson number, unique within the course.
	// Preamble text before the first lesson marker is lesson 0.
	Number int

	// Title is the lesson title.
	Title string

	// Link is the optional lesson URL.
	Link string
}

// LessonLink returns the link of the lesson with the given number,
// or empty string if the lesson has no link or does not exist.
func (c *Course) LessonLink(number int) string {
	for i := range c.Lessons {
		if c.Lessons[i].Number == number {
			return c.Lessons[i].Link
		}
	}
	return ""
}

// Chunk is the atomic retrieval unit: a bounded span of course text.
// Chunks are created once at ingestion time and are immutable afterwards.
// Identity is (CourseTitle, Index).
type Chunk struct {
	// CourseTitle is the owning course.
	CourseTitle string

	// LessonNumber is the owning lesson. Nil for document-level text.
	LessonNumber *int

	// Index is the zero-based position in the course's full chunk
	// sequence. It runs across lessons, not per lesson.
	Index int

	// Content is the chunk text including the contextual prefix that
	// identifies its course and lesson before embedding.
	Content string
}

// CourseSummary is the catalog record stored once per course.
// It backs fuzzy course-name resolution and catalog display.
type CourseSummary struct {
	// Title is the course title (catalog key).
	Title string

	// Link is the optional course URL.
	Link string

	// Instructor is the optional instructor name.
	Instructor string

	// LessonCount is the number of lessons.
	LessonCount int

	// Lessons is the serialized lesson list.
	Lessons []Lesson
}

// Summary builds the catalog record for a course.
func (c *Course) Summary() CourseSummary {
	return CourseSummary{
		Title:       c.Title,
		Link:        c.Link,
		Instructor:  c.Instructor,
		LessonCount: len(c.Lessons),
		Lessons:     append([]Lesson(nil), c.Lessons...),
	}
}

// CatalogText is the text embedded for fuzzy course-name resolution.
// Lesson titles are included so partial references ("the MCP lesson")
// can still resolve the right course.
func (s CourseSummary) CatalogText() string {
	text := s.Title
	if s.Instructor != "" {
		text += fmt.Sprintf(" by %s", s.Instructor)
	}
	for _, l := range s.Lessons {
		text += fmt.Sprintf("\nLesson %d: %s", l.Number, l.Title)
	}
	return text
}
