// Package segmenter parses structured course scripts into courses and
// overlapping, context-prefixed chunks ready for vector indexing.
package segmenter

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// lessonMarker matches lines of the form "Lesson N: title".
var lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// Course script header prefixes, expected in this order at the top of the
// document. Each is optional; a missing title falls back to the supplied
// default.
const (
	titlePrefix      = "Course Title:"
	linkPrefix       = "Course Link:"
	instructorPrefix = "Course Instructor:"
	lessonLinkPrefix = "Lesson Link:"
)

// preambleTitle names the implicit lesson holding text that appears
// before the first lesson marker.
const preambleTitle = "Introduction"

// Segmenter splits course scripts into sentence-packed chunks.
type Segmenter struct {
	chunkSize int
	overlap   int
}

// Option configures the segmenter.
type Option func(*Segmenter)

// WithChunkSize sets the chunk character budget.
func WithChunkSize(size int) Option {
	return func(s *Segmenter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the trailing-context budget carried between chunks.
func WithOverlap(overlap int) Option {
	return func(s *Segmenter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a segmenter with the given options.
func New(opts ...Option) *Segmenter {
	s := &Segmenter{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must leave room for new content in every chunk.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// lessonBody pairs a lesson with its raw text.
type lessonBody struct {
	lesson domain.Lesson
	body   string
}

// Segment parses a raw course script. The chunk index runs across the
// whole course, not per lesson. An empty document yields a course with
// no lessons and no chunks.
func (s *Segmenter) Segment(_ context.Context, raw, fallbackTitle string) (*domain.Course, []domain.Chunk, error) {
	course := &domain.Course{Title: fallbackTitle}

	lines := strings.Split(raw, "\n")
	rest := parseHeader(lines, course)
	bodies := parseLessons(rest)

	var chunks []domain.Chunk
	index := 0
	for _, lb := range bodies {
		course.Lessons = append(course.Lessons, lb.lesson)

		number := lb.lesson.Number
		for _, text := range s.chunkText(lb.body) {
			chunks = append(chunks, domain.Chunk{
				CourseTitle:  course.Title,
				LessonNumber: &number,
				Index:        index,
				Content:      contextPrefix(course.Title, &number) + text,
			})
			index++
		}
	}

	return course, chunks, nil
}

// contextPrefix is embedded with every chunk so that generic sentences
// still retrieve against course- and lesson-specific queries.
func contextPrefix(title string, lesson *int) string {
	if lesson != nil {
		return fmt.Sprintf("Course %s Lesson %d content: ", title, *lesson)
	}
	return fmt.Sprintf("Course %s content: ", title)
}

// parseHeader consumes the optional Course Title / Course Link /
// Course Instructor lines (fixed order, each optional) and returns the
// remaining lines. Malformed header lines are left for the lesson
// scanner, which treats them as body text.
func parseHeader(lines []string, course *domain.Course) []string {
	i := 0
	next := func() (string, bool) {
		for i < len(lines) {
			trimmed := strings.TrimSpace(lines[i])
			if trimmed != "" {
				return trimmed, true
			}
			i++
		}
		return "", false
	}

	if line, ok := next(); ok {
		if v, ok := cutPrefix(line, titlePrefix); ok {
			course.Title = v
			i++
		}
	}
	if line, ok := next(); ok {
		if v, ok := cutPrefix(line, linkPrefix); ok {
			course.Link = v
			i++
		}
	}
	if line, ok := next(); ok {
		if v, ok := cutPrefix(line, instructorPrefix); ok {
			course.Instructor = v
			i++
		}
	}

	return lines[i:]
}

// parseLessons splits the remaining lines at lesson markers. Text before
// the first marker, if non-trivial, becomes a lesson 0 preamble. A line
// that fails to parse as a marker simply joins the current body.
func parseLessons(lines []string) []lessonBody {
	var bodies []lessonBody
	var current *lessonBody
	var preamble []string

	flush := func() {
		if current != nil {
			current.body = strings.TrimSpace(current.body)
			bodies = append(bodies, *current)
			current = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if m := lessonMarker.FindStringSubmatch(line); m != nil {
			// Atoi only fails on overflow; such a line is not a
			// boundary and joins the surrounding body.
			if number, err := strconv.Atoi(m[1]); err == nil {
				flush()
				current = &lessonBody{lesson: domain.Lesson{Number: number, Title: strings.TrimSpace(m[2])}}
				// An immediately following "Lesson Link:" line
				// belongs to the marker, not the body.
				if i+1 < len(lines) {
					if v, ok := cutPrefix(strings.TrimSpace(lines[i+1]), lessonLinkPrefix); ok {
						current.lesson.Link = v
						i++
					}
				}
				continue
			}
		}

		if current != nil {
			current.body += line + "\n"
		} else {
			preamble = append(preamble, line)
		}
	}
	flush()

	if text := strings.TrimSpace(strings.Join(preamble, "\n")); text != "" {
		bodies = append([]lessonBody{{
			lesson: domain.Lesson{Number: 0, Title: preambleTitle},
			body:   text,
		}}, bodies...)
	}

	return bodies
}

// cutPrefix returns the trimmed value after prefix and whether the line
// carried it.
func cutPrefix(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}
