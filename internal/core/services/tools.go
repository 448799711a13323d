package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

// Tool names exposed to the language model.
const (
	SearchToolName  = "search_course_content"
	OutlineToolName = "get_course_outline"
)

// Ensure the tools implement the interface.
var (
	_ Tool = (*CourseSearchTool)(nil)
	_ Tool = (*CourseOutlineTool)(nil)
)

// CourseSearchTool lets the model search course content with fuzzy
// course-name matching and optional lesson filtering.
type CourseSearchTool struct {
	store      driven.VectorStore
	maxResults int
}

// NewCourseSearchTool creates the search tool. maxResults <= 0 falls
// back to the default limit.
func NewCourseSearchTool(store driven.VectorStore, maxResults int) *CourseSearchTool {
	if maxResults <= 0 {
		maxResults = domain.DefaultSearchLimit
	}
	return &CourseSearchTool{store: store, maxResults: maxResults}
}

// Spec declares the tool to the model.
func (t *CourseSearchTool) Spec() domain.ToolSpec {
	return domain.ToolSpec{
		Name:        SearchToolName,
		Description: "Search course materials with smart course name matching and optional lesson filtering",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for in the course content",
				},
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP')",
				},
				"lesson_number": map[string]any{
					"type":        "integer",
					"description": "Specific lesson number to search within",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Execute runs the search and formats the hits as labeled blocks. A
// course reference that resolves to nothing yields an explanatory text
// result, never an error; the model composes an answer acknowledging
// the gap.
func (t *CourseSearchTool) Execute(ctx context.Context, input map[string]any) (string, []domain.Source, error) {
	query, ok := stringArg(input, "query")
	if !ok || strings.TrimSpace(query) == "" {
		return "", nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}

	opts := domain.SearchOptions{Limit: t.maxResults}
	if name, ok := stringArg(input, "course_name"); ok {
		opts.CourseName = name
	}
	if lesson, ok := intArg(input, "lesson_number"); ok {
		opts.LessonNumber = &lesson
	}

	results, err := t.store.Search(ctx, query, opts)
	if errors.Is(err, domain.ErrCourseNotFound) {
		return fmt.Sprintf("No course found matching '%s'", opts.CourseName), nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		return t.emptyMessage(opts), nil, nil
	}

	logger.Debug("Search tool: %d results for %q", len(results), query)
	return t.formatResults(ctx, results)
}

// emptyMessage describes an empty result set, echoing the active filters.
func (t *CourseSearchTool) emptyMessage(opts domain.SearchOptions) string {
	msg := "No relevant content found"
	if opts.CourseName != "" {
		msg += fmt.Sprintf(" in course '%s'", opts.CourseName)
	}
	if opts.LessonNumber != nil {
		msg += fmt.Sprintf(" in lesson %d", *opts.LessonNumber)
	}
	return msg + "."
}

// formatResults renders labeled blocks and collects one source per
// unique (course, lesson) pair in first-seen order. Lesson links come
// from the catalog record, fetched once per course.
func (t *CourseSearchTool) formatResults(ctx context.Context, results []domain.SearchResult) (string, []domain.Source, error) {
	var blocks []string
	var sources []domain.Source
	seen := make(map[string]bool)
	summaries := make(map[string]*domain.CourseSummary)

	for _, res := range results {
		header := fmt.Sprintf("[%s]", res.CourseTitle)
		if res.LessonNumber != nil {
			header = fmt.Sprintf("[%s - Lesson %d]", res.CourseTitle, *res.LessonNumber)
		}
		blocks = append(blocks, header+"\n"+res.Content)

		src := domain.Source{CourseTitle: res.CourseTitle, LessonNumber: res.LessonNumber}
		if seen[src.Key()] {
			continue
		}
		seen[src.Key()] = true

		summary, ok := summaries[res.CourseTitle]
		if !ok {
			// Best effort: a missing catalog record only costs the link.
			summary, _ = t.store.GetCourseSummary(ctx, res.CourseTitle)
			summaries[res.CourseTitle] = summary
		}
		if summary != nil {
			if res.LessonNumber != nil {
				src.Link = lessonLink(summary, *res.LessonNumber)
			}
			if src.Link == "" {
				src.Link = summary.Link
			}
		}
		sources = append(sources, src)
	}

	return strings.Join(blocks, "\n\n"), sources, nil
}

// CourseOutlineTool lets the model fetch a course's title, link and
// numbered lesson list from the catalog.
type CourseOutlineTool struct {
	store driven.VectorStore
}

// NewCourseOutlineTool creates the outline tool.
func NewCourseOutlineTool(store driven.VectorStore) *CourseOutlineTool {
	return &CourseOutlineTool{store: store}
}

// Spec declares the tool to the model.
func (t *CourseOutlineTool) Spec() domain.ToolSpec {
	return domain.ToolSpec{
		Name:        OutlineToolName,
		Description: "Get the outline of a course: its title, link and complete lesson list",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work)",
				},
			},
			"required": []string{"course_name"},
		},
	}
}

// Execute resolves the course and renders its outline.
func (t *CourseOutlineTool) Execute(ctx context.Context, input map[string]any) (string, []domain.Source, error) {
	name, ok := stringArg(input, "course_name")
	if !ok || strings.TrimSpace(name) == "" {
		return "", nil, fmt.Errorf("%w: course_name is required", domain.ErrInvalidInput)
	}

	title, err := t.store.ResolveCourseName(ctx, name)
	if errors.Is(err, domain.ErrCourseNotFound) {
		return fmt.Sprintf("No course found matching '%s'", name), nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("resolve course: %w", err)
	}

	summary, err := t.store.GetCourseSummary(ctx, title)
	if err != nil {
		return "", nil, fmt.Errorf("course summary: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", summary.Title)
	if summary.Link != "" {
		fmt.Fprintf(&b, "Link: %s\n", summary.Link)
	}
	if summary.Instructor != "" {
		fmt.Fprintf(&b, "Instructor: %s\n", summary.Instructor)
	}
	fmt.Fprintf(&b, "Lessons (%d):\n", summary.LessonCount)
	for _, lesson := range summary.Lessons {
		fmt.Fprintf(&b, "  %d. %s\n", lesson.Number, lesson.Title)
	}

	source := domain.Source{CourseTitle: summary.Title, Link: summary.Link}
	return strings.TrimRight(b.String(), "\n"), []domain.Source{source}, nil
}

// lessonLink returns the link of the numbered lesson in a summary.
func lessonLink(summary *domain.CourseSummary, number int) string {
	for _, lesson := range summary.Lessons {
		if lesson.Number == number {
			return lesson.Link
		}
	}
	return ""
}

// stringArg fetches a string argument from decoded tool input.
func stringArg(input map[string]any, key string) (string, bool) {
	v, ok := input[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg fetches an integer argument. JSON numbers decode as float64.
func intArg(input map[string]any, key string) (int, bool) {
	switch v := input[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}
