package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// SearchInput is the input schema for the content search tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"what to search for in the course content"`
	CourseName   string `json:"course_name,omitempty" jsonschema:"course title filter, partial matches work"`
	LessonNumber *int   `json:"lesson_number,omitempty" jsonschema:"restrict results to one lesson"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 5)"`
}

// SearchOutput is the output schema for the content search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single content hit.
type SearchResultOutput struct {
	CourseTitle  string  `json:"course_title"`
	LessonNumber *int    `json:"lesson_number,omitempty"`
	Score        float64 `json:"score"`
	Content      string  `json:"content"`
}

// OutlineInput is the input schema for the course outline tool.
type OutlineInput struct {
	CourseName string `json:"course_name" jsonschema:"course title, partial matches work"`
}

// OutlineOutput is the output schema for the course outline tool.
type OutlineOutput struct {
	Title      string          `json:"title"`
	Link       string          `json:"link,omitempty"`
	Instructor string          `json:"instructor,omitempty"`
	Lessons    []OutlineLesson `json:"lessons"`
}

// OutlineLesson is one lesson in an outline.
type OutlineLesson struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and optional lesson filtering",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_course_outline",
		Description: "Get the outline of a course: its title, link and complete lesson list",
	}, s.handleOutline)
}

// handleSearch handles the content search tool invocation. An
// unresolvable course name yields an empty result set, not an error.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		CourseName:   input.CourseName,
		LessonNumber: input.LessonNumber,
		Limit:        input.Limit,
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if errors.Is(err, domain.ErrCourseNotFound) {
		return nil, SearchOutput{Results: []SearchResultOutput{}}, nil
	}
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			CourseTitle:  results[i].CourseTitle,
			LessonNumber: results[i].LessonNumber,
			Score:        results[i].Score,
			Content:      results[i].Content,
		}
	}

	return nil, output, nil
}

// handleOutline handles the course outline tool invocation.
func (s *Server) handleOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	summary, err := s.ports.Search.Outline(ctx, input.CourseName)
	if err != nil {
		return nil, OutlineOutput{}, err
	}

	output := OutlineOutput{
		Title:      summary.Title,
		Link:       summary.Link,
		Instructor: summary.Instructor,
		Lessons:    make([]OutlineLesson, len(summary.Lessons)),
	}
	for i, lesson := range summary.Lessons {
		output.Lessons[i] = OutlineLesson{
			Number: lesson.Number,
			Title:  lesson.Title,
			Link:   lesson.Link,
		}
	}

	return nil, output, nil
}
