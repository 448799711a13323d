package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for CourseChat resources.
const uriScheme = "coursechat://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "courses",
		Name:        "courses",
		Description: "Catalog of all indexed courses with their lesson lists",
		MIMEType:    "application/json",
	}, s.handleCoursesResource)
}

// handleCoursesResource returns the course catalog as JSON.
func (s *Server) handleCoursesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Ingest == nil {
		return jsonResource(req.Params.URI, "[]"), nil
	}

	summaries, err := s.ports.Ingest.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	type courseInfo struct {
		Title       string `json:"title"`
		Link        string `json:"link,omitempty"`
		Instructor  string `json:"instructor,omitempty"`
		LessonCount int    `json:"lesson_count"`
	}

	infos := make([]courseInfo, len(summaries))
	for i, summary := range summaries {
		infos[i] = courseInfo{
			Title:       summary.Title,
			Link:        summary.Link,
			Instructor:  summary.Instructor,
			LessonCount: summary.LessonCount,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding courses: %w", err)
	}

	return jsonResource(req.Params.URI, string(data)), nil
}

func jsonResource(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
