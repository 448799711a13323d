package mcp

import (
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides filtered content search and course outlines.
	Search driving.SearchService

	// Ingest provides the course catalog. Optional; without it the
	// courses resource serves an empty list.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
