// Package mcp provides an MCP (Model Context Protocol) server adapter for
// CourseChat. It lets AI assistants search indexed course materials and
// fetch course outlines directly.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
