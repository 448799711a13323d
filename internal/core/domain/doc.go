// Package domain defines the core business entities for coursechat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Course: An ingested course with its ordered lessons
//   - Chunk: A searchable span of course text
//   - CourseSummary: The catalog record backing fuzzy name resolution
//   - ChatMessage / ToolCall / ToolResult: Conversation turns
//   - Source: A citation attached to a search-derived answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
