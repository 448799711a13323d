package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCourseNotFound indicates a course reference did not fuzzy-match
	// any catalog entry. Search surfaces this as an explanatory empty
	// result, not a hard failure.
	ErrCourseNotFound = errors.New("course not found")

	// ErrUnknownTool indicates the model requested a tool that is not
	// registered. The registry still produces an explanatory text result
	// for the model.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// unreachable. Queries cannot be answered without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Both ingestion and retrieval require embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not
	// configured or unreachable.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
)
