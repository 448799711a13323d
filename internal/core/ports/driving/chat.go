package driving

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// ChatService answers user questions with retrieval-grounded citations.
type ChatService interface {
	// Query runs one question through the two-phase model loop and
	// returns the final answer plus the accumulated citation sources.
	// An empty sessionID starts a fresh session; the used session ID is
	// returned so callers can continue the conversation.
	Query(ctx context.Context, query, sessionID string) (*QueryResult, error)

	// NewSession starts a conversation and returns its identifier.
	NewSession() string
}

// QueryResult is the outcome of one orchestrated query.
type QueryResult struct {
	// Answer is the final model answer text.
	Answer string

	// Sources are the citation records accumulated by tool calls
	// during this query, in first-seen order.
	Sources []domain.Source

	// SessionID identifies the session the exchange was appended to.
	SessionID string
}
