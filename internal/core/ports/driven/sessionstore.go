package driven

import (
	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// SessionStore keeps per-session conversation history, bounded to the
// last N exchanges. History is in-process only: sessions do not survive
// a restart.
type SessionStore interface {
	// Create starts a new session and returns its opaque identifier.
	Create() string

	// AddExchange appends one (user query, assistant answer) pair to
	// the session, evicting the oldest exchange past the bound.
	// Unknown session IDs are created implicitly.
	AddExchange(sessionID, userMessage, assistantMessage string)

	// History returns the retained turns in order, oldest first.
	// Unknown session IDs yield an empty history.
	History(sessionID string) []domain.ChatMessage

	// Clear removes a session entirely.
	Clear(sessionID string)
}
