package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory conversation store. Each session keeps a
// bounded window of recent exchanges; older turns are evicted so the
// prompt context cannot grow without limit.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string][]domain.ChatMessage
	maxHistory int
}

// NewSessionStore creates a session store retaining maxHistory exchanges
// per session. maxHistory <= 0 falls back to the default.
func NewSessionStore(maxHistory int) *SessionStore {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistory
	}
	return &SessionStore{
		sessions:   make(map[string][]domain.ChatMessage),
		maxHistory: maxHistory,
	}
}

// Create starts a new session and returns its identifier.
func (s *SessionStore) Create() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = nil
	return id
}

// AddExchange records one completed question/answer pair. When the
// window is full the oldest exchange is evicted.
func (s *SessionStore) AddExchange(sessionID, userMessage, assistantMessage string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID],
		domain.ChatMessage{Role: domain.RoleUser, Content: userMessage},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: assistantMessage},
	)

	// Two messages per exchange.
	if max := s.maxHistory * 2; len(history) > max {
		history = history[len(history)-max:]
	}
	s.sessions[sessionID] = history
}

// History returns a copy of the retained messages, oldest first. An
// unknown session yields an empty history.
func (s *SessionStore) History(sessionID string) []domain.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ChatMessage(nil), s.sessions[sessionID]...)
}

// Clear discards a session's history.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
