package services

import (
	"context"
	"fmt"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	results   []domain.SearchResult
	summaries map[string]*domain.CourseSummary
	resolved  string
	titles    map[string]bool

	searchErr  error
	resolveErr error
	summaryErr error
	upsertErr  error
	listErr    error
	resetErr   error

	searchCalls  []domain.SearchOptions
	upsertedSums []*domain.Course
	upsertedChks [][]domain.Chunk
	resetCalled  bool
}

func (m *mockVectorStore) UpsertCourseSummary(_ context.Context, course *domain.Course) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedSums = append(m.upsertedSums, course)
	return nil
}

func (m *mockVectorStore) UpsertChunks(_ context.Context, chunks []domain.Chunk) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertedChks = append(m.upsertedChks, chunks)
	return nil
}

func (m *mockVectorStore) ResolveCourseName(_ context.Context, name string) (string, error) {
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	if m.resolved == "" {
		return "", fmt.Errorf("resolve %q: %w", name, domain.ErrCourseNotFound)
	}
	return m.resolved, nil
}

func (m *mockVectorStore) Search(_ context.Context, _ string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	m.searchCalls = append(m.searchCalls, opts)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results, nil
}

func (m *mockVectorStore) ExistingCourseTitles(_ context.Context) (map[string]bool, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.titles == nil {
		return map[string]bool{}, nil
	}
	return m.titles, nil
}

func (m *mockVectorStore) ListCourseSummaries(_ context.Context) ([]domain.CourseSummary, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.CourseSummary
	for _, s := range m.summaries {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockVectorStore) GetCourseSummary(_ context.Context, title string) (*domain.CourseSummary, error) {
	if m.summaryErr != nil {
		return nil, m.summaryErr
	}
	summary, ok := m.summaries[title]
	if !ok {
		return nil, fmt.Errorf("summary %q: %w", title, domain.ErrNotFound)
	}
	return summary, nil
}

func (m *mockVectorStore) Reset(_ context.Context) error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resetCalled = true
	return nil
}

func (m *mockVectorStore) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing. Responses are
// consumed in order, one per Generate call; once they run out, err (when
// set) is returned, letting tests fail a specific call in a sequence.
type mockLLMService struct {
	responses []*driven.GenerateResponse
	err       error

	requests []*driven.GenerateRequest
}

func (m *mockLLMService) Generate(_ context.Context, req *driven.GenerateRequest) (*driven.GenerateResponse, error) {
	m.requests = append(m.requests, req)
	if len(m.responses) == 0 {
		if m.err != nil {
			return nil, m.err
		}
		return &driven.GenerateResponse{Text: "", StopReason: driven.StopReasonEndTurn}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *mockLLMService) ModelName() string { return "mock-model" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockSessionStore implements driven.SessionStore for testing.
type mockSessionStore struct {
	nextID   string
	history  map[string][]domain.ChatMessage
	added    []string
	sessions []string
}

func newMockSessionStore(nextID string) *mockSessionStore {
	return &mockSessionStore{
		nextID:  nextID,
		history: make(map[string][]domain.ChatMessage),
	}
}

func (m *mockSessionStore) Create() string {
	m.sessions = append(m.sessions, m.nextID)
	return m.nextID
}

func (m *mockSessionStore) AddExchange(sessionID, userMessage, assistantMessage string) {
	m.added = append(m.added, sessionID)
	m.history[sessionID] = append(m.history[sessionID],
		domain.ChatMessage{Role: domain.RoleUser, Content: userMessage},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: assistantMessage},
	)
}

func (m *mockSessionStore) History(sessionID string) []domain.ChatMessage {
	return m.history[sessionID]
}

func (m *mockSessionStore) Clear(sessionID string) {
	delete(m.history, sessionID)
}

// mockTool implements Tool for testing.
type mockTool struct {
	name    string
	text    string
	sources []domain.Source
	err     error

	calls []map[string]any
}

func (m *mockTool) Spec() domain.ToolSpec {
	return domain.ToolSpec{
		Name:        m.name,
		Description: "mock tool",
		InputSchema: map[string]any{"type": "object"},
	}
}

func (m *mockTool) Execute(_ context.Context, input map[string]any) (string, []domain.Source, error) {
	m.calls = append(m.calls, input)
	return m.text, m.sources, m.err
}

// mockSegmenter implements driven.Segmenter for testing.
type mockSegmenter struct {
	course *domain.Course
	chunks []domain.Chunk
	err    error
}

func (m *mockSegmenter) Segment(_ context.Context, _ string, fallbackTitle string) (*domain.Course, []domain.Chunk, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	if m.course != nil {
		return m.course, m.chunks, nil
	}
	return &domain.Course{Title: fallbackTitle}, m.chunks, nil
}
