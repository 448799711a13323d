package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
)

func newTestChatService(llm *mockLLMService, sessions *mockSessionStore, tools ...Tool) (*ChatService, *ToolRegistry) {
	registry := NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}
	svc := NewChatService(llm, registry, sessions, &domain.LLMSettings{MaxTokens: 500})
	return svc, registry
}

func TestChatService_DirectAnswerWithoutTools(t *testing.T) {
	llm := &mockLLMService{responses: []*driven.GenerateResponse{
		{Text: "Hello! How can I help?", StopReason: driven.StopReasonEndTurn},
	}}
	sessions := newMockSessionStore("session-1")
	svc, _ := newTestChatService(llm, sessions, &mockTool{name: "search_course_content"})

	result, err := svc.Query(context.Background(), "hello", "")
	require.NoError(t, err)

	assert.Equal(t, "Hello! How can I help?", result.Answer)
	assert.Empty(t, result.Sources)
	assert.Equal(t, "session-1", result.SessionID)

	// A general question still offers the tools; the model declined.
	require.Len(t, llm.requests, 1)
	assert.Len(t, llm.requests[0].Tools, 1)
	assert.Equal(t, 500, llm.requests[0].MaxTokens)
}

func TestChatService_ToolRoundProducesAnswerAndSources(t *testing.T) {
	tool := &mockTool{
		name:    SearchToolName,
		text:    "[Introduction to MCP - Lesson 1]\nMCP servers expose tools.",
		sources: []domain.Source{{CourseTitle: "Introduction to MCP", LessonNumber: lessonPtr(1), Link: "https://example.com/mcp/1"}},
	}
	llm := &mockLLMService{responses: []*driven.GenerateResponse{
		{
			StopReason: driven.StopReasonToolUse,
			ToolCalls: []domain.ToolCall{{
				ID:    "call_1",
				Name:  SearchToolName,
				Input: map[string]any{"query": "what are MCP servers", "course_name": "MCP"},
			}},
		},
		{Text: "MCP servers expose tools to models.", StopReason: driven.StopReasonEndTurn},
	}}
	sessions := newMockSessionStore("session-1")
	svc, _ := newTestChatService(llm, sessions, tool)

	result, err := svc.Query(context.Background(), "What are MCP servers?", "session-1")
	require.NoError(t, err)

	assert.Equal(t, "MCP servers expose tools to models.", result.Answer)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Introduction to MCP - Lesson 1", result.Sources[0].Label())
	assert.Equal(t, "https://example.com/mcp/1", result.Sources[0].Link)

	// The tool saw the model's arguments.
	require.Len(t, tool.calls, 1)
	assert.Equal(t, "MCP", tool.calls[0]["course_name"])

	// The follow-up call carries the tool exchange and offers no tools.
	require.Len(t, llm.requests, 2)
	followUp := llm.requests[1]
	assert.Empty(t, followUp.Tools)
	require.Len(t, followUp.Messages, 3)
	assert.Equal(t, domain.RoleAssistant, followUp.Messages[1].Role)
	require.Len(t, followUp.Messages[1].ToolCalls, 1)
	assert.Equal(t, domain.RoleUser, followUp.Messages[2].Role)
	require.Len(t, followUp.Messages[2].ToolResults, 1)
	assert.Equal(t, "call_1", followUp.Messages[2].ToolResults[0].CallID)
	assert.Contains(t, followUp.Messages[2].ToolResults[0].Content, "MCP servers expose tools.")
	assert.False(t, followUp.Messages[2].ToolResults[0].IsError)
}

func TestChatService_SourcesResetBetweenQueries(t *testing.T) {
	tool := &mockTool{
		name:    SearchToolName,
		text:    "results",
		sources: []domain.Source{{CourseTitle: "Introduction to MCP", LessonNumber: lessonPtr(1)}},
	}
	llm := &mockLLMService{responses: []*driven.GenerateResponse{
		{
			StopReason: driven.StopReasonToolUse,
			ToolCalls:  []domain.ToolCall{{ID: "call_1", Name: SearchToolName, Input: map[string]any{"query": "q"}}},
		},
		{Text: "first answer"},
		{Text: "second answer, no tool call"},
	}}
	sessions := newMockSessionStore("session-1")
	svc, registry := newTestChatService(llm, sessions, tool)

	ctx := context.Background()
	first, err := svc.Query(ctx, "What are MCP servers?", "session-1")
	require.NoError(t, err)
	require.Len(t, first.Sources, 1)

	second, err := svc.Query(ctx, "thanks", "session-1")
	require.NoError(t, err)
	assert.Empty(t, second.Sources, "citations must not leak into unrelated answers")
	assert.Empty(t, registry.LastSources())
}

func TestChatService_FailedFollowUpDoesNotLeakSources(t *testing.T) {
	tool := &mockTool{
		name:    SearchToolName,
		text:    "results",
		sources: []domain.Source{{CourseTitle: "Introduction to MCP", LessonNumber: lessonPtr(1)}},
	}
	llm := &mockLLMService{
		responses: []*driven.GenerateResponse{
			{
				StopReason: driven.StopReasonToolUse,
				ToolCalls:  []domain.ToolCall{{ID: "call_1", Name: SearchToolName, Input: map[string]any{"query": "q"}}},
			},
		},
		// The follow-up generation fails after the tool has already
		// recorded its sources.
		err: errors.New("model overloaded"),
	}
	sessions := newMockSessionStore("session-1")
	svc, registry := newTestChatService(llm, sessions, tool)

	ctx := context.Background()
	_, err := svc.Query(ctx, "What are MCP servers?", "session-1")
	require.Error(t, err)

	llm.err = nil
	llm.responses = []*driven.GenerateResponse{{Text: "Hello!", StopReason: driven.StopReasonEndTurn}}

	second, err := svc.Query(ctx, "hello", "session-1")
	require.NoError(t, err)
	assert.Empty(t, second.Sources, "citations from the failed query must not resurface")
	assert.Empty(t, registry.LastSources())
}

func TestChatService_HistoryBoundsContext(t *testing.T) {
	llm := &mockLLMService{responses: []*driven.GenerateResponse{
		{Text: "first"},
		{Text: "second"},
	}}
	sessions := newMockSessionStore("session-1")
	svc, _ := newTestChatService(llm, sessions)

	ctx := context.Background()
	_, err := svc.Query(ctx, "question one", "session-1")
	require.NoError(t, err)
	_, err = svc.Query(ctx, "question two", "session-1")
	require.NoError(t, err)

	// Second request sees the first exchange plus the new user turn.
	require.Len(t, llm.requests, 2)
	msgs := llm.requests[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "question one", msgs[0].Content)
	assert.Equal(t, "first", msgs[1].Content)
	assert.Equal(t, "question two", msgs[2].Content)
}

func TestChatService_UnknownToolStillAnswers(t *testing.T) {
	llm := &mockLLMService{responses: []*driven.GenerateResponse{
		{
			StopReason: driven.StopReasonToolUse,
			ToolCalls:  []domain.ToolCall{{ID: "call_1", Name: "hallucinated_tool", Input: map[string]any{}}},
		},
		{Text: "I could not use that capability."},
	}}
	sessions := newMockSessionStore("session-1")
	svc, _ := newTestChatService(llm, sessions)

	result, err := svc.Query(context.Background(), "do something", "session-1")
	require.NoError(t, err)
	assert.Equal(t, "I could not use that capability.", result.Answer)

	// The model received the explanatory text as an errored tool result.
	require.Len(t, llm.requests, 2)
	results := llm.requests[1].Messages[2].ToolResults
	require.Len(t, results, 1)
	assert.Equal(t, "Tool 'hallucinated_tool' not found", results[0].Content)
	assert.True(t, results[0].IsError)
}

func TestChatService_ToolFailureAborts(t *testing.T) {
	tool := &mockTool{name: SearchToolName, err: errors.New("vector store down")}
	llm := &mockLLMService{responses: []*driven.GenerateResponse{
		{
			StopReason: driven.StopReasonToolUse,
			ToolCalls:  []domain.ToolCall{{ID: "call_1", Name: SearchToolName, Input: map[string]any{"query": "q"}}},
		},
	}}
	sessions := newMockSessionStore("session-1")
	svc, _ := newTestChatService(llm, sessions, tool)

	_, err := svc.Query(context.Background(), "What are MCP servers?", "session-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vector store down")
	assert.Empty(t, sessions.added, "failed queries are not recorded")
}

func TestChatService_LLMErrorWrapped(t *testing.T) {
	llm := &mockLLMService{err: errors.New("connection refused")}
	sessions := newMockSessionStore("session-1")
	svc, _ := newTestChatService(llm, sessions)

	_, err := svc.Query(context.Background(), "hello", "")
	require.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestChatService_EmptySessionIDCreatesSession(t *testing.T) {
	llm := &mockLLMService{responses: []*driven.GenerateResponse{{Text: "hi"}}}
	sessions := newMockSessionStore("fresh-session")
	svc, _ := newTestChatService(llm, sessions)

	result, err := svc.Query(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "fresh-session", result.SessionID)
	assert.Equal(t, []string{"fresh-session"}, sessions.sessions)
	assert.Equal(t, []string{"fresh-session"}, sessions.added)
}
