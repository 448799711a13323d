package services

import (
	"context"
	"fmt"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/coursechat-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// systemPrompt instructs the model on when to search and how to answer.
const systemPrompt = `You are an AI assistant specialised in course materials and educational content.

You have tools to search course content and fetch course outlines. Use them only for questions about specific course content or lessons; answer general knowledge questions directly. Make at most one tool call per question, then answer from its results.

Keep answers brief, accurate and educational. If a search returns nothing relevant, say so plainly. Do not mention the search process in your answer.`

// ChatService is the query orchestrator: it runs the two-phase model
// call, executes requested tools through the registry, and maintains
// bounded per-session history.
type ChatService struct {
	llm         driven.LLMService
	registry    *ToolRegistry
	sessions    driven.SessionStore
	maxTokens   int
	temperature float64
}

// NewChatService creates the orchestrator.
func NewChatService(llm driven.LLMService, registry *ToolRegistry, sessions driven.SessionStore, settings *domain.LLMSettings) *ChatService {
	maxTokens := domain.DefaultMaxTokens
	temperature := 0.0
	if settings != nil {
		if settings.MaxTokens > 0 {
			maxTokens = settings.MaxTokens
		}
		temperature = settings.Temperature
	}
	return &ChatService{
		llm:         llm,
		registry:    registry,
		sessions:    sessions,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// NewSession starts a conversation and returns its identifier.
func (s *ChatService) NewSession() string {
	return s.sessions.Create()
}

// Query answers one question. Phase one offers the model the registered
// tools; if it requests any, they are executed and a tool-free follow-up
// call produces the final text. Exactly one round of tool use is
// supported: the follow-up omits tool specs, forcing a terminal answer.
// Remote failures are returned to the caller unretried.
func (s *ChatService) Query(ctx context.Context, query, sessionID string) (*driving.QueryResult, error) {
	if sessionID == "" {
		sessionID = s.sessions.Create()
	}

	// A failed query leaves its accumulated sources behind; clear them
	// here so they can never surface as another query's citations.
	s.registry.ResetSources()

	messages := append(s.sessions.History(sessionID), domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: query,
	})

	logger.Section("Query")
	logger.Debug("Session %s: %q (%d history turns)", sessionID, query, len(messages)-1)

	resp, err := s.llm.Generate(ctx, &driven.GenerateRequest{
		System:      systemPrompt,
		Messages:    messages,
		Tools:       s.registry.Specs(),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	answer := resp.Text
	if len(resp.ToolCalls) > 0 {
		answer, err = s.runToolRound(ctx, messages, resp)
		if err != nil {
			return nil, err
		}
	}

	sources := s.registry.LastSources()
	s.registry.ResetSources()

	s.sessions.AddExchange(sessionID, query, answer)

	return &driving.QueryResult{
		Answer:    answer,
		Sources:   sources,
		SessionID: sessionID,
	}, nil
}

// runToolRound executes every requested tool call and issues the
// tool-free follow-up generation whose text becomes the final answer.
func (s *ChatService) runToolRound(ctx context.Context, messages []domain.ChatMessage, resp *driven.GenerateResponse) (string, error) {
	results := make([]domain.ToolResult, 0, len(resp.ToolCalls))
	for _, call := range resp.ToolCalls {
		logger.Debug("Tool call %s: %s %v", call.ID, call.Name, call.Input)

		text, err := s.registry.Execute(ctx, call.Name, call.Input)
		if err != nil && text == "" {
			// Capability failure, not a soft miss: hard failure.
			return "", err
		}
		results = append(results, domain.ToolResult{
			CallID:  call.ID,
			Content: text,
			IsError: err != nil,
		})
	}

	followUp := append(messages,
		domain.ChatMessage{
			Role:      domain.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		},
		domain.ChatMessage{
			Role:        domain.RoleUser,
			ToolResults: results,
		},
	)

	// No tools this round: the model must produce a terminal answer.
	final, err := s.llm.Generate(ctx, &driven.GenerateRequest{
		System:      systemPrompt,
		Messages:    followUp,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return final.Text, nil
}
