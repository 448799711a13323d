// Package ollama provides an LLM service adapter using Ollama.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
	"github.com/studyhall-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig holds configuration for the Ollama LLM service.
type LLMConfig struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the LLM model to use (default: llama3.2).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// LLMService provides LLM operations using Ollama.
type LLMService struct {
	client  *http.Client
	baseURL string
	model   string
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string           `json:"model"`
	Messages []chatMessage    `json:"messages"`
	Stream   bool             `json:"stream"`
	Tools    []toolDefinition `json:"tools,omitempty"`
	Options  *options         `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role      string     `json:"role"`
	Content   string     `json:"content"`
	ToolCalls []toolCall `json:"tool_calls,omitempty"`
}

// toolCall is the Ollama tool invocation format. Ollama assigns no call
// identifiers; the adapter synthesises them.
type toolCall struct {
	Function struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	} `json:"function"`
}

// toolDefinition is the Ollama tool declaration format.
type toolDefinition struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"function"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// NewLLMService creates a new Ollama LLM service.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
	}
}

// Generate runs one /api/chat call. The system prompt travels as a
// leading system message; tool results travel as "tool" role messages.
func (s *LLMService) Generate(ctx context.Context, genReq *driven.GenerateRequest) (*driven.GenerateResponse, error) {
	reqBody := chatRequest{
		Model:    s.model,
		Messages: encodeMessages(genReq.System, genReq.Messages),
		Stream:   false,
	}
	for _, spec := range genReq.Tools {
		var def toolDefinition
		def.Type = "function"
		def.Function.Name = spec.Name
		def.Function.Description = spec.Description
		def.Function.Parameters = spec.InputSchema
		reqBody.Tools = append(reqBody.Tools, def)
	}
	if genReq.MaxTokens > 0 || genReq.Temperature > 0 {
		reqBody.Options = &options{
			NumPredict:  genReq.MaxTokens,
			Temperature: genReq.Temperature,
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return decodeResponse(&chatResp), nil
}

// encodeMessages converts domain conversation turns to the wire format.
func encodeMessages(system string, messages []domain.ChatMessage) []chatMessage {
	apiMessages := make([]chatMessage, 0, len(messages)+1)
	if system != "" {
		apiMessages = append(apiMessages, chatMessage{Role: "system", Content: system})
	}
	for _, msg := range messages {
		switch {
		case len(msg.ToolCalls) > 0:
			m := chatMessage{Role: msg.Role, Content: msg.Content}
			for _, call := range msg.ToolCalls {
				var tc toolCall
				tc.Function.Name = call.Name
				tc.Function.Arguments = call.Input
				m.ToolCalls = append(m.ToolCalls, tc)
			}
			apiMessages = append(apiMessages, m)

		case len(msg.ToolResults) > 0:
			for _, result := range msg.ToolResults {
				apiMessages = append(apiMessages, chatMessage{
					Role:    "tool",
					Content: result.Content,
				})
			}

		default:
			apiMessages = append(apiMessages, chatMessage{Role: msg.Role, Content: msg.Content})
		}
	}
	return apiMessages
}

// decodeResponse maps the reply into the port's shape, synthesising call
// identifiers so the orchestrator can correlate results.
func decodeResponse(chatResp *chatResponse) *driven.GenerateResponse {
	var calls []domain.ToolCall
	for i, tc := range chatResp.Message.ToolCalls {
		calls = append(calls, domain.ToolCall{
			ID:    fmt.Sprintf("call_%d", i),
			Name:  tc.Function.Name,
			Input: tc.Function.Arguments,
		})
	}

	stopReason := driven.StopReasonEndTurn
	if len(calls) > 0 {
		stopReason = driven.StopReasonToolUse
	}

	return &driven.GenerateResponse{
		Text:       strings.TrimSpace(chatResp.Message.Content),
		ToolCalls:  calls,
		StopReason: stopReason,
	}
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
