package driven

import (
	"context"

	"github.com/studyhall-labs/coursechat-cli/internal/core/domain"
)

// Stop reasons reported by GenerateResponse.
const (
	// StopReasonEndTurn means the model produced a terminal answer.
	StopReasonEndTurn = "end_turn"

	// StopReasonToolUse means the model requests tool invocations and
	// expects their results in a follow-up turn.
	StopReasonToolUse = "tool_use"
)

// GenerateRequest is one language model invocation.
type GenerateRequest struct {
	// System is the system prompt.
	System string

	// Messages are the ordered conversation turns, oldest first.
	Messages []domain.ChatMessage

	// Tools declares the tools the model may request. Empty means tool
	// use is not permitted for this call.
	Tools []domain.ToolSpec

	// MaxTokens caps the generation length.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64
}

// GenerateResponse is the model's reply: either terminal text or a set of
// requested tool calls (with any preamble text the model emitted).
type GenerateResponse struct {
	// Text is the concatenated text content of the reply.
	Text string

	// ToolCalls are the tool invocations the model requests, empty for
	// a terminal answer.
	ToolCalls []domain.ToolCall

	// StopReason is StopReasonEndTurn or StopReasonToolUse.
	StopReason string
}

// LLMService is the remote language model capability.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Generate runs one model invocation. A failure is surfaced to the
	// caller as-is; no retries happen at this layer.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
