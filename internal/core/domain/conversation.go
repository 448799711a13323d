package domain

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one conversation turn. Plain turns carry only Content.
// An assistant turn that requested tools carries ToolCalls; the user turn
// answering it carries ToolResults. Adapters map these onto the wire
// format of the provider.
type ChatMessage struct {
	// Role is RoleUser or RoleAssistant.
	Role string

	// Content is the message text.
	Content string

	// ToolCalls are tool invocations requested by an assistant turn.
	ToolCalls []ToolCall

	// ToolResults are tool outputs echoed back in a user turn.
	ToolResults []ToolResult
}

// ToolSpec declares a tool to the language model.
type ToolSpec struct {
	// Name is the tool name the model invokes it by.
	Name string

	// Description tells the model when to use the tool.
	Description string

	// InputSchema is the JSON schema of the tool arguments.
	InputSchema map[string]any
}

// ToolCall is a structured request from the model to invoke a tool.
type ToolCall struct {
	// ID is the opaque call identifier that must be echoed back with
	// the result.
	ID string

	// Name is the requested tool.
	Name string

	// Input holds the decoded tool arguments.
	Input map[string]any
}

// ToolResult is the text outcome of one tool call.
type ToolResult struct {
	// CallID echoes the ToolCall.ID this result answers.
	CallID string

	// Content is the tool's text result, or an explanatory error text.
	Content string

	// IsError marks results that report a failure. The model still
	// receives the text and can react to it.
	IsError bool
}
