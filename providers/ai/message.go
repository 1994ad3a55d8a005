package ai

// MessageRole represents the role of a message; compatible with string
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user message
	RoleAssistant MessageRole = "assistant" // Model reply
	RoleTool      MessageRole = "tool"      // Tool/function output
)

// Message is one conversational turn. Messages are values; once appended to a
// Conversation they are never modified.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`

	// Tool calling fields
	Name       string     `json:"name,omitempty"`         // For role=tool, name of the tool that produced Content
	ToolCallID string     `json:"tool_call_id,omitempty"` // For role=tool, links to the tool call being answered
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`   // For role=assistant requesting tools
}

// ToolCall represents a function/tool call request from the model
type ToolCall struct {
	ID       string           `json:"id,omitempty"`
	Type     string           `json:"type"` // "function"
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction names the function a model wants to call and its raw JSON arguments.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON as returned by the provider
}

// NewSystemMessage builds a system instruction.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage builds a user turn.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAgentMessage wraps a model reply, optionally carrying the tool calls the
// model requested in the same turn.
func NewAgentMessage(content string, toolCalls ...ToolCall) Message {
	message := Message{Role: RoleAssistant, Content: content}
	if len(toolCalls) > 0 {
		message.ToolCalls = append([]ToolCall(nil), toolCalls...)
	}
	return message
}

// NewToolMessage wraps a tool result answering the call identified by callID.
func NewToolMessage(toolName, callID, content string) Message {
	return Message{Role: RoleTool, Name: toolName, ToolCallID: callID, Content: content}
}

// clone returns m with its own copy of ToolCalls.
func (m Message) clone() Message {
	if m.ToolCalls != nil {
		m.ToolCalls = append([]ToolCall(nil), m.ToolCalls...)
	}
	return m
}
