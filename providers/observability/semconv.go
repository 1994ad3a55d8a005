package observability

// Semantic conventions for observability attributes.
// Components should use these names so traces and logs stay consistent
// across adapters, tools and stores.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "ai21", "cohere")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMResponseID is the unique response identifier from the provider
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"

	// AttrLLMTemperature is the sampling temperature used
	AttrLLMTemperature = "llm.temperature"

	// AttrLLMMaxTokens is the maximum tokens allowed
	AttrLLMMaxTokens = "llm.max_tokens" // #nosec G101 -- Not a credential

	// AttrLLMStream reports whether the request was streamed
	AttrLLMStream = "llm.stream"

	// AttrLLMIgnoredOption names an option the adapter does not support
	AttrLLMIgnoredOption = "llm.ignored_option"
)

// --- Token Usage Attributes ---

const (
	// AttrLLMTokensPrompt is the number of prompt tokens
	AttrLLMTokensPrompt = "llm.tokens.prompt" // #nosec G101 -- Not a credential

	// AttrLLMTokensCompletion is the number of completion tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- Not a credential

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential
)

// --- Tool Execution Attributes ---

const (
	AttrToolName     = "tool.name"
	AttrToolCallID   = "tool.call_id"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolDuration = "tool.duration"
	AttrToolError    = "tool.error"
)

// --- Conversation Attributes ---

const (
	// AttrConversationLength is the number of messages in the conversation
	AttrConversationLength = "conversation.length"

	// AttrRequestMessagesCount is the number of messages sent in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrRequestToolsCount is the number of tools sent in the request
	AttrRequestToolsCount = "request.tools_count"

	// AttrResponseToolCalls is the number of tool calls in the response
	AttrResponseToolCalls = "response.tool_calls"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
	AttrHTTPRequestDuration  = "http.request.duration"
)

// --- Document Attributes ---

const (
	AttrDocumentID   = "document.id"
	AttrDocumentType = "document.type"
	AttrStoreBackend = "store.backend"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	SpanPredict       = "adapter.predict"
	SpanToolExecution = "tool.execution"
)

// --- Event Names ---

const (
	EventLLMRequestStart    = "llm.request.start"
	EventLLMRequestEnd      = "llm.request.end"
	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"
	EventTokensReceived     = "llm.tokens.received" // #nosec G101 -- Not a credential
	EventConversationAppend = "conversation.append"
	EventDocumentPut        = "document.put"
	EventDocumentDelete     = "document.delete"
)
