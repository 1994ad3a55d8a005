package cohere

type chatRequest struct {
	Model            string        `json:"model"`
	Message          string        `json:"message"`
	ChatHistory      []chatMessage `json:"chat_history"`
	Preamble         string        `json:"preamble,omitempty"`
	Temperature      *float64      `json:"temperature,omitempty"`
	MaxTokens        *int          `json:"max_tokens,omitempty"`
	PromptTruncation string        `json:"prompt_truncation"`
	Connectors       []connector   `json:"connectors"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type connector struct {
	ID string `json:"id"`
}

type chatResponse struct {
	ResponseID   string  `json:"response_id"`
	GenerationID string  `json:"generation_id"`
	Text         *string `json:"text"`
	FinishReason string  `json:"finish_reason"`
	Meta         *meta   `json:"meta,omitempty"`
}

type meta struct {
	BilledUnits *billedUnits `json:"billed_units,omitempty"`
}

type billedUnits struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
