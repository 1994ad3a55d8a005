package cohere

import (
	"github.com/leofalp/llmadapt/providers/ai"
)

// roles maps conversation roles to Cohere's uppercase vocabulary.
var roles = ai.RoleTable{
	ai.RoleUser:      "USER",
	ai.RoleAssistant: "CHATBOT",
	ai.RoleTool:      "TOOL",
}

// formatHistory maps messages to chat_history entries, skipping system
// messages.
func formatHistory(messages []ai.Message) ([]chatMessage, error) {
	history := make([]chatMessage, 0, len(messages))
	for _, message := range messages {
		if message.Role == ai.RoleSystem {
			continue
		}
		role, err := roles.WireRole(message.Role)
		if err != nil {
			return nil, err
		}
		history = append(history, chatMessage{Role: role, Message: message.Content})
	}
	return history, nil
}

// buildRequest splits the conversation into current turn and history. The
// current turn is the last non-system message.
func buildRequest(model string, conversation *ai.Conversation, options ai.PredictOptions) (chatRequest, error) {
	turns := conversation.WithoutRole(ai.RoleSystem)
	if len(turns) == 0 {
		return chatRequest{}, ai.ErrEmptyConversation
	}

	current := turns[len(turns)-1]
	if _, err := roles.WireRole(current.Role); err != nil {
		return chatRequest{}, err
	}
	history, err := formatHistory(turns[:len(turns)-1])
	if err != nil {
		return chatRequest{}, err
	}

	preamble, _ := conversation.SystemContext()
	return chatRequest{
		Model:            model,
		Message:          current.Content,
		ChatHistory:      history,
		Preamble:         preamble,
		Temperature:      options.Temperature,
		MaxTokens:        options.MaxTokens,
		PromptTruncation: "OFF",
		Connectors:       []connector{},
	}, nil
}
