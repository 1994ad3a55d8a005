package ai21

import (
	"github.com/leofalp/llmadapt/providers/ai"
)

// roles lists what AI21 accepts in the messages array. System messages are
// hoisted and never appear there.
var roles = ai.RoleTable{
	ai.RoleUser:      "user",
	ai.RoleAssistant: "assistant",
}

// formatMessages returns the non-system turns mapped to AI21 roles together
// with the content of the last system message.
func formatMessages(history []ai.Message) ([]chatMessage, string, error) {
	messages := make([]chatMessage, 0, len(history))
	system := ""
	for _, message := range history {
		if message.Role == ai.RoleSystem {
			system = message.Content
			continue
		}
		role, err := roles.WireRole(message.Role)
		if err != nil {
			return nil, "", err
		}
		messages = append(messages, chatMessage{Role: role, Content: message.Content})
	}
	return messages, system, nil
}

func buildRequest(model string, conversation *ai.Conversation, options ai.PredictOptions) (chatRequest, error) {
	messages, system, err := formatMessages(conversation.History())
	if err != nil {
		return chatRequest{}, err
	}

	request := chatRequest{
		Model:       model,
		Messages:    messages,
		System:      system,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		TopP:        options.TopP,
		Stop:        options.Stop,
		N:           options.N,
	}
	if options.Stream != nil {
		request.Stream = *options.Stream
	}
	return request, nil
}
