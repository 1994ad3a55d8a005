package shuttleai

import (
	"slices"

	"github.com/leofalp/llmadapt/providers/ai"
)

// roles passes every conversation role through unchanged.
var roles = ai.RoleTable{
	ai.RoleSystem:    "system",
	ai.RoleUser:      "user",
	ai.RoleAssistant: "assistant",
	ai.RoleTool:      "tool",
}

// bingModels are the only models that accept tone and citations.
var bingModels = []string{"gpt-4-bing", "gpt-4-turbo-bing"}

// formatMessages converts history to wire messages. Conversations store tool
// results ahead of the assistant message that requested them; OpenAI-style
// endpoints expect the reverse, so such a run is re-emitted with the calling
// message first.
func formatMessages(history []ai.Message) ([]chatMessage, error) {
	messages := make([]chatMessage, 0, len(history))
	var pending []chatMessage
	for _, message := range history {
		role, err := roles.WireRole(message.Role)
		if err != nil {
			return nil, err
		}
		wire := chatMessage{
			Role:       role,
			Content:    message.Content,
			Name:       message.Name,
			ToolCallID: message.ToolCallID,
			ToolCalls:  message.ToolCalls,
		}

		if message.Role == ai.RoleTool {
			pending = append(pending, wire)
			continue
		}
		if len(pending) > 0 && answersAll(message.ToolCalls, pending) {
			messages = append(messages, wire)
			messages = append(messages, pending...)
			pending = nil
			continue
		}
		messages = append(messages, pending...)
		pending = nil
		messages = append(messages, wire)
	}
	return append(messages, pending...), nil
}

// answersAll reports whether every tool result in results refers to one of calls.
func answersAll(calls []ai.ToolCall, results []chatMessage) bool {
	if len(calls) == 0 {
		return false
	}
	for _, result := range results {
		if !slices.ContainsFunc(calls, func(call ai.ToolCall) bool { return call.ID == result.ToolCallID }) {
			return false
		}
	}
	return true
}

func buildRequest(model string, conversation *ai.Conversation, options ai.PredictOptions) (chatRequest, error) {
	messages, err := formatMessages(conversation.History())
	if err != nil {
		return chatRequest{}, err
	}

	request := chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
		TopP:        options.TopP,
		Internet:    options.ExtraBool(string(OptionInternet), true),
		Raw:         options.ExtraBool(string(OptionRaw), false),
		Image:       options.ExtraString(string(OptionImage), ""),
	}

	if options.Toolkit != nil {
		tools, err := ai.ConvertTools(SchemaConverter{}, options.Toolkit)
		if err != nil {
			return chatRequest{}, err
		}
		request.Tools = tools
		request.ToolChoice = options.ToolChoice
		if request.ToolChoice == "" {
			request.ToolChoice = "auto"
		}
	}

	if slices.Contains(bingModels, model) {
		citations := options.ExtraBool(string(OptionCitations), true)
		request.Citations = &citations
		request.Tone = options.ExtraString(string(OptionTone), "precise")
	}

	return request, nil
}
