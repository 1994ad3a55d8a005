package ai21

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leofalp/llmadapt/internal/utils"
	"github.com/leofalp/llmadapt/providers/ai"
	"github.com/leofalp/llmadapt/providers/observability"
)

// streamChat reads the whole SSE stream and returns the concatenated deltas
// of the first choice.
func (p *AI21Provider) streamChat(ctx context.Context, request chatRequest) (string, error) {
	response, err := utils.DoPostStream(ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, request)
	if err != nil {
		return "", ai.NewProviderRequestError(providerName, err)
	}
	defer utils.CloseWithLog(response.Body)

	span := observability.SpanFromContext(ctx)
	scanner := utils.NewSSEScanner(response.Body)

	var content strings.Builder
	sawChoice := false
	for {
		payload, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", ai.NewProviderRequestError(providerName, err)
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return "", ai.NewProviderRequestError(providerName, fmt.Errorf("malformed stream chunk: %w", err))
		}

		for _, choice := range chunk.Choices {
			if choice.Index != 0 {
				continue
			}
			sawChoice = true
			content.WriteString(choice.Delta.Content)
			if choice.FinishReason != "" && span != nil {
				span.SetAttributes(observability.String(observability.AttrLLMFinishReason, choice.FinishReason))
			}
		}
		if span != nil {
			recordUsage(span, chunk.Usage)
		}
	}

	if !sawChoice {
		return "", ai.NewProviderRequestError(providerName, errEmptyChoices)
	}
	return content.String(), nil
}
