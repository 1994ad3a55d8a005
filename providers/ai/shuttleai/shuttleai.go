package shuttleai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/llmadapt/internal/utils"
	"github.com/leofalp/llmadapt/providers/ai"
	"github.com/leofalp/llmadapt/providers/observability"
)

const (
	providerName = "shuttleai"

	defaultBaseURL = "https://api.shuttleai.app/v1"

	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when no model is configured.
	DefaultModel = "shuttle-2-turbo"
)

var allowedModels = []string{
	"shuttle-2-turbo",
	"gpt-4-turbo-2024-04-09",
	"gpt-4-0125-preview",
	"gpt-4-1106-preview",
	"gpt-4-0613",
	"gpt-3.5-turbo-0125",
	"gpt-3.5-turbo-1106",
	"claude-instant-1.1",
	"wizardlm-2-8x22b",
	"mistral-7b-instruct-v0.2",
	"gemini-1.5-pro-latest",
	"gemini-1.0-pro-latest",
}

var supportedOptions = []ai.OptionName{
	ai.OptionTemperature,
	ai.OptionMaxTokens,
	ai.OptionTopP,
	ai.OptionToolkit,
	ai.OptionToolChoice,
	OptionInternet,
	OptionRaw,
	OptionImage,
	OptionCitations,
	OptionTone,
}

var errEmptyChoices = errors.New("response contains no choices")

func defaultOptions() ai.PredictOptions {
	return ai.PredictOptions{
		Temperature: utils.Ptr(0.7),
		MaxTokens:   utils.Ptr(1024),
		TopP:        utils.Ptr(1.0),
		Extra: map[string]any{
			string(OptionInternet):  true,
			string(OptionRaw):       false,
			string(OptionCitations): true,
			string(OptionTone):      "precise",
		},
	}
}

// ShuttleAIProvider implements [ai.Adapter] for ShuttleAI.
type ShuttleAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns a ShuttleAIProvider configured from SHUTTLEAI_API_KEY and
// SHUTTLEAI_API_BASE_URL, using [DefaultModel].
func New() *ShuttleAIProvider {
	baseURL := os.Getenv("SHUTTLEAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &ShuttleAIProvider{
		apiKey:  os.Getenv("SHUTTLEAI_API_KEY"),
		baseURL: baseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
}

var _ ai.Adapter = (*ShuttleAIProvider)(nil)

// WithAPIKey sets the API key for the provider.
func (p *ShuttleAIProvider) WithAPIKey(apiKey string) *ShuttleAIProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the API base URL, e.g. to point at a proxy or test server.
func (p *ShuttleAIProvider) WithBaseURL(baseURL string) *ShuttleAIProvider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the HTTP client, e.g. to set timeouts.
func (p *ShuttleAIProvider) WithHttpClient(httpClient *http.Client) *ShuttleAIProvider {
	p.client = httpClient
	return p
}

// WithModel selects the model sent with each request.
func (p *ShuttleAIProvider) WithModel(model string) *ShuttleAIProvider {
	p.model = model
	return p
}

// Name returns the provider identifier used in errors and traces.
func (p *ShuttleAIProvider) Name() string { return providerName }

// Model returns the configured model.
func (p *ShuttleAIProvider) Model() string { return p.model }

// AllowedModels lists the models ShuttleAI accepts.
func (p *ShuttleAIProvider) AllowedModels() []string {
	return append([]string(nil), allowedModels...)
}

// SupportedOptions lists the predict options sent to the API; others are dropped.
func (p *ShuttleAIProvider) SupportedOptions() []ai.OptionName {
	return append([]ai.OptionName(nil), supportedOptions...)
}

// Predict sends the conversation to ShuttleAI. If the reply requests tools,
// they are executed once against the toolkit and their results are appended
// before the assistant message; no follow-up request is made.
func (p *ShuttleAIProvider) Predict(ctx context.Context, conversation *ai.Conversation, opts ...ai.PredictOption) (_ *ai.Conversation, err error) {
	if conversation == nil || conversation.Len() == 0 {
		return nil, ai.ErrEmptyConversation
	}

	ctx, finish := ai.StartPredict(ctx, p, conversation)
	defer func() { finish(err) }()

	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: SHUTTLEAI_API_KEY", ai.ErrMissingAPIKey)
	}

	options := ai.ResolveOptions(ctx, p, defaultOptions(), opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	request, err := buildRequest(p.model, conversation, options)
	if err != nil {
		return nil, err
	}

	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "ShuttleAI provider preparing request",
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
			observability.Int(observability.AttrRequestToolsCount, len(request.Tools)),
		)
	}

	_, response, err := utils.DoPostSync[chatResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, request)
	if err != nil {
		return nil, ai.NewProviderRequestError(providerName, err)
	}
	if len(response.Choices) == 0 {
		return nil, ai.NewProviderRequestError(providerName, errEmptyChoices)
	}
	reply := response.Choices[0]

	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, response.ID),
			observability.String(observability.AttrLLMFinishReason, reply.FinishReason),
			observability.Int(observability.AttrResponseToolCalls, len(reply.Message.ToolCalls)),
		)
		if response.Usage != nil {
			span.AddEvent(observability.EventTokensReceived,
				observability.Int(observability.AttrLLMTokensPrompt, response.Usage.PromptTokens),
				observability.Int(observability.AttrLLMTokensCompletion, response.Usage.CompletionTokens),
				observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens),
			)
		}
	}

	var toolMessages []ai.Message
	toolCalls := reply.Message.ToolCalls
	if len(toolCalls) > 0 {
		toolCalls, toolMessages, err = ai.RunToolCalls(ctx, options.Toolkit, toolCalls)
		if err != nil {
			return nil, err
		}
	}

	ai.Commit(ctx, conversation, append(toolMessages, ai.NewAgentMessage(reply.Message.Content, toolCalls...))...)
	return conversation, nil
}
