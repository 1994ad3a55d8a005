package ai21

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
	providerName = "ai21"

	defaultBaseURL = "https://api.ai21.com/studio/v1"

	chatCompletionsEndpoint = "/chat/completions"

	// DefaultModel is used when no model is configured.
	DefaultModel = "j2-light"
)

var allowedModels = []string{
	"j2-light",
	"j2-light-instruct",
	"j2-mid",
	"j2-mid-instruct",
	"j2-ultra",
	"j2-ultra-instruct",
	"j2-grande-chat",
	"j2-jumbo-chat",
	"jamba-instruct",
}

var supportedOptions = []ai.OptionName{
	ai.OptionTemperature,
	ai.OptionMaxTokens,
	ai.OptionTopP,
	ai.OptionStop,
	ai.OptionN,
	ai.OptionStream,
}

var errEmptyChoices = errors.New("response contains no choices")

func defaultOptions() ai.PredictOptions {
	return ai.PredictOptions{
		Temperature: utils.Ptr(0.7),
		MaxTokens:   utils.Ptr(256),
		TopP:        utils.Ptr(1.0),
		Stop:        []string{"\n"},
		N:           utils.Ptr(1),
		Stream:      utils.Ptr(false),
	}
}

// AI21Provider implements [ai.Adapter] for AI21 Studio.
type AI21Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns an AI21Provider configured from AI21_API_KEY and
// AI21_API_BASE_URL, using [DefaultModel].
func New() *AI21Provider {
	baseURL := os.Getenv("AI21_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &AI21Provider{
		apiKey:  os.Getenv("AI21_API_KEY"),
		baseURL: baseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
}

var _ ai.Adapter = (*AI21Provider)(nil)

// WithAPIKey sets the API key for the provider.
func (p *AI21Provider) WithAPIKey(apiKey string) *AI21Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the API base URL, e.g. to point at a proxy or test server.
func (p *AI21Provider) WithBaseURL(baseURL string) *AI21Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the HTTP client, e.g. to set timeouts.
func (p *AI21Provider) WithHttpClient(httpClient *http.Client) *AI21Provider {
	p.client = httpClient
	return p
}

// WithModel selects the model sent with each request.
func (p *AI21Provider) WithModel(model string) *AI21Provider {
	p.model = model
	return p
}

// Name returns the provider identifier used in errors and traces.
func (p *AI21Provider) Name() string { return providerName }

// Model returns the configured model.
func (p *AI21Provider) Model() string { return p.model }

// AllowedModels lists the models AI21 accepts.
func (p *AI21Provider) AllowedModels() []string {
	return append([]string(nil), allowedModels...)
}

// SupportedOptions lists the predict options sent to the API; others are dropped.
func (p *AI21Provider) SupportedOptions() []ai.OptionName {
	return append([]ai.OptionName(nil), supportedOptions...)
}

// Predict sends the conversation to AI21 and appends the first choice as an
// assistant message. With stream enabled n must be 1.
func (p *AI21Provider) Predict(ctx context.Context, conversation *ai.Conversation, opts ...ai.PredictOption) (_ *ai.Conversation, err error) {
	if conversation == nil || conversation.Len() == 0 {
		return nil, ai.ErrEmptyConversation
	}

	ctx, finish := ai.StartPredict(ctx, p, conversation)
	defer func() { finish(err) }()

	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: AI21_API_KEY", ai.ErrMissingAPIKey)
	}

	options := ai.ResolveOptions(ctx, p, defaultOptions(), opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	stream := options.Stream != nil && *options.Stream
	if stream && options.N != nil && *options.N != 1 {
		return nil, fmt.Errorf("%w: streaming requires n=1, got n=%d", ai.ErrInvalidOption, *options.N)
	}

	request, err := buildRequest(p.model, conversation, options)
	if err != nil {
		return nil, err
	}

	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "AI21 provider preparing request",
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.Messages)),
			observability.Bool(observability.AttrLLMStream, stream),
		)
	}

	var content string
	if stream {
		content, err = p.streamChat(ctx, request)
	} else {
		content, err = p.sendChat(ctx, request)
	}
	if err != nil {
		return nil, err
	}

	ai.Commit(ctx, conversation, ai.NewAgentMessage(content))
	return conversation, nil
}

func (p *AI21Provider) sendChat(ctx context.Context, request chatRequest) (string, error) {
	_, response, err := utils.DoPostSync[chatResponse](ctx, p.client, p.baseURL+chatCompletionsEndpoint, p.apiKey, request)
	if err != nil {
		return "", ai.NewProviderRequestError(providerName, err)
	}
	if len(response.Choices) == 0 {
		return "", ai.NewProviderRequestError(providerName, errEmptyChoices)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, response.ID),
			observability.String(observability.AttrLLMFinishReason, response.Choices[0].FinishReason),
		)
		recordUsage(span, response.Usage)
	}

	return response.Choices[0].Message.Content, nil
}

func recordUsage(span observability.Span, u *usage) {
	if u == nil {
		return
	}
	span.AddEvent(observability.EventTokensReceived,
		observability.Int(observability.AttrLLMTokensPrompt, u.PromptTokens),
		observability.Int(observability.AttrLLMTokensCompletion, u.CompletionTokens),
		observability.Int(observability.AttrLLMTokensTotal, u.TotalTokens),
	)
}
