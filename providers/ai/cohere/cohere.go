package cohere

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
	providerName = "cohere"

	defaultBaseURL = "https://api.cohere.ai/v1"

	chatEndpoint = "/chat"

	// DefaultModel is used when no model is configured.
	DefaultModel = "command-light"
)

var allowedModels = []string{
	"command-light",
	"command",
	"command-r",
	"command-r-plus",
}

var supportedOptions = []ai.OptionName{
	ai.OptionTemperature,
	ai.OptionMaxTokens,
}

var errMissingText = errors.New("response has no text field")

func defaultOptions() ai.PredictOptions {
	return ai.PredictOptions{
		Temperature: utils.Ptr(0.7),
		MaxTokens:   utils.Ptr(256),
	}
}

// CohereProvider implements [ai.Adapter] for Cohere.
type CohereProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns a CohereProvider configured from COHERE_API_KEY and
// COHERE_API_BASE_URL, using [DefaultModel].
func New() *CohereProvider {
	baseURL := os.Getenv("COHERE_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &CohereProvider{
		apiKey:  os.Getenv("COHERE_API_KEY"),
		baseURL: baseURL,
		model:   DefaultModel,
		client:  &http.Client{},
	}
}

var _ ai.Adapter = (*CohereProvider)(nil)

// WithAPIKey sets the API key for the provider.
func (p *CohereProvider) WithAPIKey(apiKey string) *CohereProvider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the API base URL, e.g. to point at a proxy or test server.
func (p *CohereProvider) WithBaseURL(baseURL string) *CohereProvider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the HTTP client, e.g. to set timeouts.
func (p *CohereProvider) WithHttpClient(httpClient *http.Client) *CohereProvider {
	p.client = httpClient
	return p
}

// WithModel selects the model sent with each request.
func (p *CohereProvider) WithModel(model string) *CohereProvider {
	p.model = model
	return p
}

// Name returns the provider identifier used in errors and traces.
func (p *CohereProvider) Name() string { return providerName }

// Model returns the configured model.
func (p *CohereProvider) Model() string { return p.model }

// AllowedModels lists the models Cohere accepts.
func (p *CohereProvider) AllowedModels() []string {
	return append([]string(nil), allowedModels...)
}

// SupportedOptions lists the predict options sent to the API; others are dropped.
func (p *CohereProvider) SupportedOptions() []ai.OptionName {
	return append([]ai.OptionName(nil), supportedOptions...)
}

// Predict sends the conversation to Cohere and appends the reply text as an
// assistant message.
func (p *CohereProvider) Predict(ctx context.Context, conversation *ai.Conversation, opts ...ai.PredictOption) (_ *ai.Conversation, err error) {
	if conversation == nil || conversation.Len() == 0 {
		return nil, ai.ErrEmptyConversation
	}

	ctx, finish := ai.StartPredict(ctx, p, conversation)
	defer func() { finish(err) }()

	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: COHERE_API_KEY", ai.ErrMissingAPIKey)
	}

	options := ai.ResolveOptions(ctx, p, defaultOptions(), opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	request, err := buildRequest(p.model, conversation, options)
	if err != nil {
		return nil, err
	}

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Trace(ctx, "Cohere provider preparing request",
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, p.model),
			observability.Int(observability.AttrRequestMessagesCount, len(request.ChatHistory)+1),
		)
	}

	_, response, err := utils.DoPostSync[chatResponse](ctx, p.client, p.baseURL+chatEndpoint, p.apiKey, request)
	if err != nil {
		return nil, ai.NewProviderRequestError(providerName, err)
	}
	if response.Text == nil {
		return nil, ai.NewProviderRequestError(providerName, errMissingText)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, response.ResponseID),
			observability.String(observability.AttrLLMFinishReason, response.FinishReason),
		)
		if response.Meta != nil && response.Meta.BilledUnits != nil {
			units := response.Meta.BilledUnits
			span.AddEvent(observability.EventTokensReceived,
				observability.Int(observability.AttrLLMTokensPrompt, units.InputTokens),
				observability.Int(observability.AttrLLMTokensCompletion, units.OutputTokens),
				observability.Int(observability.AttrLLMTokensTotal, units.InputTokens+units.OutputTokens),
			)
		}
	}

	ai.Commit(ctx, conversation, ai.NewAgentMessage(*response.Text))
	return conversation, nil
}
