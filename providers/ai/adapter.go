package ai

import (
	"context"
	"slices"
)

// Adapter drives one provider through the shared Conversation contract.
//
// Predict formats the conversation for the provider, sends one request,
// resolves any tool calls against the configured toolkit and appends the
// resulting messages to conversation, returning the same pointer. When it
// returns an error the conversation is unchanged.
type Adapter interface {
	Predict(ctx context.Context, conversation *Conversation, opts ...PredictOption) (*Conversation, error)

	// Name is the provider identifier, e.g. "cohere".
	Name() string

	// Model is the model requests are sent to.
	Model() string

	// AllowedModels lists the models the adapter is known to work with.
	// Requesting another model is left to the provider to reject.
	AllowedModels() []string

	// SupportedOptions lists the options the adapter forwards to its
	// provider. Other options are dropped from the payload.
	SupportedOptions() []OptionName
}

// IsAllowedModel reports whether model is in the adapter's allow-list.
func IsAllowedModel(adapter Adapter, model string) bool {
	return slices.Contains(adapter.AllowedModels(), model)
}
