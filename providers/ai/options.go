package ai

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/leofalp/llmadapt/providers/observability"
)

// OptionName identifies a generation option, matching the wire name most
// providers use for it.
type OptionName string

const (
	OptionTemperature OptionName = "temperature"
	OptionMaxTokens   OptionName = "max_tokens"
	OptionTopP        OptionName = "top_p"
	OptionStop        OptionName = "stop"
	OptionN           OptionName = "n"
	OptionStream      OptionName = "stream"
	OptionToolkit     OptionName = "toolkit"
	OptionToolChoice  OptionName = "tool_choice"
)

// PredictOptions holds the generation settings for one Predict call. Nil
// fields are unset; adapters fill them from their own defaults.
type PredictOptions struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
	Stop        []string
	N           *int
	Stream      *bool
	Toolkit     Toolkit
	ToolChoice  string

	// Extra carries provider-specific settings keyed by wire name. Provider
	// packages expose typed constructors that populate it.
	Extra map[string]any
}

// PredictOption mutates PredictOptions.
type PredictOption func(*PredictOptions)

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) PredictOption {
	return func(o *PredictOptions) { o.Temperature = &temperature }
}

// WithMaxTokens caps the number of generated tokens.
func WithMaxTokens(maxTokens int) PredictOption {
	return func(o *PredictOptions) { o.MaxTokens = &maxTokens }
}

// WithTopP sets nucleus sampling.
func WithTopP(topP float64) PredictOption {
	return func(o *PredictOptions) { o.TopP = &topP }
}

// WithStop sets the stop sequences.
func WithStop(stop ...string) PredictOption {
	return func(o *PredictOptions) { o.Stop = append([]string{}, stop...) }
}

// WithN sets how many completions to sample.
func WithN(n int) PredictOption {
	return func(o *PredictOptions) { o.N = &n }
}

// WithStream requests a streamed response where the adapter supports it.
func WithStream(stream bool) PredictOption {
	return func(o *PredictOptions) { o.Stream = &stream }
}

// WithToolkit exposes the toolkit's tools to the model and enables the tool
// round trip.
func WithToolkit(toolkit Toolkit) PredictOption {
	return func(o *PredictOptions) { o.Toolkit = toolkit }
}

// WithToolChoice overrides the tool_choice sent with a toolkit ("auto" by default).
func WithToolChoice(choice string) PredictOption {
	return func(o *PredictOptions) { o.ToolChoice = choice }
}

// WithExtra sets a provider-specific option.
func WithExtra(name string, value any) PredictOption {
	return func(o *PredictOptions) {
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[name] = value
	}
}

// NewPredictOptions applies opts to an empty PredictOptions.
func NewPredictOptions(opts ...PredictOption) PredictOptions {
	var options PredictOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// Requested returns the names of every option that is set, sorted.
func (o PredictOptions) Requested() []OptionName {
	var names []OptionName
	if o.Temperature != nil {
		names = append(names, OptionTemperature)
	}
	if o.MaxTokens != nil {
		names = append(names, OptionMaxTokens)
	}
	if o.TopP != nil {
		names = append(names, OptionTopP)
	}
	if o.Stop != nil {
		names = append(names, OptionStop)
	}
	if o.N != nil {
		names = append(names, OptionN)
	}
	if o.Stream != nil {
		names = append(names, OptionStream)
	}
	if o.Toolkit != nil {
		names = append(names, OptionToolkit)
	}
	if o.ToolChoice != "" {
		names = append(names, OptionToolChoice)
	}
	for name := range o.Extra {
		names = append(names, OptionName(name))
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Restrict returns a copy of o with every option outside supported cleared,
// together with the names that were dropped.
func (o PredictOptions) Restrict(supported []OptionName) (PredictOptions, []OptionName) {
	var dropped []OptionName
	for _, name := range o.Requested() {
		if slices.Contains(supported, name) {
			continue
		}
		dropped = append(dropped, name)
		switch name {
		case OptionTemperature:
			o.Temperature = nil
		case OptionMaxTokens:
			o.MaxTokens = nil
		case OptionTopP:
			o.TopP = nil
		case OptionStop:
			o.Stop = nil
		case OptionN:
			o.N = nil
		case OptionStream:
			o.Stream = nil
		case OptionToolkit:
			o.Toolkit = nil
		case OptionToolChoice:
			o.ToolChoice = ""
		}
	}

	if len(o.Extra) > 0 {
		extra := make(map[string]any, len(o.Extra))
		for name, value := range o.Extra {
			if slices.Contains(supported, OptionName(name)) {
				extra[name] = value
			}
		}
		o.Extra = extra
	}
	return o, dropped
}

// WithDefaults fills every unset field of o from defaults.
func (o PredictOptions) WithDefaults(defaults PredictOptions) PredictOptions {
	if o.Temperature == nil {
		o.Temperature = defaults.Temperature
	}
	if o.MaxTokens == nil {
		o.MaxTokens = defaults.MaxTokens
	}
	if o.TopP == nil {
		o.TopP = defaults.TopP
	}
	if o.Stop == nil {
		o.Stop = defaults.Stop
	}
	if o.N == nil {
		o.N = defaults.N
	}
	if o.Stream == nil {
		o.Stream = defaults.Stream
	}
	if o.Toolkit == nil {
		o.Toolkit = defaults.Toolkit
	}
	if o.ToolChoice == "" {
		o.ToolChoice = defaults.ToolChoice
	}

	merged := make(map[string]any, len(defaults.Extra)+len(o.Extra))
	for name, value := range defaults.Extra {
		merged[name] = value
	}
	for name, value := range o.Extra {
		merged[name] = value
	}
	o.Extra = merged
	return o
}

// ResolveOptions is the option pipeline every adapter runs: apply opts, drop
// and log what the adapter does not support, then fill in its defaults.
func ResolveOptions(ctx context.Context, adapter Adapter, defaults PredictOptions, opts ...PredictOption) PredictOptions {
	requested, dropped := NewPredictOptions(opts...).Restrict(adapter.SupportedOptions())

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		for _, name := range dropped {
			observer.Debug(ctx, "Ignoring unsupported option",
				observability.String(observability.AttrLLMProvider, adapter.Name()),
				observability.String(observability.AttrLLMIgnoredOption, string(name)),
			)
		}
	}

	return requested.WithDefaults(defaults)
}

// ExtraBool returns the boolean provider option name, or fallback when it
// is unset or not a bool.
func (o PredictOptions) ExtraBool(name string, fallback bool) bool {
	if value, ok := o.Extra[name].(bool); ok {
		return value
	}
	return fallback
}

// ExtraString returns the string provider option name, or fallback.
func (o PredictOptions) ExtraString(name string, fallback string) string {
	if value, ok := o.Extra[name].(string); ok {
		return value
	}
	return fallback
}

// Validate rejects values no provider accepts.
func (o PredictOptions) Validate() error {
	if o.MaxTokens != nil && *o.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be positive, got %d", ErrInvalidOption, *o.MaxTokens)
	}
	if o.N != nil && *o.N <= 0 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidOption, *o.N)
	}
	if o.TopP != nil && (*o.TopP < 0 || *o.TopP > 1) {
		return fmt.Errorf("%w: top_p must be within [0, 1], got %v", ErrInvalidOption, *o.TopP)
	}
	if o.Temperature != nil && *o.Temperature < 0 {
		return fmt.Errorf("%w: temperature must not be negative, got %v", ErrInvalidOption, *o.Temperature)
	}
	return nil
}
