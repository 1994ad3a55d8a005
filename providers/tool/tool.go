package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/leofalp/llmadapt/core/parse"
	"github.com/leofalp/llmadapt/internal/jsonschema"
	"github.com/leofalp/llmadapt/providers/ai"
	"github.com/leofalp/llmadapt/providers/observability"
)

// Tool is a typed function exposed to a model. Use [NewTool] to build one.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)

	lenient bool
}

// ErrMalformedArguments is returned by [Tool.Call] when a tool with a
// structured input receives arguments that are not valid JSON.
var ErrMalformedArguments = errors.New("malformed tool arguments")

var _ ai.Tool = (*Tool[struct{}, string])(nil)

type toolOptions struct {
	description string
	lenient     bool
}

// Option configures a tool built by [NewTool].
type Option func(*toolOptions)

// WithDescription sets the description shown to the model.
func WithDescription(description string) Option {
	return func(o *toolOptions) {
		o.description = description
	}
}

// WithLenientArguments makes [Tool.Call] repair arguments that are not valid
// JSON (unquoted keys, single quotes, trailing commas) instead of rejecting
// them. Truncated payloads may then decode with zero values.
func WithLenientArguments() Option {
	return func(o *toolOptions) {
		o.lenient = true
	}
}

// NewTool wraps function as a tool named name. It fails when the input
// type's JSON schema cannot be derived.
//
//	lookup, err := tool.NewTool("weather", getWeather,
//	    tool.WithDescription("Current weather for a city."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...Option) (*Tool[I, O], error) {
	if name == "" {
		return nil, fmt.Errorf("tool name must not be empty")
	}

	opts := &toolOptions{}
	for _, option := range options {
		option(opts)
	}

	parameters, err := jsonschema.GenerateJSONSchema[I]()
	if err != nil {
		return nil, fmt.Errorf("tool %q: input schema: %w", name, err)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: opts.description,
		Parameters:  parameters,
		Function:    function,
		lenient:     opts.lenient,
	}, nil
}

// ToolInfo describes the tool for the model.
func (t *Tool[I, O]) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call parses arguments into I, runs the function and returns its output:
// strings as-is, anything else as JSON. Structured inputs must arrive as
// valid JSON unless the tool was built with [WithLenientArguments].
func (t *Tool[I, O]) Call(ctx context.Context, arguments string) (string, error) {
	span := observability.SpanFromContext(ctx)

	input, err := t.parseArguments(arguments)
	if err != nil {
		if span != nil {
			span.SetAttributes(observability.String(observability.AttrToolError, err.Error()))
		}
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		if span != nil {
			span.SetAttributes(observability.String(observability.AttrToolError, err.Error()))
		}
		return "", err
	}

	if text, ok := any(output).(string); ok {
		return text, nil
	}
	encoded, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return string(encoded), nil
}

func (t *Tool[I, O]) parseArguments(arguments string) (I, error) {
	if !t.lenient && expectsJSON[I]() && !json.Valid([]byte(arguments)) {
		var zero I
		return zero, ErrMalformedArguments
	}
	return parse.ParseStringAs[I](arguments)
}

func expectsJSON[I any]() bool {
	switch reflect.TypeFor[I]().Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}
