package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/llmadapt/internal/utils"
	"github.com/leofalp/llmadapt/providers/observability"
)

var (
	errToolNotFound   = errors.New("tool not found in toolkit")
	errEmptyArguments = errors.New("tool call has no arguments")
	errNoToolkit      = errors.New("no toolkit configured")
)

// RunToolCalls executes a single round of tool calls against toolkit.
//
// Calls without an ID are assigned one. The returned calls carry the final
// IDs and the returned messages are the matching role=tool results, in call
// order. Nothing is returned on error: the first unresolved tool, empty
// argument payload or failing tool aborts the round with a
// *ToolInvocationError.
func RunToolCalls(ctx context.Context, toolkit Toolkit, calls []ToolCall) ([]ToolCall, []Message, error) {
	observer := observability.ObserverFromContext(ctx)

	resolved := make([]ToolCall, len(calls))
	results := make([]Message, 0, len(calls))

	for i, call := range calls {
		if call.ID == "" {
			call.ID = "call_" + uuid.New().String()
		}
		if call.Type == "" {
			call.Type = "function"
		}
		resolved[i] = call

		content, err := invokeTool(ctx, observer, toolkit, call)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, NewToolMessage(call.Function.Name, call.ID, content))
	}

	return resolved, results, nil
}

func invokeTool(ctx context.Context, observer observability.Provider, toolkit Toolkit, call ToolCall) (string, error) {
	name := call.Function.Name
	fail := func(err error) (string, error) {
		return "", &ToolInvocationError{ToolName: name, CallID: call.ID, Err: err}
	}

	if toolkit == nil {
		return fail(errNoToolkit)
	}
	tool, ok := toolkit.Get(name)
	if !ok {
		return fail(errToolNotFound)
	}
	if strings.TrimSpace(call.Function.Arguments) == "" {
		return fail(errEmptyArguments)
	}

	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanToolExecution,
			observability.String(observability.AttrToolName, name),
			observability.String(observability.AttrToolCallID, call.ID),
		)
		defer span.End()
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolInput, utils.TruncateString(call.Function.Arguments, utils.DefaultMaxStringLength)),
		)
	}

	start := time.Now()
	content, err := tool.Call(ctx, call.Function.Arguments)
	duration := time.Since(start)

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "tool execution failed")
		} else {
			span.SetStatus(observability.StatusOK, "")
		}
		span.AddEvent(observability.EventToolExecutionEnd,
			observability.Duration(observability.AttrToolDuration, duration),
			observability.String(observability.AttrToolOutput, utils.TruncateString(content, utils.DefaultMaxStringLength)),
		)
	}

	if err != nil {
		return fail(err)
	}
	return content, nil
}
