package ai

import (
	"context"

	"github.com/leofalp/llmadapt/providers/observability"
)

// StartPredict opens the predict span for adapter when an observer is
// attached to ctx. The returned finish function records the outcome and ends
// the span; it is safe to call without an observer.
//
//	ctx, finish := ai.StartPredict(ctx, p, conversation)
//	defer func() { finish(err) }()
func StartPredict(ctx context.Context, adapter Adapter, conversation *Conversation) (context.Context, func(error)) {
	observer := observability.ObserverFromContext(ctx)
	if observer == nil {
		return ctx, func(error) {}
	}

	ctx, span := observer.StartSpan(ctx, observability.SpanPredict,
		observability.String(observability.AttrLLMProvider, adapter.Name()),
		observability.String(observability.AttrLLMModel, adapter.Model()),
		observability.Int(observability.AttrConversationLength, conversation.Len()),
	)

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, err.Error())
			observer.Error(ctx, "Predict failed",
				observability.String(observability.AttrLLMProvider, adapter.Name()),
				observability.Error(err),
			)
		} else {
			span.SetAttributes(observability.Int(observability.AttrConversationLength, conversation.Len()))
			span.SetStatus(observability.StatusOK, "")
		}
		span.End()
	}
}

// Commit appends messages to conversation as the final step of Predict.
func Commit(ctx context.Context, conversation *Conversation, messages ...Message) {
	conversation.AddMessages(messages...)
	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventConversationAppend,
			observability.Int(observability.AttrConversationLength, conversation.Len()),
		)
	}
}
