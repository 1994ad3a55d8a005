// Package observability defines the tracing and structured-logging interfaces
// used across llmadapt, together with the semantic-convention constants that
// adapters, tools and document stores use when recording observations.
//
// An active [Provider] and [Span] travel through a [context.Context] via
// [ContextWithObserver] and [ContextWithSpan]; components retrieve them with
// [ObserverFromContext] and [SpanFromContext] and skip instrumentation when
// nothing is attached.
package observability
