// Package slogobs provides an [observability.Provider] backed by the standard
// library log/slog package. Spans are rendered as debug-level log events and
// log calls map one-to-one onto slog levels, with an extra TRACE level below
// DEBUG for request/response payload dumps.
//
// Use [New] with [WithFormat], [WithLevel], [WithOutput] or [WithLogger]; with
// no options the format and level come from LLMADAPT_LOG_FORMAT and
// LLMADAPT_LOG_LEVEL (falling back to LOG_FORMAT and LOG_LEVEL).
package slogobs
