// Package parse converts raw text returned by a model into typed Go values.
//
// Providers hand back tool-call arguments as JSON strings that are not always
// well formed. [ParseStringAs] converts primitives directly and decodes
// everything else as JSON, repairing the text with jsonrepair and unwrapping
// schema-style {"type": ..., "value": ...} envelopes when plain decoding fails.
// Callers that must not guess at truncated input check json.Valid first, as
// tool.Tool does unless built with tool.WithLenientArguments.
package parse
