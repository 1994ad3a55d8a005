// Package ai defines the provider-agnostic conversation model shared by every
// adapter: [Message], [Conversation], the [Adapter] interface with its
// [PredictOptions], per-provider [RoleTable]s, the [Tool]/[Toolkit] boundary
// with [SchemaConverter], the single-round tool executor [RunToolCalls] and
// the typed errors adapters return.
//
// An adapter receives a *Conversation, formats it for its provider, and on
// success appends the new messages in one step before returning the same
// pointer. On failure the conversation is left untouched.
package ai
