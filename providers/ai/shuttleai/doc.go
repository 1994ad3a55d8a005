// Package shuttleai implements [ai.Adapter] for ShuttleAI's OpenAI-style chat
// completions endpoint, including tool calling.
//
// Messages are sent with their role, content, name, tool_call_id and
// tool_calls fields. When a toolkit is supplied its tools are converted with
// [SchemaConverter] and any tool calls in the reply are executed once through
// [ai.RunToolCalls]; the tool results and the model reply are then appended
// together, results first. When such a history is sent again the assistant
// message is moved ahead of the tool results it requested, as the endpoint
// requires.
//
// ShuttleAI-specific settings are passed with [WithInternet], [WithRaw],
// [WithImage], [WithCitations] and [WithTone]. [New] reads SHUTTLEAI_API_KEY
// and SHUTTLEAI_API_BASE_URL from the environment.
package shuttleai
