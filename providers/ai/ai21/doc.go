// Package ai21 implements [ai.Adapter] for the AI21 Studio chat completions
// API.
//
// AI21 takes the system prompt in a dedicated request field, so the adapter
// drops system messages from the turn list and sends the content of the most
// recent one as "system". Streaming responses are consumed in full and their
// deltas concatenated into a single reply.
//
// [New] reads AI21_API_KEY and AI21_API_BASE_URL from the environment.
package ai21
