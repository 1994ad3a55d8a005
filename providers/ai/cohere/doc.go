// Package cohere implements [ai.Adapter] for the Cohere chat API.
//
// Cohere separates the current turn from the history: the trailing message
// is sent as "message" and earlier turns go to "chat_history" with uppercase
// role tokens (assistant becomes CHATBOT). The most recent system message is
// sent as the "preamble" instead of appearing in the history.
//
// [New] reads COHERE_API_KEY and COHERE_API_BASE_URL from the environment.
package cohere
