// Package utils provides shared low-level helpers for the provider adapters:
// synchronous JSON POST round-trips ([DoPostSync]), streaming POSTs with an
// SSE reader ([DoPostStream], [SSEScanner]), the [HTTPStatusError] type that
// adapters translate into provider request errors, and small pointer and
// string helpers.
package utils
