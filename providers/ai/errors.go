package ai

import (
	"errors"
	"fmt"

	"github.com/leofalp/llmadapt/internal/utils"
)

var (
	// ErrProviderRequest matches every *ProviderRequestError.
	ErrProviderRequest = errors.New("provider request failed")

	// ErrToolInvocation matches every *ToolInvocationError.
	ErrToolInvocation = errors.New("tool invocation failed")

	// ErrUnsupportedRole is returned when a message role has no provider mapping.
	ErrUnsupportedRole = errors.New("unsupported message role")

	// ErrEmptyConversation is returned by Predict before any request is sent.
	ErrEmptyConversation = errors.New("conversation has no messages")

	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("API key is not set")

	// ErrInvalidOption is returned when a resolved option is out of range.
	ErrInvalidOption = errors.New("invalid predict option")
)

// ProviderRequestError reports a transport failure, a non-2xx status or an
// unusable response body. StatusCode is zero when no response was received.
type ProviderRequestError struct {
	Provider   string
	StatusCode int
	Err        error
}

// NewProviderRequestError wraps err, lifting the status code out of a
// *utils.HTTPStatusError when present.
func NewProviderRequestError(provider string, err error) *ProviderRequestError {
	requestErr := &ProviderRequestError{Provider: provider, Err: err}
	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) {
		requestErr.StatusCode = statusErr.StatusCode
	}
	return requestErr
}

func (e *ProviderRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *ProviderRequestError) Unwrap() []error {
	return []error{ErrProviderRequest, e.Err}
}

// ToolInvocationError reports a tool call that could not be executed: the
// tool is unknown, its arguments are missing or malformed, or it failed.
type ToolInvocationError struct {
	ToolName string
	CallID   string
	Err      error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("tool %q (call %s): %v", e.ToolName, e.CallID, e.Err)
}

func (e *ToolInvocationError) Unwrap() []error {
	return []error{ErrToolInvocation, e.Err}
}
