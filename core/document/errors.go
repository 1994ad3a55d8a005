package document

import (
	"errors"
	"fmt"
)

var (
	// ErrDeserialization matches every *DeserializationError.
	ErrDeserialization = errors.New("document deserialization failed")

	// ErrMissingField matches every *MissingFieldError.
	ErrMissingField = errors.New("missing required field")
)

// DeserializationError reports a mapping that cannot be turned into the
// requested document type: an unregistered or mismatched type discriminant,
// a malformed embedding, or a field of the wrong kind.
type DeserializationError struct {
	Type   string
	Reason string
	Err    error
}

func (e *DeserializationError) Error() string {
	msg := fmt.Sprintf("deserialize %s: %s", e.Type, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DeserializationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDeserialization}
	}
	return []error{ErrDeserialization, e.Err}
}

// MissingFieldError reports a required field absent from the mapping.
type MissingFieldError struct {
	Type  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("deserialize %s: missing required field %q", e.Type, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }
