package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type encodable interface {
	checkEncodable() error
}

// Marshal encodes doc's mapping as JSON. Embedded documents whose vector
// cannot describe itself as a mapping are rejected with an error wrapping
// vector.ErrInvalidVector, since Unmarshal could not rebuild them.
func Marshal(doc Serializable) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("marshal document: nil document")
	}
	if e, ok := doc.(encodable); ok {
		if err := e.checkEncodable(); err != nil {
			return nil, fmt.Errorf("marshal %s %s: %w", doc.TypeName(), doc.DocumentID(), err)
		}
	}
	data, err := json.Marshal(doc.ToMap())
	if err != nil {
		return nil, fmt.Errorf("marshal %s %s: %w", doc.TypeName(), doc.DocumentID(), err)
	}
	return data, nil
}

// Unmarshal decodes JSON produced by Marshal and rebuilds the concrete type.
// Numbers are decoded as json.Number so vector factories see exact values.
func Unmarshal(data []byte) (Serializable, error) {
	fields, err := DecodeMap(data)
	if err != nil {
		return nil, err
	}
	return FromMap(fields)
}

// DecodeMap decodes a JSON object into a generic mapping using json.Number.
func DecodeMap(data []byte) (map[string]any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return nil, &DeserializationError{Type: "document", Reason: "invalid JSON", Err: err}
	}
	if fields == nil {
		return nil, &DeserializationError{Type: "document", Reason: "JSON is not an object"}
	}
	return fields, nil
}
