package document

import (
	"encoding/json"
	"maps"
	"reflect"

	"github.com/google/uuid"
)

// TypeDocument is the discriminant written by Document.ToMap.
const TypeDocument = "Document"

// Serializable is any document that can be flattened for storage or transport
// and rebuilt through FromMap.
type Serializable interface {
	// TypeName is the registry key written to the "type" field.
	TypeName() string
	DocumentID() string
	ToMap() map[string]any
}

// Document is a unit of retrievable content.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// New creates a Document with a fresh UUID.
func New(content string, metadata map[string]any) *Document {
	return &Document{
		ID:       uuid.NewString(),
		Content:  content,
		Metadata: copyMetadata(metadata),
	}
}

func (d *Document) TypeName() string { return TypeDocument }

func (d *Document) DocumentID() string { return d.ID }

func (d *Document) ToMap() map[string]any {
	return map[string]any{
		"id":       d.ID,
		"content":  d.Content,
		"metadata": copyMetadata(d.Metadata),
		"type":     TypeDocument,
	}
}

// DocumentFromMap rebuilds a Document. data is not modified. A "type"
// naming anything other than Document is rejected.
func DocumentFromMap(data map[string]any) (*Document, error) {
	fields := maps.Clone(data)
	if err := popType(fields, TypeDocument); err != nil {
		return nil, err
	}
	return baseFromFields(TypeDocument, fields)
}

func popType(fields map[string]any, want string) error {
	raw, ok := fields["type"]
	if !ok {
		return nil
	}
	delete(fields, "type")

	typeName, ok := raw.(string)
	if !ok {
		return &DeserializationError{Type: want, Reason: "type discriminant is not a string"}
	}
	if typeName != want {
		return &DeserializationError{Type: want, Reason: "mapping describes " + typeName}
	}
	return nil
}

func baseFromFields(typeName string, fields map[string]any) (*Document, error) {
	for _, field := range []string{"id", "content", "metadata"} {
		if _, ok := fields[field]; !ok {
			return nil, &MissingFieldError{Type: typeName, Field: field}
		}
	}

	id, ok := fields["id"].(string)
	if !ok {
		return nil, &DeserializationError{Type: typeName, Reason: "id is not a string"}
	}
	content, ok := fields["content"].(string)
	if !ok {
		return nil, &DeserializationError{Type: typeName, Reason: "content is not a string"}
	}

	var metadata map[string]any
	switch m := fields["metadata"].(type) {
	case nil:
		metadata = map[string]any{}
	case map[string]any:
		metadata = maps.Clone(m)
	default:
		return nil, &DeserializationError{Type: typeName, Reason: "metadata is not a mapping"}
	}

	return &Document{ID: id, Content: content, Metadata: metadata}, nil
}

func copyMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	return maps.Clone(metadata)
}

// Equal reports whether a and b have the same concrete type and fields.
// Metadata values are compared by their JSON encoding so that numbers read
// back from storage match the values they were written from.
func Equal(a, b Serializable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.TypeName() != b.TypeName() || reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	switch x := a.(type) {
	case *Document:
		return equalBase(x, b.(*Document))
	case *EmbeddedDocument:
		y := b.(*EmbeddedDocument)
		if !equalBase(&x.Document, &y.Document) {
			return false
		}
		if x.embedding == nil || y.embedding == nil {
			return x.embedding == nil && y.embedding == nil
		}
		return x.embedding.Equal(y.embedding)
	default:
		return reflect.DeepEqual(a.ToMap(), b.ToMap())
	}
}

func equalBase(a, b *Document) bool {
	if a.ID != b.ID || a.Content != b.Content {
		return false
	}
	left, errLeft := json.Marshal(copyMetadata(a.Metadata))
	right, errRight := json.Marshal(copyMetadata(b.Metadata))
	if errLeft != nil || errRight != nil {
		return reflect.DeepEqual(copyMetadata(a.Metadata), copyMetadata(b.Metadata))
	}
	return string(left) == string(right)
}
