package document

import (
	"errors"
	"fmt"
	"maps"

	"github.com/leofalp/llmadapt/core/vector"
)

// TypeEmbeddedDocument is the discriminant written by EmbeddedDocument.ToMap.
const TypeEmbeddedDocument = "EmbeddedDocument"

// EmbeddedDocument is a Document paired with its embedding vector.
type EmbeddedDocument struct {
	Document
	embedding vector.Vector
}

// NewEmbedded attaches embedding to a copy of doc.
func NewEmbedded(doc Document, embedding vector.Vector) (*EmbeddedDocument, error) {
	if embedding == nil {
		return nil, errors.New("embedded document requires an embedding")
	}
	doc.Metadata = copyMetadata(doc.Metadata)
	return &EmbeddedDocument{Document: doc, embedding: embedding}, nil
}

func (e *EmbeddedDocument) TypeName() string { return TypeEmbeddedDocument }

// Embedding returns the attached vector.
func (e *EmbeddedDocument) Embedding() vector.Vector { return e.embedding }

// SetEmbedding replaces the attached vector; nil is rejected.
func (e *EmbeddedDocument) SetEmbedding(embedding vector.Vector) error {
	if embedding == nil {
		return errors.New("embedded document requires an embedding")
	}
	e.embedding = embedding
	return nil
}

// ToMap adds the embedding to the base mapping. Vectors implementing
// vector.Mapper contribute their own mapping; others are stored as is, which
// keeps the mapping usable in memory but not encodable by [Marshal].
func (e *EmbeddedDocument) ToMap() map[string]any {
	data := e.Document.ToMap()
	data["type"] = TypeEmbeddedDocument
	if mapper, ok := e.embedding.(vector.Mapper); ok {
		data["embedding"] = mapper.ToMap()
	} else {
		data["embedding"] = e.embedding
	}
	return data
}

// checkEncodable reports whether the embedding can be written with a type
// discriminant that FromMap can resolve later.
func (e *EmbeddedDocument) checkEncodable() error {
	if _, ok := e.embedding.(vector.Mapper); !ok {
		return fmt.Errorf("embedding %T does not implement vector.Mapper: %w", e.embedding, vector.ErrInvalidVector)
	}
	return nil
}

// EmbeddedDocumentFromMap rebuilds an EmbeddedDocument, resolving the
// embedding's "type" through vector.DefaultRegistry. data is not modified.
func EmbeddedDocumentFromMap(data map[string]any) (*EmbeddedDocument, error) {
	return embeddedFromMap(vector.DefaultRegistry, data)
}

func embeddedFromMap(vectors *vector.Registry, data map[string]any) (*EmbeddedDocument, error) {
	fields := maps.Clone(data)
	if err := popType(fields, TypeEmbeddedDocument); err != nil {
		return nil, err
	}

	raw, ok := fields["embedding"]
	delete(fields, "embedding")
	if !ok || raw == nil {
		return nil, &MissingFieldError{Type: TypeEmbeddedDocument, Field: "embedding"}
	}

	var embedding vector.Vector
	switch v := raw.(type) {
	case vector.Vector:
		embedding = v
	case map[string]any:
		typeName, ok := v["type"].(string)
		if !ok || typeName == "" {
			return nil, &DeserializationError{Type: TypeEmbeddedDocument, Reason: "embedding has no type"}
		}
		factory, ok := vectors.Lookup(typeName)
		if !ok {
			return nil, &DeserializationError{
				Type:   TypeEmbeddedDocument,
				Reason: "unregistered embedding type " + typeName,
				Err:    vector.ErrUnknownType,
			}
		}
		built, err := factory(v)
		if err != nil {
			return nil, &DeserializationError{Type: TypeEmbeddedDocument, Reason: "embedding", Err: err}
		}
		embedding = built
	default:
		return nil, &DeserializationError{Type: TypeEmbeddedDocument, Reason: "embedding is not a mapping"}
	}

	base, err := baseFromFields(TypeEmbeddedDocument, fields)
	if err != nil {
		return nil, err
	}
	return &EmbeddedDocument{Document: *base, embedding: embedding}, nil
}
