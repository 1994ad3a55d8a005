// Package documentstore defines persistence for documents. Implementations
// keep the serialized mapping of each document and rebuild the concrete type
// through document.FromMap on every read.
package documentstore

import (
	"context"
	"errors"

	"github.com/leofalp/llmadapt/core/document"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("document not found")

// Store persists documents by id. Put replaces an existing document with the
// same id.
type Store interface {
	Put(ctx context.Context, doc document.Serializable) error
	Get(ctx context.Context, id string) (document.Serializable, error)
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns documents in insertion order.
	List(ctx context.Context) ([]document.Serializable, error)
}
