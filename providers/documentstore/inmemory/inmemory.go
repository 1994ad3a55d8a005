// Package inmemory is a map-backed documentstore.Store. Documents are held as
// their JSON encoding, so every Get rebuilds a fresh value.
package inmemory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/leofalp/llmadapt/core/document"
	"github.com/leofalp/llmadapt/providers/documentstore"
	"github.com/leofalp/llmadapt/providers/observability"
)

const backendName = "inmemory"

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	order []string
}

// New returns an empty store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

var _ documentstore.Store = (*Store)(nil)

// Put stores doc under its id, replacing any earlier version.
func (s *Store) Put(ctx context.Context, doc document.Serializable) error {
	if doc == nil {
		return errors.New("inmemory: nil document")
	}
	id := doc.DocumentID()
	if id == "" {
		return errors.New("inmemory: document has no id")
	}
	body, err := document.Marshal(doc)
	if err != nil {
		return fmt.Errorf("inmemory: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.docs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = body
	s.mu.Unlock()

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventDocumentPut,
			observability.String(observability.AttrStoreBackend, backendName),
			observability.String(observability.AttrDocumentID, id),
			observability.String(observability.AttrDocumentType, doc.TypeName()),
		)
	}
	return nil
}

// Get decodes the document stored under id, or returns documentstore.ErrNotFound.
func (s *Store) Get(_ context.Context, id string) (document.Serializable, error) {
	s.mu.RLock()
	body, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("inmemory: %q: %w", id, documentstore.ErrNotFound)
	}
	doc, err := document.Unmarshal(body)
	if err != nil {
		return nil, fmt.Errorf("inmemory: %q: %w", id, err)
	}
	return doc, nil
}

// Delete removes id and reports whether it was present.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	_, ok := s.docs[id]
	if ok {
		delete(s.docs, id)
		s.order = slices.DeleteFunc(s.order, func(existing string) bool { return existing == id })
	}
	s.mu.Unlock()

	if ok {
		if span := observability.SpanFromContext(ctx); span != nil {
			span.AddEvent(observability.EventDocumentDelete,
				observability.String(observability.AttrStoreBackend, backendName),
				observability.String(observability.AttrDocumentID, id),
			)
		}
	}
	return ok, nil
}

// List returns a non-nil slice in insertion order.
func (s *Store) List(_ context.Context) ([]document.Serializable, error) {
	s.mu.RLock()
	bodies := make([][]byte, 0, len(s.order))
	for _, id := range s.order {
		bodies = append(bodies, s.docs[id])
	}
	s.mu.RUnlock()

	docs := make([]document.Serializable, 0, len(bodies))
	for _, body := range bodies {
		doc, err := document.Unmarshal(body)
		if err != nil {
			return nil, fmt.Errorf("inmemory: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
