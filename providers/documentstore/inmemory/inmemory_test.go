package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/leofalp/llmadapt/core/document"
	"github.com/leofalp/llmadapt/core/vector"
	"github.com/leofalp/llmadapt/providers/documentstore"
)

func newEmbedded(t *testing.T, id string) *document.EmbeddedDocument {
	t.Helper()
	sparse, err := vector.NewSparse([]int{1}, []float64{0.5}, 3)
	if err != nil {
		t.Fatalf("NewSparse: %v", err)
	}
	doc, err := document.NewEmbedded(document.Document{ID: id, Content: "vector body", Metadata: map[string]any{"rank": 2}}, sparse)
	if err != nil {
		t.Fatalf("NewEmbedded: %v", err)
	}
	return doc
}

func TestStore_PutGetRebuildsConcreteType(t *testing.T) {
	ctx := context.Background()
	store := New()

	plain := &document.Document{ID: "plain", Content: "text", Metadata: map[string]any{"lang": "en"}}
	embedded := newEmbedded(t, "embedded")

	for _, doc := range []document.Serializable{plain, embedded} {
		if err := store.Put(ctx, doc); err != nil {
			t.Fatalf("Put(%s): %v", doc.DocumentID(), err)
		}
	}

	got, err := store.Get(ctx, "embedded")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := got.(*document.EmbeddedDocument); !ok {
		t.Fatalf("expected *document.EmbeddedDocument, got %T", got)
	}
	if !document.Equal(embedded, got) {
		t.Errorf("stored document differs: %v", got.ToMap())
	}

	got, err = store.Get(ctx, "plain")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, ok := got.(*document.Document); !ok || !document.Equal(plain, got) {
		t.Errorf("unexpected plain document %#v", got)
	}
}

func TestStore_IsolatedFromCaller(t *testing.T) {
	ctx := context.Background()
	store := New()

	doc := &document.Document{ID: "a", Content: "before", Metadata: map[string]any{}}
	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc.Content = "after"

	got, _ := store.Get(ctx, "a")
	if got.(*document.Document).Content != "before" {
		t.Error("store must not share state with the caller")
	}
}

func TestStore_ReplaceDeleteList(t *testing.T) {
	ctx := context.Background()
	store := New()

	for _, id := range []string{"one", "two", "three"} {
		if err := store.Put(ctx, &document.Document{ID: id, Content: id}); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if err := store.Put(ctx, &document.Document{ID: "one", Content: "replaced"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	removed, err := store.Delete(ctx, "two")
	if err != nil || !removed {
		t.Fatalf("expected delete to succeed, got %v %v", removed, err)
	}
	if removed, _ := store.Delete(ctx, "two"); removed {
		t.Error("second delete should report nothing removed")
	}

	docs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 || docs[0].DocumentID() != "one" || docs[1].DocumentID() != "three" {
		t.Fatalf("unexpected listing %v", docs)
	}
	if docs[0].(*document.Document).Content != "replaced" {
		t.Error("expected replaced content")
	}
	if store.Len() != 2 {
		t.Errorf("expected 2 documents, got %d", store.Len())
	}
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := New()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, documentstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, nil); err == nil {
		t.Error("expected nil document to be rejected")
	}
	if err := store.Put(ctx, &document.Document{Content: "no id"}); err == nil {
		t.Error("expected document without id to be rejected")
	}

	bare, err := document.NewEmbedded(document.Document{ID: "bare", Content: "x"}, bareVector{1})
	if err != nil {
		t.Fatalf("NewEmbedded: %v", err)
	}
	if err := store.Put(ctx, bare); !errors.Is(err, vector.ErrInvalidVector) {
		t.Errorf("expected ErrInvalidVector, got %v", err)
	}
	if _, err := store.Get(ctx, "bare"); !errors.Is(err, documentstore.ErrNotFound) {
		t.Errorf("rejected document must not be stored, got %v", err)
	}
	if docs, _ := store.List(ctx); docs == nil || len(docs) != 0 {
		t.Errorf("expected empty non-nil list, got %v", docs)
	}
}

func TestStore_ConcurrentPuts(t *testing.T) {
	ctx := context.Background()
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Put(ctx, &document.Document{ID: fmt.Sprintf("doc-%d", i), Content: "x"})
		}(i)
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("expected 50 documents, got %d", store.Len())
	}
}

// bareVector satisfies vector.Vector without vector.Mapper.
type bareVector []float64

func (b bareVector) TypeName() string { return "BareVector" }
func (b bareVector) Values() []float64 { return b }
func (b bareVector) Dimension() int { return len(b) }
func (b bareVector) Equal(vector.Vector) bool { return false }
