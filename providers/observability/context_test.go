package observability

import (
	"context"
	"errors"
	"testing"
)

type mockSpan struct {
	name   string
	events []string
}

func (s *mockSpan) End() {}
func (s *mockSpan) SetAttributes(attrs ...Attribute) {}
func (s *mockSpan) SetStatus(code StatusCode, description string) {}
func (s *mockSpan) RecordError(err error) {}
func (s *mockSpan) AddEvent(name string, attrs ...Attribute) { s.events = append(s.events, name) }

type mockObserver struct {
	messages []string
}

func (o *mockObserver) StartSpan(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	span := &mockSpan{name: name}
	return ContextWithSpan(ctx, span), span
}
func (o *mockObserver) Trace(_ context.Context, msg string, _ ...Attribute) { o.messages = append(o.messages, msg) }
func (o *mockObserver) Debug(_ context.Context, msg string, _ ...Attribute) { o.messages = append(o.messages, msg) }
func (o *mockObserver) Info(_ context.Context, msg string, _ ...Attribute) { o.messages = append(o.messages, msg) }
func (o *mockObserver) Warn(_ context.Context, msg string, _ ...Attribute) { o.messages = append(o.messages, msg) }
func (o *mockObserver) Error(_ context.Context, msg string, _ ...Attribute) { o.messages = append(o.messages, msg) }

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("expected nil span from empty context, got %v", span)
	}
}

func TestSpanFromContext_WithSpan(t *testing.T) {
	mock := &mockSpan{name: "test-span"}
	ctx := ContextWithSpan(context.Background(), mock)

	span := SpanFromContext(ctx)
	if span != mock {
		t.Fatalf("expected the stored span, got %v", span)
	}
}

func TestContextWithSpan_NilSpan(t *testing.T) {
	ctx := ContextWithSpan(context.Background(), nil)
	if span := SpanFromContext(ctx); span != nil {
		t.Errorf("expected nil span, got %v", span)
	}
}

func TestObserverFromContext(t *testing.T) {
	if observer := ObserverFromContext(context.Background()); observer != nil {
		t.Fatalf("expected nil observer, got %v", observer)
	}

	mock := &mockObserver{}
	ctx := ContextWithObserver(context.Background(), mock)
	observer := ObserverFromContext(ctx)
	if observer != mock {
		t.Fatalf("expected the stored observer, got %v", observer)
	}

	observer.Info(ctx, "hello")
	if len(mock.messages) != 1 || mock.messages[0] != "hello" {
		t.Errorf("expected logged message, got %v", mock.messages)
	}
}

func TestSpanAndObserverDoNotCollide(t *testing.T) {
	span := &mockSpan{name: "s"}
	observer := &mockObserver{}

	ctx := ContextWithSpan(context.Background(), span)
	ctx = ContextWithObserver(ctx, observer)

	if SpanFromContext(ctx) != span {
		t.Error("span lost after attaching observer")
	}
	if ObserverFromContext(ctx) != observer {
		t.Error("observer not retrievable")
	}
}

func TestErrorAttribute(t *testing.T) {
	attr := Error(errors.New("boom"))
	if attr.Key != AttrError || attr.Value != "boom" {
		t.Errorf("unexpected attribute %+v", attr)
	}

	nilAttr := Error(nil)
	if nilAttr.Value != "" {
		t.Errorf("expected empty value for nil error, got %v", nilAttr.Value)
	}
}
