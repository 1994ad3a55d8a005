package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func collectEvents(t *testing.T, input string) []string {
	t.Helper()
	scanner := NewSSEScanner(strings.NewReader(input))
	var events []string
	for {
		payload, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		if err != nil {
			t.Fatalf("unexpected scanner error: %v", err)
		}
		events = append(events, payload)
	}
}

func TestSSEScanner(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single event", input: "data: hello\n\n", want: []string{"hello"}},
		{name: "events in order", input: "data: a\n\ndata: b\n\ndata: c\n\n", want: []string{"a", "b", "c"}},
		{name: "multi-line data joined", input: "data: one\ndata: two\n\n", want: []string{"one\ntwo"}},
		{name: "comments skipped", input: ": keep-alive\ndata: x\n\n", want: []string{"x"}},
		{name: "done sentinel stops", input: "data: x\n\ndata: [DONE]\n\ndata: never\n\n", want: []string{"x"}},
		{name: "non-data fields ignored", input: "event: message\nid: 7\ndata: y\n\n", want: []string{"y"}},
		{name: "trailing event without blank line", input: "data: tail", want: []string{"tail"}},
		{name: "blank lines between events", input: "\n\n\ndata: z\n\n\n\n", want: []string{"z"}},
		{name: "empty stream", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectEvents(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d events, got %d: %q", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDoPostStream_LeavesBodyOpen(t *testing.T) {
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"text\":\"chunk\"}\n\ndata: [DONE]\n\n")
	}))
	defer server.Close()

	response, err := DoPostStream(context.Background(), server.Client(), server.URL, "key", struct{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer CloseWithLog(response.Body)

	if gotAccept != "text/event-stream" {
		t.Errorf("expected SSE accept header, got %q", gotAccept)
	}

	payload, err := NewSSEScanner(response.Body).Next()
	if err != nil {
		t.Fatalf("unexpected scanner error: %v", err)
	}
	if payload != `{"text":"chunk"}` {
		t.Errorf("unexpected payload %q", payload)
	}
}

func TestDoPostStream_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := DoPostStream(context.Background(), server.Client(), server.URL, "", struct{}{})
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *HTTPStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests || !strings.Contains(statusErr.Body, "slow down") {
		t.Errorf("unexpected status error %+v", statusErr)
	}
}

func TestDoPostStream_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := DoPostStream(ctx, server.Client(), server.URL, "", struct{}{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestDoPostStream_HeaderOverride(t *testing.T) {
	var gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
	}))
	defer server.Close()

	response, err := DoPostStream(context.Background(), server.Client(), server.URL, "", struct{}{},
		HeaderOption{Key: "Accept", Value: "application/x-ndjson"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	CloseWithLog(response.Body)

	if gotAccept != "application/x-ndjson" {
		t.Errorf("expected overridden accept header, got %q", gotAccept)
	}
}
