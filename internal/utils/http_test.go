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

type echoResponse struct {
	Text string `json:"text"`
}

func TestDoPostSync_DecodesBodyAndSendsHeaders(t *testing.T) {
	var gotAuth, gotContentType, gotCustom, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotCustom = r.Header.Get("X-Client-Name")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		fmt.Fprint(w, `{"text":"pong"}`)
	}))
	defer server.Close()

	_, result, err := DoPostSync[echoResponse](
		context.Background(),
		server.Client(),
		server.URL,
		"secret",
		map[string]string{"text": "ping"},
		HeaderOption{Key: "X-Client-Name", Value: "llmadapt"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "pong" {
		t.Errorf("expected decoded text %q, got %q", "pong", result.Text)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotCustom != "llmadapt" {
		t.Errorf("expected custom header, got %q", gotCustom)
	}
	if gotBody != `{"text":"ping"}` {
		t.Errorf("unexpected request body %q", gotBody)
	}
}

func TestDoPostSync_OmitsAuthWithoutKey(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	if _, _, err := DoPostSync[echoResponse](context.Background(), nil, server.URL, "", struct{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestDoPostSync_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid api key"}`)
	}))
	defer server.Close()

	res, result, err := DoPostSync[echoResponse](context.Background(), server.Client(), server.URL, "bad", struct{}{})
	if result != nil {
		t.Errorf("expected nil result on error, got %+v", result)
	}
	if res == nil || res.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected response with 401 status, got %v", res)
	}

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *HTTPStatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "invalid api key") {
		t.Errorf("expected body preview in error, got %q", statusErr.Body)
	}
}

func TestDoPostSync_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	_, _, err := DoPostSync[echoResponse](context.Background(), server.Client(), server.URL, "", struct{}{})
	if err == nil || !strings.Contains(err.Error(), "unmarshaling") {
		t.Fatalf("expected unmarshal error, got %v", err)
	}
}

func TestDoPostSync_RequestErrors(t *testing.T) {
	tests := []struct {
		name string
		url  string
		body any
	}{
		{name: "unmarshalable body", url: "http://127.0.0.1:1", body: make(chan int)},
		{name: "malformed url", url: " bad url", body: struct{}{}},
		{name: "unreachable host", url: "http://127.0.0.1:1", body: struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DoPostSync[echoResponse](context.Background(), nil, tt.url, "", tt.body)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var statusErr *HTTPStatusError
			if errors.As(err, &statusErr) {
				t.Errorf("expected a transport error, got status error %v", statusErr)
			}
		})
	}
}

type failingCloser struct{ closed bool }

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("already closed")
}

func TestCloseWithLog(t *testing.T) {
	closer := &failingCloser{}
	CloseWithLog(closer)
	if !closer.closed {
		t.Error("expected Close to be called")
	}

	CloseWithLog(nil)
}
