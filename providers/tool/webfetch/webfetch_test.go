package webfetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/leofalp/llmadapt/providers/tool"
)

const samplePage = `<html><head><title>t</title></head><body><h1>Release notes</h1><p>Adapters for <strong>three</strong> providers.</p></body></html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got == "" {
			t.Errorf("expected a User-Agent header")
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/page", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetch_ConvertsToMarkdown(t *testing.T) {
	server := newPageServer(t)

	output, err := Fetch(context.Background(), Input{URL: server.URL + "/page", IncludeHTML: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output.Markdown, "# Release notes") {
		t.Errorf("expected heading in markdown, got %q", output.Markdown)
	}
	if !strings.Contains(output.Markdown, "**three**") {
		t.Errorf("expected bold text in markdown, got %q", output.Markdown)
	}
	if output.HTML != samplePage {
		t.Errorf("expected raw HTML when requested")
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	server := newPageServer(t)

	output, err := Fetch(context.Background(), Input{URL: server.URL + "/old"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.URL != server.URL+"/page" {
		t.Errorf("expected final URL after redirect, got %q", output.URL)
	}
	if output.HTML != "" {
		t.Error("HTML must be empty unless requested")
	}
}

func TestFetch_Errors(t *testing.T) {
	server := newPageServer(t)

	tests := []struct {
		name  string
		input Input
	}{
		{name: "empty URL", input: Input{URL: "   "}},
		{name: "not found", input: Input{URL: server.URL + "/missing"}},
		{name: "redirect loop", input: Input{URL: server.URL + "/loop"}},
		{name: "timeout", input: Input{URL: server.URL + "/slow", TimeoutSeconds: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Fetch(context.Background(), tt.input); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := Fetch(context.Background(), Input{}); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := map[string]string{
		"example.com":          "https://example.com",
		" http://example.com ": "http://example.com",
		"https://example.com/": "https://example.com/",
	}
	for input, want := range tests {
		got, err := normalizeURL(input)
		if err != nil || got != want {
			t.Errorf("normalizeURL(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
}

func TestFetchDocument(t *testing.T) {
	server := newPageServer(t)

	doc, err := FetchDocument(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID == "" {
		t.Error("expected generated document id")
	}
	if !strings.Contains(doc.Content, "Release notes") {
		t.Errorf("expected markdown content, got %q", doc.Content)
	}
	if doc.Metadata["url"] != server.URL+"/page" || doc.Metadata["source"] != SourceName {
		t.Errorf("unexpected metadata %v", doc.Metadata)
	}
}

func TestWebFetchTool_CallThroughCatalog(t *testing.T) {
	server := newPageServer(t)

	fetchTool, err := NewWebFetchTool()
	if err != nil {
		t.Fatalf("NewWebFetchTool: %v", err)
	}
	info := fetchTool.ToolInfo()
	if info.Name != ToolName || info.Parameters == nil {
		t.Fatalf("unexpected tool description %+v", info)
	}
	if len(info.Parameters.Required) != 1 || info.Parameters.Required[0] != "url" {
		t.Errorf("expected url to be the only required field, got %v", info.Parameters.Required)
	}

	catalog := tool.NewCatalogWithTools(fetchTool)
	found, ok := catalog.Get("webfetch")
	if !ok {
		t.Fatal("expected case-insensitive lookup")
	}

	args, _ := json.Marshal(Input{URL: server.URL + "/page"})
	result, err := found.Call(context.Background(), string(args))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	var output Output
	if err := json.Unmarshal([]byte(result), &output); err != nil {
		t.Fatalf("tool result is not JSON: %v", err)
	}
	if !strings.Contains(output.Markdown, "Release notes") {
		t.Errorf("unexpected tool output %+v", output)
	}
}
