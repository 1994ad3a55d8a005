package webfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/llmadapt/core/document"
	"github.com/leofalp/llmadapt/internal/utils"
	"github.com/leofalp/llmadapt/providers/observability"
	"github.com/leofalp/llmadapt/providers/tool"
)

const (
	ToolName         = "WebFetch"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "llmadapt-webfetch/1.0"
	// MaxBodySize caps the bytes read from a page.
	MaxBodySize  = 10 * 1024 * 1024
	MaxRedirects = 10

	// SourceName is stored under the "source" metadata key of fetched documents.
	SourceName = "webfetch"
)

var ErrEmptyURL = errors.New("URL cannot be empty")

// Input is what the model sends. Only URL is required.
type Input struct {
	URL            string `json:"url" jsonschema:"description=The URL of the page to fetch. Partial URLs like example.com get an https prefix,required"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" jsonschema:"description=Request timeout in seconds (default 30)"`
	UserAgent      string `json:"user_agent,omitempty" jsonschema:"description=Custom User-Agent header"`
	IncludeHTML    bool   `json:"include_html,omitempty" jsonschema:"description=Also return the raw HTML"`
}

// Output reports the final URL after redirects and the converted page.
type Output struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}

// NewWebFetchTool wraps Fetch as a tool for ai.Toolkit catalogs.
func NewWebFetchTool() (*tool.Tool[Input, Output], error) {
	return tool.NewTool[Input, Output](
		ToolName,
		Fetch,
		tool.WithDescription("Fetches a web page over HTTP or HTTPS and returns its content as Markdown together with the final URL after redirects."),
	)
}

// FetchDocument loads rawURL as a Document. Metadata holds the final "url"
// and the "source" that produced it.
func FetchDocument(ctx context.Context, rawURL string) (*document.Document, error) {
	output, err := Fetch(ctx, Input{URL: rawURL})
	if err != nil {
		return nil, err
	}
	return document.New(output.Markdown, map[string]any{
		"url":    output.URL,
		"source": SourceName,
	}), nil
}

// Fetch retrieves the page at input.URL and converts it to Markdown.
// Only 200 responses are accepted; bodies at or above MaxBodySize are rejected.
func Fetch(ctx context.Context, input Input) (Output, error) {
	target, err := normalizeURL(input.URL)
	if err != nil {
		return Output{}, err
	}

	timeout := DefaultTimeout
	if input.TimeoutSeconds > 0 {
		timeout = time.Duration(input.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Output{}, fmt.Errorf("create request: %w", err)
	}
	userAgent := DefaultUserAgent
	if input.UserAgent != "" {
		userAgent = input.UserAgent
	}
	req.Header.Set("User-Agent", userAgent)

	if observer := observability.ObserverFromContext(ctx); observer != nil {
		observer.Debug(ctx, "Fetching page", observability.String(observability.AttrHTTPURL, target))
	}

	resp, err := newHTTPClient(timeout).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Output{}, fmt.Errorf("fetch %s: timed out or canceled: %w", target, err)
		}
		return Output{}, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Output{}, fmt.Errorf("fetch %s: unexpected status %s", target, resp.Status)
	}

	body, err := readBody(ctx, resp.Body)
	if err != nil {
		return Output{}, err
	}

	markdown, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return Output{}, fmt.Errorf("convert HTML to Markdown: %w", err)
	}

	output := Output{URL: resp.Request.URL.String(), Markdown: markdown}
	if input.IncludeHTML {
		output.HTML = string(body)
	}
	return output, nil
}

func normalizeURL(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return "", ErrEmptyURL
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}
	return target, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
			IdleConnTimeout:       90 * time.Second,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("too many redirects (>%d)", MaxRedirects)
			}
			return nil
		},
	}
}

// readBody reads in a goroutine so a stalled body still honors ctx.
func readBody(ctx context.Context, body io.Reader) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(body, MaxBodySize))
		done <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("read response body: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("read response body: %w", r.err)
		}
		if len(r.data) >= MaxBodySize {
			return nil, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
		}
		return r.data, nil
	}
}
