package slogobs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/leofalp/llmadapt/providers/observability"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"TRACE", LevelTrace},
		{"debug", slog.LevelDebug},
		{"  DEBUG  ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("LLMADAPT_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "error")
	if got := GetLogLevelFromEnv(); got != slog.LevelError {
		t.Errorf("expected fallback to LOG_LEVEL, got %v", got)
	}

	t.Setenv("LLMADAPT_LOG_LEVEL", "debug")
	if got := GetLogLevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("expected LLMADAPT_LOG_LEVEL to take precedence, got %v", got)
	}
}

func TestGetFormatFromEnv(t *testing.T) {
	t.Setenv("LLMADAPT_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "")
	if got := GetFormatFromEnv(); got != FormatText {
		t.Errorf("expected default text format, got %v", got)
	}

	t.Setenv("LOG_FORMAT", "JSON")
	if got := GetFormatFromEnv(); got != FormatJSON {
		t.Errorf("expected json format, got %v", got)
	}
}

func TestObserver_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	observer := New(WithFormat(FormatJSON), WithLevel(slog.LevelInfo), WithOutput(buf))

	observer.Info(context.Background(), "request sent", observability.String(observability.AttrLLMProvider, "cohere"))
	observer.Debug(context.Background(), "filtered out")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one record, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if record["msg"] != "request sent" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
	if record[observability.AttrLLMProvider] != "cohere" {
		t.Errorf("expected provider attribute, got %v", record)
	}
}

func TestObserver_TraceLevelName(t *testing.T) {
	buf := &bytes.Buffer{}
	observer := New(WithFormat(FormatText), WithLevel(LevelTrace), WithOutput(buf))

	observer.Trace(context.Background(), "payload")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("expected TRACE level label, got %q", buf.String())
	}
}

func TestObserver_SpanLifecycle(t *testing.T) {
	buf := &bytes.Buffer{}
	observer := New(WithFormat(FormatText), WithLevel(slog.LevelDebug), WithOutput(buf))

	ctx, span := observer.StartSpan(context.Background(), observability.SpanPredict)
	if observability.SpanFromContext(ctx) != span {
		t.Fatal("expected span attached to returned context")
	}

	span.SetAttributes(observability.Int(observability.AttrConversationLength, 3))
	span.AddEvent(observability.EventLLMRequestStart)
	span.RecordError(errors.New("transport down"))
	span.SetStatus(observability.StatusError, "failed")
	span.End()

	out := buf.String()
	for _, want := range []string{"Span started", "Span event", "Span error", "Span ended", "transport down", "conversation.length=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestWithLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	observer := New(WithLogger(logger))
	if observer.Logger() != logger {
		t.Fatal("expected provided logger to be used")
	}
}
