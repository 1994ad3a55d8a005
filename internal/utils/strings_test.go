package utils

import (
	"strings"
	"testing"
)

func TestJSONToString(t *testing.T) {
	if got := JSONToString(map[string]int{"n": 1}); got != `{"n":1}` {
		t.Errorf("unexpected JSON %q", got)
	}
	if got := JSONToString(make(chan int)); !strings.HasPrefix(got, `{"error":`) {
		t.Errorf("expected error object for unmarshalable value, got %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLen    int
		truncated bool
	}{
		{name: "short", input: "abc", maxLen: 5},
		{name: "exact", input: "abcde", maxLen: 5},
		{name: "long", input: "abcdefgh", maxLen: 5, truncated: true},
		{name: "zero uses default", input: strings.Repeat("x", DefaultMaxStringLength+1), maxLen: 0, truncated: true},
		{name: "negative uses default", input: strings.Repeat("x", DefaultMaxStringLength), maxLen: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if strings.Contains(got, "(truncated, total:") != tt.truncated {
				t.Errorf("TruncateString(%q, %d) = %q", tt.input, tt.maxLen, got)
			}
			if tt.truncated && !strings.HasPrefix(got, tt.input[:5]) {
				t.Errorf("expected prefix preserved, got %q", got)
			}
		})
	}
}

func TestPtr(t *testing.T) {
	temperature := Ptr(0.7)
	if temperature == nil || *temperature != 0.7 {
		t.Fatalf("unexpected pointer value %v", temperature)
	}

	original := 3
	copied := Ptr(original)
	*copied = 4
	if original != 3 {
		t.Error("expected Ptr to point at a copy")
	}
}
