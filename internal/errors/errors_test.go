package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "list not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "list not found" {
		t.Errorf("expected message 'list not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithContext(ErrCodeTransport, "request failed", cause, map[string]any{
		"operation": "DeleteList",
		"id":        "L1",
	})

	if !errors.Is(err, cause) {
		t.Error("expected cause to be wrapped")
	}
	if err.Context["id"] != "L1" {
		t.Errorf("expected id context L1, got %v", err.Context["id"])
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNoData, "response carried no data"),
			expected: "[NO_DATA] response carried no data",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeDecode, "invalid envelope", errors.New("unexpected EOF")),
			expected: "[DECODE] invalid envelope: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("update task: %w", New(ErrCodeRejected, "boom"))

	if got := CodeOf(wrapped); got != ErrCodeRejected {
		t.Errorf("expected %s, got %s", ErrCodeRejected, got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code, got %s", got)
	}
	if !IsCode(wrapped, ErrCodeRejected) {
		t.Error("expected IsCode to match through wrapping")
	}
	if IsCode(nil, ErrCodeRejected) {
		t.Error("expected IsCode(nil) to be false")
	}
}
