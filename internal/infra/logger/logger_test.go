package logger

import (
	"context"
	"testing"
)

func TestMaskToken(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"ab", "***"},
		{"abcd", "***"},
		{"abcdef", "ab***ef"},
		{"eyJhbGciOiJSUzI1NiJ9", "ey***J9"},
	}

	for _, tc := range cases {
		if got := MaskToken(tc.input); got != tc.want {
			t.Fatalf("MaskToken(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestWithContext(t *testing.T) {
	if log := WithContext(context.Background()); log == nil {
		t.Fatalf("expected non-nil logger")
	}

	ctx := context.WithValue(context.Background(), RequestIDKey{}, "req-123")
	if log := WithContext(ctx); log == nil {
		t.Fatalf("expected non-nil logger with request id")
	}
}
