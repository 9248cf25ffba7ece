package errors

import (
	"errors"
	"strings"
	"testing"
)

func containsSubstring(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "full error",
			err:      New("hnsw.Insert", KindDimensionMismatch, "vector has %d dimensions, index expects %d", 3, 4),
			contains: []string{"[hnsw.Insert]", "dimension_mismatch", "3 dimensions", "expects 4"},
		},
		{
			name:     "minimal error",
			err:      New("hnsw.Search", KindEfTooSmall, ""),
			contains: []string{"[hnsw.Search]", "ef_too_small"},
		},
		{
			name:     "error with label",
			err:      UnknownLabel("voyager.GetVector", 42),
			contains: []string{"label 42", "unknown_label"},
		},
		{
			name:     "error with cause",
			err:      Wrap("format.Load", KindStreamIO, errors.New("short read"), "expected %d bytes, got %d", 8, 3),
			contains: []string{"[format.Load]", "stream_io", "caused by", "short read"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsSubstring(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap("format.Load", KindStreamIO, cause, "boom")

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestErrorIs(t *testing.T) {
	a := New("hnsw.Insert", KindIndexFull, "full")
	b := New("hnsw.Resize", KindIndexFull, "still full")
	c := New("hnsw.Insert", KindDimensionMismatch, "")

	if !errors.Is(a, b) {
		t.Error("errors with the same Kind should match via Is, regardless of Op/Detail")
	}
	if errors.Is(a, c) {
		t.Error("errors with different Kind should not match")
	}
}

func TestKindIs(t *testing.T) {
	err := IndexFull("hnsw.Insert", 1024)
	if !KindIs(err, KindIndexFull) {
		t.Error("KindIs should recognize a direct *Error")
	}
	if KindIs(err, KindCorruption) {
		t.Error("KindIs should not match the wrong kind")
	}

	wrapped := Wrap("voyager.AddItems", KindStreamIO, err, "retry failed")
	if KindIs(wrapped, KindIndexFull) {
		t.Error("KindIs should not unwrap past the outermost *Error kind by default")
	}
}

func TestConstructors(t *testing.T) {
	if got := DimensionMismatch("x", 2, 3).Kind; got != KindDimensionMismatch {
		t.Errorf("DimensionMismatch kind = %v", got)
	}
	if got := IndexCannotBeShrunk("hnsw.Resize", 10, 20).Kind; got != KindIndexCannotBeShrunk {
		t.Errorf("IndexCannotBeShrunk kind = %v", got)
	}
	if got := NotEnoughElements("hnsw.Search", 5, 2).Kind; got != KindNotEnoughElements {
		t.Errorf("NotEnoughElements kind = %v", got)
	}

	low := UnsupportedVersion("format.Load", 5)
	if !containsSubstring(low.Detail, "upgrading") {
		t.Errorf("version < 20 should hint at upgrading, got %q", low.Detail)
	}
	high := UnsupportedVersion("format.Load", 25)
	if !containsSubstring(high.Detail, "corrupt") {
		t.Errorf("version >= 20 should hint at corruption, got %q", high.Detail)
	}
}
