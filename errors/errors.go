// Package errors provides the structured error type used throughout the
// Voyager core. Every error surfaced across package boundaries is a *Error
// so that callers — and the façade's internal retry loop (see package
// voyager) — can branch on Kind rather than parsing messages.
package errors

import (
	"fmt"
	"strings"
)

// Op identifies the operation that produced the error, e.g. "hnsw.Insert".
type Op string

// Kind categorizes the error. Names follow spec §7.
type Kind string

const (
	KindDimensionMismatch   Kind = "dimension_mismatch"
	KindValueOutOfRange     Kind = "value_out_of_range"
	KindLabelMismatch       Kind = "label_mismatch"
	KindUnknownLabel        Kind = "unknown_label"
	KindIndexFull           Kind = "index_full"
	KindIndexCannotBeShrunk Kind = "index_cannot_be_shrunk"
	KindEfTooSmall          Kind = "ef_too_small"
	KindNotEnoughElements   Kind = "not_enough_elements"
	KindCorruption          Kind = "corruption"
	KindUnsupportedVersion  Kind = "unsupported_version"
	KindStreamIO            Kind = "stream_io"
)

// Error is the structured error type used throughout the core.
type Error struct {
	Cause  error
	Op     Op
	Kind   Kind
	Detail string
	// Label is set for errors annotated with the offending label (Corruption,
	// UnknownLabel).
	Label    uint64
	HasLabel bool
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.HasLabel {
		b.WriteString(fmt.Sprintf(" (label %d)", e.Label))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind. This lets
// callers write errors.Is(err, voyagererr.New("", KindIndexFull, "")) or, more
// commonly, compare against a Kind directly via KindIs.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindIs reports whether err is a *Error of the given kind.
func KindIs(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ve, ok := err.(*Error); ok {
			e = ve
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}

// New constructs an *Error. detail may use fmt.Sprintf-style formatting
// when args are supplied.
func New(op Op, kind Kind, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Op: op, Kind: kind, Detail: detail}
}

// Wrap constructs an *Error that wraps a lower-level cause, e.g. an I/O
// failure surfaced as KindStreamIO.
func Wrap(op Op, kind Kind, cause error, detail string, args ...any) *Error {
	e := New(op, kind, detail, args...)
	e.Cause = cause
	return e
}

// WithLabel annotates e with the offending label and returns e for chaining.
func (e *Error) WithLabel(label uint64) *Error {
	e.Label = label
	e.HasLabel = true
	return e
}

// DimensionMismatch reports a vector/matrix whose width does not match D.
func DimensionMismatch(op Op, got, want int) *Error {
	return New(op, KindDimensionMismatch, "vector has %d dimensions, index expects %d", got, want)
}

// ValueOutOfRange reports a scalar the storage type cannot represent.
func ValueOutOfRange(op Op, value float32, lo, hi float64) *Error {
	return New(op, KindValueOutOfRange, "value %v outside representable range [%v, %v]", value, lo, hi)
}

// LabelMismatch reports a batch whose label count disagrees with its vector count.
func LabelMismatch(op Op, labels, vectors int) *Error {
	return New(op, KindLabelMismatch, "%d labels for %d vectors", labels, vectors)
}

// UnknownLabel reports a lookup/delete against a label the index has never seen.
func UnknownLabel(op Op, label uint64) *Error {
	return New(op, KindUnknownLabel, "label not present in index").WithLabel(label)
}

// IndexFull reports that slot allocation failed because num_elements == max_elements.
func IndexFull(op Op, maxElements uint32) *Error {
	return New(op, KindIndexFull, "index is at capacity (%d elements)", maxElements)
}

// IndexCannotBeShrunk reports a resize request below the current element count.
func IndexCannotBeShrunk(op Op, requested, numElements uint32) *Error {
	return New(op, KindIndexCannotBeShrunk, "requested size %d is below current element count %d", requested, numElements)
}

// EfTooSmall reports ef < k during query.
func EfTooSmall(op Op, ef, k int) *Error {
	return New(op, KindEfTooSmall, "ef (%d) must be >= k (%d)", ef, k)
}

// NotEnoughElements reports fewer than k non-deleted elements in the index.
func NotEnoughElements(op Op, k int, available int) *Error {
	return New(op, KindNotEnoughElements, "requested %d results but only %d non-deleted elements are available", k, available)
}

// Corruption reports a broken invariant: a distance below the clamp
// tolerance band, or a graph structure that cannot be trusted.
func Corruption(op Op, detail string, args ...any) *Error {
	return New(op, KindCorruption, detail, args...)
}

// UnsupportedVersion reports an on-disk version outside the supported set.
// Versions below 20 hint at a library upgrade; versions at or above 20 hint
// at corruption (spec §4.G).
func UnsupportedVersion(op Op, version int32) *Error {
	if version < 20 {
		return New(op, KindUnsupportedVersion, "file format version %d requires upgrading this library", version)
	}
	return New(op, KindUnsupportedVersion, "file format version %d is not recognized; the file may be corrupt", version)
}

// StreamIO reports a read/write failure, including the byte counts involved.
func StreamIO(op Op, cause error, expected, got int) *Error {
	return Wrap(op, KindStreamIO, cause, "expected %d bytes, got %d", expected, got)
}
