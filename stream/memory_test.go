package stream

import (
	"bytes"
	"io"
	"testing"
)

func TestMemoryInputReadFull(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	in := NewMemoryInput(data)

	got := make([]byte, 3)
	if err := in.ReadFull(got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("ReadFull = %v, want [1 2 3]", got)
	}
	if in.Tell() != 3 {
		t.Errorf("Tell() = %d, want 3", in.Tell())
	}

	rest := make([]byte, 2)
	if err := in.ReadFull(rest); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if !bytes.Equal(rest, []byte{4, 5}) {
		t.Errorf("ReadFull = %v, want [4 5]", rest)
	}
	if !in.Exhausted() {
		t.Error("expected Exhausted() after consuming all bytes")
	}
}

func TestMemoryInputReadFullShort(t *testing.T) {
	in := NewMemoryInput([]byte{1, 2})
	buf := make([]byte, 5)
	if err := in.ReadFull(buf); err == nil {
		t.Error("expected error reading past end of buffer")
	}
}

func TestMemoryInputPeekDoesNotAdvance(t *testing.T) {
	in := NewMemoryInput([]byte{1, 2, 3, 4})

	peeked, err := in.Peek(2)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if !bytes.Equal(peeked, []byte{1, 2}) {
		t.Errorf("Peek = %v, want [1 2]", peeked)
	}
	if in.Tell() != 0 {
		t.Errorf("Peek must not advance position, Tell() = %d", in.Tell())
	}

	buf := make([]byte, 2)
	if err := in.ReadFull(buf); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if !bytes.Equal(buf, peeked) {
		t.Errorf("data after Peek should match the peeked bytes, got %v want %v", buf, peeked)
	}
}

func TestMemoryInputPeekPastEnd(t *testing.T) {
	in := NewMemoryInput([]byte{1, 2})
	peeked, err := in.Peek(10)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if len(peeked) != 2 {
		t.Errorf("Peek past end should return only what's available, got %d bytes", len(peeked))
	}
}

func TestMemoryInputSeek(t *testing.T) {
	in := NewMemoryInput([]byte{1, 2, 3, 4, 5})
	if err := in.Seek(3); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	b, err := in.Peek(1)
	if err != nil || len(b) != 1 || b[0] != 4 {
		t.Errorf("after Seek(3), Peek(1) = %v, %v, want [4]", b, err)
	}

	if err := in.Seek(-1); err == nil {
		t.Error("expected error seeking to negative offset")
	}
	if err := in.Seek(100); err == nil {
		t.Error("expected error seeking past end")
	}
}

func TestMemoryInputLenAndSeekable(t *testing.T) {
	in := NewMemoryInput([]byte{1, 2, 3})
	if in.Len() != 3 {
		t.Errorf("Len() = %d, want 3", in.Len())
	}
	if !in.Seekable() {
		t.Error("MemoryInput must report Seekable() == true")
	}
}

func TestMemoryOutputRoundTrip(t *testing.T) {
	out := NewMemoryOutput()
	if err := out.Write([]byte{1, 2, 3}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := out.Write([]byte{4, 5}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.Tell() != 5 {
		t.Errorf("Tell() = %d, want 5", out.Tell())
	}

	in := NewMemoryInput(out.Bytes())
	got, err := io.ReadAll(struct{ io.Reader }{readerFunc(in.Read)})
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("round trip = %v, want [1 2 3 4 5]", got)
	}
}

type readerFunc func([]byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }
