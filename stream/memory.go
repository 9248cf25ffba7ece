package stream

import (
	"io"

	verrors "github.com/spotify/voyager/errors"
)

// MemoryInput is an Input over an in-memory byte slice.
type MemoryInput struct {
	data []byte
	pos  int64
}

// NewMemoryInput wraps data for reading. data is not copied; callers must
// not mutate it while the stream is in use.
func NewMemoryInput(data []byte) *MemoryInput {
	return &MemoryInput{data: data}
}

func (m *MemoryInput) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *MemoryInput) ReadFull(p []byte) error {
	n, err := m.Read(p)
	if n == len(p) {
		return nil
	}
	if err != nil && err != io.EOF {
		return shortRead("stream.read", err, len(p), n)
	}
	return shortRead("stream.read", nil, len(p), n)
}

func (m *MemoryInput) Peek(n int) ([]byte, error) {
	end := m.pos + int64(n)
	if end > int64(len(m.data)) {
		end = int64(len(m.data))
	}
	return m.data[m.pos:end], nil
}

func (m *MemoryInput) Tell() int64 { return m.pos }

func (m *MemoryInput) Len() int64 { return int64(len(m.data)) }

func (m *MemoryInput) Seek(off int64) error {
	if off < 0 || off > int64(len(m.data)) {
		return verrors.StreamIO("stream.seek", nil, len(m.data), int(off))
	}
	m.pos = off
	return nil
}

func (m *MemoryInput) Seekable() bool { return true }

func (m *MemoryInput) Exhausted() bool { return m.pos >= int64(len(m.data)) }

// MemoryOutput is an Output that accumulates bytes in memory.
type MemoryOutput struct {
	buf []byte
}

// NewMemoryOutput returns an empty MemoryOutput.
func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{}
}

func (m *MemoryOutput) Write(p []byte) error {
	m.buf = append(m.buf, p...)
	return nil
}

func (m *MemoryOutput) Flush() error { return nil }

func (m *MemoryOutput) Tell() int64 { return int64(len(m.buf)) }

// Bytes returns the accumulated bytes. The returned slice aliases the
// output's internal buffer.
func (m *MemoryOutput) Bytes() []byte { return m.buf }
