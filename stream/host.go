package stream

import (
	verrors "github.com/spotify/voyager/errors"
)

// HostReader is the minimal contract a host-language file-like object
// (e.g. a Python or JVM stream passed across the language boundary) must
// satisfy to back a HostInput. Implementations are supplied by the binding
// layer; this package never talks to a host runtime directly.
type HostReader interface {
	ReadChunk(n int) ([]byte, error)
	Tell() (int64, error)
	Seek(off int64) error
	Seekable() bool
}

// HostWriter is the write-side counterpart of HostReader.
type HostWriter interface {
	WriteChunk(p []byte) error
	Flush() error
	Seekable() bool
}

// HostInput adapts a host-supplied file-like object to Input, chunking each
// underlying call to at most hostChunkLimit bytes (spec §4.A) so a single
// read request from the graph can't force the host to materialize an
// unbounded buffer. It keeps a small buffered prefix so Peek works even
// when the host object itself is not seekable.
type HostInput struct {
	host     HostReader
	pos      int64
	peekBuf  []byte
	consumed bool // true once any non-peek read has happened past peekBuf
}

// NewHostInput wraps host for reading.
func NewHostInput(host HostReader) *HostInput {
	return &HostInput{host: host}
}

func (h *HostInput) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		want := len(p) - total
		if want > hostChunkLimit {
			want = hostChunkLimit
		}
		var chunk []byte
		if len(h.peekBuf) > 0 {
			n := copy(p[total:total+want], h.peekBuf)
			chunk = h.peekBuf[:n]
			h.peekBuf = h.peekBuf[n:]
			total += n
			h.pos += int64(n)
			continue
		}
		var err error
		chunk, err = h.host.ReadChunk(want)
		if err != nil {
			return total, err
		}
		if len(chunk) == 0 {
			break
		}
		h.consumed = true
		n := copy(p[total:], chunk)
		total += n
		h.pos += int64(n)
	}
	return total, nil
}

func (h *HostInput) ReadFull(p []byte) error {
	n, err := h.Read(p)
	if n != len(p) {
		return shortRead("stream.host_read", err, len(p), n)
	}
	return nil
}

func (h *HostInput) Peek(n int) ([]byte, error) {
	for len(h.peekBuf) < n {
		want := n - len(h.peekBuf)
		if want > hostChunkLimit {
			want = hostChunkLimit
		}
		chunk, err := h.host.ReadChunk(want)
		if err != nil {
			return nil, verrors.StreamIO("stream.peek", err, n, len(h.peekBuf))
		}
		if len(chunk) == 0 {
			break
		}
		h.peekBuf = append(h.peekBuf, chunk...)
	}
	if n > len(h.peekBuf) {
		n = len(h.peekBuf)
	}
	return h.peekBuf[:n], nil
}

func (h *HostInput) Tell() int64 { return h.pos }

// Len is unknown for a general host stream (spec §4.A: "-1 if unknown").
func (h *HostInput) Len() int64 { return -1 }

func (h *HostInput) Seek(off int64) error {
	if !h.host.Seekable() {
		return verrors.StreamIO("stream.seek", nil, 0, 0)
	}
	if err := h.host.Seek(off); err != nil {
		return verrors.StreamIO("stream.seek", err, 0, 0)
	}
	h.pos = off
	h.peekBuf = nil
	return nil
}

func (h *HostInput) Seekable() bool { return h.host.Seekable() }

func (h *HostInput) Exhausted() bool {
	if len(h.peekBuf) > 0 {
		return false
	}
	chunk, err := h.host.ReadChunk(1)
	if err != nil || len(chunk) == 0 {
		return true
	}
	h.peekBuf = chunk
	return false
}

// HostOutput adapts a host-supplied file-like object to Output, chunking
// writes to at most hostChunkLimit bytes per underlying call.
type HostOutput struct {
	host    HostWriter
	written int64
}

// NewHostOutput wraps host for writing.
func NewHostOutput(host HostWriter) *HostOutput {
	return &HostOutput{host: host}
}

func (h *HostOutput) Write(p []byte) error {
	for off := 0; off < len(p); {
		end := off + hostChunkLimit
		if end > len(p) {
			end = len(p)
		}
		if err := h.host.WriteChunk(p[off:end]); err != nil {
			return verrors.StreamIO("stream.host_write", err, len(p), off)
		}
		off = end
	}
	h.written += int64(len(p))
	return nil
}

func (h *HostOutput) Flush() error {
	if err := h.host.Flush(); err != nil {
		return verrors.StreamIO("stream.flush", err, 0, 0)
	}
	return nil
}

func (h *HostOutput) Tell() int64 { return h.written }
