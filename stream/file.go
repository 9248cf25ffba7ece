package stream

import (
	"io"
	"os"

	verrors "github.com/spotify/voyager/errors"
)

// FileInput is an Input backed by an *os.File opened for reading.
type FileInput struct {
	f    *os.File
	size int64
}

// OpenFile opens path for reading and returns a FileInput.
func OpenFile(path string) (*FileInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, verrors.StreamIO("stream.open", err, 0, 0)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, verrors.StreamIO("stream.open", err, 0, 0)
	}
	return &FileInput{f: f, size: info.Size()}, nil
}

func (fi *FileInput) Read(p []byte) (int, error) {
	return fi.f.Read(p)
}

func (fi *FileInput) ReadFull(p []byte) error {
	n, err := io.ReadFull(fi.f, p)
	if err != nil {
		return shortRead("stream.read", err, len(p), n)
	}
	return nil
}

func (fi *FileInput) Peek(n int) ([]byte, error) {
	pos, err := fi.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, verrors.StreamIO("stream.peek", err, n, 0)
	}
	buf := make([]byte, n)
	got, err := io.ReadFull(fi.f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, verrors.StreamIO("stream.peek", err, n, got)
	}
	if _, serr := fi.f.Seek(pos, io.SeekStart); serr != nil {
		return nil, verrors.StreamIO("stream.peek", serr, n, got)
	}
	return buf[:got], nil
}

func (fi *FileInput) Tell() int64 {
	pos, _ := fi.f.Seek(0, io.SeekCurrent)
	return pos
}

func (fi *FileInput) Len() int64 { return fi.size }

func (fi *FileInput) Seek(off int64) error {
	_, err := fi.f.Seek(off, io.SeekStart)
	if err != nil {
		return verrors.StreamIO("stream.seek", err, int(fi.size), int(off))
	}
	return nil
}

func (fi *FileInput) Seekable() bool { return true }

func (fi *FileInput) Exhausted() bool { return fi.Tell() >= fi.size }

// Close releases the underlying file descriptor.
func (fi *FileInput) Close() error { return fi.f.Close() }

// FileOutput is an Output backed by an *os.File opened for writing.
type FileOutput struct {
	f       *os.File
	written int64
}

// CreateFile creates (or truncates) path for writing and returns a
// FileOutput.
func CreateFile(path string) (*FileOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, verrors.StreamIO("stream.create", err, 0, 0)
	}
	return &FileOutput{f: f}, nil
}

func (fo *FileOutput) Write(p []byte) error {
	n, err := fo.f.Write(p)
	fo.written += int64(n)
	if err != nil {
		return shortRead("stream.write", err, len(p), n)
	}
	if n != len(p) {
		return shortRead("stream.write", nil, len(p), n)
	}
	return nil
}

func (fo *FileOutput) Flush() error {
	if err := fo.f.Sync(); err != nil {
		return verrors.StreamIO("stream.flush", err, 0, 0)
	}
	return nil
}

func (fo *FileOutput) Tell() int64 { return fo.written }

// Close releases the underlying file descriptor.
func (fo *FileOutput) Close() error { return fo.f.Close() }
