package image

import (
	"context"
	"os"

	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/radioerr"
)

// Buffer is a fixed-length, mutable memory image.
type Buffer struct {
	path  string
	data  []byte
	dirty bool
}

// New creates an in-memory buffer holding a copy of data. It has no backing
// path until Write is called with one.
func New(data []byte) *Buffer {
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Buffer{data: cp}
}

// Load reads the whole file at path into a new, clean buffer.
func Load(ctx context.Context, path string) (*Buffer, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading image file.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &radioerr.IOError{Op: "read", Path: path, Err: err}
	}

	logger.Debug("Image file read.", "path", path, "bytes", len(data))
	return &Buffer{path: path, data: data}, nil
}

// Len returns the image length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Path returns the file the buffer was loaded from or last written to.
func (b *Buffer) Path() string {
	return b.path
}

// Dirty reports whether the buffer was modified since it was loaded or last
// written.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Bytes returns a copy of the image contents.
func (b *Buffer) Bytes() []byte {
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp
}

// HasPrefix reports whether the image starts with sig.
func (b *Buffer) HasPrefix(sig []byte) bool {
	if len(sig) > len(b.data) {
		return false
	}
	for i, v := range sig {
		if b.data[i] != v {
			return false
		}
	}
	return true
}
