package config

import (
	"context"
	"io"

	"github.com/vk/radioedit/internal/dump"
)

// Loader is the interface for a format-specific settings loader.
type Loader interface {
	// Load reads the settings file at path. A missing file yields empty
	// settings and no error.
	Load(ctx context.Context, path string) (Settings, error)
}

// DumpFormat is the interface for a format-specific encoding of dump
// documents.
type DumpFormat interface {
	// Name is the value selecting this format on the command line.
	Name() string
	// Encode writes doc to w.
	Encode(ctx context.Context, w io.Writer, doc *dump.Document) error
	// Decode reads a document from r. file is used in error messages only.
	Decode(ctx context.Context, file string, r io.Reader) (*dump.Document, error)
}
