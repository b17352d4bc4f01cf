package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/radioedit/internal/catalog"
	"github.com/vk/radioedit/internal/codec"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/image"
	"github.com/vk/radioedit/internal/rad"
	"github.com/vk/radioedit/internal/radioerr"
)

var (
	// ErrUnknownSection is returned for a section name the schema lacks.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownField is returned for a field name the section lacks.
	ErrUnknownField = errors.New("unknown field")
	// ErrRow is returned for a row index outside the section.
	ErrRow = errors.New("row out of range")
)

// Session owns one image and the schema that describes it. A Session is
// not safe for concurrent use; separate sessions share nothing.
type Session struct {
	radio  catalog.Radio
	schema *rad.Schema
	buf    *image.Buffer
}

// New assembles a session from parts that are already loaded.
func New(radio catalog.Radio, schema *rad.Schema, buf *image.Buffer) *Session {
	return &Session{radio: radio, schema: schema, buf: buf}
}

// Open loads the image at path, identifies it against the catalog in
// configDir and parses the matching "<radio>.rad" from the same directory.
func Open(ctx context.Context, path, configDir string) (*Session, error) {
	cat, err := catalog.Load(ctx, configDir)
	if err != nil {
		return nil, err
	}
	buf, err := image.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return OpenBuffer(ctx, buf, cat, configDir)
}

// OpenBuffer is Open for an image already in memory.
func OpenBuffer(ctx context.Context, buf *image.Buffer, cat *catalog.Catalog, schemaDir string) (*Session, error) {
	logger := ctxlog.FromContext(ctx)

	radio, err := cat.Identify(buf)
	if err != nil {
		if buf.Path() != "" {
			return nil, fmt.Errorf("%s: %w", buf.Path(), err)
		}
		return nil, err
	}
	logger.Debug("Identified image.", "radio", radio.Name, "path", buf.Path())

	if radio.FileSize != 0 && buf.Len() != radio.FileSize {
		return nil, radioerr.Dataf("%s images are %d bytes, this one is %d", radio.Name, radio.FileSize, buf.Len())
	}

	schema, err := rad.ParseFile(ctx, SchemaPath(schemaDir, radio.Name), codec.NewRegistry())
	if err != nil {
		return nil, err
	}
	return New(radio, schema, buf), nil
}

// Identify reports which radio produced the image at path without loading
// its schema.
func Identify(ctx context.Context, path, configDir string) (catalog.Radio, error) {
	cat, err := catalog.Load(ctx, configDir)
	if err != nil {
		return catalog.Radio{}, err
	}
	buf, err := image.Load(ctx, path)
	if err != nil {
		return catalog.Radio{}, err
	}
	return cat.Identify(buf)
}

// SchemaPath is where the description of a radio lives.
func SchemaPath(dir, radio string) string {
	return filepath.Join(dir, radio+rad.Extension)
}

// Radio returns the identified radio.
func (s *Session) Radio() catalog.Radio {
	return s.radio
}

// Schema returns the schema of the image.
func (s *Session) Schema() *rad.Schema {
	return s.schema
}

// Sections returns the schema's sections in declaration order.
func (s *Session) Sections() []*rad.Section {
	return s.schema.Sections
}

// Path returns the path the image was loaded from or last saved to.
func (s *Session) Path() string {
	return s.buf.Path()
}

// Dirty reports whether the image changed since it was loaded or saved.
func (s *Session) Dirty() bool {
	return s.buf.Dirty()
}

// Image returns a copy of the current image bytes.
func (s *Session) Image() []byte {
	return s.buf.Bytes()
}

// Lookup resolves a section and field and checks the row.
func (s *Session) Lookup(section, field string, row int) (*rad.Section, *rad.Field, error) {
	sec, ok := s.schema.Section(section)
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownSection, section)
	}
	f, ok := sec.Field(field)
	if !ok {
		return nil, nil, fmt.Errorf("%w %q in %s", ErrUnknownField, field, section)
	}
	if row < 0 || row >= sec.Rows {
		return nil, nil, fmt.Errorf("%w: %s has %d rows, got %d", ErrRow, section, sec.Rows, row)
	}
	return sec, f, nil
}

// Get decodes a field.
func (s *Session) Get(section, field string, row int) (codec.Value, error) {
	_, f, err := s.Lookup(section, field, row)
	if err != nil {
		return codec.Value{}, err
	}
	return f.Codec.Decode(s.buf, f.Addr, row)
}

// GetStored decodes a field for export, keeping values that have no name
// in their stored form.
func (s *Session) GetStored(section, field string, row int) (codec.Value, error) {
	_, f, err := s.Lookup(section, field, row)
	if err != nil {
		return codec.Value{}, err
	}
	return f.Codec.DecodeStored(s.buf, f.Addr, row)
}

// GetText decodes a field and renders it for display.
func (s *Session) GetText(section, field string, row int) (string, error) {
	_, f, err := s.Lookup(section, field, row)
	if err != nil {
		return "", err
	}
	v, err := f.Codec.Decode(s.buf, f.Addr, row)
	if err != nil {
		return "", err
	}
	return f.Codec.Format(v), nil
}

// Set encodes v into a field.
func (s *Session) Set(section, field string, row int, v codec.Value) error {
	_, f, err := s.Lookup(section, field, row)
	if err != nil {
		return err
	}
	return f.Codec.Encode(v, s.buf, f.Addr, row)
}

// SetText parses user input with the field's codec and stores it.
func (s *Session) SetText(section, field string, row int, text string) error {
	_, f, err := s.Lookup(section, field, row)
	if err != nil {
		return err
	}
	v, err := f.Codec.ParseText(text)
	if err != nil {
		return fmt.Errorf("%s.%s[%d]: %w", section, field, row, err)
	}
	return f.Codec.Encode(v, s.buf, f.Addr, row)
}

// Save writes the image to path, or back to where it came from when path
// is empty.
func (s *Session) Save(ctx context.Context, path string) error {
	if err := s.buf.Write(ctx, path); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("Saved image.", "radio", s.radio.Name, "path", s.buf.Path())
	return nil
}
