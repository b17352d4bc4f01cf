package rad

import (
	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/codec"
)

// SectionKind distinguishes flat field groups from repeated row groups.
type SectionKind int

const (
	// Flat is a tab block: every field appears once.
	Flat SectionKind = iota
	// Repeated is a list block: every field appears once per row.
	Repeated
)

func (k SectionKind) String() string {
	if k == Repeated {
		return "list"
	}
	return "tab"
}

// Field is one named, typed location in the image.
type Field struct {
	Name  string
	Addr  addr.Spec
	Codec *codec.Codec
	// Line is where the field was declared.
	Line int
}

// Section is a top-level group of fields.
type Section struct {
	Name string
	Kind SectionKind
	// Rows is the number of rows of a Repeated section, 1 for Flat.
	Rows int
	// RowBytes is the distance between rows of a Repeated section.
	RowBytes int
	Fields   []*Field
	Line     int
}

// Field finds a field by name.
func (s *Section) Field(name string) (*Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Schema is the parsed description of one radio model. It is read-only once
// returned by the parser.
type Schema struct {
	Name     string
	Sections []*Section

	types *codec.Registry
}

// Section finds a section by name.
func (s *Schema) Section(name string) (*Section, bool) {
	for _, sec := range s.Sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return nil, false
}

// Type resolves a type name the schema knows, built-in or declared.
func (s *Schema) Type(name string) (*codec.Codec, bool) {
	if s.types == nil {
		return nil, false
	}
	return s.types.Lookup(name)
}

// Enums returns the enumerations declared by the description, by name.
func (s *Schema) Enums() []*codec.Codec {
	if s.types == nil {
		return nil
	}
	var out []*codec.Codec
	for _, name := range s.types.Names() {
		c, _ := s.types.Lookup(name)
		if c.Kind == codec.KindEnum {
			out = append(out, c)
		}
	}
	return out
}
