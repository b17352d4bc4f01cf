package dump

import "github.com/vk/radioedit/internal/codec"

// Document is the content of an image grouped the way its schema groups it.
type Document struct {
	Radio    string
	Sections []*Section
}

// Section holds the fields of a flat group or the rows of a repeated one.
type Section struct {
	Name     string
	Repeated bool
	// Fields is used by flat sections.
	Fields []Field
	// Rows is used by repeated sections.
	Rows []Row
}

// Row is one row of a repeated section.
type Row struct {
	Index  int
	Fields []Field
}

// Field is one named value. Raw numeric fields carry an integer value,
// everything else text.
type Field struct {
	Name  string
	Value codec.Value
}

// Section finds a section by name.
func (d *Document) Section(name string) (*Section, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Count returns the number of field values in the document.
func (d *Document) Count() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Fields)
		for _, r := range s.Rows {
			n += len(r.Fields)
		}
	}
	return n
}
