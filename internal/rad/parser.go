package rad

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/codec"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/lineio"
	"github.com/vk/radioedit/internal/radioerr"
)

// Extension is the file suffix of radio descriptions.
const Extension = ".rad"

// block keywords
const (
	kwEnum    = "enum"
	kwEndEnum = "endenum"
	kwAltName = "altname"
	kwList    = "list"
	kwEndList = "endlist"
	kwTab     = "tab"
	kwEndTab  = "endtab"
)

// noStorage is the address token of fields that occupy no bits.
const noStorage = "-"

// ParseFile reads and parses the description at path. The schema is named
// after the file, without its extension.
func ParseFile(ctx context.Context, path string, types *codec.Registry) (*Schema, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing radio description.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, &radioerr.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), Extension)
	s, err := parse(path, name, f, types)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed radio description.", "radio", s.Name, "sections", len(s.Sections))
	return s, nil
}

// Parse parses a description from r. file is used in error messages only.
// Nothing is returned unless the whole description is valid.
func Parse(file string, r io.Reader, types *codec.Registry) (*Schema, error) {
	name := strings.TrimSuffix(filepath.Base(file), Extension)
	return parse(file, name, r, types)
}

func parse(file, name string, r io.Reader, types *codec.Registry) (*Schema, error) {
	if types == nil {
		types = codec.NewRegistry()
	}
	p := &parser{
		file:   file,
		schema: &Schema{Name: name, types: types.Clone()},
	}

	lr := lineio.NewReader(r)
	for {
		line, ok, err := lr.Next()
		if err != nil {
			return nil, &radioerr.IOError{Op: "read", Path: file, Err: err}
		}
		if !ok {
			break
		}
		p.line = line.Num
		tokens, err := lineio.Tokenize(line.Text)
		if err != nil {
			return nil, p.errorf("%v", err)
		}
		if len(tokens) == 0 {
			continue
		}
		if err := p.handle(tokens); err != nil {
			return nil, err
		}
	}

	if p.state != stateTop {
		return nil, radioerr.Parsef(file, p.openedAt, "%s %q is not closed", p.state, p.blockName())
	}
	return p.schema, nil
}

type parseState int

const (
	stateTop parseState = iota
	stateEnum
	stateList
	stateTab
)

func (s parseState) String() string {
	switch s {
	case stateEnum:
		return kwEnum
	case stateList:
		return kwList
	case stateTab:
		return kwTab
	default:
		return "top level"
	}
}

type parser struct {
	file   string
	line   int
	schema *Schema

	state    parseState
	openedAt int
	enum     *codec.Enumeration
	section  *Section
	rowBytes uint64
}

func (p *parser) errorf(format string, args ...any) error {
	return radioerr.Parsef(p.file, p.line, format, args...)
}

func (p *parser) blockName() string {
	if p.state == stateEnum {
		return p.enum.Name
	}
	return p.section.Name
}

func (p *parser) handle(tokens []string) error {
	switch p.state {
	case stateTop:
		return p.openBlock(tokens)
	case stateEnum:
		return p.enumLine(tokens)
	default:
		return p.fieldLine(tokens)
	}
}

func (p *parser) openBlock(tokens []string) error {
	switch tokens[0] {
	case kwEnum:
		if len(tokens) != 2 {
			return p.errorf("expected: enum <name>")
		}
		if _, exists := p.schema.types.Lookup(tokens[1]); exists {
			return p.errorf("type %q already defined", tokens[1])
		}
		p.enum = codec.NewEnumeration(tokens[1])
		p.state = stateEnum

	case kwList:
		if len(tokens) != 3 && len(tokens) != 4 {
			return p.errorf("expected: list <name> <rows> [<row_bytes>]")
		}
		if err := p.newSection(tokens[1], Repeated); err != nil {
			return err
		}
		rows, err := addr.ParseNumber(tokens[2])
		if err != nil {
			return p.errorf("row count: %v", err)
		}
		if rows == 0 || rows > 1<<20 {
			return p.errorf("row count %d out of range", rows)
		}
		p.section.Rows = int(rows)
		p.rowBytes = 0
		if len(tokens) == 4 {
			p.rowBytes, err = addr.ParseNumber(tokens[3])
			if err != nil {
				return p.errorf("row size: %v", err)
			}
			if p.rowBytes == 0 || p.rowBytes > 1<<24 {
				return p.errorf("row size %d out of range", p.rowBytes)
			}
		}
		p.state = stateList

	case kwTab:
		if len(tokens) != 2 {
			return p.errorf("expected: tab <name>")
		}
		if err := p.newSection(tokens[1], Flat); err != nil {
			return err
		}
		p.section.Rows = 1
		p.state = stateTab

	default:
		return p.errorf("invalid token %q, expected enum, list or tab", tokens[0])
	}
	p.openedAt = p.line
	return nil
}

func (p *parser) newSection(name string, kind SectionKind) error {
	if _, exists := p.schema.Section(name); exists {
		return p.errorf("section %q already defined", name)
	}
	p.section = &Section{Name: name, Kind: kind, Line: p.line}
	return nil
}

func (p *parser) enumLine(tokens []string) error {
	switch tokens[0] {
	case kwEndEnum:
		if len(tokens) != 1 {
			return p.errorf("unexpected text after %s", kwEndEnum)
		}
		if p.enum.Len() == 0 {
			return p.errorf("enum %q has no values", p.enum.Name)
		}
		c := &codec.Codec{Name: p.enum.Name, Kind: codec.KindEnum, Enum: p.enum}
		if err := p.schema.types.Register(c); err != nil {
			return p.errorf("%v", err)
		}
		p.enum = nil
		p.state = stateTop
		return nil

	case kwAltName:
		if len(tokens) != 2 {
			return p.errorf("expected: altname <label>")
		}
		if err := p.enum.AddAlternate(tokens[1]); err != nil {
			return p.errorf("%v", err)
		}
		return nil

	case kwEnum, kwList, kwTab, kwEndList, kwEndTab:
		return p.errorf("%s inside enum %q, missing %s", tokens[0], p.enum.Name, kwEndEnum)
	}

	if len(tokens) != 2 {
		return p.errorf("expected: <value> <label>")
	}
	v, err := addr.ParseNumber(tokens[0])
	if err != nil {
		return p.errorf("enum value: %v", err)
	}
	if err := p.enum.Add(v, tokens[1]); err != nil {
		return p.errorf("%v", err)
	}
	return nil
}

func (p *parser) fieldLine(tokens []string) error {
	end := kwEndTab
	if p.state == stateList {
		end = kwEndList
	}

	switch tokens[0] {
	case end:
		if len(tokens) != 1 {
			return p.errorf("unexpected text after %s", end)
		}
		return p.closeSection()
	case kwEnum, kwList, kwTab, kwEndEnum, kwEndList, kwEndTab:
		return p.errorf("%s inside %s %q, missing %s", tokens[0], p.state, p.section.Name, end)
	}

	if len(tokens) < 3 {
		return p.errorf("expected: <name> <address> <type>")
	}
	name := tokens[0]
	typeName := tokens[len(tokens)-1]
	rawAddr := strings.Join(tokens[1:len(tokens)-1], "")

	if _, exists := p.section.Field(name); exists {
		return p.errorf("field %q already defined in %q", name, p.section.Name)
	}
	c, ok := p.schema.types.Lookup(typeName)
	if !ok {
		return p.errorf("unknown type %q", typeName)
	}

	var spec addr.Spec
	if rawAddr == noStorage {
		if c.Kind != codec.KindEmpty {
			return p.errorf("field %q of type %s needs an address", name, typeName)
		}
	} else {
		var err error
		spec, err = addr.Parse(rawAddr)
		if err != nil {
			return p.errorf("field %q: %v", name, err)
		}
	}

	p.section.Fields = append(p.section.Fields, &Field{Name: name, Addr: spec, Codec: c, Line: p.line})
	return nil
}

// closeSection applies the row stride of a list and validates every field
// against its codec before the section is added.
func (p *parser) closeSection() error {
	sec := p.section
	if p.state == stateList {
		stride := p.rowBytes * 8
		if stride == 0 {
			stride = rowSpan(sec) * 8
		}
		if stride > 1<<32-1 {
			return p.errorf("row stride of %q too large", sec.Name)
		}
		for _, f := range sec.Fields {
			f.Addr = f.Addr.WithStride(uint32(stride))
		}
		sec.RowBytes = int(stride / 8)
	}

	for _, f := range sec.Fields {
		if err := f.Codec.CheckAddress(f.Addr); err != nil {
			return radioerr.Parsef(p.file, f.Line, "field %q: %v", f.Name, err)
		}
	}

	p.schema.Sections = append(p.schema.Sections, sec)
	p.section = nil
	p.state = stateTop
	return nil
}

// rowSpan is the number of bytes covered by one row of a list: from the
// lowest byte any field touches to the highest.
func rowSpan(sec *Section) uint64 {
	var lo, hi uint64
	seen := false
	for _, f := range sec.Fields {
		if f.Addr.IsEmpty() {
			continue
		}
		start, end := f.Addr.Span()
		if !seen || start < lo {
			lo = start
		}
		if !seen || end > hi {
			hi = end
		}
		seen = true
	}
	return hi - lo
}
