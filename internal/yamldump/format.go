package yamldump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"

	"github.com/vk/radioedit/internal/codec"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/dump"
	"github.com/vk/radioedit/internal/radioerr"
	"gopkg.in/yaml.v3"
)

const (
	kindTab  = "tab"
	kindList = "list"
)

type yamlDoc struct {
	Radio    string         `yaml:"radio,omitempty"`
	Sections []*yamlSection `yaml:"sections"`
}

type yamlSection struct {
	Name   string     `yaml:"name"`
	Kind   string     `yaml:"kind"`
	Fields *yaml.Node `yaml:"fields,omitempty"`
	Rows   []*yamlRow `yaml:"rows,omitempty"`
}

type yamlRow struct {
	Index  int        `yaml:"index"`
	Fields *yaml.Node `yaml:"fields"`
}

// Format is the YAML dump format.
type Format struct{}

// New creates the YAML dump format.
func New() *Format {
	return &Format{}
}

// Name implements config.DumpFormat.
func (f *Format) Name() string {
	return "yaml"
}

// Encode writes doc as YAML.
func (f *Format) Encode(ctx context.Context, w io.Writer, doc *dump.Document) error {
	out := yamlDoc{Radio: doc.Radio}
	for _, sec := range doc.Sections {
		ys := &yamlSection{Name: sec.Name, Kind: kindTab}
		if sec.Repeated {
			ys.Kind = kindList
			for _, row := range sec.Rows {
				ys.Rows = append(ys.Rows, &yamlRow{Index: row.Index, Fields: fieldsNode(row.Fields)})
			}
		} else {
			ys.Fields = fieldsNode(sec.Fields)
		}
		out.Sections = append(out.Sections, ys)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("failed to write YAML dump: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to write YAML dump: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Wrote YAML dump.", "radio", doc.Radio, "values", doc.Count())
	return nil
}

// fieldsNode builds an ordered mapping. Text is always quoted so that
// values such as "146.520" or "0x1234" read back as strings.
func fieldsNode(fields []dump.Field) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fld := range fields {
		var val *yaml.Node
		switch fld.Value.Kind() {
		case codec.ValueInt:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(fld.Value.Int(), 10)}
		case codec.ValueText:
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fld.Value.Text(), Style: yaml.DoubleQuotedStyle}
		default:
			continue
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fld.Name}
		n.Content = append(n.Content, key, val)
	}
	return n
}

// Decode reads a YAML dump. The document is walked as a node tree so that
// field names, which are free-form, can sit next to keys that are checked.
func (f *Format) Decode(ctx context.Context, file string, r io.Reader) (*dump.Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, radioerr.Parsef(file, 0, "empty dump")
		}
		return nil, yamlError(file, err)
	}
	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) == 1 {
		top = top.Content[0]
	}

	doc := &dump.Document{}
	seen := make(map[string]bool)
	err := eachKey(file, top, docKeys, func(key string, val *yaml.Node) error {
		switch key {
		case keyRadio:
			radio, err := scalarText(file, key, val)
			doc.Radio = radio
			return err
		default:
			if isNull(val) {
				return nil
			}
			if val.Kind != yaml.SequenceNode {
				return radioerr.Parsef(file, val.Line, "%s must be a list", key)
			}
			for _, n := range val.Content {
				sec, err := readSection(file, n)
				if err != nil {
					return err
				}
				if seen[sec.Name] {
					return radioerr.Parsef(file, n.Line, "section %q appears twice", sec.Name)
				}
				seen[sec.Name] = true
				doc.Sections = append(doc.Sections, sec)
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Read YAML dump.", "path", file, "sections", len(doc.Sections), "values", doc.Count())
	return doc, nil
}

const (
	keyRadio    = "radio"
	keySections = "sections"
	keyName     = "name"
	keyKind     = "kind"
	keyFields   = "fields"
	keyRows     = "rows"
	keyIndex    = "index"
)

var (
	docKeys     = []string{keyRadio, keySections}
	sectionKeys = []string{keyName, keyKind, keyFields, keyRows}
	rowKeys     = []string{keyIndex, keyFields}
)

// eachKey calls fn for every entry of the mapping n, rejecting keys outside
// allowed and keys given twice.
func eachKey(file string, n *yaml.Node, allowed []string, fn func(key string, val *yaml.Node) error) error {
	if n.Kind != yaml.MappingNode {
		return radioerr.Parsef(file, n.Line, "expected a mapping with keys %v", allowed)
	}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if !slices.Contains(allowed, key.Value) {
			return radioerr.Parsef(file, key.Line, "unknown key %q, expected one of %v", key.Value, allowed)
		}
		if seen[key.Value] {
			return radioerr.Parsef(file, key.Line, "key %q appears twice", key.Value)
		}
		seen[key.Value] = true
		if err := fn(key.Value, val); err != nil {
			return err
		}
	}
	return nil
}

func readSection(file string, n *yaml.Node) (*dump.Section, error) {
	var name, kind string
	var fields, rows *yaml.Node
	err := eachKey(file, n, sectionKeys, func(key string, val *yaml.Node) error {
		var err error
		switch key {
		case keyName:
			name, err = scalarText(file, key, val)
		case keyKind:
			kind, err = scalarText(file, key, val)
		case keyFields:
			fields = val
		case keyRows:
			rows = val
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, radioerr.Parsef(file, n.Line, "section has no name")
	}

	sec := &dump.Section{Name: name}
	switch kind {
	case kindTab:
		if rows != nil && !isNull(rows) {
			return nil, radioerr.Parsef(file, rows.Line, "section %q is a tab and cannot have rows", name)
		}
		sec.Fields, err = readFields(file, fields)
		if err != nil {
			return nil, err
		}
	case kindList:
		if fields != nil && !isNull(fields) {
			return nil, radioerr.Parsef(file, fields.Line, "section %q is a list, values must be given per row", name)
		}
		sec.Repeated = true
		if rows == nil || isNull(rows) {
			break
		}
		if rows.Kind != yaml.SequenceNode {
			return nil, radioerr.Parsef(file, rows.Line, "rows of %q must be a list", name)
		}
		indexes := make(map[int]bool)
		for _, rn := range rows.Content {
			row, err := readRow(file, rn)
			if err != nil {
				return nil, err
			}
			if indexes[row.Index] {
				return nil, radioerr.Parsef(file, rn.Line, "section %q: row %d appears twice", name, row.Index)
			}
			indexes[row.Index] = true
			sec.Rows = append(sec.Rows, row)
		}
	default:
		return nil, radioerr.Parsef(file, n.Line, "section %q: kind must be %q or %q, got %q", name, kindTab, kindList, kind)
	}
	return sec, nil
}

func readRow(file string, n *yaml.Node) (dump.Row, error) {
	row := dump.Row{Index: -1}
	err := eachKey(file, n, rowKeys, func(key string, val *yaml.Node) error {
		if key == keyFields {
			fields, err := readFields(file, val)
			row.Fields = fields
			return err
		}
		var idx int
		if val.Kind != yaml.ScalarNode || val.ShortTag() != "!!int" || val.Decode(&idx) != nil || idx < 0 {
			return radioerr.Parsef(file, val.Line, "row index must be a non-negative integer, got %q", val.Value)
		}
		row.Index = idx
		return nil
	})
	if err != nil {
		return dump.Row{}, err
	}
	if row.Index < 0 {
		return dump.Row{}, radioerr.Parsef(file, n.Line, "row has no index")
	}
	return row, nil
}

func scalarText(file, key string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", radioerr.Parsef(file, n.Line, "%s must be a plain value", key)
	}
	return n.Value, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func readFields(file string, n *yaml.Node) ([]dump.Field, error) {
	if n == nil || isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, radioerr.Parsef(file, n.Line, "fields must be a mapping")
	}

	var fields []dump.Field
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if seen[key.Value] {
			return nil, radioerr.Parsef(file, key.Line, "field %q appears twice", key.Value)
		}
		seen[key.Value] = true

		v, err := scalarValue(val)
		if err != nil {
			return nil, radioerr.Parsef(file, val.Line, "%s: %v", key.Value, err)
		}
		fields = append(fields, dump.Field{Name: key.Value, Value: v})
	}
	return fields, nil
}

func scalarValue(n *yaml.Node) (codec.Value, error) {
	if n.Kind != yaml.ScalarNode {
		return codec.Value{}, fmt.Errorf("value must be a scalar")
	}
	switch n.ShortTag() {
	case "!!int":
		var u uint64
		if err := n.Decode(&u); err != nil {
			return codec.Value{}, fmt.Errorf("integer must be non-negative: %w", err)
		}
		return codec.IntValue(u), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return codec.Value{}, err
		}
		if b {
			return codec.IntValue(1), nil
		}
		return codec.IntValue(0), nil
	case "!!str", "!!float":
		return codec.TextValue(n.Value), nil
	default:
		return codec.Value{}, fmt.Errorf("unsupported value %q (%s)", n.Value, n.ShortTag())
	}
}

var yamlLine = regexp.MustCompile(`line (\d+):`)

// yamlError keeps the line yaml.v3 reports, if any.
func yamlError(file string, err error) error {
	line := 0
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	return radioerr.Parsef(file, line, "%v", err)
}
