package dump

import (
	"context"
	"fmt"

	"github.com/vk/radioedit/internal/codec"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/rad"
	"github.com/vk/radioedit/internal/session"
)

// Build decodes the named sections of s, or all of them when none are
// named. Fields without storage are left out.
func Build(ctx context.Context, s *session.Session, only ...string) (*Document, error) {
	logger := ctxlog.FromContext(ctx)

	want := make(map[string]bool, len(only))
	for _, name := range only {
		if _, ok := s.Schema().Section(name); !ok {
			return nil, fmt.Errorf("%w %q", session.ErrUnknownSection, name)
		}
		want[name] = true
	}

	doc := &Document{Radio: s.Radio().Name}
	for _, sec := range s.Sections() {
		if len(want) > 0 && !want[sec.Name] {
			continue
		}
		out := &Section{Name: sec.Name, Repeated: sec.Kind == rad.Repeated}
		if !out.Repeated {
			fields, err := buildRow(s, sec, 0)
			if err != nil {
				return nil, err
			}
			out.Fields = fields
		} else {
			for row := 0; row < sec.Rows; row++ {
				fields, err := buildRow(s, sec, row)
				if err != nil {
					return nil, err
				}
				out.Rows = append(out.Rows, Row{Index: row, Fields: fields})
			}
		}
		doc.Sections = append(doc.Sections, out)
	}

	logger.Debug("Built dump document.", "radio", doc.Radio, "sections", len(doc.Sections), "values", doc.Count())
	return doc, nil
}

func buildRow(s *session.Session, sec *rad.Section, row int) ([]Field, error) {
	var fields []Field
	for _, f := range sec.Fields {
		if f.Codec.Kind == codec.KindEmpty {
			continue
		}
		v, err := s.GetStored(sec.Name, f.Name, row)
		if err != nil {
			return nil, fmt.Errorf("%s.%s[%d]: %w", sec.Name, f.Name, row, err)
		}
		if f.Codec.Hex {
			v = codec.TextValue(f.Codec.Format(v))
		}
		fields = append(fields, Field{Name: f.Name, Value: v})
	}
	return fields, nil
}
