package dump

import (
	"context"
	"fmt"

	"github.com/vk/radioedit/internal/codec"
	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/rad"
	"github.com/vk/radioedit/internal/session"
)

// Report summarizes an Apply.
type Report struct {
	// Values is the number of fields written.
	Values int
	// Changed is the number of fields whose stored value differs afterwards.
	Changed int
}

// Apply writes every value of doc into s. A document for another radio is
// rejected; an empty Radio is accepted. Apply stops at the first failure,
// values written before it stay written.
func Apply(ctx context.Context, s *session.Session, doc *Document) (Report, error) {
	logger := ctxlog.FromContext(ctx)
	var rep Report

	if doc.Radio != "" && doc.Radio != s.Radio().Name {
		return rep, fmt.Errorf("dump is for radio %q, image is %q", doc.Radio, s.Radio().Name)
	}

	for _, sec := range doc.Sections {
		target, ok := s.Schema().Section(sec.Name)
		if !ok {
			return rep, fmt.Errorf("%w %q", session.ErrUnknownSection, sec.Name)
		}
		if target.Kind == rad.Repeated && len(sec.Fields) > 0 {
			return rep, fmt.Errorf("section %q is a list, values must be given per row", sec.Name)
		}
		if target.Kind == rad.Flat && len(sec.Rows) > 0 {
			return rep, fmt.Errorf("section %q is not a list", sec.Name)
		}

		if err := applyRow(s, sec.Name, 0, sec.Fields, &rep); err != nil {
			return rep, err
		}
		for _, row := range sec.Rows {
			if err := applyRow(s, sec.Name, row.Index, row.Fields, &rep); err != nil {
				return rep, err
			}
		}
	}

	logger.Debug("Applied dump document.", "radio", s.Radio().Name, "values", rep.Values, "changed", rep.Changed)
	return rep, nil
}

func applyRow(s *session.Session, section string, row int, fields []Field, rep *Report) error {
	for _, f := range fields {
		before, err := s.GetStored(section, f.Name, row)
		if err != nil {
			return fmt.Errorf("%s.%s[%d]: %w", section, f.Name, row, err)
		}

		switch f.Value.Kind() {
		case codec.ValueInt:
			err = s.Set(section, f.Name, row, f.Value)
		case codec.ValueText:
			err = s.SetText(section, f.Name, row, f.Value.Text())
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("%s.%s[%d]: %w", section, f.Name, row, err)
		}

		after, err := s.GetStored(section, f.Name, row)
		if err != nil {
			return fmt.Errorf("%s.%s[%d]: %w", section, f.Name, row, err)
		}
		rep.Values++
		if after != before {
			rep.Changed++
		}
	}
	return nil
}
