package codec

import "fmt"

// EnumEntry maps one stored integer to a display label. Alternates are
// extra labels accepted when importing values.
type EnumEntry struct {
	Value      uint64
	Label      string
	Alternates []string
}

// Enumeration is an ordered table of entries. It is built while a schema is
// parsed and read-only afterwards.
type Enumeration struct {
	Name    string
	entries []EnumEntry
}

// NewEnumeration starts an empty enumeration.
func NewEnumeration(name string) *Enumeration {
	return &Enumeration{Name: name}
}

// Add appends an entry. Labels must be unique within the enumeration.
func (e *Enumeration) Add(value uint64, label string) error {
	if label == "" {
		return fmt.Errorf("enum %s: empty label", e.Name)
	}
	if _, ok := e.ValueOf(label); ok {
		return fmt.Errorf("enum %s: duplicate label %q", e.Name, label)
	}
	e.entries = append(e.entries, EnumEntry{Value: value, Label: label})
	return nil
}

// AddAlternate attaches an alternate label to the most recently added entry.
func (e *Enumeration) AddAlternate(label string) error {
	if len(e.entries) == 0 {
		return fmt.Errorf("enum %s: altname before any value", e.Name)
	}
	if label == "" {
		return fmt.Errorf("enum %s: empty altname", e.Name)
	}
	if _, ok := e.ValueOf(label); ok {
		return fmt.Errorf("enum %s: duplicate label %q", e.Name, label)
	}
	last := &e.entries[len(e.entries)-1]
	last.Alternates = append(last.Alternates, label)
	return nil
}

// Len returns the number of entries.
func (e *Enumeration) Len() int {
	return len(e.entries)
}

// Entries returns a copy of the entries in declaration order.
func (e *Enumeration) Entries() []EnumEntry {
	out := make([]EnumEntry, len(e.entries))
	for i, ent := range e.entries {
		out[i] = ent
		out[i].Alternates = append([]string(nil), ent.Alternates...)
	}
	return out
}

// Label returns the label of the first entry storing v.
func (e *Enumeration) Label(v uint64) (string, bool) {
	for _, ent := range e.entries {
		if ent.Value == v {
			return ent.Label, true
		}
	}
	return "", false
}

// ValueOf finds the stored integer for a label. Primary labels are searched
// before alternates; both comparisons are exact.
func (e *Enumeration) ValueOf(label string) (uint64, bool) {
	for _, ent := range e.entries {
		if ent.Label == label {
			return ent.Value, true
		}
	}
	for _, ent := range e.entries {
		for _, alt := range ent.Alternates {
			if alt == label {
				return ent.Value, true
			}
		}
	}
	return 0, false
}

// fits checks that every entry can be stored in a field of the given width.
func (e *Enumeration) fits(width uint64) error {
	if width >= 64 {
		return nil
	}
	limit := uint64(1)<<width - 1
	for _, ent := range e.entries {
		if ent.Value > limit {
			return fmt.Errorf("enum %s: value %d (%s) does not fit in %d bits", e.Name, ent.Value, ent.Label, width)
		}
	}
	return nil
}
