package fieldref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoRow marks a reference written without an index.
const NoRow = -1

// Ref names one field in one row.
type Ref struct {
	Section string
	Field   string
	// Row is the zero-based row, or NoRow when the reference had no index.
	Row int
}

// RowOrZero returns the row to access: flat sections only have row 0.
func (r Ref) RowOrZero() int {
	if r.Row == NoRow {
		return 0
	}
	return r.Row
}

// String serializes the reference into the form accepted by Parse.
func (r Ref) String() string {
	if r.Row == NoRow {
		return r.Section + "." + r.Field
	}
	return fmt.Sprintf("%s.%s[%d]", r.Section, r.Field, r.Row)
}

// Assignment is a reference with the value to store in it.
type Assignment struct {
	Ref   Ref
	Value string
}

var refRegex = regexp.MustCompile(`^([^.\[\]=]+)\.([^.\[\]=]+)(?:\[(\d+)\])?$`)

// Parse turns `Section.Field[row]` into a Ref.
func Parse(s string) (Ref, error) {
	m := refRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Ref{}, fmt.Errorf("invalid field reference %q, expected Section.Field or Section.Field[row]", s)
	}

	ref := Ref{Section: strings.TrimSpace(m[1]), Field: strings.TrimSpace(m[2]), Row: NoRow}
	if ref.Section == "" || ref.Field == "" {
		return Ref{}, fmt.Errorf("invalid field reference %q: empty name", s)
	}
	if m[3] != "" {
		row, err := strconv.Atoi(m[3])
		if err != nil {
			return Ref{}, fmt.Errorf("invalid row in %q: %w", s, err)
		}
		ref.Row = row
	}
	return ref, nil
}

// ParseAssignment turns `Section.Field[row]=value` into an Assignment.
func ParseAssignment(s string) (Assignment, error) {
	lhs, value, ok := strings.Cut(s, "=")
	if !ok {
		return Assignment{}, fmt.Errorf("invalid assignment %q, expected Section.Field[row]=value", s)
	}
	ref, err := Parse(lhs)
	if err != nil {
		return Assignment{}, err
	}
	return Assignment{Ref: ref, Value: value}, nil
}
