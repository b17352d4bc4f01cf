package codec

import "strconv"

// ValueKind tells which member of a Value is meaningful.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueInt
	ValueText
)

// Value is the canonical form of a field: an unsigned integer for raw bits,
// text for everything else, or nothing for placeholders.
type Value struct {
	kind ValueKind
	num  uint64
	text string
}

// IntValue wraps an unsigned integer.
func IntValue(n uint64) Value {
	return Value{kind: ValueInt, num: n}
}

// TextValue wraps a string.
func TextValue(s string) Value {
	return Value{kind: ValueText, text: s}
}

// NoValue is the neutral value of fields without storage.
func NoValue() Value {
	return Value{}
}

// Kind returns the kind of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Int returns the integer member.
func (v Value) Int() uint64 {
	return v.num
}

// Text returns the text member.
func (v Value) Text() string {
	return v.text
}

// String renders the value the way a user would type it.
func (v Value) String() string {
	switch v.kind {
	case ValueInt:
		return strconv.FormatUint(v.num, 10)
	case ValueText:
		return v.text
	default:
		return ""
	}
}
