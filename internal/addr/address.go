package addr

import (
	"fmt"
	"reflect"
	"strings"
)

// String serializes the spec into the canonical form accepted by Parse.
// Strides are not part of the textual form.
func (s Spec) String() string {
	if s.IsEmpty() {
		return "-"
	}

	var sb strings.Builder
	sb.WriteRune('(')
	for i, e := range s.entries {
		if i > 0 {
			sb.WriteRune(':')
		}
		sb.WriteString(fmt.Sprintf("0x%X,%d,%d", e.ByteOffset, e.BitOffset, e.BitWidth))
	}
	sb.WriteRune(')')
	return sb.String()
}

// Equal checks for deep equality between two specs, strides included.
func (s Spec) Equal(other Spec) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() == other.IsEmpty()
	}
	return reflect.DeepEqual(s.entries, other.entries)
}
