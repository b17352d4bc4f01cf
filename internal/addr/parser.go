package addr

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Parse creates a Spec from its textual form. Whitespace anywhere inside
// the address is ignored. The returned spec has zero strides; repeated
// groups assign them afterwards with WithStride.
func Parse(raw string) (Spec, error) {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if compact == "" {
		return Spec{}, fmt.Errorf("address cannot be empty")
	}
	if compact[0] != '(' {
		return Spec{}, fmt.Errorf("address %q must start with '('", raw)
	}
	if compact[len(compact)-1] != ')' {
		return Spec{}, fmt.Errorf("address %q must end with ')'", raw)
	}

	inner := compact[1 : len(compact)-1]
	if inner == "" {
		return Spec{}, fmt.Errorf("address %q has no entries", raw)
	}

	groups := strings.Split(inner, ":")
	if len(groups) > MaxEntries {
		return Spec{}, fmt.Errorf("address %q has %d entries, at most %d are allowed", raw, len(groups), MaxEntries)
	}

	entries := make([]Entry, 0, len(groups))
	for i, group := range groups {
		entry, err := parseEntry(group)
		if err != nil {
			return Spec{}, fmt.Errorf("address %q, entry %d: %w", raw, i+1, err)
		}
		entries = append(entries, entry)
	}

	return Spec{entries: entries}, nil
}

// parseEntry parses "byte,bit,width" or "byte,width".
func parseEntry(group string) (Entry, error) {
	if group == "" {
		return Entry{}, fmt.Errorf("empty entry")
	}
	fields := strings.Split(group, ",")
	if len(fields) < 2 || len(fields) > 3 {
		return Entry{}, fmt.Errorf("expected 2 or 3 numbers, got %d", len(fields))
	}

	nums := make([]uint64, len(fields))
	for i, f := range fields {
		v, err := ParseNumber(f)
		if err != nil {
			return Entry{}, err
		}
		nums[i] = v
	}

	var byteOff, bitOff, width uint64
	if len(nums) == 3 {
		byteOff, bitOff, width = nums[0], nums[1], nums[2]
	} else {
		byteOff, width = nums[0], nums[1]
	}

	if byteOff > math.MaxUint32 {
		return Entry{}, fmt.Errorf("byte offset %d is too large", byteOff)
	}
	if bitOff > 7 {
		return Entry{}, fmt.Errorf("bit offset %d must be between 0 and 7", bitOff)
	}
	if width == 0 {
		return Entry{}, fmt.Errorf("bit width must be greater than zero")
	}
	if width > math.MaxUint32 {
		return Entry{}, fmt.Errorf("bit width %d is too large", width)
	}

	return Entry{
		ByteOffset: uint32(byteOff),
		BitOffset:  uint8(bitOff),
		BitWidth:   uint32(width),
	}, nil
}
