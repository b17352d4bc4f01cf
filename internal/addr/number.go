package addr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// numberRegex matches either a 0x-prefixed hexadecimal or a decimal token.
var numberRegex = regexp.MustCompile(`^(?:0[xX]([0-9a-fA-F]+)|([0-9]+))$`)

// ParseNumber parses an unsigned number in the notation used by schema and
// signature files. A leading "0x" selects hexadecimal; otherwise superfluous
// leading zeros are dropped and the rest is read as decimal, so "010" is ten.
func ParseNumber(tok string) (uint64, error) {
	matches := numberRegex.FindStringSubmatch(tok)
	if matches == nil {
		return 0, fmt.Errorf("invalid number: %q", tok)
	}

	if matches[1] != "" {
		v, err := strconv.ParseUint(matches[1], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", tok, err)
		}
		return v, nil
	}

	dec := strings.TrimLeft(matches[2], "0")
	if dec == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(dec, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", tok, err)
	}
	return v, nil
}
