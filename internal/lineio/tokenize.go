package lineio

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrUnclosedQuote  = errors.New("unterminated quoted string")
	ErrDanglingEscape = errors.New("backslash at end of line")
)

// Tokenize splits a logical line into whitespace separated tokens. Double
// quotes group characters, including whitespace, into one token; a
// backslash escapes the next character, with \n, \t and \r mapped to their
// control characters.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quoted  bool
	)
	runes := []rune(line)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			if i+1 >= len(runes) {
				return nil, ErrDanglingEscape
			}
			i++
			cur.WriteRune(unescape(runes[i]))
			inToken = true
		case r == '"':
			quoted = !quoted
			inToken = true
		case unicode.IsSpace(r) && !quoted:
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quoted {
		return nil, ErrUnclosedQuote
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

func unescape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return r
	}
}
