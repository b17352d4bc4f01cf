package catalog

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/lineio"
	"github.com/vk/radioedit/internal/radioerr"
)

const (
	kwRadio     = "radio"
	kwEndRadio  = "endradio"
	kwHeaderCmp = "headercmp"
	kwHeaderLen = "headerlen"
	kwFileSize  = "filesize"
	kwBlockSize = "blocksize"
)

// transferKeywords are settings of the serial clone protocol. They are
// accepted so that catalogs shared with the transfer tool load, but have no
// meaning to the editor.
var transferKeywords = map[string]bool{
	"blocksizelist":  true,
	"chunksize":      true,
	"waitchunk":      true,
	"csumdelay":      true,
	"recv_echo":      true,
	"norecv_echo":    true,
	"send_echo":      true,
	"nosend_echo":    true,
	"checksum":       true,
	"nochecksum":     true,
	"checkblock":     true,
	"nocheckblock":   true,
	"waitchecksum":   true,
	"nowaitchecksum": true,
	"delayack":       true,
	"nodelayack":     true,
}

// Parse reads a catalog from r. file is used in error messages only.
func Parse(file string, r io.Reader) (*Catalog, error) {
	var (
		radios []Radio
		cur    *Radio
		names  = make(map[string]int)
	)
	lr := lineio.NewReader(r)

	add := func(rad Radio, line int) error {
		if prev, dup := names[rad.Name]; dup {
			return radioerr.Parsef(file, line, "radio %q already declared on line %d", rad.Name, prev)
		}
		names[rad.Name] = rad.Line
		radios = append(radios, rad)
		return nil
	}

	for {
		line, ok, err := lr.Next()
		if err != nil {
			return nil, &radioerr.IOError{Op: "read", Path: file, Err: err}
		}
		if !ok {
			break
		}
		tokens, err := lineio.Tokenize(line.Text)
		if err != nil {
			return nil, radioerr.Parsef(file, line.Num, "%v", err)
		}
		if len(tokens) == 0 {
			continue
		}

		if cur == nil {
			if tokens[0] == kwRadio {
				if len(tokens) != 2 {
					return nil, radioerr.Parsef(file, line.Num, "expected: radio <name>")
				}
				cur = &Radio{Name: tokens[1], Line: line.Num}
				continue
			}
			if len(tokens) < 2 {
				return nil, radioerr.Parsef(file, line.Num, "radio %q has no signature bytes", tokens[0])
			}
			sig, err := hexBytes(tokens[1:])
			if err != nil {
				return nil, radioerr.Parsef(file, line.Num, "radio %q: %v", tokens[0], err)
			}
			rad := Radio{Name: tokens[0], Signature: sig, HeaderLen: len(sig), Line: line.Num}
			if err := add(rad, line.Num); err != nil {
				return nil, err
			}
			continue
		}

		if err := applySetting(cur, tokens); err != nil {
			return nil, radioerr.Parsef(file, line.Num, "radio %q: %v", cur.Name, err)
		}
		if tokens[0] != kwEndRadio {
			continue
		}
		if len(cur.Signature) == 0 {
			return nil, radioerr.Parsef(file, line.Num, "radio %q has no %s", cur.Name, kwHeaderCmp)
		}
		if cur.HeaderLen == 0 {
			cur.HeaderLen = len(cur.Signature)
		}
		if err := add(*cur, line.Num); err != nil {
			return nil, err
		}
		cur = nil
	}

	if cur != nil {
		return nil, radioerr.Parsef(file, cur.Line, "radio %q is missing %s", cur.Name, kwEndRadio)
	}
	return &Catalog{radios: radios}, nil
}

func applySetting(r *Radio, tokens []string) error {
	key, args := tokens[0], tokens[1:]
	switch key {
	case kwEndRadio:
		if len(args) != 0 {
			return fmt.Errorf("unexpected text after %s", kwEndRadio)
		}
	case kwHeaderCmp:
		if len(r.Signature) > 0 {
			return fmt.Errorf("%s already specified", kwHeaderCmp)
		}
		if len(args) == 0 {
			return fmt.Errorf("%s cannot be empty", kwHeaderCmp)
		}
		sig, err := hexBytes(args)
		if err != nil {
			return err
		}
		if r.HeaderLen != 0 && r.HeaderLen < len(sig) {
			return fmt.Errorf("%s cannot be shorter than %s", kwHeaderLen, kwHeaderCmp)
		}
		r.Signature = sig
	case kwHeaderLen:
		n, err := positive(key, r.HeaderLen, args)
		if err != nil {
			return err
		}
		if len(r.Signature) > n {
			return fmt.Errorf("%s cannot be shorter than %s", kwHeaderLen, kwHeaderCmp)
		}
		r.HeaderLen = n
	case kwFileSize:
		n, err := positive(key, r.FileSize, args)
		if err != nil {
			return err
		}
		r.FileSize = n
	case kwBlockSize:
		n, err := positive(key, r.BlockSize, args)
		if err != nil {
			return err
		}
		r.BlockSize = n
	default:
		if !transferKeywords[key] {
			return fmt.Errorf("unknown setting %q", key)
		}
	}
	return nil
}

// positive parses the single numeric argument of a setting that may appear
// only once.
func positive(key string, current int, args []string) (int, error) {
	if current != 0 {
		return 0, fmt.Errorf("%s already specified", key)
	}
	if len(args) != 1 {
		return 0, fmt.Errorf("%s expects one number", key)
	}
	n, err := addr.ParseNumber(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	if n == 0 || n > 1<<31-1 {
		return 0, fmt.Errorf("%s must be between 1 and %d", key, 1<<31-1)
	}
	return int(n), nil
}

// hexBytes parses signature bytes. Each token is hexadecimal, with or
// without a 0x prefix, and at most 0xFF.
func hexBytes(tokens []string) ([]byte, error) {
	out := make([]byte, 0, len(tokens))
	for _, tok := range tokens {
		digits := tok
		if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
			digits = digits[2:]
		}
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hex byte %q", tok)
		}
		if v > 0xFF {
			return nil, fmt.Errorf("hex byte %q is larger than 0xFF", tok)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
