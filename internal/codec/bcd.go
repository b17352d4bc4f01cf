package codec

import (
	"encoding/hex"
	"strings"

	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/image"
	"github.com/vk/radioedit/internal/radioerr"
)

// bcdBits is the width of a packed frequency: three bytes.
const bcdBits = 24

// bcdHalfFlag is written into the high nibble of the first byte when the
// last digit is a 5.
const bcdHalfFlag = 0x8

// decodeBCD renders "DDD.DDx": five BCD digits from the low nibble of byte 0
// and both nibbles of bytes 1 and 2, followed by 5 when the high nibble of
// byte 0 is set and 0 otherwise.
func decodeBCD(buf *image.Buffer, spec addr.Spec, repeat int) (Value, error) {
	raw, err := buf.GetBytes(spec, repeat)
	if err != nil {
		return Value{}, err
	}
	if len(raw) != bcdBits/8 {
		return Value{}, radioerr.Dataf("frequency field is %d bytes, expected %d", len(raw), bcdBits/8)
	}

	nibbles := []byte{raw[0] & 0xF, raw[1] >> 4, raw[1] & 0xF, raw[2] >> 4, raw[2] & 0xF}
	var sb strings.Builder
	for i, n := range nibbles {
		if n > 9 {
			return Value{}, radioerr.Dataf("frequency digit %d holds 0x%X, not a BCD digit", i+1, n)
		}
		if i == 3 {
			sb.WriteByte('.')
		}
		sb.WriteByte('0' + n)
	}
	if raw[0]>>4 != 0 {
		sb.WriteByte('5')
	} else {
		sb.WriteByte('0')
	}
	return TextValue(sb.String()), nil
}

// encodeBCD packs a frequency written as up to three integer and three
// fractional digits. The third fractional digit only selects the half flag.
// Raw bytes written as "0x" and six hex digits are stored unchanged.
func encodeBCD(s string, buf *image.Buffer, spec addr.Spec, repeat int) error {
	s = strings.TrimSpace(s)
	if raw, ok := bcdRaw(s); ok {
		return setBytes(raw, buf, spec, repeat)
	}

	digits, err := bcdDigits(s)
	if err != nil {
		return err
	}

	var flag byte
	if digits[5] == 5 {
		flag = bcdHalfFlag
	}
	packed := []byte{
		flag<<4 | digits[0],
		digits[1]<<4 | digits[2],
		digits[3]<<4 | digits[4],
	}
	return setBytes(packed, buf, spec, repeat)
}

func setBytes(data []byte, buf *image.Buffer, spec addr.Spec, repeat int) error {
	for i, b := range data {
		if err := buf.SetByte(b, spec, repeat, i); err != nil {
			return err
		}
	}
	return nil
}

// bcdRaw recognizes the "0xHHHHHH" form DecodeStored gives frequencies that
// are not BCD.
func bcdRaw(s string) ([]byte, bool) {
	if len(s) != 2+bcdBits/4 || (s[:2] != "0x" && s[:2] != "0X") {
		return nil, false
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, false
	}
	return raw, true
}

// bcdDigits normalizes s into six digits: three before the point, three after.
func bcdDigits(s string) ([6]byte, error) {
	var out [6]byte

	intPart, fracPart, hasPoint := strings.Cut(s, ".")
	if hasPoint && strings.Contains(fracPart, ".") {
		return out, radioerr.Dataf("frequency %q has more than one decimal point", s)
	}
	if intPart == "" && fracPart == "" {
		return out, radioerr.Dataf("frequency %q has no digits", s)
	}
	if len(intPart) > 3 || len(fracPart) > 3 {
		return out, radioerr.Dataf("frequency %q must have the form DDD.DDD", s)
	}

	intPart = strings.Repeat("0", 3-len(intPart)) + intPart
	fracPart += strings.Repeat("0", 3-len(fracPart))
	for i, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return out, radioerr.Dataf("frequency %q contains invalid character %q", s, r)
		}
		out[i] = byte(r - '0')
	}
	return out, nil
}
