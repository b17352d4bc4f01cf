package codec

import (
	"strings"

	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/image"
)

// YaesuAlphabet is the radio's 6-bit character set; a stored byte is an
// index into it.
const YaesuAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ !\"#$%&'()*+,-./:;<=>?@[\\]^_"

// yaesuBlank is the index of the space character, used for padding and for
// characters the alphabet cannot represent.
const yaesuBlank = 0x24

func decodeYaesu(buf *image.Buffer, spec addr.Spec, repeat int) (Value, error) {
	raw, err := buf.GetBytes(spec, repeat)
	if err != nil {
		return Value{}, err
	}
	out := make([]byte, len(raw))
	for i, b := range raw {
		if int(b) >= len(YaesuAlphabet) {
			out[i] = ' '
			continue
		}
		out[i] = YaesuAlphabet[b]
	}
	return TextValue(string(out)), nil
}

// encodeYaesu writes exactly the field width: the input is upper-cased,
// truncated or right-padded with blanks.
func encodeYaesu(s string, buf *image.Buffer, spec addr.Spec, repeat int) error {
	width := int(spec.Entry(0).BitWidth / 8)
	in := []rune(strings.ToUpper(s))
	for i := 0; i < width; i++ {
		idx := yaesuBlank
		if i < len(in) {
			if pos := strings.IndexRune(YaesuAlphabet, in[i]); pos >= 0 {
				idx = pos
			}
		}
		if err := buf.SetByte(byte(idx), spec, repeat, i); err != nil {
			return err
		}
	}
	return nil
}

// plainAllowed reports whether c may be stored in a plain string field.
func plainAllowed(c byte) bool {
	return strings.IndexByte(YaesuAlphabet, c) >= 0
}

func decodePlain(buf *image.Buffer, spec addr.Spec, repeat int) (Value, error) {
	raw, err := buf.GetBytes(spec, repeat)
	if err != nil {
		return Value{}, err
	}
	out := make([]byte, len(raw))
	for i, b := range raw {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		if !plainAllowed(b) {
			b = ' '
		}
		out[i] = b
	}
	return TextValue(string(out)), nil
}

// encodePlain stores upper-cased ASCII, padding with spaces to the field
// width and replacing characters outside the allowed set with spaces.
func encodePlain(s string, buf *image.Buffer, spec addr.Spec, repeat int) error {
	width := int(spec.Entry(0).BitWidth / 8)
	in := []rune(strings.ToUpper(s))
	for i := 0; i < width; i++ {
		b := byte(' ')
		if i < len(in) && in[i] < 0x80 && plainAllowed(byte(in[i])) {
			b = byte(in[i])
		}
		if err := buf.SetByte(b, spec, repeat, i); err != nil {
			return err
		}
	}
	return nil
}
