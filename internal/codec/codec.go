package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/image"
	"github.com/vk/radioedit/internal/radioerr"
)

// Kind is the closed set of field encodings.
type Kind int

const (
	KindRawBits Kind = iota
	KindBCDFreq
	KindEnum
	KindYaesuString
	KindPlainString
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindRawBits:
		return "raw"
	case KindBCDFreq:
		return "bcd"
	case KindEnum:
		return "enum"
	case KindYaesuString:
		return "yaesu-string"
	case KindPlainString:
		return "string"
	case KindEmpty:
		return "empty"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Codec is a named field type.
type Codec struct {
	Name string
	Kind Kind

	// Hex renders and parses raw values as hexadecimal text.
	Hex bool
	// Width, when non-zero, is the exact total bit width a raw field must have.
	Width uint64
	// Enum is set for KindEnum only.
	Enum *Enumeration
}

// CheckAddress validates that spec is a legal location for this codec. It
// runs once, when a schema is parsed.
func (c *Codec) CheckAddress(spec addr.Spec) error {
	if c.Kind == KindEmpty {
		return nil
	}
	if spec.IsEmpty() {
		return fmt.Errorf("type %s needs an address", c.Name)
	}

	switch c.Kind {
	case KindRawBits:
		return c.checkBits(spec)
	case KindEnum:
		if err := c.checkBits(spec); err != nil {
			return err
		}
		return c.Enum.fits(spec.TotalWidth())
	case KindBCDFreq:
		if err := checkByteField(c.Name, spec); err != nil {
			return err
		}
		if w := spec.Entry(0).BitWidth; w != bcdBits {
			return fmt.Errorf("type %s must be %d bits wide, got %d", c.Name, bcdBits, w)
		}
		return nil
	case KindYaesuString, KindPlainString:
		return checkByteField(c.Name, spec)
	default:
		return fmt.Errorf("unknown codec kind %s", c.Kind)
	}
}

func (c *Codec) checkBits(spec addr.Spec) error {
	total := spec.TotalWidth()
	if total > 64 {
		return fmt.Errorf("type %s holds at most 64 bits, address is %d bits", c.Name, total)
	}
	if c.Width != 0 && total != c.Width {
		return fmt.Errorf("type %s must be %d bits wide, address is %d bits", c.Name, c.Width, total)
	}
	return nil
}

// checkByteField enforces one entry, byte aligned, whole bytes, whole-byte stride.
func checkByteField(name string, spec addr.Spec) error {
	if spec.Len() != 1 {
		return fmt.Errorf("type %s takes exactly one address entry, got %d", name, spec.Len())
	}
	e := spec.Entry(0)
	if e.BitOffset != 0 {
		return fmt.Errorf("type %s must start on a byte boundary, bit offset is %d", name, e.BitOffset)
	}
	if e.BitWidth%8 != 0 {
		return fmt.Errorf("type %s must be a whole number of bytes, width is %d bits", name, e.BitWidth)
	}
	if e.StrideBits%8 != 0 {
		return fmt.Errorf("type %s needs a whole-byte row stride, stride is %d bits", name, e.StrideBits)
	}
	return nil
}

// Decode reads the field at spec/row from buf.
func (c *Codec) Decode(buf *image.Buffer, spec addr.Spec, repeat int) (Value, error) {
	switch c.Kind {
	case KindRawBits:
		v, err := buf.GetBits(spec, repeat)
		if err != nil {
			return Value{}, err
		}
		return IntValue(v), nil
	case KindEnum:
		v, err := buf.GetBits(spec, repeat)
		if err != nil {
			return Value{}, err
		}
		label, _ := c.Enum.Label(v)
		return TextValue(label), nil
	case KindBCDFreq:
		return decodeBCD(buf, spec, repeat)
	case KindYaesuString:
		return decodeYaesu(buf, spec, repeat)
	case KindPlainString:
		return decodePlain(buf, spec, repeat)
	case KindEmpty:
		return NoValue(), nil
	default:
		return Value{}, radioerr.Dataf("unknown codec kind %s", c.Kind)
	}
}

// DecodeStored is Decode for bulk export: a stored value Decode cannot name
// keeps its stored form so that it can be written back unchanged. An
// enumeration value without an entry comes back as its integer, and a
// frequency holding non-BCD digits as its raw bytes in hex ("0xFFFFFF").
func (c *Codec) DecodeStored(buf *image.Buffer, spec addr.Spec, repeat int) (Value, error) {
	switch c.Kind {
	case KindEnum:
		v, err := buf.GetBits(spec, repeat)
		if err != nil {
			return Value{}, err
		}
		if label, ok := c.Enum.Label(v); ok {
			return TextValue(label), nil
		}
		return IntValue(v), nil
	case KindBCDFreq:
		v, err := decodeBCD(buf, spec, repeat)
		if !radioerr.IsDataError(err) {
			return v, err
		}
		raw, rawErr := buf.GetBytes(spec, repeat)
		if rawErr != nil {
			return Value{}, rawErr
		}
		return TextValue(fmt.Sprintf("0x%X", raw)), nil
	default:
		return c.Decode(buf, spec, repeat)
	}
}

// Encode writes v into the field at spec/row of buf.
func (c *Codec) Encode(v Value, buf *image.Buffer, spec addr.Spec, repeat int) error {
	switch c.Kind {
	case KindRawBits:
		n, err := c.intOf(v)
		if err != nil {
			return err
		}
		return buf.SetBits(n, spec, repeat)
	case KindEnum:
		n, err := c.enumOf(v)
		if err != nil {
			return err
		}
		return buf.SetBits(n, spec, repeat)
	case KindBCDFreq:
		return encodeBCD(textOf(v), buf, spec, repeat)
	case KindYaesuString:
		return encodeYaesu(textOf(v), buf, spec, repeat)
	case KindPlainString:
		return encodePlain(textOf(v), buf, spec, repeat)
	case KindEmpty:
		return nil
	default:
		return radioerr.Dataf("unknown codec kind %s", c.Kind)
	}
}

// ParseText turns user input into a Value for this codec. Only raw fields
// need conversion; every other kind carries text.
func (c *Codec) ParseText(s string) (Value, error) {
	switch c.Kind {
	case KindRawBits:
		n, err := c.parseInt(strings.TrimSpace(s))
		if err != nil {
			return Value{}, err
		}
		return IntValue(n), nil
	case KindEmpty:
		return NoValue(), nil
	default:
		return TextValue(s), nil
	}
}

// Format renders a decoded value for display.
func (c *Codec) Format(v Value) string {
	if c.Kind == KindRawBits && c.Hex && v.Kind() == ValueInt {
		return fmt.Sprintf("0x%X", v.Int())
	}
	return v.String()
}

func (c *Codec) parseInt(s string) (uint64, error) {
	if c.Hex {
		digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		n, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return 0, radioerr.Dataf("type %s: invalid hexadecimal value %q", c.Name, s)
		}
		return n, nil
	}
	n, err := addr.ParseNumber(s)
	if err != nil {
		return 0, radioerr.Dataf("type %s: %v", c.Name, err)
	}
	return n, nil
}

func (c *Codec) intOf(v Value) (uint64, error) {
	switch v.Kind() {
	case ValueInt:
		return v.Int(), nil
	case ValueText:
		return c.parseInt(strings.TrimSpace(v.Text()))
	default:
		return 0, radioerr.Dataf("type %s needs a number", c.Name)
	}
}

func (c *Codec) enumOf(v Value) (uint64, error) {
	switch v.Kind() {
	case ValueText:
		n, ok := c.Enum.ValueOf(v.Text())
		if !ok {
			return 0, radioerr.Dataf("%q is not a value of %s", v.Text(), c.Name)
		}
		return n, nil
	case ValueInt:
		// Integers are stored as given, listed or not; SetBits checks the width.
		return v.Int(), nil
	default:
		return 0, radioerr.Dataf("type %s needs a label", c.Name)
	}
}

func textOf(v Value) string {
	if v.Kind() == ValueInt {
		return v.String()
	}
	return v.Text()
}
