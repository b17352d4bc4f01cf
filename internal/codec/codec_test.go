package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/image"
	"github.com/vk/radioedit/internal/radioerr"
)

func mustLookup(t *testing.T, name string) *Codec {
	t.Helper()
	c, ok := NewRegistry().Lookup(name)
	require.True(t, ok, "built-in %s missing", name)
	return c
}

func TestBCD_Decode(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 24})
	bcd := mustLookup(t, "BCDFreq")

	testCases := []struct {
		name string
		raw  []byte
		want string
	}{
		{"whole kHz", []byte{0x01, 0x46, 0x40}, "146.400"},
		{"half flag", []byte{0x81, 0x46, 0x52}, "146.525"},
		{"low band", []byte{0x00, 0x07, 0x05}, "007.050"},
		{"uhf", []byte{0x04, 0x46, 0x00}, "446.000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := bcd.Decode(image.New(tc.raw), spec, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Text())
		})
	}
}

func TestBCD_DecodeBadNibble(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 24})
	_, err := mustLookup(t, "BCDFreq").Decode(image.New([]byte{0x0A, 0x00, 0x00}), spec, 0)
	require.Error(t, err)
	assert.True(t, radioerr.IsDataError(err))
}

func TestBCD_Encode(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 1, BitWidth: 24})
	bcd := mustLookup(t, "BCDFreq")

	testCases := []struct {
		name string
		in   string
		want []byte
	}{
		{"full form", "146.520", []byte{0xFF, 0x01, 0x46, 0x52}},
		{"half step", "146.525", []byte{0xFF, 0x81, 0x46, 0x52}},
		{"short fraction", "146.5", []byte{0xFF, 0x01, 0x46, 0x50}},
		{"short integer", "7.05", []byte{0xFF, 0x00, 0x07, 0x05}},
		{"no point", "446", []byte{0xFF, 0x04, 0x46, 0x00}},
		{"surrounding space", " 145.000 ", []byte{0xFF, 0x01, 0x45, 0x00}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := image.New([]byte{0xFF, 0x00, 0x00, 0x00})
			require.NoError(t, bcd.Encode(TextValue(tc.in), buf, spec, 0))
			assert.Equal(t, tc.want, buf.Bytes())
			assert.True(t, buf.Dirty())
		})
	}
}

func TestBCD_EncodeRejects(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 24})
	bcd := mustLookup(t, "BCDFreq")

	for _, in := range []string{"", "1.2.3", "1466.00", "146.5255", "14a.000", "-146.0", "0xFFFF", "0xFFFFFFFF", "0xGGGGGG"} {
		t.Run(in, func(t *testing.T) {
			buf := image.New(make([]byte, 3))
			err := bcd.Encode(TextValue(in), buf, spec, 0)
			require.Error(t, err)
			assert.True(t, radioerr.IsDataError(err), "got %T", err)
			assert.False(t, buf.Dirty())
		})
	}
}

func TestBCD_DecodeStored(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 24})
	bcd := mustLookup(t, "BCDFreq")

	testCases := []struct {
		name string
		raw  []byte
		want string
	}{
		{"bcd", []byte{0x81, 0x46, 0x52}, "146.525"},
		{"erased", []byte{0xFF, 0xFF, 0xFF}, "0xFFFFFF"},
		{"one bad digit", []byte{0x01, 0x4A, 0x52}, "0x014A52"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := bcd.DecodeStored(image.New(tc.raw), spec, 0)
			require.NoError(t, err)
			assert.Equal(t, TextValue(tc.want), v)

			buf := image.New(make([]byte, 3))
			require.NoError(t, bcd.Encode(v, buf, spec, 0))
			assert.Equal(t, tc.raw, buf.Bytes())
		})
	}
}

func TestBCD_RoundTrip(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 24})
	bcd := mustLookup(t, "BCDFreq")

	for _, s := range []string{"000.000", "146.520", "146.525", "999.995", "050.005", "430.100"} {
		buf := image.New(make([]byte, 3))
		require.NoError(t, bcd.Encode(TextValue(s), buf, spec, 0))
		v, err := bcd.Decode(buf, spec, 0)
		require.NoError(t, err)
		assert.Equal(t, s, v.Text())
	}
}

func TestYaesuString_RoundTrip(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 48})
	ys := mustLookup(t, "YaesuString")

	for _, s := range []string{"ABCDEF", "W1AW  ", "012345", "!\"#$%&", "[\\]^_@", "      "} {
		buf := image.New(make([]byte, 6))
		require.NoError(t, ys.Encode(TextValue(s), buf, spec, 0))
		v, err := ys.Decode(buf, spec, 0)
		require.NoError(t, err)
		assert.Equal(t, s, v.Text())
	}
}

func TestYaesuString_Encode(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 32})
	ys := mustLookup(t, "YaesuString")

	testCases := []struct {
		name string
		in   string
		want []byte
	}{
		{"upper", "AB12", []byte{0x0A, 0x0B, 0x01, 0x02}},
		{"lower folds", "ab12", []byte{0x0A, 0x0B, 0x01, 0x02}},
		{"short pads with blank", "A", []byte{0x0A, 0x24, 0x24, 0x24}},
		{"long truncates", "ABCDEFG", []byte{0x0A, 0x0B, 0x0C, 0x0D}},
		{"unmapped is blank", "A{B~", []byte{0x0A, 0x24, 0x0B, 0x24}},
		{"empty", "", []byte{0x24, 0x24, 0x24, 0x24}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := image.New(make([]byte, 4))
			require.NoError(t, ys.Encode(TextValue(tc.in), buf, spec, 0))
			assert.Equal(t, tc.want, buf.Bytes())
		})
	}
}

func TestYaesuString_DecodeHighBytes(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 24})
	v, err := mustLookup(t, "YaesuString").Decode(image.New([]byte{0x0A, 0x40, 0xFF}), spec, 0)
	require.NoError(t, err)
	assert.Equal(t, "A  ", v.Text())
}

func TestPlainString(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 40})
	ps := mustLookup(t, "String")

	t.Run("decode folds and filters", func(t *testing.T) {
		v, err := ps.Decode(image.New([]byte{'a', 'B', 0x00, '~', '1'}), spec, 0)
		require.NoError(t, err)
		assert.Equal(t, "AB  1", v.Text())
	})

	t.Run("encode pads and filters", func(t *testing.T) {
		buf := image.New(make([]byte, 5))
		require.NoError(t, ps.Encode(TextValue("hi{"), buf, spec, 0))
		assert.Equal(t, []byte("HI   "), buf.Bytes())
	})

	t.Run("encode truncates", func(t *testing.T) {
		buf := image.New(make([]byte, 5))
		require.NoError(t, ps.Encode(TextValue("REPEATER"), buf, spec, 0))
		assert.Equal(t, []byte("REPEA"), buf.Bytes())
	})
}

func TestRawBits(t *testing.T) {
	spec := addr.NewSpec(addr.Entry{ByteOffset: 0, BitOffset: 4, BitWidth: 4})
	buf := image.New([]byte{0x5A})

	t.Run("decode", func(t *testing.T) {
		v, err := mustLookup(t, "Int").Decode(buf, spec, 0)
		require.NoError(t, err)
		assert.Equal(t, ValueInt, v.Kind())
		assert.Equal(t, uint64(5), v.Int())
	})

	t.Run("hex format and parse", func(t *testing.T) {
		hx := mustLookup(t, "HexDigits")
		assert.Equal(t, "0x5", hx.Format(IntValue(5)))

		v, err := hx.ParseText("c")
		require.NoError(t, err)
		assert.Equal(t, uint64(12), v.Int())

		v, err = hx.ParseText("0xC")
		require.NoError(t, err)
		assert.Equal(t, uint64(12), v.Int())
	})

	t.Run("decimal parse strips leading zeros", func(t *testing.T) {
		v, err := mustLookup(t, "Int").ParseText("010")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), v.Int())
	})

	t.Run("bad text", func(t *testing.T) {
		_, err := mustLookup(t, "Int").ParseText("ten")
		assert.True(t, radioerr.IsDataError(err))
	})

	t.Run("encode text and int", func(t *testing.T) {
		b := image.New([]byte{0x5A})
		intCodec := mustLookup(t, "Int")
		require.NoError(t, intCodec.Encode(IntValue(3), b, spec, 0))
		assert.Equal(t, []byte{0x3A}, b.Bytes())
		require.NoError(t, intCodec.Encode(TextValue("0xF"), b, spec, 0))
		assert.Equal(t, []byte{0xFA}, b.Bytes())
	})

	t.Run("overflow", func(t *testing.T) {
		err := mustLookup(t, "Int").Encode(IntValue(16), image.New([]byte{0}), spec, 0)
		assert.True(t, radioerr.IsDataError(err))
	})
}

func TestEmpty(t *testing.T) {
	e := mustLookup(t, "Empty")
	buf := image.New([]byte{0x12})

	v, err := e.Decode(buf, addr.Spec{}, 0)
	require.NoError(t, err)
	assert.Equal(t, ValueNone, v.Kind())
	assert.Equal(t, "", v.String())

	require.NoError(t, e.Encode(TextValue("anything"), buf, addr.Spec{}, 0))
	assert.False(t, buf.Dirty())
	assert.NoError(t, e.CheckAddress(addr.Spec{}))
}

func TestCheckAddress(t *testing.T) {
	byteSpec := func(off uint32, bit uint8, width uint32) addr.Spec {
		return addr.NewSpec(addr.Entry{ByteOffset: off, BitOffset: bit, BitWidth: width})
	}
	split := addr.NewSpec(
		addr.Entry{ByteOffset: 0, BitWidth: 8},
		addr.Entry{ByteOffset: 2, BitWidth: 8},
	)

	testCases := []struct {
		name    string
		codec   string
		spec    addr.Spec
		wantErr bool
	}{
		{"bcd ok", "BCDFreq", byteSpec(0, 0, 24), false},
		{"bcd too narrow", "BCDFreq", byteSpec(0, 0, 16), true},
		{"bcd unaligned", "BCDFreq", byteSpec(0, 4, 24), true},
		{"string ok", "YaesuString", byteSpec(3, 0, 48), false},
		{"string partial byte", "YaesuString", byteSpec(3, 0, 44), true},
		{"string split", "String", split, true},
		{"checkbox ok", "CheckBox", byteSpec(0, 7, 1), false},
		{"checkbox wide", "CheckBox", byteSpec(0, 6, 2), true},
		{"int split ok", "Int", split, false},
		{"int too wide", "Int", addr.NewSpec(addr.Entry{BitWidth: 40}, addr.Entry{ByteOffset: 5, BitWidth: 40}), true},
		{"int no storage", "Int", addr.Spec{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := mustLookup(t, tc.codec).CheckAddress(tc.spec)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("string with bit stride", func(t *testing.T) {
		spec := byteSpec(0, 0, 16).WithStride(12)
		assert.Error(t, mustLookup(t, "String").CheckAddress(spec))
	})
}
