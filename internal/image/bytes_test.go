package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/radioerr"
)

func TestGetBytes(t *testing.T) {
	buf := New([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	spec := addr.NewSpec(addr.Entry{ByteOffset: 1, BitWidth: 24}).WithStride(24)

	got, err := buf.GetBytes(spec, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got, err = buf.GetBytes(spec, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6}, got)

	_, err = buf.GetBytes(spec, 2)
	assert.True(t, radioerr.IsOutOfRange(err))
}

func TestGetBytes_RejectsUnalignedSpecs(t *testing.T) {
	buf := New(make([]byte, 8))

	testCases := []struct {
		name string
		spec addr.Spec
	}{
		{"bit offset", addr.NewSpec(addr.Entry{ByteOffset: 0, BitOffset: 1, BitWidth: 8})},
		{"partial byte", addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 12})},
		{"two entries", addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 8}, addr.Entry{ByteOffset: 1, BitWidth: 8})},
		{"unaligned row", addr.NewSpec(addr.Entry{ByteOffset: 0, BitWidth: 8}).WithStride(4)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buf.GetBytes(tc.spec, 1)
			require.Error(t, err)
			assert.True(t, radioerr.IsDataError(err))
		})
	}
}

func TestSetByte(t *testing.T) {
	buf := New(make([]byte, 4))
	spec := addr.NewSpec(addr.Entry{ByteOffset: 1, BitWidth: 16})

	require.NoError(t, buf.SetByte(0xAA, spec, 0, 1))
	assert.Equal(t, []byte{0, 0, 0xAA, 0}, buf.Bytes())
	assert.True(t, buf.Dirty())

	err := buf.SetByte(0xBB, spec, 0, 2)
	assert.True(t, radioerr.IsDataError(err))
}

func TestHasPrefix(t *testing.T) {
	buf := New([]byte{0x01, 0x02, 0x03})
	assert.True(t, buf.HasPrefix([]byte{0x01, 0x02}))
	assert.True(t, buf.HasPrefix(nil))
	assert.False(t, buf.HasPrefix([]byte{0x02}))
	assert.False(t, buf.HasPrefix([]byte{0x01, 0x02, 0x03, 0x04}))
}
