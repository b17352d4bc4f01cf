package image

import (
	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/radioerr"
)

// byteRange validates that spec is a single byte-aligned entry and returns
// its first byte and length for the given row.
func (b *Buffer) byteRange(spec addr.Spec, repeat int) (uint64, int, error) {
	if spec.Len() != 1 {
		return 0, 0, radioerr.Dataf("byte access needs exactly one address entry, got %d", spec.Len())
	}
	e := spec.Entry(0)
	if e.BitWidth%8 != 0 {
		return 0, 0, radioerr.Dataf("byte access needs a whole number of bytes, got %d bits", e.BitWidth)
	}
	pos, shift, err := b.bounds(e, repeat)
	if err != nil {
		return 0, 0, err
	}
	if shift != 0 {
		return 0, 0, radioerr.Dataf("byte access at 0x%X is not byte aligned (bit %d)", pos, shift)
	}
	return pos, int(e.BitWidth / 8), nil
}

// GetBytes returns a copy of the bytes covered by a single byte-aligned
// entry.
func (b *Buffer) GetBytes(spec addr.Spec, repeat int) ([]byte, error) {
	pos, n, err := b.byteRange(spec, repeat)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.data[pos:pos+uint64(n)])
	return out, nil
}

// SetByte writes value at byte index of the field located by spec.
func (b *Buffer) SetByte(value byte, spec addr.Spec, repeat, index int) error {
	pos, n, err := b.byteRange(spec, repeat)
	if err != nil {
		return err
	}
	if index < 0 || index >= n {
		return radioerr.Dataf("byte index %d is outside a %d byte field", index, n)
	}
	b.data[pos+uint64(index)] = value
	b.dirty = true
	return nil
}
