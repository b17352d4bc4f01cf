package image

import (
	"github.com/vk/radioedit/internal/addr"
	"github.com/vk/radioedit/internal/radioerr"
)

// maxValueBits is the widest value GetBits and SetBits can carry.
const maxValueBits = 64

func mask(n uint32) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << n) - 1
}

// bounds checks that the entry, located for the given row, lies inside the
// image and returns its first byte and bit.
func (b *Buffer) bounds(e addr.Entry, repeat int) (uint64, uint8, error) {
	byteOff, bitOff := e.Locate(repeat)
	nbytes := (uint64(bitOff) + uint64(e.BitWidth) + 7) / 8
	last := byteOff + nbytes - 1
	if last >= uint64(len(b.data)) {
		bad := byteOff
		if bad < uint64(len(b.data)) {
			bad = uint64(len(b.data))
		}
		return 0, 0, &radioerr.OutOfRangeError{Offset: bad, Len: len(b.data)}
	}
	return byteOff, bitOff, nil
}

// GetBits reads the unsigned value stored at spec for the given row.
func (b *Buffer) GetBits(spec addr.Spec, repeat int) (uint64, error) {
	if spec.IsEmpty() {
		return 0, radioerr.Dataf("address has no entries")
	}
	if spec.TotalWidth() > maxValueBits {
		return 0, radioerr.Dataf("address %s is %d bits wide, at most %d fit in a value", spec, spec.TotalWidth(), maxValueBits)
	}

	var result uint64
	for i := 0; i < spec.Len(); i++ {
		e := spec.Entry(i)
		pos, shift, err := b.bounds(e, repeat)
		if err != nil {
			return 0, err
		}

		var v uint64
		var got uint32
		for got < e.BitWidth {
			take := min(uint32(8-shift), e.BitWidth-got)
			chunk := uint64(b.data[pos]>>shift) & mask(take)
			v |= chunk << got
			got += take
			pos++
			shift = 0
		}

		result = result<<e.BitWidth | v
	}
	return result, nil
}

// SetBits stores value at spec for the given row. The value is split over
// the entries by the total width, the first entry receiving the most
// significant bits. Every entry is bounds-checked before any byte changes.
func (b *Buffer) SetBits(value uint64, spec addr.Spec, repeat int) error {
	if spec.IsEmpty() {
		return radioerr.Dataf("address has no entries")
	}
	total := spec.TotalWidth()
	if total > maxValueBits {
		return radioerr.Dataf("address %s is %d bits wide, at most %d fit in a value", spec, total, maxValueBits)
	}
	if total < 64 && value > mask(uint32(total)) {
		return radioerr.Dataf("value %d does not fit in %d bits", value, total)
	}

	type located struct {
		pos   uint64
		shift uint8
	}
	locs := make([]located, spec.Len())
	for i := 0; i < spec.Len(); i++ {
		pos, shift, err := b.bounds(spec.Entry(i), repeat)
		if err != nil {
			return err
		}
		locs[i] = located{pos: pos, shift: shift}
	}

	remaining := total
	for i := 0; i < spec.Len(); i++ {
		e := spec.Entry(i)
		remaining -= uint64(e.BitWidth)
		chunk := (value >> remaining) & mask(e.BitWidth)
		b.putChunk(chunk, e.BitWidth, locs[i].pos, locs[i].shift)
	}

	b.dirty = true
	return nil
}

// putChunk writes width bits of chunk starting at the given byte and bit,
// touching only the bits it owns.
func (b *Buffer) putChunk(chunk uint64, width uint32, pos uint64, shift uint8) {
	if uint32(shift)+width <= 8 {
		m := byte(mask(width)) << shift
		b.data[pos] = b.data[pos]&^m | byte(chunk)<<shift&m
		return
	}

	var put uint32
	for put < width {
		take := min(uint32(8-shift), width-put)
		m := byte(mask(take)) << shift
		bits := byte((chunk>>put)&mask(take)) << shift
		b.data[pos] = b.data[pos]&^m | bits
		put += take
		pos++
		shift = 0
	}
}
