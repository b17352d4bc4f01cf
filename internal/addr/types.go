package addr

// MaxEntries is the largest number of `:`-separated groups one address may hold.
const MaxEntries = 4

// Entry is one contiguous run of bits.
type Entry struct {
	ByteOffset uint32
	BitOffset  uint8 // 0..7
	BitWidth   uint32
	StrideBits uint32
}

// Locate returns the effective byte and bit offset of the entry for the
// given repeat index.
func (e Entry) Locate(repeat int) (byteOffset uint64, bitOffset uint8) {
	eff := uint64(e.BitOffset) + uint64(e.StrideBits)*uint64(repeat)
	return uint64(e.ByteOffset) + eff/8, uint8(eff % 8)
}

// Spec is the immutable location of a field. The zero value has no entries
// and describes a field without storage.
type Spec struct {
	entries []Entry
}

// NewSpec builds a Spec from the given entries. The slice is copied.
func NewSpec(entries ...Entry) Spec {
	if len(entries) == 0 {
		return Spec{}
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return Spec{entries: cp}
}

// Len returns the number of entries.
func (s Spec) Len() int {
	return len(s.entries)
}

// IsEmpty reports whether the spec has no storage.
func (s Spec) IsEmpty() bool {
	return len(s.entries) == 0
}

// Entry returns the i-th entry.
func (s Spec) Entry(i int) Entry {
	return s.entries[i]
}

// Entries returns a copy of all entries, most significant first.
func (s Spec) Entries() []Entry {
	cp := make([]Entry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

// TotalWidth is the sum of all entry widths in bits.
func (s Spec) TotalWidth() uint64 {
	var total uint64
	for _, e := range s.entries {
		total += uint64(e.BitWidth)
	}
	return total
}

// WithStride returns a copy of the spec with every entry's stride set.
func (s Spec) WithStride(strideBits uint32) Spec {
	out := s.Entries()
	for i := range out {
		out[i].StrideBits = strideBits
	}
	return Spec{entries: out}
}

// Span returns the half-open byte range [start, end) covered by row 0.
func (s Spec) Span() (start, end uint64) {
	for i, e := range s.entries {
		lo := uint64(e.ByteOffset)
		hi := lo + (uint64(e.BitOffset)+uint64(e.BitWidth)+7)/8
		if i == 0 || lo < start {
			start = lo
		}
		if hi > end {
			end = hi
		}
	}
	return start, end
}
