// Package image owns the raw bytes of a radio memory image and provides the
// bit- and byte-level accessors that the field codecs are built on.
//
// Bits within a field are packed little-endian: bit 0 of the first byte is
// the least significant bit of the entry. When an address has several
// entries they are combined most-significant entry first.
//
// A Buffer is not safe for concurrent mutation; each open session owns
// exactly one.
package image
