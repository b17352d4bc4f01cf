/*
Package addr describes where a field lives inside a radio memory image.

A Spec is an ordered list of entries, each naming a byte offset, a bit offset
within that byte and a bit width. Multi-entry specs model fields whose bits
are scattered over the image; the first entry holds the most significant
bits. Every entry also carries a stride (in bits) that moves the entry for
each row of a repeated group.

The textual form parsed by this package is

	(byte, bit, width)
	(byte, width)
	(byte, bit, width : byte, bit, width ...)

with numbers written in decimal or 0x-prefixed hexadecimal.
*/
package addr
