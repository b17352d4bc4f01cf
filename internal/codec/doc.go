// Package codec converts between image bits and the canonical values shown
// to and edited by a user.
//
// The set of encodings is closed: raw bits, packed-BCD frequencies,
// enumerations, the radio's 6-bit character alphabet, plain ASCII strings
// and an empty placeholder. A Codec is one of those kinds plus whatever
// static data the kind needs (an enumeration table, a fixed width). Codecs
// hold no per-field state; the address and row are passed on every call.
package codec
