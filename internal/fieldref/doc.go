/*
Package fieldref parses references to a single field of an open image, as
typed on the command line.

The format is `Section.Field` for flat sections and `Section.Field[row]`
for repeated ones, e.g. `Memories.Freq[12]`. An assignment appends
`=value`; everything after the first '=' is the value, verbatim.
*/
package fieldref
