// Package rad parses radio description files (".rad") into a Schema.
//
// A description is line oriented. Outside a block a line opens one of three
// block kinds:
//
//	enum <Name>            value/label table, closed by endenum
//	list <Name> <rows> [<row_bytes>]
//	                       repeated row group, closed by endlist
//	tab <Name>             flat field group, closed by endtab
//
// Inside list and tab blocks each line declares a field:
//
//	<FieldName> <address> <TypeName>
//
// Lines starting with '#' are comments and a trailing backslash joins the
// next physical line. Tokens are separated by whitespace; double quotes
// group a token and backslash escapes the next character.
package rad
