// Package lineio reads the line-oriented configuration files used by the
// editor: the radio catalog and radio descriptions.
//
// A trailing backslash joins the next physical line with no separator.
// Blank lines and lines whose first non-blank character is '#' are skipped.
package lineio
