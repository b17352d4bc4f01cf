// Package catalog holds the table of known radios and identifies which one
// produced an image.
//
// The table lives in a file named "radios" in the configuration directory.
// A radio is declared either on one line, as its name followed by the hex
// bytes every image of that model starts with:
//
//	FT-60 41 48 30 31 33
//
// or as a block carrying the image layout as well:
//
//	radio VX-8
//	    headercmp 41 48 30 32 39
//	    headerlen 10
//	    filesize 0xFE8D
//	endradio
//
// Entries are searched in file order and the first match wins.
package catalog
