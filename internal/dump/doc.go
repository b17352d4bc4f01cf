// Package dump moves every field of an image in and out of a plain,
// format-agnostic Document. Concrete file formats (HCL, YAML) only map a
// Document to and from text; all schema knowledge stays here.
package dump
