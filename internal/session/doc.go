// Package session is the editing surface of the core: one open image, the
// radio it was identified as, and that radio's schema. Presentation layers
// read and write fields through a Session by section name, field name and
// row, and never touch the image bytes directly.
package session
