// Package config defines the format-agnostic settings model of the editor,
// along with the interfaces (Loader, DumpFormat) that concrete file formats
// implement.
//
// Concrete implementations, such as for HCL and YAML, are provided in
// separate packages.
package config
