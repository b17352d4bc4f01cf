// Package cli turns command-line arguments into an app.Config and maps
// failures to process exit codes: 2 for usage errors, 3 for an image no
// radio in the catalog recognizes, 1 for everything else.
package cli
