// Package app wires the radio editor together: it merges command-line
// options with the settings file, builds the logger and runs the selected
// command (show, identify, list radios, set, import, export) against one
// image, independent of the CLI that configured it.
package app
