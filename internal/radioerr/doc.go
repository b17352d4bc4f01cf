// Package radioerr defines the error taxonomy shared by the image codec,
// the schema parser and the radio catalog.
//
// Every error crosses package boundaries unchanged so that the CLI (or any
// other front end) can classify it with errors.As / errors.Is and decide how
// to report it.
package radioerr
