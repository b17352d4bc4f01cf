package radioerr

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an image does not match any known radio.
var ErrNotFound = errors.New("unrecognized file format")

// IOError wraps a failure to open, read or write a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed schema or signature text. Line is 1-based and
// refers to the first physical line of the offending logical line.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Parsef is a shorthand for building a *ParseError with a formatted message.
func Parsef(file string, line int, format string, args ...any) *ParseError {
	return &ParseError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// DataError indicates a codec precondition was violated at runtime, such as a
// value that cannot be represented by the field's encoding.
type DataError struct {
	Msg string
}

func (e *DataError) Error() string {
	return e.Msg
}

// Dataf is a shorthand for building a *DataError with a formatted message.
func Dataf(format string, args ...any) *DataError {
	return &DataError{Msg: fmt.Sprintf(format, args...)}
}

// OutOfRangeError indicates a computed byte offset fell outside the image.
type OutOfRangeError struct {
	Offset uint64
	Len    int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("byte offset 0x%X is outside the image (length 0x%X)", e.Offset, e.Len)
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsOutOfRange returns true if err is or wraps an *OutOfRangeError.
func IsOutOfRange(err error) bool {
	var oe *OutOfRangeError
	return errors.As(err, &oe)
}

// IsDataError returns true if err is or wraps a *DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
