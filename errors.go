package linecsv

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when the source ends while a quoted field is still open.
	ErrMalformedInput = errors.New("linecsv: malformed input")
	// ErrDuplicateHeader is returned when two header fields have the same name.
	ErrDuplicateHeader = errors.New("linecsv: duplicate header")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("linecsv: wrong number of fields")
	// ErrBareQuote is returned in strict mode when a quote appears inside an unquoted field.
	ErrBareQuote = errors.New("linecsv: bare quote in non-quoted field")
	// ErrTrailingQuote is returned in strict mode when content follows a closing quote.
	ErrTrailingQuote = errors.New("linecsv: extraneous content after closing quote")
	// ErrInvalidDialect is returned when a Dialect cannot be used for parsing.
	ErrInvalidDialect = errors.New("linecsv: invalid dialect")
	// ErrUnknownCharset is returned by NewDecodingReader for unsupported charset names.
	ErrUnknownCharset = errors.New("linecsv: unknown charset")
)

// MalformedInputError reports raw text left over at the end of the source.
type MalformedInputError struct {
	// Line is the source line on which the unresolved row started.
	Line int
	// Leftover is the raw text that could not be closed into a row.
	Leftover string
}

func (e *MalformedInputError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linecsv: malformed input on line %d: leftover %q on the tail of input", e.Line, e.Leftover)
}

// Unwrap returns ErrMalformedInput.
func (e *MalformedInputError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrMalformedInput
}

// DuplicateHeaderError reports the first header name that appears twice.
type DuplicateHeaderError struct {
	Name string
	// Column is the 1-based position of the second occurrence.
	Column int
}

func (e *DuplicateHeaderError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linecsv: header %q is duplicated at column %d", e.Name, e.Column)
}

// Unwrap returns ErrDuplicateHeader.
func (e *DuplicateHeaderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrDuplicateHeader
}

// FieldCountError reports a row whose width differs from the expected one.
type FieldCountError struct {
	Line     int
	Expected int
	Got      int
}

func (e *FieldCountError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linecsv: record on line %d has %d fields, expected %d", e.Line, e.Got, e.Expected)
}

// Unwrap returns ErrFieldCount.
func (e *FieldCountError) Unwrap() error {
	if e == nil {
		return nil
	}
	return ErrFieldCount
}

// ParseError contains location information for strict-mode syntax errors.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error formats the parse error message with the stored line, column, and Err values.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("linecsv: parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Unwrap.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
