package input

import (
	"errors"
	"fmt"
)

// Code identifies the category of a simulation input error.
type Code string

const (
	CodeIO                 Code = "IO_ERROR"
	CodeInvalidYAML        Code = "INVALID_YAML"
	CodeMissingField       Code = "MISSING_FIELD"
	CodeInvalidValue       Code = "INVALID_VALUE"
	CodeAmbiguousGeometry  Code = "AMBIGUOUS_GEOMETRY"
	CodeCoordinateMismatch Code = "COORDINATE_MISMATCH"
	CodeInvalidElement     Code = "INVALID_ELEMENT"
	CodeInvalidZMatrix     Code = "INVALID_ZMATRIX"
	CodeUnknownField       Code = "UNKNOWN_FIELD"
)

// Error is a structured simulation input error. Code selects the
// variant; the remaining fields carry that variant's attribution, so
// callers can report exactly which field or row was rejected without
// parsing message text.
type Error struct {
	Code     Code
	Field    string // MISSING_FIELD, INVALID_VALUE, UNKNOWN_FIELD
	Reason   string // IO_ERROR, INVALID_YAML, INVALID_VALUE, INVALID_ZMATRIX
	Symbol   string // INVALID_ELEMENT
	Row      int    // INVALID_ZMATRIX (zero-based)
	NSymbols int    // COORDINATE_MISMATCH
	NCoords  int    // COORDINATE_MISMATCH
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeIO:
		return fmt.Sprintf("I/O error: %s", e.Reason)
	case CodeInvalidYAML:
		return fmt.Sprintf("invalid YAML: %s", e.Reason)
	case CodeMissingField:
		return fmt.Sprintf("missing required field: %s", e.Field)
	case CodeInvalidValue:
		return fmt.Sprintf("invalid value for %s: %s", e.Field, e.Reason)
	case CodeAmbiguousGeometry:
		return "molecule block contains both Cartesian and Z-matrix keys"
	case CodeCoordinateMismatch:
		return fmt.Sprintf("geometry has %d coordinates but expected %d (3 × %d)",
			e.NCoords, 3*e.NSymbols, e.NSymbols)
	case CodeInvalidElement:
		return fmt.Sprintf("unknown element symbol: %q", e.Symbol)
	case CodeInvalidZMatrix:
		return fmt.Sprintf("invalid z_matrix row %d: %s", e.Row, e.Reason)
	case CodeUnknownField:
		return fmt.Sprintf("unknown top-level field: %q", e.Field)
	}
	return string(e.Code)
}

// AsError unwraps err as an *Error, following wrapped chains.
func AsError(err error) (*Error, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// CodeOf returns the Code carried by err, or "" when err is not an
// input error.
func CodeOf(err error) Code {
	if ie, ok := AsError(err); ok {
		return ie.Code
	}
	return ""
}

func errIO(reason string) *Error {
	return &Error{Code: CodeIO, Reason: reason}
}

func errYAML(reason string) *Error {
	return &Error{Code: CodeInvalidYAML, Reason: reason}
}

func errMissing(field string) *Error {
	return &Error{Code: CodeMissingField, Field: field}
}

func errValue(field, reason string) *Error {
	return &Error{Code: CodeInvalidValue, Field: field, Reason: reason}
}

func errAmbiguous() *Error {
	return &Error{Code: CodeAmbiguousGeometry}
}

func errCoordinates(nSymbols, nCoords int) *Error {
	return &Error{Code: CodeCoordinateMismatch, NSymbols: nSymbols, NCoords: nCoords}
}

func errElement(symbol string) *Error {
	return &Error{Code: CodeInvalidElement, Symbol: symbol}
}

func errZMatrix(row int, reason string) *Error {
	return &Error{Code: CodeInvalidZMatrix, Row: row, Reason: reason}
}

func errUnknownField(field string) *Error {
	return &Error{Code: CodeUnknownField, Field: field}
}
