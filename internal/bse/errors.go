package bse

import (
	"errors"
	"fmt"
)

// FetchCode identifies the category of a basis set retrieval error.
type FetchCode string

const (
	FetchInvalidElement       FetchCode = "INVALID_ELEMENT"
	FetchInvalidBasisSetName  FetchCode = "INVALID_BASIS_SET_NAME"
	FetchElementNotInBasisSet FetchCode = "ELEMENT_NOT_IN_BASIS_SET"
	FetchUnknownBasisSet      FetchCode = "UNKNOWN_BASIS_SET"
	FetchNetworkError         FetchCode = "NETWORK_ERROR"
	FetchIO                   FetchCode = "IO_ERROR"
	FetchInvalidResponse      FetchCode = "INVALID_RESPONSE"
)

// FetchError describes why a basis set definition could not be
// retrieved from the Basis Set Exchange or the local cache. Element and
// BasisName hold the normalized forms where normalization succeeded,
// otherwise the caller's original input.
type FetchError struct {
	Code      FetchCode
	Element   string
	BasisName string
	Detail    string
}

func (e *FetchError) Error() string {
	switch e.Code {
	case FetchInvalidElement:
		return fmt.Sprintf("invalid element: %q", e.Element)
	case FetchInvalidBasisSetName:
		return fmt.Sprintf("invalid basis set name: %q", e.BasisName)
	case FetchElementNotInBasisSet:
		return fmt.Sprintf("element %s not found in basis set %s", e.Element, e.BasisName)
	case FetchUnknownBasisSet:
		return fmt.Sprintf("unknown basis set: %q", e.BasisName)
	case FetchNetworkError:
		return fmt.Sprintf("network error: %s", e.Detail)
	case FetchIO:
		return fmt.Sprintf("I/O error: %s", e.Detail)
	case FetchInvalidResponse:
		return fmt.Sprintf("invalid response: %s", e.Detail)
	}
	return string(e.Code)
}

// AsFetchError unwraps err as a *FetchError, following wrapped chains.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// IsUnknownBasisSet reports whether err means the exchange does not
// carry the requested basis set. Uses errors.As to handle wrapped
// errors.
func IsUnknownBasisSet(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Code == FetchUnknownBasisSet
	}
	return false
}

// IsElementNotInBasisSet reports whether err means the basis set exists
// but does not define the requested element. Uses errors.As to handle
// wrapped errors.
func IsElementNotInBasisSet(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Code == FetchElementNotInBasisSet
	}
	return false
}

// ParseCode identifies the category of a QCSchema parse error.
type ParseCode string

const (
	ParseIO                  ParseCode = "IO_ERROR"
	ParseInvalidJSON         ParseCode = "INVALID_JSON"
	ParseMultipleElements    ParseCode = "MULTIPLE_ELEMENTS"
	ParseNoElements          ParseCode = "NO_ELEMENTS"
	ParseInvalidAtomicNumber ParseCode = "INVALID_ATOMIC_NUMBER"
	ParseNoElectronShells    ParseCode = "NO_ELECTRON_SHELLS"
	ParseMalformedShell      ParseCode = "MALFORMED_SHELL"
)

// ParseError describes why a QCSchema document was rejected. For
// MALFORMED_SHELL, ShellIndex is the zero-based position of the shell
// in the document and Detail names the defect. For MULTIPLE_ELEMENTS,
// Found is the number of elements present.
type ParseError struct {
	Code       ParseCode
	ShellIndex int
	Found      int
	Detail     string
}

func (e *ParseError) Error() string {
	switch e.Code {
	case ParseIO:
		return fmt.Sprintf("I/O error: %s", e.Detail)
	case ParseInvalidJSON:
		return fmt.Sprintf("invalid JSON: %s", e.Detail)
	case ParseMultipleElements:
		return fmt.Sprintf("expected 1 element, found %d", e.Found)
	case ParseNoElements:
		return "elements object is absent or empty"
	case ParseInvalidAtomicNumber:
		return fmt.Sprintf("invalid atomic number: %q", e.Detail)
	case ParseNoElectronShells:
		return "no electron shells found"
	case ParseMalformedShell:
		return fmt.Sprintf("shell %d: %s", e.ShellIndex, e.Detail)
	}
	return string(e.Code)
}

// AsParseError unwraps err as a *ParseError, following wrapped chains.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
