package bse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/roach88/electron/internal/periodic"
)

// ParseFile reads and parses a cached QCSchema document. The document
// must describe exactly one element with at least one electron shell;
// anything else is reported through the ParseError taxonomy with the
// offending shell index attached where one exists. ECP blocks are
// ignored.
func ParseFile(path string) (*BasisSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Code: ParseIO, Detail: err.Error()}
	}
	return parseQCSchema(content)
}

func parseQCSchema(content []byte) (*BasisSet, error) {
	// UseNumber keeps the int/float distinction: an angular momentum
	// written as 1.0 is rejected rather than silently truncated.
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Code: ParseInvalidJSON, Detail: err.Error()}
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ParseError{Code: ParseNoElements}
	}
	elements, ok := obj["elements"].(map[string]any)
	if !ok || len(elements) == 0 {
		return nil, &ParseError{Code: ParseNoElements}
	}
	if len(elements) > 1 {
		return nil, &ParseError{Code: ParseMultipleElements, Found: len(elements)}
	}

	var key string
	var elementData any
	for k, v := range elements {
		key, elementData = k, v
	}
	z, err := strconv.Atoi(key)
	if err != nil || z < 1 || z > periodic.MaxZ {
		return nil, &ParseError{Code: ParseInvalidAtomicNumber, Detail: key}
	}

	elObj, _ := elementData.(map[string]any)
	shellsRaw, ok := elObj["electron_shells"].([]any)
	if !ok || len(shellsRaw) == 0 {
		return nil, &ParseError{Code: ParseNoElectronShells}
	}

	var shells []ElectronShell
	for i, raw := range shellsRaw {
		parsed, err := parseShell(i, raw)
		if err != nil {
			return nil, err
		}
		shells = append(shells, parsed...)
	}

	sym, _ := periodic.Symbol(z)
	return &BasisSet{Element: sym, Z: z, Shells: shells}, nil
}

// parseShell validates one electron_shells entry and splits combined
// shells (one coefficient vector per angular momentum) into separate
// ElectronShells.
func parseShell(index int, raw any) ([]ElectronShell, error) {
	malformed := func(detail string) *ParseError {
		return &ParseError{Code: ParseMalformedShell, ShellIndex: index, Detail: detail}
	}

	shell, ok := raw.(map[string]any)
	if !ok {
		return nil, malformed("shell is not an object")
	}

	amRaw, ok := shell["angular_momentum"].([]any)
	if !ok {
		return nil, malformed("missing or invalid angular_momentum")
	}
	if len(amRaw) == 0 {
		return nil, malformed("angular_momentum is empty")
	}
	moments := make([]int, 0, len(amRaw))
	for _, v := range amRaw {
		num, ok := v.(json.Number)
		if !ok {
			return nil, malformed(fmt.Sprintf("angular_momentum entry %v is not a non-negative integer", v))
		}
		l, err := num.Int64()
		if err != nil || l < 0 {
			return nil, malformed(fmt.Sprintf("angular_momentum entry %v is not a non-negative integer", num))
		}
		moments = append(moments, int(l))
	}

	expRaw, ok := shell["exponents"].([]any)
	if !ok {
		return nil, malformed("missing or invalid exponents")
	}
	exponents := make([]float64, 0, len(expRaw))
	for _, v := range expRaw {
		s, ok := v.(string)
		if !ok {
			return nil, malformed(fmt.Sprintf("exponent %v is not a string", v))
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, malformed(fmt.Sprintf("cannot parse exponent %q as a number", s))
		}
		exponents = append(exponents, f)
	}

	coefRaw, ok := shell["coefficients"].([]any)
	if !ok {
		return nil, malformed("missing or invalid coefficients")
	}
	if len(coefRaw) != len(moments) {
		return nil, malformed(fmt.Sprintf("expected %d coefficient vector(s) to match angular_momentum, found %d",
			len(moments), len(coefRaw)))
	}

	out := make([]ElectronShell, 0, len(moments))
	for mi, l := range moments {
		vecRaw, ok := coefRaw[mi].([]any)
		if !ok {
			return nil, malformed("coefficient vector is not an array")
		}
		if len(vecRaw) != len(exponents) {
			return nil, malformed(fmt.Sprintf("coefficient vector has %d values but there are %d exponents",
				len(vecRaw), len(exponents)))
		}
		coefs := make([]float64, 0, len(vecRaw))
		for _, v := range vecRaw {
			s, ok := v.(string)
			if !ok {
				return nil, malformed(fmt.Sprintf("coefficient %v is not a string", v))
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, malformed(fmt.Sprintf("cannot parse coefficient %q as a number", s))
			}
			coefs = append(coefs, f)
		}
		out = append(out, ElectronShell{
			AngularMomentum: l,
			Exponents:       append([]float64(nil), exponents...),
			Coefficients:    coefs,
		})
	}
	return out, nil
}
