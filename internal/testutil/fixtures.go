// Package testutil provides shared fixtures for tests that need small
// molecules and hand-built basis set definitions.
package testutil

import (
	"fmt"

	"github.com/roach88/electron/internal/bse"
	"github.com/roach88/electron/internal/input"
	"github.com/roach88/electron/internal/periodic"
)

// NewShell builds one contracted shell from parallel exponent and
// coefficient lists.
func NewShell(l int, exponents, coefficients []float64) bse.ElectronShell {
	return bse.ElectronShell{
		AngularMomentum: l,
		Exponents:       exponents,
		Coefficients:    coefficients,
	}
}

// UniformShell builds a shell of nPrim primitives whose exponents and
// coefficients are all 1. Useful when a test only cares about counts
// and ordering, not values.
func UniformShell(l, nPrim int) bse.ElectronShell {
	ones := make([]float64, nPrim)
	for i := range ones {
		ones[i] = 1.0
	}
	return NewShell(l, ones, append([]float64(nil), ones...))
}

// NewBasisSet wraps shells into a basis definition for a known element
// symbol in canonical title case.
func NewBasisSet(element string, shells ...bse.ElectronShell) *bse.BasisSet {
	z, ok := periodic.AtomicNumber(element)
	if !ok {
		panic(fmt.Sprintf("testutil: unknown element %q", element))
	}
	return &bse.BasisSet{Element: element, Z: z, Shells: shells}
}

// NewGeometry builds a Cartesian geometry from parallel slices.
func NewGeometry(symbols []string, x, y, z []float64) *input.CartesianGeometry {
	return &input.CartesianGeometry{Symbols: symbols, X: x, Y: y, Z: z}
}

// SingleAtom places one atom at (x, y, z).
func SingleAtom(symbol string, x, y, z float64) *input.CartesianGeometry {
	return NewGeometry([]string{symbol}, []float64{x}, []float64{y}, []float64{z})
}

// StaticSource serves fixed per-element basis definitions; elements
// without a fixture produce an error. The returned function matches
// orbital.SourceFunc.
func StaticSource(byElement map[string]*bse.BasisSet) func(element, basis string) (*bse.BasisSet, error) {
	return func(element, basis string) (*bse.BasisSet, error) {
		bs, ok := byElement[element]
		if !ok {
			return nil, fmt.Errorf("no fixture for element %s", element)
		}
		return bs, nil
	}
}

// CountingSource wraps src, tallying Load calls per element so tests
// can assert lookup memoization.
func CountingSource(src func(element, basis string) (*bse.BasisSet, error)) (func(element, basis string) (*bse.BasisSet, error), map[string]int) {
	counts := make(map[string]int)
	wrapped := func(element, basis string) (*bse.BasisSet, error) {
		counts[element]++
		return src(element, basis)
	}
	return wrapped, counts
}
