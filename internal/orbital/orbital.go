// Package orbital flattens a molecular geometry and per-element basis
// set definitions into the contracted Cartesian AO basis consumed by
// integral evaluation.
//
// The expansion is deterministic: basis functions are emitted atom by
// atom in geometry order, shells in definition order within each atom,
// and Cartesian components in canonical order within each shell. Each
// unique element is resolved through the Source exactly once no matter
// how many atoms share it.
package orbital

import (
	"fmt"

	"github.com/roach88/electron/internal/bse"
	"github.com/roach88/electron/internal/input"
)

// AOBasis is the structure-of-arrays form of the contracted Cartesian
// AO basis. The per-function slices all have length NBasis, the
// per-shell slices length NShells, and the flat primitive slices the
// sum of all NPrimitives entries. ShellIndex maps a basis function back
// to its shell; PrimOffset and NPrimitives locate that shell's window
// in Exponents and Coefficients.
type AOBasis struct {
	NBasis  int
	NShells int

	// Per basis function.
	CenterX    []float64
	CenterY    []float64
	CenterZ    []float64
	Lx         []int
	Ly         []int
	Lz         []int
	ShellIndex []int
	AtomIndex  []int

	// Per shell.
	PrimOffset  []int
	NPrimitives []int

	// Per primitive, flattened shell by shell.
	Exponents    []float64
	Coefficients []float64
}

// Source resolves one element's basis definition. *bse.Client satisfies
// Source; tests inject in-memory lookups.
type Source interface {
	Load(element, basis string) (*bse.BasisSet, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(element, basis string) (*bse.BasisSet, error)

// Load calls f.
func (f SourceFunc) Load(element, basis string) (*bse.BasisSet, error) {
	return f(element, basis)
}

// LoadError attributes a failed basis definition lookup to the element
// that needed it.
type LoadError struct {
	Element string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load basis for element %s: %v", e.Element, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Build constructs the AO basis for geom using basisName definitions
// resolved through src.
func Build(geom *input.CartesianGeometry, basisName string, src Source) (*AOBasis, error) {
	byElement, err := resolveElements(geom.Symbols, basisName, src)
	if err != nil {
		return nil, err
	}

	ao := &AOBasis{}
	primOffset := 0
	for atomIdx, sym := range geom.Symbols {
		for _, sh := range byElement[sym].Shells {
			shellIdx := ao.NShells
			ao.NShells++
			ao.PrimOffset = append(ao.PrimOffset, primOffset)
			ao.NPrimitives = append(ao.NPrimitives, len(sh.Exponents))
			ao.Exponents = append(ao.Exponents, sh.Exponents...)
			ao.Coefficients = append(ao.Coefficients, sh.Coefficients...)
			primOffset += len(sh.Exponents)

			for _, comp := range cartesianComponents(sh.AngularMomentum) {
				ao.CenterX = append(ao.CenterX, geom.X[atomIdx])
				ao.CenterY = append(ao.CenterY, geom.Y[atomIdx])
				ao.CenterZ = append(ao.CenterZ, geom.Z[atomIdx])
				ao.Lx = append(ao.Lx, comp.lx)
				ao.Ly = append(ao.Ly, comp.ly)
				ao.Lz = append(ao.Lz, comp.lz)
				ao.ShellIndex = append(ao.ShellIndex, shellIdx)
				ao.AtomIndex = append(ao.AtomIndex, atomIdx)
				ao.NBasis++
			}
		}
	}
	return ao, nil
}

// BuildDefault builds the AO basis using the live Basis Set Exchange
// client with its default cache location.
func BuildDefault(geom *input.CartesianGeometry, basisName string) (*AOBasis, error) {
	return Build(geom, basisName, bse.NewClient())
}

// resolveElements loads the definition for each unique symbol, in first
// occurrence order, exactly once.
func resolveElements(symbols []string, basisName string, src Source) (map[string]*bse.BasisSet, error) {
	byElement := make(map[string]*bse.BasisSet, len(symbols))
	for _, sym := range symbols {
		if _, done := byElement[sym]; done {
			continue
		}
		bs, err := src.Load(sym, basisName)
		if err != nil {
			return nil, &LoadError{Element: sym, Err: err}
		}
		byElement[sym] = bs
	}
	return byElement, nil
}

// component is one Cartesian (lx, ly, lz) exponent triple.
type component struct {
	lx, ly, lz int
}

// cartesianComponents lists the triples for angular momentum l in
// canonical order: lx descending from l to 0, then ly descending from
// l-lx to 0, with lz making up the remainder. For l = 1 that is
// (1,0,0), (0,1,0), (0,0,1).
func cartesianComponents(l int) []component {
	comps := make([]component, 0, nCartesian(l))
	for lx := l; lx >= 0; lx-- {
		for ly := l - lx; ly >= 0; ly-- {
			comps = append(comps, component{lx, ly, l - lx - ly})
		}
	}
	return comps
}

// nCartesian returns (l+1)(l+2)/2, the number of Cartesian components
// of angular momentum l.
func nCartesian(l int) int {
	return (l + 1) * (l + 2) / 2
}
