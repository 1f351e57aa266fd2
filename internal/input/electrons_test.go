package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func water(charge, multiplicity int) *Molecule {
	return &Molecule{
		Geometry: &CartesianGeometry{
			Symbols: []string{"O", "H", "H"},
			X:       []float64{0, 0, 1.7},
			Y:       []float64{0, 0, 0},
			Z:       []float64{0, 1.8, -0.4},
		},
		Charge:       charge,
		Multiplicity: multiplicity,
	}
}

func TestElectronCountsNeutralSinglet(t *testing.T) {
	nAlpha, nBeta, err := water(0, 1).ElectronCounts()
	require.NoError(t, err)
	assert.Equal(t, 5, nAlpha)
	assert.Equal(t, 5, nBeta)
}

func TestElectronCountsCationDoublet(t *testing.T) {
	nAlpha, nBeta, err := water(1, 2).ElectronCounts()
	require.NoError(t, err)
	assert.Equal(t, 5, nAlpha)
	assert.Equal(t, 4, nBeta)
}

func TestElectronCountsAnionDoublet(t *testing.T) {
	nAlpha, nBeta, err := water(-1, 2).ElectronCounts()
	require.NoError(t, err)
	assert.Equal(t, 6, nAlpha)
	assert.Equal(t, 5, nBeta)
}

func TestElectronCountsTriplet(t *testing.T) {
	mol := &Molecule{
		Geometry:     &CartesianGeometry{Symbols: []string{"O", "O"}},
		Multiplicity: 3,
	}
	nAlpha, nBeta, err := mol.ElectronCounts()
	require.NoError(t, err)
	assert.Equal(t, 9, nAlpha)
	assert.Equal(t, 7, nBeta)
}

func TestElectronCountsParityMismatch(t *testing.T) {
	// 10 electrons cannot form a doublet.
	_, _, err := water(0, 2).ElectronCounts()
	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidValue, ie.Code)
	assert.Equal(t, "molecule.multiplicity", ie.Field)
}

func TestElectronCountsMultiplicityTooLarge(t *testing.T) {
	mol := &Molecule{
		Geometry:     &CartesianGeometry{Symbols: []string{"H"}},
		Multiplicity: 4,
	}
	_, _, err := mol.ElectronCounts()
	require.Error(t, err)
	assert.Equal(t, CodeInvalidValue, CodeOf(err))
}

func TestElectronCountsChargeExceedsElectrons(t *testing.T) {
	mol := &Molecule{
		Geometry:     &CartesianGeometry{Symbols: []string{"H"}},
		Charge:       2,
		Multiplicity: 1,
	}
	_, _, err := mol.ElectronCounts()
	require.Error(t, err)
	ie, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidValue, ie.Code)
	assert.Equal(t, "molecule.charge", ie.Field)
}

func TestElectronCountsZMatrixGeometry(t *testing.T) {
	one := 1
	length := 1.4
	mol := &Molecule{
		Geometry: &ZMatrixGeometry{
			Symbols:         []string{"H", "H"},
			BondAtoms:       []*int{nil, &one},
			BondLengthsBohr: []*float64{nil, &length},
			AngleAtoms:      []*int{nil, nil},
			AnglesDeg:       []*float64{nil, nil},
			DihedralAtoms:   []*int{nil, nil},
			DihedralsDeg:    []*float64{nil, nil},
		},
		Multiplicity: 1,
	}
	nAlpha, nBeta, err := mol.ElectronCounts()
	require.NoError(t, err)
	assert.Equal(t, 1, nAlpha)
	assert.Equal(t, 1, nBeta)
}

func TestElectronCountsCationWithZeroElectrons(t *testing.T) {
	mol := &Molecule{
		Geometry:     &CartesianGeometry{Symbols: []string{"H"}},
		Charge:       1,
		Multiplicity: 1,
	}
	nAlpha, nBeta, err := mol.ElectronCounts()
	require.NoError(t, err)
	assert.Equal(t, 0, nAlpha)
	assert.Equal(t, 0, nBeta)
}

func TestElementsFirstOccurrenceOrder(t *testing.T) {
	mol := &Molecule{
		Geometry: &CartesianGeometry{
			Symbols: []string{"C", "H", "H", "O", "H", "C"},
		},
		Multiplicity: 1,
	}
	assert.Equal(t, []string{"C", "H", "O"}, mol.Elements())
}

func TestElementsWater(t *testing.T) {
	assert.Equal(t, []string{"O", "H"}, water(0, 1).Elements())
}

func TestElementsEmptyMolecule(t *testing.T) {
	mol := &Molecule{Geometry: &CartesianGeometry{}, Multiplicity: 1}
	elements := mol.Elements()
	require.NotNil(t, elements)
	assert.Empty(t, elements)
}
