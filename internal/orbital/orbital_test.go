package orbital

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/electron/internal/bse"
	"github.com/roach88/electron/internal/testutil"
)

func TestBuildEmptyMolecule(t *testing.T) {
	geom := testutil.NewGeometry(nil, nil, nil, nil)
	src := SourceFunc(func(element, basis string) (*bse.BasisSet, error) {
		t.Fatalf("source must not be consulted for an empty molecule, got %s", element)
		return nil, nil
	})

	ao, err := Build(geom, "sto-3g", src)
	require.NoError(t, err)
	assert.Equal(t, 0, ao.NBasis)
	assert.Equal(t, 0, ao.NShells)
	assert.Empty(t, ao.CenterX)
	assert.Empty(t, ao.Lx)
	assert.Empty(t, ao.ShellIndex)
	assert.Empty(t, ao.AtomIndex)
	assert.Empty(t, ao.PrimOffset)
	assert.Empty(t, ao.Exponents)
}

func TestBuildSingleSShell(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"H": testutil.NewBasisSet("H", testutil.UniformShell(0, 3)),
	})

	ao, err := Build(testutil.SingleAtom("H", 0, 0, 0), "sto-3g", SourceFunc(src))
	require.NoError(t, err)

	assert.Equal(t, 1, ao.NBasis)
	assert.Equal(t, 1, ao.NShells)
	assert.Equal(t, []int{0}, ao.Lx)
	assert.Equal(t, []int{0}, ao.Ly)
	assert.Equal(t, []int{0}, ao.Lz)
	assert.Equal(t, []int{0}, ao.ShellIndex)
	assert.Equal(t, []int{0}, ao.AtomIndex)
	assert.Equal(t, []int{0}, ao.PrimOffset)
	assert.Equal(t, []int{3}, ao.NPrimitives)
}

func TestBuildSAndPShells(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"C": testutil.NewBasisSet("C",
			testutil.UniformShell(0, 3),
			testutil.UniformShell(1, 3),
		),
	})

	ao, err := Build(testutil.SingleAtom("C", 0, 0, 0), "sto-3g", SourceFunc(src))
	require.NoError(t, err)

	assert.Equal(t, 4, ao.NBasis)
	assert.Equal(t, 2, ao.NShells)
	assert.Equal(t, []int{0, 1, 0, 0}, ao.Lx)
	assert.Equal(t, []int{0, 0, 1, 0}, ao.Ly)
	assert.Equal(t, []int{0, 0, 0, 1}, ao.Lz)
}

func TestBuildPComponentOrder(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"C": testutil.NewBasisSet("C", testutil.UniformShell(1, 1)),
	})

	ao, err := Build(testutil.SingleAtom("C", 0, 0, 0), "any", SourceFunc(src))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0, 0}, ao.Lx)
	assert.Equal(t, []int{0, 1, 0}, ao.Ly)
	assert.Equal(t, []int{0, 0, 1}, ao.Lz)
	// All three p components belong to the same shell.
	assert.Equal(t, []int{0, 0, 0}, ao.ShellIndex)
}

func TestBuildDShellComponentOrder(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"C": testutil.NewBasisSet("C", testutil.UniformShell(2, 1)),
	})

	ao, err := Build(testutil.SingleAtom("C", 0, 0, 0), "any", SourceFunc(src))
	require.NoError(t, err)

	assert.Equal(t, 6, ao.NBasis)
	assert.Equal(t, []int{2, 1, 1, 0, 0, 0}, ao.Lx)
	assert.Equal(t, []int{0, 1, 0, 2, 1, 0}, ao.Ly)
	assert.Equal(t, []int{0, 0, 1, 0, 1, 2}, ao.Lz)
}

func TestBuildWaterCounts(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"O": testutil.NewBasisSet("O",
			testutil.UniformShell(0, 3),
			testutil.UniformShell(1, 3),
		),
		"H": testutil.NewBasisSet("H", testutil.UniformShell(0, 3)),
	})
	geom := testutil.NewGeometry(
		[]string{"O", "H", "H"},
		[]float64{0, 0, 1.7},
		[]float64{0, 0, 0},
		[]float64{0, 1.8, -0.4},
	)

	ao, err := Build(geom, "sto-3g", SourceFunc(src))
	require.NoError(t, err)
	assert.Equal(t, 6, ao.NBasis)
	assert.Equal(t, 4, ao.NShells)
}

func TestBuildAtomIndexIsAtomMajor(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"O": testutil.NewBasisSet("O",
			testutil.UniformShell(0, 1),
			testutil.UniformShell(0, 1),
			testutil.UniformShell(1, 1),
		),
		"H": testutil.NewBasisSet("H", testutil.UniformShell(0, 1)),
	})
	geom := testutil.NewGeometry(
		[]string{"O", "H", "H"},
		[]float64{0, 0, 1.7},
		[]float64{0, 0, 0},
		[]float64{0, 1.8, -0.4},
	)

	ao, err := Build(geom, "sto-3g", SourceFunc(src))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 2}, ao.AtomIndex)
}

func TestBuildShellIndexWithinAtom(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"C": testutil.NewBasisSet("C",
			testutil.UniformShell(0, 1),
			testutil.UniformShell(1, 1),
			testutil.UniformShell(0, 1),
		),
	})

	ao, err := Build(testutil.SingleAtom("C", 0, 0, 0), "any", SourceFunc(src))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1, 1, 2}, ao.ShellIndex)
}

func TestBuildShellIndexContinuesAcrossAtoms(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"H": testutil.NewBasisSet("H", testutil.UniformShell(0, 1)),
	})
	geom := testutil.NewGeometry(
		[]string{"H", "H"},
		[]float64{0, 0},
		[]float64{0, 0},
		[]float64{0, 1.4},
	)

	ao, err := Build(geom, "sto-3g", SourceFunc(src))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ao.ShellIndex)
	assert.Equal(t, []int{0, 1}, ao.AtomIndex)
}

func TestBuildCentersFollowAtoms(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"N": testutil.NewBasisSet("N", testutil.UniformShell(1, 1)),
	})

	ao, err := Build(testutil.SingleAtom("N", 1.5, 2.5, 3.5), "any", SourceFunc(src))
	require.NoError(t, err)
	require.Equal(t, 3, ao.NBasis)
	for i := 0; i < ao.NBasis; i++ {
		assert.InDelta(t, 1.5, ao.CenterX[i], 1e-12)
		assert.InDelta(t, 2.5, ao.CenterY[i], 1e-12)
		assert.InDelta(t, 3.5, ao.CenterZ[i], 1e-12)
	}
}

func TestBuildCopiesPrimitiveData(t *testing.T) {
	exps := []float64{3.425250914, 0.6239137298, 0.1688554040}
	coefs := []float64{0.1543289673, 0.5353281423, 0.4446345422}
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"H": testutil.NewBasisSet("H", testutil.NewShell(0, exps, coefs)),
	})

	ao, err := Build(testutil.SingleAtom("H", 0, 0, 0), "sto-3g", SourceFunc(src))
	require.NoError(t, err)

	require.Equal(t, []int{3}, ao.NPrimitives)
	for i := range exps {
		assert.InDelta(t, exps[i], ao.Exponents[i], 1e-12)
		assert.InDelta(t, coefs[i], ao.Coefficients[i], 1e-12)
	}
}

func TestBuildPrimitiveOffsets(t *testing.T) {
	src := testutil.StaticSource(map[string]*bse.BasisSet{
		"Be": testutil.NewBasisSet("Be",
			testutil.NewShell(0, []float64{30, 5, 1}, []float64{0.15, 0.53, 0.44}),
			testutil.NewShell(0, []float64{1.3, 0.3}, []float64{-0.1, 1.1}),
		),
	})

	ao, err := Build(testutil.SingleAtom("Be", 0, 0, 0), "any", SourceFunc(src))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3}, ao.PrimOffset)
	assert.Equal(t, []int{3, 2}, ao.NPrimitives)
	require.Len(t, ao.Exponents, 5)
	assert.InDelta(t, 30.0, ao.Exponents[0], 1e-12)
	assert.InDelta(t, 1.3, ao.Exponents[3], 1e-12)
	assert.InDelta(t, 0.3, ao.Exponents[4], 1e-12)
	require.Len(t, ao.Coefficients, 5)
	assert.InDelta(t, -0.1, ao.Coefficients[3], 1e-12)
}

func TestBuildLoadsEachElementOnce(t *testing.T) {
	src, counts := testutil.CountingSource(testutil.StaticSource(map[string]*bse.BasisSet{
		"O": testutil.NewBasisSet("O", testutil.UniformShell(0, 1)),
		"H": testutil.NewBasisSet("H", testutil.UniformShell(0, 1)),
	}))
	geom := testutil.NewGeometry(
		[]string{"O", "H", "H"},
		[]float64{0, 0, 1.7},
		[]float64{0, 0, 0},
		[]float64{0, 1.8, -0.4},
	)

	_, err := Build(geom, "sto-3g", SourceFunc(src))
	require.NoError(t, err)
	assert.Equal(t, 1, counts["O"])
	assert.Equal(t, 1, counts["H"])
}

func TestBuildAttributesLoadErrorToElement(t *testing.T) {
	boom := errors.New("basis backend down")
	src := SourceFunc(func(element, basis string) (*bse.BasisSet, error) {
		return nil, boom
	})
	geom := testutil.NewGeometry(
		[]string{"H", "C"},
		[]float64{0, 0},
		[]float64{0, 0},
		[]float64{0, 2.0},
	)

	_, err := Build(geom, "sto-3g", src)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "H", le.Element, "the first failing element wins")
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, "load basis for element H: basis backend down", err.Error())
}

func TestBuildAttributesLoadErrorToLaterElement(t *testing.T) {
	src := SourceFunc(func(element, basis string) (*bse.BasisSet, error) {
		if element == "C" {
			return nil, errors.New("no carbon here")
		}
		return testutil.NewBasisSet(element, testutil.UniformShell(0, 1)), nil
	})
	geom := testutil.NewGeometry(
		[]string{"H", "C"},
		[]float64{0, 0},
		[]float64{0, 0},
		[]float64{0, 2.0},
	)

	_, err := Build(geom, "sto-3g", src)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "C", le.Element)
}

func TestCartesianComponentCounts(t *testing.T) {
	for l, want := range map[int]int{0: 1, 1: 3, 2: 6, 3: 10, 4: 15} {
		comps := cartesianComponents(l)
		assert.Len(t, comps, want, "l = %d", l)
		assert.Equal(t, want, nCartesian(l))
		for _, c := range comps {
			assert.Equal(t, l, c.lx+c.ly+c.lz)
		}
	}
}

func TestCartesianComponentsCanonicalOrder(t *testing.T) {
	comps := cartesianComponents(2)
	want := []component{
		{2, 0, 0}, {1, 1, 0}, {1, 0, 1},
		{0, 2, 0}, {0, 1, 1}, {0, 0, 2},
	}
	assert.Equal(t, want, comps)
}
