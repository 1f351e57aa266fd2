// Package guess produces the initial molecular orbital coefficients
// for an SCF calculation from the core Hamiltonian.
//
// The guess diagonalizes H = T + V in the orthogonalized basis obtained
// from the overlap matrix S (canonical orthogonalization), so the
// returned coefficient columns satisfy CᵀSC = I with orbital energies
// ascending along the columns. Inputs are validated before any linear
// algebra runs: shape disagreements, electron counts that do not fit
// the basis, and a singular or indefinite S are reported as typed
// errors in that order.
package guess

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// singularThreshold is the smallest overlap eigenvalue accepted before
// S is declared singular. Below this, 1/sqrt(lambda) amplifies noise
// past any useful precision.
const singularThreshold = 1e-8

// HCore computes initial orbital coefficients from the overlap S,
// kinetic energy T, and nuclear attraction V matrices, all n×n over
// the same AO basis. nAlpha and nBeta are validated against n but do
// not influence the orbitals; every column of the returned n×n C is an
// orbital, ordered by ascending energy.
func HCore(s, t, v mat.Matrix, nAlpha, nBeta int) (*mat.Dense, error) {
	sr, sc := s.Dims()
	tr, tc := t.Dims()
	vr, vc := v.Dims()
	if sr != sc || tr != tc || vr != vc || sr != tr || sr != vr {
		return nil, &DimensionMismatchError{
			SRows: sr, SCols: sc,
			TRows: tr, TCols: tc,
			VRows: vr, VCols: vc,
		}
	}
	n := sr

	if nAlpha < 0 || nBeta < 0 || nAlpha > n || nBeta > n {
		return nil, &TooManyElectronsError{NAlpha: nAlpha, NBeta: nBeta, NBasis: n}
	}

	if n == 0 {
		return &mat.Dense{}, nil
	}

	// Diagonalize S and gate on positive definiteness before H is even
	// formed; a singular overlap means the basis is linearly dependent
	// and no orthogonalization exists.
	var eigS mat.EigenSym
	if ok := eigS.Factorize(toSym(s), true); !ok {
		panic("guess: eigendecomposition of overlap matrix failed to converge")
	}
	sVals := eigS.Values(nil)
	minEig := sVals[0]
	for _, ev := range sVals[1:] {
		if ev < minEig {
			minEig = ev
		}
	}
	if minEig < singularThreshold {
		return nil, &SingularOverlapError{MinEigenvalue: minEig}
	}
	var sVecs mat.Dense
	eigS.VectorsTo(&sVecs)

	// X = U · diag(1/sqrt(lambda)) maps the orthogonal eigenbasis back
	// to AO coefficients.
	invSqrt := mat.NewDiagDense(n, nil)
	for i, ev := range sVals {
		invSqrt.SetDiag(i, 1/math.Sqrt(ev))
	}
	var x mat.Dense
	x.Mul(&sVecs, invSqrt)

	var h mat.Dense
	h.Add(t, v)

	// H' = Xᵀ H X is symmetric in exact arithmetic; rounding can leave
	// it slightly asymmetric, so it is symmetrized via the upper
	// triangle like the other eigendecompositions here.
	var hPrime mat.Dense
	hPrime.Mul(x.T(), &h)
	hPrime.Mul(&hPrime, &x)

	var eigH mat.EigenSym
	if ok := eigH.Factorize(toSym(&hPrime), true); !ok {
		panic("guess: eigendecomposition of core Hamiltonian failed to converge")
	}
	energies := eigH.Values(nil)
	var u mat.Dense
	eigH.VectorsTo(&u)

	// Stable ascending sort of the orbital order. NaN energies compare
	// as equal to everything, so they keep their relative positions
	// rather than poisoning the whole ordering.
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return energies[perm[a]] < energies[perm[b]]
	})

	uSorted := mat.NewDense(n, n, nil)
	for j, from := range perm {
		for i := 0; i < n; i++ {
			uSorted.Set(i, j, u.At(i, from))
		}
	}

	c := mat.NewDense(n, n, nil)
	c.Mul(&x, uSorted)
	return c, nil
}

// toSym copies the upper triangle of a into a SymDense so EigenSym can
// factorize matrices supplied through the plain Matrix interface.
func toSym(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, a.At(i, j))
		}
	}
	return sym
}
