package guess

import (
	"errors"
	"fmt"
)

// DimensionMismatchError reports integral matrices whose shapes do not
// describe one common square basis. All three shapes are included so
// the caller can see which operand disagrees.
type DimensionMismatchError struct {
	SRows, SCols int
	TRows, TCols int
	VRows, VCols int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("matrix dimension mismatch: S is %dx%d, T is %dx%d, V is %dx%d",
		e.SRows, e.SCols, e.TRows, e.TCols, e.VRows, e.VCols)
}

// TooManyElectronsError reports spin occupation counts that do not fit
// the basis. Counts outside [0, NBasis] are rejected with this error.
type TooManyElectronsError struct {
	NAlpha int
	NBeta  int
	NBasis int
}

func (e *TooManyElectronsError) Error() string {
	return fmt.Sprintf("too many electrons: %d alpha and %d beta electrons for %d basis functions",
		e.NAlpha, e.NBeta, e.NBasis)
}

// SingularOverlapError reports an overlap matrix that is singular or
// not positive definite, which makes canonical orthogonalization
// impossible.
type SingularOverlapError struct {
	MinEigenvalue float64
}

func (e *SingularOverlapError) Error() string {
	return fmt.Sprintf("overlap matrix is singular or not positive definite (smallest eigenvalue %g)",
		e.MinEigenvalue)
}

// IsSingularOverlap reports whether err is a singular-overlap failure.
// Uses errors.As to handle wrapped errors.
func IsSingularOverlap(err error) bool {
	var se *SingularOverlapError
	return errors.As(err, &se)
}
