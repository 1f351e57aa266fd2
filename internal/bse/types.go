package bse

// ElectronShell is one contracted shell for a single angular momentum:
// primitive exponents paired with contraction coefficients. Combined
// shells in the wire format (SP shells with angular_momentum [0, 1])
// are split into one ElectronShell per angular momentum before they
// reach callers; the split shells share exponent values but carry their
// own coefficient vectors.
type ElectronShell struct {
	AngularMomentum int
	Exponents       []float64
	Coefficients    []float64
}

// BasisSet is the parsed basis definition for a single element.
type BasisSet struct {
	// Element is the title-case symbol for Z.
	Element string
	Z       int
	Shells  []ElectronShell
}
