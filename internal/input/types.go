package input

import (
	"fmt"

	"github.com/roach88/electron/internal/periodic"
)

// Driver selects the top-level calculation a simulation input requests.
type Driver string

const (
	DriverEnergy   Driver = "energy"
	DriverGradient Driver = "gradient"
	DriverHessian  Driver = "hessian"
	DriverMD       Driver = "md"
)

// Thermostat selects the temperature-control scheme for MD runs.
type Thermostat string

const (
	ThermostatNone              Thermostat = "none"
	ThermostatVelocityRescaling Thermostat = "velocity_rescaling"
)

// Geometry is a molecular geometry in one of its two input forms.
// It is a sealed interface: only CartesianGeometry and ZMatrixGeometry
// implement it.
type Geometry interface {
	// geometryKind restricts implementations to this package.
	geometryKind()
}

// CartesianGeometry stores one atom per index across parallel slices.
// Coordinates are in bohr; unit conversion happens during parsing.
type CartesianGeometry struct {
	Symbols []string
	X       []float64
	Y       []float64
	Z       []float64
}

func (*CartesianGeometry) geometryKind() {}

// NAtoms returns the number of atoms.
func (g *CartesianGeometry) NAtoms() int { return len(g.Symbols) }

// ZMatrixGeometry stores internal coordinates in parallel slices, one
// atom per index. Reference indices are 1-based positions of earlier
// rows. Entries that do not apply to a row (the first atom has no bond,
// the second no angle, the third no dihedral) are nil.
type ZMatrixGeometry struct {
	Symbols         []string
	BondAtoms       []*int
	BondLengthsBohr []*float64
	AngleAtoms      []*int
	AnglesDeg       []*float64
	DihedralAtoms   []*int
	DihedralsDeg    []*float64
}

func (*ZMatrixGeometry) geometryKind() {}

// NAtoms returns the number of atoms (one per Z-matrix row).
func (g *ZMatrixGeometry) NAtoms() int { return len(g.Symbols) }

// Molecule pairs a geometry with its total charge and spin multiplicity.
type Molecule struct {
	Geometry     Geometry
	Charge       int
	Multiplicity int
}

// NAtoms returns the number of atoms in either geometry form.
func (m *Molecule) NAtoms() int {
	switch g := m.Geometry.(type) {
	case *CartesianGeometry:
		return g.NAtoms()
	case *ZMatrixGeometry:
		return g.NAtoms()
	}
	return 0
}

func (m *Molecule) symbols() []string {
	switch g := m.Geometry.(type) {
	case *CartesianGeometry:
		return g.Symbols
	case *ZMatrixGeometry:
		return g.Symbols
	}
	return nil
}

// Elements returns the distinct element symbols of the molecule in
// first-occurrence order.
func (m *Molecule) Elements() []string {
	seen := make(map[string]bool)
	elements := []string{}
	for _, sym := range m.symbols() {
		if seen[sym] {
			continue
		}
		seen[sym] = true
		elements = append(elements, sym)
	}
	return elements
}

// ElectronCounts splits the molecule's electrons into alpha and beta
// spin counts using the charge and multiplicity. The counts satisfy
// nAlpha + nBeta = sum(Z) - charge and nAlpha - nBeta = multiplicity - 1.
// An inconsistent combination (negative electron count, or a
// multiplicity whose parity does not match the electron count) is
// reported as an INVALID_VALUE error.
func (m *Molecule) ElectronCounts() (nAlpha, nBeta int, err error) {
	total := 0
	for _, sym := range m.symbols() {
		z, ok := periodic.AtomicNumber(sym)
		if !ok {
			return 0, 0, errElement(sym)
		}
		total += z
	}
	total -= m.Charge
	if total < 0 {
		return 0, 0, errValue("molecule.charge",
			fmt.Sprintf("charge %d leaves %d electrons", m.Charge, total))
	}
	unpaired := m.Multiplicity - 1
	if unpaired > total || (total-unpaired)%2 != 0 {
		return 0, 0, errValue("molecule.multiplicity",
			fmt.Sprintf("multiplicity %d is inconsistent with %d electrons", m.Multiplicity, total))
	}
	nBeta = (total - unpaired) / 2
	nAlpha = nBeta + unpaired
	return nAlpha, nBeta, nil
}

// Model names the electronic structure method and basis set.
type Model struct {
	Method string
	Basis  string
}

// MDKeywords holds the molecular dynamics parameters. They are parsed
// and validated only when the driver is "md".
type MDKeywords struct {
	TimestepFs   float64
	NSteps       int
	TemperatureK float64
	Thermostat   Thermostat
}

// SimulationInput is a fully validated simulation input document.
type SimulationInput struct {
	Driver   Driver
	Molecule Molecule
	Model    Model
	// Keywords is non-nil only when Driver is DriverMD.
	Keywords *MDKeywords
}
