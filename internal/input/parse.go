// Package input parses and validates YAML simulation input documents.
//
// Parsing is strict: unknown top-level fields are rejected, every value
// is type-checked against the schema, and all failures map onto the
// closed error taxonomy in errors.go with the offending field, row, or
// symbol attached. Coordinates are converted to bohr during parsing, so
// downstream packages only ever see atomic units.
package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/electron/internal/periodic"
)

// AngstromToBohr converts lengths from angstrom to bohr.
const AngstromToBohr = 1.8897259886

// ParseFile reads the file at path and parses it with Parse.
func ParseFile(path string) (*SimulationInput, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errIO(err.Error())
	}
	return Parse(src)
}

// Parse parses and fully validates a YAML simulation input document.
func Parse(src []byte) (*SimulationInput, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errYAML(err.Error())
	}
	root := documentRoot(&doc)
	if root == nil {
		return nil, errYAML("top-level document must be a mapping")
	}

	for i := 0; i < len(root.Content); i += 2 {
		switch key := root.Content[i].Value; key {
		case "driver", "molecule", "model", "keywords":
		default:
			return nil, errUnknownField(key)
		}
	}

	driver, err := parseDriver(root)
	if err != nil {
		return nil, err
	}
	molecule, err := parseMolecule(root)
	if err != nil {
		return nil, err
	}
	model, err := parseModel(root)
	if err != nil {
		return nil, err
	}

	in := &SimulationInput{Driver: driver, Molecule: *molecule, Model: *model}
	if driver == DriverMD {
		keywords, err := parseKeywords(root)
		if err != nil {
			return nil, err
		}
		in.Keywords = keywords
	}
	return in, nil
}

// documentRoot unwraps the document node and returns the top-level
// mapping, or nil when the document is empty or not a mapping.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil
	}
	root := deref(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil
	}
	return root
}

func deref(n *yaml.Node) *yaml.Node {
	if n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		return n.Alias
	}
	return n
}

// mapGet returns the value node for key, or nil when absent.
func mapGet(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return deref(m.Content[i+1])
		}
	}
	return nil
}

func hasKey(m *yaml.Node, key string) bool {
	return mapGet(m, key) != nil
}

// asString accepts only YAML string scalars, mirroring the strict
// schema: a bare 42 is not a valid method name.
func asString(n *yaml.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", false
	}
	return n.Value, true
}

func asInt(n *yaml.Node) (int64, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag != "!!int" {
		return 0, false
	}
	var v int64
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

// asFloat accepts floats and integers; YAML writes whole numbers like
// 1.4 * 10 as integers, and coordinates are routinely whole.
func asFloat(n *yaml.Node) (float64, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || (n.Tag != "!!float" && n.Tag != "!!int") {
		return 0, false
	}
	var v float64
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

func asMapping(n *yaml.Node) (*yaml.Node, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, false
	}
	return n, true
}

func asSequence(n *yaml.Node) (*yaml.Node, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, false
	}
	return n, true
}

func parseDriver(root *yaml.Node) (Driver, error) {
	node := mapGet(root, "driver")
	if node == nil {
		return "", errMissing("driver")
	}
	s, ok := asString(node)
	if !ok {
		return "", errValue("driver", "expected a string")
	}
	switch d := Driver(s); d {
	case DriverEnergy, DriverGradient, DriverHessian, DriverMD:
		return d, nil
	}
	return "", errValue("driver", fmt.Sprintf("unrecognised driver %q", s))
}

func parseMolecule(root *yaml.Node) (*Molecule, error) {
	node := mapGet(root, "molecule")
	if node == nil {
		return nil, errMissing("molecule")
	}
	mol, ok := asMapping(node)
	if !ok {
		return nil, errValue("molecule", "expected a mapping")
	}

	charge := int64(0)
	if n := mapGet(mol, "charge"); n != nil {
		c, ok := asInt(n)
		if !ok {
			return nil, errValue("molecule.charge", "expected an integer")
		}
		charge = c
	}

	multiplicity := int64(1)
	if n := mapGet(mol, "multiplicity"); n != nil {
		m, ok := asInt(n)
		if !ok {
			return nil, errValue("molecule.multiplicity", "expected an integer")
		}
		if m < 1 {
			return nil, errValue("molecule.multiplicity", fmt.Sprintf("must be >= 1, got %d", m))
		}
		multiplicity = m
	}

	factor, err := parseUnits(mol)
	if err != nil {
		return nil, err
	}

	hasCartesian := hasKey(mol, "symbols") || hasKey(mol, "geometry")
	hasZMatrix := hasKey(mol, "z_matrix")
	var geometry Geometry
	switch {
	case hasCartesian && hasZMatrix:
		return nil, errAmbiguous()
	case hasCartesian:
		geometry, err = parseCartesian(mol, factor)
	case hasZMatrix:
		geometry, err = parseZMatrix(mol, factor)
	default:
		return nil, errMissing("molecule.symbols")
	}
	if err != nil {
		return nil, err
	}

	return &Molecule{
		Geometry:     geometry,
		Charge:       int(charge),
		Multiplicity: int(multiplicity),
	}, nil
}

// parseUnits returns the factor that converts input lengths to bohr.
func parseUnits(mol *yaml.Node) (float64, error) {
	node := mapGet(mol, "units")
	if node == nil {
		return AngstromToBohr, nil
	}
	s, ok := asString(node)
	if !ok {
		return 0, errValue("molecule.units", "expected a string")
	}
	switch s {
	case "angstrom":
		return AngstromToBohr, nil
	case "bohr":
		return 1.0, nil
	}
	return 0, errValue("molecule.units", fmt.Sprintf("unrecognised units %q", s))
}

func parseCartesian(mol *yaml.Node, factor float64) (*CartesianGeometry, error) {
	symbolsNode := mapGet(mol, "symbols")
	if symbolsNode == nil {
		return nil, errMissing("molecule.symbols")
	}
	symbolsSeq, ok := asSequence(symbolsNode)
	if !ok {
		return nil, errValue("molecule.symbols", "expected a sequence")
	}
	symbols := make([]string, 0, len(symbolsSeq.Content))
	for _, entry := range symbolsSeq.Content {
		raw, ok := asString(entry)
		if !ok {
			return nil, errValue("molecule.symbols", "expected a string")
		}
		norm, known := periodic.Normalize(raw)
		if !known {
			return nil, errElement(raw)
		}
		symbols = append(symbols, norm)
	}

	geometryNode := mapGet(mol, "geometry")
	if geometryNode == nil {
		return nil, errMissing("molecule.geometry")
	}
	geometrySeq, ok := asSequence(geometryNode)
	if !ok {
		return nil, errValue("molecule.geometry", "expected a sequence")
	}
	if len(geometrySeq.Content) != 3*len(symbols) {
		return nil, errCoordinates(len(symbols), len(geometrySeq.Content))
	}

	geom := &CartesianGeometry{
		Symbols: symbols,
		X:       make([]float64, len(symbols)),
		Y:       make([]float64, len(symbols)),
		Z:       make([]float64, len(symbols)),
	}
	for i := range symbols {
		for axis, dst := range [][]float64{geom.X, geom.Y, geom.Z} {
			v, ok := asFloat(geometrySeq.Content[3*i+axis])
			if !ok {
				return nil, errValue("molecule.geometry", "expected a number")
			}
			dst[i] = v * factor
		}
	}
	return geom, nil
}

func parseModel(root *yaml.Node) (*Model, error) {
	node := mapGet(root, "model")
	if node == nil {
		return nil, errMissing("model")
	}
	model, ok := asMapping(node)
	if !ok {
		return nil, errValue("model", "expected a mapping")
	}

	method, err := requiredString(model, "method", "model.method")
	if err != nil {
		return nil, err
	}
	basis, err := requiredString(model, "basis", "model.basis")
	if err != nil {
		return nil, err
	}
	return &Model{Method: method, Basis: basis}, nil
}

func requiredString(m *yaml.Node, key, field string) (string, error) {
	node := mapGet(m, key)
	if node == nil {
		return "", errMissing(field)
	}
	s, ok := asString(node)
	if !ok {
		return "", errValue(field, "expected a string")
	}
	if s == "" {
		return "", errValue(field, "must not be empty")
	}
	return s, nil
}

func parseKeywords(root *yaml.Node) (*MDKeywords, error) {
	node := mapGet(root, "keywords")
	if node == nil {
		return nil, errMissing("keywords")
	}
	kw, ok := asMapping(node)
	if !ok {
		return nil, errValue("keywords", "expected a mapping")
	}

	timestepNode := mapGet(kw, "timestep_fs")
	if timestepNode == nil {
		return nil, errMissing("keywords.timestep_fs")
	}
	timestep, ok := asFloat(timestepNode)
	if !ok {
		return nil, errValue("keywords.timestep_fs", "expected a number")
	}
	if timestep <= 0 {
		return nil, errValue("keywords.timestep_fs", fmt.Sprintf("must be > 0, got %v", timestep))
	}

	nStepsNode := mapGet(kw, "n_steps")
	if nStepsNode == nil {
		return nil, errMissing("keywords.n_steps")
	}
	nSteps, ok := asInt(nStepsNode)
	if !ok {
		return nil, errValue("keywords.n_steps", "expected an integer")
	}
	if nSteps <= 0 {
		return nil, errValue("keywords.n_steps", fmt.Sprintf("must be > 0, got %d", nSteps))
	}

	temperature := 0.0
	if n := mapGet(kw, "temperature_k"); n != nil {
		temp, ok := asFloat(n)
		if !ok {
			return nil, errValue("keywords.temperature_k", "expected a number")
		}
		if temp < 0 {
			return nil, errValue("keywords.temperature_k", fmt.Sprintf("must be >= 0, got %v", temp))
		}
		temperature = temp
	}

	thermostat := ThermostatNone
	if n := mapGet(kw, "thermostat"); n != nil {
		s, ok := asString(n)
		if !ok {
			return nil, errValue("keywords.thermostat", "expected a string")
		}
		switch th := Thermostat(s); th {
		case ThermostatNone, ThermostatVelocityRescaling:
			thermostat = th
		default:
			return nil, errValue("keywords.thermostat", fmt.Sprintf("unrecognised thermostat %q", s))
		}
	}

	return &MDKeywords{
		TimestepFs:   timestep,
		NSteps:       int(nSteps),
		TemperatureK: temperature,
		Thermostat:   thermostat,
	}, nil
}
