package input

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/electron/internal/periodic"
)

// parseZMatrix parses the molecule.z_matrix block. Each row adds one
// atom in internal coordinates: an element symbol plus 1-based
// references to earlier rows with a bond length, an angle, and a
// dihedral. The first three rows carry progressively fewer entries.
func parseZMatrix(mol *yaml.Node, factor float64) (*ZMatrixGeometry, error) {
	rows, ok := asSequence(mapGet(mol, "z_matrix"))
	if !ok {
		return nil, errValue("molecule.z_matrix", "expected a sequence")
	}
	if len(rows.Content) == 0 {
		return nil, errMissing("molecule.z_matrix")
	}

	n := len(rows.Content)
	geom := &ZMatrixGeometry{
		Symbols:         make([]string, 0, n),
		BondAtoms:       make([]*int, 0, n),
		BondLengthsBohr: make([]*float64, 0, n),
		AngleAtoms:      make([]*int, 0, n),
		AnglesDeg:       make([]*float64, 0, n),
		DihedralAtoms:   make([]*int, 0, n),
		DihedralsDeg:    make([]*float64, 0, n),
	}
	for r, entry := range rows.Content {
		row, ok := asMapping(entry)
		if !ok {
			return nil, errZMatrix(r, "each z_matrix entry must be a mapping")
		}
		if err := parseZMatrixRow(geom, row, r, factor); err != nil {
			return nil, err
		}
	}
	return geom, nil
}

func parseZMatrixRow(geom *ZMatrixGeometry, row *yaml.Node, r int, factor float64) error {
	symNode := mapGet(row, "symbol")
	if symNode == nil {
		return errZMatrix(r, "missing 'symbol'")
	}
	raw, ok := asString(symNode)
	if !ok {
		return errZMatrix(r, "'symbol' must be a string")
	}
	norm, known := periodic.Normalize(raw)
	if !known {
		return errElement(raw)
	}

	var (
		bondAtom     *int
		bondLength   *float64
		angleAtom    *int
		angle        *float64
		dihedralAtom *int
		dihedral     *float64
		err          error
	)
	switch {
	case r == 0:
		if len(row.Content) != 2 {
			return errZMatrix(r, "row 0 must only contain 'symbol'")
		}
	case r == 1:
		if hasKey(row, "angle_atom") || hasKey(row, "angle") {
			return errZMatrix(r, "row 1 must not contain 'angle_atom' or 'angle'")
		}
		if hasKey(row, "dihedral_atom") || hasKey(row, "dihedral") {
			return errZMatrix(r, "row 1 must not contain 'dihedral_atom' or 'dihedral'")
		}
		if bondAtom, bondLength, err = parseBond(row, r, factor); err != nil {
			return err
		}
	case r == 2:
		if hasKey(row, "dihedral_atom") || hasKey(row, "dihedral") {
			return errZMatrix(r, "row 2 must not contain 'dihedral_atom' or 'dihedral'")
		}
		if bondAtom, bondLength, err = parseBond(row, r, factor); err != nil {
			return err
		}
		if angleAtom, angle, err = parseAngle(row, r); err != nil {
			return err
		}
	default:
		if bondAtom, bondLength, err = parseBond(row, r, factor); err != nil {
			return err
		}
		if angleAtom, angle, err = parseAngle(row, r); err != nil {
			return err
		}
		if dihedralAtom, dihedral, err = parseDihedral(row, r); err != nil {
			return err
		}
	}

	if angleAtom != nil && *bondAtom == *angleAtom {
		return errZMatrix(r, fmt.Sprintf("bond_atom (%d) and angle_atom (%d) must be distinct",
			*bondAtom, *angleAtom))
	}
	if dihedralAtom != nil {
		if *bondAtom == *dihedralAtom {
			return errZMatrix(r, fmt.Sprintf("bond_atom (%d) and dihedral_atom (%d) must be distinct",
				*bondAtom, *dihedralAtom))
		}
		if *angleAtom == *dihedralAtom {
			return errZMatrix(r, fmt.Sprintf("angle_atom (%d) and dihedral_atom (%d) must be distinct",
				*angleAtom, *dihedralAtom))
		}
	}

	geom.Symbols = append(geom.Symbols, norm)
	geom.BondAtoms = append(geom.BondAtoms, bondAtom)
	geom.BondLengthsBohr = append(geom.BondLengthsBohr, bondLength)
	geom.AngleAtoms = append(geom.AngleAtoms, angleAtom)
	geom.AnglesDeg = append(geom.AnglesDeg, angle)
	geom.DihedralAtoms = append(geom.DihedralAtoms, dihedralAtom)
	geom.DihedralsDeg = append(geom.DihedralsDeg, dihedral)
	return nil
}

func parseBond(row *yaml.Node, r int, factor float64) (*int, *float64, error) {
	atom, err := refIndex(row, "bond_atom", r)
	if err != nil {
		return nil, nil, err
	}
	node := mapGet(row, "bond_length")
	if node == nil {
		return nil, nil, errZMatrix(r, "missing 'bond_length'")
	}
	v, ok := asFloat(node)
	if !ok {
		return nil, nil, errZMatrix(r, "'bond_length' must be a number")
	}
	if v <= 0 {
		return nil, nil, errZMatrix(r, fmt.Sprintf("'bond_length' must be > 0, got %v", v))
	}
	length := v * factor
	return atom, &length, nil
}

func parseAngle(row *yaml.Node, r int) (*int, *float64, error) {
	atom, err := refIndex(row, "angle_atom", r)
	if err != nil {
		return nil, nil, err
	}
	node := mapGet(row, "angle")
	if node == nil {
		return nil, nil, errZMatrix(r, "missing 'angle'")
	}
	v, ok := asFloat(node)
	if !ok {
		return nil, nil, errZMatrix(r, "'angle' must be a number")
	}
	if v <= 0 || v >= 180 {
		return nil, nil, errZMatrix(r, fmt.Sprintf("'angle' must satisfy 0 < angle < 180, got %v", v))
	}
	return atom, &v, nil
}

func parseDihedral(row *yaml.Node, r int) (*int, *float64, error) {
	atom, err := refIndex(row, "dihedral_atom", r)
	if err != nil {
		return nil, nil, err
	}
	node := mapGet(row, "dihedral")
	if node == nil {
		return nil, nil, errZMatrix(r, "missing 'dihedral'")
	}
	v, ok := asFloat(node)
	if !ok {
		return nil, nil, errZMatrix(r, "'dihedral' must be a number")
	}
	if v < -180 || v > 180 {
		return nil, nil, errZMatrix(r, fmt.Sprintf("'dihedral' must satisfy -180 <= dihedral <= 180, got %v", v))
	}
	return atom, &v, nil
}

// refIndex parses a 1-based reference to an earlier row; row r may only
// reference rows 1 through r.
func refIndex(row *yaml.Node, key string, r int) (*int, error) {
	node := mapGet(row, key)
	if node == nil {
		return nil, errZMatrix(r, fmt.Sprintf("missing '%s'", key))
	}
	v, ok := asInt(node)
	if !ok {
		return nil, errZMatrix(r, fmt.Sprintf("'%s' must be an integer", key))
	}
	if v < 1 || v > int64(r) {
		return nil, errZMatrix(r, fmt.Sprintf("'%s' = %d is out of range; must be 1 to %d", key, v, r))
	}
	idx := int(v)
	return &idx, nil
}
