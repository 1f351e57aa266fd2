package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/electron/internal/input"
)

// ValidationResult holds the parsed summary of a valid simulation input.
type ValidationResult struct {
	Valid        bool   `json:"valid"`
	Driver       string `json:"driver"`
	Method       string `json:"method"`
	Basis        string `json:"basis"`
	NAtoms       int    `json:"n_atoms"`
	Charge       int    `json:"charge"`
	Multiplicity int    `json:"multiplicity"`
	Geometry     string `json:"geometry"` // "cartesian" or "z_matrix"
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input.yaml>",
		Short: "Validate a simulation input file",
		Long: `Validate a YAML simulation input without contacting the Basis Set
Exchange or building a basis.

Checks the document against the input schema: driver, molecule
(Cartesian or Z-matrix geometry, charge, multiplicity), model, and -
when the driver is md - the md keywords.

Examples:
  electron validate water.yaml
  electron validate water.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	sim, err := input.ParseFile(path)
	if err != nil {
		return failWith(formatter, err)
	}
	formatter.VerboseLog("Parsed %s", path)

	// A schema-valid document can still describe an impossible electron
	// configuration; catch that here rather than during prepare.
	if _, _, err := sim.Molecule.ElectronCounts(); err != nil {
		return failWith(formatter, err)
	}

	result := ValidationResult{
		Valid:        true,
		Driver:       string(sim.Driver),
		Method:       sim.Model.Method,
		Basis:        sim.Model.Basis,
		NAtoms:       sim.Molecule.NAtoms(),
		Charge:       sim.Molecule.Charge,
		Multiplicity: sim.Molecule.Multiplicity,
		Geometry:     geometryKind(sim.Molecule.Geometry),
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "Parsed: driver=%s, method=%s, basis=%s, atoms=%d\n",
		result.Driver, result.Method, result.Basis, result.NAtoms)
	return nil
}

// geometryKind names the input form of a geometry, matching the YAML keys
// that introduce it.
func geometryKind(g input.Geometry) string {
	switch g.(type) {
	case *input.ZMatrixGeometry:
		return "z_matrix"
	default:
		return "cartesian"
	}
}
