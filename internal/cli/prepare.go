package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/electron/internal/archive"
	"github.com/roach88/electron/internal/bse"
	"github.com/roach88/electron/internal/input"
	"github.com/roach88/electron/internal/orbital"
)

// PrepareOptions holds flags for the prepare command.
type PrepareOptions struct {
	*RootOptions
	BaseURL   string
	CacheRoot string
	Archive   string
}

// PrepareResult holds the prepared-calculation summary.
type PrepareResult struct {
	Driver      string   `json:"driver"`
	Method      string   `json:"method"`
	Basis       string   `json:"basis"`
	NAtoms      int      `json:"n_atoms"`
	Elements    []string `json:"elements"`
	NShells     int      `json:"n_shells"`
	NBasis      int      `json:"n_basis"`
	NPrimitives int      `json:"n_primitives"`
	NAlpha      int      `json:"n_alpha"`
	NBeta       int      `json:"n_beta"`
	RunID       string   `json:"run_id,omitempty"`
}

// NewPrepareCommand creates the prepare command.
func NewPrepareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PrepareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "prepare <input.yaml>",
		Short: "Build the AO basis for a simulation input",
		Long: `Parse a simulation input, resolve its basis set through the Basis Set
Exchange cache, and expand it into the Cartesian Gaussian basis the
calculation runs in.

Requires Cartesian coordinates. Basis definitions are downloaded once
per (basis, element) pair and reused from the cache afterwards.

Examples:
  electron prepare water.yaml
  electron prepare water.yaml --cache-root ./basis-cache
  electron prepare water.yaml --archive runs.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "base-url", bse.DefaultBaseURL, "Basis Set Exchange API base URL")
	cmd.Flags().StringVar(&opts.CacheRoot, "cache-root", bse.DefaultCacheRoot, "basis set cache directory")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "record the run in this SQLite ledger")

	return cmd
}

func runPrepare(opts *PrepareOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	sim, err := input.ParseFile(path)
	if err != nil {
		return failWith(formatter, err)
	}
	formatter.VerboseLog("Parsed %s", path)

	run := archive.Run{
		ID:        archive.NewRunID(),
		CreatedAt: time.Now().UTC(),
		Command:   "prepare",
		Driver:    string(sim.Driver),
		Method:    sim.Model.Method,
		Basis:     sim.Model.Basis,
		NAtoms:    sim.Molecule.NAtoms(),
		Status:    archive.StatusOK,
		Elements:  sim.Molecule.Elements(),
	}

	geom, ok := sim.Molecule.Geometry.(*input.CartesianGeometry)
	if !ok {
		const msg = "geometry is a Z-matrix; prepare needs Cartesian coordinates"
		recordFailedRun(formatter, opts.Archive, run, msg)
		return failWithCode(formatter, ErrCodeNeedsCartesian, msg, ExitFailure)
	}

	nAlpha, nBeta, err := sim.Molecule.ElectronCounts()
	if err != nil {
		recordFailedRun(formatter, opts.Archive, run, err.Error())
		return failWith(formatter, err)
	}

	client := bse.NewClientWith(opts.BaseURL, opts.CacheRoot)
	formatter.VerboseLog("Resolving basis %q for %d element(s)", sim.Model.Basis, len(run.Elements))

	basis, err := orbital.Build(geom, sim.Model.Basis, client)
	if err != nil {
		recordFailedRun(formatter, opts.Archive, run, err.Error())
		return failWith(formatter, err)
	}

	run.NShells = basis.NShells
	run.NBasis = basis.NBasis

	result := PrepareResult{
		Driver:      run.Driver,
		Method:      run.Method,
		Basis:       run.Basis,
		NAtoms:      run.NAtoms,
		Elements:    run.Elements,
		NShells:     basis.NShells,
		NBasis:      basis.NBasis,
		NPrimitives: len(basis.Exponents),
		NAlpha:      nAlpha,
		NBeta:       nBeta,
	}

	if opts.Archive != "" {
		if err := recordRun(opts.Archive, run); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		result.RunID = run.ID
		formatter.VerboseLog("Recorded run %s in %s", run.ID, opts.Archive)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	return outputPrepareText(formatter, result)
}

// outputPrepareText renders the prepared-calculation summary.
func outputPrepareText(formatter *OutputFormatter, result PrepareResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Prepared: driver=%s, method=%s, basis=%s\n", result.Driver, result.Method, result.Basis)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Atoms:     %d\n", result.NAtoms)
	fmt.Fprintf(w, "  Elements:  %s\n", strings.Join(result.Elements, ", "))
	fmt.Fprintf(w, "  Shells:    %d\n", result.NShells)
	fmt.Fprintf(w, "  Basis:     %d function(s), %d primitive(s)\n", result.NBasis, result.NPrimitives)
	fmt.Fprintf(w, "  Electrons: %d alpha, %d beta\n", result.NAlpha, result.NBeta)
	if result.RunID != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Recorded run %s\n", result.RunID)
	}
	return nil
}

// recordRun opens the ledger, writes one run, and closes it again.
// Commands are short-lived, so the store is not held open.
func recordRun(dbPath string, run archive.Run) error {
	st, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteRun(context.Background(), run)
}

// recordFailedRun writes an error-status run when a ledger is configured.
// Recording problems surface only under --verbose; the original failure
// is what the command reports.
func recordFailedRun(formatter *OutputFormatter, dbPath string, run archive.Run, detail string) {
	if dbPath == "" {
		return
	}
	run.Status = archive.StatusError
	run.Detail = detail
	if err := recordRun(dbPath, run); err != nil {
		formatter.VerboseLog("archive: %v", err)
	}
}
