package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/electron/internal/archive"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Archive string
	Limit   int
}

// RunSummary is the listing shape of one recorded run.
type RunSummary struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"created_at"`
	Command   string   `json:"command"`
	Driver    string   `json:"driver"`
	Method    string   `json:"method"`
	Basis     string   `json:"basis"`
	NAtoms    int      `json:"n_atoms"`
	NShells   int      `json:"n_shells"`
	NBasis    int      `json:"n_basis"`
	Status    string   `json:"status"`
	Detail    string   `json:"detail,omitempty"`
	Elements  []string `json:"elements"`
}

// RunsResult holds the complete runs listing.
type RunsResult struct {
	Count int          `json:"count"`
	Runs  []RunSummary `json:"runs"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		Long: `List runs recorded in a ledger, newest first.

Examples:
  electron runs --archive runs.db
  electron runs --archive runs.db --limit 5 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Archive, "archive", "", "path to the SQLite run ledger (required)")
	_ = cmd.MarkFlagRequired("archive")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "maximum number of runs to list (0 = all)")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := archive.Open(opts.Archive)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open archive", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	formatter.VerboseLog("Loaded %d run(s) from %s", len(runs), opts.Archive)

	result := RunsResult{
		Count: len(runs),
		Runs:  make([]RunSummary, 0, len(runs)),
	}
	for _, run := range runs {
		result.Runs = append(result.Runs, summarizeRun(run))
	}

	if formatter.Format == "json" {
		return outputRunsJSON(formatter, result)
	}
	return outputRunsText(formatter, result)
}

// summarizeRun converts a stored run to its listing shape.
func summarizeRun(run archive.Run) RunSummary {
	return RunSummary{
		ID:        run.ID,
		CreatedAt: run.CreatedAt.UTC().Format(time.RFC3339),
		Command:   run.Command,
		Driver:    run.Driver,
		Method:    run.Method,
		Basis:     run.Basis,
		NAtoms:    run.NAtoms,
		NShells:   run.NShells,
		NBasis:    run.NBasis,
		Status:    run.Status,
		Detail:    run.Detail,
		Elements:  run.Elements,
	}
}

// outputRunsJSON renders the listing as an indented JSON response.
func outputRunsJSON(formatter *OutputFormatter, result RunsResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputRunsText renders the listing as text, one block per run.
func outputRunsText(formatter *OutputFormatter, result RunsResult) error {
	w := formatter.Writer

	if result.Count == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}

	fmt.Fprintf(w, "Runs: %d\n", result.Count)
	for _, run := range result.Runs {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s  %s  %s (%s)\n", run.CreatedAt, truncateID(run.ID), run.Command, run.Status)
		fmt.Fprintf(w, "  Model:    %s %s/%s\n", run.Driver, run.Method, run.Basis)
		fmt.Fprintf(w, "  Size:     %d atom(s), %d shell(s), %d basis function(s)\n", run.NAtoms, run.NShells, run.NBasis)
		fmt.Fprintf(w, "  Elements: %s\n", strings.Join(run.Elements, ", "))
		if run.Detail != "" {
			fmt.Fprintf(w, "  Detail:   %s\n", run.Detail)
		}
	}
	return nil
}

// truncateID truncates a long run ID for display.
func truncateID(id string) string {
	if len(id) <= 16 {
		return id
	}
	return id[:8] + "..." + id[len(id)-8:]
}
