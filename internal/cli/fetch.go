package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/electron/internal/bse"
	"github.com/roach88/electron/internal/periodic"
)

// FetchOptions holds flags for the fetch command.
type FetchOptions struct {
	*RootOptions
	Basis     string
	BaseURL   string
	CacheRoot string
}

// FetchResult holds the cached basis file per element.
type FetchResult struct {
	Basis string            `json:"basis"`
	Files map[string]string `json:"files"`
}

// NewFetchCommand creates the fetch command.
func NewFetchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FetchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fetch --basis <name> <element>...",
		Short: "Prefetch basis set definitions into the cache",
		Long: `Download basis set definitions from the Basis Set Exchange for the
given elements and store them in the cache. Later prepare runs for the
same (basis, element) pairs work offline.

Element symbols are case-insensitive. Already-cached definitions are
not downloaded again.

Examples:
  electron fetch --basis sto-3g H O
  electron fetch --basis cc-pvdz --cache-root ./basis-cache C N O h`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Basis, "basis", "", "basis set name (required)")
	_ = cmd.MarkFlagRequired("basis")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", bse.DefaultBaseURL, "Basis Set Exchange API base URL")
	cmd.Flags().StringVar(&opts.CacheRoot, "cache-root", bse.DefaultCacheRoot, "basis set cache directory")

	return cmd
}

func runFetch(opts *FetchOptions, elements []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	client := bse.NewClientWith(opts.BaseURL, opts.CacheRoot)
	files := make(map[string]string, len(elements))
	order := make([]string, 0, len(elements))

	for _, element := range elements {
		path, err := client.Fetch(element, opts.Basis)
		if err != nil {
			return failWith(formatter, err)
		}
		sym, _ := periodic.Normalize(element)
		if _, seen := files[sym]; !seen {
			order = append(order, sym)
		}
		files[sym] = path
		formatter.VerboseLog("Cached %s at %s", sym, path)
	}

	result := FetchResult{
		Basis: strings.ToLower(opts.Basis),
		Files: files,
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Fetched %s for %d element(s)\n", result.Basis, len(order))
	fmt.Fprintln(w)
	for _, sym := range order {
		fmt.Fprintf(w, "  %-3s %s\n", sym, files[sym])
	}
	return nil
}
