package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/canvaslms/canvas-cli/internal/debug"
	"github.com/canvaslms/canvas-cli/internal/iocontext"
	"github.com/canvaslms/canvas-cli/internal/outfmt"
	"github.com/canvaslms/canvas-cli/internal/update"
)

// version is injected at build time via -ldflags.
var version = "dev"

// rootFlags holds the global CLI flags.
type rootFlags struct {
	Output  string
	JSON    bool
	JQ      string
	Debug   bool
	Timeout time.Duration
	PerPage int
}

// flags is package-level mutable state, reset at the start of every
// Execute call so tests get a clean slate.
var flags = rootFlags{}

// Execute runs the root command.
func Execute(ctx context.Context, args []string) error {
	flags = rootFlags{}

	root := &cobra.Command{
		Use:           "canvas",
		Short:         "CLI for the Canvas learning management system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if flags.JSON {
				flags.Output = "json"
			}
			mode, err := outfmt.Parse(flags.Output)
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)
			ctx = debug.WithDebug(ctx, flags.Debug)
			ctx = iocontext.WithIO(ctx, iocontext.DefaultIO())

			debug.SetupLogger(flags.Debug)

			cmd.SetContext(ctx)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.Output, "output", "o", "text", "Output format: text, json, jsonl")
	pf.BoolVar(&flags.JSON, "json", false, "Shorthand for --output json")
	pf.StringVar(&flags.JQ, "jq", "", "Filter JSON output with a jq expression")
	pf.BoolVar(&flags.Debug, "debug", false, "Log every request and its rate telemetry")
	pf.DurationVar(&flags.Timeout, "timeout", 0, "HTTP timeout (0 uses the default)")
	pf.IntVar(&flags.PerPage, "per-page", 0, "Page size for listings (10-100)")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newCoursesCmd())
	root.AddCommand(newStudentsCmd())
	root.AddCommand(newAssignmentsCmd())
	root.AddCommand(newSubmissionsCmd())
	root.AddCommand(newFilesCmd())
	root.AddCommand(newFoldersCmd())
	root.AddCommand(newModulesCmd())
	root.AddCommand(newVersionCmd())

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			io := iocontext.GetIO(cmd.Context())
			fmt.Fprintf(io.Out, "canvas %s\n", version)
			if checkUpdate {
				if result := update.Check(cmd.Context(), version); result != nil && result.UpdateAvailable {
					fmt.Fprintf(io.ErrOut, "update available: %s -> %s (%s)\n",
						result.CurrentVersion, result.LatestVersion, result.UpdateURL)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "Check GitHub for a newer release")
	return cmd
}
