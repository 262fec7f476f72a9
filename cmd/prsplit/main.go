package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/attuned.prsplit/internal/termfix"

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.prsplit/internal/config"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/ui"
)

type options struct {
	validate bool
	summary  bool
	simulate bool

	source     string
	base       string
	repo       string
	rulesFile  string
	configFile string

	plain        bool
	showBody     bool
	allowDefects bool
	verbose      bool
	fetch        bool
}

func (o *options) mode() models.Mode {
	switch {
	case o.validate:
		return models.ModeValidate
	case o.summary:
		return models.ModeSummary
	case o.simulate:
		return models.ModeSimulate
	default:
		return models.ModeExecute
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "prsplit",
		Short: "Split a long-lived branch into ticket-scoped pull requests",
		Long: `prsplit classifies every file changed between two references into ticket
groups, validates that the groups partition the change set, and opens one
pull request per group in dependency order.

Without a mode flag it executes: branches are pushed and PRs created.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := rootCmd.Flags()
	f.BoolVar(&opts.validate, "validate", false, "Check the grouping and exit non-zero on any defect")
	f.BoolVar(&opts.summary, "summary", false, "Print a per-ticket overview")
	f.BoolVar(&opts.simulate, "simulate", false, "Show the PRs execute mode would create without changing anything")
	rootCmd.MarkFlagsMutuallyExclusive("validate", "summary", "simulate")

	f.StringVar(&opts.source, "source", defaults.Refs.Source, "Branch holding the changes")
	f.StringVar(&opts.base, "base", defaults.Refs.Base, "Branch the PRs target")
	f.StringVar(&opts.repo, "repo", "", "Repository path (default: current directory)")
	f.StringVar(&opts.rulesFile, "rules", "", "Rule catalog YAML (default: built-in catalog)")
	f.StringVar(&opts.configFile, "config", "", "Config file (default: user config dir)")
	f.BoolVar(&opts.plain, "plain", false, "Plain output without the interactive UI")
	f.BoolVar(&opts.showBody, "show-body", false, "Render each PR body in simulate mode")
	f.BoolVar(&opts.allowDefects, "allow-defects", false, "Create PRs even when validation reports defects")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")
	f.BoolVar(&opts.fetch, "fetch", false, "Fetch source and base from the remote first")

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, ui.Bold("Error: ", ui.ColorRed)+err.Error())
	if hints := errors.FlattenHints(err); hints != "" {
		fmt.Fprintln(w, ui.Text("Hint: "+hints, ui.ColorYellow))
	}
}
