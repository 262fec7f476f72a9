package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wahlandcase/attuned.prsplit/internal/app"
	"github.com/wahlandcase/attuned.prsplit/internal/config"
	"github.com/wahlandcase/attuned.prsplit/internal/emit"
	"github.com/wahlandcase/attuned.prsplit/internal/engine"
	"github.com/wahlandcase/attuned.prsplit/internal/git"
	"github.com/wahlandcase/attuned.prsplit/internal/github"
	"github.com/wahlandcase/attuned.prsplit/internal/logging"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/report"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
	"github.com/wahlandcase/attuned.prsplit/internal/termfix"
	"github.com/wahlandcase/attuned.prsplit/internal/ui"
)

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configFile != "" {
		cfg, err = config.LoadFrom(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Flags win over the config file
	if cmd.Flags().Changed("source") || cfg.Refs.Source == "" {
		cfg.Refs.Source = opts.source
	}
	if cmd.Flags().Changed("base") || cfg.Refs.Base == "" {
		cfg.Refs.Base = opts.base
	}
	if opts.rulesFile != "" {
		cfg.Rules.File = opts.rulesFile
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	mode := opts.mode()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	source, base := cfg.Refs.Source, cfg.Refs.Base

	interactive := mode == models.ModeExecute && !opts.plain && termfix.Interactive(os.Stdin, os.Stdout)

	logOpts := logging.Options{Level: cfg.Logging.Level, File: cfg.LogFile(), Verbose: opts.verbose}
	if interactive {
		// The alt screen owns the terminal; logs go to a file only
		if logOpts.File == "" {
			logOpts.File = logging.DefaultFile()
		}
	} else {
		logOpts.Console = cmd.ErrOrStderr()
	}
	logger, flush, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	defer flush()
	logger.Info("run started", zap.Stringer("mode", mode), zap.String("source", source), zap.String("base", base))

	cat, err := cfg.Catalog()
	if err != nil {
		return errors.WithHint(err, "check the rules file or remove it to use the built-in catalog")
	}

	repo, err := git.Open(opts.repo, cfg.Refs.Remote)
	if err != nil {
		return err
	}

	if opts.fetch {
		fmt.Fprintln(out, ui.Dim(fmt.Sprintf("Fetching %s and %s from %s...", source, base, repo.Remote)))
		if err := git.NewWorktree(repo.Path, repo.Remote).Fetch(ctx, source, base); err != nil {
			return err
		}
	}

	if err := repo.CheckRefs(source, base); err != nil {
		return err
	}
	st, err := repo.BranchStatus(ctx, base, source)
	if err != nil {
		return err
	}
	report.Preflight(out, st)

	eng := engine.New(cat, logger)
	plan, err := eng.Run(ctx, git.NewHistory(repo, cfg.TicketRegex()), base, source)
	if err != nil {
		return err
	}
	report.Analysis(out, len(plan.Commits), len(plan.ChangedFiles), plan.Classification, plan.Moves)

	switch mode {
	case models.ModeValidate:
		report.Validation(out, plan.Report, plan.Ordered)
		return plan.Report.Err()

	case models.ModeSummary:
		warnDefects(out, plan)
		report.Summary(out, plan.Ordered)
		return nil

	case models.ModeSimulate:
		warnDefects(out, plan)
		var body report.BodyRenderer
		if opts.showBody {
			plain := opts.plain || !termfix.Interactive(os.Stdin, os.Stdout)
			body, err = report.MarkdownBodies(source, base, plain, termfix.Width(os.Stdout, 100))
			if err != nil {
				return err
			}
		}
		report.Simulation(out, plan.Batches(cat.Phases), body)
		return nil
	}

	return execute(ctx, out, opts, cfg, repo, cat, plan, interactive, logger)
}

// warnDefects prints the validation report in the advisory modes
func warnDefects(out io.Writer, plan *engine.Plan) {
	if !plan.Report.Passed() {
		report.Validation(out, plan.Report, plan.Ordered)
	}
}

func execute(ctx context.Context, out io.Writer, opts *options, cfg *config.Config, repo *git.Repo, cat *rules.Catalog, plan *engine.Plan, interactive bool, logger *zap.Logger) error {
	report.Validation(out, plan.Report, plan.Ordered)
	if err := plan.Report.Err(); err != nil && !opts.allowDefects {
		return errors.WithHint(err, "inspect with --validate, or pass --allow-defects to create PRs anyway")
	}

	if err := github.CheckAuth(ctx); err != nil {
		return err
	}

	creator := emit.NewGitHubCreator(repo.Path, repo.Remote, cfg.PR.Draft, logger)
	emitter := emit.New(creator, emit.Options{
		Source:       cfg.Refs.Source,
		Base:         cfg.Refs.Base,
		BranchSuffix: cfg.PR.BranchSuffix,
	}, logger)

	var results []models.EmitResult
	if interactive {
		notice := ""
		switch {
		case !plan.Report.Passed():
			notice = fmt.Sprintf("%d validation defects ignored", plan.Report.DefectCount())
		case cfg.PR.Draft:
			notice = "PRs will be opened as drafts"
		}
		model := app.New(ctx, app.Options{
			Emitter: emitter,
			Batches: plan.Batches(cat.Phases),
			Source:  cfg.Refs.Source,
			Base:    cfg.Refs.Base,
			Notice:  notice,
		})
		final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		m := final.(app.Model)
		if !m.Confirmed() {
			fmt.Fprintln(out, ui.Text("Aborted, no PRs created", ui.ColorYellow))
			return nil
		}
		results = m.Results()
	} else {
		summary := emitter.Run(ctx, plan.Ordered, func(r models.EmitResult) {
			fmt.Fprintln(out, ui.ResultLine(r))
		})
		results = summary.Results
	}

	report.Emission(out, results)
	return emit.Summary{Results: results}.Err()
}
