// Package emit turns ordered groups into pull requests, one group at a time.
package emit

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// ErrNoChanges means the group produced an empty commit and was not submitted
var ErrNoChanges = errors.New("no changes to commit")

// DefaultBranchSuffix is appended to the lower-cased ticket to name a group branch
const DefaultBranchSuffix = "-implementation"

// Request is one unit of work handed to a Creator
type Request struct {
	Group  *models.Group
	Branch string
	Source string
	Base   string
}

// Creator materializes a group on the hosting side. The bool result is true
// when an existing PR was updated rather than created.
type Creator interface {
	Create(ctx context.Context, req Request, progress func(string)) (*models.GhPr, bool, error)
}

// BranchName derives the group branch from its ticket
func BranchName(ticket, suffix string) string {
	return strings.ToLower(ticket) + suffix
}

// Options configure an Emitter
type Options struct {
	Source       string
	Base         string
	BranchSuffix string
}

// Emitter drives a Creator over groups in the order given
type Emitter struct {
	creator Creator
	opts    Options
	logger  *zap.Logger
}

// New creates an Emitter
func New(creator Creator, opts Options, logger *zap.Logger) *Emitter {
	if opts.BranchSuffix == "" {
		opts.BranchSuffix = DefaultBranchSuffix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{creator: creator, opts: opts, logger: logger}
}

// Request builds the request for a group
func (e *Emitter) Request(g *models.Group) Request {
	return Request{
		Group:  g,
		Branch: BranchName(g.Ticket, e.opts.BranchSuffix),
		Source: e.opts.Source,
		Base:   e.opts.Base,
	}
}

// EmitOne processes a single group. Failures, including panics in the
// Creator, are reported in the result and never escape.
func (e *Emitter) EmitOne(ctx context.Context, g *models.Group, progress func(string)) (result models.EmitResult) {
	req := e.Request(g)
	result = models.EmitResult{
		Ticket:  g.Ticket,
		Title:   g.Title,
		Branch:  req.Branch,
		Files:   g.Files.Len(),
		Commits: g.CommitCount(),
	}
	log := e.logger.With(zap.String("ticket", g.Ticket), zap.String("branch", req.Branch))

	if g.Files.Len() == 0 {
		result.Status = models.Skipped("no files")
		log.Info("group skipped", zap.String("reason", "no files"))
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Status = models.Failed(err.Error())
		return result
	}
	if progress == nil {
		progress = func(string) {}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("group panicked", zap.Any("panic", r))
			result.Status = models.Failed(fmt.Sprintf("panic: %v", r))
			result.PrURL = nil
		}
	}()

	pr, updated, err := e.creator.Create(ctx, req, progress)
	switch {
	case errors.Is(err, ErrNoChanges):
		result.Status = models.Skipped(ErrNoChanges.Error())
		log.Info("group skipped", zap.String("reason", ErrNoChanges.Error()))
	case err != nil:
		result.Status = models.Failed(err.Error())
		log.Error("group failed", zap.Error(err))
	default:
		if updated {
			result.Status = models.Updated
		} else {
			result.Status = models.Created
		}
		if pr != nil {
			url := pr.URL
			result.PrURL = &url
		}
		log.Info("group emitted", zap.Bool("updated", updated), zap.Stringp("url", result.PrURL))
	}
	return result
}

// Run emits groups strictly in order. Every group is attempted even when an
// earlier one failed. onResult, when set, sees each result as it completes.
func (e *Emitter) Run(ctx context.Context, ordered []*models.Group, onResult func(models.EmitResult)) Summary {
	var s Summary
	for _, g := range ordered {
		r := e.EmitOne(ctx, g, nil)
		s.Results = append(s.Results, r)
		if onResult != nil {
			onResult(r)
		}
	}
	return s
}

// Summary aggregates the results of a run
type Summary struct {
	Results []models.EmitResult
}

// Count returns how many results satisfy pred
func (s Summary) Count(pred func(models.EmitStatus) bool) int {
	n := 0
	for _, r := range s.Results {
		if pred(r.Status) {
			n++
		}
	}
	return n
}

func (s Summary) Created() int { return s.Count(models.IsStatusCreated) }
func (s Summary) Updated() int { return s.Count(models.IsStatusUpdated) }
func (s Summary) Skipped() int { return s.Count(models.IsStatusSkipped) }
func (s Summary) Failed() int  { return s.Count(models.IsStatusFailed) }

// Err aggregates every failed group, or nil. Skipped groups are not errors.
func (s Summary) Err() error {
	var result *multierror.Error
	for _, r := range s.Results {
		if models.IsStatusFailed(r.Status) {
			result = multierror.Append(result, fmt.Errorf("%s: %s", r.Ticket, models.GetStatusReason(r.Status)))
		}
	}
	return result.ErrorOrNil()
}
