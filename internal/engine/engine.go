// Package engine runs the classification pipeline end to end.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wahlandcase/attuned.prsplit/internal/classify"
	"github.com/wahlandcase/attuned.prsplit/internal/grouping"
	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
	"github.com/wahlandcase/attuned.prsplit/internal/sequence"
	"github.com/wahlandcase/attuned.prsplit/internal/validate"
)

// HistoryProvider supplies the raw change data between two references
type HistoryProvider interface {
	// ListCommits returns commits reachable from head but not base, oldest first
	ListCommits(ctx context.Context, base, head string) ([]models.CommitInfo, error)
	// ListChangedFiles returns every path that differs between base and head
	ListChangedFiles(ctx context.Context, base, head string) ([]string, error)
}

// Plan is the full result of one pipeline pass
type Plan struct {
	Base         string
	Head         string
	Commits      []models.CommitInfo
	ChangedFiles []string
	// Classification before grouping, kept for reporting
	Classification classify.Result
	Groups         grouping.Groups
	Moves          []grouping.Move
	Report         validate.Report
	// Ordered is the emission order
	Ordered []*models.Group
}

// Batches splits the emission order by phase
func (p *Plan) Batches(phases []rules.Phase) []sequence.Batch {
	return sequence.Batches(p.Ordered, phases)
}

// Engine wires a catalog to the pipeline stages
type Engine struct {
	catalog    *rules.Catalog
	classifier *classify.Classifier
	logger     *zap.Logger
}

// New creates an engine with the default resolver chain
func New(cat *rules.Catalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		catalog:    cat,
		classifier: classify.New(cat.Rules),
		logger:     logger,
	}
}

// Catalog returns the catalog the engine was built with
func (e *Engine) Catalog() *rules.Catalog {
	return e.catalog
}

// Run fetches history and builds a plan
func (e *Engine) Run(ctx context.Context, hp HistoryProvider, base, head string) (*Plan, error) {
	commits, err := hp.ListCommits(ctx, base, head)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	files, err := hp.ListChangedFiles(ctx, base, head)
	if err != nil {
		return nil, fmt.Errorf("list changed files: %w", err)
	}
	e.logger.Info("history loaded",
		zap.String("base", base),
		zap.String("head", head),
		zap.Int("commits", len(commits)),
		zap.Int("files", len(files)),
	)

	plan := e.Build(commits, files)
	plan.Base, plan.Head = base, head
	return plan, nil
}

// Build runs classification, grouping, co-location, validation and sequencing
// over data already in memory
func (e *Engine) Build(commits []models.CommitInfo, files []string) *Plan {
	res := e.classifier.ClassifyAll(files, commits)
	counts := res.CountByTier()
	e.logger.Debug("classified",
		zap.Int("commit_ticket", counts[classify.TierCommitTicket]),
		zap.Int("path_pattern", counts[classify.TierPathPattern]),
		zap.Int("message_pattern", counts[classify.TierMessagePattern]),
		zap.Int("unresolved", counts[classify.TierUnresolved]),
	)

	groups := grouping.Assemble(res, commits, e.catalog)
	moves := grouping.Colocate(groups, e.catalog.DocLinks, e.catalog.DocsTicket)
	for _, m := range moves {
		e.logger.Debug("doc co-located", zap.String("file", m.File), zap.String("from", m.From), zap.String("to", m.To))
	}

	list := groups.List()
	rep := validate.Validate(list, files)
	if rep.Passed() {
		e.logger.Info("validation passed", zap.Int("groups", rep.GroupCount), zap.Int("files", rep.TotalFiles))
	} else {
		e.logger.Warn("validation failed",
			zap.Int("overlaps", len(rep.Overlaps)),
			zap.Int("omitted", len(rep.Omitted)),
			zap.Int("extraneous", len(rep.Extraneous)),
		)
	}

	return &Plan{
		Commits:        commits,
		ChangedFiles:   files,
		Classification: res,
		Groups:         groups,
		Moves:          moves,
		Report:         rep,
		Ordered:        sequence.Order(list, e.catalog.Phases),
	}
}
