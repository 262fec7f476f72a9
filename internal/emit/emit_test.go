package emit

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCreator struct {
	calls   []Request
	outcome map[string]func() (*models.GhPr, bool, error)
}

func (f *fakeCreator) Create(_ context.Context, req Request, progress func(string)) (*models.GhPr, bool, error) {
	f.calls = append(f.calls, req)
	progress("working")
	if fn, ok := f.outcome[req.Group.Ticket]; ok {
		return fn()
	}
	return &models.GhPr{Number: 1, URL: "https://example.com/pull/1"}, false, nil
}

func group(ticket string, files ...string) *models.Group {
	return &models.Group{Ticket: ticket, Title: ticket + " title", Files: models.NewFileSet(files...)}
}

func TestBranchName(t *testing.T) {
	assert.Equal(t, "unomi-139-implementation", BranchName("UNOMI-139", DefaultBranchSuffix))
	assert.Equal(t, "abc-1/split", BranchName("ABC-1", "/split"))
}

func TestEmitOneStatuses(t *testing.T) {
	creator := &fakeCreator{outcome: map[string]func() (*models.GhPr, bool, error){
		"UPD-1":   func() (*models.GhPr, bool, error) { return &models.GhPr{URL: "u"}, true, nil },
		"NOOP-1":  func() (*models.GhPr, bool, error) { return nil, false, ErrNoChanges },
		"FAIL-1":  func() (*models.GhPr, bool, error) { return nil, false, errors.New("push rejected") },
		"PANIC-1": func() (*models.GhPr, bool, error) { panic("boom") },
	}}
	e := New(creator, Options{Source: "dev", Base: "main"}, zaptest.NewLogger(t))
	ctx := context.Background()

	created := e.EmitOne(ctx, group("NEW-1", "a"), nil)
	assert.True(t, models.IsStatusCreated(created.Status))
	require.NotNil(t, created.PrURL)
	assert.Equal(t, "https://example.com/pull/1", *created.PrURL)
	assert.Equal(t, "new-1-implementation", created.Branch)
	assert.Equal(t, 1, created.Files)

	assert.True(t, models.IsStatusUpdated(e.EmitOne(ctx, group("UPD-1", "a"), nil).Status))

	noop := e.EmitOne(ctx, group("NOOP-1", "a"), nil)
	assert.True(t, models.IsStatusSkipped(noop.Status))
	assert.Equal(t, ErrNoChanges.Error(), models.GetStatusReason(noop.Status))

	failed := e.EmitOne(ctx, group("FAIL-1", "a"), nil)
	assert.True(t, models.IsStatusFailed(failed.Status))
	assert.Equal(t, "push rejected", models.GetStatusReason(failed.Status))

	panicked := e.EmitOne(ctx, group("PANIC-1", "a"), nil)
	assert.True(t, models.IsStatusFailed(panicked.Status))
	assert.Contains(t, models.GetStatusReason(panicked.Status), "boom")

	req := creator.calls[0]
	assert.Equal(t, "dev", req.Source)
	assert.Equal(t, "main", req.Base)
}

func TestEmitOneSkipsEmptyGroups(t *testing.T) {
	creator := &fakeCreator{}
	e := New(creator, Options{}, nil)

	r := e.EmitOne(context.Background(), group("EMPTY-1"), nil)
	assert.True(t, models.IsStatusSkipped(r.Status))
	assert.Empty(t, creator.calls)
}

func TestEmitOneCancelled(t *testing.T) {
	creator := &fakeCreator{}
	e := New(creator, Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := e.EmitOne(ctx, group("A-1", "a"), nil)
	assert.True(t, models.IsStatusFailed(r.Status))
	assert.Empty(t, creator.calls)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	creator := &fakeCreator{outcome: map[string]func() (*models.GhPr, bool, error){
		"B-1": func() (*models.GhPr, bool, error) { return nil, false, errors.New("apply conflict") },
		"C-1": func() (*models.GhPr, bool, error) { return nil, false, ErrNoChanges },
	}}
	e := New(creator, Options{}, zaptest.NewLogger(t))

	var seen []string
	s := e.Run(context.Background(), []*models.Group{
		group("A-1", "a"), group("B-1", "b"), group("C-1", "c"), group("D-1", "d"),
	}, func(r models.EmitResult) { seen = append(seen, r.Ticket) })

	assert.Equal(t, []string{"A-1", "B-1", "C-1", "D-1"}, seen, "results arrive in emission order")
	assert.Len(t, creator.calls, 4)
	assert.Equal(t, 2, s.Created())
	assert.Equal(t, 0, s.Updated())
	assert.Equal(t, 1, s.Skipped())
	assert.Equal(t, 1, s.Failed())

	err := s.Err()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 1)
	assert.Equal(t, "B-1: apply conflict", merr.Errors[0].Error())
}

func TestSummaryErrNilWhenOnlySkips(t *testing.T) {
	s := Summary{Results: []models.EmitResult{{Status: models.Skipped("no files")}, {Status: models.Created}}}
	assert.NoError(t, s.Err())
}
