package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

type fakeHistory struct {
	commits []models.CommitInfo
	files   []string
	err     error
}

func (f *fakeHistory) ListCommits(context.Context, string, string) ([]models.CommitInfo, error) {
	return f.commits, f.err
}

func (f *fakeHistory) ListChangedFiles(context.Context, string, string) ([]string, error) {
	return f.files, nil
}

func sampleHistory() *fakeHistory {
	return &fakeHistory{
		commits: []models.CommitInfo{
			models.NewCommitInfo("c1", "UNOMI-873 trace tenant calls", []string{"rest/TenantResource.java"}, []string{"UNOMI-873"}),
			models.NewCommitInfo("c2", "UNOMI-139 tenant docs", []string{"api/Tenant.java", "manual/multitenancy-guide.adoc"}, []string{"UNOMI-139"}),
			models.NewCommitInfo("c3", "bump deps", []string{"pom.xml"}, nil),
			models.NewCommitInfo("c4", "tidy", []string{"zzz/plain.txt"}, nil),
			models.NewCommitInfo("c5", "Fix segment condition bug", []string{"yyy/notes.txt"}, nil),
		},
		files: []string{
			"rest/TenantResource.java",
			"api/Tenant.java",
			"manual/multitenancy-guide.adoc",
			"pom.xml",
			"zzz/plain.txt",
			"yyy/notes.txt",
			"README.md",
		},
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	cat, err := rules.Default()
	require.NoError(t, err)
	return New(cat, zaptest.NewLogger(t))
}

func TestRun(t *testing.T) {
	e := newEngine(t)
	plan, err := e.Run(context.Background(), sampleHistory(), "master", "feature")
	require.NoError(t, err)

	assert.Equal(t, "master", plan.Base)
	assert.Equal(t, "feature", plan.Head)
	assert.True(t, plan.Report.Passed(), "every file lands in exactly one group")

	want := map[string][]string{
		"UNOMI-873": {"rest/TenantResource.java"},
		"UNOMI-139": {"api/Tenant.java", "manual/multitenancy-guide.adoc"},
		"UNOMI-892": {"pom.xml"},
		"UNOMI-905": {"yyy/notes.txt"},
		"UNOMI-882": {"README.md"},
		"UNOMI-908": {"zzz/plain.txt"},
	}
	got := make(map[string][]string)
	for id, g := range plan.Groups {
		got[id] = g.Files.Sorted()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}

	order := make([]string, len(plan.Ordered))
	for i, g := range plan.Ordered {
		order[i] = g.Ticket
	}
	assert.Equal(t, []string{"UNOMI-139", "UNOMI-873", "UNOMI-905", "UNOMI-882", "UNOMI-892", "UNOMI-908"}, order, "same phase and priority falls back to ticket order")

	batches := plan.Batches(e.Catalog().Phases)
	require.NotEmpty(t, batches)
	assert.Equal(t, "Core Infrastructure", batches[0].Name)
}

func TestRunIsDeterministic(t *testing.T) {
	e := newEngine(t)
	first, err := e.Run(context.Background(), sampleHistory(), "master", "feature")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := e.Run(context.Background(), sampleHistory(), "master", "feature")
		require.NoError(t, err)
		if diff := cmp.Diff(first.Ordered, again.Ordered); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestRunPropagatesHistoryErrors(t *testing.T) {
	e := newEngine(t)
	boom := errors.New("boom")
	_, err := e.Run(context.Background(), &fakeHistory{err: boom}, "a", "b")
	assert.ErrorIs(t, err, boom)
}

func TestBuildEmptyInput(t *testing.T) {
	e := newEngine(t)
	plan := e.Build(nil, nil)
	assert.True(t, plan.Report.Passed())
	assert.Empty(t, plan.Groups)
	assert.Empty(t, plan.Ordered)
}
