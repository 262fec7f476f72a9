package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
	"github.com/wahlandcase/attuned.prsplit/internal/rules"
)

func defaultRegistry(t *testing.T) *rules.Registry {
	t.Helper()
	cat, err := rules.Default()
	require.NoError(t, err)
	return cat.Rules
}

func TestCommitTicketBeatsPathPattern(t *testing.T) {
	c := New(defaultRegistry(t))
	commits := []models.CommitInfo{
		models.NewCommitInfo("a1", "UNOMI-873 trace tenant lookups", []string{"rest/TenantResource.java"}, []string{"UNOMI-873"}),
	}

	a, ok := c.Classify("rest/TenantResource.java", commits)
	require.True(t, ok)
	assert.Equal(t, "UNOMI-873", a.Ticket)
	assert.Equal(t, TierCommitTicket, a.Tier)

	a, ok = c.Classify("rest/TenantResource.java", nil)
	require.True(t, ok)
	assert.Equal(t, "UNOMI-139", a.Ticket)
	assert.Equal(t, TierPathPattern, a.Tier)
}

func TestCommitTicketFirstInCommitOrder(t *testing.T) {
	c := New(defaultRegistry(t))
	commits := []models.CommitInfo{
		models.NewCommitInfo("a1", "unrelated", []string{"other.txt"}, []string{"UNOMI-880"}),
		models.NewCommitInfo("b2", "PROJ-1 and UNOMI-878", []string{"x/y.txt"}, []string{"PROJ-1", "UNOMI-878", "UNOMI-139"}),
		models.NewCommitInfo("c3", "UNOMI-884 later", []string{"x/y.txt"}, []string{"UNOMI-884"}),
	}

	a, ok := c.Classify("x/y.txt", commits)
	require.True(t, ok)
	assert.Equal(t, "UNOMI-878", a.Ticket, "unknown ids are skipped and the first known id wins")
}

func TestMessagePatternTier(t *testing.T) {
	c := New(defaultRegistry(t))
	commits := []models.CommitInfo{
		models.NewCommitInfo("a1", "Remove encryption extension", []string{"zzz/plain.txt"}, nil),
	}

	a, ok := c.Classify("zzz/plain.txt", commits)
	require.True(t, ok)
	assert.Equal(t, "UNOMI-889", a.Ticket)
	assert.Equal(t, TierMessagePattern, a.Tier)

	_, ok = c.Classify("zzz/plain.txt", []models.CommitInfo{
		models.NewCommitInfo("a1", "Remove encryption extension", []string{"elsewhere.txt"}, nil),
	})
	assert.False(t, ok, "message patterns only apply to commits touching the file")
}

func TestUnresolved(t *testing.T) {
	c := New(defaultRegistry(t))
	commits := []models.CommitInfo{
		models.NewCommitInfo("a1", "misc cleanup", []string{"zzz/plain.txt"}, nil),
	}
	_, ok := c.Classify("zzz/plain.txt", commits)
	assert.False(t, ok)
}

func TestPathPatternRegistryOrder(t *testing.T) {
	// "tenant" and "cache" both appear; UNOMI-139 precedes UNOMI-880 in the registry
	c := New(defaultRegistry(t))
	a, ok := c.Classify("services/TenantCacheService.java", nil)
	require.True(t, ok)
	assert.Equal(t, "UNOMI-139", a.Ticket)
}

type fixedResolver struct {
	ticket string
}

func (fixedResolver) Tier() Tier { return TierPathPattern }

func (f fixedResolver) Resolve(string, []models.CommitInfo) (string, bool) {
	return f.ticket, f.ticket != ""
}

func TestCustomChain(t *testing.T) {
	c := New(nil, fixedResolver{}, fixedResolver{ticket: "X-1"})
	a, ok := c.Classify("any", nil)
	require.True(t, ok)
	assert.Equal(t, "X-1", a.Ticket)
}

func TestClassifyAll(t *testing.T) {
	c := New(defaultRegistry(t))
	commits := []models.CommitInfo{
		models.NewCommitInfo("a1", "UNOMI-873 tracing", []string{"rest/TenantResource.java", "zzz/plain.txt"}, []string{"UNOMI-873"}),
		models.NewCommitInfo("b2", "cleanup", []string{"zzz/other.txt"}, nil),
	}
	files := []string{"rest/TenantResource.java", "zzz/other.txt", "pom.xml", "zzz/plain.txt", "pom.xml"}

	res := c.ClassifyAll(files, commits)

	assert.Equal(t, map[string]string{
		"rest/TenantResource.java": "UNOMI-873",
		"pom.xml":                  "UNOMI-892",
		"zzz/plain.txt":            "UNOMI-873",
	}, res.Tickets())
	assert.Equal(t, []string{"zzz/other.txt"}, res.Unresolved)
	assert.Equal(t, "rest/TenantResource.java", res.Assignments[0].Path, "input order is preserved")

	counts := res.CountByTier()
	assert.Equal(t, 2, counts[TierCommitTicket])
	assert.Equal(t, 1, counts[TierPathPattern])
	assert.Equal(t, 1, counts[TierUnresolved])
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "commit-ticket", TierCommitTicket.String())
	assert.Equal(t, "unresolved", Tier(42).String())
}
