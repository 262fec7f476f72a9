package github

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

func TestParsePRNumber(t *testing.T) {
	tests := []struct {
		url  string
		want uint64
	}{
		{"https://github.com/apache/unomi/pull/123", 123},
		{"https://github.com/apache/unomi/pull/7/", 7},
		{"not a url", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePRNumber(tt.url))
		})
	}
}

func TestLastLine(t *testing.T) {
	out := "Warning: 2 uncommitted changes\nhttps://github.com/o/r/pull/9\n"
	assert.Equal(t, "https://github.com/o/r/pull/9", lastLine(out))
}

func TestCategorize(t *testing.T) {
	files := []string{
		"api/src/Tenant.java",
		"services/src/main/TenantServiceImpl.java",
		"services/src/test/TenantServiceTest.java",
		"rest/TenantResource.java",
		"extensions/groovy-actions/Dispatcher.java",
		"manual/multitenancy.adoc",
		"itests/src/TenantIT.java",
		"tools/TestUtils.java",
		"pom.xml",
	}
	buckets := Categorize(files, DefaultCategories)

	got := make(map[string][]string)
	var order []string
	for _, b := range buckets {
		got[b.Name] = b.Files
		order = append(order, b.Name)
	}
	assert.Equal(t, []string{
		"API Changes", "Service Implementation", "REST Endpoints", "Extensions",
		"Documentation", "Integration Tests", "Unit Tests", "Configuration & Build",
	}, order)
	assert.Equal(t, []string{"services/src/main/TenantServiceImpl.java", "services/src/test/TenantServiceTest.java"}, got["Service Implementation"], "prefix categories win over the test heuristic")
	assert.Equal(t, []string{"tools/TestUtils.java"}, got["Unit Tests"])
	assert.Equal(t, []string{"pom.xml"}, got["Configuration & Build"])
}

func TestFileBucketSample(t *testing.T) {
	var files []string
	for i := 0; i < 7; i++ {
		files = append(files, fmt.Sprintf("f%d", i))
	}
	b := FileBucket{Name: "x", Files: files}
	assert.Len(t, b.Sample(), CategorySampleSize)
	assert.Equal(t, 2, b.More())

	small := FileBucket{Files: files[:2]}
	assert.Len(t, small.Sample(), 2)
	assert.Zero(t, small.More())
}

func testGroup(newTicket bool) *models.Group {
	files := models.NewFileSet("pom.xml")
	for i := 0; i < 6; i++ {
		files.Add(fmt.Sprintf("api/F%d.java", i))
	}
	return &models.Group{
		Ticket:         "UNOMI-139",
		Title:          "UNOMI-139: Multi-Tenancy Support System",
		Description:    "Tenant support.",
		Priority:       models.PriorityCritical,
		Files:          files,
		Commits:        []models.CommitInfo{{Hash: "a"}, {Hash: "b"}},
		NeedsNewTicket: newTicket,
	}
}

func TestRenderBody(t *testing.T) {
	body, err := RenderBody(testGroup(false), "unomi-3-dev", "master")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "## UNOMI-139: Multi-Tenancy Support System\n"))
	assert.Contains(t, body, "**EXISTING TICKET**")
	assert.Contains(t, body, "- **Files Changed**: 7")
	assert.Contains(t, body, "- **Commits Integrated**: 2")
	assert.Contains(t, body, "- **Priority**: CRITICAL")
	assert.Contains(t, body, "#### API Changes (6 files)")
	assert.Contains(t, body, "- `api/F0.java`")
	assert.NotContains(t, body, "api/F5.java")
	assert.Contains(t, body, "- ... and 1 more files")
	assert.Contains(t, body, "#### Configuration & Build (1 files)")
	assert.Contains(t, body, "implements existing ticket UNOMI-139")
	assert.Contains(t, body, "`unomi-3-dev` relative to `master`")
}

func TestRenderBodyNewTicket(t *testing.T) {
	body, err := RenderBody(testGroup(true), "src", "base")
	require.NoError(t, err)
	assert.Contains(t, body, "**NEW TICKET REQUIRED**")
	assert.Contains(t, body, "create ticket UNOMI-139 before merging")
}

func TestCommitMessage(t *testing.T) {
	msg := CommitMessage(testGroup(false))
	lines := strings.Split(msg, "\n")
	assert.Equal(t, "UNOMI-139: Multi-Tenancy Support System", lines[0])
	assert.Empty(t, lines[1])
	assert.Contains(t, msg, "- Files modified: 7")
	assert.Contains(t, msg, "Refs: UNOMI-139")

	assert.Contains(t, CommitMessage(testGroup(true)), "NEW TICKET REQUIRED")
}
