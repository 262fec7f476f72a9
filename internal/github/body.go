package github

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/gobwas/glob"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// CategorySampleSize is how many files each category lists in a PR body
const CategorySampleSize = 5

// Category buckets files in the PR body. The first matching category wins.
type Category struct {
	Name string
	glob glob.Glob
	// fold matches against the lower-cased path
	fold bool
}

// Match reports whether path belongs to the category
func (c Category) Match(path string) bool {
	if c.glob == nil {
		return true
	}
	if c.fold {
		path = strings.ToLower(path)
	}
	return c.glob.Match(path)
}

func category(name, pattern string, fold bool) Category {
	return Category{Name: name, glob: glob.MustCompile(pattern, '/'), fold: fold}
}

// DefaultCategories mirror the repository's top-level module layout. The last
// entry catches everything else.
var DefaultCategories = []Category{
	category("API Changes", "api/**", false),
	category("Service Implementation", "services/**", false),
	category("REST Endpoints", "rest/**", false),
	category("Extensions", "extensions/**", false),
	category("Documentation", "manual/**", false),
	category("Integration Tests", "itests/**", false),
	category("Unit Tests", "**test**", true),
	{Name: "Configuration & Build"},
}

// FileBucket is one category with its files, sorted
type FileBucket struct {
	Name  string
	Files []string
}

// Sample returns at most CategorySampleSize files
func (b FileBucket) Sample() []string {
	if len(b.Files) > CategorySampleSize {
		return b.Files[:CategorySampleSize]
	}
	return b.Files
}

// More is the number of files not shown by Sample
func (b FileBucket) More() int {
	if len(b.Files) > CategorySampleSize {
		return len(b.Files) - CategorySampleSize
	}
	return 0
}

// Categorize buckets files; empty buckets are omitted and order follows cats
func Categorize(files []string, cats []Category) []FileBucket {
	byName := make(map[string][]string)
	for _, f := range files {
		for _, c := range cats {
			if c.Match(f) {
				byName[c.Name] = append(byName[c.Name], f)
				break
			}
		}
	}
	var out []FileBucket
	for _, c := range cats {
		if fs, ok := byName[c.Name]; ok {
			out = append(out, FileBucket{Name: c.Name, Files: fs})
			delete(byName, c.Name)
		}
	}
	return out
}

// BodyData is everything the PR body template can reference
type BodyData struct {
	Group   *models.Group
	Source  string
	Base    string
	Buckets []FileBucket
}

const bodyTemplate = `## {{ .Group.Title }}

{{ if .Group.NeedsNewTicket }}**NEW TICKET REQUIRED**{{ else }}**EXISTING TICKET**{{ end }}

### Summary
{{ .Group.Description }}

### Changes Overview
- **Files Changed**: {{ .Group.Files.Len }}
- **Commits Integrated**: {{ .Group.CommitCount }}
- **Priority**: {{ .Group.Priority }}

### File Breakdown
{{ range .Buckets }}
#### {{ .Name }} ({{ len .Files }} files)
{{ range .Sample }}- ` + "`{{ . }}`" + `
{{ end }}{{ if .More }}- ... and {{ .More }} more files
{{ end }}{{ end }}
### Review Notes
{{ if .Group.NeedsNewTicket }}**Action Required**: create ticket {{ .Group.Ticket }} before merging this PR.{{ else }}**Ticket Reference**: this PR implements existing ticket {{ .Group.Ticket }}.{{ end }}

### Validation
- Changes taken from ` + "`{{ .Source }}`" + ` relative to ` + "`{{ .Base }}`" + `
- Documentation co-located with related code changes
`

var bodyTmpl = template.Must(template.New("pr-body").Parse(bodyTemplate))

// RenderBody renders the PR body for a group
func RenderBody(g *models.Group, source, base string) (string, error) {
	data := BodyData{
		Group:   g,
		Source:  source,
		Base:    base,
		Buckets: Categorize(g.Files.Sorted(), DefaultCategories),
	}
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render PR body for %s: %w", g.Ticket, err)
	}
	return buf.String(), nil
}

// CommitMessage builds the commit message recorded on a group branch
func CommitMessage(g *models.Group) string {
	var b strings.Builder
	b.WriteString(g.Title)
	b.WriteString("\n\n")
	if g.Description != "" {
		b.WriteString(g.Description)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Changes:\n- Files modified: %d\n- Commits integrated: %d\n- Priority: %s\n",
		g.Files.Len(), g.CommitCount(), g.Priority)
	if g.NeedsNewTicket {
		b.WriteString("\nNEW TICKET REQUIRED: this change needs a tracking ticket before merge.\n")
	} else {
		fmt.Fprintf(&b, "\nRefs: %s\n", g.Ticket)
	}
	return b.String()
}
