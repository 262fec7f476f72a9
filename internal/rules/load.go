package rules

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/wahlandcase/attuned.prsplit/internal/models"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only catalog document version understood
const SchemaVersion = 1

// Document is the on-disk YAML form of a Catalog
type Document struct {
	Version    int              `yaml:"version"`
	DocsTicket string           `yaml:"docs_ticket,omitempty"`
	Fallback   RuleDefinition   `yaml:"fallback"`
	Rules      []RuleDefinition `yaml:"rules"`
	DocLinks   []DocLinkEntry   `yaml:"doc_links,omitempty"`
	Phases     []PhaseEntry     `yaml:"phases,omitempty"`
}

// RuleDefinition is the on-disk form of a Rule
type RuleDefinition struct {
	ID             string   `yaml:"id"`
	Title          string   `yaml:"title"`
	Description    string   `yaml:"description,omitempty"`
	Priority       string   `yaml:"priority"`
	NeedsNewTicket bool     `yaml:"needs_new_ticket,omitempty"`
	FilePatterns   []string `yaml:"file_patterns,omitempty"`
	CommitPatterns []string `yaml:"commit_patterns,omitempty"`
}

// DocLinkEntry is the on-disk form of a DocLink
type DocLinkEntry struct {
	Pattern string   `yaml:"pattern"`
	Tickets []string `yaml:"tickets"`
}

// PhaseEntry is the on-disk form of a Phase
type PhaseEntry struct {
	Name    string   `yaml:"name"`
	Tickets []string `yaml:"tickets"`
}

// Parse decodes, compiles and validates a catalog document
func Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("rules: catalog is empty")
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("rules: decode catalog: %w", err)
	}
	return doc.Compile()
}

// LoadFile reads a catalog document from disk
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", path, err)
	}
	return cat, nil
}

// Compile turns the document into a validated Catalog
func (doc Document) Compile() (*Catalog, error) {
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("rules: unsupported catalog version %d (want %d)", doc.Version, SchemaVersion)
	}

	compiled := make([]*Rule, 0, len(doc.Rules))
	for _, def := range doc.Rules {
		r, err := def.compile()
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, r)
	}
	reg, err := NewRegistry(compiled)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}

	fallback, err := doc.Fallback.compile()
	if err != nil {
		return nil, fmt.Errorf("rules: fallback: %w", err)
	}
	if len(fallback.FilePatterns) > 0 || len(fallback.CommitPatterns) > 0 {
		return nil, fmt.Errorf("rules: fallback %s must not declare patterns", fallback.ID)
	}

	cat := &Catalog{
		Version:    doc.Version,
		Rules:      reg,
		Fallback:   fallback,
		DocsTicket: strings.TrimSpace(doc.DocsTicket),
	}
	for _, entry := range doc.DocLinks {
		p, err := CompilePattern(entry.Pattern, false)
		if err != nil {
			return nil, fmt.Errorf("rules: doc link: %w", err)
		}
		cat.DocLinks = append(cat.DocLinks, DocLink{Pattern: p, Tickets: trimAll(entry.Tickets)})
	}
	for _, entry := range doc.Phases {
		cat.Phases = append(cat.Phases, Phase{Name: strings.TrimSpace(entry.Name), Tickets: trimAll(entry.Tickets)})
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return cat, nil
}

func (def RuleDefinition) compile() (*Rule, error) {
	id := strings.TrimSpace(def.ID)
	if id == "" {
		return nil, fmt.Errorf("rule id is required")
	}
	prio, err := models.ParsePriority(def.Priority)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", id, err)
	}
	files, err := compileAll(def.FilePatterns, false)
	if err != nil {
		return nil, fmt.Errorf("rule %s: file pattern: %w", id, err)
	}
	commits, err := compileAll(def.CommitPatterns, true)
	if err != nil {
		return nil, fmt.Errorf("rule %s: commit pattern: %w", id, err)
	}
	title := strings.TrimSpace(def.Title)
	if title == "" {
		title = id
	}
	return &Rule{
		ID:             id,
		Title:          title,
		Description:    strings.TrimSpace(def.Description),
		Priority:       prio,
		NeedsNewTicket: def.NeedsNewTicket,
		FilePatterns:   files,
		CommitPatterns: commits,
	}, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
