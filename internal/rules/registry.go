package rules

import "fmt"

// Registry is an ordered, read-only collection of rules.
// Iteration order is insertion order and is the tie-break for path matching.
type Registry struct {
	rules []*Rule
	index map[string]int
}

// NewRegistry builds a registry, rejecting empty or duplicate IDs
func NewRegistry(rules []*Rule) (*Registry, error) {
	reg := &Registry{
		rules: make([]*Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		if r == nil || r.ID == "" {
			return nil, fmt.Errorf("rule at position %d has no id", len(reg.rules))
		}
		if _, dup := reg.index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		reg.index[r.ID] = len(reg.rules)
		reg.rules = append(reg.rules, r)
	}
	return reg, nil
}

// Get returns the rule with the given ID
func (r *Registry) Get(id string) (*Rule, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return r.rules[i], true
}

// Has reports whether a rule with the given ID exists
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Rules returns the rules in registry order. The slice is a copy.
func (r *Registry) Rules() []*Rule {
	out := make([]*Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// IDs returns rule IDs in registry order
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.ID
	}
	return ids
}

func (r *Registry) Len() int {
	return len(r.rules)
}
