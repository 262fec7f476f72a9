package rules

import "fmt"

// DocLink maps a documentation path pattern to the code groups it belongs with
type DocLink struct {
	Pattern *Pattern
	Tickets []string
}

// Targets reports whether ticket is an eligible destination for this link
func (d DocLink) Targets(ticket string) bool {
	for _, t := range d.Tickets {
		if t == ticket {
			return true
		}
	}
	return false
}

// Phase is one bucket of the emission order
type Phase struct {
	Name    string
	Tickets []string
}

// Catalog is everything the engine needs to classify, group and order changes
type Catalog struct {
	// Version of the catalog schema
	Version int
	// Rules in classification order
	Rules *Registry
	// Fallback receives files no rule claimed
	Fallback *Rule
	// DocsTicket is the generic documentation group, exempt from co-location
	DocsTicket string
	// DocLinks drive documentation co-location, in order
	DocLinks []DocLink
	// Phases drive emission order, in order
	Phases []Phase
}

// Lookup returns the rule for ticket, including the fallback rule
func (c *Catalog) Lookup(ticket string) (*Rule, bool) {
	if r, ok := c.Rules.Get(ticket); ok {
		return r, true
	}
	if c.Fallback != nil && c.Fallback.ID == ticket {
		return c.Fallback, true
	}
	return nil, false
}

// PhaseOf returns the phase index of ticket, or len(Phases) if unphased
func (c *Catalog) PhaseOf(ticket string) int {
	for i, p := range c.Phases {
		for _, t := range p.Tickets {
			if t == ticket {
				return i
			}
		}
	}
	return len(c.Phases)
}

// Validate checks the cross-references between rules, links and phases
func (c *Catalog) Validate() error {
	if c.Rules == nil {
		return fmt.Errorf("catalog has no rules")
	}
	if c.Fallback == nil || c.Fallback.ID == "" {
		return fmt.Errorf("catalog has no fallback group")
	}
	if c.Rules.Has(c.Fallback.ID) {
		return fmt.Errorf("fallback id %q collides with a rule", c.Fallback.ID)
	}
	if c.DocsTicket != "" && !c.Rules.Has(c.DocsTicket) {
		return fmt.Errorf("docs ticket %q has no rule", c.DocsTicket)
	}
	for i, link := range c.DocLinks {
		if link.Pattern == nil {
			return fmt.Errorf("doc link %d has no pattern", i)
		}
		for _, t := range link.Tickets {
			if !c.Rules.Has(t) {
				return fmt.Errorf("doc link %q targets unknown ticket %q", link.Pattern, t)
			}
		}
	}
	seen := make(map[string]string)
	for _, p := range c.Phases {
		for _, t := range p.Tickets {
			if _, ok := c.Lookup(t); !ok {
				return fmt.Errorf("phase %q lists unknown ticket %q", p.Name, t)
			}
			if prev, dup := seen[t]; dup {
				return fmt.Errorf("ticket %q appears in phases %q and %q", t, prev, p.Name)
			}
			seen[t] = p.Name
		}
	}
	return nil
}
