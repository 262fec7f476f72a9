package models

import (
	"fmt"
	"strings"
)

// Priority is the urgency tier of a group. Lower values sort first.
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

var priorityNames = []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}

func (p Priority) String() string {
	if p >= 0 && int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return "UNKNOWN"
}

// Rank returns the sort rank of the priority; unknown values rank after LOW
func (p Priority) Rank() int {
	if p >= 0 && int(p) < len(priorityNames) {
		return int(p)
	}
	return len(priorityNames)
}

// ParsePriority parses a priority name case-insensitively
func ParsePriority(s string) (Priority, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range priorityNames {
		if n == name {
			return Priority(i), nil
		}
	}
	return PriorityLow, fmt.Errorf("unknown priority %q (want one of %s)", s, strings.Join(priorityNames, ", "))
}
