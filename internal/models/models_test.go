package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"CRITICAL", PriorityCritical},
		{"high", PriorityHigh},
		{" Medium ", PriorityMedium},
		{"LOW", PriorityLow},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Rank(), int(tt.want))
		})
	}

	_, err := ParsePriority("URGENT")
	assert.Error(t, err)
}

func TestPriorityOrdering(t *testing.T) {
	assert.Less(t, PriorityCritical.Rank(), PriorityHigh.Rank())
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, "UNKNOWN", Priority(9).String())
	assert.Greater(t, Priority(9).Rank(), PriorityLow.Rank())
}

func TestFileSet(t *testing.T) {
	s := NewFileSet("b.go", "a.go", "b.go")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a.go", "b.go"}, s.Sorted())

	c := s.Clone()
	c.Remove("a.go")
	assert.True(t, s.Has("a.go"), "clone must not alias the original")
	assert.False(t, c.Has("a.go"))
}

func TestCommitInfo(t *testing.T) {
	c := NewCommitInfo("0123456789abcdef", "UNOMI-139 add tenants", []string{"api/Tenant.java"}, []string{"UNOMI-139"})
	assert.Equal(t, "01234567", c.ShortHash())
	assert.True(t, c.Touches("api/Tenant.java"))
	assert.False(t, c.Touches("api/Other.java"))
	assert.True(t, c.References("UNOMI-139"))
	assert.False(t, c.References("UNOMI-873"))
	assert.True(t, c.HasTickets())
}

func TestEmitStatus(t *testing.T) {
	assert.True(t, IsStatusSuccess(Created))
	assert.True(t, IsStatusSuccess(Updated))
	assert.False(t, IsStatusSuccess(Skipped("no files")))

	skipped := Skipped("no files")
	assert.True(t, IsStatusSkipped(skipped))
	assert.Equal(t, "no files", GetStatusReason(skipped))

	failed := Failed("push rejected")
	assert.True(t, IsStatusFailed(failed))
	assert.Equal(t, "push rejected", GetStatusReason(failed))
	assert.Empty(t, GetStatusReason(Created))
}
