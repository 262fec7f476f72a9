package main

import (
	"bytes"
	"errors"
	"testing"

	crdb "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

func TestModesAreMutuallyExclusive(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--validate", "--simulate"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestRejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCmd()
	src, err := cmd.Flags().GetString("source")
	require.NoError(t, err)
	base, err := cmd.Flags().GetString("base")
	require.NoError(t, err)
	assert.Equal(t, "unomi-3-dev", src)
	assert.Equal(t, "master", base)
}

func TestMode(t *testing.T) {
	cases := []struct {
		name string
		opts options
		want models.Mode
	}{
		{"none", options{}, models.ModeExecute},
		{"validate", options{validate: true}, models.ModeValidate},
		{"summary", options{summary: true}, models.ModeSummary},
		{"simulate", options{simulate: true}, models.ModeSimulate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.opts.mode())
		})
	}
}

func TestPrintErrorIncludesHints(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, crdb.WithHint(errors.New("Branch not found: nope"), "fetch it first"))
	assert.Contains(t, buf.String(), "Branch not found: nope")
	assert.Contains(t, buf.String(), "Hint: fetch it first")
}
