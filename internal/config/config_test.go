package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", fileName)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Refs, cfg.Refs)
	assert.Equal(t, "-implementation", cfg.PR.BranchSuffix)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults are saved on first load")

	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Refs, again.Refs)
	assert.Equal(t, cfg.Tickets, again.Tickets)
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[refs]
source = "feature"

[tickets]
pattern = "ABC-[0-9]+"

[pr]
draft = true
`), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "feature", cfg.Refs.Source)
	assert.Equal(t, "master", cfg.Refs.Base, "unset keys keep their defaults")
	assert.True(t, cfg.PR.Draft)
	assert.Equal(t, "-implementation", cfg.PR.BranchSuffix)

	re := cfg.TicketRegex()
	require.NotNil(t, re)
	assert.Equal(t, "ABC-12", re.FindString("fix ABC-12 now"))
	assert.Empty(t, re.FindString("fix abc-12 now"), "ticket patterns are case-sensitive")
}

func TestLoadFromInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte("[refs\nsource ="), 0644))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "fall back to the defaults")
}

func TestInvalidTicketPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	require.NoError(t, os.WriteFile(path, []byte("[tickets]\npattern = \"([\"\n"), 0644))

	_, err := LoadFrom(path)
	assert.ErrorContains(t, err, "invalid tickets.pattern")
}

func TestEmptyPatternDisablesTickets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tickets.Pattern = ""
	require.NoError(t, cfg.compileRegex())
	assert.Nil(t, cfg.TicketRegex())
}

func TestCatalog(t *testing.T) {
	cfg := DefaultConfig()
	cat, err := cfg.Catalog()
	require.NoError(t, err)
	assert.True(t, cat.Rules.Has("UNOMI-139"))

	cfg.Rules.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Catalog()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
