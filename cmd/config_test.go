package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "SEK", cfg.BaseCurrency)
	assert.Equal(t, "ctax.db", cfg.Storage.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctax.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_currency: NOK
storage:
  dsn: audit.db
filing:
  org_num: "195001011234"
  name: Sven Svensson
log:
  level: debug
`), 0o644))

	t.Setenv("CTAX_BASE_CURRENCY", "EUR")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", cfg.BaseCurrency, "environment overrides the file")
	assert.Equal(t, "audit.db", cfg.Storage.DSN)
	assert.Equal(t, "195001011234", cfg.Filing.OrgNum)
	assert.Equal(t, "Sven Svensson", cfg.Filing.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
}
