package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults applied over a minimal profile", func(t *testing.T) {
		path := writeProfile(t, "database:\n  dsn: postgres://localhost/customs\n")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "postgres://localhost/customs", cfg.Database.DSN)
		assert.Equal(t, "23", cfg.Analysis.YearFilter)
		assert.Equal(t, 1.3, cfg.Analysis.UndervalThreshold)
		assert.Equal(t, 50, cfg.Analysis.MinObservations)
		assert.Equal(t, 3.0, cfg.Risk.UndervalWeight)
		assert.Equal(t, 2.0, cfg.Risk.HsChangeWeight)
		assert.Equal(t, 80.0, cfg.Risk.BandMedium)
	})

	t.Run("profile overrides", func(t *testing.T) {
		path := writeProfile(t, `
database:
  dsn: postgres://localhost/customs
analysis:
  year_filter: "20"
  underval_threshold: 1.5
risk:
  underval_weight: 4
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "20", cfg.Analysis.YearFilter)
		assert.Equal(t, 1.5, cfg.Analysis.UndervalThreshold)
		assert.Equal(t, 4.0, cfg.Weights().Underval)
		assert.Equal(t, 2.0, cfg.Weights().HsChange)
	})

	t.Run("missing dsn rejected", func(t *testing.T) {
		path := writeProfile(t, "analysis:\n  year_filter: \"22\"\n")

		_, err := Load(path)
		assert.ErrorContains(t, err, "database.dsn is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
