package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadMissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadParsesRecognisedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annosql.yaml")

	content := "target: rust-sqlite\noutput: ./generated\nfiles:\n  - queries/a.sql\n  - queries/b.sql\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "rust-sqlite", cfg.Target)
	assert.Equal(t, "./generated", cfg.Output)
	assert.Equal(t, []string{"queries/a.sql", "queries/b.sql"}, cfg.Files)
}
