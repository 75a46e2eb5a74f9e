// Package testsupport provides shared helpers for pagesync tests: per-test
// configurations backed by temp directories and synthetic page fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"pagesync/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	return &cfg
}
