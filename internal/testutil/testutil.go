// Package testutil provides common test helpers for the denv project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/trust"
)

// TempSourceDir creates a temporary directory tree containing a .denv.d
// configuration directory with the given program files. Returns the root
// directory (the one an activation would happen in).
func TempSourceDir(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, loader.DefaultDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("TempSourceDir: mkdir failed: %v", err)
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			t.Fatalf("TempSourceDir: write %s failed: %v", name, err)
		}
	}
	return root
}

// TempTrustStore creates a trust.json trusting the given source directories
// and returns its path.
func TempTrustStore(t *testing.T, dirs ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trust.json")
	s := trust.New()
	for _, d := range dirs {
		s.Trust(d)
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("TempTrustStore: save failed: %v", err)
	}
	return path
}

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}
