package trust_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/denv/internal/trust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := trust.Load(filepath.Join(t.TempDir(), "trust.json"))
	require.NoError(t, err)
	assert.Empty(t, s.Entries)
}

func TestLoad_CorruptFileIsGraceful(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trust.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0600))

	s, err := trust.Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.Entries)
}

func TestTrustRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trust.json")
	dir := "/home/u/project/.denv.d"

	s := trust.New()
	assert.False(t, s.IsTrusted(dir))
	s.Trust(dir)
	assert.True(t, s.IsTrusted(dir))
	require.NoError(t, s.Save(path))

	loaded, err := trust.Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.IsTrusted(dir))

	assert.True(t, loaded.Untrust(dir))
	assert.False(t, loaded.IsTrusted(dir))
	assert.False(t, loaded.Untrust(dir))
}

func TestSave_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trust.json")

	s := trust.New()
	s.Trust("/tmp/p/.denv.d")
	require.NoError(t, s.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
