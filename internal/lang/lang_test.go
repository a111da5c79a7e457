package lang_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/denv/internal/hash"
	"github.com/hbjs97/denv/internal/lang"
	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/shadow"
	"github.com/hbjs97/denv/internal/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSource(t *testing.T, files map[string]string) *loader.Source {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, loader.DefaultDirName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
	}
	src, err := loader.Load(root, loader.DefaultDirName)
	require.NoError(t, err)
	require.NotNil(t, src)
	return src
}

func TestRun_SetAndUnset(t *testing.T) {
	src := loadSource(t, map[string]string{
		"default.js": `
env.set('PROJECT', 'demo');
env.set('DROPPED', null);
env.unset('OLD');
`,
	})
	sh := shadow.New([]string{"OLD=1", "DROPPED=2"}, undo.New(), hash.Hash(1))

	require.NoError(t, lang.New().Run(sh, src))

	v, ok := sh.Get("PROJECT")
	require.True(t, ok)
	assert.Equal(t, "demo", v)
	_, ok = sh.Get("OLD")
	assert.False(t, ok)
	_, ok = sh.Get("DROPPED")
	assert.False(t, ok)
}

func TestRun_GetReadsWorkingEnv(t *testing.T) {
	src := loadSource(t, map[string]string{
		"default.js": `
var base = env.get('BASE');
env.set('DERIVED', base + '/sub');
if (env.get('MISSING') !== null) { throw new Error('expected null'); }
`,
	})
	sh := shadow.New([]string{"BASE=/srv/app"}, undo.New(), hash.Hash(1))

	require.NoError(t, lang.New().Run(sh, src))

	v, _ := sh.Get("DERIVED")
	assert.Equal(t, "/srv/app/sub", v)
}

func TestRun_PathlistAndFeatures(t *testing.T) {
	src := loadSource(t, map[string]string{
		"default.js": `
env.prependToPathlist('PATH', denv.expandPath('bin'));
denv.provide('ruby', '3.2');
denv.provide('demo');
`,
	})
	sh := shadow.New([]string{"PATH=/usr/bin"}, undo.New(), hash.Hash(1))

	require.NoError(t, lang.New().Run(sh, src))

	want := filepath.Join(filepath.Dir(src.Dir), "bin") + ":/usr/bin"
	v, _ := sh.Get("PATH")
	assert.Equal(t, want, v)
	assert.Equal(t, []string{"demo", "ruby:3.2"}, sh.Features())
}

func TestRun_FilesExecuteInNameOrder(t *testing.T) {
	src := loadSource(t, map[string]string{
		"10_first.js":  `env.set('ORDER', 'first');`,
		"20_second.js": `env.set('ORDER', env.get('ORDER') + ',second');`,
	})
	sh := shadow.New(nil, undo.New(), hash.Hash(1))

	require.NoError(t, lang.New().Run(sh, src))

	v, _ := sh.Get("ORDER")
	assert.Equal(t, "first,second", v)
}

func TestRun_ErrorIsOpaque(t *testing.T) {
	src := loadSource(t, map[string]string{
		"bad.js": `throw new Error('detailed interpreter diagnostics');`,
	})
	sh := shadow.New(nil, undo.New(), hash.Hash(1))

	err := lang.New().Run(sh, src)
	require.Error(t, err)
	// 상세 진단은 stderr 몫이고 에러 값에는 파일 이름만 남는다.
	assert.NotContains(t, err.Error(), "detailed interpreter diagnostics")
	assert.Contains(t, err.Error(), "bad.js")
}

func TestRun_SyntaxError(t *testing.T) {
	src := loadSource(t, map[string]string{
		"broken.js": `env.set('A',`,
	})
	sh := shadow.New(nil, undo.New(), hash.Hash(1))
	assert.Error(t, lang.New().Run(sh, src))
}
