package cli_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/denv/internal/cli"
	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/testutil"
	"github.com/hbjs97/denv/internal/trust"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietConfig creates a config that suppresses the tty notice.
func quietConfig(t *testing.T) string {
	t.Helper()
	return testutil.TempConfigFile(t, "version = 1\nquiet = true\n")
}

// newTestApp creates an App with a FakeCommander and the given paths.
func newTestApp(fc *testutil.FakeCommander, cfgPath, trustPath string) *cli.App {
	return &cli.App{
		Commander: fc,
		CfgPath:   cfgPath,
		TrustPath: trustPath,
	}
}

// runCmd executes the root command with args and returns captured stdout.
func runCmd(t *testing.T, app *cli.App, args ...string) (string, error) {
	t.Helper()
	cmd := app.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// porcelainRecords parses porcelain output into [opcode, name, value] triples.
func porcelainRecords(t *testing.T, out string) [][]string {
	t.Helper()
	var records [][]string
	for _, rec := range strings.Split(out, "\x1e") {
		if rec == "" {
			continue
		}
		fields := strings.Split(rec, "\x1f")
		require.Len(t, fields, 3, "record %q", rec)
		records = append(records, fields)
	}
	return records
}

// stateFromPorcelain extracts the opaque state string from porcelain output.
func stateFromPorcelain(t *testing.T, out string) string {
	t.Helper()
	for _, rec := range porcelainRecords(t, out) {
		if rec[0] == "\x01" && rec[1] == "__denv_data" {
			return rec[2]
		}
	}
	t.Fatal("state record not found")
	return ""
}

// --- hook command tests ---

func TestHookCmd_FirstActivation(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{
		"default.js": "env.set('PROJECT', 'demo');\n",
	})
	t.Chdir(root)
	trustPath := testutil.TempTrustStore(t, filepath.Join(root, loader.DefaultDirName))

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t), trustPath)
	out, err := runCmd(t, app, "hook", "")
	require.NoError(t, err)

	assert.Contains(t, out, "export PROJECT=demo\n")
	assert.Contains(t, out, "__denv_data=")
}

func TestHookCmd_Idempotent(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{
		"default.js": "env.set('PROJECT', 'demo');\n",
	})
	t.Chdir(root)
	trustPath := testutil.TempTrustStore(t, filepath.Join(root, loader.DefaultDirName))
	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t), trustPath)

	out, err := runCmd(t, app, "hook", "--porcelain", "")
	require.NoError(t, err)
	data := stateFromPorcelain(t, out)

	// 첫 호출의 상태 문자열을 되돌려주면 출력이 없어야 한다.
	t.Setenv("PROJECT", "demo")
	out2, err := runCmd(t, app, "hook", "--porcelain", data)
	require.NoError(t, err)
	assert.Empty(t, out2)
}

func TestHookCmd_AbsenceStability(t *testing.T) {
	t.Chdir(t.TempDir())
	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))

	for _, data := range []string{"", `:{"entries":[{"name":"X","original":"y"}]}`} {
		out, err := runCmd(t, app, "hook", data)
		require.NoError(t, err, "input %q", data)
		assert.Empty(t, out, "input %q", data)
	}
}

func TestHookCmd_RemovalRestores(t *testing.T) {
	// 이전 activation이 PROJECT를 만들고 EDITOR를 덮은 상태에서
	// 설정 디렉토리가 없는 곳으로 이동한 상황.
	data := `00000000deadbeef:{"entries":[{"name":"PROJECT","original":null},{"name":"EDITOR","original":"vi"}]}`
	t.Setenv("PROJECT", "demo")
	t.Setenv("EDITOR", "code")
	t.Chdir(t.TempDir())

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))
	out, err := runCmd(t, app, "hook", data)
	require.NoError(t, err)

	assert.Contains(t, out, "unset PROJECT\n")
	assert.Contains(t, out, "export EDITOR=vi\n")
	// 새 상태는 "shadowing 없음"이다.
	assert.Contains(t, out, "__denv_data=0000000000000000:")
}

func TestHookCmd_Untrusted(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{
		"default.js": "env.set('A', '1');\n",
	})
	t.Chdir(root)

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))
	out, err := runCmd(t, app, "hook", "")

	assert.ErrorIs(t, err, cli.ErrUntrusted)
	assert.Empty(t, out, "실패 시 stdout은 비어 있어야 한다")
}

func TestHookCmd_EvalFailureKeepsStdoutEmpty(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{
		"default.js": "throw new Error('boom');\n",
	})
	t.Chdir(root)
	trustPath := testutil.TempTrustStore(t, filepath.Join(root, loader.DefaultDirName))

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t), trustPath)
	out, err := runCmd(t, app, "hook", "")

	assert.ErrorIs(t, err, cli.ErrEval)
	assert.Empty(t, out)
}

func TestHookCmd_CorruptState(t *testing.T) {
	t.Chdir(t.TempDir())
	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))

	out, err := runCmd(t, app, "hook", "nothex:{}")
	require.Error(t, err)
	assert.Equal(t, cli.ExitParse, cli.MapExitCode(err))
	assert.Empty(t, out)
}

func TestHookCmd_PorcelainFraming(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{
		"default.js": "env.set('A', '1');\nenv.unset('B');\n",
	})
	t.Chdir(root)
	t.Setenv("B", "present")
	trustPath := testutil.TempTrustStore(t, filepath.Join(root, loader.DefaultDirName))

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t), trustPath)
	out, err := runCmd(t, app, "hook", "--porcelain", "")
	require.NoError(t, err)

	var setA, unsetB bool
	for _, rec := range porcelainRecords(t, out) {
		if rec[0] == "\x02" && rec[1] == "A" {
			assert.Equal(t, "1", rec[2])
			setA = true
		}
		if rec[0] == "\x03" && rec[1] == "B" {
			assert.Equal(t, "", rec[2])
			unsetB = true
		}
	}
	assert.True(t, setA, "A의 opcode-2 레코드가 있어야 한다")
	assert.True(t, unsetB, "B의 opcode-3 레코드가 있어야 한다")
}

// --- exec command tests ---

func TestExecCmd_RunsInShadowedEnv(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{
		"default.js": "env.set('PROJECT', 'demo');\n",
	})
	t.Chdir(root)
	trustPath := testutil.TempTrustStore(t, filepath.Join(root, loader.DefaultDirName))

	fc := testutil.NewFakeCommander()
	fc.Register("true", "", nil)

	app := newTestApp(fc, quietConfig(t), trustPath)
	_, err := runCmd(t, app, "exec", "--", "true")
	require.NoError(t, err)

	require.True(t, fc.Called("true"))
	require.Len(t, fc.EnvCalls, 1)
	assert.Contains(t, fc.EnvCalls[0], "PROJECT=demo")
}

// --- trust/untrust command tests ---

func TestTrustCmd_AddAndRemove(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{"default.js": ""})
	t.Chdir(root)
	srcDir := filepath.Join(root, loader.DefaultDirName)
	trustPath := filepath.Join(t.TempDir(), "trust.json")

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t), trustPath)

	out, err := runCmd(t, app, "trust")
	require.NoError(t, err)
	assert.Contains(t, out, srcDir)

	store, err := trust.Load(trustPath)
	require.NoError(t, err)
	assert.True(t, store.IsTrusted(srcDir))

	_, err = runCmd(t, app, "untrust")
	require.NoError(t, err)

	store, err = trust.Load(trustPath)
	require.NoError(t, err)
	assert.False(t, store.IsTrusted(srcDir))
}

func TestTrustCmd_NoSource(t *testing.T) {
	t.Chdir(t.TempDir())
	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))

	_, err := runCmd(t, app, "trust")
	assert.Error(t, err)
}

// --- init command test ---

func TestInitCmd_PrintsSnippet(t *testing.T) {
	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))

	out, err := runCmd(t, app, "init", "zsh")
	require.NoError(t, err)
	assert.Contains(t, out, "denv shell integration (zsh)")
}

// --- status command test ---

func TestStatusCmd_UntrustedSource(t *testing.T) {
	root := testutil.TempSourceDir(t, map[string]string{"default.js": ""})
	t.Chdir(root)
	t.Setenv("__denv_data", "")

	app := newTestApp(testutil.NewFakeCommander(), quietConfig(t),
		filepath.Join(t.TempDir(), "trust.json"))
	out, err := runCmd(t, app, "status")
	require.NoError(t, err)

	assert.Contains(t, out, "활성 shadow 없음")
	assert.Contains(t, out, "신뢰되지 않음")
}
