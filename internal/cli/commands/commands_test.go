package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcra/internal/cli"
	"mcra/internal/config"
	"mcra/internal/storage"
)

func init() {
	color.NoColor = true
}

type fixture struct {
	dir      string
	csvPath  string
	snapshot string
	config   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:      dir,
		csvPath:  filepath.Join(dir, "out", "results.csv"),
		snapshot: filepath.Join(dir, "state"),
		config:   filepath.Join(dir, "mcra.yaml"),
	}
	yaml := fmt.Sprintf("snapshot:\n  dir: %s\n  file: last.json\nlogging:\n  level: error\n  file: %s\n",
		f.snapshot, filepath.Join(dir, "mcra.log"))
	require.NoError(t, os.WriteFile(f.config, []byte(yaml), 0644))
	return f
}

func (f *fixture) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.dir, name), []byte(content), 0644))
}

func (f *fixture) run(t *testing.T, args ...string) (string, *Commands, error) {
	t.Helper()
	root := &cobra.Command{Use: "mcra", SilenceUsage: true, SilenceErrors: true}
	var flags cli.Flags
	cmds := NewCommands(config.New())
	cmds.Report.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	cmds.Register(root, &flags)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", f.config, "--rdir", f.dir}, args...))
	err := root.Execute()
	require.NoError(t, cmds.Close())
	return out.String(), cmds, err
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestReportCommand(t *testing.T) {
	f := newFixture(t)
	f.write(t, "2024_core.json", `{"results": [
		{"test_file": "jstests/core/pass.js", "status": "pass"},
		{"test_file": "jstests/core/fail.js", "status": "fail"}
	]}`)
	f.write(t, "2024_core.log", "[js_test:fail] uncaught exception: TypeError: x\n[js_test:pass] fine\n")

	out, cmds, err := f.run(t, "report", "-p", "atlas", "--previewFeatures", "none",
		"--suites", "core", "--csv", f.csvPath, "--no-progress")
	require.NoError(t, err)

	lines := readLines(t, f.csvPath)
	require.Len(t, lines, 3)
	assert.Equal(t, storage.CSVHeader, lines[0])
	assert.Equal(t, `2024-03-01,jstests/core/pass.js,core,atlas,v5.0,pass,none,""`, lines[1])
	assert.Equal(t, `2024-03-01,jstests/core/fail.js,core,atlas,v5.0,fail,none,"TypeError: x"`, lines[2])

	assert.Contains(t, out, "Correctness Report Statistics")
	assert.Contains(t, out, "1 test(s) did not pass")

	snapshot, err := cmds.snapshotStore().Load()
	require.NoError(t, err)
	assert.True(t, snapshot.Meta.Completed)
	assert.Equal(t, "2024-03-01", snapshot.Meta.Date)
	assert.NotEmpty(t, snapshot.Meta.RunID)
	require.Len(t, snapshot.Failures, 1)
	assert.Equal(t, "TypeError: x", snapshot.Failures[0].ErrMsg.Text())
}

func TestReportCommand_Aborted(t *testing.T) {
	f := newFixture(t)
	f.write(t, "r_core.json", `{"results": [{"test_file": "jstests/core/a.js", "status": "pass"}]}`)
	f.write(t, "r_core.log", "")

	args := []string{"report", "-p", "atlas", "--preview-features", "none",
		"--suites", "core,decimal", "--csv", f.csvPath, "--no-progress"}

	out, cmds, err := f.run(t, args...)
	require.NoError(t, err, "aborted runs still exit cleanly by default")
	assert.Contains(t, out, "Run aborted after 1 suite(s)")
	assert.Len(t, readLines(t, f.csvPath), 2, "core rows are kept")

	snapshot, err := cmds.snapshotStore().Load()
	require.NoError(t, err)
	assert.False(t, snapshot.Meta.Completed)
	assert.Contains(t, snapshot.Meta.Error, "decimal")

	_, _, err = f.run(t, append(args, "--exit-code")...)
	assert.Error(t, err)
}

func TestReportCommand_Validation(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.run(t, "report", "--preview-features", "none", "--csv", f.csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "platform is required")

	_, _, err = f.run(t, "report", "-p", "atlas", "--preview-features", "none", "--suites", "co*", "--csv", f.csvPath)
	require.Error(t, err)
	_, statErr := os.Stat(f.csvPath)
	assert.True(t, os.IsNotExist(statErr), "no CSV is created for an invalid config")
}

func TestReportCommand_NoSnapshot(t *testing.T) {
	f := newFixture(t)
	f.write(t, "core.json", `{"results": []}`)
	f.write(t, "core.log", "")

	_, cmds, err := f.run(t, "report", "-p", "atlas", "--preview-features", "none",
		"--suites", "core", "--csv", f.csvPath, "--no-progress", "--no-snapshot")
	require.NoError(t, err)
	assert.Len(t, readLines(t, f.csvPath), 1)

	_, err = cmds.snapshotStore().Load()
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	f := newFixture(t)
	f.write(t, "x_core.json", `{"results": [{"test_file": "a.js", "status": "pass"}, {"test_file": "b.js", "status": "fail"}]}`)
	f.write(t, "x_core.log", "")
	f.write(t, "x_decimal.json", `{"results": []}`)

	out, _, err := f.run(t, "list", "--suites", "core,decimal", "-c")
	require.NoError(t, err)
	assert.Contains(t, out, "core [ok]")
	assert.Contains(t, out, "x_core.json (2 tests)")
	assert.Contains(t, out, "decimal [incomplete]")
	assert.Contains(t, out, "x_decimal.json (0 tests)")
}
