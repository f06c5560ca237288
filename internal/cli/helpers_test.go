package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newWorkspace writes a config file pointing the database and the session
// file into a temp dir, and returns that dir.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := fmt.Sprintf("database:\n  path: %q\nsession:\n  path: %q\n",
		filepath.Join(dir, "catalog.db"), filepath.Join(dir, "session.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte(cfg), 0o644))
	return dir
}

// runCLI executes the root command against the workspace config and returns
// stdout, stderr and the exit code.
func runCLI(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "catalog.yaml")}, args...))

	code := report(cmd, opts, cmd.ExecuteContext(t.Context()))
	return stdout.String(), stderr.String(), code
}

// mustRun is runCLI requiring success.
func mustRun(t *testing.T, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, code := runCLI(t, dir, args...)
	require.Equal(t, ExitSuccess, code, "stderr: %s", stderr)
	return stdout
}
