package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Idempotent(t *testing.T) {
	dir := newWorkspace(t)
	path := filepath.Join(dir, "catalog.db")

	assert.Equal(t, "Database ready at "+path+" (4 products)\n", mustRun(t, dir, "init"))
	assert.Equal(t, "Database ready at "+path+" (4 products)\n", mustRun(t, dir, "init"))
}

func TestInit_SeedsEvenWhenStartupSeedingIsOff(t *testing.T) {
	t.Setenv("CATALOG_DATABASE_SEED", "false")
	dir := newWorkspace(t)

	var status databaseStatus
	decodeData(t, mustRun(t, dir, "--format", "json", "init"), &status)
	assert.Equal(t, 4, status.Products)
}

func TestReset_RequiresConfirmation(t *testing.T) {
	dir := newWorkspace(t)
	mustRun(t, dir, "delete", "1")

	_, stderr, code := runCLI(t, dir, "reset")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "--yes")

	// nothing changed
	out := mustRun(t, dir, "list")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestReset_RestoresDefaults(t *testing.T) {
	dir := newWorkspace(t)
	mustRun(t, dir, "add", "--name", "Extra")
	mustRun(t, dir, "delete", "1")

	out := mustRun(t, dir, "reset", "--yes")
	assert.Contains(t, out, "Catalog reset")
	assert.Contains(t, out, "(4 products)")

	lines := strings.Split(strings.TrimSpace(mustRun(t, dir, "list")), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "1\tEstojo CaCapy"), lines[0])
}

func TestServe_StopsWhenContextCancelled(t *testing.T) {
	// seeding would fail on the cancelled context
	t.Setenv("CATALOG_DATABASE_SEED", "false")
	dir := newWorkspace(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "catalog.yaml"), "serve", "--addr", "127.0.0.1:0"})

	err := cmd.ExecuteContext(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Serving catalog on 127.0.0.1:0")
}
