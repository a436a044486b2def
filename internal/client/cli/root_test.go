package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: N/A")
}

func TestRootCommand_ExportImport(t *testing.T) {
	plainTerminal(t)
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.json")

	out, err := execute(t, "", "export", backup, "--db", filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written to "+backup)

	other := filepath.Join(dir, "b.db")
	out, err = execute(t, "n\n", "import", backup, "--db", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	out, err = execute(t, "", "import", backup, "--db", other, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 users and 0 courses.")

	_, err = execute(t, "", "import", filepath.Join(dir, "missing.json"), "--db", other, "-y")
	require.Error(t, err)

	_, err = execute(t, "", "import", "--db", other)
	require.Error(t, err, "the backup file is required")
}

func TestRootCommand_REPL(t *testing.T) {
	plainTerminal(t)
	db := filepath.Join(t.TempDir(), "repl.db")

	out, err := execute(t, "help\nexit\n", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to Course Manager")
	assert.Contains(t, out, "register")
	assert.Contains(t, out, "Bye!")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := execute(t, "", "--db", filepath.Join(t.TempDir(), "x.db"), "--log-format", "xml")
	require.Error(t, err)
}
