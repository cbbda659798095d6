package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "lorekeep", cmd.Use)
	assert.Contains(t, cmd.Long, "knowledge base")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"character", "project", "tag", "relate", "unrelate", "export", "import", "check"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "images"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "flag --%s should exist", name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml", "tag", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

// runCLI executes the root command against a database in a temp directory
// and returns the combined output.
func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{"--db", dbPath, "--images", filepath.Join(filepath.Dir(dbPath), "images")}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestEndToEnd_CharacterLifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")

	out, err := runCLI(t, db, "character", "add", "--name", "Mira Voss", "--role", "protagonist")
	require.NoError(t, err)
	assert.Contains(t, out, "created character")

	out, err = runCLI(t, db, "character", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mira Voss")

	out, err = runCLI(t, db, "character", "search", "mira")
	require.NoError(t, err)
	assert.Contains(t, out, "Mira Voss")
}

func TestEndToEnd_ProjectAssignment(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")

	_, err := runCLI(t, db, "character", "add", "--name", "Jonas")
	require.NoError(t, err)
	_, err = runCLI(t, db, "project", "add", "Anthology")
	require.NoError(t, err)
	_, err = runCLI(t, db, "project", "assign", "1", "1")
	require.NoError(t, err)

	out, err := runCLI(t, db, "character", "list", "--project", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Jonas")
}

func TestEndToEnd_ExportCheckImport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "test.db")
	file := filepath.Join(dir, "backup.json")

	_, err := runCLI(t, db, "character", "add", "--name", "Portable")
	require.NoError(t, err)
	_, err = runCLI(t, db, "export", file)
	require.NoError(t, err)

	out, err := runCLI(t, db, "check", file)
	require.NoError(t, err)
	assert.Contains(t, out, "valid backup document")

	// Importing into a fresh database recreates the character
	db2 := filepath.Join(dir, "fresh.db")
	out, err = runCLI(t, db2, "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "characters: 1 imported")

	out, err = runCLI(t, db2, "character", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portable")
}
