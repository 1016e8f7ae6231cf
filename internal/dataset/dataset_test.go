package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unrenamedTrans = "Timestamp,From Bank,Account,To Bank,Account,Amount Received,Receiving Currency,Amount Paid,Payment Currency,Payment Format,Is Laundering\n" +
	"2022/01/05 09:00,11,A1,11,A2,50.0,US Dollar,50.0,US Dollar,ACH,0\n"

func TestRenameHeaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LI-Small_Trans.csv")
	require.NoError(t, os.WriteFile(path, []byte(unrenamedTrans), 0o644))

	changed, err := RenameHeaders(path)
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	lines := string(data)
	assert.Contains(t, lines, "From Bank,FromAccount,To Bank,ToAccount,")
	// Data rows are untouched.
	assert.Contains(t, lines, "2022/01/05 09:00,11,A1,11,A2")
}

func TestRenameHeaders_AlreadyRenamed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LI-Small_Trans.csv")
	require.NoError(t, os.WriteFile(path, []byte(unrenamedTrans), 0o644))

	_, err := RenameHeaders(path)
	require.NoError(t, err)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := RenameHeaders(path)
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRenameHeaders_MissingFile(t *testing.T) {
	_, err := RenameHeaders(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LI-Small_Trans.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "LI-Small_accounts.csv"), []byte("xy"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.Contains(t, names, "LI-Small_Trans.csv")
	assert.Contains(t, names, "LI-Small_accounts.csv")
	for _, f := range files {
		assert.NotZero(t, f.Size)
		assert.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestIsTransactions(t *testing.T) {
	assert.True(t, IsTransactions("LI-Small_Trans.csv"))
	assert.False(t, IsTransactions("LI-Small_accounts.csv"))
}

func TestIsAccounts(t *testing.T) {
	assert.True(t, IsAccounts("LI-Small_accounts.csv"))
	assert.False(t, IsAccounts("LI-Small_Trans.csv"))
}
