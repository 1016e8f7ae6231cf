package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphprep-dev/graphprep/internal/config"
	"github.com/graphprep-dev/graphprep/internal/runlog"
	"github.com/graphprep-dev/graphprep/internal/transactions"
)

const rawAccountsFixture = `Bank Name,Bank ID,Account Number,Entity ID,Entity Name
First National,11,A1,E1,Alpha Holdings
Second Bank,22,B2,E2,Beta LLC
`

const rawTransactionsFixture = transactions.RawHeader + "\n" +
	"2022/01/05 09:00,11,A1,22,B2,50.0,US Dollar,50.0,US Dollar,ACH,0\n" +
	"2022/01/06 14:30,22,B2,11,A1,100.0,US Dollar,100.0,US Dollar,Wire,1\n"

func TestAccountsCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.WriteFile(input, []byte(rawAccountsFixture), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "accounts", "--input", input, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "processed 2 rows, skipped 0, failed 0")

	for _, name := range []string{"banks.csv", "entities.csv", "accounts.csv", "entity_owns_account.csv", "account_part_of_bank.csv"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}

	entries, err := runlog.Read(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "accounts", entries[0].Command)
	assert.Equal(t, 2, entries[0].Processed)
}

func TestAccountsCommand_MissingInputFlag(t *testing.T) {
	_, err := execute(t, "accounts")
	assert.Error(t, err)
}

func TestAccountsCommand_StructuralFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.WriteFile(input, []byte("wrong,header\n1,2\n"), 0o644))

	out, err := execute(t, "accounts", "--input", input, "--out-dir", filepath.Join(dir, "out"))
	require.Error(t, err)
	// The summary is still printed on failure.
	assert.Contains(t, out, "processed 0 rows")
}

func TestTransactionsCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "trans.csv")
	require.NoError(t, os.WriteFile(input, []byte(rawTransactionsFixture), 0o644))
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, "transactions", "--input", input, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "processed 2 rows, skipped 0, failed 0")

	assert.FileExists(t, filepath.Join(outDir, transactions.TransactionsFile))
	assert.FileExists(t, filepath.Join(outDir, transactions.FromFile))
	assert.FileExists(t, filepath.Join(outDir, transactions.ToFile))
}

func TestTransactionsCommand_SplitByDate(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "trans.csv")
	require.NoError(t, os.WriteFile(input, []byte(rawTransactionsFixture), 0o644))
	outDir := filepath.Join(dir, "out")

	_, err := execute(t, "transactions", "--input", input, "--out-dir", outDir, "--split-by-date")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "2022_01_05_transactions.csv"))
	assert.FileExists(t, filepath.Join(outDir, "2022_01_06_transactions.csv"))
	assert.NoFileExists(t, filepath.Join(outDir, transactions.TransactionsFile))
}

func TestRenameHeadersCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "LI-Small_Trans.csv")
	unrenamed := "Timestamp,From Bank,Account,To Bank,Account,Amount Received,Receiving Currency,Amount Paid,Payment Currency,Payment Format,Is Laundering\n"
	require.NoError(t, os.WriteFile(path, []byte(unrenamed), 0o644))

	out, err := execute(t, "rename-headers", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed account columns in LI-Small_Trans.csv")

	out, err = execute(t, "rename-headers", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "already renamed")
}

func TestRenameHeadersCommand_NoFiles(t *testing.T) {
	out, err := execute(t, "rename-headers", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No *_Trans.csv files")
}

func TestRunCommand(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "init", root)
	require.NoError(t, err)

	cfg := config.Default()
	require.NoError(t, os.WriteFile(cfg.AccountsPath(root), []byte(rawAccountsFixture), 0o644))
	require.NoError(t, os.WriteFile(cfg.TransactionsPath(root), []byte(rawTransactionsFixture), 0o644))

	out, err := execute(t, "run", root)
	require.NoError(t, err)
	assert.Contains(t, out, "accounts: processed 2 rows")
	assert.Contains(t, out, "transactions: processed 2 rows")

	outDir := cfg.OutputPath(root)
	assert.FileExists(t, filepath.Join(outDir, "banks.csv"))
	assert.FileExists(t, filepath.Join(outDir, transactions.TransactionsFile))

	entries, err := runlog.Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "accounts", entries[0].Command)
	assert.Equal(t, "transactions", entries[1].Command)
}

func TestRunCommand_NoConfig(t *testing.T) {
	_, err := execute(t, "run", t.TempDir())
	assert.Error(t, err)
}
