package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	cfg := Default()
	cfg.Output.SplitByDate = true
	cfg.Dataset.AccountsFile = "HI-Large_accounts.csv"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("dataset: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "dataset", cfg.Dataset.Dir)
	assert.Equal(t, "transformed", cfg.Output.Dir)
	assert.False(t, cfg.Output.SplitByDate)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	root := filepath.Join("some", "project")

	assert.Equal(t, filepath.Join(root, "dataset", "LI-Small_accounts.csv"), cfg.AccountsPath(root))
	assert.Equal(t, filepath.Join(root, "dataset", "LI-Small_Trans.csv"), cfg.TransactionsPath(root))
	assert.Equal(t, filepath.Join(root, "transformed"), cfg.OutputPath(root))
}
