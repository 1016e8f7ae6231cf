package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is what a graphprep project config file is called.
const FileName = "graphprep.yaml"

// Config represents the top-level graphprep.yaml configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig locates the raw CSV exports relative to the project root.
type DatasetConfig struct {
	Dir              string `yaml:"dir"`
	AccountsFile     string `yaml:"accounts_file"`
	TransactionsFile string `yaml:"transactions_file"`
}

// OutputConfig controls where and how normalized tables are written.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	SplitByDate bool   `yaml:"split_by_date"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a graphprep.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Dir:              "dataset",
			AccountsFile:     "LI-Small_accounts.csv",
			TransactionsFile: "LI-Small_Trans.csv",
		},
		Output: OutputConfig{
			Dir:         "transformed",
			SplitByDate: false,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// AccountsPath resolves the accounts export path against a project root.
func (c *Config) AccountsPath(root string) string {
	return filepath.Join(root, c.Dataset.Dir, c.Dataset.AccountsFile)
}

// TransactionsPath resolves the transactions export path against a project root.
func (c *Config) TransactionsPath(root string) string {
	return filepath.Join(root, c.Dataset.Dir, c.Dataset.TransactionsFile)
}

// OutputPath resolves the output directory against a project root.
func (c *Config) OutputPath(root string) string {
	return filepath.Join(root, c.Output.Dir)
}
