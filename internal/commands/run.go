package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphprep-dev/graphprep/internal/accounts"
	"github.com/graphprep-dev/graphprep/internal/config"
	"github.com/graphprep-dev/graphprep/internal/logger"
	"github.com/graphprep-dev/graphprep/internal/runlog"
	"github.com/graphprep-dev/graphprep/internal/transactions"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [directory]",
		Short: "Transform both configured exports of a graphprep project",
		Long: `Loads graphprep.yaml from the project directory and runs the accounts
and transactions transforms against the configured dataset files, recording
each run in logs/run-log.csv.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runProject(cmd, root)
		},
	}

	return cmd
}

func runProject(cmd *cobra.Command, root string) error {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level)
	outDir := cfg.OutputPath(root)

	accountsInput := cfg.AccountsPath(root)
	log.Info().Str("input", accountsInput).Msg("transforming accounts")
	start := time.Now()
	accSum, err := accounts.TransformFile(accountsInput, outDir)
	fmt.Fprintf(cmd.OutOrStdout(), "accounts: %s\n", accSum.String())
	if err != nil {
		return fmt.Errorf("accounts transform: %w", err)
	}
	appendRunLog(log, root, runlog.Entry{
		Timestamp: start,
		Command:   "accounts",
		Input:     accountsInput,
		OutDir:    outDir,
		Processed: accSum.Processed,
		Skipped:   accSum.Skipped,
		Failed:    accSum.Failed,
		Duration:  time.Since(start),
	})

	transactionsInput := cfg.TransactionsPath(root)
	log.Info().Str("input", transactionsInput).
		Bool("split_by_date", cfg.Output.SplitByDate).Msg("transforming transactions")
	start = time.Now()
	txnSum, err := transactions.TransformFile(transactionsInput, outDir, cfg.Output.SplitByDate)
	fmt.Fprintf(cmd.OutOrStdout(), "transactions: %s\n", txnSum.String())
	if err != nil {
		return fmt.Errorf("transactions transform: %w", err)
	}
	appendRunLog(log, root, runlog.Entry{
		Timestamp: start,
		Command:   "transactions",
		Input:     transactionsInput,
		OutDir:    outDir,
		Processed: txnSum.Processed,
		Skipped:   txnSum.Skipped,
		Failed:    txnSum.Failed,
		Duration:  time.Since(start),
	})

	return nil
}
