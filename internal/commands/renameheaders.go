package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphprep-dev/graphprep/internal/dataset"
)

func newRenameHeadersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename-headers [directory]",
		Short: "Fix duplicate Account columns in raw transactions exports",
		Long: `Raw *_Trans.csv exports name both account columns "Account". This
rewrites each header in place so the columns become FromAccount and
ToAccount, which the transactions transform requires.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runRenameHeaders(cmd, dir)
		},
	}

	return cmd
}

func runRenameHeaders(cmd *cobra.Command, dir string) error {
	files, err := dataset.Scan(dir)
	if err != nil {
		return err
	}

	found := 0
	for _, f := range files {
		if !dataset.IsTransactions(f.Name) {
			continue
		}
		found++

		changed, err := dataset.RenameHeaders(f.Path)
		if err != nil {
			return fmt.Errorf("renaming headers in %s: %w", f.Name, err)
		}
		if changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed account columns in %s\n", f.Name)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already renamed\n", f.Name)
		}
	}

	if found == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No *_Trans.csv files in %s\n", dir)
	}
	return nil
}
