package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/graphprep-dev/graphprep/internal/buildinfo"
	"github.com/graphprep-dev/graphprep/internal/runlog"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "graphprep",
		Short:   "Prepare raw AML CSV exports for bulk graph import",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(),
		newTransactionsCommand(),
		newRenameHeadersCommand(),
		newRunCommand(),
	)

	return rootCmd
}

// appendRunLog records a finished transform in the project run log. Run-log
// problems are reported but never fail a run that already produced output.
func appendRunLog(log zerolog.Logger, root string, e runlog.Entry) {
	if err := runlog.Append(root, []runlog.Entry{e}); err != nil {
		log.Warn().Err(err).Msg("appending run log")
	}
}
