package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for davfind
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "davfind",
		Short: "Recursive file search over a WebDAV store",
		Long: `davfind walks a remote WebDAV file store once per identifier and
records every file whose name contains a search string.

Directories are always descended into, files whose content type matches
an exclude pattern are skipped, and all matches are written to a CSV file
(and optionally a SQLite database) when the search completes.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
