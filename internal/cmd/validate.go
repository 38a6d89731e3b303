package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/harrison/davfind/internal/config"
	"github.com/harrison/davfind/internal/display"
	"github.com/harrison/davfind/internal/identifiers"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [identifiers-file]",
		Short: "Check configuration, connection file and identifier list",
		Long: `Load and validate everything a search needs without contacting the server:
  - Config file and flag overrides
  - Exclude patterns compile
  - Connection file has a [webdav] section with a Root endpoint
  - Identifier list can be read

Prints the roots that would be searched for each identifier.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return validateWithOutput(cfg, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	addConfigFlags(cmd)

	return cmd
}

// validateWithOutput checks the connection file and identifier list of a
// validated config and describes the search it would run.
func validateWithOutput(cfg *config.Config, out io.Writer) error {
	conn, err := config.LoadConnection(cfg.Connection)
	if err != nil {
		return err
	}

	delimiter, _ := cfg.DelimiterRune()
	ids, err := identifiers.ReadFile(cfg.Identifiers, delimiter)
	if err != nil {
		return err
	}

	exclude := "none"
	if len(cfg.Exclude) > 0 {
		exclude = strings.Join(cfg.Exclude, ", ")
	}

	fmt.Fprintf(out, "Endpoint: %s\n", conn)
	fmt.Fprintf(out, "Search: %q (exclude: %s)\n", cfg.Search, exclude)
	fmt.Fprintf(out, "Max depth: %d\n", cfg.MaxDepth)
	fmt.Fprintf(out, "Identifiers: %d from %s\n", len(ids), cfg.Identifiers)
	for _, id := range ids {
		fmt.Fprintf(out, "  %s: %s\n", id, strings.Join(cfg.Roots(id), ", "))
	}

	sinks := cfg.Output
	if cfg.DBPath != "" {
		sinks += ", " + cfg.DBPath
	}
	fmt.Fprintf(out, "Output: %s\n", sinks)

	for _, w := range display.CheckSearch(cfg, conn, ids) {
		w.Display(out)
	}
	fmt.Fprintln(out, "✓ Configuration is valid")

	return nil
}
