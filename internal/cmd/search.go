package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harrison/davfind/internal/config"
	"github.com/harrison/davfind/internal/davclient"
	"github.com/harrison/davfind/internal/display"
	"github.com/harrison/davfind/internal/identifiers"
	"github.com/harrison/davfind/internal/logger"
	"github.com/harrison/davfind/internal/output"
	"github.com/harrison/davfind/internal/search"
	"github.com/spf13/cobra"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [identifiers-file]",
		Short: "Search every identifier's remote tree for matching files",
		Long: `Search reads the identifier list, walks each identifier's remote tree
depth-first and writes every matching file to the output CSV once the
whole list has been searched.

Configuration is loaded from .davfind/config.yaml if present.
CLI flags override configuration file settings. Connection details
(Root, Login, Password) are read from the [webdav] section of the
connection file.

Listing failures are logged and the affected subtree skipped; the
search always continues with the next directory and identifier.

Examples:
  davfind search                                # course_ids.csv, connection.ini
  davfind search ids.tsv --delimiter tab
  davfind search --search handbook --exclude 'image*' --exclude 'video*'
  davfind search --include-internal --db matches.db
  davfind search --log-level debug --log-dir ./logs`,
		Args: cobra.MaximumNArgs(1),
		RunE: searchCommand,
	}

	addConfigFlags(cmd)

	return cmd
}

// searchCommand implements the search command logic
func searchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	conn, err := config.LoadConnection(cfg.Connection)
	if err != nil {
		return err
	}

	delimiter, _ := cfg.DelimiterRune()
	ids, err := identifiers.ReadFile(cfg.Identifiers, delimiter)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	console := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	loggers := []logger.Logger{console}

	fileLogger, err := logger.NewFileLoggerWithDirAndLevel(cfg.LogDir, cfg.LogLevel, runID)
	if err != nil {
		console.LogWarn(fmt.Sprintf("File logging disabled: %v", err))
	} else {
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	log := logger.NewMultiLogger(loggers...)

	for _, w := range display.CheckSearch(cfg, conn, ids) {
		log.LogWarn(w.String())
	}

	log.LogDebug(fmt.Sprintf("Connecting to %s", conn))
	client := davclient.New(*conn,
		davclient.WithTimeout(cfg.Timeout),
		davclient.WithUserAgent("davfind/"+Version),
	)

	opts := []search.Option{search.WithRunID(runID)}
	if cfg.DBPath != "" {
		store, err := output.NewStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, search.WithStore(store))
	}

	runner, err := search.NewRunner(cfg, client, log, opts...)
	if err != nil {
		return err
	}

	if _, _, err := runner.Run(cmd.Context(), ids); err != nil {
		return err
	}

	if fileLogger != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Log: %s\n", fileLogger.Path())
	}
	return nil
}
