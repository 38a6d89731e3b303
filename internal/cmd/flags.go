package cmd

import (
	"fmt"
	"time"

	"github.com/harrison/davfind/internal/config"
	"github.com/spf13/cobra"
)

// addConfigFlags registers the flags shared by search and validate.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .davfind/config.yaml)")
	cmd.Flags().String("connection", "", "Path to the INI connection file")
	cmd.Flags().String("search", "", "Substring to find in file names (case-insensitive)")
	cmd.Flags().StringArray("exclude", nil, "Content-type regex to skip (repeatable, replaces config list; '' disables)")
	cmd.Flags().Int("max-depth", 0, "Maximum directory depth below each root")
	cmd.Flags().Bool("include-internal", false, "Also search each identifier's internal tree")
	cmd.Flags().String("output", "", "Path of the CSV match file")
	cmd.Flags().String("db", "", "Also record matches in this SQLite database")
	cmd.Flags().Bool("no-header", false, "Do not write the CSV header row")
	cmd.Flags().String("timeout", "", "Per-request timeout (e.g., 30s, 2m; 0 disables)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for log files")
	cmd.Flags().String("delimiter", "", "Identifier list delimiter (use \\t or tab for tabs)")
}

// loadConfig loads the config file, applies flag overrides and the optional
// identifiers-file argument, and validates the result.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	overrides, err := overridesFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		overrides.Identifiers = &args[0]
	}
	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// overridesFromFlags builds config overrides from the flags the user set.
func overridesFromFlags(cmd *cobra.Command) (config.Overrides, error) {
	var o config.Overrides
	flags := cmd.Flags()

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	o.Connection = stringFlag("connection")
	o.Search = stringFlag("search")
	o.Output = stringFlag("output")
	o.DBPath = stringFlag("db")
	o.LogLevel = stringFlag("log-level")
	o.LogDir = stringFlag("log-dir")
	o.Delimiter = stringFlag("delimiter")

	if flags.Changed("exclude") {
		values, _ := flags.GetStringArray("exclude")
		exclude := []string{}
		for _, v := range values {
			if v != "" {
				exclude = append(exclude, v)
			}
		}
		o.Exclude = &exclude
	}
	if flags.Changed("max-depth") {
		maxDepth, _ := flags.GetInt("max-depth")
		o.MaxDepth = &maxDepth
	}
	if flags.Changed("include-internal") {
		includeInternal, _ := flags.GetBool("include-internal")
		o.IncludeInternal = &includeInternal
	}
	if flags.Changed("no-header") {
		noHeader, _ := flags.GetBool("no-header")
		header := !noHeader
		o.Header = &header
	}
	if flags.Changed("timeout") {
		timeoutStr, _ := flags.GetString("timeout")
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return o, fmt.Errorf("invalid timeout format %q: %w", timeoutStr, err)
		}
		o.Timeout = &timeout
	}

	return o, nil
}
