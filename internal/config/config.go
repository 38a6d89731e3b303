package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// IDPlaceholder is replaced by the identifier in root path templates.
const IDPlaceholder = "{id}"

// Config represents davfind configuration options
type Config struct {
	// Search is the substring to find in file names (case-insensitive)
	Search string `yaml:"search"`

	// Exclude lists regexes tested against a file's content type
	Exclude []string `yaml:"exclude"`

	// MaxDepth is the recursion ceiling below each root
	MaxDepth int `yaml:"max_depth"`

	// IncludeInternal also searches the protected internal tree of each identifier
	IncludeInternal bool `yaml:"include_internal"`

	// CoursesPath is the per-identifier root template
	CoursesPath string `yaml:"courses_path"`

	// InternalPath is the per-identifier internal root template
	InternalPath string `yaml:"internal_path"`

	// Identifiers is the path of the delimited identifier list
	Identifiers string `yaml:"identifiers"`

	// Delimiter separates fields in the identifier list
	Delimiter string `yaml:"delimiter"`

	// Connection is the path of the INI connection file
	Connection string `yaml:"connection"`

	// Output is the path of the CSV match file
	Output string `yaml:"output"`

	// Header writes the column names as the first CSV row
	Header bool `yaml:"header"`

	// DBPath enables the SQLite match sink when non-empty
	DBPath string `yaml:"db_path"`

	// Timeout is the per-request HTTP timeout (0 = none)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where logs will be written
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Search:          "syllabus",
		Exclude:         []string{"image*"},
		MaxDepth:        100,
		IncludeInternal: false,
		CoursesPath:     "/bbcswebdav/courses/{id}/",
		InternalPath:    "/bbcswebdav/internal/courses/{id}/",
		Identifiers:     "course_ids.csv",
		Delimiter:       ",",
		Connection:      "connection.ini",
		Output:          "files.csv",
		Header:          true,
		DBPath:          "",
		Timeout:         30 * time.Second,
		LogLevel:        "info",
		LogDir:          ".davfind/logs",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are strings in YAML; presence of each key is checked
	// separately so explicit false/0/"" values override the defaults.
	type yamlConfig struct {
		Search          string   `yaml:"search"`
		Exclude         []string `yaml:"exclude"`
		MaxDepth        int      `yaml:"max_depth"`
		IncludeInternal bool     `yaml:"include_internal"`
		CoursesPath     string   `yaml:"courses_path"`
		InternalPath    string   `yaml:"internal_path"`
		Identifiers     string   `yaml:"identifiers"`
		Delimiter       string   `yaml:"delimiter"`
		Connection      string   `yaml:"connection"`
		Output          string   `yaml:"output"`
		Header          bool     `yaml:"header"`
		DBPath          string   `yaml:"db_path"`
		Timeout         string   `yaml:"timeout"`
		LogLevel        string   `yaml:"log_level"`
		LogDir          string   `yaml:"log_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	has := func(key string) bool {
		_, ok := rawMap[key]
		return ok
	}

	if yamlCfg.Search != "" {
		cfg.Search = yamlCfg.Search
	}
	if has("exclude") {
		// An explicit empty list disables exclusion
		cfg.Exclude = yamlCfg.Exclude
	}
	if yamlCfg.MaxDepth != 0 {
		cfg.MaxDepth = yamlCfg.MaxDepth
	}
	if has("include_internal") {
		cfg.IncludeInternal = yamlCfg.IncludeInternal
	}
	if yamlCfg.CoursesPath != "" {
		cfg.CoursesPath = yamlCfg.CoursesPath
	}
	if yamlCfg.InternalPath != "" {
		cfg.InternalPath = yamlCfg.InternalPath
	}
	if yamlCfg.Identifiers != "" {
		cfg.Identifiers = yamlCfg.Identifiers
	}
	if yamlCfg.Delimiter != "" {
		cfg.Delimiter = yamlCfg.Delimiter
	}
	if yamlCfg.Connection != "" {
		cfg.Connection = yamlCfg.Connection
	}
	if yamlCfg.Output != "" {
		cfg.Output = yamlCfg.Output
	}
	if has("header") {
		cfg.Header = yamlCfg.Header
	}
	if has("db_path") {
		cfg.DBPath = yamlCfg.DBPath
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .davfind/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".davfind", "config.yaml")
	return LoadConfig(configPath)
}

// Overrides carries CLI flag values. A nil field means the flag was not set.
type Overrides struct {
	Search          *string
	Exclude         *[]string
	MaxDepth        *int
	IncludeInternal *bool
	Identifiers     *string
	Delimiter       *string
	Connection      *string
	Output          *string
	Header          *bool
	DBPath          *string
	Timeout         *time.Duration
	LogLevel        *string
	LogDir          *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Search != nil {
		c.Search = *o.Search
	}
	if o.Exclude != nil {
		c.Exclude = *o.Exclude
	}
	if o.MaxDepth != nil {
		c.MaxDepth = *o.MaxDepth
	}
	if o.IncludeInternal != nil {
		c.IncludeInternal = *o.IncludeInternal
	}
	if o.Identifiers != nil {
		c.Identifiers = *o.Identifiers
	}
	if o.Delimiter != nil {
		c.Delimiter = *o.Delimiter
	}
	if o.Connection != nil {
		c.Connection = *o.Connection
	}
	if o.Output != nil {
		c.Output = *o.Output
	}
	if o.Header != nil {
		c.Header = *o.Header
	}
	if o.DBPath != nil {
		c.DBPath = *o.DBPath
	}
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Search) == "" {
		return fmt.Errorf("search string cannot be empty")
	}

	for _, pattern := range c.Exclude {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be > 0, got %d", c.MaxDepth)
	}

	if !strings.Contains(c.CoursesPath, IDPlaceholder) {
		return fmt.Errorf("courses_path %q must contain %s", c.CoursesPath, IDPlaceholder)
	}
	if c.IncludeInternal && !strings.Contains(c.InternalPath, IDPlaceholder) {
		return fmt.Errorf("internal_path %q must contain %s", c.InternalPath, IDPlaceholder)
	}

	if _, err := c.DelimiterRune(); err != nil {
		return err
	}

	if c.Output == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	return nil
}

// DelimiterRune returns the identifier list delimiter as a single rune.
// "\t" and "tab" both select a tab. "#" is reserved for comment lines.
func (c *Config) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "\\t", "\t", "tab":
		return '\t', nil
	}
	r := []rune(c.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if r[0] == '"' || r[0] == '#' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", c.Delimiter)
	}
	return r[0], nil
}

// Roots expands the root path templates for one identifier.
// The internal root is included only when IncludeInternal is set.
func (c *Config) Roots(identifier string) []string {
	roots := []string{strings.ReplaceAll(c.CoursesPath, IDPlaceholder, identifier)}
	if c.IncludeInternal {
		roots = append(roots, strings.ReplaceAll(c.InternalPath, IDPlaceholder, identifier))
	}
	return roots
}
