package contract

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/huangsam/sizewatch/schema"
)

// Default values for configuration.
const (
	DefaultPattern                = "**/dist/**/*.{js,mjs,cjs}"
	DefaultExclude                = "{**/*.map,**/node_modules/**}"
	DefaultBuildScript            = "build"
	AutoInstallScript             = "auto"
	SkipInstallScript             = "none"
	DefaultHeadRef                = "HEAD"
	DefaultGitHubAPIURL           = "https://api.github.com"
	DefaultMinimumChangeThreshold = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for one sizewatch invocation.
// This struct is the "final, validated" config.
type Config struct {
	WorkDir     string // Absolute directory where builds run and files are collected
	Pattern     string
	Exclude     string
	StripHash   *regexp.Regexp // nil when hash stripping is disabled
	Compression schema.CompressionMode
	Workers     int

	Report     schema.ReportOptions
	CommentKey string
	UseCheck   bool
	DryRun     bool

	BuildScript   string
	InstallScript string
	CleanScript   string
	BaseRef       string
	HeadRef       string

	Output     schema.OutputMode
	OutputFile string
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	RepoToken        string // Please use env var as this is plaintext
	GitHubAPIURL     string
	GitHubRepository string // owner/name
	EventPath        string
	GitHubBaseRef    string // Base branch name of the pull request
	StepSummaryPath  string

	BaseSizesPath string // Size map JSON for the old build, used by diff
	HeadSizesPath string // Size map JSON for the new build, used by diff
}

// Clone returns a shallow copy that can be adjusted per request.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	BaseSizesPath string
	HeadSizesPath string

	// --- Report options ---
	Pattern                string `mapstructure:"pattern"`
	Exclude                string `mapstructure:"exclude"`
	StripHash              string `mapstructure:"strip-hash"`
	Compression            string `mapstructure:"compression"`
	MinimumChangeThreshold int64  `mapstructure:"minimum-change-threshold"`
	ShowTotal              string `mapstructure:"show-total"`
	CollapseUnchanged      string `mapstructure:"collapse-unchanged"`
	OmitUnchanged          string `mapstructure:"omit-unchanged"`
	OrderBy                string `mapstructure:"order-by"`
	SortBy                 string `mapstructure:"sort-by"`
	CommentKey             string `mapstructure:"comment-key"`

	// --- Build options ---
	UseCheck      string `mapstructure:"use-check"`
	BuildScript   string `mapstructure:"build-script"`
	InstallScript string `mapstructure:"install-script"`
	CleanScript   string `mapstructure:"clean-script"`
	BaseRef       string `mapstructure:"base-ref"`
	HeadRef       string `mapstructure:"head-ref"`
	Cwd           string `mapstructure:"cwd"`
	Workers       int    `mapstructure:"workers"`

	// --- Output options ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	// --- Integrations ---
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	RepoToken        string `mapstructure:"repo-token"`
	GitHubAPIURL     string `mapstructure:"github-api-url"`
	GitHubRepository string `mapstructure:"github-repository"`
	EventPath        string `mapstructure:"github-event-path"`
	GitHubBaseRef    string `mapstructure:"github-base-ref"`
	StepSummaryPath  string `mapstructure:"step-summary"`
	DryRun           bool   `mapstructure:"dry-run"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processReportOptions(cfg, input); err != nil {
		return err
	}
	if err := processBuildOptions(cfg, input); err != nil {
		return err
	}
	if err := processOutputOptions(cfg, input); err != nil {
		return err
	}
	return processIntegrations(cfg, input)
}

// processReportOptions handles matching, normalization and presentation options.
func processReportOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Pattern = strings.TrimSpace(input.Pattern)
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	cfg.Exclude = strings.TrimSpace(input.Exclude)

	cfg.StripHash = nil
	if input.StripHash != "" {
		re, err := regexp.Compile(input.StripHash)
		if err != nil {
			return fmt.Errorf("invalid strip-hash pattern '%s': %w", input.StripHash, err)
		}
		cfg.StripHash = re
	}

	cfg.Compression = schema.CompressionMode(strings.ToLower(strings.TrimSpace(input.Compression)))
	if cfg.Compression == "" {
		cfg.Compression = schema.GzipCompression
	}
	if _, ok := schema.ValidCompressionModes[cfg.Compression]; !ok {
		return fmt.Errorf("invalid compression '%s'. must be gzip, brotli, zstd, lz4, none", input.Compression)
	}

	if input.MinimumChangeThreshold < 0 {
		return fmt.Errorf("minimum-change-threshold cannot be negative (received %d)", input.MinimumChangeThreshold)
	}

	opts := schema.DefaultReportOptions
	opts.MinimumChangeThreshold = input.MinimumChangeThreshold

	boolInputs := []struct {
		name  string
		raw   string
		field *bool
	}{
		{"show-total", input.ShowTotal, &opts.ShowTotal},
		{"collapse-unchanged", input.CollapseUnchanged, &opts.CollapseUnchanged},
		{"omit-unchanged", input.OmitUnchanged, &opts.OmitUnchanged},
	}
	for _, b := range boolInputs {
		if b.raw == "" {
			continue // keep default
		}
		v, err := ParseBoolString(b.raw)
		if err != nil {
			return fmt.Errorf("invalid --%s value: %w", b.name, err)
		}
		*b.field = v
	}

	// order-by wins over its sort-by alias
	rawSort := input.OrderBy
	if rawSort == "" {
		rawSort = input.SortBy
	}
	spec, err := schema.ParseSortSpec(rawSort)
	if err != nil {
		LogWarn("order-by ignored, using "+schema.DefaultSortSpec.String(), err)
	}
	opts.SortBy = spec

	cfg.Report = opts
	cfg.CommentKey = strings.TrimSpace(input.CommentKey)
	return nil
}

// processBuildOptions handles the build scripts, refs and workers.
func processBuildOptions(cfg *Config, input *ConfigRawInput) error {
	if input.UseCheck != "" {
		useCheck, err := ParseBoolString(input.UseCheck)
		if err != nil {
			return fmt.Errorf("invalid --use-check value: %w", err)
		}
		cfg.UseCheck = useCheck
	}

	cfg.BuildScript = strings.TrimSpace(input.BuildScript)
	if cfg.BuildScript == "" {
		cfg.BuildScript = DefaultBuildScript
	}
	cfg.InstallScript = strings.TrimSpace(input.InstallScript)
	if cfg.InstallScript == "" {
		cfg.InstallScript = AutoInstallScript
	}
	cfg.CleanScript = strings.TrimSpace(input.CleanScript)

	cfg.BaseRef = strings.TrimSpace(input.BaseRef)
	cfg.HeadRef = strings.TrimSpace(input.HeadRef)
	if cfg.HeadRef == "" {
		cfg.HeadRef = DefaultHeadRef
	}

	cwd := input.Cwd
	if cwd == "" {
		cwd = "."
	}
	absCwd, err := filepath.Abs(cwd)
	if err != nil {
		return fmt.Errorf("invalid cwd '%s': %w", input.Cwd, err)
	}
	cfg.WorkDir = filepath.Clean(absCwd)

	if input.Workers < 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	cfg.BaseSizesPath = input.BaseSizesPath
	cfg.HeadSizesPath = input.HeadSizesPath
	return nil
}

// processOutputOptions handles the console output options.
func processOutputOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, markdown", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.UseColors = true
	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	return nil
}

// processIntegrations handles the history store and GitHub settings.
func processIntegrations(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.HistoryBackend)))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	cfg.RepoToken = strings.TrimSpace(input.RepoToken)
	cfg.GitHubAPIURL = strings.TrimRight(strings.TrimSpace(input.GitHubAPIURL), "/")
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = DefaultGitHubAPIURL
	}
	cfg.GitHubRepository = strings.TrimSpace(input.GitHubRepository)
	if cfg.GitHubRepository != "" && strings.Count(cfg.GitHubRepository, "/") != 1 {
		return fmt.Errorf("invalid github repository '%s'. must be owner/name", input.GitHubRepository)
	}
	cfg.EventPath = input.EventPath
	cfg.GitHubBaseRef = strings.TrimSpace(input.GitHubBaseRef)
	cfg.StepSummaryPath = input.StepSummaryPath
	cfg.DryRun = input.DryRun
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ConfigParams returns the settings worth recording alongside a history run.
func (c *Config) ConfigParams() map[string]any {
	stripHash := ""
	if c.StripHash != nil {
		stripHash = c.StripHash.String()
	}
	return map[string]any{
		"pattern":                  c.Pattern,
		"exclude":                  c.Exclude,
		"strip_hash":               stripHash,
		"compression":              string(c.Compression),
		"minimum_change_threshold": c.Report.MinimumChangeThreshold,
		"order_by":                 c.Report.SortBy.String(),
		"build_script":             c.BuildScript,
		"comment_key":              c.CommentKey,
	}
}
