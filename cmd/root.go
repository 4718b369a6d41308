package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/sizewatch/core"
	"github.com/huangsam/sizewatch/internal/contract"
	"github.com/huangsam/sizewatch/internal/history"
	"github.com/huangsam/sizewatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// actionInputs are the keys a GitHub Actions step passes as INPUT_<KEY>.
var actionInputs = []string{
	"pattern", "exclude", "strip-hash", "compression", "minimum-change-threshold",
	"show-total", "collapse-unchanged", "omit-unchanged", "order-by", "sort-by",
	"comment-key", "use-check", "build-script", "install-script", "clean-script",
	"base-ref", "head-ref", "cwd", "repo-token",
}

// githubEnv maps config keys to the variables set by the GitHub Actions runner.
var githubEnv = map[string]string{
	"repo-token":        "GITHUB_TOKEN",
	"github-api-url":    "GITHUB_API_URL",
	"github-repository": "GITHUB_REPOSITORY",
	"github-event-path": "GITHUB_EVENT_PATH",
	"github-base-ref":   "GITHUB_BASE_REF",
	"step-summary":      "GITHUB_STEP_SUMMARY",
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "sizewatch",
	Short:              "Report how the compressed size of build outputs changes in a pull request.",
	Long:               `Sizewatch builds the base and head of a change, measures the compressed size of every output file and reports the difference.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("SIZEWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Explicit bindings replace the automatic lookup, so the prefixed name is listed first
	for _, key := range actionInputs {
		envs := []string{envName(key), "INPUT_" + strings.ToUpper(key)}
		if gh, ok := githubEnv[key]; ok {
			envs = append(envs, gh)
		}
		bindEnv(key, envs...)
	}
	for key, gh := range githubEnv {
		if !slices.Contains(actionInputs, key) {
			bindEnv(key, envName(key), gh)
		}
	}

	// Set defaults in Viper
	viper.SetDefault("pattern", contract.DefaultPattern)
	viper.SetDefault("exclude", contract.DefaultExclude)
	viper.SetDefault("compression", schema.GzipCompression)
	viper.SetDefault("minimum-change-threshold", contract.DefaultMinimumChangeThreshold)
	viper.SetDefault("build-script", contract.DefaultBuildScript)
	viper.SetDefault("install-script", contract.AutoInstallScript)
	viper.SetDefault("head-ref", contract.DefaultHeadRef)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", schema.NoneBackend)
	viper.SetDefault("github-api-url", contract.DefaultGitHubAPIURL)
}

// envName returns the SIZEWATCH_ variable for a config key.
func envName(key string) string {
	return "SIZEWATCH_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func bindEnv(key string, envs ...string) {
	if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
		contract.LogFatal("Error binding env for "+key, err)
	}
}

// setConfigFile points viper at --config or the default .sizewatch.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".sizewatch") // Name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME")
}

// loadConfigFile reads the config file if present. A missing file is not an error.
func loadConfigFile() error {
	setConfigFile()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup merges defaults, file, env and flags, validates them into cfg
// and opens the history store. applyArgs maps positional arguments onto the raw input.
func sharedSetup(_ context.Context, applyArgs func(*contract.ConfigRawInput)) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Positional arguments are not handled by Viper
	if applyArgs != nil {
		applyArgs(input)
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if err := history.Init(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(_ *cobra.Command, _ []string) error {
	return sharedSetup(rootCtx, nil)
}

// outputContext silences progress lines when machine-readable output goes to stdout.
func outputContext(ctx context.Context) context.Context {
	if cfg.OutputFile == "" && (cfg.Output == schema.JSONOut || cfg.Output == schema.CSVOut || cfg.Output == schema.MarkdownOut) {
		return core.WithSuppressHeader(ctx)
	}
	return ctx
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
